package httpx

import (
	"context"
	"net/http"
	"strings"

	"github.com/aussiebroadwan/snug/pkg/jwtx"
	"github.com/aussiebroadwan/snug/pkg/slogx"
)

// PrincipalResolver resolves a token subject (username) to a concrete
// principal. Lookup must be case-insensitive on username.
type PrincipalResolver interface {
	ResolvePrincipal(ctx context.Context, username string) (Principal, error)
}

// OptionalAuthn extracts and validates a bearer token, binding a principal
// when everything checks out. It is fail-open by design: a missing,
// malformed, stale or unresolvable token leaves the request anonymous and
// the request continues. Whether anonymous access is acceptable is decided
// per-route by RequirePrincipal, not here.
func OptionalAuthn(v jwtx.Verifier, resolver PrincipalResolver) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx)

			authz := r.Header.Get("Authorization")
			if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
				next.ServeHTTP(w, r)
				return
			}
			raw := strings.TrimSpace(strings.TrimPrefix(authz, "Bearer"))

			claims, err := v.Verify(raw)
			if err != nil {
				// Garbage tokens pass through as anonymous rather than
				// erroring here; the reject decision belongs downstream.
				log.Debug("bearer token rejected", "err", err)
				next.ServeHTTP(w, r)
				return
			}

			subject := strings.TrimSpace(claims.Subject)
			if subject == "" {
				next.ServeHTTP(w, r)
				return
			}

			if _, bound := PrincipalFromContext(ctx); bound {
				next.ServeHTTP(w, r)
				return
			}

			principal, err := resolver.ResolvePrincipal(ctx, subject)
			if err != nil {
				log.Debug("bearer subject did not resolve", "subject", subject, "err", err)
				next.ServeHTTP(w, r)
				return
			}

			// Re-validate against the resolved identity: the subject must
			// still name this user and the token must be inside its window.
			if !strings.EqualFold(subject, principal.Username) {
				next.ServeHTTP(w, r)
				return
			}
			if err := claims.ValidateExpiry(); err != nil {
				log.Debug("bearer token expired", "subject", subject)
				next.ServeHTTP(w, r)
				return
			}

			principal.Authority = AuthorityUser
			ctx = ContextWithPrincipal(ctx, principal)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
