package httpx

import "context"

// AuthorityUser is the single authority granted to any authenticated user.
// There is no role hierarchy in snug; you are either a user or anonymous.
const AuthorityUser = "user"

// Principal is the authenticated identity bound to a request. It is resolved
// fresh per request from the bearer token; nothing is cached between
// requests, which is what keeps the service horizontally scalable.
type Principal struct {
	ID        string
	Username  string
	Email     string
	Authority string
}

type ctxKey string

const ctxKeyPrincipal ctxKey = "principal"

// ContextWithPrincipal binds an authenticated principal to the context.
func ContextWithPrincipal(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKeyPrincipal, p)
}

// PrincipalFromContext returns the bound principal, or ok=false when the
// request is anonymous.
func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKeyPrincipal).(Principal)
	return p, ok
}
