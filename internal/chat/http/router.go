package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/snug/internal/chat/service"
	"github.com/aussiebroadwan/snug/internal/chat/store"
	"github.com/aussiebroadwan/snug/pkg/httpx"
	"github.com/aussiebroadwan/snug/pkg/jwtx"
	"github.com/aussiebroadwan/snug/pkg/slogx"

	_ "github.com/aussiebroadwan/snug/api/chat" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	verifier     jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger
	store        store.Store

	LoginService   *service.LoginService
	RosterService  *service.RosterService
	ProfileService *service.ProfileService
	MFAService     *service.MFAService
}

func NewRouter(
	verifier jwtx.Verifier,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		verifier:     verifier,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	// Set default middleware chain
	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerAuth()
	r.registerChat()
	r.registerMFA()
	r.registerSystem()

	r.Mux.Handle("/swagger/", httpSwagger.Handler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Snug Chat Service API
//	@version		0.1.0
//	@description	Polling chat service with stateless bearer-token authentication.
//	@description
//	@description				Tokens are HS256-signed JWTs. Requests without a valid token proceed
//	@description				anonymously; only the protected routes reject them.
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/snug
//
//	@license.name				MIT
//	@license.url				https://opensource.org/licenses/MIT
//
//	@host						localhost:8080
//	@BasePath					/
//
//	@schemes					http https
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				JWT access token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

// storeResolver maps a verified token subject to an account for the
// fail-open authn middleware.
type storeResolver struct {
	store store.Store
}

func (r *storeResolver) ResolvePrincipal(ctx context.Context, username string) (httpx.Principal, error) {
	u, err := r.store.Users().GetUserByUsername(ctx, username)
	if err != nil {
		return httpx.Principal{}, err
	}
	return httpx.Principal{ID: u.ID, Username: u.Username, Email: u.Email}, nil
}

// authn returns the shared fail-open token middleware. It never rejects;
// protected routes pair it with httpx.RequirePrincipal.
func (r *Router) authn() httpx.Middleware {
	return httpx.OptionalAuthn(r.verifier, &storeResolver{store: r.store})
}

func (r *Router) registerAuth() {
	// POST /login - strict rate limit by IP (authentication attempts)
	loginHandler := &LoginHandler{LoginService: r.LoginService, RosterService: r.RosterService}
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(loginHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /register - strict rate limit by IP (public signup endpoint)
	registerHandler := &RegisterHandler{LoginService: r.LoginService}
	r.Mux.Handle("POST /v1/register",
		httpx.Chain(registerHandler,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	// POST /logout - moderate rate limit by principal
	logoutHandler := &LogoutHandler{RosterService: r.RosterService}
	r.Mux.Handle("POST /v1/logout",
		httpx.Chain(logoutHandler,
			r.authn(),
			httpx.RequirePrincipal(),
			httpx.RateLimitByPrincipal(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerChat() {
	// GET /snapshot - the polling endpoint; lenient rate limit by principal
	snapshotHandler := &SnapshotHandler{RosterService: r.RosterService}
	r.Mux.Handle("GET /v1/snapshot",
		httpx.Chain(snapshotHandler,
			r.authn(),
			httpx.RequirePrincipal(),
			httpx.RateLimitByPrincipal(httpx.LenientLimit),
		),
	)

	// POST /messages - lenient rate limit by principal
	messagesHandler := &MessagesHandler{RosterService: r.RosterService}
	r.Mux.Handle("POST /v1/messages",
		httpx.Chain(messagesHandler,
			r.authn(),
			httpx.RequirePrincipal(),
			httpx.RateLimitByPrincipal(httpx.LenientLimit),
		),
	)

	// GET /peers/{username} - moderate rate limit by principal
	peersHandler := &PeersHandler{ProfileService: r.ProfileService}
	r.Mux.Handle("GET /v1/peers/{username}",
		httpx.Chain(peersHandler,
			r.authn(),
			httpx.RequirePrincipal(),
			httpx.RateLimitByPrincipal(httpx.ModerateLimit),
		),
	)

	// PUT /profile - moderate rate limit by principal
	profileHandler := &ProfileHandler{ProfileService: r.ProfileService}
	r.Mux.Handle("PUT /v1/profile",
		httpx.Chain(profileHandler,
			r.authn(),
			httpx.RequirePrincipal(),
			httpx.RateLimitByPrincipal(httpx.ModerateLimit),
		),
	)
}

func (r *Router) registerMFA() {
	h := &MFAHandler{MFAService: r.MFAService}

	// POST /mfa/enroll - moderate rate limit by principal
	r.Mux.Handle("POST /v1/mfa/enroll",
		httpx.Chain(http.HandlerFunc(h.HandleEnroll),
			r.authn(),
			httpx.RequirePrincipal(),
			httpx.RateLimitByPrincipal(httpx.ModerateLimit),
		),
	)

	// POST /mfa/activate - strict rate limit (prevent brute force of TOTP codes)
	r.Mux.Handle("POST /v1/mfa/activate",
		httpx.Chain(http.HandlerFunc(h.HandleActivate),
			r.authn(),
			httpx.RequirePrincipal(),
			httpx.RateLimitByPrincipal(httpx.StrictLimit),
		),
	)
}

func (r *Router) registerSystem() {
	// Health check endpoints - lenient rate limits (monitoring systems may poll frequently)
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
