// Package http is the thin HTTP surface over the auth services. Handlers
// decode, delegate, and encode; every decision lives in the service layer.
package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/nightglass/authkit/internal/auth/service"
	"github.com/nightglass/authkit/internal/auth/store"
	"github.com/nightglass/authkit/pkg/httpx"
	"github.com/nightglass/authkit/pkg/jwtx"
	"github.com/nightglass/authkit/pkg/slogx"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	ring         *jwtx.Keyring
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store store.Store

	LoginService *service.LoginService
	TokenService *service.TokenService
}

func NewRouter(
	ring *jwtx.Keyring,
	buildVersion string,
	st store.Store,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		ring:         ring,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		logger:       logger,
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerTokens()
	r.registerSystem()
}

// ServeHTTP implements http.Handler and applies the global middleware
// chain.
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerTokens() {
	login := &LoginHandler{LoginService: r.LoginService}
	r.Mux.Handle("POST /v1/login",
		httpx.Chain(login,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	refresh := &RefreshHandler{LoginService: r.LoginService}
	r.Mux.Handle("POST /v1/refresh",
		httpx.Chain(refresh,
			httpx.RateLimitByIP(httpx.StrictLimit),
		),
	)

	logout := &LogoutHandler{LoginService: r.LoginService}
	r.Mux.Handle("POST /v1/logout",
		httpx.Chain(logout,
			httpx.RateLimitByIP(httpx.ModerateLimit),
		),
	)

	r.Mux.Handle("GET /.well-known/jwks.json",
		httpx.Chain(JWKSHandler(r.ring),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez",
		httpx.Chain(LivezHandler(r.startTime, r.buildVersion),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
	r.Mux.Handle("GET /readyz",
		httpx.Chain(ReadyzHandler(r.startTime, r.buildVersion, r.store, r.ring),
			httpx.RateLimitByIP(httpx.LenientLimit),
		),
	)
}
