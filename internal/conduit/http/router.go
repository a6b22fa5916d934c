package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/aussiebroadwan/conduit/internal/conduit/metrics"
	"github.com/aussiebroadwan/conduit/internal/conduit/service"
	"github.com/aussiebroadwan/conduit/internal/conduit/store"
	"github.com/aussiebroadwan/conduit/pkg/httpx"
	"github.com/aussiebroadwan/conduit/pkg/jwtx"
	"github.com/aussiebroadwan/conduit/pkg/slogx"

	_ "github.com/aussiebroadwan/conduit/api/conduit" // Swagger docs
	httpSwagger "github.com/swaggo/http-swagger"
)

// Router holds shared dependencies for HTTP handlers.
type Router struct {
	Mux         *http.ServeMux
	middlewares []httpx.Middleware

	auth         *httpx.Authenticator
	tokens       jwtx.Verifier
	buildVersion string
	startTime    time.Time
	logger       *slog.Logger

	store   store.Store
	metrics *metrics.Metrics

	UserService *service.UserService

	// Limits and Proxies must be set before ApplyRoutes. Limits defaults
	// to httpx.DefaultLimits.
	Limits httpx.LimitProfiles
	// Proxies are the peers allowed to name the client in X-Forwarded-For.
	Proxies httpx.TrustedProxies
}

func NewRouter(
	tokens jwtx.Verifier,
	buildVersion string,
	st store.Store,
	m *metrics.Metrics,
	logger *slog.Logger,
) *Router {
	r := &Router{
		Mux:          http.NewServeMux(),
		tokens:       tokens,
		buildVersion: buildVersion,
		startTime:    time.Now(),
		store:        st,
		metrics:      m,
		logger:       logger,
		Limits:       httpx.DefaultLimits(),
		auth: &httpx.Authenticator{
			Verifier:  tokens,
			OnFailure: m.AuthFailure,
		},
	}

	r.middlewares = []httpx.Middleware{
		slogx.HTTPMiddleware(r.logger),
	}

	return r
}

func (r *Router) ApplyRoutes() {
	r.registerUsers()
	r.registerUser()
	r.registerProfiles()
	r.registerSystem()

	r.Mux.Handle("/api-docs/", httpSwagger.Handler())
	r.Mux.Handle("GET /v3/api-docs", OpenAPIHandler())
	r.Mux.Handle("/", NotFoundHandler())
}

// ServeHTTP implements http.Handler for Router and applies the global middleware chain.
//
//	@title			Conduit User Service API
//	@version		0.1.0
//	@description	User registration, login and profile endpoints for a conduit backend.
//	@description
//	@description				Session tokens are HS256 JWTs. Send them as "Authorization: Bearer {token}".
//
//	@contact.name				AussieBroadWAN Team
//	@contact.url				https://github.com/aussiebroadwan/conduit
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
//	@description				Session token. Format: "Bearer {token}".
func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	httpx.Chain(r.Mux, r.middlewares...).ServeHTTP(w, req)
}

func (r *Router) registerUsers() {
	h := &UsersHandler{UserService: r.UserService}

	// Register and login share one budget per address
	credentials := r.limit(r.Limits.Credentials, r.Proxies.ClientIP)
	r.Mux.Handle("POST /api/users",
		httpx.Chain(http.HandlerFunc(h.HandleRegister), credentials),
	)
	r.Mux.Handle("POST /api/users/login",
		httpx.Chain(http.HandlerFunc(h.HandleLogin), credentials),
	)

	r.Mux.Handle("GET /api/users/test", TestHandler())
}

func (r *Router) registerUser() {
	h := &CurrentUserHandler{UserService: r.UserService}

	r.Mux.Handle("GET /api/user",
		httpx.Chain(http.HandlerFunc(h.HandleGet),
			r.auth.Required(),
			r.limit(r.Limits.Read, r.Proxies.UserOrClientIP),
		),
	)

	// Updates may carry a new password and so cost a KDF run
	r.Mux.Handle("PUT /api/user",
		httpx.Chain(http.HandlerFunc(h.HandleUpdate),
			r.auth.Required(),
			r.limit(r.Limits.Write, r.Proxies.UserOrClientIP),
		),
	)
}

func (r *Router) registerProfiles() {
	h := &ProfilesHandler{UserService: r.UserService}

	r.Mux.Handle("GET /api/profiles/{username}",
		httpx.Chain(h,
			r.auth.Optional(),
			r.limit(r.Limits.Public, r.Proxies.ClientIP),
		),
	)
}

// limit builds a rate limiter whose rejections are counted per route.
func (r *Router) limit(l httpx.Limit, key httpx.KeyFunc) httpx.Middleware {
	rl := httpx.NewRateLimiter(l, key)
	rl.OnLimited = func(req *http.Request) {
		r.metrics.RateLimited(req.Pattern)
	}
	return rl.Middleware
}

func (r *Router) registerSystem() {
	r.Mux.Handle("GET /livez", LivezHandler(r.startTime, r.buildVersion))
	r.Mux.Handle("GET /readyz", ReadyzHandler(r.startTime, r.buildVersion, r.store, r.tokens))
	r.Mux.Handle("GET /metrics", r.metrics.Handler())
}
