package api

import (
	"net/http"

	"github.com/alecgard/candor/internal/auth"
	"github.com/alecgard/candor/internal/feedback"
	"github.com/alecgard/candor/internal/metrics"
	"github.com/alecgard/candor/internal/ratelimit"
	"github.com/alecgard/candor/internal/team"
	"github.com/alecgard/candor/internal/user"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// RouterDeps holds all dependencies for the API router. Metrics, DB,
// LoginLimiter and ClientKey may be nil; a nil ClientKey keys the login
// limiter on the peer address.
type RouterDeps struct {
	Authenticator  Authenticator
	Users          user.Getter
	Tokens         *auth.TokenIssuer
	Feedback       *feedback.Service
	Team           *team.Service
	DB             Pinger
	LoginLimiter   *ratelimit.Limiter
	ClientKey      ratelimit.KeyFunc
	Metrics        *metrics.Metrics
	AllowedOrigins []string
}

// NewRouter builds the chi router with all routes and middleware.
func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(requestLogger(deps.Metrics))
	r.Use(secureHeaders)
	r.Use(corsMiddleware(deps.AllowedOrigins))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "not_found", "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	r.Get("/health", healthHandler(deps.DB))
	r.Get("/.well-known/candor.json", WellKnownHandler)

	if deps.Metrics != nil {
		r.Handle("/metrics", deps.Metrics.PromHandler())
		r.Get("/metrics/summary", deps.Metrics.Handler())
	}

	authH := newAuthHandler(deps.Authenticator, deps.Users, deps.Metrics)
	feedbackH := newFeedbackHandler(deps.Feedback, deps.Metrics)
	teamH := &teamHandler{svc: deps.Team}

	var onAuthFailure []func(string)
	var onLoginReject []func()
	if deps.Metrics != nil {
		onAuthFailure = append(onAuthFailure, deps.Metrics.IncAuthFailure)
		onLoginReject = append(onLoginReject, deps.Metrics.IncRateLimitRejection)
	}

	clientKey := deps.ClientKey
	if clientKey == nil {
		clientKey = ratelimit.ClientIP
	}

	r.Route("/api", func(ar chi.Router) {
		ar.With(ratelimit.Middleware(deps.LoginLimiter, clientKey, onLoginReject...)).
			Post("/auth/login", authH.Login)

		ar.Group(func(pr chi.Router) {
			pr.Use(auth.SessionMiddleware(deps.Tokens, user.NewAuthAdapter(deps.Users), onAuthFailure...))

			pr.Get("/auth/me", authH.Me)

			pr.Get("/feedback", feedbackH.List)
			pr.Post("/feedback", feedbackH.Create)
			pr.Put("/feedback/{id}", feedbackH.Update)
			pr.Post("/feedback/{id}/acknowledge", feedbackH.Acknowledge)

			pr.Get("/team/members", teamH.Members)
		})
	})

	return r
}
