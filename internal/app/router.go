package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/teguholica/auth-with-otp-and-pin-api/internal/http/handler"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/http/middleware"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/repository"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/security"
)

// NewRouter mounts the wire contract. Every /auth route sits behind the auth
// rate limiter; only account deletion requires a bearer token.
func NewRouter(
	authHandler *handler.AuthHandler,
	healthHandler *handler.HealthHandler,
	authLimiter *middleware.RateLimiter,
	tokens *security.TokenManager,
	accounts repository.AccountRepository,
) http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", healthHandler.Health)

	r.Route("/auth", func(r chi.Router) {
		r.Use(authLimiter.Middleware())

		r.Post("/signup", authHandler.Signup)
		r.Post("/login", authHandler.Login)
		r.Post("/otp/request", authHandler.RequestCode)
		r.Post("/otp/verify", authHandler.VerifyCode)

		r.Group(func(r chi.Router) {
			r.Use(middleware.RequireAuth(tokens, accounts))
			r.Delete("/account", authHandler.DeleteAccount)
		})
	})

	return r
}
