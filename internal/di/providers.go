package di

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/teguholica/auth-with-otp-and-pin-api/internal/app"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/config"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/database"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/http/handler"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/http/middleware"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/observability"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/repository"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/security"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/service"
)

var ConfigSet = wire.NewSet(config.Load)

var ObservabilitySet = wire.NewSet(provideLogger)

var DatabaseSet = wire.NewSet(provideDB)

var RepositorySet = wire.NewSet(
	repository.NewAccountRepository,
	repository.NewChallengeRepository,
)

var SecuritySet = wire.NewSet(
	providePasswordHasher,
	provideTokenManager,
)

var ServiceSet = wire.NewSet(
	provideAuthService,
	wire.Bind(new(service.AuthServiceInterface), new(*service.AuthService)),
)

var HTTPSet = wire.NewSet(
	handler.NewAuthHandler,
	handler.NewHealthHandler,
	provideLimiter,
	provideAuthRateLimiter,
	app.NewRouter,
	provideServer,
)

var AppSet = wire.NewSet(app.New)

func provideLogger(cfg *config.Config) *slog.Logger {
	return observability.NewLogger(cfg.Env, cfg.LogLevel)
}

func provideDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := database.Open(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		return nil, err
	}
	return db, nil
}

func providePasswordHasher(cfg *config.Config) *security.PasswordHasher {
	return security.NewPasswordHasher(cfg.BcryptCost)
}

func provideTokenManager(cfg *config.Config) *security.TokenManager {
	return security.NewTokenManager(cfg.JWTIssuer, cfg.JWTSecret, cfg.JWTTTL)
}

func provideAuthService(
	accounts repository.AccountRepository,
	challenges repository.ChallengeRepository,
	hasher *security.PasswordHasher,
	tokens *security.TokenManager,
	cfg *config.Config,
	logger *slog.Logger,
) *service.AuthService {
	return service.NewAuthService(accounts, challenges, hasher, tokens, service.Options{
		CodeTTL:           cfg.OTPTTL,
		MaxAttempts:       cfg.OTPMaxAttempts,
		MinPasswordLength: cfg.PasswordMinLength,
		ExposeCodes:       cfg.ExposeCodes(),
	}, logger)
}

// provideLimiter picks Redis when configured, so multiple instances share
// windows; otherwise the in-process fallback.
func provideLimiter(cfg *config.Config, logger *slog.Logger) middleware.Limiter {
	if cfg.RedisURL == "" {
		return middleware.NewLocalFixedWindowLimiter()
	}
	opts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		logger.Warn("invalid REDIS_URL, falling back to local rate limiter", "error", err)
		return middleware.NewLocalFixedWindowLimiter()
	}
	return middleware.NewRedisFixedWindowLimiter(redis.NewClient(opts), "auth-otp")
}

func provideAuthRateLimiter(cfg *config.Config, limiter middleware.Limiter, logger *slog.Logger) *middleware.RateLimiter {
	return middleware.NewRateLimiter(limiter, cfg.AuthRateLimitPerMin, time.Minute, middleware.FailOpen, "auth", logger)
}

func provideServer(cfg *config.Config, router http.Handler) *http.Server {
	return &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
}
