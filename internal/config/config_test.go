package config

import (
	"strings"
	"testing"
	"time"
)

func setValidEnv(t *testing.T) {
	t.Helper()
	t.Setenv("APP_ENV", "development")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/auth?sslmode=disable")
	t.Setenv("REDIS_URL", "")
	t.Setenv("JWT_ISSUER", "auth-with-otp-api")
	t.Setenv("JWT_SECRET", "0123456789abcdef0123456789abcdef")
	t.Setenv("JWT_TTL", "24h")
	t.Setenv("OTP_TTL", "5m")
	t.Setenv("OTP_MAX_ATTEMPTS", "")
	t.Setenv("PASSWORD_MIN_LENGTH", "")
	t.Setenv("BCRYPT_COST", "")
	t.Setenv("AUTH_RATE_LIMIT_PER_MIN", "")
}

func TestLoadDefaults(t *testing.T) {
	setValidEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.JWTTTL != 24*time.Hour {
		t.Fatalf("JWTTTL = %v", cfg.JWTTTL)
	}
	if cfg.OTPTTL != 5*time.Minute {
		t.Fatalf("OTPTTL = %v", cfg.OTPTTL)
	}
	if cfg.OTPMaxAttempts != 5 {
		t.Fatalf("OTPMaxAttempts = %d", cfg.OTPMaxAttempts)
	}
	if cfg.PasswordMinLength != 6 {
		t.Fatalf("PasswordMinLength = %d", cfg.PasswordMinLength)
	}
	if cfg.AuthRateLimitPerMin != 30 {
		t.Fatalf("AuthRateLimitPerMin = %d", cfg.AuthRateLimitPerMin)
	}
	if cfg.Production() {
		t.Fatal("development env must not report production")
	}
	if !cfg.ExposeCodes() {
		t.Fatal("development env must expose codes")
	}
}

func TestLoadProductionHidesCodes(t *testing.T) {
	setValidEnv(t)
	t.Setenv("APP_ENV", "PRODUCTION")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !cfg.Production() {
		t.Fatal("expected production, match is case-insensitive")
	}
	if cfg.ExposeCodes() {
		t.Fatal("production must not expose codes")
	}
}

func TestLoadRejectsBadDurations(t *testing.T) {
	setValidEnv(t)
	t.Setenv("JWT_TTL", "soon")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparseable JWT_TTL")
	}

	setValidEnv(t)
	t.Setenv("OTP_TTL", "never")
	if _, err := Load(); err == nil {
		t.Fatal("expected error for unparseable OTP_TTL")
	}
}

func TestValidateAccumulatesErrors(t *testing.T) {
	setValidEnv(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("OTP_MAX_ATTEMPTS", "0")

	_, err := Load()
	if err == nil {
		t.Fatal("expected validation error")
	}
	for _, want := range []string{"DATABASE_URL", "JWT_SECRET", "OTP_MAX_ATTEMPTS"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("error %q should mention %s", err, want)
		}
	}
}

func TestValidateBounds(t *testing.T) {
	cases := map[string]func(*Config){
		"otp ttl too long":  func(c *Config) { c.OTPTTL = 2 * time.Hour },
		"jwt ttl too long":  func(c *Config) { c.JWTTTL = 31 * 24 * time.Hour },
		"bcrypt cost high":  func(c *Config) { c.BcryptCost = 40 },
		"rate limit zero":   func(c *Config) { c.AuthRateLimitPerMin = 0 },
		"password len zero": func(c *Config) { c.PasswordMinLength = 0 },
	}
	for name, mutate := range cases {
		setValidEnv(t)
		cfg, err := Load()
		if err != nil {
			t.Fatalf("%s: baseline load: %v", name, err)
		}
		mutate(cfg)
		if err := cfg.Validate(); err == nil {
			t.Fatalf("%s: expected validation failure", name)
		}
	}
}

func TestGetEnvIntIgnoresGarbage(t *testing.T) {
	t.Setenv("SOME_INT", "not-a-number")
	if got := getEnvInt("SOME_INT", 7); got != 7 {
		t.Fatalf("expected fallback 7, got %d", got)
	}
	t.Setenv("SOME_INT", "12")
	if got := getEnvInt("SOME_INT", 7); got != 12 {
		t.Fatalf("expected 12, got %d", got)
	}
}
