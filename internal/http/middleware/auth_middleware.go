package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/teguholica/auth-with-otp-and-pin-api/internal/http/response"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/repository"
	"github.com/teguholica/auth-with-otp-and-pin-api/internal/security"
)

type claimsContextKey struct{}

func ClaimsFromContext(ctx context.Context) (*security.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*security.Claims)
	return claims, ok
}

// RequireAuth guards a route with a bearer session token. A missing token is
// 401 MISSING_AUTH_TOKEN; any verification failure is 403 INVALID_TOKEN. The
// token's account must still exist, otherwise 401 ACCOUNT_NOT_FOUND.
func RequireAuth(tokens *security.TokenManager, accounts repository.AccountRepository) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := bearerToken(r)
			if raw == "" {
				response.Error(w, r, http.StatusUnauthorized, "MISSING_AUTH_TOKEN")
				return
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				response.Error(w, r, http.StatusForbidden, "INVALID_TOKEN")
				return
			}

			if _, err := accounts.FindByIdentifier(claims.Identifier); err != nil {
				if errors.Is(err, repository.ErrAccountNotFound) {
					response.Error(w, r, http.StatusUnauthorized, "ACCOUNT_NOT_FOUND")
					return
				}
				response.Error(w, r, http.StatusInternalServerError, "INTERNAL_ERROR")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), claimsContextKey{}, claims)))
		})
	}
}

func bearerToken(r *http.Request) string {
	auth := strings.TrimSpace(r.Header.Get("Authorization"))
	if len(auth) <= len("bearer ") || !strings.EqualFold(auth[:len("bearer ")], "bearer ") {
		return ""
	}
	return strings.TrimSpace(auth[len("bearer "):])
}
