package security

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/teguholica/auth-with-otp-and-pin-api/internal/domain"
)

// ErrInvalidToken covers every verification failure: bad signature, malformed
// structure, expired timestamp. Callers must not be able to tell which.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.RegisteredClaims
	Identifier  string `json:"identifier"`
	DisplayName string `json:"displayName,omitempty"`
}

type TokenManager struct {
	issuer string
	secret []byte
	ttl    time.Duration
}

func NewTokenManager(issuer, secret string, ttl time.Duration) *TokenManager {
	return &TokenManager{issuer: issuer, secret: []byte(secret), ttl: ttl}
}

// Sign issues a session token for the account. The subject is a UUID derived
// from the normalized identifier, so it is stable across logins.
func (m *TokenManager) Sign(account *domain.Account) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   uuid.NewSHA1(uuid.NameSpaceOID, []byte(account.Identifier)).String(),
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
		Identifier:  account.Identifier,
		DisplayName: account.DisplayName,
	})
	return token.SignedString(m.secret)
}

func (m *TokenManager) Verify(raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithIssuer(m.issuer))
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
