package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/uyghurcoder/login-service/internal/core/domain"
)

// TokenService issues and validates the signed tokens carried in the
// auth cookie. A token holds only subject, issued-at and expiry; roles
// are re-derived from the credential store on each authenticated lookup.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue creates an HS512-signed token for the given username.
func (s *TokenService) Issue(username string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   username,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(s.secret)
}

// Validate verifies signature and expiry and returns the token subject.
// Failures are classified into the domain.ErrToken* variants so the
// gate can log each class under its own reason.
func (s *TokenService) Validate(token string) (string, error) {
	if token == "" {
		return "", domain.ErrTokenMissing
	}

	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS512.Alg() {
			return nil, domain.ErrTokenUnsupported
		}
		return s.secret, nil
	})
	if err != nil {
		return "", classifyTokenError(err)
	}
	if !parsed.Valid {
		return "", domain.ErrTokenMalformed
	}

	return claims.Subject, nil
}

func classifyTokenError(err error) error {
	switch {
	case errors.Is(err, domain.ErrTokenUnsupported):
		return domain.ErrTokenUnsupported
	case errors.Is(err, jwt.ErrTokenExpired):
		return domain.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return domain.ErrTokenSignature
	case errors.Is(err, jwt.ErrTokenMalformed):
		return domain.ErrTokenMalformed
	default:
		return domain.ErrTokenMalformed
	}
}
