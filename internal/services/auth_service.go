package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired is returned when the token's expiry has passed.
	ErrTokenExpired = errors.New("token has expired")
	// ErrInvalidSignature is returned when the token signature does not verify.
	ErrInvalidSignature = errors.New("invalid token signature")
	// ErrTokenMalformed is returned when the token cannot be parsed.
	ErrTokenMalformed = errors.New("malformed token")
)

// DefaultTokenTTL matches the 30 minute access-token expiry of the API.
const DefaultTokenTTL = 30 * time.Minute

// TokenClaims carries the claim set embedded in access tokens. Subject is the
// user's email.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// AuthService issues and validates bearer tokens. Tokens are stateless: expiry
// is the only invalidation path.
type AuthService interface {
	IssueToken(email string) (string, error)
	ValidateToken(token string) (*TokenClaims, error)
}

type authService struct {
	jwtSecret []byte
	tokenTTL  time.Duration
}

// NewAuthService creates a token service signing with secret. A non-positive
// ttl falls back to DefaultTokenTTL.
func NewAuthService(secret string, ttl time.Duration) AuthService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &authService{
		jwtSecret: []byte(secret),
		tokenTTL:  ttl,
	}
}

// IssueToken signs an HS256 token with the subject set to email and expiry
// now+TTL.
func (s *authService) IssueToken(email string) (string, error) {
	now := time.Now()
	claims := TokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "servicefinder",
			Subject:   email,
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ValidateToken parses and verifies token, returning its claims or one of the
// sentinel errors.
func (s *authService) ValidateToken(token string) (*TokenClaims, error) {
	parsed, err := jwt.ParseWithClaims(token, &TokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSignature
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, ErrInvalidSignature
		default:
			return nil, ErrTokenMalformed
		}
	}

	claims, ok := parsed.Claims.(*TokenClaims)
	if !ok || !parsed.Valid {
		return nil, ErrTokenMalformed
	}
	return claims, nil
}
