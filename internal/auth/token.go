package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/lifelink-health/donation-backend/internal/auth/domain"
)

var (
	// ErrInvalidToken covers bad signatures, malformed tokens and unknown
	// signing methods. Distinguishable from expiry for diagnostics; both are
	// treated as "not authenticated" at the edge.
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)

// Claims is the payload embedded in every issued token.
type Claims struct {
	Email string `json:"email"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

// TokenCodec signs and verifies the compact tokens carried in the auth
// cookie. The secret is process-wide configuration, loaded once at startup
// and passed in explicitly.
type TokenCodec struct {
	secret []byte
	issuer string
}

func NewTokenCodec(secret, issuer string) *TokenCodec {
	return &TokenCodec{secret: []byte(secret), issuer: issuer}
}

// Issue signs a token for the given subject. Callers pick the TTL by delivery
// channel: 7 days for the browser cookie flow, 1 day for header bearers.
func (c *TokenCodec) Issue(subjectID, email string, role domain.Role, ttl time.Duration) (string, error) {
	now := time.Now().UTC()
	claims := Claims{
		Email: email,
		Role:  string(role),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			Issuer:    c.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(c.secret)
}

// Verify checks signature and expiry and returns the embedded principal.
func (c *TokenCodec) Verify(tokenString string) (*domain.Principal, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return c.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}

	role := domain.Role(claims.Role)
	if !role.Valid() {
		return nil, ErrInvalidToken
	}

	return &domain.Principal{
		ID:    claims.Subject,
		Email: claims.Email,
		Role:  role,
	}, nil
}
