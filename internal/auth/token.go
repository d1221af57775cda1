package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// JWTIssuer signs HS256 tokens. The engine hands it a claims set and never
// sees the key.
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
}

// NewJWTIssuer creates a JWTIssuer with the given signing secret and token
// lifetime.
func NewJWTIssuer(secret string, ttl time.Duration) *JWTIssuer {
	return &JWTIssuer{secret: []byte(secret), ttl: ttl}
}

// Issue signs a token for the subject carrying the given claims.
func (i *JWTIssuer) Issue(subject string, claims map[string]any) (string, error) {
	now := time.Now()
	mapClaims := jwt.MapClaims{
		"sub": subject,
		"iat": jwt.NewNumericDate(now),
		"exp": jwt.NewNumericDate(now.Add(i.ttl)),
	}
	for k, v := range claims {
		mapClaims[k] = v
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, mapClaims)
	return token.SignedString(i.secret)
}
