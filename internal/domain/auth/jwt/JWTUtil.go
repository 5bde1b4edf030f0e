package jwt

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessClaims: Subject holds the user's email.
type AccessClaims struct {
	jwt.RegisteredClaims
}

type JWTUtil interface {
	GenerateAccessToken(subject string, ttl time.Duration) (token string, exp time.Time, err error)
	ValidateAccessToken(token string) (claims AccessClaims, err error)
	AccessTTL() time.Duration
}
