package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiresAt peeks at the exp claim of a bearer token without verifying
// its signature. Display-only: the server's 401 stays authoritative for
// session expiry. Returns the zero time when the token is opaque or carries
// no exp claim.
func TokenExpiresAt(token string) time.Time {
	parser := jwt.NewParser()
	claims := jwt.RegisteredClaims{}
	if _, _, err := parser.ParseUnverified(token, &claims); err != nil {
		return time.Time{}
	}
	if claims.ExpiresAt == nil {
		return time.Time{}
	}
	return claims.ExpiresAt.Time
}
