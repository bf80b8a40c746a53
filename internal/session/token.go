package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenExpiry reads the exp claim from the upstream bearer token without
// verifying its signature; verification is the upstream API's job. A
// token that is not a JWT, or carries no exp claim, reports no expiry.
func TokenExpiry(token string) (time.Time, bool) {
	parser := jwt.NewParser()
	claims := jwt.MapClaims{}
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

// TokenExpired reports whether the session token is a JWT with an exp
// claim in the past. Opaque tokens never report expired here; the
// upstream rejects those itself.
func (s *Session) TokenExpired() bool {
	if s.Token == "" {
		return false
	}
	exp, ok := TokenExpiry(s.Token)
	return ok && time.Now().After(exp)
}
