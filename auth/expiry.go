package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rgonek/contentdesk/apiclient"
)

// ErrTokenExpired wraps apiclient.ErrNoToken so callers that prompt for a
// login on a missing token do the same for an expired one.
var ErrTokenExpired = fmt.Errorf("%w: stored token has expired", apiclient.ErrNoToken)

// Expiry reads the exp claim of a JWT without verifying its signature; the
// server remains the authority on validity. ok is false for opaque tokens
// and for JWTs that carry no exp claim.
func Expiry(token string) (exp time.Time, ok bool) {
	claims := &jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, false
	}
	return claims.ExpiresAt.Time, true
}

// Expired reports whether token is a JWT whose exp is at or before now.
func Expired(token string, now time.Time) bool {
	exp, ok := Expiry(token)
	return ok && !now.Before(exp)
}
