package apiclient

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessTokenExpiry reads the exp claim of an access token. The signature
// is not checked; the result only drives local decisions such as showing
// the session lifetime.
func AccessTokenExpiry(token string) (time.Time, error) {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return time.Time{}, fmt.Errorf("parse access token: %w", err)
	}

	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil {
		return time.Time{}, fmt.Errorf("read exp claim: %w", err)
	}
	if exp == nil {
		return time.Time{}, fmt.Errorf("access token has no exp claim")
	}
	return exp.Time, nil
}
