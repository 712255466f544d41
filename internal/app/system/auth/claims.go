package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims are the fields we read from the API's bearer token.
type Claims struct {
	UserID string `json:"id"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// ParseClaims reads tok without verifying its signature. The console never
// holds the API's signing key; the API still validates every call, so the
// claims are only used to size the session and pre-check the role.
func ParseClaims(tok string) (Claims, error) {
	var c Claims
	if _, _, err := jwt.NewParser().ParseUnverified(tok, &c); err != nil {
		return Claims{}, fmt.Errorf("parse token claims: %w", err)
	}
	return c, nil
}

// Expiry returns the exp claim, if present.
func (c Claims) Expiry() (time.Time, bool) {
	if c.ExpiresAt == nil {
		return time.Time{}, false
	}
	return c.ExpiresAt.Time, true
}
