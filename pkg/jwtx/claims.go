package jwtx

import (
	"errors"
	"time"
)

var (
	ErrInvalidToken = errors.New("jwtx: invalid token")
	ErrTokenExpired = errors.New("jwtx: token expired")
)

// Claims is the validated subset of a bearer token this service cares
// about: who the caller is and what they are allowed to do.
type Claims struct {
	Subject   string
	Issuer    string
	Scopes    []string
	ExpiresAt time.Time
}

// ValidateExpiry reports whether the claims are still within their validity
// window. Tokens without an expiry are rejected.
func (c Claims) ValidateExpiry() error {
	if c.ExpiresAt.IsZero() {
		return ErrInvalidToken
	}
	if time.Now().After(c.ExpiresAt) {
		return ErrTokenExpired
	}
	return nil
}

// HasScope reports whether the claims carry the given scope.
func (c Claims) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}
