package jwtx

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Verifier validates a raw bearer token and extracts its claims.
type Verifier interface {
	Verify(raw string) (Claims, error)
}

// wireClaims is the on-the-wire claim set. Scope is space-delimited per
// RFC 8693 / OAuth2 convention.
type wireClaims struct {
	Scope string `json:"scope"`
	jwt.RegisteredClaims
}

// HS256Verifier verifies operator tokens minted by the platform identity
// provider with a shared HMAC secret. This service only ever verifies; it
// never signs operator tokens.
type HS256Verifier struct {
	secret []byte
	issuer string
}

// NewHS256Verifier builds a verifier for the given shared secret. If issuer
// is non-empty, the token's iss claim must match.
func NewHS256Verifier(secret []byte, issuer string) *HS256Verifier {
	return &HS256Verifier{secret: secret, issuer: issuer}
}

func (v *HS256Verifier) Verify(raw string) (Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if v.issuer != "" {
		opts = append(opts, jwt.WithIssuer(v.issuer))
	}

	var wc wireClaims
	token, err := jwt.ParseWithClaims(raw, &wc, func(t *jwt.Token) (any, error) {
		return v.secret, nil
	}, opts...)
	if err != nil {
		return Claims{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}

	claims := Claims{
		Subject: wc.Subject,
		Issuer:  wc.Issuer,
		Scopes:  strings.Fields(wc.Scope),
	}
	if wc.ExpiresAt != nil {
		claims.ExpiresAt = wc.ExpiresAt.Time
	}
	return claims, nil
}

// SignHS256 mints a token for the given subject and scopes. Exists for test
// suites and local tooling; production operator tokens come from the
// platform identity provider.
func SignHS256(secret []byte, issuer, subject string, scopes []string, ttl time.Duration) (string, error) {
	now := time.Now()
	wc := wireClaims{
		Scope: strings.Join(scopes, " "),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, wc).SignedString(secret)
}
