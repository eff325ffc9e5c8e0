package service

import (
	"time"

	"github.com/openawards/applicant/pkg/cryptox"
)

// DefaultVerificationTokenTTL is the validity window for verification
// tokens, measured from issuance.
const DefaultVerificationTokenTTL = 24 * time.Hour

// TokenService issues opaque, unguessable tokens and evaluates their
// validity window. It is pure with respect to state: consumption and
// invalidation are the lifecycle's responsibility.
type TokenService struct {
	TTL time.Duration
}

func (s *TokenService) ttl() time.Duration {
	if s.TTL <= 0 {
		return DefaultVerificationTokenTTL
	}
	return s.TTL
}

// Issue returns a fresh 256-bit random token and its issuance time (UTC).
func (s *TokenService) Issue() (string, time.Time, error) {
	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return "", time.Time{}, err
	}
	return token, time.Now().UTC(), nil
}

// Valid reports whether a token issued at issuedAt is still inside its
// validity window at now. Matching the token string and checking it has not
// already been consumed are the caller's job.
func (s *TokenService) Valid(issuedAt, now time.Time) bool {
	return now.Sub(issuedAt) <= s.ttl()
}
