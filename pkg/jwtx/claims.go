package jwtx

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is how long a session token stays valid when the service
// does not override it.
const DefaultTokenTTL = 60 * 24 * time.Hour

// Claims are the session-token claims. Only sub and exp are load-bearing;
// the rest is informational.
type Claims struct {
	jwt.RegisteredClaims

	// Username at the time the token was issued.
	Username string `json:"username,omitempty"`
}

// NewClaims binds subject to an expiry of issuedAt+ttl.
func NewClaims(subject, username, issuer string, issuedAt time.Time, ttl time.Duration) Claims {
	return Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
		},
		Username: username,
	}
}

// ValidateRequired checks the claims a session token cannot do without.
func (c *Claims) ValidateRequired() error {
	if c.Subject == "" || c.ExpiresAt == nil {
		return ErrMalformed
	}
	return nil
}

// ValidateExpiryAt fails with ErrExpired once now is past exp.
func (c *Claims) ValidateExpiryAt(now time.Time) error {
	if c.ExpiresAt != nil && now.After(c.ExpiresAt.Time) {
		return ErrExpired
	}
	return nil
}
