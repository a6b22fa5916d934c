package jwtx

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// MinSecretBytes is the shortest HMAC secret we accept (256 bits).
const MinSecretBytes = 32

var ErrWeakSecret = errors.New("jwtx: HMAC secret must be at least 32 bytes")

// HMACOptions configures an HMACIssuer.
type HMACOptions struct {
	// Issuer is written into the iss claim. Informational only.
	Issuer string

	// Clock returns the current time. Defaults to time.Now.
	Clock func() time.Time
}

// HMACIssuer signs and verifies HS256 session tokens with a single
// process-wide secret. It holds no mutable state and is safe for concurrent
// use.
type HMACIssuer struct {
	secret []byte
	issuer string
	clock  func() time.Time
	parser *jwt.Parser
}

// NewHMACIssuer copies secret and returns an issuer for it.
func NewHMACIssuer(secret []byte, opts HMACOptions) (*HMACIssuer, error) {
	if len(secret) < MinSecretBytes {
		return nil, ErrWeakSecret
	}

	clock := opts.Clock
	if clock == nil {
		clock = time.Now
	}

	return &HMACIssuer{
		secret: append([]byte(nil), secret...),
		issuer: opts.Issuer,
		clock:  clock,
		// Expiry is checked by hand so the boundary is "now > exp".
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithoutClaimsValidation(),
		),
	}, nil
}

// Sign turns claims into a compact HS256 JWT.
func (i *HMACIssuer) Sign(claims Claims) (string, error) {
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(i.secret)
}

// Generate issues a token binding subject to issuedAt+ttl. Identical inputs
// give identical tokens.
func (i *HMACIssuer) Generate(subject, username string, issuedAt time.Time, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("jwtx: subject is required")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("jwtx: ttl must be positive, got %s", ttl)
	}
	return i.Sign(NewClaims(subject, username, i.issuer, issuedAt, ttl))
}

// Verify checks the signature, required claims and expiry, in that order.
func (i *HMACIssuer) Verify(token string) (Claims, error) {
	var claims Claims
	_, err := i.parser.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return i.secret, nil
	})
	if err != nil {
		return Claims{}, classify(err)
	}

	if err := claims.ValidateRequired(); err != nil {
		return Claims{}, err
	}
	if err := claims.ValidateExpiryAt(i.clock()); err != nil {
		return Claims{}, err
	}

	return claims, nil
}

// VerifySubject is Verify reduced to the bound identifier.
func (i *HMACIssuer) VerifySubject(token string) (string, error) {
	c, err := i.Verify(token)
	if err != nil {
		return "", err
	}
	return c.Subject, nil
}

// classify folds golang-jwt parse errors into our three failure kinds.
func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenSignatureInvalid),
		errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %w", ErrInvalidSig, err)
	default:
		return fmt.Errorf("%w: %w", ErrMalformed, err)
	}
}
