package cryptox

import (
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/argon2"
)

// Configuration for Argon2id hashing.
const (
	memory      = 19 * 1024 // Memory usage in KiB (19 MiB)
	iterations  = 2         // Iteration count
	parallelism = 1         // Number of threads
	keyLength   = 32        // Length of the generated hash

	// SaltLength is the size of the per-credential salt.
	SaltLength = 16
)

var (
	ErrEmptyPassword     = errors.New("cryptox: password must not be empty")
	ErrEntropyExhausted  = errors.New("cryptox: random source failed")
	ErrCorruptCredential = errors.New("cryptox: stored credential is missing or corrupt")
)

// Credential is the derived password state kept on a user record. It never
// holds the plaintext.
type Credential struct {
	Hash []byte
	Salt []byte
}

// IsZero reports whether no password has been set.
func (c Credential) IsZero() bool {
	return len(c.Hash) == 0 && len(c.Salt) == 0
}

// PasswordHasher derives and checks Argon2id credentials. The pepper is mixed
// into every derivation and is held only in memory.
//
// A PasswordHasher is safe for concurrent use.
type PasswordHasher struct {
	pepper []byte
	random io.Reader
}

// NewPasswordHasher returns a hasher using the given pepper (may be empty).
func NewPasswordHasher(pepper []byte) *PasswordHasher {
	return &PasswordHasher{
		pepper: append([]byte(nil), pepper...),
		random: rand.Reader,
	}
}

// Derive generates a fresh salt and returns the credential for password.
// Every call yields a new salt, so two derivations of the same password
// differ.
func (h *PasswordHasher) Derive(password string) (Credential, error) {
	if password == "" {
		return Credential{}, ErrEmptyPassword
	}

	salt := make([]byte, SaltLength)
	if _, err := io.ReadFull(h.random, salt); err != nil {
		return Credential{}, fmt.Errorf("%w: %w", ErrEntropyExhausted, err)
	}

	return Credential{
		Hash: h.kdf(password, salt, keyLength),
		Salt: salt,
	}, nil
}

// Verify recomputes the hash for password with the stored salt and compares it
// in constant time. A wrong password is (false, nil); an error means the
// stored credential itself is unusable.
func (h *PasswordHasher) Verify(c Credential, password string) (bool, error) {
	if len(c.Salt) != SaltLength || len(c.Hash) != keyLength {
		return false, ErrCorruptCredential
	}

	computed := h.kdf(password, c.Salt, uint32(len(c.Hash))) // #nosec G115 - length checked above
	return subtle.ConstantTimeCompare(computed, c.Hash) == 1, nil
}

func (h *PasswordHasher) kdf(password string, salt []byte, size uint32) []byte {
	input := make([]byte, 0, len(password)+len(h.pepper))
	input = append(input, password...)
	input = append(input, h.pepper...)
	return argon2.IDKey(input, salt, iterations, memory, parallelism, size)
}
