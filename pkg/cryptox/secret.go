package cryptox

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MinPepperBytes is the shortest pepper we accept.
const MinPepperBytes = 32

// ErrSecretTooShort is returned when a configured secret is weaker than required.
var ErrSecretTooShort = errors.New("cryptox: secret too short")

// LoadOrGenerateSecret reads a secret from file, creating the file with a
// fresh random secret when it does not exist yet. The returned bytes are the
// file contents with surrounding whitespace removed.
func LoadOrGenerateSecret(file string, minBytes int) ([]byte, error) {
	file = filepath.Clean(file)

	raw, err := os.ReadFile(file)
	if err == nil {
		return CheckSecret([]byte(strings.TrimSpace(string(raw))), minBytes)
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("read secret: %w", err)
	}

	secret, err := generateSecret(minBytes)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(file), 0o750); err != nil {
		return nil, fmt.Errorf("create secret dir: %w", err)
	}
	// A concurrent first start loses the O_EXCL race and reads the winner.
	f, err := os.OpenFile(file, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o600)
	if errors.Is(err, os.ErrExist) {
		return LoadOrGenerateSecret(file, minBytes)
	}
	if err != nil {
		return nil, fmt.Errorf("create secret: %w", err)
	}
	if _, err := f.Write(secret); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("write secret: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("write secret: %w", err)
	}
	return secret, nil
}

// CheckSecret enforces a minimum secret length.
func CheckSecret(secret []byte, minBytes int) ([]byte, error) {
	if len(secret) < minBytes {
		return nil, fmt.Errorf("%w: got %d bytes, need at least %d", ErrSecretTooShort, len(secret), minBytes)
	}
	return secret, nil
}

// generateSecret returns at least minBytes of printable secret text carrying
// max(minBytes, 32) bytes of entropy.
func generateSecret(minBytes int) ([]byte, error) {
	buf := make([]byte, max(minBytes, 32))
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrEntropyExhausted, err)
	}
	out := make([]byte, base64.RawURLEncoding.EncodedLen(len(buf)))
	base64.RawURLEncoding.Encode(out, buf)
	return out, nil
}
