package cryptox

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

var testPepper = []byte("test-pepper-value")

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) { return 0, errors.New("entropy pool drained") }

func TestDerive(t *testing.T) {
	h := NewPasswordHasher(testPepper)

	tests := []struct {
		name     string
		password string
	}{
		{"simple password", "password123"},
		{"complex password", "P@ssw0rd!#$%^&*()"},
		{"long password", strings.Repeat("a", 100)},
		{"unicode password", "пароль🔒密码"},
		{"whitespace password", "   spaces   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := h.Derive(tt.password)
			require.NoError(t, err)
			require.Len(t, c.Salt, SaltLength)
			require.Len(t, c.Hash, keyLength)
			require.False(t, c.IsZero())

			// plaintext never ends up in the credential
			require.False(t, bytes.Contains(c.Hash, []byte(tt.password)))
		})
	}
}

func TestDerive_EmptyPassword(t *testing.T) {
	h := NewPasswordHasher(testPepper)
	c, err := h.Derive("")
	require.ErrorIs(t, err, ErrEmptyPassword)
	require.True(t, c.IsZero())
}

func TestDerive_EntropyExhausted(t *testing.T) {
	h := NewPasswordHasher(testPepper)
	h.random = failingReader{}

	c, err := h.Derive("s3cret")
	require.ErrorIs(t, err, ErrEntropyExhausted)
	require.True(t, c.IsZero())
}

func TestDerive_FreshSaltEveryTime(t *testing.T) {
	h := NewPasswordHasher(testPepper)

	c1, err := h.Derive("samepassword")
	require.NoError(t, err)
	c2, err := h.Derive("samepassword")
	require.NoError(t, err)

	require.NotEqual(t, c1.Salt, c2.Salt, "salts should differ")
	require.NotEqual(t, c1.Hash, c2.Hash, "hashes should differ due to unique salts")

	ok, err := h.Verify(c1, "samepassword")
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = h.Verify(c2, "samepassword")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerify_Scenario(t *testing.T) {
	h := NewPasswordHasher(testPepper)

	c, err := h.Derive("s3cret")
	require.NoError(t, err)

	ok, err := h.Verify(c, "s3cret")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = h.Verify(c, "wrong")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerify_WrongPassword(t *testing.T) {
	h := NewPasswordHasher(testPepper)
	c, err := h.Derive("correct-password")
	require.NoError(t, err)

	for _, wrong := range []string{
		"wrong-password",
		"Correct-Password",
		"correct-password ",
		"",
		"correct-passwor",
		strings.Repeat("x", 10000),
	} {
		ok, err := h.Verify(c, wrong)
		require.NoError(t, err, wrong)
		require.False(t, ok, wrong)
	}
}

func TestVerify_PepperMatters(t *testing.T) {
	c, err := NewPasswordHasher([]byte("pepper-a")).Derive("s3cret")
	require.NoError(t, err)

	ok, err := NewPasswordHasher([]byte("pepper-b")).Verify(c, "s3cret")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestVerify_CorruptCredential(t *testing.T) {
	h := NewPasswordHasher(testPepper)
	good, err := h.Derive("s3cret")
	require.NoError(t, err)

	tests := []struct {
		name string
		c    Credential
	}{
		{"zero credential", Credential{}},
		{"missing salt", Credential{Hash: good.Hash}},
		{"missing hash", Credential{Salt: good.Salt}},
		{"short hash", Credential{Hash: good.Hash[:10], Salt: good.Salt}},
		{"short salt", Credential{Hash: good.Hash, Salt: good.Salt[:4]}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify(tt.c, "s3cret")
			require.ErrorIs(t, err, ErrCorruptCredential)
			require.False(t, ok)
		})
	}
}

func TestPasswordHasher_ConcurrentUse(t *testing.T) {
	h := NewPasswordHasher(testPepper)
	c, err := h.Derive("shared")
	require.NoError(t, err)

	errs := make(chan error, 8)
	for range 8 {
		go func() {
			ok, err := h.Verify(c, "shared")
			if err == nil && !ok {
				err = errors.New("verify returned false")
			}
			errs <- err
		}()
	}
	for range 8 {
		require.NoError(t, <-errs)
	}
}
