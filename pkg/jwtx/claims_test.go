package jwtx_test

import (
	"testing"
	"time"

	"github.com/aussiebroadwan/conduit/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

func TestNewClaims(t *testing.T) {
	t0 := time.Unix(1700000000, 0).UTC()
	c := jwtx.NewClaims("alice-id", "alice", "conduit", t0, time.Hour)

	require.Equal(t, "alice-id", c.Subject)
	require.Equal(t, "alice", c.Username)
	require.Equal(t, "conduit", c.Issuer)
	require.True(t, c.IssuedAt.Time.Equal(t0))
	require.True(t, c.ExpiresAt.Time.Equal(t0.Add(time.Hour)))
}

func TestValidateRequired(t *testing.T) {
	exp := jwt.NewNumericDate(time.Now().Add(time.Hour))

	t.Run("subject and expiry present", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1", ExpiresAt: exp}}
		require.NoError(t, c.ValidateRequired())
	})

	t.Run("missing subject", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: exp}}
		require.ErrorIs(t, c.ValidateRequired(), jwtx.ErrMalformed)
	})

	t.Run("missing expiry", func(t *testing.T) {
		c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u1"}}
		require.ErrorIs(t, c.ValidateRequired(), jwtx.ErrMalformed)
	})
}

func TestValidateExpiryAt(t *testing.T) {
	t0 := time.Unix(1700000000, 0).UTC()
	c := &jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(t0)}}

	t.Run("before expiry", func(t *testing.T) {
		require.NoError(t, c.ValidateExpiryAt(t0.Add(-time.Second)))
	})

	t.Run("exactly at expiry", func(t *testing.T) {
		require.NoError(t, c.ValidateExpiryAt(t0))
	})

	t.Run("after expiry", func(t *testing.T) {
		require.ErrorIs(t, c.ValidateExpiryAt(t0.Add(time.Second)), jwtx.ErrExpired)
	})
}

func TestReason(t *testing.T) {
	require.Equal(t, "ok", jwtx.Reason(nil))
	require.Equal(t, "expired", jwtx.Reason(jwtx.ErrExpired))
	require.Equal(t, "invalid_signature", jwtx.Reason(jwtx.ErrInvalidSig))
	require.Equal(t, "malformed", jwtx.Reason(jwtx.ErrMalformed))
	require.Equal(t, "unknown", jwtx.Reason(jwt.ErrTokenExpired))
}
