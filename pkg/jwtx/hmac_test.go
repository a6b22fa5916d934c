package jwtx_test

import (
	"encoding/base64"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/aussiebroadwan/conduit/pkg/jwtx"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("0123456789abcdef0123456789abcdef")

// fakeClock is a settable clock for expiry tests.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = t
}

func newIssuer(t *testing.T, clock *fakeClock) *jwtx.HMACIssuer {
	t.Helper()
	iss, err := jwtx.NewHMACIssuer(testSecret, jwtx.HMACOptions{Issuer: "conduit", Clock: clock.Now})
	require.NoError(t, err)
	return iss
}

func TestNewHMACIssuer_RejectsWeakSecret(t *testing.T) {
	_, err := jwtx.NewHMACIssuer([]byte("too-short"), jwtx.HMACOptions{})
	require.ErrorIs(t, err, jwtx.ErrWeakSecret)
}

func TestGenerateThenVerify(t *testing.T) {
	t0 := time.Unix(1700000000, 0).UTC()
	clock := &fakeClock{now: t0}
	iss := newIssuer(t, clock)

	token, err := iss.Generate("alice", "alice", t0, time.Hour)
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3)

	sub, err := iss.VerifySubject(token)
	require.NoError(t, err)
	require.Equal(t, "alice", sub)

	claims, err := iss.Verify(token)
	require.NoError(t, err)
	require.Equal(t, "conduit", claims.Issuer)
	require.Equal(t, "alice", claims.Username)
}

func TestVerify_ExpiryScenario(t *testing.T) {
	t0 := time.Unix(1700000000, 0).UTC()
	clock := &fakeClock{now: t0}
	iss := newIssuer(t, clock)

	token, err := iss.Generate("alice", "", t0, 3600*time.Second)
	require.NoError(t, err)

	clock.Set(t0.Add(100 * time.Second))
	sub, err := iss.VerifySubject(token)
	require.NoError(t, err)
	require.Equal(t, "alice", sub)

	clock.Set(t0.Add(4000 * time.Second))
	_, err = iss.VerifySubject(token)
	require.ErrorIs(t, err, jwtx.ErrExpired)
}

func TestGenerate_Deterministic(t *testing.T) {
	t0 := time.Unix(1700000000, 0).UTC()
	iss := newIssuer(t, &fakeClock{now: t0})

	a, err := iss.Generate("alice", "alice", t0, time.Hour)
	require.NoError(t, err)
	b, err := iss.Generate("alice", "alice", t0, time.Hour)
	require.NoError(t, err)
	require.Equal(t, a, b)

	c, err := iss.Generate("alice", "alice", t0.Add(time.Second), time.Hour)
	require.NoError(t, err)
	require.NotEqual(t, a, c, "different issuedAt must change the token")
}

func TestGenerate_InvalidInput(t *testing.T) {
	t0 := time.Unix(1700000000, 0).UTC()
	iss := newIssuer(t, &fakeClock{now: t0})

	_, err := iss.Generate("", "", t0, time.Hour)
	require.Error(t, err)

	_, err = iss.Generate("alice", "", t0, 0)
	require.Error(t, err)
}

func TestVerify_FlippedSignatureBit(t *testing.T) {
	t0 := time.Unix(1700000000, 0).UTC()
	iss := newIssuer(t, &fakeClock{now: t0})

	token, err := iss.Generate("alice", "", t0, time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	sig, err := base64.RawURLEncoding.DecodeString(parts[2])
	require.NoError(t, err)
	sig[0] ^= 0x01
	parts[2] = base64.RawURLEncoding.EncodeToString(sig)

	_, err = iss.Verify(strings.Join(parts, "."))
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerify_TamperedPayload(t *testing.T) {
	t0 := time.Unix(1700000000, 0).UTC()
	iss := newIssuer(t, &fakeClock{now: t0})

	token, err := iss.Generate("alice", "", t0, time.Hour)
	require.NoError(t, err)

	forged, err := iss.Generate("mallory", "", t0, time.Hour)
	require.NoError(t, err)

	// alice's header and signature around mallory's payload
	a := strings.Split(token, ".")
	m := strings.Split(forged, ".")
	_, err = iss.Verify(a[0] + "." + m[1] + "." + a[2])
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerify_WrongSecret(t *testing.T) {
	t0 := time.Unix(1700000000, 0).UTC()
	clock := &fakeClock{now: t0}

	other, err := jwtx.NewHMACIssuer([]byte("ffffffffffffffffffffffffffffffff"), jwtx.HMACOptions{Clock: clock.Now})
	require.NoError(t, err)
	token, err := other.Generate("alice", "", t0, time.Hour)
	require.NoError(t, err)

	_, err = newIssuer(t, clock).Verify(token)
	require.ErrorIs(t, err, jwtx.ErrInvalidSig)
}

func TestVerify_RejectsOtherAlgorithms(t *testing.T) {
	t0 := time.Unix(1700000000, 0).UTC()
	iss := newIssuer(t, &fakeClock{now: t0})
	claims := jwtx.NewClaims("alice", "", "conduit", t0, time.Hour)

	t.Run("alg none", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
		require.NoError(t, err)
		_, err = iss.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})

	t.Run("HS512 with the same secret", func(t *testing.T) {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString(testSecret)
		require.NoError(t, err)
		_, err = iss.Verify(token)
		require.ErrorIs(t, err, jwtx.ErrInvalidSig)
	})
}

func TestVerify_Malformed(t *testing.T) {
	t0 := time.Unix(1700000000, 0).UTC()
	iss := newIssuer(t, &fakeClock{now: t0})

	noExp, err := iss.Sign(jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "alice"}})
	require.NoError(t, err)
	noSub, err := iss.Sign(jwtx.Claims{RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(t0.Add(time.Hour))}})
	require.NoError(t, err)

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"two parts", "abc.def"},
		{"bad base64 header", "!!!.e30.c2ln"},
		{"payload not json", "eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.bm90LWpzb24.c2ln"},
		{"missing exp", noExp},
		{"missing sub", noSub},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := iss.Verify(tt.token)
			require.ErrorIs(t, err, jwtx.ErrMalformed)
		})
	}
}
