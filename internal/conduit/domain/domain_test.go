package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/aussiebroadwan/conduit/internal/conduit/domain"
	"github.com/aussiebroadwan/conduit/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestOptional_DistinguishesAbsentFromEmpty(t *testing.T) {
	var p domain.UserPatch
	require.NoError(t, json.Unmarshal([]byte(`{"bio":"","image":null}`), &p))

	bio, ok := p.Bio.Get()
	require.True(t, ok)
	require.Empty(t, bio)

	require.True(t, p.Image.Set)
	require.False(t, p.Username.Set)
	require.False(t, p.Email.Set)
	require.False(t, p.Password.Set)
	require.False(t, p.IsEmpty())
}

func TestUserPatch_ApplyOnlyTouchesSetFields(t *testing.T) {
	u := domain.User{Username: "jake", Email: "jake@jake.jake", Bio: "old", Image: "img"}

	p := domain.UserPatch{
		Email: domain.Some("  Jake@Example.COM "),
		Bio:   domain.Some(""),
	}
	p.Apply(&u)

	require.Equal(t, "jake", u.Username)
	require.Equal(t, "jake@example.com", u.Email)
	require.Empty(t, u.Bio)
	require.Equal(t, "img", u.Image)
	require.True(t, domain.UserPatch{}.IsEmpty())
}

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name string
		user domain.User
		want domain.FieldErrors
	}{
		{"valid", domain.User{Username: "jake", Email: "jake@jake.jake"}, domain.FieldErrors{}},
		{"blank", domain.User{}, domain.FieldErrors{"username": domain.MsgBlank, "email": domain.MsgBlank}},
		{"bad username", domain.User{Username: "ja ke", Email: "jake@jake.jake"}, domain.FieldErrors{"username": domain.MsgInvalid}},
		{"bad email", domain.User{Username: "jake", Email: "jake.jake"}, domain.FieldErrors{"email": domain.MsgInvalid}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.user.Validate())
		})
	}
}

func TestUser_SetAndValidatePassword(t *testing.T) {
	h := cryptox.NewPasswordHasher(nil)
	var u domain.User

	require.ErrorIs(t, u.SetPassword(h, ""), cryptox.ErrEmptyPassword)
	require.True(t, u.Credential.IsZero(), "failed set must not leave partial state")

	require.NoError(t, u.SetPassword(h, "hunter2"))
	first := u.Credential

	ok, err := u.ValidatePassword(h, "hunter2")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = u.ValidatePassword(h, "hunter3")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, u.SetPassword(h, "hunter2"))
	require.NotEqual(t, first.Salt, u.Credential.Salt, "salt is fresh per password set")
}

func TestUser_ValidatePasswordWithoutCredential(t *testing.T) {
	_, err := domain.User{}.ValidatePassword(cryptox.NewPasswordHasher(nil), "x")
	require.ErrorIs(t, err, cryptox.ErrCorruptCredential)
}
