package domain

import (
	"time"

	"github.com/aussiebroadwan/conduit/pkg/cryptox"
)

// User is a registered account. Username and Email are stored lowercase.
type User struct {
	ID         string
	Username   string
	Email      string
	Bio        string
	Image      string
	Credential cryptox.Credential // argon2id hash + per-password salt
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SetPassword derives a fresh credential for plaintext and swaps it in as a
// whole. On error the previous credential is left untouched.
func (u *User) SetPassword(h *cryptox.PasswordHasher, plaintext string) error {
	c, err := h.Derive(plaintext)
	if err != nil {
		return err
	}
	u.Credential = c
	return nil
}

// ValidatePassword reports whether plaintext matches the stored credential.
// A wrong password is (false, nil); a missing or damaged credential is an
// error.
func (u User) ValidatePassword(h *cryptox.PasswordHasher, plaintext string) (bool, error) {
	if u.Credential.IsZero() {
		return false, cryptox.ErrCorruptCredential
	}
	return h.Verify(u.Credential, plaintext)
}
