package domain

import (
	"regexp"
	"strings"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+$`)
	emailPattern    = regexp.MustCompile(`\S+@\S+\.\S+`)
)

// Validation messages, in the wording conduit clients expect.
const (
	MsgBlank   = "can't be blank"
	MsgInvalid = "is invalid"
	MsgTaken   = "is already taken."
)

// FieldErrors maps a field name to a human readable message.
type FieldErrors map[string]string

// NormalizeUsername trims and lowercases a username.
func NormalizeUsername(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(s string) string { return strings.ToLower(strings.TrimSpace(s)) }

// CheckUsername returns "" when the normalized username is acceptable.
func CheckUsername(s string) string {
	switch {
	case s == "":
		return MsgBlank
	case !usernamePattern.MatchString(s):
		return MsgInvalid
	default:
		return ""
	}
}

// CheckEmail returns "" when the normalized email is acceptable.
func CheckEmail(s string) string {
	switch {
	case s == "":
		return MsgBlank
	case !emailPattern.MatchString(s):
		return MsgInvalid
	default:
		return ""
	}
}

// Validate checks the user's identity fields.
func (u User) Validate() FieldErrors {
	errs := FieldErrors{}
	if msg := CheckUsername(u.Username); msg != "" {
		errs["username"] = msg
	}
	if msg := CheckEmail(u.Email); msg != "" {
		errs["email"] = msg
	}
	return errs
}
