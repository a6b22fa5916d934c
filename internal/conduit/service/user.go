package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/aussiebroadwan/conduit/internal/conduit/domain"
	"github.com/aussiebroadwan/conduit/internal/conduit/metrics"
	"github.com/aussiebroadwan/conduit/internal/conduit/store"
	"github.com/aussiebroadwan/conduit/pkg/cryptox"
	"github.com/aussiebroadwan/conduit/pkg/idx"
	"github.com/aussiebroadwan/conduit/pkg/jwtx"
	"github.com/aussiebroadwan/conduit/pkg/slogx"
)

type UserService struct {
	Store    store.Store
	Hasher   *cryptox.PasswordHasher
	Tokens   *jwtx.HMACIssuer
	TokenTTL time.Duration
	KDF      *KDFPool
	Metrics  *metrics.Metrics

	// Clock defaults to time.Now.
	Clock func() time.Time
}

// Session is a user together with a freshly issued token.
type Session struct {
	User  domain.User
	Token string
}

// Profile is the public view of a user. Owner is true when the viewer is
// the profile's own user.
type Profile struct {
	User  domain.User
	Owner bool
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

func (s *UserService) now() time.Time {
	if s.Clock != nil {
		return s.Clock()
	}
	return time.Now()
}

func (s *UserService) ttl() time.Duration {
	if s.TokenTTL > 0 {
		return s.TokenTTL
	}
	return jwtx.DefaultTokenTTL
}

// IssueToken signs a session token for u valid from now for TokenTTL.
func (s *UserService) IssueToken(u domain.User) (string, error) {
	return s.Tokens.Generate(u.ID, u.Username, s.now(), s.ttl())
}

// Register validates the input, derives the credential and stores the user.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (Session, error) {
	log := slogx.FromContext(ctx)

	u := domain.User{
		ID:       idx.NewAt(s.now()),
		Username: domain.NormalizeUsername(in.Username),
		Email:    domain.NormalizeEmail(in.Email),
	}

	fields := u.Validate()
	if in.Password == "" {
		fields["password"] = domain.MsgBlank
	}
	if len(fields) > 0 {
		s.Metrics.Registration("invalid")
		return Session{}, &ValidationError{Fields: fields}
	}

	var setErr error
	if err := s.KDF.Do(ctx, "derive", func() { setErr = u.SetPassword(s.Hasher, in.Password) }); err != nil {
		return Session{}, err
	}
	if setErr != nil {
		s.Metrics.Registration("error")
		log.Error("failed to derive credential", slog.Any("error", setErr))
		return Session{}, setErr
	}

	if err := s.Store.Users().CreateUser(ctx, u); err != nil {
		if field, ok := store.ConflictField(err); ok {
			s.Metrics.Registration("conflict")
			log.Info("registration conflict", slog.String("field", field))
			if field == "" {
				field = "username"
			}
			return Session{}, newValidationError(field, domain.MsgTaken)
		}
		s.Metrics.Registration("error")
		log.Error("failed to create user", slog.Any("error", err))
		return Session{}, err
	}

	token, err := s.IssueToken(u)
	if err != nil {
		return Session{}, err
	}

	s.Metrics.Registration("success")
	log.Info("user registered", slog.String("user_id", u.ID))
	return Session{User: u, Token: token}, nil
}

// Login checks email and password. Any mismatch is ErrInvalidCredentials.
func (s *UserService) Login(ctx context.Context, email, password string) (Session, error) {
	log := slogx.FromContext(ctx)

	switch {
	case email == "":
		return Session{}, newValidationError("email", domain.MsgBlank)
	case password == "":
		return Session{}, newValidationError("password", domain.MsgBlank)
	}

	u, err := s.Store.Users().GetUserByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		s.Metrics.Login("error")
		log.Error("failed to fetch user", slog.Any("error", err))
		return Session{}, err
	}
	found := err == nil

	cred := decoy
	if found {
		cred = u.Credential
	}

	var (
		ok        bool
		verifyErr error
	)
	if err := s.KDF.Do(ctx, "verify", func() { ok, verifyErr = s.Hasher.Verify(cred, password) }); err != nil {
		return Session{}, err
	}
	if verifyErr != nil {
		s.Metrics.Login("error")
		log.Error("stored credential unusable", slog.String("user_id", u.ID), slog.Any("error", verifyErr))
		return Session{}, verifyErr
	}
	if !found || !ok {
		s.Metrics.Login("invalid")
		log.Info("login rejected", slog.Bool("known_email", found))
		return Session{}, ErrInvalidCredentials
	}

	token, err := s.IssueToken(u)
	if err != nil {
		return Session{}, err
	}

	s.Metrics.Login("success")
	return Session{User: u, Token: token}, nil
}

// GetUserByID fetches a user by id.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (domain.User, error) {
	if !idx.Valid(userID) {
		return domain.User{}, ErrUserNotFound
	}
	u, err := s.Store.Users().GetUserByID(ctx, userID)
	if errors.Is(err, store.ErrNotFound) {
		return domain.User{}, ErrUserNotFound
	}
	return u, err
}

// CurrentUser returns the authenticated user with a regenerated token.
func (s *UserService) CurrentUser(ctx context.Context, userID string) (Session, error) {
	u, err := s.GetUserByID(ctx, userID)
	if err != nil {
		return Session{}, err
	}
	token, err := s.IssueToken(u)
	if err != nil {
		return Session{}, err
	}
	return Session{User: u, Token: token}, nil
}

// UpdateUser applies patch to the user and persists the whole record in one
// transaction. A new password is set on a scratch user before the
// transaction opens so no row is held during the KDF. An empty patch writes
// nothing.
func (s *UserService) UpdateUser(ctx context.Context, userID string, patch domain.UserPatch) (Session, error) {
	log := slogx.FromContext(ctx)

	if patch.IsEmpty() {
		return s.CurrentUser(ctx, userID)
	}

	var fresh *cryptox.Credential
	if pw, ok := patch.Password.Get(); ok {
		if pw == "" {
			return Session{}, newValidationError("password", domain.MsgBlank)
		}

		var (
			scratch   domain.User
			deriveErr error
		)
		if err := s.KDF.Do(ctx, "derive", func() { deriveErr = scratch.SetPassword(s.Hasher, pw) }); err != nil {
			return Session{}, err
		}
		if deriveErr != nil {
			log.Error("failed to derive credential", slog.Any("error", deriveErr))
			return Session{}, deriveErr
		}
		fresh = &scratch.Credential
	}

	var updated domain.User
	err := s.Store.WithTx(ctx, func(tx store.Tx) error {
		u, err := tx.Users().GetUserByID(ctx, userID)
		if err != nil {
			return err
		}

		patch.Apply(&u)
		if fields := u.Validate(); len(fields) > 0 {
			return &ValidationError{Fields: fields}
		}
		if fresh != nil {
			u.Credential = *fresh
		}

		if err := tx.Users().UpdateUser(ctx, u); err != nil {
			return err
		}
		updated = u
		return nil
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Session{}, ErrUserNotFound
		}
		if field, ok := store.ConflictField(err); ok {
			return Session{}, newValidationError(field, domain.MsgTaken)
		}
		return Session{}, err
	}

	log.Info("user updated",
		slog.String("user_id", userID),
		slog.Bool("password_changed", fresh != nil),
	)

	token, err := s.IssueToken(updated)
	if err != nil {
		return Session{}, err
	}
	return Session{User: updated, Token: token}, nil
}

// GetProfile looks up a public profile. viewerID is empty for anonymous
// requests.
func (s *UserService) GetProfile(ctx context.Context, username, viewerID string) (Profile, error) {
	u, err := s.Store.Users().GetUserByUsername(ctx, domain.NormalizeUsername(username))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return Profile{}, ErrProfileNotFound
		}
		return Profile{}, err
	}
	return Profile{User: u, Owner: viewerID != "" && viewerID == u.ID}, nil
}
