package store

import (
	"context"
	"errors"

	"github.com/aussiebroadwan/conduit/internal/conduit/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")

	// ErrNestedTx is returned when a transaction is started from a
	// Tx-scoped store.
	ErrNestedTx = errors.New("store: nested transactions are not supported")
)

// ConflictError reports a uniqueness violation on a specific logical field
// ("username", "email"). It matches ErrAlreadyExists with errors.Is.
type ConflictError struct {
	Field string
}

func (e *ConflictError) Error() string {
	if e.Field == "" {
		return ErrAlreadyExists.Error()
	}
	return ErrAlreadyExists.Error() + ": " + e.Field
}

func (e *ConflictError) Unwrap() error { return ErrAlreadyExists }

// ConflictField returns the conflicting field of err, if it is a conflict.
func ConflictField(err error) (string, bool) {
	var ce *ConflictError
	if !errors.As(err, &ce) {
		return "", false
	}
	return ce.Field, true
}

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. Repositories hang off it as methods so a Tx-scoped store
// hands out repositories bound to the same transaction.
type Store interface {
	Users() Users

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes fn within a transaction. If fn returns an error the
	// transaction is rolled back, otherwise it is committed.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources.
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is used during login. email must already be normalized.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// GetUserByUsername backs the public profile lookup.
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	// Duplicate username or email yields a *ConflictError.
	CreateUser(ctx context.Context, u domain.User) error

	// UpdateUser writes every mutable column of u in one statement and bumps
	// updated_at. Returns ErrNotFound when the id does not exist.
	UpdateUser(ctx context.Context, u domain.User) error
}
