package postgres

import (
	"context"

	"github.com/aussiebroadwan/conduit/internal/conduit/domain"
	"github.com/aussiebroadwan/conduit/internal/conduit/store"
	"github.com/aussiebroadwan/conduit/pkg/cryptox"
	"github.com/jackc/pgx/v5"
)

const userColumns = `id, username, email, bio, image, password_hash, password_salt, created_at, updated_at`

type usersRepo struct {
	q querier
}

func scanUser(row pgx.Row) (domain.User, error) {
	var (
		u          domain.User
		hash, salt []byte
	)
	err := row.Scan(
		&u.ID,
		&u.Username,
		&u.Email,
		&u.Bio,
		&u.Image,
		&hash,
		&salt,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	u.Credential = cryptox.Credential{Hash: hash, Salt: salt}
	return u, nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
}

func (r *usersRepo) GetUserByUsername(ctx context.Context, username string) (domain.User, error) {
	return scanUser(r.q.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO users (id, username, email, bio, image, password_hash, password_salt)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Username, u.Email, u.Bio, u.Image, u.Credential.Hash, u.Credential.Salt,
	)
	return mapConflict(err)
}

func (r *usersRepo) UpdateUser(ctx context.Context, u domain.User) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE users
		    SET username = $2, email = $3, bio = $4, image = $5,
		        password_hash = $6, password_salt = $7, updated_at = now()
		  WHERE id = $1`,
		u.ID, u.Username, u.Email, u.Bio, u.Image, u.Credential.Hash, u.Credential.Salt,
	)
	if err != nil {
		return mapConflict(err)
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}
