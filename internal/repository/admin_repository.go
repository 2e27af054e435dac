package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/thcfit/shipping-gateway/internal/domain/model"
)

// ErrAdminNotFound is returned when no admin has the requested username.
var ErrAdminNotFound = errors.New("admin user not found")

// AdminRepository stores dbs_users rows.
type AdminRepository struct {
	db *sql.DB
}

// NewAdminRepository creates a new admin repository.
func NewAdminRepository(pg *Postgres) *AdminRepository {
	return &AdminRepository{db: pg.DB}
}

// FindByUsername returns the admin with the given username.
func (r *AdminRepository) FindByUsername(ctx context.Context, username string) (*model.AdminUser, error) {
	query := `
		SELECT id, username, password_hash, COALESCE(full_name, ''), created_at
		FROM dbs_users
		WHERE username = $1
	`

	var u model.AdminUser
	err := r.db.QueryRowContext(ctx, query, username).Scan(
		&u.ID, &u.Username, &u.PasswordHash, &u.FullName, &u.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAdminNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateIfAbsent inserts the admin unless the username already exists.
// It reports whether a row was created.
func (r *AdminRepository) CreateIfAbsent(ctx context.Context, user *model.AdminUser) (bool, error) {
	query := `
		INSERT INTO dbs_users (username, password_hash, full_name)
		VALUES ($1, $2, $3)
		ON CONFLICT (username) DO NOTHING
	`

	res, err := r.db.ExecContext(ctx, query, user.Username, user.PasswordHash, nullable(user.FullName))
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
