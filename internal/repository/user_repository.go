package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/go-sql-driver/mysql"

	"github.com/iliyamo/task-tracker/internal/model"
)

// UserRepo encapsulates all database queries related to users. Emails are
// normalized to lowercase before every lookup or insert so that the unique
// index on users.email is effectively case-insensitive.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the provided DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a new user row. The caller supplies the id (allocated from
// the user_id sequence) and the bcrypt hash. A duplicate email returns
// ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	const q = `INSERT INTO users (id, full_name, email, password_hash, created_at, updated_at)
	           VALUES (?,?,?,?,?,?)`
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	_, err := r.db.ExecContext(ctx, q,
		u.ID, u.FullName, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
	if err != nil {
		// MySQL error 1062: duplicate entry for a unique key.
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return ErrEmailExists
		}
		return err
	}
	return nil
}

// GetByEmail fetches a user by normalized email. ErrUserNotFound is returned
// when no row matches.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	const q = `SELECT id, full_name, email, password_hash, created_at, updated_at
	           FROM users WHERE email = ? LIMIT 1`
	email = strings.ToLower(strings.TrimSpace(email))
	var u model.User
	err := r.db.QueryRowContext(ctx, q, email).
		Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	const q = `SELECT id, full_name, email, password_hash, created_at, updated_at
	           FROM users WHERE id = ? LIMIT 1`
	var u model.User
	err := r.db.QueryRowContext(ctx, q, id).
		Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}
