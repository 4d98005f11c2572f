package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"fittrack/internal/models"
)

const userColumns = `id, email, username, hashed_password, is_active, is_superuser, is_verified,
	full_name, reset_token, reset_token_expires, created_at`

func (s *Store) CreateUser(ctx context.Context, u *models.User) error {
	err := s.db.QueryRowxContext(ctx, `INSERT INTO users (email, username, hashed_password, is_active, is_superuser, is_verified, full_name)
	                                   VALUES ($1, $2, $3, $4, $5, $6, $7)
	                                   RETURNING id, created_at`,
		u.Email, u.Username, u.HashedPassword, u.IsActive, u.IsSuperuser, u.IsVerified, u.FullName).
		Scan(&u.ID, &u.CreatedAt)
	return mapError(err)
}

func (s *Store) getUser(ctx context.Context, where string, arg any) (*models.User, error) {
	var u models.User
	err := s.db.GetContext(ctx, &u, `SELECT `+userColumns+` FROM users WHERE `+where, arg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *Store) UserByID(ctx context.Context, id int) (*models.User, error) {
	return s.getUser(ctx, "id=$1", id)
}

func (s *Store) UserByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getUser(ctx, "email=$1", email)
}

func (s *Store) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getUser(ctx, "username=$1", username)
}

func (s *Store) UserByResetToken(ctx context.Context, token string) (*models.User, error) {
	return s.getUser(ctx, "reset_token=$1", token)
}

// SetResetToken stores a new reset token, replacing any previous one.
func (s *Store) SetResetToken(ctx context.Context, userID int, token string, expires time.Time) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users SET reset_token=$1, reset_token_expires=$2 WHERE id=$3`, token, expires, userID)
	if err != nil {
		return mapError(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// ConsumeResetToken swaps in the new hash and clears the token, but only while the token is
// still valid at now. A missing or expired token leaves the row untouched.
func (s *Store) ConsumeResetToken(ctx context.Context, token, hashedPassword string, now time.Time) error {
	res, err := s.db.ExecContext(ctx, `UPDATE users
	                                   SET hashed_password=$1, reset_token=NULL, reset_token_expires=NULL
	                                   WHERE reset_token=$2 AND reset_token_expires >= $3`, hashedPassword, token, now)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
