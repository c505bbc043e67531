package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"resume-builder/internal/shared/storage/db"
)

type PGRepo struct {
	DB *sql.DB
}

func (r *PGRepo) Create(ctx context.Context, user User) (User, error) {
	const query = `
INSERT INTO users (name, email, password, created_at)
VALUES ($1, $2, $3, now())
RETURNING id, created_at`
	err := r.DB.QueryRowContext(ctx, query, user.Name, user.Email, user.PasswordHash).
		Scan(&user.ID, &user.CreatedAt)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return User{}, ErrEmailTaken
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

func (r *PGRepo) GetByEmail(ctx context.Context, email string) (User, error) {
	const query = `
SELECT id, name, email, password, created_at
FROM users
WHERE email = $1
LIMIT 1`
	return r.scanOne(ctx, query, email)
}

func (r *PGRepo) GetByID(ctx context.Context, userID int64) (User, error) {
	const query = `
SELECT id, name, email, password, created_at
FROM users
WHERE id = $1
LIMIT 1`
	return r.scanOne(ctx, query, userID)
}

// Delete removes the user; the resumes foreign key cascades.
func (r *PGRepo) Delete(ctx context.Context, userID int64) error {
	return DeleteTx(ctx, r.DB, userID)
}

// Execer is satisfied by *sql.DB and *sql.Tx.
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// DeleteTx deletes the user through the given executor so callers can run it inside a transaction.
func DeleteTx(ctx context.Context, exec Execer, userID int64) error {
	res, err := exec.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepo) scanOne(ctx context.Context, query string, arg any) (User, error) {
	var user User
	err := r.DB.QueryRowContext(ctx, query, arg).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return user, nil
}

var _ Repo = (*PGRepo)(nil)
