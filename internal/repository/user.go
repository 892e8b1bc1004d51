package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/plazonkr-creator/github-actions-demo-day2/internal/model"
)

// Common errors for user repository operations.
var (
	ErrUserExists = errors.New("username or email already exists")
)

// ListUsers returns up to limit users, newest first.
func (r *Repository) ListUsers(ctx context.Context, limit int) ([]model.User, error) {
	query := `
		SELECT id, username, email, created_at
		FROM users
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users, err := pgx.CollectRows(rows, pgx.RowToStructByPos[model.User])
	if err != nil {
		return nil, fmt.Errorf("failed to scan users: %w", err)
	}

	return users, nil
}

// CreateUser inserts a user and returns the stored row with its generated
// id and created_at. A duplicate username or email yields ErrUserExists.
func (r *Repository) CreateUser(ctx context.Context, username, email string) (*model.User, error) {
	query := `
		INSERT INTO users (username, email)
		VALUES ($1, $2)
		RETURNING id, username, email, created_at
	`

	var user model.User
	err := r.pool.QueryRow(ctx, query, username, email).Scan(
		&user.ID,
		&user.Username,
		&user.Email,
		&user.CreatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return &user, nil
}

// CountUsers returns the number of rows in users.
func (r *Repository) CountUsers(ctx context.Context) (int64, error) {
	var n int64
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return n, nil
}
