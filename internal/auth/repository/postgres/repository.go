package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/watchjournal/backend/db"
	"github.com/watchjournal/backend/internal/auth/domain"
	apperrors "github.com/watchjournal/backend/internal/errors"
)

type Repository struct {
	db *db.DB
}

func NewRepository(database *db.DB) *Repository {
	return &Repository{db: database}
}

func (r *Repository) Create(ctx context.Context, user *domain.User) (int64, error) {
	const query = `
		INSERT INTO users (email, password_hash, display_name)
		VALUES ($1, $2, $3)
		RETURNING id`

	var id int64
	err := r.db.Pool.QueryRow(ctx, query, user.Email, user.PasswordHash, user.DisplayName).Scan(&id)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return 0, apperrors.ErrEmailAlreadyInUse
		}
		return 0, fmt.Errorf("failed to create user: %w", err)
	}

	return id, nil
}

func (r *Repository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const query = `
		SELECT id, email, password_hash, display_name, created_at
		FROM users
		WHERE email = $1`

	row := r.db.Pool.QueryRow(ctx, query, email)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &user, nil
}

func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	const query = `
		SELECT id, email, password_hash, display_name, created_at
		FROM users
		WHERE id = $1`

	row := r.db.Pool.QueryRow(ctx, query, id)

	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.DisplayName, &user.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}

	return &user, nil
}

func (r *Repository) Store(ctx context.Context, token *domain.AuthToken) error {
	const query = `
		INSERT INTO auth_tokens (token, user_id, expires_at)
		VALUES ($1, $2, $3)`

	_, err := r.db.Pool.Exec(ctx, query, token.Token, token.UserID, token.ExpiresAt)
	if err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	return nil
}

func (r *Repository) FindUserID(ctx context.Context, token string, now time.Time) (int64, error) {
	const query = `
		SELECT user_id
		FROM auth_tokens
		WHERE token = $1 AND expires_at > $2`

	var userID int64
	err := r.db.Pool.QueryRow(ctx, query, token, now).Scan(&userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to resolve token: %w", err)
	}

	return userID, nil
}

func (r *Repository) Delete(ctx context.Context, token string) error {
	const query = `DELETE FROM auth_tokens WHERE token = $1`

	if _, err := r.db.Pool.Exec(ctx, query, token); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}

	return nil
}
