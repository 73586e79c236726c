package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thiagodifaria/Begriff/internal/domain/model"
)

// UserRepository implements port.UserRepository using PostgreSQL.
type UserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL-backed user repository.
func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// Save persists a new or updated user.
func (r *UserRepository) Save(ctx context.Context, user *model.User) error {
	query := `
		INSERT INTO users (id, email, password_hash, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			email = EXCLUDED.email,
			password_hash = EXCLUDED.password_hash,
			is_active = EXCLUDED.is_active,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.pool.Exec(ctx, query,
		user.ID(), user.Email(), user.PasswordHash(), user.Active(), user.CreatedAt(), user.UpdatedAt(),
	)
	if err != nil {
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

// FindByID retrieves a user by its unique identifier.
func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	query := `
		SELECT id, email, password_hash, is_active, created_at, updated_at
		FROM users WHERE id = $1
	`
	return scanUser(r.pool.QueryRow(ctx, query, id))
}

// FindByEmail retrieves a user by email address.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	query := `
		SELECT id, email, password_hash, is_active, created_at, updated_at
		FROM users WHERE email = $1
	`
	return scanUser(r.pool.QueryRow(ctx, query, strings.ToLower(strings.TrimSpace(email))))
}

func scanUser(row pgx.Row) (*model.User, error) {
	var (
		id           uuid.UUID
		email        string
		passwordHash string
		active       bool
		createdAt    time.Time
		updatedAt    time.Time
	)
	err := row.Scan(&id, &email, &passwordHash, &active, &createdAt, &updatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	return model.ReconstructUser(id, email, passwordHash, active, createdAt, updatedAt), nil
}
