package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thiagodifaria/Begriff/internal/domain/insights"
	"github.com/thiagodifaria/Begriff/internal/domain/model"
)

// TwinRepository implements port.TwinRepository using PostgreSQL. Profile and
// result are stored as JSONB.
type TwinRepository struct {
	pool *pgxpool.Pool
}

// NewTwinRepository creates a new PostgreSQL-backed twin repository.
func NewTwinRepository(pool *pgxpool.Pool) *TwinRepository {
	return &TwinRepository{pool: pool}
}

// Save persists a completed simulation.
func (r *TwinRepository) Save(ctx context.Context, twin *model.DigitalTwin) error {
	profile, err := json.Marshal(twin.Profile())
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}
	result, err := json.Marshal(twin.Result())
	if err != nil {
		return fmt.Errorf("failed to marshal result: %w", err)
	}

	query := `
		INSERT INTO digital_twins (id, user_id, profile, result, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err = r.pool.Exec(ctx, query, twin.ID(), twin.UserID(), profile, result, twin.CreatedAt())
	if err != nil {
		return fmt.Errorf("failed to save twin: %w", err)
	}
	return nil
}

// FindByUserID retrieves a user's simulations, most recent first.
func (r *TwinRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.DigitalTwin, error) {
	query := `
		SELECT id, user_id, profile, result, created_at
		FROM digital_twins
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query twins: %w", err)
	}
	defer rows.Close()

	var twins []*model.DigitalTwin
	for rows.Next() {
		var (
			id          uuid.UUID
			uid         uuid.UUID
			profileJSON []byte
			resultJSON  []byte
			createdAt   time.Time
		)
		if err := rows.Scan(&id, &uid, &profileJSON, &resultJSON, &createdAt); err != nil {
			return nil, fmt.Errorf("failed to scan twin: %w", err)
		}

		var profile insights.FinancialProfile
		if err := json.Unmarshal(profileJSON, &profile); err != nil {
			return nil, fmt.Errorf("failed to unmarshal profile: %w", err)
		}
		var result insights.SimulationResult
		if err := json.Unmarshal(resultJSON, &result); err != nil {
			return nil, fmt.Errorf("failed to unmarshal result: %w", err)
		}

		twins = append(twins, model.ReconstructDigitalTwin(id, uid, profile, result, createdAt))
	}
	return twins, rows.Err()
}
