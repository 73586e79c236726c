package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thiagodifaria/Begriff/internal/domain/model"
)

// AnalysisRepository implements port.AnalysisRepository using PostgreSQL. The
// consolidated report is stored as JSONB.
type AnalysisRepository struct {
	pool *pgxpool.Pool
}

// NewAnalysisRepository creates a new PostgreSQL-backed analysis repository.
func NewAnalysisRepository(pool *pgxpool.Pool) *AnalysisRepository {
	return &AnalysisRepository{pool: pool}
}

// Save persists a financial analysis.
func (r *AnalysisRepository) Save(ctx context.Context, analysis *model.FinancialAnalysis) error {
	report, err := json.Marshal(analysis.Report())
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	query := `
		INSERT INTO financial_analyses (
			id, user_id, report, blockchain_tx_hash, created_at, completed_at
		) VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (id) DO UPDATE SET
			report = EXCLUDED.report,
			blockchain_tx_hash = EXCLUDED.blockchain_tx_hash,
			completed_at = EXCLUDED.completed_at
	`

	var completedAt *time.Time
	if analysis.Completed() {
		t := analysis.CompletedAt()
		completedAt = &t
	}

	_, err = r.pool.Exec(ctx, query,
		analysis.ID(),
		analysis.UserID(),
		report,
		analysis.BlockchainTxHash(),
		analysis.CreatedAt(),
		completedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// FindByID retrieves an analysis owned by the given user.
func (r *AnalysisRepository) FindByID(ctx context.Context, userID, id uuid.UUID) (*model.FinancialAnalysis, error) {
	query := `
		SELECT id, user_id, report, blockchain_tx_hash, created_at, completed_at
		FROM financial_analyses
		WHERE user_id = $1 AND id = $2
	`
	analysis, err := scanAnalysis(r.pool.QueryRow(ctx, query, userID, id))
	if err != nil {
		return nil, err
	}
	if analysis == nil {
		return nil, fmt.Errorf("analysis %s not found", id)
	}
	return analysis, nil
}

// FindByUserID retrieves a user's analyses, most recent first.
func (r *AnalysisRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.FinancialAnalysis, error) {
	query := `
		SELECT id, user_id, report, blockchain_tx_hash, created_at, completed_at
		FROM financial_analyses
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query analyses: %w", err)
	}
	defer rows.Close()

	var analyses []*model.FinancialAnalysis
	for rows.Next() {
		analysis, err := scanAnalysis(rows)
		if err != nil {
			return nil, err
		}
		analyses = append(analyses, analysis)
	}
	return analyses, rows.Err()
}

func scanAnalysis(row pgx.Row) (*model.FinancialAnalysis, error) {
	var (
		id          uuid.UUID
		userID      uuid.UUID
		reportJSON  []byte
		txHash      string
		createdAt   time.Time
		completedAt *time.Time
	)

	err := row.Scan(&id, &userID, &reportJSON, &txHash, &createdAt, &completedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to scan analysis: %w", err)
	}

	var report model.AnalysisReport
	if err := json.Unmarshal(reportJSON, &report); err != nil {
		return nil, fmt.Errorf("failed to unmarshal report: %w", err)
	}

	var completedAtVal time.Time
	if completedAt != nil {
		completedAtVal = *completedAt
	}

	return model.ReconstructFinancialAnalysis(id, userID, report, txHash, createdAt, completedAtVal), nil
}
