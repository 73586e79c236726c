package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/thiagodifaria/Begriff/pkg/openbanking"
)

// TransactionRepository implements port.TransactionRepository using
// PostgreSQL.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new PostgreSQL-backed transaction
// repository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// SaveBatch upserts the batch keyed by (user_id, provider_transaction_id) and
// returns the number of newly inserted rows.
func (r *TransactionRepository) SaveBatch(ctx context.Context, userID uuid.UUID, batch []openbanking.Transaction) (int, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck

	query := `
		INSERT INTO bank_transactions (
			user_id, provider_transaction_id, description, amount, currency,
			category, transaction_date, pending
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, provider_transaction_id) DO UPDATE SET
			description = EXCLUDED.description,
			amount = EXCLUDED.amount,
			category = EXCLUDED.category,
			pending = EXCLUDED.pending
		RETURNING (xmax = 0)
	`

	inserted := 0
	for _, t := range batch {
		var isNew bool
		err := tx.QueryRow(ctx, query,
			userID, t.TransactionID, t.Description, t.Amount, t.Currency,
			t.Category, t.Date, t.Pending,
		).Scan(&isNew)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert transaction %s: %w", t.TransactionID, err)
		}
		if isNew {
			inserted++
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return inserted, nil
}

// FindByUserID retrieves a user's synchronized transactions, newest first.
func (r *TransactionRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]openbanking.Transaction, error) {
	query := `
		SELECT provider_transaction_id, description, amount, currency,
			category, transaction_date, pending
		FROM bank_transactions
		WHERE user_id = $1
		ORDER BY transaction_date DESC
		LIMIT $2 OFFSET $3
	`
	rows, err := r.pool.Query(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	var out []openbanking.Transaction
	for rows.Next() {
		var t openbanking.Transaction
		if err := rows.Scan(&t.TransactionID, &t.Description, &t.Amount, &t.Currency, &t.Category, &t.Date, &t.Pending); err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}
