package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/thiagodifaria/Begriff/internal/domain/model"
	"github.com/thiagodifaria/Begriff/pkg/openbanking"
)

// AnalysisRepository defines the persistence port for financial analyses.
type AnalysisRepository interface {
	// Save persists a completed financial analysis.
	Save(ctx context.Context, analysis *model.FinancialAnalysis) error

	// FindByID retrieves an analysis by its unique identifier.
	FindByID(ctx context.Context, userID, id uuid.UUID) (*model.FinancialAnalysis, error)

	// FindByUserID retrieves a user's analyses, most recent first.
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.FinancialAnalysis, error)
}

// UserRepository defines the persistence port for user accounts.
type UserRepository interface {
	// Save persists a new or updated user.
	Save(ctx context.Context, user *model.User) error

	// FindByID retrieves a user by its unique identifier.
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)

	// FindByEmail retrieves a user by email address.
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

// TransactionRepository defines the persistence port for synchronized bank
// transactions.
type TransactionRepository interface {
	// SaveBatch upserts a batch of transactions for a user, keyed by the
	// provider's transaction ID. It returns the number of new rows.
	SaveBatch(ctx context.Context, userID uuid.UUID, batch []openbanking.Transaction) (int, error)

	// FindByUserID retrieves a user's synchronized transactions, newest first.
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]openbanking.Transaction, error)
}

// TwinRepository defines the persistence port for digital twin simulations.
type TwinRepository interface {
	// Save persists a completed simulation.
	Save(ctx context.Context, twin *model.DigitalTwin) error

	// FindByUserID retrieves a user's simulations, most recent first.
	FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.DigitalTwin, error)
}
