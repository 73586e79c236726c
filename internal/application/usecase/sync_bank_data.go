package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/thiagodifaria/Begriff/internal/domain/port"
	"github.com/thiagodifaria/Begriff/pkg/openbanking"
)

// SyncBankData is the use case for pulling transactions from an open banking
// provider into local storage.
type SyncBankData struct {
	provider openbanking.Provider
	repo     port.TransactionRepository
}

// NewSyncBankData creates a new SyncBankData use case.
func NewSyncBankData(provider openbanking.Provider, repo port.TransactionRepository) *SyncBankData {
	return &SyncBankData{provider: provider, repo: repo}
}

// SyncResult reports the outcome of one synchronization run.
type SyncResult struct {
	Fetched int `json:"fetched"`
	Stored  int `json:"stored"`
}

// Execute fetches the user's transactions from the provider and upserts them.
func (uc *SyncBankData) Execute(ctx context.Context, userID uuid.UUID, authToken string) (SyncResult, error) {
	batch, err := uc.provider.GetTransactions(ctx, userID, authToken)
	if err != nil {
		return SyncResult{}, fmt.Errorf("failed to fetch transactions: %w", err)
	}

	stored, err := uc.repo.SaveBatch(ctx, userID, batch)
	if err != nil {
		return SyncResult{}, fmt.Errorf("failed to store transactions: %w", err)
	}

	return SyncResult{Fetched: len(batch), Stored: stored}, nil
}
