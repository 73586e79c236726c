package openbanking

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	pkgob "github.com/thiagodifaria/Begriff/pkg/openbanking"
)

// MockProvider implements the provider interface with a scripted transaction
// set, standing in for a real bank connection during development.
type MockProvider struct {
	logger *slog.Logger
}

// NewMockProvider creates a new mock open banking provider.
func NewMockProvider(logger *slog.Logger) *MockProvider {
	return &MockProvider{logger: logger}
}

// GetTransactions returns the scripted transaction set. The auth token must
// be present but is otherwise ignored.
func (p *MockProvider) GetTransactions(ctx context.Context, userID uuid.UUID, authToken string) ([]pkgob.Transaction, error) {
	if authToken == "" {
		return nil, fmt.Errorf("auth token is required")
	}

	p.logger.DebugContext(ctx, "fetching mock transactions",
		slog.String("user_id", userID.String()),
	)

	return []pkgob.Transaction{
		{TransactionID: "mock-001", Description: "Monthly Salary", Amount: "5000.00", Currency: "EUR", Category: "Income", Date: "2025-07-01"},
		{TransactionID: "mock-002", Description: "Grocery Shopping", Amount: "-75.50", Currency: "EUR", Category: "Food", Date: "2025-07-03"},
		{TransactionID: "mock-003", Description: "Electricity Bill", Amount: "-120.00", Currency: "EUR", Category: "Utilities", Date: "2025-07-05"},
		{TransactionID: "mock-004", Description: "Online Subscription", Amount: "-15.00", Currency: "EUR", Category: "Entertainment", Date: "2025-07-10"},
		{TransactionID: "mock-005", Description: "Dinner with Friends", Amount: "-55.25", Currency: "EUR", Category: "Social", Date: "2025-07-12"},
	}, nil
}
