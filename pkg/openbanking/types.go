// Package openbanking provides data types and provider interfaces for open
// banking integrations (bank account linking, transaction syncing).
package openbanking

import (
	"context"

	"github.com/google/uuid"
)

// Transaction represents a single transaction fetched from an external
// bank account.
type Transaction struct {
	// TransactionID is the provider-assigned transaction identifier.
	TransactionID string
	// Description is the merchant or counterparty description.
	Description string
	// Amount is the transaction amount as a decimal string
	// (positive = credit, negative = debit).
	Amount string
	// Currency is the ISO 4217 currency code.
	Currency string
	// Category is the provider's spending category for the transaction.
	Category string
	// Date is the transaction date in ISO 8601 format (YYYY-MM-DD).
	Date string
	// Pending indicates if the transaction is still pending.
	Pending bool
}

// Provider defines the interface for open banking transaction providers.
// Implementations may be real API clients or scripted mocks for development.
type Provider interface {
	// GetTransactions fetches recent transactions for the given user. The
	// auth token identifies the user's consent session at the provider.
	GetTransactions(ctx context.Context, userID uuid.UUID, authToken string) ([]Transaction, error)
}
