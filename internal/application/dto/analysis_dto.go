package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/thiagodifaria/Begriff/internal/domain/fraud"
	"github.com/thiagodifaria/Begriff/internal/domain/model"
)

// RunAnalysisRequest is the input DTO for the RunAnalysis use case. The batch
// holds the uploaded transaction records after CSV parsing.
type RunAnalysisRequest struct {
	UserID uuid.UUID           `json:"user_id"`
	Batch  []fraud.Transaction `json:"batch"`
}

// AnalysisResponse is the output DTO returned for a completed analysis.
type AnalysisResponse struct {
	CreatedAt        time.Time            `json:"created_at"`
	CompletedAt      time.Time            `json:"completed_at"`
	Report           model.AnalysisReport `json:"report"`
	BlockchainTxHash string               `json:"blockchain_tx_hash,omitempty"`
	ID               uuid.UUID            `json:"id"`
	UserID           uuid.UUID            `json:"user_id"`
}

// GetHistoryRequest is the input DTO for listing a user's analyses.
type GetHistoryRequest struct {
	UserID uuid.UUID `json:"user_id"`
	Limit  int       `json:"limit"`
	Offset int       `json:"offset"`
}

// AnalysisFromModel maps a domain model to the response DTO.
func AnalysisFromModel(a *model.FinancialAnalysis) AnalysisResponse {
	return AnalysisResponse{
		ID:               a.ID(),
		UserID:           a.UserID(),
		Report:           a.Report(),
		BlockchainTxHash: a.BlockchainTxHash(),
		CreatedAt:        a.CreatedAt(),
		CompletedAt:      a.CompletedAt(),
	}
}
