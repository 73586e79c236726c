package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/thiagodifaria/Begriff/internal/application/dto"
	"github.com/thiagodifaria/Begriff/internal/domain/port"
)

// GetHistory is the use case for listing a user's past analyses.
type GetHistory struct {
	repo port.AnalysisRepository
}

// NewGetHistory creates a new GetHistory use case.
func NewGetHistory(repo port.AnalysisRepository) *GetHistory {
	return &GetHistory{repo: repo}
}

// Execute returns the user's analyses, most recent first.
func (uc *GetHistory) Execute(ctx context.Context, req dto.GetHistoryRequest) ([]dto.AnalysisResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	offset := req.Offset
	if offset < 0 {
		offset = 0
	}

	analyses, err := uc.repo.FindByUserID(ctx, req.UserID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}

	out := make([]dto.AnalysisResponse, 0, len(analyses))
	for _, a := range analyses {
		out = append(out, dto.AnalysisFromModel(a))
	}
	return out, nil
}

// GetAnalysis is the use case for fetching a single analysis.
type GetAnalysis struct {
	repo port.AnalysisRepository
}

// NewGetAnalysis creates a new GetAnalysis use case.
func NewGetAnalysis(repo port.AnalysisRepository) *GetAnalysis {
	return &GetAnalysis{repo: repo}
}

// Execute returns one analysis owned by the user.
func (uc *GetAnalysis) Execute(ctx context.Context, userID, analysisID uuid.UUID) (dto.AnalysisResponse, error) {
	analysis, err := uc.repo.FindByID(ctx, userID, analysisID)
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("failed to find analysis: %w", err)
	}
	return dto.AnalysisFromModel(analysis), nil
}
