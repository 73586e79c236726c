package usecase

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/thiagodifaria/Begriff/internal/application/dto"
	"github.com/thiagodifaria/Begriff/internal/domain/insights"
	"github.com/thiagodifaria/Begriff/internal/domain/model"
	"github.com/thiagodifaria/Begriff/internal/domain/port"
)

// SimulateTwin is the use case for running and storing a digital twin
// projection.
type SimulateTwin struct {
	repo   port.TwinRepository
	newRng func() *rand.Rand
}

// NewSimulateTwin creates a new SimulateTwin use case. The rng factory is
// called once per simulation; tests pass a seeded source.
func NewSimulateTwin(repo port.TwinRepository, newRng func() *rand.Rand) *SimulateTwin {
	return &SimulateTwin{repo: repo, newRng: newRng}
}

// Execute validates the profile, runs the Monte Carlo simulation and persists
// the result.
func (uc *SimulateTwin) Execute(ctx context.Context, req dto.SimulateTwinRequest) (dto.TwinResponse, error) {
	if req.Profile.YearsToSimulate <= 0 {
		return dto.TwinResponse{}, fmt.Errorf("years to simulate must be positive")
	}
	if req.Profile.AnnualVolatility < 0 {
		return dto.TwinResponse{}, fmt.Errorf("annual volatility must not be negative")
	}

	result := insights.RunMonteCarloSimulation(req.Profile, uc.newRng())

	twin, err := model.NewDigitalTwin(req.UserID, req.Profile, result)
	if err != nil {
		return dto.TwinResponse{}, fmt.Errorf("failed to create twin: %w", err)
	}

	if err := uc.repo.Save(ctx, twin); err != nil {
		return dto.TwinResponse{}, fmt.Errorf("failed to save twin: %w", err)
	}

	return dto.TwinFromModel(twin), nil
}

// ListTwins is the use case for retrieving a user's stored simulations.
type ListTwins struct {
	repo port.TwinRepository
}

// NewListTwins creates a new ListTwins use case.
func NewListTwins(repo port.TwinRepository) *ListTwins {
	return &ListTwins{repo: repo}
}

// Execute returns the user's simulations, most recent first.
func (uc *ListTwins) Execute(ctx context.Context, req dto.GetHistoryRequest) ([]dto.TwinResponse, error) {
	limit := req.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	twins, err := uc.repo.FindByUserID(ctx, req.UserID, limit, req.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list twins: %w", err)
	}
	out := make([]dto.TwinResponse, 0, len(twins))
	for _, t := range twins {
		out = append(out, dto.TwinFromModel(t))
	}
	return out, nil
}
