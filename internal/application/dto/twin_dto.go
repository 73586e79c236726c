package dto

import (
	"time"

	"github.com/google/uuid"

	"github.com/thiagodifaria/Begriff/internal/domain/insights"
	"github.com/thiagodifaria/Begriff/internal/domain/model"
)

// SimulateTwinRequest is the input DTO for running a digital twin simulation.
type SimulateTwinRequest struct {
	Profile insights.FinancialProfile `json:"profile"`
	UserID  uuid.UUID                 `json:"user_id"`
}

// TwinResponse is the output DTO for a stored simulation.
type TwinResponse struct {
	CreatedAt time.Time                 `json:"created_at"`
	Profile   insights.FinancialProfile `json:"profile"`
	Result    insights.SimulationResult `json:"result"`
	ID        uuid.UUID                 `json:"id"`
	UserID    uuid.UUID                 `json:"user_id"`
}

// TwinFromModel maps a domain model to the response DTO.
func TwinFromModel(t *model.DigitalTwin) TwinResponse {
	return TwinResponse{
		ID:        t.ID(),
		UserID:    t.UserID(),
		Profile:   t.Profile(),
		Result:    t.Result(),
		CreatedAt: t.CreatedAt(),
	}
}
