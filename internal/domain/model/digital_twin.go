package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/thiagodifaria/Begriff/internal/domain/insights"
)

// DigitalTwin stores one Monte Carlo projection of a user's financial future:
// the profile that parameterized the simulation and the resulting summary
// statistics.
type DigitalTwin struct {
	createdAt time.Time
	profile   insights.FinancialProfile
	result    insights.SimulationResult
	userID    uuid.UUID
	id        uuid.UUID
}

// NewDigitalTwin records a completed simulation for a user.
func NewDigitalTwin(userID uuid.UUID, profile insights.FinancialProfile, result insights.SimulationResult) (*DigitalTwin, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user ID is required")
	}
	if profile.InitialCapital < 0 {
		return nil, fmt.Errorf("initial capital must not be negative")
	}
	return &DigitalTwin{
		id:        uuid.New(),
		userID:    userID,
		profile:   profile,
		result:    result,
		createdAt: time.Now().UTC(),
	}, nil
}

// ReconstructDigitalTwin rebuilds a DigitalTwin from persisted data.
func ReconstructDigitalTwin(id, userID uuid.UUID, profile insights.FinancialProfile, result insights.SimulationResult, createdAt time.Time) *DigitalTwin {
	return &DigitalTwin{
		id:        id,
		userID:    userID,
		profile:   profile,
		result:    result,
		createdAt: createdAt,
	}
}

func (t *DigitalTwin) ID() uuid.UUID                       { return t.id }
func (t *DigitalTwin) UserID() uuid.UUID                   { return t.userID }
func (t *DigitalTwin) Profile() insights.FinancialProfile  { return t.profile }
func (t *DigitalTwin) Result() insights.SimulationResult   { return t.result }
func (t *DigitalTwin) CreatedAt() time.Time                { return t.createdAt }
