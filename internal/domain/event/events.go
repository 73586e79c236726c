package event

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/thiagodifaria/Begriff/pkg/events"
)

const (
	AggregateTypeFinancialAnalysis = "FinancialAnalysis"
	AggregateTypeUser              = "User"
)

// AnalysisCompleted is emitted when a financial analysis finishes, whether or
// not every stage of the pipeline succeeded.
type AnalysisCompleted struct {
	events.BaseEvent
	AnalysisID       uuid.UUID `json:"analysis_id"`
	UserID           uuid.UUID `json:"user_id"`
	TransactionCount int       `json:"transaction_count"`
	FraudDetected    bool      `json:"fraud_detected"`
	CompletedAt      time.Time `json:"completed_at"`
}

// NewAnalysisCompleted creates an AnalysisCompleted domain event.
func NewAnalysisCompleted(analysisID, userID uuid.UUID, transactionCount int, fraudDetected bool, completedAt time.Time) AnalysisCompleted {
	payload, _ := json.Marshal(struct {
		AnalysisID       uuid.UUID `json:"analysis_id"`
		UserID           uuid.UUID `json:"user_id"`
		TransactionCount int       `json:"transaction_count"`
		FraudDetected    bool      `json:"fraud_detected"`
		CompletedAt      time.Time `json:"completed_at"`
	}{analysisID, userID, transactionCount, fraudDetected, completedAt})

	return AnalysisCompleted{
		BaseEvent:        events.NewBaseEvent("analysis.completed", analysisID, AggregateTypeFinancialAnalysis, payload),
		AnalysisID:       analysisID,
		UserID:           userID,
		TransactionCount: transactionCount,
		FraudDetected:    fraudDetected,
		CompletedAt:      completedAt,
	}
}

// FraudAlertRaised is emitted when the risk scoring stage flags at least one
// transaction above the reporting threshold.
type FraudAlertRaised struct {
	events.BaseEvent
	AnalysisID       uuid.UUID `json:"analysis_id"`
	UserID           uuid.UUID `json:"user_id"`
	HighestRiskScore float64   `json:"highest_risk_score"`
	FlaggedCount     int       `json:"flagged_count"`
	RaisedAt         time.Time `json:"raised_at"`
}

// NewFraudAlertRaised creates a FraudAlertRaised domain event.
func NewFraudAlertRaised(analysisID, userID uuid.UUID, highestRiskScore float64, flaggedCount int, raisedAt time.Time) FraudAlertRaised {
	payload, _ := json.Marshal(struct {
		AnalysisID       uuid.UUID `json:"analysis_id"`
		UserID           uuid.UUID `json:"user_id"`
		HighestRiskScore float64   `json:"highest_risk_score"`
		FlaggedCount     int       `json:"flagged_count"`
		RaisedAt         time.Time `json:"raised_at"`
	}{analysisID, userID, highestRiskScore, flaggedCount, raisedAt})

	return FraudAlertRaised{
		BaseEvent:        events.NewBaseEvent("analysis.fraud_alert.raised", analysisID, AggregateTypeFinancialAnalysis, payload),
		AnalysisID:       analysisID,
		UserID:           userID,
		HighestRiskScore: highestRiskScore,
		FlaggedCount:     flaggedCount,
		RaisedAt:         raisedAt,
	}
}

// UserRegistered is emitted when a new user account is created.
type UserRegistered struct {
	events.BaseEvent
	UserID       uuid.UUID `json:"user_id"`
	Email        string    `json:"email"`
	RegisteredAt time.Time `json:"registered_at"`
}

// NewUserRegistered creates a UserRegistered domain event.
func NewUserRegistered(userID uuid.UUID, email string, registeredAt time.Time) UserRegistered {
	payload, _ := json.Marshal(struct {
		UserID       uuid.UUID `json:"user_id"`
		Email        string    `json:"email"`
		RegisteredAt time.Time `json:"registered_at"`
	}{userID, email, registeredAt})

	return UserRegistered{
		BaseEvent:    events.NewBaseEvent("user.registered", userID, AggregateTypeUser, payload),
		UserID:       userID,
		Email:        email,
		RegisteredAt: registeredAt,
	}
}
