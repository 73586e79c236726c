package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/thiagodifaria/Begriff/internal/domain/event"
	"github.com/thiagodifaria/Begriff/internal/domain/fraud"
	"github.com/thiagodifaria/Begriff/internal/domain/insights"
	"github.com/thiagodifaria/Begriff/pkg/events"
)

// AnalysisSummary aggregates totals over the analyzed batch.
type AnalysisSummary struct {
	TotalTransactions int             `json:"total_transactions"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
}

// AnalysisReport is the consolidated result of one analysis run. Each stage
// fills either its result or its error field; a failed stage never aborts the
// run as a whole.
type AnalysisReport struct {
	Summary           AnalysisSummary           `json:"summary"`
	FraudAnalysis     *fraud.Report             `json:"fraud_analysis,omitempty"`
	FraudError        string                    `json:"fraud_error,omitempty"`
	CarbonAnalysis    *insights.CarbonReport    `json:"carbon_analysis,omitempty"`
	CarbonError       string                    `json:"carbon_error,omitempty"`
	LegacyProcessing  map[string]any            `json:"legacy_processing,omitempty"`
	LegacyError       string                    `json:"legacy_error,omitempty"`
	GenerativeSummary *insights.NarrativeReport `json:"generative_summary,omitempty"`
	GenerativeError   string                    `json:"generative_error,omitempty"`
}

// FinancialAnalysis is the aggregate root for a single analysis run over a
// batch of transactions.
type FinancialAnalysis struct {
	createdAt        time.Time
	completedAt      time.Time
	report           AnalysisReport
	blockchainTxHash string
	domainEvents     []events.DomainEvent
	userID           uuid.UUID
	id               uuid.UUID
	completed        bool
}

// NewFinancialAnalysis starts a new analysis run for a user.
func NewFinancialAnalysis(userID uuid.UUID) (*FinancialAnalysis, error) {
	if userID == uuid.Nil {
		return nil, fmt.Errorf("user ID is required")
	}
	return &FinancialAnalysis{
		id:        uuid.New(),
		userID:    userID,
		createdAt: time.Now().UTC(),
	}, nil
}

// Complete records the consolidated report and emits AnalysisCompleted, plus
// FraudAlertRaised when the risk stage flagged transactions.
func (a *FinancialAnalysis) Complete(report AnalysisReport) error {
	if a.completed {
		return fmt.Errorf("analysis %s is already completed", a.id)
	}

	a.report = report
	a.completedAt = time.Now().UTC()
	a.completed = true

	fraudDetected := report.FraudAnalysis != nil && report.FraudAnalysis.FraudDetected
	a.domainEvents = append(a.domainEvents, event.NewAnalysisCompleted(
		a.id, a.userID, report.Summary.TotalTransactions, fraudDetected, a.completedAt,
	))
	if fraudDetected {
		a.domainEvents = append(a.domainEvents, event.NewFraudAlertRaised(
			a.id, a.userID,
			report.FraudAnalysis.HighestRiskScore,
			report.FraudAnalysis.TransactionsAboveThreshold,
			a.completedAt,
		))
	}
	return nil
}

// AttachAuditHash records the hash returned by the audit trail anchoring step.
func (a *FinancialAnalysis) AttachAuditHash(hash string) {
	a.blockchainTxHash = hash
}

// ReconstructFinancialAnalysis rebuilds a FinancialAnalysis from persisted
// data (no validation, no events).
func ReconstructFinancialAnalysis(
	id, userID uuid.UUID,
	report AnalysisReport,
	blockchainTxHash string,
	createdAt, completedAt time.Time,
) *FinancialAnalysis {
	return &FinancialAnalysis{
		id:               id,
		userID:           userID,
		report:           report,
		blockchainTxHash: blockchainTxHash,
		createdAt:        createdAt,
		completedAt:      completedAt,
		completed:        !completedAt.IsZero(),
		domainEvents:     make([]events.DomainEvent, 0),
	}
}

func (a *FinancialAnalysis) ID() uuid.UUID            { return a.id }
func (a *FinancialAnalysis) UserID() uuid.UUID        { return a.userID }
func (a *FinancialAnalysis) Report() AnalysisReport   { return a.report }
func (a *FinancialAnalysis) BlockchainTxHash() string { return a.blockchainTxHash }
func (a *FinancialAnalysis) Completed() bool          { return a.completed }
func (a *FinancialAnalysis) CreatedAt() time.Time     { return a.createdAt }
func (a *FinancialAnalysis) CompletedAt() time.Time   { return a.completedAt }

// DomainEvents returns all accumulated domain events and clears them.
func (a *FinancialAnalysis) DomainEvents() []events.DomainEvent {
	evts := a.domainEvents
	a.domainEvents = make([]events.DomainEvent, 0)
	return evts
}
