package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/thiagodifaria/Begriff/internal/domain/fraud"
	"github.com/thiagodifaria/Begriff/internal/domain/insights"
	"github.com/thiagodifaria/Begriff/internal/domain/model"
)

// EventPublisher defines the port for publishing domain events.
type EventPublisher interface {
	// Publish sends one or more domain events to the messaging infrastructure.
	Publish(ctx context.Context, events ...interface{}) error
}

// NarrativeGenerator defines the port for producing a natural-language
// interpretation of an analysis via an external language model.
type NarrativeGenerator interface {
	// Generate returns a narrative for the given summary, fraud and carbon
	// results. Implementations degrade to an error, never to a partial report.
	Generate(ctx context.Context, summary model.AnalysisSummary, fraudReport *fraud.Report, carbonReport *insights.CarbonReport) (*insights.NarrativeReport, error)
}

// LegacyGateway defines the port for handing a transaction batch to the
// legacy mainframe-style processing system.
type LegacyGateway interface {
	// Process submits the batch and returns the gateway's raw response.
	Process(ctx context.Context, batch []fraud.Transaction) (map[string]any, error)
}

// BlockchainAuditor defines the port for anchoring an analysis report onto an
// immutable audit trail.
type BlockchainAuditor interface {
	// Anchor records the report and returns the resulting transaction hash.
	Anchor(ctx context.Context, analysisID uuid.UUID, report model.AnalysisReport) (string, error)
}
