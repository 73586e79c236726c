package generative

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/thiagodifaria/Begriff/internal/domain/fraud"
	"github.com/thiagodifaria/Begriff/internal/domain/insights"
	"github.com/thiagodifaria/Begriff/internal/domain/model"
)

// StubNarrator implements port.NarrativeGenerator without an external model.
// It is used in development and when no narrative API is configured.
type StubNarrator struct {
	logger *slog.Logger
}

// NewStubNarrator creates a new stub narrator.
func NewStubNarrator(logger *slog.Logger) *StubNarrator {
	return &StubNarrator{logger: logger}
}

// Generate produces a deterministic narrative from the structured results.
func (s *StubNarrator) Generate(ctx context.Context, summary model.AnalysisSummary, fraudReport *fraud.Report, carbonReport *insights.CarbonReport) (*insights.NarrativeReport, error) {
	s.logger.Debug("stub narrative requested",
		slog.Int("transaction_count", summary.TotalTransactions),
	)

	narrative := &insights.NarrativeReport{
		ExecutiveSummary: fmt.Sprintf(
			"Analyzed %d transactions totaling %s.",
			summary.TotalTransactions, summary.TotalAmount.StringFixed(2),
		),
		PositiveInsights:          []string{"Your transaction history was processed without errors."},
		AreasForImprovement:       []string{},
		ActionableRecommendations: []string{"Review the flagged transactions and category breakdown for details."},
	}

	if fraudReport != nil {
		if fraudReport.FraudDetected {
			narrative.AreasForImprovement = append(narrative.AreasForImprovement,
				fmt.Sprintf("%d transactions scored above the risk threshold; the highest risk score was %.2f.",
					fraudReport.TransactionsAboveThreshold, fraudReport.HighestRiskScore))
			narrative.ActionableRecommendations = append(narrative.ActionableRecommendations,
				"Verify the flagged transactions with your bank.")
		} else {
			narrative.PositiveInsights = append(narrative.PositiveInsights,
				"No transactions scored above the risk threshold.")
		}
	}

	if carbonReport != nil {
		narrative.AreasForImprovement = append(narrative.AreasForImprovement,
			fmt.Sprintf("Estimated carbon footprint for this batch is %s kg CO2.",
				carbonReport.TotalCarbonKg.StringFixed(2)))
	}

	return narrative, nil
}
