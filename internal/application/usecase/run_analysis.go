package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/thiagodifaria/Begriff/internal/application/dto"
	"github.com/thiagodifaria/Begriff/internal/domain/fraud"
	"github.com/thiagodifaria/Begriff/internal/domain/insights"
	"github.com/thiagodifaria/Begriff/internal/domain/model"
	"github.com/thiagodifaria/Begriff/internal/domain/port"
	"github.com/thiagodifaria/Begriff/pkg/openbanking"
)

// RunAnalysis is the use case for the comprehensive analysis pipeline: risk
// scoring, carbon footprint, legacy processing and narrative generation over
// one uploaded batch.
type RunAnalysis struct {
	repo         port.AnalysisRepository
	transactions port.TransactionRepository
	publisher    port.EventPublisher
	pipeline     *fraud.Pipeline
	narrator     port.NarrativeGenerator
	gateway      port.LegacyGateway
	auditor      port.BlockchainAuditor
	logger       *slog.Logger
}

// NewRunAnalysis creates a new RunAnalysis use case.
func NewRunAnalysis(
	repo port.AnalysisRepository,
	transactions port.TransactionRepository,
	publisher port.EventPublisher,
	pipeline *fraud.Pipeline,
	narrator port.NarrativeGenerator,
	gateway port.LegacyGateway,
	auditor port.BlockchainAuditor,
	logger *slog.Logger,
) *RunAnalysis {
	return &RunAnalysis{
		repo:         repo,
		transactions: transactions,
		publisher:    publisher,
		pipeline:     pipeline,
		narrator:     narrator,
		gateway:      gateway,
		auditor:      auditor,
		logger:       logger,
	}
}

// Execute runs every analysis stage, consolidates their results, persists the
// analysis and publishes its events. Individual stage failures are recorded
// as error annotations on the report; only creation and persistence failures
// abort the run.
func (uc *RunAnalysis) Execute(ctx context.Context, req dto.RunAnalysisRequest) (dto.AnalysisResponse, error) {
	analysis, err := model.NewFinancialAnalysis(req.UserID)
	if err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("failed to create analysis: %w", err)
	}

	// The raw batch is stored before any stage runs.
	if len(req.Batch) > 0 {
		stored, err := uc.transactions.SaveBatch(ctx, req.UserID, uploadRecords(analysis.ID(), req.Batch))
		if err != nil {
			return dto.AnalysisResponse{}, fmt.Errorf("failed to store transaction batch: %w", err)
		}
		uc.logger.Info("stored uploaded batch", "analysis_id", analysis.ID(), "rows", stored)
	}

	report := model.AnalysisReport{
		Summary: summarize(req.Batch),
	}

	// Fraud scoring, carbon accounting and legacy processing are independent
	// of each other; run them concurrently.
	var wg sync.WaitGroup
	wg.Add(3)

	go func() {
		defer wg.Done()
		fraudReport, err := uc.pipeline.Analyze(req.Batch)
		if err != nil {
			uc.logger.Error("fraud stage failed", "analysis_id", analysis.ID(), "error", err)
			report.FraudError = err.Error()
			return
		}
		report.FraudAnalysis = &fraudReport
	}()

	go func() {
		defer wg.Done()
		carbonReport, err := insights.CalculateCarbonFootprint(req.Batch)
		if err != nil {
			uc.logger.Error("carbon stage failed", "analysis_id", analysis.ID(), "error", err)
			report.CarbonError = err.Error()
			return
		}
		report.CarbonAnalysis = &carbonReport
	}()

	go func() {
		defer wg.Done()
		result, err := uc.gateway.Process(ctx, req.Batch)
		if err != nil {
			uc.logger.Error("legacy gateway stage failed", "analysis_id", analysis.ID(), "error", err)
			report.LegacyError = err.Error()
			return
		}
		report.LegacyProcessing = result
	}()

	wg.Wait()

	// The narrative interprets the other stages, so it runs after them.
	narrative, err := uc.narrator.Generate(ctx, report.Summary, report.FraudAnalysis, report.CarbonAnalysis)
	if err != nil {
		uc.logger.Error("narrative stage failed", "analysis_id", analysis.ID(), "error", err)
		report.GenerativeError = err.Error()
	} else {
		report.GenerativeSummary = narrative
	}

	if err := analysis.Complete(report); err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("failed to complete analysis: %w", err)
	}

	// Audit anchoring is best effort; the analysis stands without it.
	hash, err := uc.auditor.Anchor(ctx, analysis.ID(), report)
	if err != nil {
		uc.logger.Error("audit anchoring failed", "analysis_id", analysis.ID(), "error", err)
	} else {
		analysis.AttachAuditHash(hash)
	}

	if err := uc.repo.Save(ctx, analysis); err != nil {
		return dto.AnalysisResponse{}, fmt.Errorf("failed to save analysis: %w", err)
	}

	events := analysis.DomainEvents()
	if len(events) > 0 {
		if err := uc.publisher.Publish(ctx, toAny(events)...); err != nil {
			return dto.AnalysisResponse{}, fmt.Errorf("failed to publish events: %w", err)
		}
	}

	return dto.AnalysisFromModel(analysis), nil
}

// uploadRecords shapes an uploaded batch for storage. Uploaded rows carry no
// provider identifier, so each row is keyed by the analysis it arrived with
// and its position in the batch.
func uploadRecords(analysisID uuid.UUID, batch []fraud.Transaction) []openbanking.Transaction {
	records := make([]openbanking.Transaction, len(batch))
	for i, tx := range batch {
		date, ok := tx.Field("transaction_date")
		if !ok {
			date, _ = tx.Field("date")
		}
		currency, _ := tx.Field("currency")
		records[i] = openbanking.Transaction{
			TransactionID: fmt.Sprintf("upload-%s-%d", analysisID, i),
			Description:   tx.Description,
			Category:      tx.Category,
			Amount:        tx.Amount,
			Currency:      currency,
			Date:          date,
		}
	}
	return records
}

// summarize totals the batch. Records whose amount does not parse still count
// toward the transaction total but not the amount total.
func summarize(batch []fraud.Transaction) model.AnalysisSummary {
	total := decimal.Zero
	for _, tx := range batch {
		amount, err := decimal.NewFromString(tx.Amount)
		if err != nil {
			continue
		}
		total = total.Add(amount)
	}
	return model.AnalysisSummary{
		TotalTransactions: len(batch),
		TotalAmount:       total,
	}
}
