package usecase_test

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagodifaria/Begriff/internal/application/dto"
	"github.com/thiagodifaria/Begriff/internal/application/usecase"
	"github.com/thiagodifaria/Begriff/internal/domain/fraud"
	"github.com/thiagodifaria/Begriff/internal/domain/insights"
	"github.com/thiagodifaria/Begriff/internal/domain/model"
)

// --- Mock implementations ---

type mockAnalysisRepository struct {
	savedAnalysis *model.FinancialAnalysis
	saveFunc      func(ctx context.Context, analysis *model.FinancialAnalysis) error
	findByUser    func(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.FinancialAnalysis, error)
}

func (m *mockAnalysisRepository) Save(ctx context.Context, analysis *model.FinancialAnalysis) error {
	if m.saveFunc != nil {
		return m.saveFunc(ctx, analysis)
	}
	m.savedAnalysis = analysis
	return nil
}

func (m *mockAnalysisRepository) FindByID(_ context.Context, _, _ uuid.UUID) (*model.FinancialAnalysis, error) {
	return nil, fmt.Errorf("analysis not found")
}

func (m *mockAnalysisRepository) FindByUserID(ctx context.Context, userID uuid.UUID, limit, offset int) ([]*model.FinancialAnalysis, error) {
	if m.findByUser != nil {
		return m.findByUser(ctx, userID, limit, offset)
	}
	return nil, nil
}

type mockEventPublisher struct {
	publishedEvents []interface{}
	publishFunc     func(ctx context.Context, events ...interface{}) error
}

func (m *mockEventPublisher) Publish(ctx context.Context, evts ...interface{}) error {
	if m.publishFunc != nil {
		return m.publishFunc(ctx, evts...)
	}
	m.publishedEvents = append(m.publishedEvents, evts...)
	return nil
}

type mockNarrator struct {
	generateFunc func(ctx context.Context) (*insights.NarrativeReport, error)
}

func (m *mockNarrator) Generate(ctx context.Context, _ model.AnalysisSummary, _ *fraud.Report, _ *insights.CarbonReport) (*insights.NarrativeReport, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx)
	}
	return &insights.NarrativeReport{ExecutiveSummary: "all good"}, nil
}

type mockLegacyGateway struct {
	processFunc func(ctx context.Context, batch []fraud.Transaction) (map[string]any, error)
}

func (m *mockLegacyGateway) Process(ctx context.Context, batch []fraud.Transaction) (map[string]any, error) {
	if m.processFunc != nil {
		return m.processFunc(ctx, batch)
	}
	return map[string]any{"status": "processed", "count": len(batch)}, nil
}

type mockAuditor struct {
	anchorFunc func(ctx context.Context) (string, error)
}

func (m *mockAuditor) Anchor(ctx context.Context, _ uuid.UUID, _ model.AnalysisReport) (string, error) {
	if m.anchorFunc != nil {
		return m.anchorFunc(ctx)
	}
	return "0xdeadbeef", nil
}

// --- Helpers ---

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// testPipeline builds a pipeline over tiny hand-written artifacts.
func testPipeline(t *testing.T) *fraud.Pipeline {
	t.Helper()

	scaler := &fraud.StandardScaler{Mean: []float64{0, 0}, Std: []float64{1, 1}}
	forest := &fraud.IsolationForest{
		Trees: []fraud.IsolationTree{{Nodes: []fraud.TreeNode{
			{Feature: 0, Threshold: 100, Left: 1, Right: 2, Size: 4},
			{Left: -1, Right: -1, Size: 3},
			{Left: -1, Right: -1, Size: 1},
		}}},
		SampleSize: 4,
	}
	autoencoder := &fraud.Autoencoder{Layers: []fraud.DenseLayer{{
		Weights:    [][]float64{{1, 0}, {0, 1}},
		Biases:     []float64{0, 0},
		Activation: "identity",
	}}}

	ctx, err := fraud.NewScoringContext(scaler, forest, autoencoder)
	require.NoError(t, err)
	return fraud.NewPipeline(ctx, testLogger())
}

func analysisBatch() []fraud.Transaction {
	records := []map[string]string{
		{"description": "Coffee", "category": "Food", "amount": "4.50"},
		{"description": "Groceries", "category": "Food", "amount": "75.00"},
		{"description": "Wire Transfer", "category": "Transfer", "amount": "5000.00"},
	}
	batch := make([]fraud.Transaction, 0, len(records))
	for _, r := range records {
		batch = append(batch, fraud.TransactionFromRecord(r))
	}
	return batch
}

func newRunAnalysis(repo *mockAnalysisRepository, txRepo *mockTransactionRepository, publisher *mockEventPublisher, narrator *mockNarrator, gw *mockLegacyGateway, auditor *mockAuditor, p *fraud.Pipeline) *usecase.RunAnalysis {
	return usecase.NewRunAnalysis(repo, txRepo, publisher, p, narrator, gw, auditor, testLogger())
}

// --- Tests ---

func TestRunAnalysis_Execute(t *testing.T) {
	t.Run("runs every stage and persists the consolidated report", func(t *testing.T) {
		repo := &mockAnalysisRepository{}
		publisher := &mockEventPublisher{}
		uc := newRunAnalysis(repo, &mockTransactionRepository{}, publisher, &mockNarrator{}, &mockLegacyGateway{}, &mockAuditor{}, testPipeline(t))

		resp, err := uc.Execute(context.Background(), dto.RunAnalysisRequest{
			UserID: uuid.New(),
			Batch:  analysisBatch(),
		})

		require.NoError(t, err)
		assert.Equal(t, 3, resp.Report.Summary.TotalTransactions)
		assert.Equal(t, "5079.5", resp.Report.Summary.TotalAmount.String())
		require.NotNil(t, resp.Report.FraudAnalysis)
		require.NotNil(t, resp.Report.CarbonAnalysis)
		require.NotNil(t, resp.Report.LegacyProcessing)
		require.NotNil(t, resp.Report.GenerativeSummary)
		assert.Equal(t, "0xdeadbeef", resp.BlockchainTxHash)
		assert.NotNil(t, repo.savedAnalysis)
		assert.NotEmpty(t, publisher.publishedEvents)
	})

	t.Run("stores the uploaded batch before scoring", func(t *testing.T) {
		txRepo := &mockTransactionRepository{stored: 3}
		uc := newRunAnalysis(&mockAnalysisRepository{}, txRepo, &mockEventPublisher{}, &mockNarrator{}, &mockLegacyGateway{}, &mockAuditor{}, testPipeline(t))

		resp, err := uc.Execute(context.Background(), dto.RunAnalysisRequest{UserID: uuid.New(), Batch: analysisBatch()})

		require.NoError(t, err)
		require.Len(t, txRepo.savedBatch, 3)
		assert.Equal(t, "Coffee", txRepo.savedBatch[0].Description)
		assert.Equal(t, "4.50", txRepo.savedBatch[0].Amount)
		for i, record := range txRepo.savedBatch {
			assert.Equal(t, fmt.Sprintf("upload-%s-%d", resp.ID, i), record.TransactionID)
		}
	})

	t.Run("batch storage failure aborts the run", func(t *testing.T) {
		txRepo := &mockTransactionRepository{err: fmt.Errorf("connection lost")}
		repo := &mockAnalysisRepository{}
		uc := newRunAnalysis(repo, txRepo, &mockEventPublisher{}, &mockNarrator{}, &mockLegacyGateway{}, &mockAuditor{}, testPipeline(t))

		_, err := uc.Execute(context.Background(), dto.RunAnalysisRequest{UserID: uuid.New(), Batch: analysisBatch()})

		assert.ErrorContains(t, err, "failed to store transaction batch")
		assert.Nil(t, repo.savedAnalysis)
	})

	t.Run("summary skips unparseable amounts but counts the rows", func(t *testing.T) {
		repo := &mockAnalysisRepository{}
		uc := newRunAnalysis(repo, &mockTransactionRepository{}, &mockEventPublisher{}, &mockNarrator{}, &mockLegacyGateway{}, &mockAuditor{}, testPipeline(t))

		batch := analysisBatch()
		batch = append(batch, fraud.TransactionFromRecord(map[string]string{"amount": "not_a_number"}))

		resp, err := uc.Execute(context.Background(), dto.RunAnalysisRequest{UserID: uuid.New(), Batch: batch})

		require.NoError(t, err)
		assert.Equal(t, 4, resp.Report.Summary.TotalTransactions)
		assert.Equal(t, "5079.5", resp.Report.Summary.TotalAmount.String())
	})

	t.Run("a failing stage degrades to an annotation", func(t *testing.T) {
		gw := &mockLegacyGateway{processFunc: func(context.Context, []fraud.Transaction) (map[string]any, error) {
			return nil, fmt.Errorf("mainframe is down")
		}}
		narrator := &mockNarrator{generateFunc: func(context.Context) (*insights.NarrativeReport, error) {
			return nil, fmt.Errorf("model quota exceeded")
		}}
		uc := newRunAnalysis(&mockAnalysisRepository{}, &mockTransactionRepository{}, &mockEventPublisher{}, narrator, gw, &mockAuditor{}, testPipeline(t))

		resp, err := uc.Execute(context.Background(), dto.RunAnalysisRequest{UserID: uuid.New(), Batch: analysisBatch()})

		require.NoError(t, err)
		assert.Nil(t, resp.Report.LegacyProcessing)
		assert.Contains(t, resp.Report.LegacyError, "mainframe is down")
		assert.Nil(t, resp.Report.GenerativeSummary)
		assert.Contains(t, resp.Report.GenerativeError, "quota")
		// The fraud and carbon stages still ran.
		assert.NotNil(t, resp.Report.FraudAnalysis)
		assert.NotNil(t, resp.Report.CarbonAnalysis)
	})

	t.Run("audit failure is tolerated", func(t *testing.T) {
		auditor := &mockAuditor{anchorFunc: func(context.Context) (string, error) {
			return "", fmt.Errorf("chain unavailable")
		}}
		uc := newRunAnalysis(&mockAnalysisRepository{}, &mockTransactionRepository{}, &mockEventPublisher{}, &mockNarrator{}, &mockLegacyGateway{}, auditor, testPipeline(t))

		resp, err := uc.Execute(context.Background(), dto.RunAnalysisRequest{UserID: uuid.New(), Batch: analysisBatch()})

		require.NoError(t, err)
		assert.Empty(t, resp.BlockchainTxHash)
	})

	t.Run("persistence failure aborts the run", func(t *testing.T) {
		repo := &mockAnalysisRepository{saveFunc: func(context.Context, *model.FinancialAnalysis) error {
			return fmt.Errorf("connection lost")
		}}
		uc := newRunAnalysis(repo, &mockTransactionRepository{}, &mockEventPublisher{}, &mockNarrator{}, &mockLegacyGateway{}, &mockAuditor{}, testPipeline(t))

		_, err := uc.Execute(context.Background(), dto.RunAnalysisRequest{UserID: uuid.New(), Batch: analysisBatch()})
		assert.Error(t, err)
	})

	t.Run("requires a user", func(t *testing.T) {
		uc := newRunAnalysis(&mockAnalysisRepository{}, &mockTransactionRepository{}, &mockEventPublisher{}, &mockNarrator{}, &mockLegacyGateway{}, &mockAuditor{}, testPipeline(t))

		_, err := uc.Execute(context.Background(), dto.RunAnalysisRequest{UserID: uuid.Nil, Batch: analysisBatch()})
		assert.Error(t, err)
	})

	t.Run("empty batch still produces a stored analysis", func(t *testing.T) {
		repo := &mockAnalysisRepository{}
		uc := newRunAnalysis(repo, &mockTransactionRepository{}, &mockEventPublisher{}, &mockNarrator{}, &mockLegacyGateway{}, &mockAuditor{}, testPipeline(t))

		resp, err := uc.Execute(context.Background(), dto.RunAnalysisRequest{UserID: uuid.New(), Batch: nil})

		require.NoError(t, err)
		require.NotNil(t, resp.Report.FraudAnalysis)
		assert.False(t, resp.Report.FraudAnalysis.FraudDetected)
		assert.Equal(t, 0, resp.Report.Summary.TotalTransactions)
	})
}
