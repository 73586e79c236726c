package blockchain_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thiagodifaria/Begriff/internal/domain/model"
	"github.com/thiagodifaria/Begriff/internal/infrastructure/blockchain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func sampleReport() model.AnalysisReport {
	return model.AnalysisReport{
		Summary: model.AnalysisSummary{
			TotalTransactions: 3,
			TotalAmount:       decimal.RequireFromString("5079.50"),
		},
		LegacyError: "gateway timeout",
	}
}

func TestHashAuditorAnchor(t *testing.T) {
	auditor := blockchain.NewHashAuditor(testLogger())
	ctx := context.Background()

	t.Run("produces an EVM-shaped transaction hash", func(t *testing.T) {
		hash, err := auditor.Anchor(ctx, uuid.New(), sampleReport())

		require.NoError(t, err)
		assert.Len(t, hash, 66)
		assert.Equal(t, "0x", hash[:2])
	})

	t.Run("is deterministic for the same analysis and report", func(t *testing.T) {
		id := uuid.New()

		a, err := auditor.Anchor(ctx, id, sampleReport())
		require.NoError(t, err)
		b, err := auditor.Anchor(ctx, id, sampleReport())
		require.NoError(t, err)

		assert.Equal(t, a, b)
	})

	t.Run("differs across analyses", func(t *testing.T) {
		a, err := auditor.Anchor(ctx, uuid.New(), sampleReport())
		require.NoError(t, err)
		b, err := auditor.Anchor(ctx, uuid.New(), sampleReport())
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})

	t.Run("differs when the report changes", func(t *testing.T) {
		id := uuid.New()
		a, err := auditor.Anchor(ctx, id, sampleReport())
		require.NoError(t, err)

		changed := sampleReport()
		changed.Summary.TotalTransactions = 4
		b, err := auditor.Anchor(ctx, id, changed)
		require.NoError(t, err)

		assert.NotEqual(t, a, b)
	})
}
