package fraud

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildReport(t *testing.T) {
	batch := []Transaction{
		txRecord(map[string]string{"amount": "10", "description": "coffee"}),
		txRecord(map[string]string{"amount": "12", "description": "lunch"}),
		txRecord(map[string]string{"amount": "5000", "description": "transfer"}),
	}
	fs := FeatureSet{Kept: []int{0, 1, 2}, TimestampColumn: TimestampColumnNone}

	t.Run("flags only scores strictly above the threshold", func(t *testing.T) {
		report := buildReport(batch, fs, []float64{0.1, 0.7, 0.9})

		assert.True(t, report.FraudDetected)
		assert.Equal(t, 1, report.TransactionsAboveThreshold)
		require.Len(t, report.RiskiestTransactions, 1)
		assert.Equal(t, "transfer", report.RiskiestTransactions[0].Transaction["description"])
		assert.Equal(t, 0.9, report.HighestRiskScore)
	})

	t.Run("a score of exactly 0.7 is not flagged", func(t *testing.T) {
		report := buildReport(batch, fs, []float64{0.7, 0.7, 0.7})

		assert.False(t, report.FraudDetected)
		assert.Empty(t, report.RiskiestTransactions)
		assert.Equal(t, 0.7, report.HighestRiskScore)
	})

	t.Run("flagged transactions are sorted by descending risk", func(t *testing.T) {
		report := buildReport(batch, fs, []float64{0.8, 0.95, 0.75})

		require.Len(t, report.RiskiestTransactions, 3)
		assert.Equal(t, 0.95, report.RiskiestTransactions[0].RiskScore)
		assert.Equal(t, 0.8, report.RiskiestTransactions[1].RiskScore)
		assert.Equal(t, 0.75, report.RiskiestTransactions[2].RiskScore)
	})

	t.Run("kept indices map scores back to original rows", func(t *testing.T) {
		// Row 1 was dropped during cleaning; scores align with rows 0 and 2.
		partial := FeatureSet{Kept: []int{0, 2}, TimestampColumn: TimestampColumnNone}
		report := buildReport(batch, partial, []float64{0.2, 0.9})

		require.Len(t, report.RiskiestTransactions, 1)
		assert.Equal(t, "transfer", report.RiskiestTransactions[0].Transaction["description"])
	})

	t.Run("carries the model version and timestamp column", func(t *testing.T) {
		used := FeatureSet{Kept: []int{0, 1, 2}, TimestampColumn: "date"}
		report := buildReport(batch, used, []float64{0, 0, 0})

		assert.Equal(t, ModelVersion, report.ModelVersion)
		assert.Equal(t, "date", report.TimestampColumnUsed)
		assert.Empty(t, report.Warning)
	})
}

func TestEmptyReport(t *testing.T) {
	report := emptyReport(TimestampColumnNone, WarningBatchEmptied)

	assert.False(t, report.FraudDetected)
	assert.Equal(t, 0.0, report.HighestRiskScore)
	assert.Equal(t, 0, report.TransactionsAboveThreshold)
	assert.NotNil(t, report.RiskiestTransactions)
	assert.Empty(t, report.RiskiestTransactions)
	assert.Equal(t, ModelVersion, report.ModelVersion)
	assert.Equal(t, WarningBatchEmptied, report.Warning)
}
