package fraud

import "sort"

const (
	// ModelVersion identifies the deployed artifact generation.
	ModelVersion = "1.0.0"

	// highRiskThreshold is the combined-score cutoff above which a
	// transaction is flagged.
	highRiskThreshold = 0.7

	// WarningBatchEmptied annotates a report whose every row was dropped
	// during data cleaning.
	WarningBatchEmptied = "data cleaning removed every transaction in the batch"
)

// FlaggedTransaction is one high-risk row in a report: the transaction's
// original fields plus its combined risk score.
type FlaggedTransaction struct {
	Transaction map[string]string `json:"transaction"`
	RiskScore   float64           `json:"risk_score"`
}

// Report is the result of one fraud analysis call. It is built once and
// never mutated afterward.
type Report struct {
	FraudDetected              bool                 `json:"fraud_detected"`
	HighestRiskScore           float64              `json:"highest_risk_score"`
	TransactionsAboveThreshold int                  `json:"transactions_above_threshold"`
	RiskiestTransactions       []FlaggedTransaction `json:"riskiest_transactions"`
	ModelVersion               string               `json:"model_version"`
	TimestampColumnUsed        string               `json:"timestamp_column_used"`
	Warning                    string               `json:"warning,omitempty"`
}

// emptyReport is the short-circuit shape for batches with nothing to score.
func emptyReport(timestampColumn, warning string) Report {
	return Report{
		FraudDetected:              false,
		HighestRiskScore:           0.0,
		TransactionsAboveThreshold: 0,
		RiskiestTransactions:       []FlaggedTransaction{},
		ModelVersion:               ModelVersion,
		TimestampColumnUsed:        timestampColumn,
		Warning:                    warning,
	}
}

// buildReport applies the decision threshold to the combined risk vector and
// assembles the final report. combined is row-aligned with fs.Kept; rows
// dropped during cleaning never appear here.
func buildReport(batch []Transaction, fs FeatureSet, combined []float64) Report {
	report := emptyReport(fs.TimestampColumn, "")

	for i, score := range combined {
		if score > report.HighestRiskScore {
			report.HighestRiskScore = score
		}
		if score > highRiskThreshold {
			report.RiskiestTransactions = append(report.RiskiestTransactions, FlaggedTransaction{
				Transaction: batch[fs.Kept[i]].AsMap(),
				RiskScore:   score,
			})
		}
	}

	sort.SliceStable(report.RiskiestTransactions, func(a, b int) bool {
		return report.RiskiestTransactions[a].RiskScore > report.RiskiestTransactions[b].RiskScore
	})

	report.TransactionsAboveThreshold = len(report.RiskiestTransactions)
	report.FraudDetected = report.TransactionsAboveThreshold > 0
	return report
}
