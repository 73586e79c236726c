package fraud

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// timestampColumns is the priority-ordered list of accepted timestamp column
// names. The first one present anywhere in the batch is used for the whole
// batch.
var timestampColumns = []string{
	"transaction_date",
	"date",
	"timestamp",
	"time",
	"created_at",
	"booked_at",
}

// timestampLayouts are tried in order when parsing a timestamp value.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"15:04:05",
	"15:04",
}

const (
	// defaultTimeOfDay is used when a row has no parseable timestamp.
	// Midday keeps the feature neutral rather than dropping the row.
	defaultTimeOfDay = 12.0

	// TimestampColumnNone is reported when no timestamp column was found.
	TimestampColumnNone = "none"
)

// FeatureSet is the cleaned numeric table produced by feature extraction.
// Matrix rows are (amount, time_of_day) pairs in cleaned order; Kept maps
// each row back to its index in the original batch.
type FeatureSet struct {
	Matrix          [][]float64
	Kept            []int
	TimestampColumn string
	AllRowsDropped  bool
}

// ExtractFeatures turns a raw transaction batch into a fixed-shape feature
// table. Rows whose amount fails numeric coercion are dropped entirely; a
// missing or unparseable timestamp only defaults that row's time_of_day.
func ExtractFeatures(batch []Transaction) FeatureSet {
	fs := FeatureSet{
		TimestampColumn: detectTimestampColumn(batch),
	}

	for i, tx := range batch {
		amount, ok := parseAmount(tx.Amount)
		if !ok {
			continue
		}

		timeOfDay := defaultTimeOfDay
		if fs.TimestampColumn != TimestampColumnNone {
			if raw, present := tx.Field(fs.TimestampColumn); present {
				if hour, parsed := parseHour(raw); parsed {
					timeOfDay = hour
				}
			}
		}

		fs.Matrix = append(fs.Matrix, []float64{amount, timeOfDay})
		fs.Kept = append(fs.Kept, i)
	}

	fs.AllRowsDropped = len(batch) > 0 && len(fs.Matrix) == 0
	return fs
}

// detectTimestampColumn returns the first candidate column name present in
// any row of the batch, or TimestampColumnNone.
func detectTimestampColumn(batch []Transaction) string {
	for _, name := range timestampColumns {
		for _, tx := range batch {
			if _, ok := tx.Field(name); ok {
				return name
			}
		}
	}
	return TimestampColumnNone
}

func parseAmount(raw string) (float64, bool) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return v, true
}

func parseHour(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	for _, layout := range timestampLayouts {
		if ts, err := time.Parse(layout, raw); err == nil {
			return float64(ts.Hour()), true
		}
	}
	return 0, false
}
