package fraud

// Orientation describes the polarity of a detector's raw scores.
type Orientation int

const (
	// HigherIsAnomalous means larger raw scores indicate more anomalous rows
	// (reconstruction error).
	HigherIsAnomalous Orientation = iota

	// HigherIsNormal means larger raw scores indicate more normal rows
	// (isolation-based density measures).
	HigherIsNormal
)

// Detector scores a batch of feature rows for anomaly. Implementations are
// immutable once loaded and safe for concurrent use; raw score scale and
// polarity are detector-specific and must be normalized before combination.
type Detector interface {
	Name() string
	Orientation() Orientation

	// Score returns one raw anomaly score per feature row. It assumes the
	// input already passed cleaning and scaling; a malformed feature table
	// is an error, not something to paper over.
	Score(features [][]float64) ([]float64, error)
}
