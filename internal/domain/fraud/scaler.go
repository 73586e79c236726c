package fraud

import (
	"fmt"
	"math"
)

// StandardScaler applies a pre-fitted per-feature standardization
// (zero mean, unit variance). Both detectors must see identically scaled
// input; the scaler is fit once offline and never refit at inference time.
type StandardScaler struct {
	Mean []float64 `json:"mean"`
	Std  []float64 `json:"std"`
}

// Transform standardizes each row of the feature table. Rows must have the
// same width as the fitted mean/std vectors, and every value must be finite.
func (s *StandardScaler) Transform(features [][]float64) ([][]float64, error) {
	if len(s.Mean) != len(s.Std) {
		return nil, fmt.Errorf("scaler: mean/std length mismatch: %d vs %d", len(s.Mean), len(s.Std))
	}

	scaled := make([][]float64, len(features))
	for i, row := range features {
		if len(row) != len(s.Mean) {
			return nil, fmt.Errorf("scaler: row %d has %d features, expected %d", i, len(row), len(s.Mean))
		}
		out := make([]float64, len(row))
		for j, v := range row {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, fmt.Errorf("scaler: non-finite value at row %d feature %d", i, j)
			}
			std := s.Std[j]
			if std <= 0 {
				// Constant feature during fitting; pass through centered.
				std = 1
			}
			out[j] = (v - s.Mean[j]) / std
		}
		scaled[i] = out
	}
	return scaled, nil
}
