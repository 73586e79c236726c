package fraud

import (
	"fmt"
	"math"
)

// DenseLayer is one fully-connected layer of the autoencoder. Weights is
// indexed [output][input].
type DenseLayer struct {
	Weights    [][]float64 `json:"weights"`
	Biases     []float64   `json:"biases"`
	Activation string      `json:"activation"` // "relu", "tanh", "sigmoid", "identity"
}

// Autoencoder is a dense feed-forward network trained offline to reproduce
// its own input. The raw anomaly score for a row is the mean squared
// reconstruction error, so higher means more anomalous.
type Autoencoder struct {
	Layers []DenseLayer `json:"layers"`
}

// Name implements Detector.
func (a *Autoencoder) Name() string { return "autoencoder" }

// Orientation implements Detector.
func (a *Autoencoder) Orientation() Orientation { return HigherIsAnomalous }

// Score returns the per-row mean squared reconstruction error.
func (a *Autoencoder) Score(features [][]float64) ([]float64, error) {
	if len(a.Layers) == 0 {
		return nil, fmt.Errorf("autoencoder: no layers loaded")
	}

	scores := make([]float64, len(features))
	for i, row := range features {
		reconstructed, err := a.reconstruct(row)
		if err != nil {
			return nil, fmt.Errorf("autoencoder: row %d: %w", i, err)
		}
		if len(reconstructed) != len(row) {
			return nil, fmt.Errorf("autoencoder: row %d: reconstruction width %d, input width %d", i, len(reconstructed), len(row))
		}

		var sum float64
		for j := range row {
			diff := reconstructed[j] - row[j]
			sum += diff * diff
		}
		scores[i] = sum / float64(len(row))
	}
	return scores, nil
}

func (a *Autoencoder) reconstruct(input []float64) ([]float64, error) {
	current := input
	for li, layer := range a.Layers {
		if len(layer.Weights) != len(layer.Biases) {
			return nil, fmt.Errorf("layer %d: %d weight rows, %d biases", li, len(layer.Weights), len(layer.Biases))
		}
		next := make([]float64, len(layer.Weights))
		for o, weights := range layer.Weights {
			if len(weights) != len(current) {
				return nil, fmt.Errorf("layer %d: weight row %d has width %d, input width %d", li, o, len(weights), len(current))
			}
			sum := layer.Biases[o]
			for in, w := range weights {
				sum += w * current[in]
			}
			next[o] = activate(layer.Activation, sum)
		}
		current = next
	}
	return current, nil
}

func activate(name string, x float64) float64 {
	switch name {
	case "relu":
		return math.Max(0, x)
	case "tanh":
		return math.Tanh(x)
	case "sigmoid":
		return 1 / (1 + math.Exp(-x))
	default:
		// "identity" and anything unrecognized: linear output.
		return x
	}
}
