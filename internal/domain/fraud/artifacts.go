package fraud

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Artifact file names expected under the model directory.
const (
	scalerArtifact      = "scaler.json"
	forestArtifact      = "isolation_forest.json"
	autoencoderArtifact = "autoencoder.json"
)

// ErrArtifactUnavailable indicates a required pre-trained artifact could not
// be loaded. This is fatal at process startup and not recoverable per call.
var ErrArtifactUnavailable = errors.New("fraud: artifact unavailable")

// LoadScoringContext loads the scaler and both detectors from the given
// directory and assembles the process-wide scoring context.
func LoadScoringContext(dir string) (*ScoringContext, error) {
	var scaler StandardScaler
	if err := loadArtifact(filepath.Join(dir, scalerArtifact), &scaler); err != nil {
		return nil, err
	}
	if len(scaler.Mean) == 0 || len(scaler.Mean) != len(scaler.Std) {
		return nil, fmt.Errorf("%w: %s: invalid mean/std vectors", ErrArtifactUnavailable, scalerArtifact)
	}

	var forest IsolationForest
	if err := loadArtifact(filepath.Join(dir, forestArtifact), &forest); err != nil {
		return nil, err
	}
	if len(forest.Trees) == 0 {
		return nil, fmt.Errorf("%w: %s: no trees", ErrArtifactUnavailable, forestArtifact)
	}

	var autoencoder Autoencoder
	if err := loadArtifact(filepath.Join(dir, autoencoderArtifact), &autoencoder); err != nil {
		return nil, err
	}
	if len(autoencoder.Layers) == 0 {
		return nil, fmt.Errorf("%w: %s: no layers", ErrArtifactUnavailable, autoencoderArtifact)
	}

	return NewScoringContext(&scaler, &forest, &autoencoder)
}

func loadArtifact(path string, target any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrArtifactUnavailable, path, err)
	}
	if err := json.Unmarshal(data, target); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrArtifactUnavailable, path, err)
	}
	return nil
}
