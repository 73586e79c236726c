package fraud

import (
	"fmt"
	"log/slog"
)

// ScoringContext holds the pre-trained artifacts for one model generation:
// the shared feature scaler and the detector ensemble. It is constructed once
// at process start and treated as immutable; concurrent analysis calls share
// it without locking.
type ScoringContext struct {
	scaler    *StandardScaler
	detectors []Detector
	weights   []float64
}

// NewScoringContext builds a ScoringContext with equal combination weights
// across the given detectors.
func NewScoringContext(scaler *StandardScaler, detectors ...Detector) (*ScoringContext, error) {
	if scaler == nil {
		return nil, fmt.Errorf("fraud: scaler is required")
	}
	if len(detectors) == 0 {
		return nil, fmt.Errorf("fraud: at least one detector is required")
	}

	weights := make([]float64, len(detectors))
	for i := range weights {
		weights[i] = 1 / float64(len(detectors))
	}

	return &ScoringContext{
		scaler:    scaler,
		detectors: detectors,
		weights:   weights,
	}, nil
}

// Detectors returns the detector ensemble.
func (sc *ScoringContext) Detectors() []Detector { return sc.detectors }

// Pipeline is the fraud analysis entry point: feature extraction, ensemble
// scoring, normalization and report assembly over a single batch.
type Pipeline struct {
	ctx    *ScoringContext
	logger *slog.Logger
}

// NewPipeline creates a Pipeline over an immutable scoring context.
func NewPipeline(ctx *ScoringContext, logger *slog.Logger) *Pipeline {
	return &Pipeline{ctx: ctx, logger: logger}
}

// Analyze runs the full scoring pipeline on one transaction batch.
//
// Three terminal outcomes exist: an empty batch short-circuits to a zero-risk
// report without invoking any model; a batch emptied by cleaning does the
// same with a warning annotation; otherwise the normal path runs. A scaler or
// detector failure on a non-empty cleaned batch propagates as an error; the
// pipeline never substitutes default scores.
func (p *Pipeline) Analyze(batch []Transaction) (Report, error) {
	if len(batch) == 0 {
		return emptyReport(TimestampColumnNone, ""), nil
	}

	fs := ExtractFeatures(batch)
	if fs.AllRowsDropped {
		p.logger.Warn("fraud analysis batch emptied by cleaning",
			slog.Int("input_rows", len(batch)),
		)
		return emptyReport(fs.TimestampColumn, WarningBatchEmptied), nil
	}

	scaled, err := p.ctx.scaler.Transform(fs.Matrix)
	if err != nil {
		return Report{}, fmt.Errorf("fraud: feature scaling: %w", err)
	}

	combined := make([]float64, len(scaled))
	for di, detector := range p.ctx.detectors {
		raw, err := detector.Score(scaled)
		if err != nil {
			return Report{}, fmt.Errorf("fraud: %s scoring: %w", detector.Name(), err)
		}
		if len(raw) != len(scaled) {
			return Report{}, fmt.Errorf("fraud: %s returned %d scores for %d rows", detector.Name(), len(raw), len(scaled))
		}

		risk := normalizeScores(raw, detector.Orientation())
		for i, r := range risk {
			combined[i] += p.ctx.weights[di] * r
		}
	}

	report := buildReport(batch, fs, combined)

	p.logger.Debug("fraud analysis completed",
		slog.Int("input_rows", len(batch)),
		slog.Int("scored_rows", len(scaled)),
		slog.Int("flagged", report.TransactionsAboveThreshold),
		slog.Float64("highest_risk", report.HighestRiskScore),
	)

	return report, nil
}
