package blockchain

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/thiagodifaria/Begriff/internal/domain/model"
)

// HashAuditor implements port.BlockchainAuditor by deriving a deterministic
// hash from the canonical JSON form of the report. It stands in for an
// on-chain anchoring service; the hash format matches an EVM transaction
// hash so a real chain client can replace it without schema changes.
type HashAuditor struct {
	logger *slog.Logger
}

// NewHashAuditor creates a new hash-based auditor.
func NewHashAuditor(logger *slog.Logger) *HashAuditor {
	return &HashAuditor{logger: logger}
}

// Anchor hashes the report and returns the audit trail transaction hash.
func (a *HashAuditor) Anchor(ctx context.Context, analysisID uuid.UUID, report model.AnalysisReport) (string, error) {
	canonical, err := canonicalJSON(report)
	if err != nil {
		return "", fmt.Errorf("failed to canonicalize report: %w", err)
	}

	payload := append([]byte(analysisID.String()+":"), canonical...)
	sum := sha256.Sum256(payload)
	hash := "0x" + hex.EncodeToString(sum[:])

	a.logger.InfoContext(ctx, "report anchored to audit trail",
		slog.String("analysis_id", analysisID.String()),
		slog.String("tx_hash", hash),
	)
	return hash, nil
}

// canonicalJSON produces JSON with deterministically ordered object keys by
// round-tripping through an untyped map.
func canonicalJSON(v any) ([]byte, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic any
	if err := json.Unmarshal(raw, &generic); err != nil {
		return nil, err
	}
	return json.Marshal(generic)
}
