package rest

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/thiagodifaria/Begriff/internal/application/dto"
	"github.com/thiagodifaria/Begriff/internal/application/usecase"
	"github.com/thiagodifaria/Begriff/internal/domain/fraud"
	"github.com/thiagodifaria/Begriff/pkg/auth"
)

const maxUploadBytes = 10 << 20 // 10 MiB

// AnalysisHandler exposes the analysis pipeline endpoints.
type AnalysisHandler struct {
	runAnalysis *usecase.RunAnalysis
	getHistory  *usecase.GetHistory
	getAnalysis *usecase.GetAnalysis
	logger      *slog.Logger
}

// NewAnalysisHandler creates a new analysis handler.
func NewAnalysisHandler(runAnalysis *usecase.RunAnalysis, getHistory *usecase.GetHistory, getAnalysis *usecase.GetAnalysis, logger *slog.Logger) *AnalysisHandler {
	return &AnalysisHandler{
		runAnalysis: runAnalysis,
		getHistory:  getHistory,
		getAnalysis: getAnalysis,
		logger:      logger,
	}
}

// RegisterRoutes registers analysis endpoints on the provided ServeMux.
func (h *AnalysisHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/analysis", h.Run)
	mux.HandleFunc("GET /api/v1/analysis", h.History)
	mux.HandleFunc("GET /api/v1/analysis/{id}", h.Get)
}

// Run accepts a multipart CSV upload and runs the full analysis pipeline.
func (h *AnalysisHandler) Run(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
	file, _, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "multipart field 'file' is required")
		return
	}
	defer file.Close()

	batch, err := parseTransactionCSV(file)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := h.runAnalysis.Execute(r.Context(), dto.RunAnalysisRequest{
		UserID: claims.UserID,
		Batch:  batch,
	})
	if err != nil {
		h.logger.Error("analysis failed", "user_id", claims.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "analysis failed")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// History lists the authenticated user's analyses.
func (h *AnalysisHandler) History(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	resp, err := h.getHistory.Execute(r.Context(), dto.GetHistoryRequest{
		UserID: claims.UserID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.logger.Error("history lookup failed", "user_id", claims.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list analyses")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Get returns a single analysis owned by the authenticated user.
func (h *AnalysisHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid analysis id")
		return
	}

	resp, err := h.getAnalysis.Execute(r.Context(), claims.UserID, id)
	if err != nil {
		writeError(w, http.StatusNotFound, "analysis not found")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// parseTransactionCSV reads a headered CSV stream into a transaction batch.
// Every row keeps all of its columns; typed interpretation happens during
// scoring.
func parseTransactionCSV(r io.Reader) ([]fraud.Transaction, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	var batch []fraud.Transaction
	for line := 2; ; line++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV line %d: %w", line, err)
		}

		record := make(map[string]string, len(header))
		for i, col := range header {
			if i < len(row) {
				record[col] = row[i]
			}
		}
		batch = append(batch, fraud.TransactionFromRecord(record))
	}
	return batch, nil
}
