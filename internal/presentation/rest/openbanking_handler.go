package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/thiagodifaria/Begriff/internal/application/usecase"
	"github.com/thiagodifaria/Begriff/pkg/auth"
)

// OpenBankingHandler exposes the bank synchronization endpoint.
type OpenBankingHandler struct {
	sync   *usecase.SyncBankData
	logger *slog.Logger
}

// NewOpenBankingHandler creates a new open banking handler.
func NewOpenBankingHandler(sync *usecase.SyncBankData, logger *slog.Logger) *OpenBankingHandler {
	return &OpenBankingHandler{sync: sync, logger: logger}
}

// RegisterRoutes registers open banking endpoints on the provided ServeMux.
func (h *OpenBankingHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/open-banking/sync", h.Sync)
}

type syncRequest struct {
	AuthToken string `json:"auth_token"`
}

// Sync pulls the user's transactions from the provider into local storage.
func (h *OpenBankingHandler) Sync(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	var req syncRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.AuthToken == "" {
		writeError(w, http.StatusBadRequest, "auth_token is required")
		return
	}

	result, err := h.sync.Execute(r.Context(), claims.UserID, req.AuthToken)
	if err != nil {
		h.logger.Error("bank sync failed", "user_id", claims.UserID, "error", err)
		writeError(w, http.StatusBadGateway, "bank synchronization failed")
		return
	}

	writeJSON(w, http.StatusOK, result)
}
