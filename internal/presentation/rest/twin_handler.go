package rest

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/thiagodifaria/Begriff/internal/application/dto"
	"github.com/thiagodifaria/Begriff/internal/application/usecase"
	"github.com/thiagodifaria/Begriff/internal/domain/insights"
	"github.com/thiagodifaria/Begriff/pkg/auth"
)

// TwinHandler exposes the digital twin simulation endpoints.
type TwinHandler struct {
	simulate *usecase.SimulateTwin
	list     *usecase.ListTwins
	logger   *slog.Logger
}

// NewTwinHandler creates a new twin handler.
func NewTwinHandler(simulate *usecase.SimulateTwin, list *usecase.ListTwins, logger *slog.Logger) *TwinHandler {
	return &TwinHandler{simulate: simulate, list: list, logger: logger}
}

// RegisterRoutes registers twin endpoints on the provided ServeMux.
func (h *TwinHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/twins", h.Simulate)
	mux.HandleFunc("GET /api/v1/twins", h.List)
}

// Simulate runs a Monte Carlo projection for the authenticated user.
func (h *TwinHandler) Simulate(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	var profile insights.FinancialProfile
	if err := json.NewDecoder(r.Body).Decode(&profile); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.simulate.Execute(r.Context(), dto.SimulateTwinRequest{
		UserID:  claims.UserID,
		Profile: profile,
	})
	if err != nil {
		h.logger.Error("twin simulation failed", "user_id", claims.UserID, "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// List returns the authenticated user's stored simulations.
func (h *TwinHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	resp, err := h.list.Execute(r.Context(), dto.GetHistoryRequest{
		UserID: claims.UserID,
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.logger.Error("twin listing failed", "user_id", claims.UserID, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list simulations")
		return
	}

	writeJSON(w, http.StatusOK, resp)
}
