package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

// Pinger checks a dependency's availability.
type Pinger func(ctx context.Context) error

// HealthHandler provides HTTP health check endpoints.
type HealthHandler struct {
	logger    *slog.Logger
	dbPing    Pinger
	startTime time.Time
}

// NewHealthHandler creates a new health check handler.
func NewHealthHandler(logger *slog.Logger, dbPing Pinger) *HealthHandler {
	return &HealthHandler{
		logger:    logger,
		dbPing:    dbPing,
		startTime: time.Now(),
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse is the JSON response for readiness checks.
type ReadinessResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks"`
}

// RegisterRoutes registers health endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// Healthz handles liveness probe requests.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: "begriff",
		Uptime:  time.Since(h.startTime).String(),
	})
}

// Readyz handles readiness probe requests.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	checks := map[string]string{"database": "ok"}
	status := "ready"
	code := http.StatusOK

	if h.dbPing != nil {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.dbPing(ctx); err != nil {
			h.logger.Warn("readiness check failed", "check", "database", "error", err)
			checks["database"] = err.Error()
			status = "not ready"
			code = http.StatusServiceUnavailable
		}
	}

	writeJSON(w, code, ReadinessResponse{
		Status:  status,
		Service: "begriff",
		Checks:  checks,
	})
}
