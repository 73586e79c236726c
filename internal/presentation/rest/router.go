package rest

import (
	"log/slog"
	"net/http"

	"github.com/thiagodifaria/Begriff/pkg/auth"
)

// RouterConfig collects everything the HTTP surface needs.
type RouterConfig struct {
	Auth           *AuthHandler
	Analysis       *AnalysisHandler
	OpenBanking    *OpenBankingHandler
	Twins          *TwinHandler
	Health         *HealthHandler
	MetricsHandler http.Handler
	JWTService     *auth.JWTService
	RateLimiter    *RateLimiter
	Logger         *slog.Logger
}

// Paths that never require a bearer token.
var publicPaths = []string{
	"/healthz",
	"/readyz",
	"/metrics",
	"/api/v1/users",
	"/api/v1/token",
}

// NewRouter assembles the ServeMux and its middleware chain.
func NewRouter(cfg RouterConfig) http.Handler {
	mux := http.NewServeMux()

	cfg.Health.RegisterRoutes(mux)
	cfg.Auth.RegisterRoutes(mux)
	cfg.Analysis.RegisterRoutes(mux)
	cfg.OpenBanking.RegisterRoutes(mux)
	cfg.Twins.RegisterRoutes(mux)
	if cfg.MetricsHandler != nil {
		mux.Handle("GET /metrics", cfg.MetricsHandler)
	}

	var handler http.Handler = mux
	handler = auth.Middleware(cfg.JWTService, publicPaths)(handler)
	if cfg.RateLimiter != nil {
		handler = RateLimitMiddleware(cfg.RateLimiter)(handler)
	}
	handler = LoggingMiddleware(cfg.Logger)(handler)
	return handler
}
