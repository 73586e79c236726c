package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/thiagodifaria/Begriff/internal/application/dto"
	"github.com/thiagodifaria/Begriff/internal/application/usecase"
	"github.com/thiagodifaria/Begriff/pkg/auth"
)

// AuthHandler exposes registration, token and profile endpoints.
type AuthHandler struct {
	register     *usecase.RegisterUser
	authenticate *usecase.AuthenticateUser
	logger       *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(register *usecase.RegisterUser, authenticate *usecase.AuthenticateUser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{register: register, authenticate: authenticate, logger: logger}
}

// RegisterRoutes registers auth endpoints on the provided ServeMux.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/v1/users", h.Register)
	mux.HandleFunc("POST /api/v1/token", h.Token)
	mux.HandleFunc("GET /api/v1/users/me", h.Me)
}

// Register handles user account creation.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.register.Execute(r.Context(), req)
	if err != nil {
		if errors.Is(err, usecase.ErrEmailTaken) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		h.logger.Error("registration failed", "error", err)
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, resp)
}

// Token handles credential exchange for an access token.
func (h *AuthHandler) Token(w http.ResponseWriter, r *http.Request) {
	var req dto.AuthenticateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := h.authenticate.Execute(r.Context(), req)
	if err != nil {
		writeError(w, http.StatusUnauthorized, usecase.ErrInvalidCredentials.Error())
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

// Me returns the authenticated user's identity from the token claims.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "missing credentials")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"id":    claims.UserID,
		"email": claims.Email,
		"roles": claims.Roles,
	})
}
