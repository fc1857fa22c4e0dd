package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"devfolio/internal/domain"
	"devfolio/internal/domain/services"
	"devfolio/internal/httputil"
)

// AuthHandler handles signup, login and the email-existence probe
type AuthHandler struct {
	authService services.AuthService
	logger      *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService services.AuthService, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Signup registers a new user
// POST /api/auth/signup
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req services.SignupRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.authService.Signup(r.Context(), &req)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, session)
}

// Login verifies credentials and returns a session token
// POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	session, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		// Bad credentials are a 401 here, not the generic 422
		if errors.Is(err, domain.ErrInvalidOperation) {
			httputil.RespondError(w, http.StatusUnauthorized, "incorrect email or password")
			return
		}
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, session)
}

// EmailExists reports whether an email is already registered
// POST /api/auth/email
func (h *AuthHandler) EmailExists(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	exists, err := h.authService.EmailExists(r.Context(), req.Email)
	if err != nil {
		respondDomainError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]bool{"email_exists": exists})
}
