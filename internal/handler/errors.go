package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"devfolio/internal/domain"
	"devfolio/internal/httputil"
)

// respondDomainError maps a domain error to its HTTP status category.
// Storage failures are logged with their wrapped cause but surface as an
// opaque 500; the raw driver error never reaches the client.
func respondDomainError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, domain.ErrInvalidOperation):
		httputil.RespondError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		logger.Error("request failed", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
