package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"tally/internal/domain"
	"tally/internal/httputil"
)

// handleError maps domain errors to HTTP responses
func handleError(w http.ResponseWriter, logger *slog.Logger, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		httputil.RespondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrValidation):
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrConflict):
		httputil.RespondError(w, http.StatusConflict, err.Error())
	case domain.IsResourceResolutionError(err):
		logger.Error("store resolution failed", "error", err)
		httputil.RespondError(w, http.StatusServiceUnavailable, "entity store unavailable")
	default:
		logger.Error("unexpected error", "error", err)
		httputil.RespondError(w, http.StatusInternalServerError, "internal server error")
	}
}
