package handler

import (
	"log/slog"
	"net/http"

	"tally/internal/domain/models"
	"tally/internal/domain/services"
	"tally/internal/httputil"
)

// AuthorizeHandler exposes the authorizer over HTTP
type AuthorizeHandler struct {
	authorizer services.Authorizer
	logger     *slog.Logger
}

// NewAuthorizeHandler creates a new authorize handler
func NewAuthorizeHandler(authorizer services.Authorizer, logger *slog.Logger) *AuthorizeHandler {
	return &AuthorizeHandler{
		authorizer: authorizer,
		logger:     logger,
	}
}

// Authorize evaluates one operation and returns the boolean verdict. Reason
// codes stay in the audit log; the caller only ever sees isAuthorized.
// POST /authorize
func (h *AuthorizeHandler) Authorize(w http.ResponseWriter, r *http.Request) {
	var req models.AuthorizeRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	verdict := h.authorizer.Authorize(r.Context(), &req)

	httputil.RespondJSON(w, http.StatusOK, verdict)
}

// HealthCheck reports liveness
// GET /health
func (h *AuthorizeHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
