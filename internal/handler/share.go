package handler

import (
	"log/slog"
	"net/http"

	"tally/internal/domain/models"
	"tally/internal/domain/repositories"
	"tally/internal/domain/services"
	"tally/internal/httputil"
	"tally/internal/service/authz"
)

// ShareHandler exposes share management reads for checklist owners.
type ShareHandler struct {
	shares   repositories.ShareRepository
	resolver services.AccessChecker
	logger   *slog.Logger
}

// NewShareHandler creates a new share handler
func NewShareHandler(shares repositories.ShareRepository, resolver services.AccessChecker, logger *slog.Logger) *ShareHandler {
	return &ShareHandler{
		shares:   shares,
		resolver: resolver,
		logger:   logger,
	}
}

// ListShares returns who has access to a checklist. Requires the share
// permission, so only the owner can enumerate grants. Pending invites are
// excluded by the repository.
// GET /api/checklists/{id}/shares
func (h *ShareHandler) ListShares(w http.ResponseWriter, r *http.Request) {
	userID := httputil.GetUserID(r)

	checklistID := r.PathValue("id")
	if checklistID == "" {
		httputil.RespondError(w, http.StatusBadRequest, "checklist ID is required")
		return
	}

	decision := h.resolver.CheckAccess(r.Context(), checklistID, userID, models.PermissionShare)
	if !decision.Authorized {
		if decision.Reason == authz.ReasonNotFound {
			httputil.RespondError(w, http.StatusNotFound, "checklist not found")
			return
		}
		httputil.RespondError(w, http.StatusForbidden, "share access requires ownership")
		return
	}

	shares, err := h.shares.ListByChecklist(r.Context(), checklistID)
	if err != nil {
		handleError(w, h.logger, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, shares)
}
