package authz

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"tally/internal/domain"
	"tally/internal/domain/models"
	"tally/internal/domain/repositories"
)

// Decision reason codes. Stable strings: the audit log is the only place a
// human can see why a request was denied.
const (
	ReasonAuthorized         = "authorized"
	ReasonPublicChecklist    = "public_checklist"
	ReasonNotFound           = "not_found"
	ReasonNoRole             = "no_role"
	ReasonShareRequiresOwner = "share_requires_owner"
	ReasonPermissionDenied   = "permission_denied"
	ReasonLookupFailed       = "checklist_lookup_failed"
)

// Resolver walks ownership and sharing data to produce an authorization
// decision for a (checklist, user, permission) triple. Callers holding a
// section or item ID must resolve it to a checklist ID first; the router owns
// that translation.
type Resolver struct {
	checklists repositories.ChecklistRepository
	shares     repositories.ShareRepository
	logger     *slog.Logger
}

// NewResolver creates an access resolver over the checklist and share stores.
func NewResolver(checklists repositories.ChecklistRepository, shares repositories.ShareRepository, logger *slog.Logger) *Resolver {
	return &Resolver{
		checklists: checklists,
		shares:     shares,
		logger:     logger,
	}
}

// CheckAccess computes the decision for the requested permission.
//
// A public checklist short-circuits read and subscribe to allow without
// consulting shares. The share permission is gated on OWNER independently of
// the role-permission table: it must never become inferable from a generic
// permission-set check.
func (r *Resolver) CheckAccess(ctx context.Context, checklistID, userID string, permission models.Permission) models.Decision {
	checklist, err := r.checklists.GetByID(ctx, checklistID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return models.Decision{Authorized: false, Reason: ReasonNotFound}
		}
		r.logger.Error("checklist lookup failed during access check",
			"checklist_id", checklistID,
			"error", err,
		)
		return models.Decision{Authorized: false, Reason: ReasonLookupFailed}
	}

	if checklist.IsPublic && (permission == models.PermissionRead || permission == models.PermissionSubscribe) {
		return models.Decision{Authorized: true, Reason: ReasonPublicChecklist}
	}

	role, ok := r.resolveRole(ctx, checklist, userID)
	if !ok {
		return models.Decision{Authorized: false, Reason: ReasonNoRole}
	}

	if permission == models.PermissionShare && role != models.RoleOwner {
		return models.Decision{Authorized: false, Reason: ReasonShareRequiresOwner, Role: role}
	}

	if !role.Can(permission) {
		return models.Decision{Authorized: false, Reason: ReasonPermissionDenied, Role: role}
	}

	return models.Decision{Authorized: true, Reason: ReasonAuthorized, Role: role}
}

// resolveRole determines the caller's role on the checklist: the author is
// OWNER regardless of share table contents; anyone else needs a live share
// row. Expired shares are treated as absent, and a stored role outside the
// known enum is not a role at all.
func (r *Resolver) resolveRole(ctx context.Context, checklist *models.Checklist, userID string) (models.Role, bool) {
	if checklist.Author == userID {
		return models.RoleOwner, true
	}

	share, err := r.shares.Get(ctx, checklist.ID, userID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			r.logger.Error("share lookup failed during access check",
				"checklist_id", checklist.ID,
				"user_id", userID,
				"error", err,
			)
		}
		return "", false
	}

	if share.IsExpired(time.Now()) {
		r.logger.Debug("ignoring expired share",
			"checklist_id", checklist.ID,
			"user_id", userID,
			"expires_at", share.ExpiresAt,
		)
		return "", false
	}

	role, ok := models.ParseRole(share.Role)
	if !ok {
		r.logger.Warn("share row carries unknown role value",
			"checklist_id", checklist.ID,
			"user_id", userID,
			"role", share.Role,
		)
		return "", false
	}

	return role, true
}
