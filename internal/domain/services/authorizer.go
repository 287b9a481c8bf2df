package services

import (
	"context"

	"tally/internal/domain/models"
)

// Authorizer decides, per operation, whether a caller may proceed.
//
// Design principle: the transport layer never reasons about access - it hands
// the credential and operation descriptor to the authorizer and forwards the
// boolean. Reason codes and resolved roles exist for the audit log, not for
// the caller.
type Authorizer interface {
	// Authorize evaluates a full operation. It never returns an error: every
	// failure mode inside evaluation collapses to a deny verdict with a
	// distinct reason code.
	Authorize(ctx context.Context, req *models.AuthorizeRequest) *models.Verdict
}

// AccessChecker computes a checklist-level access decision for a user and a
// requested permission. Callers holding an item or section ID must resolve it
// to a checklist ID before checking.
type AccessChecker interface {
	CheckAccess(ctx context.Context, checklistID, userID string, permission models.Permission) models.Decision
}
