package repositories

import (
	"context"

	"tally/internal/domain/models"
)

// ShareRepository defines data access operations for shares. Shares are keyed
// by the composite (checklistId, userId) pair.
type ShareRepository interface {
	// Put upserts a share row. The composite key guarantees at most one row
	// per (checklistId, userId) pair.
	Put(ctx context.Context, share *models.Share) error

	// Get retrieves the share for the (checklistId, userId) pair.
	// Returns domain.ErrNotFound (wrapped) on a miss.
	Get(ctx context.Context, checklistID, userID string) (*models.Share, error)

	// ListByChecklist returns the claimed shares on a checklist. Pending link
	// invites (placeholder userID) are not grants yet and are excluded.
	ListByChecklist(ctx context.Context, checklistID string) ([]models.Share, error)
}
