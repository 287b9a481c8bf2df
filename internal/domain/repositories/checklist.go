package repositories

import (
	"context"

	"tally/internal/domain/models"
)

// ChecklistRepository defines data access operations for checklists.
// The authorizer only ever needs point reads; Create exists for seeding and
// the management surface.
type ChecklistRepository interface {
	// Create persists a new checklist
	Create(ctx context.Context, checklist *models.Checklist) error

	// GetByID retrieves a checklist by ID.
	// Returns domain.ErrNotFound (wrapped) on a miss.
	GetByID(ctx context.Context, id string) (*models.Checklist, error)
}
