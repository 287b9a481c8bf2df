package repositories

import (
	"context"

	"tally/internal/domain/models"
)

// SectionRepository defines data access operations for sections.
type SectionRepository interface {
	// Create persists a new section
	Create(ctx context.Context, section *models.Section) error

	// GetByID retrieves a section by ID.
	// Returns domain.ErrNotFound (wrapped) on a miss.
	GetByID(ctx context.Context, id string) (*models.Section, error)
}
