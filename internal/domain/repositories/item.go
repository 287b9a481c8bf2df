package repositories

import (
	"context"

	"tally/internal/domain/models"
)

// ItemRepository defines data access operations for items.
type ItemRepository interface {
	// Create persists a new item
	Create(ctx context.Context, item *models.Item) error

	// GetByID retrieves an item by ID.
	// Returns domain.ErrNotFound (wrapped) on a miss.
	GetByID(ctx context.Context, id string) (*models.Item, error)
}
