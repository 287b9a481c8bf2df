package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"tally/internal/domain"
	"tally/internal/domain/models"
	"tally/internal/domain/repositories"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresItemRepository implements the ItemRepository interface
type PostgresItemRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewItemRepository creates a new item repository
func NewItemRepository(config *RepositoryConfig) repositories.ItemRepository {
	return &PostgresItemRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new item
func (r *PostgresItemRepository) Create(ctx context.Context, item *models.Item) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, section_id, title, done, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, r.tables.Items)

	_, err := r.pool.Exec(ctx, query,
		item.ID,
		item.SectionID,
		item.Title,
		item.Done,
		item.Position,
		item.CreatedAt,
		item.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("item %s: %w", item.ID, domain.ErrConflict)
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("section %s: %w", item.SectionID, domain.ErrNotFound)
		}
		return fmt.Errorf("create item: %w", err)
	}
	return nil
}

// GetByID retrieves an item by ID
func (r *PostgresItemRepository) GetByID(ctx context.Context, id string) (*models.Item, error) {
	query := fmt.Sprintf(`
		SELECT id, section_id, title, done, position, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Items)

	var item models.Item
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.SectionID,
		&item.Title,
		&item.Done,
		&item.Position,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("item %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get item: %w", err)
	}

	return &item, nil
}
