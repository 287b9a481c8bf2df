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

// PostgresSectionRepository implements the SectionRepository interface
type PostgresSectionRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewSectionRepository creates a new section repository
func NewSectionRepository(config *RepositoryConfig) repositories.SectionRepository {
	return &PostgresSectionRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new section
func (r *PostgresSectionRepository) Create(ctx context.Context, section *models.Section) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, checklist_id, title, position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Sections)

	_, err := r.pool.Exec(ctx, query,
		section.ID,
		section.ChecklistID,
		section.Title,
		section.Position,
		section.CreatedAt,
		section.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("section %s: %w", section.ID, domain.ErrConflict)
		}
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("checklist %s: %w", section.ChecklistID, domain.ErrNotFound)
		}
		return fmt.Errorf("create section: %w", err)
	}
	return nil
}

// GetByID retrieves a section by ID
func (r *PostgresSectionRepository) GetByID(ctx context.Context, id string) (*models.Section, error) {
	query := fmt.Sprintf(`
		SELECT id, checklist_id, title, position, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Sections)

	var section models.Section
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&section.ID,
		&section.ChecklistID,
		&section.Title,
		&section.Position,
		&section.CreatedAt,
		&section.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("section %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get section: %w", err)
	}

	return &section, nil
}
