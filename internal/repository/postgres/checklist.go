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

// PostgresChecklistRepository implements the ChecklistRepository interface
type PostgresChecklistRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewChecklistRepository creates a new checklist repository
func NewChecklistRepository(config *RepositoryConfig) repositories.ChecklistRepository {
	return &PostgresChecklistRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Create creates a new checklist
func (r *PostgresChecklistRepository) Create(ctx context.Context, checklist *models.Checklist) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, author, is_public, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, r.tables.Checklists)

	_, err := r.pool.Exec(ctx, query,
		checklist.ID,
		checklist.Title,
		checklist.Author,
		checklist.IsPublic,
		checklist.CreatedAt,
		checklist.UpdatedAt,
	)
	if err != nil {
		if IsPgDuplicateError(err) {
			return fmt.Errorf("checklist %s: %w", checklist.ID, domain.ErrConflict)
		}
		return fmt.Errorf("create checklist: %w", err)
	}
	return nil
}

// GetByID retrieves a checklist by ID
func (r *PostgresChecklistRepository) GetByID(ctx context.Context, id string) (*models.Checklist, error) {
	query := fmt.Sprintf(`
		SELECT id, title, author, is_public, created_at, updated_at
		FROM %s
		WHERE id = $1
	`, r.tables.Checklists)

	var checklist models.Checklist
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&checklist.ID,
		&checklist.Title,
		&checklist.Author,
		&checklist.IsPublic,
		&checklist.CreatedAt,
		&checklist.UpdatedAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("checklist %s: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get checklist: %w", err)
	}

	return &checklist, nil
}
