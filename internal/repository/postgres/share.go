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

// PostgresShareRepository implements the ShareRepository interface. The
// composite primary key (checklist_id, user_id) enforces the
// one-row-per-pair invariant; Put is an upsert against it.
type PostgresShareRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
	logger *slog.Logger
}

// NewShareRepository creates a new share repository
func NewShareRepository(config *RepositoryConfig) repositories.ShareRepository {
	return &PostgresShareRepository{
		pool:   config.Pool,
		tables: config.Tables,
		logger: config.Logger,
	}
}

// Put upserts a share row
func (r *PostgresShareRepository) Put(ctx context.Context, share *models.Share) error {
	if err := share.Validate(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (checklist_id, user_id, role, shared_by, created_at, share_token, expires_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (checklist_id, user_id) DO UPDATE
		SET role = EXCLUDED.role,
		    shared_by = EXCLUDED.shared_by,
		    share_token = EXCLUDED.share_token,
		    expires_at = EXCLUDED.expires_at
	`, r.tables.Shares)

	shareToken := any(share.ShareToken)
	if share.ShareToken == "" {
		shareToken = nil
	}

	_, err := r.pool.Exec(ctx, query,
		share.ChecklistID,
		share.UserID,
		share.Role,
		share.SharedBy,
		share.CreatedAt,
		shareToken,
		share.ExpiresAt,
	)
	if err != nil {
		if IsPgForeignKeyError(err) {
			return fmt.Errorf("checklist %s: %w", share.ChecklistID, domain.ErrNotFound)
		}
		return fmt.Errorf("put share: %w", err)
	}
	return nil
}

// Get retrieves the share for the (checklistId, userId) pair
func (r *PostgresShareRepository) Get(ctx context.Context, checklistID, userID string) (*models.Share, error) {
	query := fmt.Sprintf(`
		SELECT checklist_id, user_id, role, shared_by, created_at, COALESCE(share_token, ''), expires_at
		FROM %s
		WHERE checklist_id = $1 AND user_id = $2
	`, r.tables.Shares)

	var share models.Share
	err := r.pool.QueryRow(ctx, query, checklistID, userID).Scan(
		&share.ChecklistID,
		&share.UserID,
		&share.Role,
		&share.SharedBy,
		&share.CreatedAt,
		&share.ShareToken,
		&share.ExpiresAt,
	)
	if err != nil {
		if IsPgNoRowsError(err) {
			return nil, fmt.Errorf("share %s/%s: %w", checklistID, userID, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get share: %w", err)
	}

	return &share, nil
}

// ListByChecklist returns the claimed shares on a checklist, excluding
// pending link invites
func (r *PostgresShareRepository) ListByChecklist(ctx context.Context, checklistID string) ([]models.Share, error) {
	query := fmt.Sprintf(`
		SELECT checklist_id, user_id, role, shared_by, created_at, COALESCE(share_token, ''), expires_at
		FROM %s
		WHERE checklist_id = $1 AND user_id NOT LIKE $2
		ORDER BY created_at
	`, r.tables.Shares)

	rows, err := r.pool.Query(ctx, query, checklistID, models.PendingUserPrefix+"%")
	if err != nil {
		return nil, fmt.Errorf("list shares: %w", err)
	}
	defer rows.Close()

	shares := []models.Share{}
	for rows.Next() {
		var share models.Share
		err := rows.Scan(
			&share.ChecklistID,
			&share.UserID,
			&share.Role,
			&share.SharedBy,
			&share.CreatedAt,
			&share.ShareToken,
			&share.ExpiresAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan share: %w", err)
		}
		shares = append(shares, share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shares: %w", err)
	}

	return shares, nil
}
