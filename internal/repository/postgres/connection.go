package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names. The prefix plays the
// same role the tag-based locator plays for DynamoDB: it selects the
// environment's physical tables for the logical entity families.
type TableNames struct {
	Checklists string
	Sections   string
	Items      string
	Shares     string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Checklists: fmt.Sprintf("%schecklists", prefix),
		Sections:   fmt.Sprintf("%ssections", prefix),
		Items:      fmt.Sprintf("%sitems", prefix),
		Shares:     fmt.Sprintf("%sshares", prefix),
	}
}

// CreateConnectionPool creates a new pgx connection pool and verifies the
// connection.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	slog.Debug("database pool ready", "max_conns", config.MaxConns, "min_conns", config.MinConns)
	return pool, nil
}
