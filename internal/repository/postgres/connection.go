package postgres

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"devfolio/internal/domain/repositories"
)

// RepositoryConfig holds configuration for repository implementations
type RepositoryConfig struct {
	Pool   *pgxpool.Pool
	Tables *TableNames
	Logger *slog.Logger
}

// TableNames holds dynamically prefixed table names
type TableNames struct {
	Users                string
	Projects             string
	Technologies         string
	ProjectsTechnologies string
	UsersFavorites       string
	ProjectsFavorites    string
}

// NewTableNames creates table names with the given prefix
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Users:                prefix + "users",
		Projects:             prefix + "projects",
		Technologies:         prefix + "technologies",
		ProjectsTechnologies: prefix + "projects_technologies",
		UsersFavorites:       prefix + "users_favorites",
		ProjectsFavorites:    prefix + "projects_favorites",
	}
}

// CreateConnectionPool creates a bounded pgx connection pool. Acquisition
// blocks when the pool is exhausted and fails once the acquire context
// times out, so a stalled request cannot hold the process hostage.
func CreateConnectionPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse connection string: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return pool, nil
}

// GetExecutor returns the appropriate query executor for the context.
// Inside a transaction scope it returns the bound transaction, so every
// statement of one logical operation runs on the same connection.
func GetExecutor(ctx context.Context, pool *pgxpool.Pool) repositories.DBTX {
	if tx := repositories.GetTx(ctx); tx != nil {
		return tx
	}
	return pool
}
