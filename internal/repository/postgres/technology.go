package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"devfolio/internal/domain/models"
	"devfolio/internal/domain/repositories"
)

// PostgresTechnologyRepository implements the TechnologyRepository interface
type PostgresTechnologyRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewTechnologyRepository creates a new technology repository
func NewTechnologyRepository(config *RepositoryConfig) repositories.TechnologyRepository {
	return &PostgresTechnologyRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// List retrieves the whole catalog ordered by id
func (r *PostgresTechnologyRepository) List(ctx context.Context) ([]models.Technology, error) {
	query := fmt.Sprintf(`SELECT id, name FROM %s ORDER BY id`, r.tables.Technologies)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list technologies: %w", err)
	}
	defer rows.Close()

	technologies := []models.Technology{}
	for rows.Next() {
		var tech models.Technology
		if err := rows.Scan(&tech.ID, &tech.Name); err != nil {
			return nil, fmt.Errorf("scan technology: %w", err)
		}
		technologies = append(technologies, tech)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate technologies: %w", err)
	}

	return technologies, nil
}

// Upsert inserts a catalog entry, keyed by the unique name. Re-seeding is
// idempotent.
func (r *PostgresTechnologyRepository) Upsert(ctx context.Context, name string) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name)
		VALUES ($1)
		ON CONFLICT (name) DO NOTHING
	`, r.tables.Technologies)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, name); err != nil {
		return fmt.Errorf("upsert technology: %w", err)
	}

	return nil
}
