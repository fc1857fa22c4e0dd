package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"devfolio/internal/domain"
	"devfolio/internal/domain/models"
	"devfolio/internal/domain/repositories"
)

// PostgresProjectRepository implements the ProjectRepository interface
type PostgresProjectRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(config *RepositoryConfig) repositories.ProjectRepository {
	return &PostgresProjectRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// Create inserts a new project row
func (r *PostgresProjectRepository) Create(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (name, description, user_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`, r.tables.Projects)

	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query,
		project.Name,
		project.Description,
		project.CreatorID,
	).Scan(&project.ID, &project.CreatedAt, &project.UpdatedAt)

	if err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("creator %d: %w", project.CreatorID, domain.ErrNotFound)
		}
		return fmt.Errorf("create project: %w", err)
	}

	return nil
}

// Update rewrites name, description and updated_at. The creator column is
// deliberately absent from the statement.
func (r *PostgresProjectRepository) Update(ctx context.Context, project *models.Project) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET name = $1, description = $2, updated_at = now()
		WHERE id = $3
	`, r.tables.Projects)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query,
		project.Name,
		project.Description,
		project.ID,
	)

	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %d: %w", project.ID, domain.ErrNotFound)
	}

	return nil
}

// Delete removes the project row
func (r *PostgresProjectRepository) Delete(ctx context.Context, id int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, r.tables.Projects)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}

	return nil
}

// Exists reports whether a project row with the given id exists
func (r *PostgresProjectRepository) Exists(ctx context.Context, id int64) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS (SELECT 1 FROM %s WHERE id = $1)`, r.tables.Projects)

	var exists bool
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("check project exists: %w", err)
	}

	return exists, nil
}

// GetCreatorID returns the owning user id
func (r *PostgresProjectRepository) GetCreatorID(ctx context.Context, id int64) (int64, error) {
	query := fmt.Sprintf(`SELECT user_id FROM %s WHERE id = $1`, r.tables.Projects)

	var creatorID int64
	err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, id).Scan(&creatorID)
	if err != nil {
		if isPgNoRowsError(err) {
			return 0, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("get project creator: %w", err)
	}

	return creatorID, nil
}

// ListIDsByOwner returns the ids of every project owned by a user
func (r *PostgresProjectRepository) ListIDsByOwner(ctx context.Context, ownerID int64) ([]int64, error) {
	query := fmt.Sprintf(`SELECT id FROM %s WHERE user_id = $1`, r.tables.Projects)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list project ids: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan project id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project ids: %w", err)
	}

	return ids, nil
}

// DeleteByOwner removes every project row owned by a user
func (r *PostgresProjectRepository) DeleteByOwner(ctx context.Context, ownerID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1`, r.tables.Projects)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, ownerID); err != nil {
		return fmt.Errorf("delete projects by owner: %w", err)
	}

	return nil
}

// ReplaceTechnologies reconciles the project's technology set with a
// delete-all then insert: the association is a set, so the previous rows
// are dropped wholesale instead of diffed. Must run inside the same
// transaction as the project insert/update.
func (r *PostgresProjectRepository) ReplaceTechnologies(ctx context.Context, projectID int64, technologyIDs []int64) error {
	db := GetExecutor(ctx, r.pool)

	deleteQuery := fmt.Sprintf(`DELETE FROM %s WHERE project_id = $1`, r.tables.ProjectsTechnologies)
	if _, err := db.Exec(ctx, deleteQuery, projectID); err != nil {
		return fmt.Errorf("clear project technologies: %w", err)
	}

	if len(technologyIDs) == 0 {
		return nil
	}

	// Batched insert; ON CONFLICT guards against duplicate ids in the
	// input on top of the service-level dedup.
	insertQuery := fmt.Sprintf(`
		INSERT INTO %s (project_id, technology_id)
		SELECT $1, unnest($2::bigint[])
		ON CONFLICT DO NOTHING
	`, r.tables.ProjectsTechnologies)

	if _, err := db.Exec(ctx, insertQuery, projectID, technologyIDs); err != nil {
		if isPgForeignKeyError(err) {
			return fmt.Errorf("technology: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert project technologies: %w", err)
	}

	return nil
}

// DeleteTechnologies removes the association rows for the given projects
func (r *PostgresProjectRepository) DeleteTechnologies(ctx context.Context, projectIDs []int64) error {
	if len(projectIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE project_id = ANY($1)`, r.tables.ProjectsTechnologies)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, projectIDs); err != nil {
		return fmt.Errorf("delete project technologies: %w", err)
	}

	return nil
}

// GetWithTechnologies retrieves one project with its technology list
func (r *PostgresProjectRepository) GetWithTechnologies(ctx context.Context, id int64) (*models.ProjectWithTechnologies, error) {
	rows, err := r.queryProjectRows(ctx, `WHERE p.id = $1`, id)
	if err != nil {
		return nil, err
	}

	projects := models.AggregateProjects(rows)
	if len(projects) == 0 {
		return nil, fmt.Errorf("project %d: %w", id, domain.ErrNotFound)
	}

	return &projects[0], nil
}

// ListWithTechnologies retrieves projects with creator and technologies,
// optionally filtered by owner.
func (r *PostgresProjectRepository) ListWithTechnologies(ctx context.Context, ownerID *int64) ([]models.ProjectWithTechnologies, error) {
	var (
		rows []models.ProjectTechnologyRow
		err  error
	)

	if ownerID != nil {
		rows, err = r.queryProjectRows(ctx, `WHERE p.user_id = $1`, *ownerID)
	} else {
		rows, err = r.queryProjectRows(ctx, ``)
	}
	if err != nil {
		return nil, err
	}

	return models.AggregateProjects(rows), nil
}

// queryProjectRows runs the projects ⋈ users ⋈ technologies left join and
// scans the flat rows the aggregator consumes.
func (r *PostgresProjectRepository) queryProjectRows(ctx context.Context, where string, args ...interface{}) ([]models.ProjectTechnologyRow, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.name, p.description, p.created_at, p.updated_at,
		       u.id, u.name, md5(u.email),
		       t.id, t.name
		FROM %s p
		JOIN %s u ON p.user_id = u.id
		LEFT JOIN %s pt ON p.id = pt.project_id
		LEFT JOIN %s t ON pt.technology_id = t.id
		%s
		ORDER BY p.id, t.id
	`, r.tables.Projects, r.tables.Users, r.tables.ProjectsTechnologies, r.tables.Technologies, where)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query projects: %w", err)
	}
	defer rows.Close()

	var flat []models.ProjectTechnologyRow
	for rows.Next() {
		var row models.ProjectTechnologyRow
		err := rows.Scan(
			&row.ProjectID,
			&row.Name,
			&row.Description,
			&row.CreatedAt,
			&row.UpdatedAt,
			&row.CreatorID,
			&row.CreatorName,
			&row.CreatorEmailHash,
			&row.TechnologyID,
			&row.TechnologyName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan project row: %w", err)
		}
		flat = append(flat, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate project rows: %w", err)
	}

	return flat, nil
}
