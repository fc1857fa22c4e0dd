package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"devfolio/internal/domain"
	"devfolio/internal/domain/models"
	"devfolio/internal/domain/repositories"
)

// PostgresFavoriteRepository implements the FavoriteRepository interface
type PostgresFavoriteRepository struct {
	pool   *pgxpool.Pool
	tables *TableNames
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(config *RepositoryConfig) repositories.FavoriteRepository {
	return &PostgresFavoriteRepository{
		pool:   config.Pool,
		tables: config.Tables,
	}
}

// UserEdgeExists reports whether source already favorites target
func (r *PostgresFavoriteRepository) UserEdgeExists(ctx context.Context, sourceID, targetID int64) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE user_id = $1 AND fav_user_id = $2)
	`, r.tables.UsersFavorites)

	var exists bool
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, sourceID, targetID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check user favorite: %w", err)
	}

	return exists, nil
}

// AddUserEdge inserts a user→user edge. The unique pair constraint is the
// backstop for the concurrent-add race: the losing insert surfaces as a
// conflict, never a duplicate edge.
func (r *PostgresFavoriteRepository) AddUserEdge(ctx context.Context, sourceID, targetID int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, fav_user_id) VALUES ($1, $2)
	`, r.tables.UsersFavorites)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, sourceID, targetID); err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("favorite %d->%d: %w", sourceID, targetID, domain.ErrConflict)
		}
		if isPgCheckError(err) {
			return fmt.Errorf("favorite %d->%d: %w", sourceID, targetID, domain.ErrInvalidOperation)
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("favorite %d->%d: %w", sourceID, targetID, domain.ErrNotFound)
		}
		return fmt.Errorf("add user favorite: %w", err)
	}

	return nil
}

// RemoveUserEdge deletes a user→user edge
func (r *PostgresFavoriteRepository) RemoveUserEdge(ctx context.Context, sourceID, targetID int64) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE user_id = $1 AND fav_user_id = $2
	`, r.tables.UsersFavorites)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, sourceID, targetID)
	if err != nil {
		return fmt.Errorf("remove user favorite: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("favorite %d->%d: %w", sourceID, targetID, domain.ErrNotFound)
	}

	return nil
}

// DeleteUserEdges removes every user→user edge touching the user, both
// directions in one statement.
func (r *PostgresFavoriteRepository) DeleteUserEdges(ctx context.Context, userID int64) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE user_id = $1 OR fav_user_id = $1
	`, r.tables.UsersFavorites)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("delete user favorites: %w", err)
	}

	return nil
}

// ProjectEdgeExists reports whether the user already favorites the project
func (r *PostgresFavoriteRepository) ProjectEdgeExists(ctx context.Context, userID, projectID int64) (bool, error) {
	query := fmt.Sprintf(`
		SELECT EXISTS (SELECT 1 FROM %s WHERE user_id = $1 AND project_id = $2)
	`, r.tables.ProjectsFavorites)

	var exists bool
	if err := GetExecutor(ctx, r.pool).QueryRow(ctx, query, userID, projectID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check project favorite: %w", err)
	}

	return exists, nil
}

// AddProjectEdge inserts a user→project edge
func (r *PostgresFavoriteRepository) AddProjectEdge(ctx context.Context, userID, projectID int64) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (user_id, project_id) VALUES ($1, $2)
	`, r.tables.ProjectsFavorites)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, userID, projectID); err != nil {
		if isPgDuplicateError(err) {
			return fmt.Errorf("project favorite %d->%d: %w", userID, projectID, domain.ErrConflict)
		}
		if isPgForeignKeyError(err) {
			return fmt.Errorf("project favorite %d->%d: %w", userID, projectID, domain.ErrNotFound)
		}
		return fmt.Errorf("add project favorite: %w", err)
	}

	return nil
}

// RemoveProjectEdge deletes a user→project edge
func (r *PostgresFavoriteRepository) RemoveProjectEdge(ctx context.Context, userID, projectID int64) error {
	query := fmt.Sprintf(`
		DELETE FROM %s WHERE user_id = $1 AND project_id = $2
	`, r.tables.ProjectsFavorites)

	result, err := GetExecutor(ctx, r.pool).Exec(ctx, query, userID, projectID)
	if err != nil {
		return fmt.Errorf("remove project favorite: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("project favorite %d->%d: %w", userID, projectID, domain.ErrNotFound)
	}

	return nil
}

// DeleteProjectEdges removes every user→project edge held by the user or
// pointing at one of the given projects.
func (r *PostgresFavoriteRepository) DeleteProjectEdges(ctx context.Context, userID int64, projectIDs []int64) error {
	db := GetExecutor(ctx, r.pool)

	if len(projectIDs) == 0 {
		query := fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1`, r.tables.ProjectsFavorites)
		if _, err := db.Exec(ctx, query, userID); err != nil {
			return fmt.Errorf("delete project favorites: %w", err)
		}
		return nil
	}

	query := fmt.Sprintf(`
		DELETE FROM %s WHERE user_id = $1 OR project_id = ANY($2)
	`, r.tables.ProjectsFavorites)

	if _, err := db.Exec(ctx, query, userID, projectIDs); err != nil {
		return fmt.Errorf("delete project favorites: %w", err)
	}

	return nil
}

// DeleteProjectEdgesForProject removes every edge pointing at one project
func (r *PostgresFavoriteRepository) DeleteProjectEdgesForProject(ctx context.Context, projectID int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE project_id = $1`, r.tables.ProjectsFavorites)

	if _, err := GetExecutor(ctx, r.pool).Exec(ctx, query, projectID); err != nil {
		return fmt.Errorf("delete favorites for project: %w", err)
	}

	return nil
}

// ListFavoriteUsers retrieves the id+name of every user favorited by userID
func (r *PostgresFavoriteRepository) ListFavoriteUsers(ctx context.Context, userID int64) ([]models.UserSummary, error) {
	query := fmt.Sprintf(`
		SELECT u.id, u.name
		FROM %s u
		JOIN %s uf ON u.id = uf.fav_user_id
		WHERE uf.user_id = $1
		ORDER BY u.id
	`, r.tables.Users, r.tables.UsersFavorites)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorite users: %w", err)
	}
	defer rows.Close()

	users := []models.UserSummary{}
	for rows.Next() {
		var user models.UserSummary
		if err := rows.Scan(&user.ID, &user.Name); err != nil {
			return nil, fmt.Errorf("scan favorite user: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorite users: %w", err)
	}

	return users, nil
}

// ListFavoriteProjectIDs retrieves the ids of the user's favorite projects
func (r *PostgresFavoriteRepository) ListFavoriteProjectIDs(ctx context.Context, userID int64) ([]int64, error) {
	query := fmt.Sprintf(`
		SELECT p.id
		FROM %s p
		JOIN %s pf ON p.id = pf.project_id
		WHERE pf.user_id = $1
		ORDER BY p.id
	`, r.tables.Projects, r.tables.ProjectsFavorites)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorite project ids: %w", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan favorite project id: %w", err)
		}
		ids = append(ids, id)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorite project ids: %w", err)
	}

	return ids, nil
}

// ListFavoriteProjects retrieves the user's favorite projects with their
// aggregated technology lists.
func (r *PostgresFavoriteRepository) ListFavoriteProjects(ctx context.Context, userID int64) ([]models.ProjectWithTechnologies, error) {
	query := fmt.Sprintf(`
		SELECT p.id, p.name, p.description, p.created_at, p.updated_at,
		       u.id, u.name, md5(u.email),
		       t.id, t.name
		FROM %s pf
		JOIN %s p ON pf.project_id = p.id
		JOIN %s u ON p.user_id = u.id
		LEFT JOIN %s pt ON p.id = pt.project_id
		LEFT JOIN %s t ON pt.technology_id = t.id
		WHERE pf.user_id = $1
		ORDER BY p.id, t.id
	`, r.tables.ProjectsFavorites, r.tables.Projects, r.tables.Users,
		r.tables.ProjectsTechnologies, r.tables.Technologies)

	rows, err := GetExecutor(ctx, r.pool).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorite projects: %w", err)
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
			return nil, fmt.Errorf("scan favorite project row: %w", err)
		}
		flat = append(flat, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorite project rows: %w", err)
	}

	return models.AggregateProjects(flat), nil
}
