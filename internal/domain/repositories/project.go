package repositories

import (
	"context"

	"devfolio/internal/domain/models"
)

// ProjectRepository defines data access operations for projects and the
// project↔technology association.
type ProjectRepository interface {
	// Create inserts a new project and fills in the generated ID and
	// timestamps.
	Create(ctx context.Context, project *models.Project) error

	// Update rewrites name, description and updated_at. The creator
	// reference is immutable and not part of the statement.
	Update(ctx context.Context, project *models.Project) error

	// Delete removes the project row only; association and favorite rows
	// must be removed first within the same transaction.
	Delete(ctx context.Context, id int64) error

	// Exists reports whether a project row with the given id exists
	Exists(ctx context.Context, id int64) (bool, error)

	// GetCreatorID returns the owning user id, domain.ErrNotFound when
	// the project does not exist.
	GetCreatorID(ctx context.Context, id int64) (int64, error)

	// ListIDsByOwner returns the ids of every project owned by a user
	ListIDsByOwner(ctx context.Context, ownerID int64) ([]int64, error)

	// DeleteByOwner removes every project row owned by a user
	DeleteByOwner(ctx context.Context, ownerID int64) error

	// ReplaceTechnologies reconciles the project's technology set:
	// delete every existing association row, then insert one row per id.
	// An empty list leaves the project with zero technologies.
	ReplaceTechnologies(ctx context.Context, projectID int64, technologyIDs []int64) error

	// DeleteTechnologies removes the association rows for the given
	// projects. A no-op for an empty id list.
	DeleteTechnologies(ctx context.Context, projectIDs []int64) error

	// GetWithTechnologies retrieves one project with its aggregated
	// technology list, domain.ErrNotFound when absent.
	GetWithTechnologies(ctx context.Context, id int64) (*models.ProjectWithTechnologies, error)

	// ListWithTechnologies retrieves projects with creator and
	// technologies, optionally filtered by owner (nil means all).
	ListWithTechnologies(ctx context.Context, ownerID *int64) ([]models.ProjectWithTechnologies, error)
}

// TechnologyRepository reads the static technology catalog.
type TechnologyRepository interface {
	// List retrieves the whole catalog ordered by id
	List(ctx context.Context) ([]models.Technology, error)

	// Upsert inserts a catalog entry by unique name, used by seeding
	Upsert(ctx context.Context, name string) error
}
