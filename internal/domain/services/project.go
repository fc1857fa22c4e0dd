package services

import (
	"context"

	"devfolio/internal/domain/models"
)

// CreateProjectRequest represents a request to create a project
type CreateProjectRequest struct {
	CreatorID     int64   `json:"user_id"`
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	TechnologyIDs []int64 `json:"technologies"`
}

// UpdateProjectRequest represents a request to edit a project
type UpdateProjectRequest struct {
	Name          string  `json:"name"`
	Description   string  `json:"description"`
	TechnologyIDs []int64 `json:"technologies"`
}

// ProjectService defines business logic operations for projects
type ProjectService interface {
	// CreateProject inserts the project row and reconciles its
	// technology set in one transaction, returning the generated id.
	CreateProject(ctx context.Context, req *CreateProjectRequest) (int64, error)

	// UpdateProject edits the project row and reconciles its technology
	// set in one transaction. editorID must be the project's creator.
	UpdateProject(ctx context.Context, id, editorID int64, req *UpdateProjectRequest) error

	// DeleteProject removes the project, its association rows and every
	// favorite edge pointing at it in one transaction. requesterID must
	// be the project's creator.
	DeleteProject(ctx context.Context, id, requesterID int64) error

	// GetProject retrieves one project with its technologies
	GetProject(ctx context.Context, id int64) (*models.ProjectWithTechnologies, error)

	// ListProjects retrieves projects with creator and technologies,
	// optionally filtered by owner (nil means all projects).
	ListProjects(ctx context.Context, ownerID *int64) ([]models.ProjectWithTechnologies, error)

	// ListTechnologies retrieves the technology catalog
	ListTechnologies(ctx context.Context) ([]models.Technology, error)
}
