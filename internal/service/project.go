package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"devfolio/internal/domain"
	"devfolio/internal/domain/models"
	"devfolio/internal/domain/repositories"
	"devfolio/internal/domain/services"
)

const (
	maxProjectNameLength = 32
	minDescriptionLength = 20
	maxDescriptionLength = 512
)

// projectService implements the ProjectService interface
type projectService struct {
	projects     repositories.ProjectRepository
	technologies repositories.TechnologyRepository
	favorites    repositories.FavoriteRepository
	tx           repositories.TransactionManager
	logger       *slog.Logger
}

// NewProjectService creates a new project service
func NewProjectService(
	projects repositories.ProjectRepository,
	technologies repositories.TechnologyRepository,
	favorites repositories.FavoriteRepository,
	tx repositories.TransactionManager,
	logger *slog.Logger,
) services.ProjectService {
	return &projectService{
		projects:     projects,
		technologies: technologies,
		favorites:    favorites,
		tx:           tx,
		logger:       logger,
	}
}

// CreateProject inserts the project row and reconciles its technology set
// in one transaction. The row goes in first to obtain the generated id
// the association rows need; if any insert fails nothing is kept.
func (s *projectService) CreateProject(ctx context.Context, req *services.CreateProjectRequest) (int64, error) {
	if err := s.validateProjectFields(req.Name, req.Description); err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	project := &models.Project{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatorID:   req.CreatorID,
	}

	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.projects.Create(ctx, project); err != nil {
			return err
		}
		return s.projects.ReplaceTechnologies(ctx, project.ID, dedupeIDs(req.TechnologyIDs))
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("project created",
		"id", project.ID,
		"creator_id", req.CreatorID,
		"technologies", len(req.TechnologyIDs),
	)

	return project.ID, nil
}

// UpdateProject edits the project row and reconciles its technology set.
// The editor must be the project's creator; the authenticated-subject
// check happens at the HTTP boundary, so both halves of the rule are
// enforced as independent comparisons.
func (s *projectService) UpdateProject(ctx context.Context, id, editorID int64, req *services.UpdateProjectRequest) error {
	if err := s.validateProjectFields(req.Name, req.Description); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	creatorID, err := s.projects.GetCreatorID(ctx, id)
	if err != nil {
		return err
	}
	if creatorID != editorID {
		return fmt.Errorf("user %d is not the creator of project %d: %w", editorID, id, domain.ErrInvalidOperation)
	}

	project := &models.Project{
		ID:          id,
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
	}

	err = s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.projects.Update(ctx, project); err != nil {
			return err
		}
		return s.projects.ReplaceTechnologies(ctx, id, dedupeIDs(req.TechnologyIDs))
	})
	if err != nil {
		return err
	}

	s.logger.Info("project updated", "id", id, "editor_id", editorID)

	return nil
}

// DeleteProject removes the project with its association rows and every
// favorite edge pointing at it, association and edge rows first so the
// project row is never referenced after it is gone.
func (s *projectService) DeleteProject(ctx context.Context, id, requesterID int64) error {
	creatorID, err := s.projects.GetCreatorID(ctx, id)
	if err != nil {
		return err
	}
	if creatorID != requesterID {
		return fmt.Errorf("user %d is not the creator of project %d: %w", requesterID, id, domain.ErrInvalidOperation)
	}

	err = s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.projects.DeleteTechnologies(ctx, []int64{id}); err != nil {
			return err
		}
		if err := s.favorites.DeleteProjectEdgesForProject(ctx, id); err != nil {
			return err
		}
		return s.projects.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("project deleted", "id", id, "requester_id", requesterID)

	return nil
}

// GetProject retrieves one project with its technologies
func (s *projectService) GetProject(ctx context.Context, id int64) (*models.ProjectWithTechnologies, error) {
	return s.projects.GetWithTechnologies(ctx, id)
}

// ListProjects retrieves projects with creator and technologies
func (s *projectService) ListProjects(ctx context.Context, ownerID *int64) ([]models.ProjectWithTechnologies, error) {
	return s.projects.ListWithTechnologies(ctx, ownerID)
}

// ListTechnologies retrieves the technology catalog
func (s *projectService) ListTechnologies(ctx context.Context) ([]models.Technology, error) {
	return s.technologies.List(ctx)
}

// validateProjectFields validates the name and description constraints
func (s *projectService) validateProjectFields(name, description string) error {
	return validation.Errors{
		"name": validation.Validate(strings.TrimSpace(name),
			validation.Required,
			validation.Length(1, maxProjectNameLength),
		),
		"description": validation.Validate(description,
			validation.Required,
			validation.Length(minDescriptionLength, maxDescriptionLength),
		),
	}.Filter()
}

// dedupeIDs removes duplicate ids preserving first-seen order
func dedupeIDs(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}

	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}

	return out
}
