package service

import (
	"context"
	"fmt"
	"log/slog"

	"devfolio/internal/domain"
	"devfolio/internal/domain/models"
	"devfolio/internal/domain/repositories"
	"devfolio/internal/domain/services"
)

// favoriteService implements the FavoriteService interface. Every
// add/remove runs its existence checks and the write inside one
// transaction so two concurrent calls cannot both pass the checks and
// both commit; the unique pair constraint breaks the remaining tie.
type favoriteService struct {
	users     repositories.UserRepository
	projects  repositories.ProjectRepository
	favorites repositories.FavoriteRepository
	tx        repositories.TransactionManager
	logger    *slog.Logger
}

// NewFavoriteService creates a new favorite service
func NewFavoriteService(
	users repositories.UserRepository,
	projects repositories.ProjectRepository,
	favorites repositories.FavoriteRepository,
	tx repositories.TransactionManager,
	logger *slog.Logger,
) services.FavoriteService {
	return &favoriteService{
		users:     users,
		projects:  projects,
		favorites: favorites,
		tx:        tx,
		logger:    logger,
	}
}

// IsUserFavorite reports whether source favorites target. The relation is
// directed: a→b says nothing about b→a.
func (s *favoriteService) IsUserFavorite(ctx context.Context, sourceID, targetID int64) (bool, error) {
	if sourceID == targetID {
		return false, fmt.Errorf("cannot check yourself: %w", domain.ErrInvalidOperation)
	}

	return s.favorites.UserEdgeExists(ctx, sourceID, targetID)
}

// AddUserFavorite inserts a user→user edge
func (s *favoriteService) AddUserFavorite(ctx context.Context, sourceID, targetID int64) error {
	if sourceID == targetID {
		return fmt.Errorf("cannot favorite yourself: %w", domain.ErrInvalidOperation)
	}

	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.requireUsers(ctx, sourceID, targetID); err != nil {
			return err
		}

		exists, err := s.favorites.UserEdgeExists(ctx, sourceID, targetID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("favorite %d->%d: %w", sourceID, targetID, domain.ErrConflict)
		}

		return s.favorites.AddUserEdge(ctx, sourceID, targetID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("user favorite added", "source_id", sourceID, "target_id", targetID)

	return nil
}

// RemoveUserFavorite deletes a user→user edge
func (s *favoriteService) RemoveUserFavorite(ctx context.Context, sourceID, targetID int64) error {
	if sourceID == targetID {
		return fmt.Errorf("cannot unfavorite yourself: %w", domain.ErrInvalidOperation)
	}

	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.requireUsers(ctx, sourceID, targetID); err != nil {
			return err
		}

		exists, err := s.favorites.UserEdgeExists(ctx, sourceID, targetID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("favorite %d->%d: %w", sourceID, targetID, domain.ErrNotFound)
		}

		return s.favorites.RemoveUserEdge(ctx, sourceID, targetID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("user favorite removed", "source_id", sourceID, "target_id", targetID)

	return nil
}

// IsProjectFavorite reports whether the user favorites the project
func (s *favoriteService) IsProjectFavorite(ctx context.Context, userID, projectID int64) (bool, error) {
	return s.favorites.ProjectEdgeExists(ctx, userID, projectID)
}

// AddProjectFavorite inserts a user→project edge. A creator favoriting
// their own project is allowed; only the user-edge relation forbids
// self-reference.
func (s *favoriteService) AddProjectFavorite(ctx context.Context, userID, projectID int64) error {
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.requireUserAndProject(ctx, userID, projectID); err != nil {
			return err
		}

		exists, err := s.favorites.ProjectEdgeExists(ctx, userID, projectID)
		if err != nil {
			return err
		}
		if exists {
			return fmt.Errorf("project favorite %d->%d: %w", userID, projectID, domain.ErrConflict)
		}

		return s.favorites.AddProjectEdge(ctx, userID, projectID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("project favorite added", "user_id", userID, "project_id", projectID)

	return nil
}

// RemoveProjectFavorite deletes a user→project edge
func (s *favoriteService) RemoveProjectFavorite(ctx context.Context, userID, projectID int64) error {
	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.requireUserAndProject(ctx, userID, projectID); err != nil {
			return err
		}

		exists, err := s.favorites.ProjectEdgeExists(ctx, userID, projectID)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("project favorite %d->%d: %w", userID, projectID, domain.ErrNotFound)
		}

		return s.favorites.RemoveProjectEdge(ctx, userID, projectID)
	})
	if err != nil {
		return err
	}

	s.logger.Info("project favorite removed", "user_id", userID, "project_id", projectID)

	return nil
}

// ListFavoriteUsers retrieves the users favorited by userID
func (s *favoriteService) ListFavoriteUsers(ctx context.Context, userID int64) ([]models.UserSummary, error) {
	return s.favorites.ListFavoriteUsers(ctx, userID)
}

// ListFavoriteProjectIDs retrieves the ids of the user's favorite projects
func (s *favoriteService) ListFavoriteProjectIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.favorites.ListFavoriteProjectIDs(ctx, userID)
}

// ListFavoriteProjects retrieves the user's favorite projects with their
// technology lists.
func (s *favoriteService) ListFavoriteProjects(ctx context.Context, userID int64) ([]models.ProjectWithTechnologies, error) {
	return s.favorites.ListFavoriteProjects(ctx, userID)
}

// requireUsers fails with not-found unless both user endpoints exist
func (s *favoriteService) requireUsers(ctx context.Context, ids ...int64) error {
	for _, id := range ids {
		exists, err := s.users.Exists(ctx, id)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("user %d: %w", id, domain.ErrNotFound)
		}
	}
	return nil
}

// requireUserAndProject fails with not-found unless both endpoints exist
func (s *favoriteService) requireUserAndProject(ctx context.Context, userID, projectID int64) error {
	if err := s.requireUsers(ctx, userID); err != nil {
		return err
	}

	exists, err := s.projects.Exists(ctx, projectID)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("project %d: %w", projectID, domain.ErrNotFound)
	}

	return nil
}
