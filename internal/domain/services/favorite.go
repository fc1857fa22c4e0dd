package services

import (
	"context"

	"devfolio/internal/domain/models"
)

// FavoriteService manages the directed user→user and user→project
// favorite edges. The user-edge relation is not symmetric: a→b says
// nothing about b→a.
type FavoriteService interface {
	// IsUserFavorite reports whether source favorites target
	IsUserFavorite(ctx context.Context, sourceID, targetID int64) (bool, error)

	// AddUserFavorite inserts a user→user edge. Self-reference yields
	// domain.ErrInvalidOperation, a missing endpoint domain.ErrNotFound,
	// an existing edge domain.ErrConflict.
	AddUserFavorite(ctx context.Context, sourceID, targetID int64) error

	// RemoveUserFavorite deletes a user→user edge. A missing endpoint or
	// absent edge yields domain.ErrNotFound.
	RemoveUserFavorite(ctx context.Context, sourceID, targetID int64) error

	// IsProjectFavorite reports whether the user favorites the project
	IsProjectFavorite(ctx context.Context, userID, projectID int64) (bool, error)

	// AddProjectFavorite inserts a user→project edge
	AddProjectFavorite(ctx context.Context, userID, projectID int64) error

	// RemoveProjectFavorite deletes a user→project edge
	RemoveProjectFavorite(ctx context.Context, userID, projectID int64) error

	// ListFavoriteUsers retrieves the users favorited by userID
	ListFavoriteUsers(ctx context.Context, userID int64) ([]models.UserSummary, error)

	// ListFavoriteProjectIDs retrieves the ids of the user's favorite projects
	ListFavoriteProjectIDs(ctx context.Context, userID int64) ([]int64, error)

	// ListFavoriteProjects retrieves the user's favorite projects with
	// their technology lists.
	ListFavoriteProjects(ctx context.Context, userID int64) ([]models.ProjectWithTechnologies, error)
}
