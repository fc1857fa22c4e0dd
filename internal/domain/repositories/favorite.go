package repositories

import (
	"context"

	"devfolio/internal/domain/models"
)

// FavoriteRepository defines data access operations for the directed
// user→user and user→project favorite edges.
type FavoriteRepository interface {
	// UserEdgeExists reports whether source already favorites target
	UserEdgeExists(ctx context.Context, sourceID, targetID int64) (bool, error)

	// AddUserEdge inserts a user→user edge. The unique pair constraint
	// backs the race window; a violation surfaces as domain.ErrConflict.
	AddUserEdge(ctx context.Context, sourceID, targetID int64) error

	// RemoveUserEdge deletes a user→user edge
	RemoveUserEdge(ctx context.Context, sourceID, targetID int64) error

	// DeleteUserEdges removes every user→user edge where the user is
	// source or target, in one statement.
	DeleteUserEdges(ctx context.Context, userID int64) error

	// ProjectEdgeExists reports whether the user already favorites the project
	ProjectEdgeExists(ctx context.Context, userID, projectID int64) (bool, error)

	// AddProjectEdge inserts a user→project edge, domain.ErrConflict on
	// a duplicate pair.
	AddProjectEdge(ctx context.Context, userID, projectID int64) error

	// RemoveProjectEdge deletes a user→project edge
	RemoveProjectEdge(ctx context.Context, userID, projectID int64) error

	// DeleteProjectEdges removes every user→project edge held by the
	// user or pointing at one of the given projects.
	DeleteProjectEdges(ctx context.Context, userID int64, projectIDs []int64) error

	// DeleteProjectEdgesForProject removes every edge pointing at one project
	DeleteProjectEdgesForProject(ctx context.Context, projectID int64) error

	// ListFavoriteUsers retrieves the id+name of every user favorited by userID
	ListFavoriteUsers(ctx context.Context, userID int64) ([]models.UserSummary, error)

	// ListFavoriteProjectIDs retrieves the ids of the user's favorite projects
	ListFavoriteProjectIDs(ctx context.Context, userID int64) ([]int64, error)

	// ListFavoriteProjects retrieves the user's favorite projects with
	// their aggregated technology lists.
	ListFavoriteProjects(ctx context.Context, userID int64) ([]models.ProjectWithTechnologies, error)
}
