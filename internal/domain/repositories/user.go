package repositories

import (
	"context"

	"devfolio/internal/domain/models"
)

// UserRepository defines data access operations for users
type UserRepository interface {
	// Create inserts a new user and fills in the generated ID and
	// timestamps. Returns domain.ErrConflict on a duplicate email.
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id int64) (*models.User, error)

	// GetByEmail retrieves a user by email, domain.ErrNotFound when absent
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// List retrieves the id+name projection of every user
	List(ctx context.Context) ([]models.UserSummary, error)

	// GetInfo retrieves the public profile view with owned-project count
	GetInfo(ctx context.Context, id int64) (*models.UserInfo, error)

	// Exists reports whether a user row with the given id exists
	Exists(ctx context.Context, id int64) (bool, error)

	// EmailInUse reports whether another user already claims the email
	EmailInUse(ctx context.Context, email string, excludeID int64) (bool, error)

	// Update rewrites name, email, password and updated_at
	Update(ctx context.Context, user *models.User) error

	// Delete removes the user row only. Dependent rows must already be
	// gone; the cascade orchestrator owns the ordering.
	Delete(ctx context.Context, id int64) error
}
