package services

import (
	"context"

	"devfolio/internal/domain/models"
)

// UpdateUserRequest represents a user edit. CurrentPassword and
// NewPassword are both nil for a name/email-only edit.
type UpdateUserRequest struct {
	Name            string  `json:"name"`
	Email           string  `json:"email"`
	CurrentPassword *string `json:"current_password,omitempty"`
	NewPassword     *string `json:"new_password,omitempty"`
}

// UserService defines business logic operations for users
type UserService interface {
	// ListUsers retrieves the id+name of every user
	ListUsers(ctx context.Context) ([]models.UserSummary, error)

	// GetUserInfo retrieves the public profile of one user
	GetUserInfo(ctx context.Context, id int64) (*models.UserInfo, error)

	// UpdateUser edits name, email and optionally the password.
	// requesterID must equal id; a password change requires the current
	// password to verify.
	UpdateUser(ctx context.Context, id, requesterID int64, req *UpdateUserRequest) error

	// DeleteUser removes the user and every dependent row in one
	// transaction: favorite edges in both directions, the association and
	// favorite rows of every owned project, the projects, then the user.
	DeleteUser(ctx context.Context, id, requesterID int64) error
}
