package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/crypto/bcrypt"

	"devfolio/internal/domain"
	"devfolio/internal/domain/models"
	"devfolio/internal/domain/repositories"
	"devfolio/internal/domain/services"
)

// userService implements the UserService interface
type userService struct {
	users     repositories.UserRepository
	projects  repositories.ProjectRepository
	favorites repositories.FavoriteRepository
	tx        repositories.TransactionManager
	logger    *slog.Logger
}

// NewUserService creates a new user service
func NewUserService(
	users repositories.UserRepository,
	projects repositories.ProjectRepository,
	favorites repositories.FavoriteRepository,
	tx repositories.TransactionManager,
	logger *slog.Logger,
) services.UserService {
	return &userService{
		users:     users,
		projects:  projects,
		favorites: favorites,
		tx:        tx,
		logger:    logger,
	}
}

// ListUsers retrieves the id+name of every user
func (s *userService) ListUsers(ctx context.Context) ([]models.UserSummary, error) {
	return s.users.List(ctx)
}

// GetUserInfo retrieves the public profile of one user
func (s *userService) GetUserInfo(ctx context.Context, id int64) (*models.UserInfo, error) {
	return s.users.GetInfo(ctx, id)
}

// UpdateUser edits name, email and optionally the password
func (s *userService) UpdateUser(ctx context.Context, id, requesterID int64, req *services.UpdateUserRequest) error {
	if id != requesterID {
		return fmt.Errorf("user %d may not edit user %d: %w", requesterID, id, domain.ErrInvalidOperation)
	}

	if err := s.validateUpdateRequest(req); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return err
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	inUse, err := s.users.EmailInUse(ctx, email, id)
	if err != nil {
		return err
	}
	if inUse {
		return fmt.Errorf("email %s: %w", email, domain.ErrConflict)
	}

	if req.NewPassword != nil {
		if req.CurrentPassword == nil {
			return fmt.Errorf("current password required: %w", domain.ErrInvalidOperation)
		}
		if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(*req.CurrentPassword)); err != nil {
			return fmt.Errorf("current password is incorrect: %w", domain.ErrInvalidOperation)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.NewPassword), bcryptCost)
		if err != nil {
			return fmt.Errorf("hash password: %w", err)
		}
		user.Password = string(hash)
	}

	user.Name = strings.TrimSpace(req.Name)
	user.Email = email

	if err := s.users.Update(ctx, user); err != nil {
		return err
	}

	s.logger.Info("user updated", "id", id)

	return nil
}

// DeleteUser removes the user and every dependent row. The statement
// order follows the foreign-key direction: edges and association rows
// first, then owned projects, then the user row. Reordering the last two
// steps before the first four would strand rows or break references, so
// the whole sequence runs inside one transaction and any failure rolls
// back every prior statement.
func (s *userService) DeleteUser(ctx context.Context, id, requesterID int64) error {
	if id != requesterID {
		return fmt.Errorf("user %d may not delete user %d: %w", requesterID, id, domain.ErrInvalidOperation)
	}

	err := s.tx.ExecTx(ctx, func(ctx context.Context) error {
		if err := s.favorites.DeleteUserEdges(ctx, id); err != nil {
			return err
		}

		projectIDs, err := s.projects.ListIDsByOwner(ctx, id)
		if err != nil {
			return err
		}

		if err := s.projects.DeleteTechnologies(ctx, projectIDs); err != nil {
			return err
		}

		// Favorite edges must go before the projects they reference.
		if err := s.favorites.DeleteProjectEdges(ctx, id, projectIDs); err != nil {
			return err
		}

		if err := s.projects.DeleteByOwner(ctx, id); err != nil {
			return err
		}

		return s.users.Delete(ctx, id)
	})
	if err != nil {
		return err
	}

	s.logger.Info("user deleted", "id", id)

	return nil
}

// validateUpdateRequest validates a user edit request
func (s *userService) validateUpdateRequest(req *services.UpdateUserRequest) error {
	err := validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 64)),
		validation.Field(&req.Email, validation.Required, validation.Match(emailPattern)),
	)
	if err != nil {
		return err
	}

	if req.NewPassword != nil {
		return validatePasswordStrength(*req.NewPassword)
	}

	return nil
}
