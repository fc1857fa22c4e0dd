package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"unicode"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/crypto/bcrypt"

	"devfolio/internal/auth"
	"devfolio/internal/domain"
	"devfolio/internal/domain/models"
	"devfolio/internal/domain/repositories"
	"devfolio/internal/domain/services"
)

const bcryptCost = 12

var emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// authService implements the AuthService interface
type authService struct {
	users  repositories.UserRepository
	tokens auth.TokenIssuer
	logger *slog.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	users repositories.UserRepository,
	tokens auth.TokenIssuer,
	logger *slog.Logger,
) services.AuthService {
	return &authService{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Signup registers a new user and returns a fresh session
func (s *authService) Signup(ctx context.Context, req *services.SignupRequest) (*services.Session, error) {
	if err := s.validateSignupRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("email %s: %w", email, domain.ErrConflict)
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(req.Name),
		Email:    email,
		Password: string(hash),
	}

	// The unique email constraint backs the pre-check against a
	// concurrent signup with the same address.
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user signed up", "id", user.ID)

	return &services.Session{
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		Token:     token,
	}, nil
}

// Login verifies credentials and returns a fresh session
func (s *authService) Login(ctx context.Context, req *services.LoginRequest) (*services.Session, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("incorrect email or password: %w", domain.ErrInvalidOperation)
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return nil, fmt.Errorf("incorrect email or password: %w", domain.ErrInvalidOperation)
	}

	token, err := s.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &services.Session{
		UserID:    user.ID,
		UserName:  user.Name,
		UserEmail: user.Email,
		Token:     token,
	}, nil
}

// EmailExists reports whether the email is already registered
func (s *authService) EmailExists(ctx context.Context, email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	_, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	return true, nil
}

// validateSignupRequest validates a signup request
func (s *authService) validateSignupRequest(req *services.SignupRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 64)),
		validation.Field(&req.Email, validation.Required, validation.Match(emailPattern)),
		validation.Field(&req.Password, validation.Required, validation.By(validatePasswordStrength)),
	)
}

// validatePasswordStrength enforces the signup password policy: 8 to 64
// characters with at least one lowercase letter, one uppercase letter and
// one special character.
func validatePasswordStrength(value interface{}) error {
	password, ok := value.(string)
	if !ok {
		return fmt.Errorf("password must be a string")
	}

	if len(password) < 8 || len(password) > 64 {
		return fmt.Errorf("password must be between 8 and 64 characters")
	}

	var lower, upper, special bool
	for _, r := range password {
		switch {
		case unicode.IsLower(r):
			lower = true
		case unicode.IsUpper(r):
			upper = true
		case strings.ContainsRune("!@#$%^&*()_=;:,.?", r):
			special = true
		}
	}

	if !lower || !upper || !special {
		return fmt.Errorf("password must contain a lowercase letter, an uppercase letter and a special character")
	}

	return nil
}
