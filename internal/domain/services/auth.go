package services

import "context"

// SignupRequest represents a signup request
type SignupRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Session is the response of a successful signup or login
type Session struct {
	UserID    int64  `json:"user_id"`
	UserName  string `json:"user_name"`
	UserEmail string `json:"user_email"`
	Token     string `json:"token"`
}

// AuthService defines signup, login and the email-existence probe
type AuthService interface {
	// Signup registers a new user and returns a fresh session.
	// Returns domain.ErrConflict when the email is already registered.
	Signup(ctx context.Context, req *SignupRequest) (*Session, error)

	// Login verifies credentials and returns a fresh session.
	// Returns domain.ErrInvalidOperation on bad credentials.
	Login(ctx context.Context, req *LoginRequest) (*Session, error)

	// EmailExists reports whether the email is already registered
	EmailExists(ctx context.Context, email string) (bool, error)
}
