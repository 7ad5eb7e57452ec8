// Package app holds the application services and business logic.
package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"

	"msgboard/internal/domain"
)

var (
	// ErrMissingCredentials indicates a blank username or password.
	ErrMissingCredentials = errors.New("username and password must not be empty")
	// ErrDuplicateUsername indicates the username is already registered.
	ErrDuplicateUsername = errors.New("username already exists")
	// ErrInvalidCredentials indicates that the provided username or password was incorrect.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// AuthService handles registration, login and session resolution.
type AuthService struct {
	users domain.UserRepository
}

// NewAuthService creates a new authentication service.
func NewAuthService(users domain.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new account. Usernames are unique and immutable.
func (s *AuthService) Register(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return ErrMissingCredentials
	}

	existing, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicateUsername
	}

	_, err = s.users.Create(ctx, username, password)
	return err
}

// Login authenticates a user and issues a fresh session id, replacing
// (and thereby invalidating) any session the user already had.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil || user.Password != password {
		return "", ErrInvalidCredentials
	}

	sessionID, err := generateSessionID()
	if err != nil {
		return "", err
	}

	if err := s.users.SetSession(ctx, username, sessionID); err != nil {
		return "", err
	}
	return sessionID, nil
}

// LoginWithUser issues a session for an externally authenticated user
// (e.g. via SSO), provisioning the account on first sight.
func (s *AuthService) LoginWithUser(ctx context.Context, username string) (string, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if user == nil {
		if _, err := s.users.Create(ctx, username, ""); err != nil {
			return "", err
		}
	}

	sessionID, err := generateSessionID()
	if err != nil {
		return "", err
	}

	if err := s.users.SetSession(ctx, username, sessionID); err != nil {
		return "", err
	}
	return sessionID, nil
}

// Logout clears the caller's stored session id.
func (s *AuthService) Logout(ctx context.Context, username string) error {
	return s.users.ClearSession(ctx, username)
}

// Identify resolves a session id to its user. An unknown or empty id
// yields (nil, nil): the caller is simply anonymous.
func (s *AuthService) Identify(ctx context.Context, sessionID string) (*domain.User, error) {
	if sessionID == "" {
		return nil, nil
	}
	return s.users.GetBySession(ctx, sessionID)
}

// generateSessionID returns 16 cryptographically random bytes as hex.
// No uniqueness check against live sessions; a collision within the tiny
// concurrent-login window is treated as negligible.
func generateSessionID() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
