// Package memory implements an in-memory store for development and testing.
package memory

import (
	"context"
	"errors"
	"sync"

	"msgboard/internal/domain"
)

// Store implements the domain repositories in memory.
type Store struct {
	mu       sync.Mutex
	users    map[string]*domain.User
	sessions map[string]string
	messages []domain.Message
	searches []domain.SearchEntry
}

// New creates a new in-memory store.
func New() *Store {
	return &Store{
		users:    make(map[string]*domain.User),
		sessions: make(map[string]string),
	}
}

// Ensure interfaces are met.
var (
	_ domain.UserRepository      = (*Store)(nil)
	_ domain.MessageRepository   = (*Store)(nil)
	_ domain.SearchLogRepository = (*Store)(nil)
)

// --- UserRepository ---

// GetByUsername retrieves a user by username.
func (s *Store) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

// GetBySession resolves a session id to its user.
func (s *Store) GetBySession(ctx context.Context, sessionID string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	username, ok := s.sessions[sessionID]
	if !ok {
		return nil, nil
	}
	u, ok := s.users[username]
	if !ok {
		return nil, nil
	}
	copied := *u
	return &copied, nil
}

// Create creates a new user.
func (s *Store) Create(ctx context.Context, username, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; ok {
		return nil, errors.New("user already exists")
	}

	u := &domain.User{Username: username, Password: password}
	s.users[username] = u
	copied := *u
	return &copied, nil
}

// SetSession binds a session id to the user, replacing any prior one.
func (s *Store) SetSession(ctx context.Context, username, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return errors.New("user not found")
	}
	if u.SessionID != "" {
		delete(s.sessions, u.SessionID)
	}
	u.SessionID = sessionID
	s.sessions[sessionID] = username
	return nil
}

// ClearSession removes the user's session.
func (s *Store) ClearSession(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return errors.New("user not found")
	}
	if u.SessionID != "" {
		delete(s.sessions, u.SessionID)
		u.SessionID = ""
	}
	return nil
}

// --- MessageRepository ---

// Append appends a message.
func (s *Store) Append(ctx context.Context, msg domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.messages = append(s.messages, msg)
	return nil
}

// List returns all messages in insertion order.
func (s *Store) List(ctx context.Context) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.Message, len(s.messages))
	copy(result, s.messages)
	return result, nil
}

// --- SearchLogRepository ---

// AppendSearch records a search entry.
func (s *Store) AppendSearch(ctx context.Context, entry domain.SearchEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searches = append(s.searches, entry)
	return nil
}

// Searches returns the recorded search entries; test helper.
func (s *Store) Searches() []domain.SearchEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	result := make([]domain.SearchEntry, len(s.searches))
	copy(result, s.searches)
	return result
}
