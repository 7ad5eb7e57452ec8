// Package file implements the domain repositories on top of plain files:
// a JSON object keyed by username for users, a JSON array for messages,
// and an append-only text log for search entries.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"msgboard/internal/domain"
	"msgboard/internal/logger"
)

// userRecord is the on-disk shape of one user; the username is the key of
// the enclosing JSON object.
type userRecord struct {
	Password  string `json:"password"`
	SessionID string `json:"sessionId,omitempty"`
}

// Store is a file-backed implementation of the domain repositories.
//
// Users are loaded once at open and held in memory as the source of
// truth; every mutation rewrites the whole users file. Messages are read
// from disk on demand and rewritten whole on append. A mutex serializes
// mutations; the rewrite itself is still last-writer-wins, so two Store
// instances over the same files can lose updates to each other.
type Store struct {
	mu sync.Mutex

	usersPath     string
	messagesPath  string
	searchLogPath string

	users map[string]*domain.User
	// sessions indexes session id -> username, maintained on login/logout.
	sessions map[string]string

	log *logger.Logger
}

var (
	_ domain.UserRepository      = (*Store)(nil)
	_ domain.MessageRepository   = (*Store)(nil)
	_ domain.SearchLogRepository = (*Store)(nil)
)

// Open creates the backing files when missing and loads the user
// collection. A missing, empty or unparsable file never fails the open;
// it yields an empty collection and a log line.
func Open(usersPath, messagesPath, searchLogPath string, log *logger.Logger) (*Store, error) {
	if err := ensureFile(usersPath, []byte("{}")); err != nil {
		return nil, fmt.Errorf("ensure users file: %w", err)
	}
	if err := ensureFile(messagesPath, []byte("[]")); err != nil {
		return nil, fmt.Errorf("ensure messages file: %w", err)
	}
	if err := ensureFile(searchLogPath, nil); err != nil {
		return nil, fmt.Errorf("ensure search log: %w", err)
	}

	s := &Store{
		usersPath:     usersPath,
		messagesPath:  messagesPath,
		searchLogPath: searchLogPath,
		log:           log,
	}
	s.users, s.sessions = s.loadUsers()
	return s, nil
}

func ensureFile(path string, initial []byte) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return err
	}
	return os.WriteFile(path, initial, 0o644)
}

// loadUsers reads the users file and rebuilds the session index.
func (s *Store) loadUsers() (map[string]*domain.User, map[string]string) {
	users := make(map[string]*domain.User)
	sessions := make(map[string]string)

	data, err := os.ReadFile(s.usersPath)
	if err != nil || strings.TrimSpace(string(data)) == "" {
		if err != nil {
			s.log.Error("failed to read users file, starting empty", "path", s.usersPath, "error", err)
		}
		return users, sessions
	}

	var records map[string]userRecord
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Error("users file is unparsable, starting empty", "path", s.usersPath, "error", err)
		return users, sessions
	}

	for username, rec := range records {
		users[username] = &domain.User{
			Username:  username,
			Password:  rec.Password,
			SessionID: rec.SessionID,
		}
		if rec.SessionID != "" {
			sessions[rec.SessionID] = username
		}
	}
	return users, sessions
}

// saveUsersLocked rewrites the users file from the in-memory map. Write
// failures are logged, not returned: the in-memory state stays
// authoritative and the caller proceeds (a known durability gap).
func (s *Store) saveUsersLocked() {
	records := make(map[string]userRecord, len(s.users))
	for username, u := range s.users {
		records[username] = userRecord{Password: u.Password, SessionID: u.SessionID}
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		s.log.Error("failed to encode users", "error", err)
		return
	}
	if err := os.WriteFile(s.usersPath, data, 0o644); err != nil {
		s.log.Error("failed to save users file", "path", s.usersPath, "error", err)
	}
}

// Flush persists the user collection; called on shutdown.
func (s *Store) Flush() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	records := make(map[string]userRecord, len(s.users))
	for username, u := range s.users {
		records[username] = userRecord{Password: u.Password, SessionID: u.SessionID}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("encode users: %w", err)
	}
	if err := os.WriteFile(s.usersPath, data, 0o644); err != nil {
		return fmt.Errorf("save users: %w", err)
	}
	return nil
}

// --- UserRepository ---

// GetByUsername retrieves a user by username; (nil, nil) when absent.
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

// GetBySession resolves a session id through the session index.
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

// Create creates a new user and persists the collection.
func (s *Store) Create(ctx context.Context, username, password string) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[username]; ok {
		return nil, fmt.Errorf("user %q already exists", username)
	}

	u := &domain.User{Username: username, Password: password}
	s.users[username] = u
	s.saveUsersLocked()

	copied := *u
	return &copied, nil
}

// SetSession binds a session id to the user, replacing any prior session
// and keeping the index in step.
func (s *Store) SetSession(ctx context.Context, username, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return fmt.Errorf("user %q not found", username)
	}

	if u.SessionID != "" {
		delete(s.sessions, u.SessionID)
	}
	u.SessionID = sessionID
	s.sessions[sessionID] = username
	s.saveUsersLocked()
	return nil
}

// ClearSession removes the user's session and its index entry.
func (s *Store) ClearSession(ctx context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[username]
	if !ok {
		return fmt.Errorf("user %q not found", username)
	}

	if u.SessionID != "" {
		delete(s.sessions, u.SessionID)
		u.SessionID = ""
	}
	s.saveUsersLocked()
	return nil
}

// --- MessageRepository ---

// List reads the message file on demand and returns all messages in
// insertion order.
func (s *Store) List(ctx context.Context) ([]domain.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadMessagesLocked(), nil
}

// Append loads the current messages, appends one, and rewrites the file.
// A failed rewrite is logged, not returned.
func (s *Store) Append(ctx context.Context, msg domain.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	messages := append(s.loadMessagesLocked(), msg)

	data, err := json.MarshalIndent(messages, "", "  ")
	if err != nil {
		s.log.Error("failed to encode messages", "error", err)
		return nil
	}
	if err := os.WriteFile(s.messagesPath, data, 0o644); err != nil {
		s.log.Error("failed to save messages file", "path", s.messagesPath, "error", err)
	}
	return nil
}

func (s *Store) loadMessagesLocked() []domain.Message {
	data, err := os.ReadFile(s.messagesPath)
	if err != nil || strings.TrimSpace(string(data)) == "" {
		if err != nil && !os.IsNotExist(err) {
			s.log.Error("failed to read messages file, treating as empty", "path", s.messagesPath, "error", err)
		}
		return []domain.Message{}
	}

	var messages []domain.Message
	if err := json.Unmarshal(data, &messages); err != nil {
		s.log.Error("messages file is unparsable, treating as empty", "path", s.messagesPath, "error", err)
		return []domain.Message{}
	}
	return messages
}

// --- SearchLogRepository ---

// AppendSearch writes one formatted line to the search log. Unlike the
// JSON collections, a failed append is returned to the caller.
func (s *Store) AppendSearch(ctx context.Context, entry domain.SearchEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := os.OpenFile(s.searchLogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open search log: %w", err)
	}
	defer func() { _ = f.Close() }()

	line := fmt.Sprintf("%s: [%s] %q\n", entry.Timestamp, entry.Username, entry.Query)
	if _, err := f.WriteString(line); err != nil {
		return fmt.Errorf("append search log: %w", err)
	}
	return nil
}
