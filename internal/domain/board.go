// Package domain contains the core business entities and interfaces.
package domain

import "context"

// User represents a registered account. Password holds the literal
// string supplied at registration, stored unhashed: a known insecurity
// kept for compatibility with the existing data files.
type User struct {
	Username  string `json:"username"`
	Password  string `json:"password"`
	SessionID string `json:"sessionId,omitempty"`
}

// Message is one entry on the public board. Messages are append-only;
// insertion order is chronological order.
type Message struct {
	Username  string `json:"username"`
	Content   string `json:"content"`
	Timestamp string `json:"timestamp"`
}

// SearchEntry is one line of the write-only search audit log.
type SearchEntry struct {
	Timestamp string
	Username  string
	Query     string
}

// UserRepository defines the port for user persistence operations.
// Lookups that find nothing return (nil, nil).
type UserRepository interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	// GetBySession resolves a session id to its user via the session index.
	GetBySession(ctx context.Context, sessionID string) (*User, error)
	Create(ctx context.Context, username, password string) (*User, error)
	// SetSession binds a session id to the user, replacing any prior one.
	SetSession(ctx context.Context, username, sessionID string) error
	ClearSession(ctx context.Context, username string) error
}

// MessageRepository defines the port for board persistence operations.
type MessageRepository interface {
	Append(ctx context.Context, msg Message) error
	List(ctx context.Context) ([]Message, error)
}

// SearchLogRepository appends entries to the search audit log.
type SearchLogRepository interface {
	AppendSearch(ctx context.Context, entry SearchEntry) error
}
