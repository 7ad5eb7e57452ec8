package postgres

import (
	"context"
	"database/sql"

	"msgboard/internal/domain"
)

var (
	_ domain.UserRepository      = (*DB)(nil)
	_ domain.MessageRepository   = (*DB)(nil)
	_ domain.SearchLogRepository = (*DB)(nil)
)

// GetByUsername retrieves a user by username; (nil, nil) when absent.
func (d *DB) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var (
		u         domain.User
		sessionID sql.NullString
	)
	err := d.sql.QueryRowContext(ctx,
		"SELECT username, password, session_id FROM users WHERE username = $1",
		username,
	).Scan(&u.Username, &u.Password, &sessionID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	u.SessionID = sessionID.String
	return &u, nil
}

// GetBySession resolves a session id to its user. The session_id column
// is the secondary index the file store keeps in memory.
func (d *DB) GetBySession(ctx context.Context, sessionID string) (*domain.User, error) {
	var u domain.User
	err := d.sql.QueryRowContext(ctx,
		"SELECT username, password, session_id FROM users WHERE session_id = $1",
		sessionID,
	).Scan(&u.Username, &u.Password, &u.SessionID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Create creates a new user.
func (d *DB) Create(ctx context.Context, username, password string) (*domain.User, error) {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO users (username, password) VALUES ($1, $2)",
		username, password,
	)
	if err != nil {
		return nil, err
	}
	return &domain.User{Username: username, Password: password}, nil
}

// SetSession binds a session id to the user, replacing any prior one.
func (d *DB) SetSession(ctx context.Context, username, sessionID string) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE users SET session_id = $1 WHERE username = $2",
		sessionID, username,
	)
	return err
}

// ClearSession removes the user's session.
func (d *DB) ClearSession(ctx context.Context, username string) error {
	_, err := d.sql.ExecContext(ctx,
		"UPDATE users SET session_id = NULL WHERE username = $1",
		username,
	)
	return err
}

// Append stores one message.
func (d *DB) Append(ctx context.Context, msg domain.Message) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO messages (username, content, posted_at) VALUES ($1, $2, $3)",
		msg.Username, msg.Content, msg.Timestamp,
	)
	return err
}

// List returns all messages in insertion order.
func (d *DB) List(ctx context.Context) ([]domain.Message, error) {
	rows, err := d.sql.QueryContext(ctx,
		"SELECT username, content, posted_at FROM messages ORDER BY id",
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	messages := []domain.Message{}
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.Username, &m.Content, &m.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// AppendSearch stores one search log entry.
func (d *DB) AppendSearch(ctx context.Context, entry domain.SearchEntry) error {
	_, err := d.sql.ExecContext(ctx,
		"INSERT INTO search_log (logged_at, username, query) VALUES ($1, $2, $3)",
		entry.Timestamp, entry.Username, entry.Query,
	)
	return err
}
