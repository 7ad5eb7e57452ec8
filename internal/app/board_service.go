package app

import (
	"context"
	"errors"
	"time"

	"msgboard/internal/domain"
)

// ErrEmptyContent indicates a message with no content.
var ErrEmptyContent = errors.New("message content must not be empty")

// timestampLayout renders UTC instants with millisecond precision,
// e.g. 2026-08-28T09:41:07.231Z. Lexical order equals chronological order.
const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

func isoNow() string {
	return time.Now().UTC().Format(timestampLayout)
}

// BoardService encapsulates the public message board use cases.
type BoardService struct {
	messages domain.MessageRepository
}

// NewBoardService creates a BoardService backed by the given repository.
func NewBoardService(messages domain.MessageRepository) *BoardService {
	return &BoardService{messages: messages}
}

// Post appends a message authored by username. The timestamp is assigned
// here, server-side.
func (s *BoardService) Post(ctx context.Context, username, content string) (domain.Message, error) {
	if content == "" {
		return domain.Message{}, ErrEmptyContent
	}

	msg := domain.Message{
		Username:  username,
		Content:   content,
		Timestamp: isoNow(),
	}
	if err := s.messages.Append(ctx, msg); err != nil {
		return domain.Message{}, err
	}
	return msg, nil
}

// List returns all messages in the order they were appended.
func (s *BoardService) List(ctx context.Context) ([]domain.Message, error) {
	return s.messages.List(ctx)
}
