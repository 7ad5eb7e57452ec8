package app

import (
	"context"
	"errors"

	"msgboard/internal/domain"
)

// ErrEmptyQuery indicates a search request with no query text.
var ErrEmptyQuery = errors.New("search query must not be empty")

// AnonymousUser is the identity recorded when a search carries no username.
const AnonymousUser = "anonymous"

// SearchService records search queries to the audit log.
type SearchService struct {
	log domain.SearchLogRepository
}

// NewSearchService creates a SearchService backed by the given repository.
func NewSearchService(log domain.SearchLogRepository) *SearchService {
	return &SearchService{log: log}
}

// Record appends one entry to the search log. Unlike user and message
// saves, a failed append is propagated: the caller promised an audit
// trail and must report when it cannot deliver one.
func (s *SearchService) Record(ctx context.Context, username, query string) (domain.SearchEntry, error) {
	if query == "" {
		return domain.SearchEntry{}, ErrEmptyQuery
	}
	if username == "" {
		username = AnonymousUser
	}

	entry := domain.SearchEntry{
		Timestamp: isoNow(),
		Username:  username,
		Query:     query,
	}
	if err := s.log.AppendSearch(ctx, entry); err != nil {
		return domain.SearchEntry{}, err
	}
	return entry, nil
}
