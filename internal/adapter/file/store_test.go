package file_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"msgboard/internal/adapter/file"
	"msgboard/internal/domain"
	"msgboard/internal/testutil"
)

type paths struct {
	users, messages, searchLog string
}

func tempPaths(t *testing.T) paths {
	t.Helper()
	dir := t.TempDir()
	return paths{
		users:     filepath.Join(dir, "users.json"),
		messages:  filepath.Join(dir, "messages.json"),
		searchLog: filepath.Join(dir, "search.log"),
	}
}

func open(t *testing.T, p paths) *file.Store {
	t.Helper()
	s, err := file.Open(p.users, p.messages, p.searchLog, testutil.NoopLogger())
	require.NoError(t, err)
	return s
}

func TestOpenCreatesMissingFiles(t *testing.T) {
	p := tempPaths(t)
	open(t, p)

	users, err := os.ReadFile(p.users)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(users))

	messages, err := os.ReadFile(p.messages)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(messages))

	_, err = os.Stat(p.searchLog)
	assert.NoError(t, err)
}

func TestUsersRoundTrip(t *testing.T) {
	p := tempPaths(t)
	ctx := context.Background()

	s := open(t, p)
	_, err := s.Create(ctx, "alice", "pw1")
	require.NoError(t, err)
	require.NoError(t, s.SetSession(ctx, "alice", "deadbeef"))

	// A fresh store over the same files must see identical state,
	// including a rebuilt session index.
	reopened := open(t, p)

	u, err := reopened.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "pw1", u.Password)
	assert.Equal(t, "deadbeef", u.SessionID)

	bySession, err := reopened.GetBySession(ctx, "deadbeef")
	require.NoError(t, err)
	require.NotNil(t, bySession)
	assert.Equal(t, "alice", bySession.Username)
}

func TestCorruptUsersFileLoadsEmpty(t *testing.T) {
	p := tempPaths(t)
	require.NoError(t, os.WriteFile(p.users, []byte("{not json"), 0o644))

	s := open(t, p)
	u, err := s.GetByUsername(context.Background(), "alice")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestCorruptMessagesFileLoadsEmpty(t *testing.T) {
	p := tempPaths(t)
	require.NoError(t, os.WriteFile(p.messages, []byte("[broken"), 0o644))

	s := open(t, p)
	msgs, err := s.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, msgs)
}

func TestMessagesRoundTrip(t *testing.T) {
	p := tempPaths(t)
	ctx := context.Background()
	s := open(t, p)

	first := domain.Message{Username: "alice", Content: "hello", Timestamp: "2026-08-28T09:00:00.000Z"}
	second := domain.Message{Username: "bob", Content: "hi", Timestamp: "2026-08-28T09:00:01.000Z"}
	require.NoError(t, s.Append(ctx, first))
	require.NoError(t, s.Append(ctx, second))

	msgs, err := open(t, p).List(ctx)
	require.NoError(t, err)
	require.Len(t, msgs, 2)
	assert.Equal(t, first, msgs[0])
	assert.Equal(t, second, msgs[1])
}

func TestSessionReplacementDropsOldIndexEntry(t *testing.T) {
	p := tempPaths(t)
	ctx := context.Background()
	s := open(t, p)

	_, err := s.Create(ctx, "alice", "pw1")
	require.NoError(t, err)
	require.NoError(t, s.SetSession(ctx, "alice", "aaaa"))
	require.NoError(t, s.SetSession(ctx, "alice", "bbbb"))

	old, err := s.GetBySession(ctx, "aaaa")
	require.NoError(t, err)
	assert.Nil(t, old)

	current, err := s.GetBySession(ctx, "bbbb")
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, "alice", current.Username)
}

func TestClearSessionRemovesStoredID(t *testing.T) {
	p := tempPaths(t)
	ctx := context.Background()
	s := open(t, p)

	_, err := s.Create(ctx, "alice", "pw1")
	require.NoError(t, err)
	require.NoError(t, s.SetSession(ctx, "alice", "aaaa"))
	require.NoError(t, s.ClearSession(ctx, "alice"))

	u, err := s.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, u.SessionID)

	data, err := os.ReadFile(p.users)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "aaaa")
}

func TestAppendSearchWritesFormattedLine(t *testing.T) {
	p := tempPaths(t)
	s := open(t, p)

	entry := domain.SearchEntry{
		Timestamp: "2026-08-28T09:00:00.000Z",
		Username:  "anonymous",
		Query:     "cats",
	}
	require.NoError(t, s.AppendSearch(context.Background(), entry))

	data, err := os.ReadFile(p.searchLog)
	require.NoError(t, err)
	assert.Equal(t, "2026-08-28T09:00:00.000Z: [anonymous] \"cats\"\n", string(data))
}

func TestCreateDuplicateFails(t *testing.T) {
	p := tempPaths(t)
	ctx := context.Background()
	s := open(t, p)

	_, err := s.Create(ctx, "alice", "pw1")
	require.NoError(t, err)
	_, err = s.Create(ctx, "alice", "pw2")
	assert.Error(t, err)
}
