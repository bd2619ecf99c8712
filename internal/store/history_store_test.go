package store

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	s, err := NewSQLiteStore(SQLiteConfig{Path: filepath.Join(t.TempDir(), "nested", "history.db")})
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestDefaultSQLiteConfig(t *testing.T) {
	assert.Equal(t, "./data/history.db", DefaultSQLiteConfig().Path)
}

func TestSQLiteStore_RecordFillsDefaults(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entry := &Entry{Severity: "INFO", Handler: "info", Message: "System started"}
	require.NoError(t, s.Record(ctx, entry))

	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.Timestamp.IsZero())

	entries, err := s.Query(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entry.ID, entries[0].ID)
	assert.Equal(t, "System started", entries[0].Message)
	assert.Empty(t, entries[0].CommandID)
}

func TestSQLiteStore_QueryNewestFirst(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i, msg := range []string{"first", "second", "third"} {
		require.NoError(t, s.Record(ctx, &Entry{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Severity:  "DEBUG",
			Handler:   "debug",
			Message:   msg,
		}))
	}

	entries, err := s.Query(ctx, Filter{Limit: 2})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "third", entries[0].Message)
	assert.Equal(t, "second", entries[1].Message)

	entries, err = s.Query(ctx, Filter{Limit: 2, Offset: 2})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "first", entries[0].Message)
}

func TestSQLiteStore_QueryOffsetWithoutLimit(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	base := time.Now().Add(-time.Hour)

	for i := 0; i < 5; i++ {
		require.NoError(t, s.Record(ctx, &Entry{
			Timestamp: base.Add(time.Duration(i) * time.Minute),
			Severity:  "INFO",
			Handler:   "info",
			Message:   fmt.Sprintf("msg-%d", i),
		}))
	}

	entries, err := s.Query(ctx, Filter{Offset: 3})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "msg-1", entries[0].Message)
	assert.Equal(t, "msg-0", entries[1].Message)
}

func TestSQLiteStore_QueryFilters(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, &Entry{Severity: "INFO", Handler: "info", Message: "a", CommandID: "cmd-1"}))
	require.NoError(t, s.Record(ctx, &Entry{Severity: "ERROR", Handler: "error", Message: "b"}))
	require.NoError(t, s.Record(ctx, &Entry{Severity: "ERROR", Handler: "error", Message: "c"}))

	entries, err := s.Query(ctx, Filter{Severity: "ERROR"})
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	entries, err = s.Query(ctx, Filter{Handler: "info"})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "cmd-1", entries[0].CommandID)

	entries, err = s.Query(ctx, Filter{Since: time.Now().Add(time.Hour)})
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestSQLiteStore_Stats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, sev := range []string{"INFO", "INFO", "DEBUG", "ERROR"} {
		require.NoError(t, s.Record(ctx, &Entry{Severity: sev, Handler: "h", Message: "m"}))
	}

	stats, err := s.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"INFO": 2, "DEBUG": 1, "ERROR": 1}, stats)
}

func TestSQLiteStore_Prune(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Record(ctx, &Entry{
		Timestamp: time.Now().Add(-48 * time.Hour),
		Severity:  "INFO", Handler: "info", Message: "old",
	}))
	require.NoError(t, s.Record(ctx, &Entry{Severity: "INFO", Handler: "info", Message: "new"}))

	removed, err := s.Prune(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	entries, err := s.Query(ctx, Filter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new", entries[0].Message)
}
