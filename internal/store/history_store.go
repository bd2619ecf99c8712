package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
)

// Entry represents one message consumed by a handler
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Severity  string    `json:"severity"`
	Handler   string    `json:"handler"`
	Message   string    `json:"message"`
	CommandID string    `json:"command_id,omitempty"`
}

// Filter defines criteria for querying history
type Filter struct {
	Severity string
	Handler  string
	Since    time.Time
	Until    time.Time
	Limit    int
	Offset   int
}

// Store defines the interface for dispatch history persistence
type Store interface {
	Record(ctx context.Context, entry *Entry) error
	Query(ctx context.Context, filter Filter) ([]*Entry, error)
	Stats(ctx context.Context) (map[string]int64, error)
	Prune(ctx context.Context, olderThan time.Duration) (int64, error)
	Close() error
}

// SQLiteStore implements Store using SQLite
type SQLiteStore struct {
	db *sql.DB
	mu sync.RWMutex
}

// SQLiteConfig holds configuration for the SQLite store
type SQLiteConfig struct {
	Path string
}

// DefaultSQLiteConfig returns default configuration
func DefaultSQLiteConfig() SQLiteConfig {
	return SQLiteConfig{
		Path: "./data/history.db",
	}
}

// NewSQLiteStore creates a new SQLite-based history store
func NewSQLiteStore(cfg SQLiteConfig) (*SQLiteStore, error) {
	dir := filepath.Dir(cfg.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	s := &SQLiteStore{db: db}

	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS history (
		id TEXT PRIMARY KEY,
		timestamp DATETIME NOT NULL,
		severity TEXT NOT NULL,
		handler TEXT NOT NULL,
		message TEXT NOT NULL,
		command_id TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_history_timestamp ON history(timestamp DESC);
	CREATE INDEX IF NOT EXISTS idx_history_severity ON history(severity);
	CREATE INDEX IF NOT EXISTS idx_history_handler ON history(handler);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Record stores a consumed message. Missing ID and timestamp are filled in.
func (s *SQLiteStore) Record(ctx context.Context, entry *Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	var commandID sql.NullString
	if entry.CommandID != "" {
		commandID = sql.NullString{String: entry.CommandID, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO history (id, timestamp, severity, handler, message, command_id)
		VALUES (?, ?, ?, ?, ?, ?)
	`, entry.ID, entry.Timestamp.UTC(), entry.Severity, entry.Handler, entry.Message, commandID)

	if err != nil {
		return fmt.Errorf("failed to insert history entry: %w", err)
	}

	return nil
}

// Query retrieves entries matching the filter, newest first
func (s *SQLiteStore) Query(ctx context.Context, filter Filter) ([]*Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	query := `SELECT id, timestamp, severity, handler, message, command_id FROM history WHERE 1=1`
	var args []interface{}

	if filter.Severity != "" {
		query += " AND severity = ?"
		args = append(args, filter.Severity)
	}
	if filter.Handler != "" {
		query += " AND handler = ?"
		args = append(args, filter.Handler)
	}
	if !filter.Since.IsZero() {
		query += " AND timestamp >= ?"
		args = append(args, filter.Since.UTC())
	}
	if !filter.Until.IsZero() {
		query += " AND timestamp <= ?"
		args = append(args, filter.Until.UTC())
	}

	// rowid breaks ties between entries recorded within the same instant
	query += " ORDER BY timestamp DESC, rowid DESC"

	// SQLite only accepts OFFSET after LIMIT; -1 means no limit
	switch {
	case filter.Limit > 0:
		query += " LIMIT ?"
		args = append(args, filter.Limit)
	case filter.Offset > 0:
		query += " LIMIT -1"
	}
	if filter.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		var entry Entry
		var commandID sql.NullString

		if err := rows.Scan(&entry.ID, &entry.Timestamp, &entry.Severity, &entry.Handler,
			&entry.Message, &commandID); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}

		if commandID.Valid {
			entry.CommandID = commandID.String
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

// Stats returns the number of stored entries per severity
func (s *SQLiteStore) Stats(ctx context.Context) (map[string]int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT severity, COUNT(*) FROM history GROUP BY severity`)
	if err != nil {
		return nil, fmt.Errorf("failed to query stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]int64)
	for rows.Next() {
		var severity string
		var count int64
		if err := rows.Scan(&severity, &count); err != nil {
			return nil, fmt.Errorf("failed to scan stats: %w", err)
		}
		stats[severity] = count
	}

	return stats, rows.Err()
}

// Prune deletes entries older than the given duration
func (s *SQLiteStore) Prune(ctx context.Context, olderThan time.Duration) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := time.Now().Add(-olderThan).UTC()

	result, err := s.db.ExecContext(ctx, `DELETE FROM history WHERE timestamp < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to prune history: %w", err)
	}

	return result.RowsAffected()
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
