// Package sqlite provides the durable local fallback list for scores the
// remote store could not accept.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"awareness-training-service/internal/domain"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

const schema = `CREATE TABLE IF NOT EXISTS local_records (
	seq     INTEGER PRIMARY KEY AUTOINCREMENT,
	key     TEXT NOT NULL,
	payload TEXT NOT NULL
)`

// LocalStore appends JSON records to a SQLite table, one list per key.
type LocalStore struct {
	db *sql.DB
}

// Open creates (or reuses) the database at dsn and ensures the schema exists.
func Open(dsn string) (*LocalStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		db.Close()
		return nil, fmt.Errorf("busy_timeout: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create local_records: %w", err)
	}
	return &LocalStore{db: db}, nil
}

// Close closes the database connection.
func (s *LocalStore) Close() error {
	return s.db.Close()
}

func (s *LocalStore) Append(ctx context.Context, key string, entry domain.ScoreEntry) error {
	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("marshal entry: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, `INSERT INTO local_records (key, payload) VALUES (?, ?)`, key, string(payload)); err != nil {
		return fmt.Errorf("append %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) ReadAll(ctx context.Context, key string) ([]domain.ScoreEntry, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT payload FROM local_records WHERE key = ? ORDER BY seq`, key)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	defer rows.Close()

	var entries []domain.ScoreEntry
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan %s: %w", key, err)
		}
		var entry domain.ScoreEntry
		if err := json.Unmarshal([]byte(payload), &entry); err != nil {
			return nil, fmt.Errorf("decode %s record: %w", key, err)
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}
