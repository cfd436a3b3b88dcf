// Package sqlite provides a SQLite-backed outcome log.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/aretw0/tales/pkg/domain"
	"github.com/aretw0/tales/pkg/ports"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS outcomes (
	id          INTEGER PRIMARY KEY AUTOINCREMENT,
	recorded_at TEXT NOT NULL,
	player      TEXT NOT NULL,
	story       TEXT NOT NULL,
	ending      TEXT NOT NULL,
	line        TEXT NOT NULL
);`

// Recorder persists outcomes in a single ordered table.
type Recorder struct {
	sqlDB *sql.DB
}

// Open opens (or creates) the database at path and ensures the schema.
func Open(path string) (*Recorder, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	dsn := filepath.Clean(path) + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if _, err := sqlDB.Exec(schema); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("apply schema: %w", err)
	}
	return &Recorder{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (r *Recorder) Close() error {
	if r == nil || r.sqlDB == nil {
		return nil
	}
	return r.sqlDB.Close()
}

// Append inserts one record.
func (r *Recorder) Append(ctx context.Context, o domain.Outcome) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := r.sqlDB.ExecContext(ctx,
		`INSERT INTO outcomes (recorded_at, player, story, ending, line) VALUES (?, ?, ?, ?, ?)`,
		o.Timestamp.UTC().Format(domain.TimestampLayout), o.Player, o.Story, o.Ending, o.String(),
	)
	if err != nil {
		return &domain.PersistenceError{Op: "append", Backend: "sqlite", Err: err}
	}
	return nil
}

// Recent returns the last limit records in insertion order.
func (r *Recorder) Recent(ctx context.Context, limit int) ([]string, error) {
	if limit <= 0 {
		return []string{}, nil
	}
	rows, err := r.sqlDB.QueryContext(ctx,
		`SELECT line FROM (SELECT id, line FROM outcomes ORDER BY id DESC LIMIT ?) ORDER BY id ASC`,
		limit,
	)
	if err != nil {
		return nil, &domain.PersistenceError{Op: "read", Backend: "sqlite", Err: err}
	}
	defer rows.Close()

	lines := []string{}
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, &domain.PersistenceError{Op: "read", Backend: "sqlite", Err: err}
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.PersistenceError{Op: "read", Backend: "sqlite", Err: err}
	}
	return lines, nil
}

var _ ports.Recorder = (*Recorder)(nil)
