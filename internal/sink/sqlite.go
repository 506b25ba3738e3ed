package sink

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/ppiankov/compoundscan/internal/model"
)

const schema = `
CREATE TABLE IF NOT EXISTS compounds (
	cid           INTEGER PRIMARY KEY,
	compound_name TEXT NOT NULL,
	run_id        TEXT NOT NULL,
	fetched_at    TEXT NOT NULL,
	record        TEXT NOT NULL
)`

// SQLiteSink upserts one row per compound into a local database
type SQLiteSink struct {
	db   *sql.DB
	path string
}

// OpenSQLite opens (or creates) the database at path
func OpenSQLite(path string) (*SQLiteSink, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return &SQLiteSink{db: db, path: path}, nil
}

// Name identifies the sink in errors
func (s *SQLiteSink) Name() string {
	return "sqlite"
}

// Close closes the database
func (s *SQLiteSink) Close() error {
	return s.db.Close()
}

// Write upserts the record keyed by CID
func (s *SQLiteSink) Write(ctx context.Context, record *model.Record) (string, error) {
	payload, err := json.Marshal(record.Map())
	if err != nil {
		return "", fmt.Errorf("encode record: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO compounds (cid, compound_name, run_id, fetched_at, record)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(cid) DO UPDATE SET
			compound_name = excluded.compound_name,
			run_id = excluded.run_id,
			fetched_at = excluded.fetched_at,
			record = excluded.record`,
		record.CID, record.Name, record.RunID, record.FetchedAt.UTC().Format(time.RFC3339), string(payload),
	)
	if err != nil {
		return "", fmt.Errorf("upsert compound %d: %w", record.CID, err)
	}
	return fmt.Sprintf("%s#cid=%d", s.path, record.CID), nil
}

// Discard deletes the row this run wrote
func (s *SQLiteSink) Discard(ctx context.Context, record *model.Record) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM compounds WHERE cid = ? AND run_id = ?`, record.CID, record.RunID)
	if err != nil {
		return fmt.Errorf("delete compound %d: %w", record.CID, err)
	}
	return nil
}

// StoredCompound is a row read back from the database
type StoredCompound struct {
	CID       int
	Name      string
	RunID     string
	FetchedAt time.Time
	Values    map[string]string
}

// Get reads the stored row for cid; ok is false when there is none
func (s *SQLiteSink) Get(ctx context.Context, cid int) (*StoredCompound, bool, error) {
	var (
		out       StoredCompound
		fetchedAt string
		payload   string
	)
	err := s.db.QueryRowContext(ctx,
		`SELECT cid, compound_name, run_id, fetched_at, record FROM compounds WHERE cid = ?`, cid,
	).Scan(&out.CID, &out.Name, &out.RunID, &fetchedAt, &payload)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("query compound %d: %w", cid, err)
	}

	if t, perr := time.Parse(time.RFC3339, fetchedAt); perr == nil {
		out.FetchedAt = t
	}
	if err := json.Unmarshal([]byte(payload), &out.Values); err != nil {
		return nil, false, fmt.Errorf("decode compound %d: %w", cid, err)
	}
	return &out, true, nil
}
