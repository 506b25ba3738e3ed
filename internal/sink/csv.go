// Package sink persists merged compound records.
package sink

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ppiankov/compoundscan/internal/model"
)

// CSVSink writes one file per compound: a header row and one data row
type CSVSink struct {
	dir string
}

// NewCSVSink writes into dir, creating it on first use
func NewCSVSink(dir string) *CSVSink {
	return &CSVSink{dir: dir}
}

// Name identifies the sink in errors
func (s *CSVSink) Name() string {
	return "csv"
}

// Path is where the record for cid is written
func (s *CSVSink) Path(cid int) string {
	return filepath.Join(s.dir, fmt.Sprintf("%dcompound_details.csv", cid))
}

// Write replaces the file for record.CID atomically and returns its path
func (s *CSVSink) Write(ctx context.Context, record *model.Record) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if record == nil || record.CID <= 0 {
		return "", errors.New("record has no CID")
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return "", fmt.Errorf("create output dir: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, ".compound-*.csv.tmp")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() { _ = os.Remove(tmpPath) }()

	w := csv.NewWriter(tmp)
	if err := w.Write(record.Header()); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write header: %w", err)
	}
	if err := w.Write(record.Row()); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("flush csv: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}

	path := s.Path(record.CID)
	if err := os.Rename(tmpPath, path); err != nil {
		return "", fmt.Errorf("rename: %w", err)
	}
	return path, nil
}

// Discard removes the file written for record
func (s *CSVSink) Discard(_ context.Context, record *model.Record) error {
	err := os.Remove(s.Path(record.CID))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
