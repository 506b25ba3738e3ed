package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func TestNewWithFormat_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithFormat(&buf, "json", slog.LevelInfo).WithRun("run-1").WithCID(2244)

	l.LogDegraded(context.Background(), "Patent", errors.New("boom"))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected JSON line, got %q: %v", buf.String(), err)
	}
	if line["category"] != "Patent" {
		t.Errorf("expected category Patent, got %v", line["category"])
	}
	if line["run_id"] != "run-1" {
		t.Errorf("expected run_id run-1, got %v", line["run_id"])
	}
	if line["cid"] != float64(2244) {
		t.Errorf("expected cid 2244, got %v", line["cid"])
	}
	if line["level"] != "WARN" {
		t.Errorf("expected WARN level, got %v", line["level"])
	}
}

func TestNewWithFormat_TextDebugSuppressedAtInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithFormat(&buf, "text", slog.LevelInfo)

	l.LogCategory(context.Background(), "Literature", 3)
	if buf.Len() != 0 {
		t.Errorf("expected debug line to be suppressed, got %q", buf.String())
	}

	l.LogRun(context.Background(), "aspirin", "Persisted", 2244, nil)
	if !strings.Contains(buf.String(), "run completed") {
		t.Errorf("expected run line, got %q", buf.String())
	}
}

func TestNoop(t *testing.T) {
	l := Noop()
	if l.Enabled(context.Background(), slog.LevelError) {
		t.Error("expected noop logger to drop errors")
	}
}
