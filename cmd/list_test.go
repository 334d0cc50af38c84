package cmd

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/chris-regnier/dotdiary/internal/storage"
)

func TestListNewestFirst(t *testing.T) {
	setupTestEnv(t)

	old := mustCreate(t, "older entry", time.Date(2024, 2, 1, 9, 0, 0, 0, time.Local))
	recent := mustCreate(t, "newer entry", time.Date(2024, 4, 1, 9, 0, 0, 0, time.Local))

	var buf bytes.Buffer
	if err := listRun(&buf, storage.ListOptions{}); err != nil {
		t.Fatalf("listRun() error: %v", err)
	}

	out := buf.String()
	newerPos := strings.Index(out, recent.ID)
	olderPos := strings.Index(out, old.ID)
	if newerPos == -1 || olderPos == -1 {
		t.Fatalf("output missing entries:\n%s", out)
	}
	if newerPos > olderPos {
		t.Error("entries should be listed newest first")
	}
}

func TestListDateRange(t *testing.T) {
	setupTestEnv(t)

	mustCreate(t, "february", time.Date(2024, 2, 15, 9, 0, 0, 0, time.Local))
	kept := mustCreate(t, "march", time.Date(2024, 3, 15, 9, 0, 0, 0, time.Local))
	mustCreate(t, "april", time.Date(2024, 4, 15, 9, 0, 0, 0, time.Local))

	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)
	to := time.Date(2024, 3, 31, 0, 0, 0, 0, time.Local)

	var buf bytes.Buffer
	if err := listRun(&buf, storage.ListOptions{StartDate: &from, EndDate: &to}); err != nil {
		t.Fatalf("listRun() error: %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, kept.ID) {
		t.Errorf("output missing in-range entry:\n%s", out)
	}
	if strings.Contains(out, "february") || strings.Contains(out, "april") {
		t.Errorf("output contains out-of-range entries:\n%s", out)
	}
}

func TestListEmpty(t *testing.T) {
	setupTestEnv(t)

	var buf bytes.Buffer
	if err := listRun(&buf, storage.ListOptions{}); err != nil {
		t.Fatalf("listRun() error: %v", err)
	}
	if !strings.Contains(buf.String(), "No journal entries found.") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestListLimit(t *testing.T) {
	setupTestEnv(t)

	for i := 0; i < 5; i++ {
		mustCreate(t, "entry", time.Date(2024, 6, 1+i, 9, 0, 0, 0, time.Local))
	}

	var buf bytes.Buffer
	if err := listRun(&buf, storage.ListOptions{Limit: 2}); err != nil {
		t.Fatalf("listRun() error: %v", err)
	}
	lines := strings.Count(strings.TrimSpace(buf.String()), "\n") + 1
	if lines != 2 {
		t.Errorf("got %d lines, want 2:\n%s", lines, buf.String())
	}
}
