package cmd

import (
	"regexp"
	"testing"
	"time"

	"github.com/chris-regnier/dotdiary/internal/config"
	"github.com/chris-regnier/dotdiary/internal/entry"
	"github.com/chris-regnier/dotdiary/internal/storage"
	"github.com/chris-regnier/dotdiary/internal/storage/markdown"
)

func setupTestStore(t *testing.T) storage.Storage {
	t.Helper()
	dir := t.TempDir()
	s, err := markdown.New(dir)
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func setupTestEnv(t *testing.T) {
	t.Helper()
	store = setupTestStore(t)
	appConfig = &config.Config{}
	jsonOutput = false
}

func mustCreate(t *testing.T, content string, at time.Time) entry.Entry {
	t.Helper()
	id, err := entry.NewID()
	if err != nil {
		t.Fatalf("generating ID: %v", err)
	}
	e := entry.Entry{ID: id, Content: content, CreatedAt: at, UpdatedAt: at}
	if err := store.Create(e); err != nil {
		t.Fatalf("creating entry: %v", err)
	}
	return e
}

// stripANSI removes ANSI escape sequences for output assertions.
func stripANSI(s string) string {
	ansiRegex := regexp.MustCompile(`\x1b\[[0-9;]*m`)
	return ansiRegex.ReplaceAllString(s, "")
}
