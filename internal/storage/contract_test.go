package storage_test

import (
	"errors"
	"testing"
	"time"

	"github.com/chris-regnier/dotdiary/internal/entry"
	"github.com/chris-regnier/dotdiary/internal/grid"
	"github.com/chris-regnier/dotdiary/internal/storage"
	"github.com/chris-regnier/dotdiary/internal/storage/markdown"
	"github.com/chris-regnier/dotdiary/internal/storage/sqlite"
)

type storageFactory func(t *testing.T) storage.Storage

func markdownFactory(t *testing.T) storage.Storage {
	t.Helper()
	dir := t.TempDir()
	s, err := markdown.New(dir)
	if err != nil {
		t.Fatalf("creating markdown storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sqliteFactory(t *testing.T) storage.Storage {
	t.Helper()
	dir := t.TempDir()
	s, err := sqlite.New(dir)
	if err != nil {
		t.Fatalf("creating sqlite storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func makeEntryAt(t *testing.T, content string, at time.Time) entry.Entry {
	t.Helper()
	id, err := entry.NewID()
	if err != nil {
		t.Fatalf("generating ID: %v", err)
	}
	at = at.UTC().Truncate(time.Second)
	return entry.Entry{
		ID:        id,
		Content:   content,
		CreatedAt: at,
		UpdatedAt: at,
	}
}

func dateLocalAt(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.Local)
}

func runContractTests(t *testing.T, name string, factory storageFactory) {
	t.Run(name, func(t *testing.T) {
		t.Run("Create and Get", func(t *testing.T) {
			s := factory(t)
			e := makeEntryAt(t, "Hello journal", dateLocalAt(2024, time.March, 7, 9, 0))
			if err := s.Create(e); err != nil {
				t.Fatalf("Create: %v", err)
			}

			got, err := s.Get(e.ID)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}
			if got.Content != e.Content {
				t.Errorf("content = %q, want %q", got.Content, e.Content)
			}
			if !got.CreatedAt.Equal(e.CreatedAt) {
				t.Errorf("created_at = %v, want %v", got.CreatedAt, e.CreatedAt)
			}
		})

		t.Run("Get missing", func(t *testing.T) {
			s := factory(t)
			if _, err := s.Get("zzzzzzzz"); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("Get missing = %v, want ErrNotFound", err)
			}
		})

		t.Run("Create rejects empty content", func(t *testing.T) {
			s := factory(t)
			e := makeEntryAt(t, "   ", dateLocalAt(2024, time.March, 7, 9, 0))
			if err := s.Create(e); err == nil {
				t.Error("empty content accepted")
			}
		})

		t.Run("List by date", func(t *testing.T) {
			s := factory(t)
			mar7 := dateLocalAt(2024, time.March, 7, 9, 0)
			mar8 := dateLocalAt(2024, time.March, 8, 9, 0)
			for _, e := range []entry.Entry{
				makeEntryAt(t, "seventh morning", mar7),
				makeEntryAt(t, "seventh evening", mar7.Add(10*time.Hour)),
				makeEntryAt(t, "eighth", mar8),
			} {
				if err := s.Create(e); err != nil {
					t.Fatalf("Create: %v", err)
				}
			}

			day := dateLocalAt(2024, time.March, 7, 0, 0)
			entries, err := s.List(storage.ListOptions{Date: &day})
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(entries) != 2 {
				t.Fatalf("entries on Mar 7 = %d, want 2", len(entries))
			}
			// Newest first.
			if entries[0].Content != "seventh evening" {
				t.Errorf("first entry = %q, want newest", entries[0].Content)
			}
		})

		t.Run("Update", func(t *testing.T) {
			s := factory(t)
			e := makeEntryAt(t, "before", dateLocalAt(2024, time.March, 7, 9, 0))
			if err := s.Create(e); err != nil {
				t.Fatalf("Create: %v", err)
			}

			updated, err := s.Update(e.ID, "after")
			if err != nil {
				t.Fatalf("Update: %v", err)
			}
			if updated.Content != "after" {
				t.Errorf("content = %q, want after", updated.Content)
			}

			if _, err := s.Update("zzzzzzzz", "x"); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("Update missing = %v, want ErrNotFound", err)
			}
		})

		t.Run("Delete", func(t *testing.T) {
			s := factory(t)
			e := makeEntryAt(t, "doomed", dateLocalAt(2024, time.March, 7, 9, 0))
			if err := s.Create(e); err != nil {
				t.Fatalf("Create: %v", err)
			}
			if err := s.Delete(e.ID); err != nil {
				t.Fatalf("Delete: %v", err)
			}
			if _, err := s.Get(e.ID); !errors.Is(err, storage.ErrNotFound) {
				t.Errorf("Get after delete = %v, want ErrNotFound", err)
			}
		})

		t.Run("DayCounts", func(t *testing.T) {
			s := factory(t)
			mar7 := dateLocalAt(2024, time.March, 7, 9, 0)
			dec31 := dateLocalAt(2024, time.December, 31, 23, 30)
			otherYear := dateLocalAt(2023, time.June, 1, 12, 0)
			for _, e := range []entry.Entry{
				makeEntryAt(t, "one", mar7),
				makeEntryAt(t, "two", mar7.Add(2*time.Hour)),
				makeEntryAt(t, "eve", dec31),
				makeEntryAt(t, "old", otherYear),
			} {
				if err := s.Create(e); err != nil {
					t.Fatalf("Create: %v", err)
				}
			}

			counts, err := s.DayCounts(2024)
			if err != nil {
				t.Fatalf("DayCounts: %v", err)
			}
			if got := counts[grid.CellID(mar7)]; got != 2 {
				t.Errorf("Mar 7 count = %d, want 2", got)
			}
			if got := counts[grid.CellID(dec31)]; got != 1 {
				t.Errorf("Dec 31 count = %d, want 1", got)
			}
			if got := counts[grid.CellID(otherYear)]; got != 0 {
				t.Errorf("2023 entry leaked into 2024 counts: %d", got)
			}
			if len(counts) != 2 {
				t.Errorf("distinct days = %d, want 2", len(counts))
			}
		})
	})
}

func TestMarkdownContract(t *testing.T) {
	runContractTests(t, "Markdown", markdownFactory)
}

func TestSQLiteContract(t *testing.T) {
	runContractTests(t, "SQLite", sqliteFactory)
}
