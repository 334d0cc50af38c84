package markdown

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"syscall"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/chris-regnier/dotdiary/internal/entry"
	"github.com/chris-regnier/dotdiary/internal/grid"
	"github.com/chris-regnier/dotdiary/internal/storage"
)

// localDate returns the local midnight for the given time.
func localDate(t time.Time) time.Time {
	y, m, d := t.Local().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

// Store implements storage.Storage using Markdown files with YAML
// front-matter, laid out as entries/<year>/<month>/<day>/<id>.md.
type Store struct {
	baseDir string
}

// New creates a new Markdown file storage backend.
func New(dataDir string) (*Store, error) {
	entriesDir := filepath.Join(dataDir, "entries")
	if err := os.MkdirAll(entriesDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating entries directory: %v", storage.ErrStorage, err)
	}
	return &Store{baseDir: entriesDir}, nil
}

// Close is a no-op for the Markdown backend.
func (s *Store) Close() error {
	return nil
}

func (s *Store) entryPath(e entry.Entry) string {
	// Directory layout follows the local calendar day, matching the grid's
	// local-midnight DayCell IDs.
	t := e.CreatedAt.Local()
	return filepath.Join(s.baseDir, t.Format("2006"), t.Format("01"), t.Format("02"), e.ID+".md")
}

func (s *Store) marshal(e entry.Entry) []byte {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "id: %s\n", e.ID)
	fmt.Fprintf(&b, "created_at: %s\n", e.CreatedAt.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "updated_at: %s\n", e.UpdatedAt.UTC().Format(time.RFC3339))
	b.WriteString("---\n\n")
	b.WriteString(e.Content)
	return []byte(b.String())
}

type frontMatter struct {
	ID        string `yaml:"id"`
	CreatedAt string `yaml:"created_at"`
	UpdatedAt string `yaml:"updated_at"`
}

func (s *Store) unmarshal(data []byte) (entry.Entry, error) {
	var fm frontMatter
	content, err := frontmatter.Parse(strings.NewReader(string(data)), &fm)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing front-matter: %v", storage.ErrStorage, err)
	}

	createdAt, err := time.Parse(time.RFC3339, fm.CreatedAt)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing created_at: %v", storage.ErrStorage, err)
	}
	updatedAt, err := time.Parse(time.RFC3339, fm.UpdatedAt)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing updated_at: %v", storage.ErrStorage, err)
	}

	return entry.Entry{
		ID:        fm.ID,
		Content:   strings.TrimSpace(string(content)),
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}, nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
func (s *Store) atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %v", storage.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", storage.ErrStorage, err)
	}
	tmpName := tmp.Name()

	// Lock the temp file during write
	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: acquiring lock: %v", storage.ErrStorage, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", storage.ErrStorage, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", storage.ErrStorage, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", storage.ErrStorage, err)
	}

	return nil
}

// Create persists a new journal entry as a Markdown file.
func (s *Store) Create(e entry.Entry) error {
	if err := entry.ValidateContent(e.Content); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}

	path := s.entryPath(e)
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: entry %s already exists", storage.ErrConflict, e.ID)
	}

	return s.atomicWrite(path, s.marshal(e))
}

// Get retrieves an entry by ID by scanning the directory tree.
func (s *Store) Get(id string) (entry.Entry, error) {
	path, err := s.findEntryPath(id)
	if err != nil {
		return entry.Entry{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: reading file: %v", storage.ErrStorage, err)
	}

	return s.unmarshal(data)
}

// findEntryPath locates the file for a given entry ID.
func (s *Store) findEntryPath(id string) (string, error) {
	var found string
	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}
		if d.IsDir() {
			return nil
		}
		if d.Name() == id+".md" {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: walking entries: %v", storage.ErrStorage, err)
	}
	if found == "" {
		return "", storage.ErrNotFound
	}
	return found, nil
}

// List returns entries matching the given options, newest first.
func (s *Store) List(opts storage.ListOptions) ([]entry.Entry, error) {
	root := s.baseDir
	if opts.Date != nil {
		d := localDate(*opts.Date)
		root = filepath.Join(s.baseDir, d.Format("2006"), d.Format("01"), d.Format("02"))
		if _, err := os.Stat(root); os.IsNotExist(err) {
			return nil, nil
		}
	}

	var entries []entry.Entry
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		e, err := s.unmarshal(data)
		if err != nil {
			return nil
		}
		if opts.StartDate != nil && localDate(e.CreatedAt).Before(localDate(*opts.StartDate)) {
			return nil
		}
		if opts.EndDate != nil && localDate(e.CreatedAt).After(localDate(*opts.EndDate)) {
			return nil
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walking entries: %v", storage.ErrStorage, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.After(entries[j].CreatedAt)
	})

	if opts.Offset > 0 {
		if opts.Offset >= len(entries) {
			return nil, nil
		}
		entries = entries[opts.Offset:]
	}
	if opts.Limit > 0 && len(entries) > opts.Limit {
		entries = entries[:opts.Limit]
	}
	return entries, nil
}

// Update rewrites an entry's content in place.
func (s *Store) Update(id string, content string) (entry.Entry, error) {
	if err := entry.ValidateContent(content); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}

	path, err := s.findEntryPath(id)
	if err != nil {
		return entry.Entry{}, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: reading file: %v", storage.ErrStorage, err)
	}
	e, err := s.unmarshal(data)
	if err != nil {
		return entry.Entry{}, err
	}

	e.Content = content
	e.UpdatedAt = time.Now()
	if err := s.atomicWrite(path, s.marshal(e)); err != nil {
		return entry.Entry{}, err
	}
	return e, nil
}

// Delete removes an entry's file.
func (s *Store) Delete(id string) error {
	path, err := s.findEntryPath(id)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("%w: removing file: %v", storage.ErrStorage, err)
	}
	return nil
}

// DayCounts returns the number of entries per day for a year, keyed by
// DayCell ID. Days without entries are absent from the map. Counting walks
// the year's directory only, so other years never inflate the cost.
func (s *Store) DayCounts(year int) (map[string]int, error) {
	counts := make(map[string]int)
	root := filepath.Join(s.baseDir, fmt.Sprintf("%04d", year))
	if _, err := os.Stat(root); os.IsNotExist(err) {
		return counts, nil
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}
		// entries/<year>/<month>/<day>/<id>.md
		dayDir := filepath.Dir(path)
		monthDir := filepath.Dir(dayDir)
		date, perr := time.ParseInLocation("2006/01/02",
			fmt.Sprintf("%04d/%s/%s", year, filepath.Base(monthDir), filepath.Base(dayDir)), time.Local)
		if perr != nil {
			return nil
		}
		counts[grid.CellID(date)]++
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: walking entries: %v", storage.ErrStorage, err)
	}
	return counts, nil
}
