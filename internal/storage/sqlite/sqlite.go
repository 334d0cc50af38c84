package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/chris-regnier/dotdiary/internal/entry"
	"github.com/chris-regnier/dotdiary/internal/grid"
	"github.com/chris-regnier/dotdiary/internal/storage"
	_ "github.com/tursodatabase/go-libsql"
)

// Store implements storage.Storage using SQLite via Turso/libSQL.
type Store struct {
	db *sql.DB
}

// New creates a new SQLite storage backend.
func New(dataDir string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}

	dbPath := filepath.Join(dataDir, "dotdiary.db")
	db, err := sql.Open("libsql", "file:"+dbPath)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", storage.ErrStorage, err)
	}

	// Enable WAL mode. The libsql driver rejects row-returning statements
	// through Exec, and this PRAGMA returns the resulting mode as a row.
	var mode string
	if err := db.QueryRow("PRAGMA journal_mode=WAL").Scan(&mode); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", storage.ErrStorage, err)
	}

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			id         TEXT PRIMARY KEY,
			content    TEXT NOT NULL CHECK(length(trim(content)) > 0),
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL,
			CHECK(created_at <= updated_at)
		);
		CREATE INDEX IF NOT EXISTS idx_entries_created_at ON entries(created_at DESC);
		CREATE INDEX IF NOT EXISTS idx_entries_date ON entries(date(created_at, 'localtime'));
	`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("%w: creating schema: %v", storage.ErrStorage, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Create persists a new journal entry.
func (s *Store) Create(e entry.Entry) error {
	if err := entry.ValidateContent(e.Content); err != nil {
		return fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}

	_, err := s.db.Exec(
		"INSERT INTO entries (id, content, created_at, updated_at) VALUES (?, ?, ?, ?)",
		e.ID,
		e.Content,
		e.CreatedAt.UTC().Format(time.RFC3339),
		e.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("%w: inserting entry: %v", storage.ErrStorage, err)
	}
	return nil
}

// Get retrieves an entry by ID.
func (s *Store) Get(id string) (entry.Entry, error) {
	row := s.db.QueryRow(
		"SELECT id, content, created_at, updated_at FROM entries WHERE id = ?", id,
	)
	return scanEntry(row.Scan)
}

func scanEntry(scan func(dest ...any) error) (entry.Entry, error) {
	var e entry.Entry
	var createdStr, updatedStr string
	if err := scan(&e.ID, &e.Content, &createdStr, &updatedStr); err != nil {
		if err == sql.ErrNoRows {
			return entry.Entry{}, storage.ErrNotFound
		}
		return entry.Entry{}, fmt.Errorf("%w: scanning entry: %v", storage.ErrStorage, err)
	}

	var err error
	e.CreatedAt, err = time.Parse(time.RFC3339, createdStr)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing created_at: %v", storage.ErrStorage, err)
	}
	e.UpdatedAt, err = time.Parse(time.RFC3339, updatedStr)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing updated_at: %v", storage.ErrStorage, err)
	}
	return e, nil
}

// List returns entries matching the given options, newest first.
func (s *Store) List(opts storage.ListOptions) ([]entry.Entry, error) {
	query := "SELECT id, content, created_at, updated_at FROM entries"
	var where []string
	var args []any

	if opts.Date != nil {
		where = append(where, "date(created_at, 'localtime') = ?")
		args = append(args, opts.Date.Format("2006-01-02"))
	}
	if opts.StartDate != nil {
		where = append(where, "date(created_at, 'localtime') >= ?")
		args = append(args, opts.StartDate.Format("2006-01-02"))
	}
	if opts.EndDate != nil {
		where = append(where, "date(created_at, 'localtime') <= ?")
		args = append(args, opts.EndDate.Format("2006-01-02"))
	}
	for i, w := range where {
		if i == 0 {
			query += " WHERE " + w
		} else {
			query += " AND " + w
		}
	}

	query += " ORDER BY created_at DESC"
	if opts.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}
	if opts.Offset > 0 {
		query += fmt.Sprintf(" OFFSET %d", opts.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: listing entries: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	var entries []entry.Entry
	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating entries: %v", storage.ErrStorage, err)
	}
	return entries, nil
}

// Update rewrites an entry's content in place.
func (s *Store) Update(id string, content string) (entry.Entry, error) {
	if err := entry.ValidateContent(content); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: %v", storage.ErrValidation, err)
	}

	res, err := s.db.Exec(
		"UPDATE entries SET content = ?, updated_at = ? WHERE id = ?",
		content, time.Now().UTC().Format(time.RFC3339), id,
	)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: updating entry: %v", storage.ErrStorage, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: checking update: %v", storage.ErrStorage, err)
	}
	if affected == 0 {
		return entry.Entry{}, storage.ErrNotFound
	}
	return s.Get(id)
}

// Delete removes an entry.
func (s *Store) Delete(id string) error {
	res, err := s.db.Exec("DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: deleting entry: %v", storage.ErrStorage, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking delete: %v", storage.ErrStorage, err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DayCounts returns the number of entries per day for a year, keyed by
// DayCell ID. Days without entries are absent from the map.
func (s *Store) DayCounts(year int) (map[string]int, error) {
	rows, err := s.db.Query(
		`SELECT date(created_at, 'localtime') AS day, COUNT(*)
		 FROM entries
		 WHERE strftime('%Y', created_at, 'localtime') = ?
		 GROUP BY day`,
		strconv.Itoa(year),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: counting days: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var day string
		var count int
		if err := rows.Scan(&day, &count); err != nil {
			return nil, fmt.Errorf("%w: scanning day count: %v", storage.ErrStorage, err)
		}
		date, err := time.ParseInLocation("2006-01-02", day, time.Local)
		if err != nil {
			continue
		}
		counts[grid.CellID(date)] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating day counts: %v", storage.ErrStorage, err)
	}
	return counts, nil
}
