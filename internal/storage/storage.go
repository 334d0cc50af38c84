package storage

import (
	"errors"
	"time"

	"github.com/chris-regnier/dotdiary/internal/entry"
)

// Sentinel errors for storage operations.
var (
	ErrNotFound   = errors.New("entry not found")
	ErrConflict   = errors.New("concurrent write conflict")
	ErrStorage    = errors.New("storage error")
	ErrValidation = errors.New("validation error")
)

// ListOptions controls filtering and ordering for List operations.
type ListOptions struct {
	Date      *time.Time // filter by single date (local timezone)
	StartDate *time.Time // inclusive lower bound (nil = no lower bound)
	EndDate   *time.Time // inclusive upper bound (nil = no upper bound)
	Limit     int        // 0 = no limit
	Offset    int        // pagination offset
}

// Storage defines the interface for journal entry persistence. DayCounts is
// the grid's data feed: per-day entry counts for a year, keyed by the
// DayCell ID (unix seconds of local midnight) so the grid can join them
// without date parsing.
type Storage interface {
	Create(e entry.Entry) error
	Get(id string) (entry.Entry, error)
	List(opts ListOptions) ([]entry.Entry, error)
	Update(id string, content string) (entry.Entry, error)
	Delete(id string) error
	DayCounts(year int) (map[string]int, error)
	Close() error
}
