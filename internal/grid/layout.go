// Package grid lays a year of days out as a dense grid of dots and answers
// coordinate → day lookups in O(1). It is the geometric core of the journal:
// layout topology, hit-testing, and proximity scaling all live here and are
// pure functions of (year, mode, week start, container width).
package grid

import (
	"fmt"
	"time"
)

// WeekStart is the configured first day of the week.
type WeekStart int

const (
	WeekStartSunday WeekStart = iota
	WeekStartMonday
)

// Offset returns the weekday offset (Sunday = 0) of the week's first day.
func (w WeekStart) Offset() int {
	if w == WeekStartMonday {
		return 1
	}
	return 0
}

func (w WeekStart) String() string {
	if w == WeekStartMonday {
		return "monday"
	}
	return "sunday"
}

// ParseWeekStart parses a week-start name as used in config files.
func ParseWeekStart(s string) (WeekStart, error) {
	switch s {
	case "sunday", "":
		return WeekStartSunday, nil
	case "monday":
		return WeekStartMonday, nil
	}
	return WeekStartSunday, fmt.Errorf("unknown week start: %q", s)
}

// IsLeapYear reports whether year is a Gregorian leap year.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// YearLength returns the number of days in year (365 or 366).
func YearLength(year int) int {
	if IsLeapYear(year) {
		return 366
	}
	return 365
}

// Topology is the row/column shape of a year under a density mode: how many
// empty slots precede January 1 and how many rows the grid spans.
type Topology struct {
	LeadingEmptySlots int
	TotalRows         int
	CellsPerRow       int
}

// LayoutYear computes the grid topology for a year under the given mode and
// week start. Modes that ignore weekday alignment get zero leading slots.
func LayoutYear(year int, mode Mode, weekStart WeekStart) Topology {
	perRow := mode.CellsPerRow()
	length := YearLength(year)

	leading := 0
	if mode.AlignsWeekday() {
		jan1 := int(time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local).Weekday())
		leading = (jan1 - weekStart.Offset()) % perRow
		if leading < 0 {
			leading += perRow
		}
	}

	return Topology{
		LeadingEmptySlots: leading,
		TotalRows:         (length + leading + perRow - 1) / perRow,
		CellsPerRow:       perRow,
	}
}

// Position maps an item index to its (row, col) grid coordinate. This is the
// single authoritative index↔coordinate mapping; Index is its exact inverse.
func (t Topology) Position(index int) (row, col int) {
	slot := index + t.LeadingEmptySlots
	return slot / t.CellsPerRow, slot % t.CellsPerRow
}

// Index maps a (row, col) grid coordinate back to an item index. Coordinates
// that land on a leading empty slot yield a negative index.
func (t Topology) Index(row, col int) int {
	return row*t.CellsPerRow + col - t.LeadingEmptySlots
}
