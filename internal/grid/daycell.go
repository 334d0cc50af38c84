package grid

import (
	"strconv"
	"time"
)

// DayCell is the logical unit of the grid: one calendar day and its stable
// identifier. The ID is the Unix timestamp (seconds) of the local start of
// day, so it is derivable from the date alone and unique within a year.
type DayCell struct {
	ID   string
	Date time.Time
}

// NormalizeDate normalizes a time to midnight in the local timezone, so all
// times within a calendar day map to the same DayCell.
func NormalizeDate(t time.Time) time.Time {
	year, month, day := t.Local().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}

// CellID derives the DayCell ID for a date.
func CellID(t time.Time) string {
	return strconv.FormatInt(NormalizeDate(t).Unix(), 10)
}

// YearCells builds the ordered list of day cells for a year, January 1
// through December 31.
func YearCells(year int) []DayCell {
	cells := make([]DayCell, 0, YearLength(year))
	d := time.Date(year, time.January, 1, 0, 0, 0, 0, time.Local)
	for d.Year() == year {
		cells = append(cells, DayCell{ID: CellID(d), Date: d})
		d = d.AddDate(0, 0, 1)
	}
	return cells
}
