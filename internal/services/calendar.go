package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// DayKeyFormat is the canonical day-key layout (a calendar date, no instant).
const DayKeyFormat = "2006-01-02"

// Timezone policy: an entry's day is the calendar date at the moment of save
// in the timezone the client declares (IANA name, e.g. "Europe/Berlin"). When
// the client declares none, or an unknown name, UTC is used. The resolved day
// is stored as an explicit day key and never re-derived from the creation
// instant.

// ResolveLocation returns the location for an IANA timezone name, falling
// back to UTC for empty or unknown names.
func ResolveLocation(tzName string) *time.Location {
	if tzName == "" {
		return time.UTC
	}
	loc, err := time.LoadLocation(tzName)
	if err != nil {
		return time.UTC
	}
	return loc
}

// DayKey returns the day key for an instant in the given location.
func DayKey(t time.Time, loc *time.Location) string {
	return t.In(loc).Format(DayKeyFormat)
}

// MonthBounds parses a month in YYYY-MM form and returns the first and last
// day keys of that month.
func MonthBounds(month string) (string, string, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return "", "", fmt.Errorf("invalid month %q: expected YYYY-MM", month)
	}
	last := first.AddDate(0, 1, -1)
	return first.Format(DayKeyFormat), last.Format(DayKeyFormat), nil
}

// CalendarDay is one cell of the month grid.
type CalendarDay struct {
	Date    string `json:"date"` // day key, YYYY-MM-DD
	Day     int    `json:"day"`  // day of month, for rendering
	InMonth bool   `json:"in_month"`
	IsToday bool   `json:"is_today"`
	EntryID string `json:"entry_id,omitempty"`
}

// BuildMonthGrid produces the full calendar grid for a month: whole weeks
// starting on Sunday, so the result length is always a multiple of 7 and
// includes the leading/trailing days from adjacent months needed to fill the
// first and last week rows. entryDays maps day keys to entry ids; today is
// the caller's current day key.
func BuildMonthGrid(month string, today string, entryDays map[string]uuid.UUID) ([]CalendarDay, error) {
	first, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, fmt.Errorf("invalid month %q: expected YYYY-MM", month)
	}
	last := first.AddDate(0, 1, -1)

	// Back up to Sunday, then run forward to the Saturday closing the last week
	start := first.AddDate(0, 0, -int(first.Weekday()))
	end := last.AddDate(0, 0, int(time.Saturday-last.Weekday()))

	grid := make([]CalendarDay, 0, 42)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(DayKeyFormat)
		cell := CalendarDay{
			Date:    key,
			Day:     d.Day(),
			InMonth: d.Month() == first.Month(),
			IsToday: key == today,
		}
		if id, ok := entryDays[key]; ok {
			cell.EntryID = id.String()
		}
		grid = append(grid, cell)
	}
	return grid, nil
}
