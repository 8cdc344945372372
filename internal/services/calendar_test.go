package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveLocation(t *testing.T) {
	assert.Equal(t, time.UTC, ResolveLocation(""))
	assert.Equal(t, time.UTC, ResolveLocation("Not/AZone"))

	loc := ResolveLocation("America/New_York")
	require.NotNil(t, loc)
	assert.Equal(t, "America/New_York", loc.String())
}

func TestDayKeyTimezonePolicy(t *testing.T) {
	// Shortly after midnight UTC it is still the previous day in New York
	instant := time.Date(2026, 8, 30, 3, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-08-30", DayKey(instant, time.UTC))
	assert.Equal(t, "2026-08-29", DayKey(instant, ResolveLocation("America/New_York")))
	assert.Equal(t, "2026-08-30", DayKey(instant, ResolveLocation("Europe/Berlin")))
}

func TestMonthBounds(t *testing.T) {
	first, last, err := MonthBounds("2026-08")
	require.NoError(t, err)
	assert.Equal(t, "2026-08-01", first)
	assert.Equal(t, "2026-08-31", last)

	first, last, err = MonthBounds("2024-02")
	require.NoError(t, err)
	assert.Equal(t, "2024-02-01", first)
	assert.Equal(t, "2024-02-29", last)

	_, _, err = MonthBounds("08-2026")
	assert.Error(t, err)
}

func TestBuildMonthGridShape(t *testing.T) {
	months := []string{"2026-08", "2026-02", "2024-02", "2025-12", "2026-01"}
	for _, month := range months {
		grid, err := BuildMonthGrid(month, "", nil)
		require.NoError(t, err)

		assert.Zero(t, len(grid)%7, "grid for %s must be whole weeks", month)

		// Every day of the requested month appears exactly once
		firstDay, lastDay, err := MonthBounds(month)
		require.NoError(t, err)
		seen := map[string]int{}
		for _, cell := range grid {
			if cell.InMonth {
				seen[cell.Date]++
			}
		}
		first, _ := time.Parse(DayKeyFormat, firstDay)
		last, _ := time.Parse(DayKeyFormat, lastDay)
		for d := first; !d.After(last); d = d.AddDate(0, 0, 1) {
			assert.Equal(t, 1, seen[d.Format(DayKeyFormat)], "day %s in %s", d.Format(DayKeyFormat), month)
		}
		assert.Len(t, seen, last.Day())

		// Grid always starts on Sunday and ends on Saturday
		start, _ := time.Parse(DayKeyFormat, grid[0].Date)
		end, _ := time.Parse(DayKeyFormat, grid[len(grid)-1].Date)
		assert.Equal(t, time.Sunday, start.Weekday())
		assert.Equal(t, time.Saturday, end.Weekday())
	}
}

func TestBuildMonthGridPadding(t *testing.T) {
	// August 2026 starts on a Saturday and ends on a Monday:
	// 6 leading July days + 31 + 5 trailing September days = 42 cells
	grid, err := BuildMonthGrid("2026-08", "", nil)
	require.NoError(t, err)
	require.Len(t, grid, 42)

	assert.Equal(t, "2026-07-26", grid[0].Date)
	assert.False(t, grid[0].InMonth)
	assert.Equal(t, "2026-08-01", grid[6].Date)
	assert.True(t, grid[6].InMonth)
	assert.Equal(t, "2026-09-05", grid[41].Date)
	assert.False(t, grid[41].InMonth)

	// February 2026 starts on Sunday and ends on Saturday: no padding at all
	grid, err = BuildMonthGrid("2026-02", "", nil)
	require.NoError(t, err)
	assert.Len(t, grid, 28)
	for _, cell := range grid {
		assert.True(t, cell.InMonth)
	}
}

func TestBuildMonthGridEntriesAndToday(t *testing.T) {
	entryID := uuid.New()
	grid, err := BuildMonthGrid("2026-08", "2026-08-30", map[string]uuid.UUID{
		"2026-08-12": entryID,
	})
	require.NoError(t, err)

	var matched, todays int
	for _, cell := range grid {
		if cell.EntryID != "" {
			matched++
			assert.Equal(t, "2026-08-12", cell.Date)
			assert.Equal(t, entryID.String(), cell.EntryID)
		}
		if cell.IsToday {
			todays++
			assert.Equal(t, "2026-08-30", cell.Date)
		}
	}
	assert.Equal(t, 1, matched)
	assert.Equal(t, 1, todays)
}

func TestBuildMonthGridInvalidMonth(t *testing.T) {
	_, err := BuildMonthGrid("August 2026", "", nil)
	assert.Error(t, err)
}
