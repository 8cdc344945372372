package handlers

import (
	"database/sql"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/daybook/daybook-backend/internal/database"
	"github.com/daybook/daybook-backend/internal/models"
	"github.com/daybook/daybook-backend/internal/services"
)

// HistoryResponse carries one month of entries plus the calendar grid the
// history view renders: whole weeks, every day of the month exactly once,
// padded with adjacent-month days.
type HistoryResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message,omitempty"`
	Month   string                 `json:"month"`
	Grid    []services.CalendarDay `json:"grid"`
	Entries []*models.Entry        `json:"entries"`
	Total   int                    `json:"total"`
}

// GetHistory returns the caller's entries for one calendar month together
// with the month grid. The month defaults to the current one in the client's
// declared timezone; day matching uses the stored day key only.
func GetHistory(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		unauthorized(w)
		return
	}

	loc := services.ResolveLocation(r.URL.Query().Get("time_zone"))
	now := time.Now().In(loc)

	month := r.URL.Query().Get("month")
	if month == "" {
		month = now.Format("2006-01")
	}

	firstDay, lastDay, err := services.MonthBounds(month)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, HistoryResponse{Success: false, Message: err.Error(), Month: month})
		return
	}

	entries, err := fetchEntriesInRange(userID, firstDay, lastDay)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, HistoryResponse{Success: false, Message: "Failed to load entries", Month: month})
		return
	}

	entryDays := make(map[string]uuid.UUID, len(entries))
	for _, e := range entries {
		entryDays[e.EntryDay] = e.ID
	}

	grid, err := services.BuildMonthGrid(month, services.DayKey(now, loc), entryDays)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, HistoryResponse{Success: false, Message: err.Error(), Month: month})
		return
	}

	writeJSON(w, http.StatusOK, HistoryResponse{
		Success: true,
		Month:   month,
		Grid:    grid,
		Entries: entries,
		Total:   len(entries),
	})
}

// fetchEntriesInRange loads all entries whose day key falls inside the
// inclusive range, ordered ascending by day.
func fetchEntriesInRange(userID uuid.UUID, firstDay, lastDay string) ([]*models.Entry, error) {
	rows, err := database.PostgresDB.Query(`
		SELECT id, user_id, entry_day, content, feeling, tags, created_at, updated_at
		FROM entries
		WHERE user_id = $1 AND entry_day >= $2 AND entry_day <= $3
		ORDER BY entry_day ASC
	`, userID, firstDay, lastDay)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := make([]*models.Entry, 0)
	for rows.Next() {
		var entry models.Entry
		var entryDay time.Time
		var content, feeling sql.NullString
		var tags pq.StringArray

		if err := rows.Scan(&entry.ID, &entry.UserID, &entryDay, &content, &feeling, &tags, &entry.CreatedAt, &entry.UpdatedAt); err != nil {
			return nil, err
		}

		entry.EntryDay = entryDay.Format(services.DayKeyFormat)
		if content.Valid {
			entry.Content = &content.String
		}
		if feeling.Valid {
			entry.Feeling = &feeling.String
		}
		entry.Tags = tags

		entries = append(entries, &entry)
	}
	return entries, rows.Err()
}
