package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/daybook/daybook-backend/internal/database"
	"github.com/daybook/daybook-backend/internal/models"
	"github.com/daybook/daybook-backend/internal/services"
)

// SaveEntryRequest carries the daily entry form. TimeZone is the client's
// IANA zone name used to resolve "today"; UTC when absent.
type SaveEntryRequest struct {
	Content  string   `json:"content"`
	Feeling  string   `json:"feeling"`
	Tags     []string `json:"tags"`
	TimeZone string   `json:"time_zone"`
}

func (req SaveEntryRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.Content, validation.Length(0, 10000)),
		validation.Field(&req.Feeling, validation.In(toInterfaces(models.Feelings)...)),
		validation.Field(&req.Tags, validation.Each(validation.In(toInterfaces(models.AvailableTags)...))),
		validation.Field(&req.TimeZone, validation.Length(0, 64)),
	)
}

// SaveEntryResponse reports whether the upsert created a new row or updated
// today's existing one.
type SaveEntryResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message"`
	Created bool          `json:"created"`
	Entry   *models.Entry `json:"entry,omitempty"`
}

type GetEntryResponse struct {
	Success bool          `json:"success"`
	Message string        `json:"message,omitempty"`
	Entry   *models.Entry `json:"entry"`
}

// SaveTodayEntry creates or replaces today's entry in a single atomic upsert
// keyed on (user, day). Content, feeling and tags are fully replaced, never
// merged; whitespace-only content and an empty tag selection are stored as
// NULL.
func SaveTodayEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		unauthorized(w)
		return
	}

	var req SaveEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, SaveEntryResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, SaveEntryResponse{Success: false, Message: err.Error()})
		return
	}

	loc := services.ResolveLocation(req.TimeZone)
	day := services.DayKey(time.Now(), loc)

	// Normalize optional fields to explicit absence
	var content, feeling interface{}
	if trimmed := strings.TrimSpace(req.Content); trimmed != "" {
		content = trimmed
	}
	if req.Feeling != "" {
		feeling = req.Feeling
	}
	var tags interface{}
	if len(req.Tags) > 0 {
		tags = pq.Array(req.Tags)
	}

	// NOW() is transaction-stable, so created_at equals updated_at exactly
	// when the row was inserted by this statement
	var entryID uuid.UUID
	var createdAt, updatedAt time.Time
	err := database.PostgresDB.QueryRow(`
		INSERT INTO entries (id, user_id, entry_day, content, feeling, tags, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		ON CONFLICT (user_id, entry_day) DO UPDATE SET
			content = EXCLUDED.content,
			feeling = EXCLUDED.feeling,
			tags = EXCLUDED.tags,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`, uuid.New(), userID, day, content, feeling, tags).Scan(&entryID, &createdAt, &updatedAt)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, SaveEntryResponse{Success: false, Message: "Failed to save entry"})
		return
	}

	created := createdAt.Equal(updatedAt)

	entry := &models.Entry{
		ID:        entryID,
		UserID:    userID,
		EntryDay:  day,
		CreatedAt: createdAt,
		UpdatedAt: updatedAt,
	}
	if content != nil {
		s := content.(string)
		entry.Content = &s
	}
	if feeling != nil {
		s := feeling.(string)
		entry.Feeling = &s
	}
	if len(req.Tags) > 0 {
		entry.Tags = req.Tags
	}

	message := "Entry updated"
	if created {
		message = "Entry created"
	}
	writeJSON(w, http.StatusOK, SaveEntryResponse{
		Success: true,
		Message: message,
		Created: created,
		Entry:   entry,
	})
}

// GetTodayEntry returns today's entry when one exists, so the entry form can
// preload edit mode. A day without an entry is a success with a null entry.
func GetTodayEntry(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		unauthorized(w)
		return
	}

	loc := services.ResolveLocation(r.URL.Query().Get("time_zone"))
	day := services.DayKey(time.Now(), loc)

	entry, err := fetchEntryByDay(userID, day)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, GetEntryResponse{Success: false, Message: "Failed to load entry"})
		return
	}

	writeJSON(w, http.StatusOK, GetEntryResponse{Success: true, Entry: entry})
}

// fetchEntryByDay loads a single entry by its day key. Returns (nil, nil)
// when the user has no entry that day.
func fetchEntryByDay(userID uuid.UUID, day string) (*models.Entry, error) {
	var entry models.Entry
	var entryDay time.Time
	var content, feeling sql.NullString
	var tags pq.StringArray

	err := database.PostgresDB.QueryRow(`
		SELECT id, user_id, entry_day, content, feeling, tags, created_at, updated_at
		FROM entries
		WHERE user_id = $1 AND entry_day = $2
	`, userID, day).Scan(&entry.ID, &entry.UserID, &entryDay, &content, &feeling, &tags, &entry.CreatedAt, &entry.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
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
	return &entry, nil
}
