package handlers

import (
	"database/sql"
	"encoding/json"
	"net/http"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/daybook/daybook-backend/internal/database"
	"github.com/daybook/daybook-backend/internal/models"
	"github.com/daybook/daybook-backend/internal/services"
)

var reminderTimePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)

// UpdateProfileRequest carries reminder preferences. Empty time or zero
// frequency clears the corresponding preference.
type UpdateProfileRequest struct {
	ReminderTime      string `json:"reminder_time"`
	ReminderFrequency int    `json:"reminder_frequency"`
}

func (req UpdateProfileRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ReminderTime, validation.Match(reminderTimePattern).Error("must be HH:MM")),
		validation.Field(&req.ReminderFrequency, validation.Min(1), validation.Max(3)),
	)
}

type ProfileResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message,omitempty"`
	Profile *models.Profile `json:"profile,omitempty"`
}

// GetProfile returns the caller's profile row. A user who skipped onboarding
// has none, which is reported as not found rather than an error.
func GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		unauthorized(w)
		return
	}

	var cached models.Profile
	if services.GetCachedProfile(userID.String(), &cached) {
		writeJSON(w, http.StatusOK, ProfileResponse{Success: true, Profile: &cached})
		return
	}

	profile, err := fetchProfile(userID.String())
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ProfileResponse{Success: false, Message: "Failed to load profile"})
		return
	}
	if profile == nil {
		writeJSON(w, http.StatusNotFound, ProfileResponse{Success: false, Message: "Profile not found. Complete onboarding to set your preferences."})
		return
	}

	services.SetCachedProfile(userID.String(), profile)

	writeJSON(w, http.StatusOK, ProfileResponse{Success: true, Profile: profile})
}

// UpdateProfile upserts reminder preferences. A user without a profile row
// (skipped onboarding) gets one created here, mirroring the account email.
func UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		unauthorized(w)
		return
	}

	var req UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, ProfileResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, ProfileResponse{Success: false, Message: err.Error()})
		return
	}

	var reminderTime, reminderFrequency interface{}
	if req.ReminderTime != "" {
		reminderTime = req.ReminderTime
	}
	if req.ReminderFrequency > 0 {
		reminderFrequency = req.ReminderFrequency
	}

	result, err := database.PostgresDB.Exec(`
		INSERT INTO profiles (id, email, reminder_time, reminder_frequency, created_at, updated_at)
		SELECT id, email, $2, $3, NOW(), NOW() FROM users WHERE id = $1
		ON CONFLICT (id) DO UPDATE SET
			reminder_time = EXCLUDED.reminder_time,
			reminder_frequency = EXCLUDED.reminder_frequency,
			updated_at = NOW()
	`, userID, reminderTime, reminderFrequency)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, ProfileResponse{Success: false, Message: "Failed to update profile"})
		return
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		// The SELECT matched no user row
		unauthorized(w)
		return
	}

	services.InvalidateCachedProfile(userID.String())

	profile, err := fetchProfile(userID.String())
	if err != nil || profile == nil {
		writeJSON(w, http.StatusInternalServerError, ProfileResponse{Success: false, Message: "Failed to load profile"})
		return
	}

	writeJSON(w, http.StatusOK, ProfileResponse{
		Success: true,
		Message: "Preferences saved",
		Profile: profile,
	})
}

// fetchProfile loads a profile row. Returns (nil, nil) when none exists.
func fetchProfile(userID string) (*models.Profile, error) {
	var profile models.Profile
	var reminderTime sql.NullString
	var reminderFrequency sql.NullInt64

	err := database.PostgresDB.QueryRow(`
		SELECT id, email, reminder_time, reminder_frequency, created_at, updated_at
		FROM profiles
		WHERE id = $1
	`, userID).Scan(&profile.ID, &profile.Email, &reminderTime, &reminderFrequency, &profile.CreatedAt, &profile.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if reminderTime.Valid {
		profile.ReminderTime = &reminderTime.String
	}
	if reminderFrequency.Valid {
		freq := int(reminderFrequency.Int64)
		profile.ReminderFrequency = &freq
	}
	return &profile, nil
}
