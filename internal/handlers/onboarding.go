package handlers

import (
	"encoding/json"
	"net/http"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/lib/pq"

	"github.com/daybook/daybook-backend/internal/database"
	"github.com/daybook/daybook-backend/internal/models"
	"github.com/daybook/daybook-backend/internal/services"
)

const (
	defaultReminderTime      = "09:00"
	defaultReminderFrequency = 1
)

// CompleteOnboardingRequest captures the preferences from the final step.
// Empty fields fall back to the form defaults (09:00, once a day).
type CompleteOnboardingRequest struct {
	ReminderTime      string `json:"reminder_time"`
	ReminderFrequency int    `json:"reminder_frequency"`
}

func (req CompleteOnboardingRequest) Validate() error {
	return validation.ValidateStruct(&req,
		validation.Field(&req.ReminderTime, validation.Match(reminderTimePattern).Error("must be HH:MM")),
		validation.Field(&req.ReminderFrequency, validation.Min(1), validation.Max(3)),
	)
}

type OnboardingStepsResponse struct {
	Success bool                    `json:"success"`
	Steps   []models.OnboardingStep `json:"steps"`
	Total   int                     `json:"total"`
}

type OnboardingActionResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Profile *models.Profile `json:"profile,omitempty"`
}

// GetOnboardingSteps returns the fixed informational steps so clients render
// the linear flow.
func GetOnboardingSteps(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAuth(r); !ok {
		unauthorized(w)
		return
	}

	writeJSON(w, http.StatusOK, OnboardingStepsResponse{
		Success: true,
		Steps:   models.OnboardingSteps,
		Total:   len(models.OnboardingSteps),
	})
}

// CompleteOnboarding creates exactly one profile row for the identity with
// the captured reminder preferences. Completing twice is a conflict.
func CompleteOnboarding(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireAuth(r)
	if !ok {
		unauthorized(w)
		return
	}

	var req CompleteOnboardingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, OnboardingActionResponse{Success: false, Message: "Invalid request body"})
		return
	}

	if err := req.Validate(); err != nil {
		writeJSON(w, http.StatusBadRequest, OnboardingActionResponse{Success: false, Message: err.Error()})
		return
	}

	if req.ReminderTime == "" {
		req.ReminderTime = defaultReminderTime
	}
	if req.ReminderFrequency == 0 {
		req.ReminderFrequency = defaultReminderFrequency
	}

	_, err := database.PostgresDB.Exec(`
		INSERT INTO profiles (id, email, reminder_time, reminder_frequency, created_at, updated_at)
		SELECT id, email, $2, $3, NOW(), NOW() FROM users WHERE id = $1
	`, userID, req.ReminderTime, req.ReminderFrequency)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			writeJSON(w, http.StatusConflict, OnboardingActionResponse{Success: false, Message: "Onboarding already completed"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, OnboardingActionResponse{Success: false, Message: "Failed to create profile"})
		return
	}

	services.InvalidateCachedProfile(userID.String())

	profile, err := fetchProfile(userID.String())
	if err != nil || profile == nil {
		writeJSON(w, http.StatusInternalServerError, OnboardingActionResponse{Success: false, Message: "Failed to load profile"})
		return
	}

	writeJSON(w, http.StatusCreated, OnboardingActionResponse{
		Success: true,
		Message: "Profile created successfully",
		Profile: profile,
	})
}

// SkipOnboarding acknowledges the skip action. No profile row is created;
// the profile endpoints tolerate the missing row until the user sets
// preferences later.
func SkipOnboarding(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireAuth(r); !ok {
		unauthorized(w)
		return
	}

	writeJSON(w, http.StatusOK, OnboardingActionResponse{
		Success: true,
		Message: "Onboarding skipped",
	})
}
