package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile holds reminder preferences captured at the end of onboarding.
// A user who skipped onboarding has no profile row at all.
type Profile struct {
	ID                uuid.UUID `json:"id"`
	Email             string    `json:"email"`
	ReminderTime      *string   `json:"reminder_time"`      // HH:MM, nil when unset
	ReminderFrequency *int      `json:"reminder_frequency"` // times per day (1-3), nil when unset
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}
