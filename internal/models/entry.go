package models

import (
	"time"

	"github.com/google/uuid"
)

// Feelings is the closed set of mood labels an entry may carry.
var Feelings = []string{"Good", "Medium", "Bad", "Uncertain"}

// AvailableTags is the fixed tag vocabulary offered on the daily entry form.
var AvailableTags = []string{
	"Work",
	"School",
	"Friends",
	"Exercise",
	"Family time",
	"Outdoor",
	"Busy",
	"Creative",
	"Sex",
	"Vacation",
	"Alcohol",
	"Dine out",
	"Sick",
}

// Entry is one day's journal entry. EntryDay is the explicit day key
// (YYYY-MM-DD) computed once at save time; at most one entry exists per
// (user, day) pair.
type Entry struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	EntryDay  string    `json:"entry_day"`
	Content   *string   `json:"content"`
	Feeling   *string   `json:"feeling"`
	Tags      []string  `json:"tags"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ValidFeeling reports whether f is one of the allowed mood labels.
func ValidFeeling(f string) bool {
	for _, v := range Feelings {
		if v == f {
			return true
		}
	}
	return false
}

// ValidTag reports whether tag is in the fixed vocabulary.
func ValidTag(tag string) bool {
	for _, v := range AvailableTags {
		if v == tag {
			return true
		}
	}
	return false
}
