package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook/daybook-backend/internal/models"
)

func TestProfileCacheRoundTrip(t *testing.T) {
	setupRedis(t)
	userID := uuid.New()

	reminderTime := "09:00"
	freq := 2
	profile := models.Profile{
		ID:                userID,
		Email:             "casey@example.com",
		ReminderTime:      &reminderTime,
		ReminderFrequency: &freq,
	}

	var miss models.Profile
	assert.False(t, GetCachedProfile(userID.String(), &miss))

	require.NoError(t, SetCachedProfile(userID.String(), profile))

	var hit models.Profile
	require.True(t, GetCachedProfile(userID.String(), &hit))
	assert.Equal(t, profile.Email, hit.Email)
	require.NotNil(t, hit.ReminderTime)
	assert.Equal(t, "09:00", *hit.ReminderTime)
	require.NotNil(t, hit.ReminderFrequency)
	assert.Equal(t, 2, *hit.ReminderFrequency)
}

func TestProfileCacheInvalidate(t *testing.T) {
	setupRedis(t)
	userID := uuid.New()

	require.NoError(t, SetCachedProfile(userID.String(), models.Profile{ID: userID, Email: "a@b.c"}))
	require.NoError(t, InvalidateCachedProfile(userID.String()))

	var out models.Profile
	assert.False(t, GetCachedProfile(userID.String(), &out))
}
