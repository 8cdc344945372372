package services

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/daybook/daybook-backend/internal/database"
)

func setupRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	database.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { database.RedisClient.Close() })
	return mr
}

func TestCreateAndValidateSession(t *testing.T) {
	setupRedis(t)
	userID := uuid.New()

	token, err := CreateSession(userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	got, ok, err := ValidateSession(token)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, userID, got)
}

func TestValidateSessionInvalid(t *testing.T) {
	setupRedis(t)

	_, ok, err := ValidateSession("")
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = ValidateSession("not-a-real-token")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateSessionRotatesPrevious(t *testing.T) {
	setupRedis(t)
	userID := uuid.New()

	first, err := CreateSession(userID)
	require.NoError(t, err)
	second, err := CreateSession(userID)
	require.NoError(t, err)
	require.NotEqual(t, first, second)

	_, ok, _ := ValidateSession(first)
	assert.False(t, ok, "old session must be invalidated on re-login")
	_, ok, _ = ValidateSession(second)
	assert.True(t, ok)
}

func TestInvalidateSession(t *testing.T) {
	setupRedis(t)
	userID := uuid.New()

	token, err := CreateSession(userID)
	require.NoError(t, err)

	require.NoError(t, InvalidateSession(token))
	_, ok, _ := ValidateSession(token)
	assert.False(t, ok)
}

func TestInvalidateUserSessions(t *testing.T) {
	setupRedis(t)
	userID := uuid.New()

	token, err := CreateSession(userID)
	require.NoError(t, err)

	require.NoError(t, InvalidateUserSessions(userID))
	_, ok, _ := ValidateSession(token)
	assert.False(t, ok)
}

func TestRefreshSession(t *testing.T) {
	mr := setupRedis(t)
	userID := uuid.New()

	token, err := CreateSession(userID)
	require.NoError(t, err)

	// Burn most of the TTL, refresh, and make sure the session survives
	mr.FastForward(SessionDuration - time.Hour)
	require.NoError(t, RefreshSession(token))
	mr.FastForward(2 * time.Hour)

	_, ok, _ := ValidateSession(token)
	assert.True(t, ok)

	assert.Error(t, RefreshSession(""))
}
