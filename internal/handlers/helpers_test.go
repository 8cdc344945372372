package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/daybook/daybook-backend/internal/database"
	"github.com/daybook/daybook-backend/internal/services"
)

// setupHandlerTest points the global database handles at a sqlmock database
// and a miniredis instance, and seeds one authenticated session.
func setupHandlerTest(t *testing.T) (sqlmock.Sqlmock, uuid.UUID, string) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	database.PostgresDB = db
	t.Cleanup(func() { db.Close() })

	mr := miniredis.RunT(t)
	database.RedisClient = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { database.RedisClient.Close() })

	userID := uuid.New()
	token, err := services.CreateSession(userID)
	require.NoError(t, err)

	return mock, userID, token
}

// doRequest invokes a handler directly and decodes the JSON response into out.
func doRequest(t *testing.T, handler http.HandlerFunc, method, target, token string, body interface{}, out interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, reader)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	handler(rec, req)

	if out != nil {
		require.NoError(t, json.NewDecoder(rec.Body).Decode(out))
	}
	return rec
}
