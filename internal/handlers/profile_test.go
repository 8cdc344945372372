package handlers

import (
	"net/http"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var selectProfileSQL = regexp.QuoteMeta("SELECT id, email, reminder_time, reminder_frequency, created_at, updated_at")

func profileRow(userID, email string, reminderTime interface{}, reminderFrequency interface{}) *sqlmock.Rows {
	now := time.Now()
	return sqlmock.
		NewRows([]string{"id", "email", "reminder_time", "reminder_frequency", "created_at", "updated_at"}).
		AddRow(userID, email, reminderTime, reminderFrequency, now, now)
}

func TestGetProfileNotFound(t *testing.T) {
	mock, userID, token := setupHandlerTest(t)

	mock.ExpectQuery(selectProfileSQL).
		WithArgs(userID.String()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "reminder_time", "reminder_frequency", "created_at", "updated_at"}))

	var resp ProfileResponse
	rec := doRequest(t, GetProfile, http.MethodGet, "/api/profile", token, nil, &resp)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.False(t, resp.Success)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetProfileCachesSecondRead(t *testing.T) {
	mock, userID, token := setupHandlerTest(t)

	mock.ExpectQuery(selectProfileSQL).
		WithArgs(userID.String()).
		WillReturnRows(profileRow(userID.String(), "casey@example.com", "09:00", 2))

	var first ProfileResponse
	rec := doRequest(t, GetProfile, http.MethodGet, "/api/profile", token, nil, &first)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, first.Profile)
	assert.Equal(t, "casey@example.com", first.Profile.Email)
	require.NotNil(t, first.Profile.ReminderTime)
	assert.Equal(t, "09:00", *first.Profile.ReminderTime)
	require.NotNil(t, first.Profile.ReminderFrequency)
	assert.Equal(t, 2, *first.Profile.ReminderFrequency)

	// Second read is served from the cache: no further query is expected
	var second ProfileResponse
	rec = doRequest(t, GetProfile, http.MethodGet, "/api/profile", token, nil, &second)
	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, second.Profile)
	assert.Equal(t, first.Profile.Email, second.Profile.Email)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfileUpsert(t *testing.T) {
	mock, userID, token := setupHandlerTest(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profiles")).
		WithArgs(userID, "21:30", 3).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectProfileSQL).
		WithArgs(userID.String()).
		WillReturnRows(profileRow(userID.String(), "casey@example.com", "21:30", 3))

	var resp ProfileResponse
	rec := doRequest(t, UpdateProfile, http.MethodPut, "/api/profile", token, UpdateProfileRequest{
		ReminderTime:      "21:30",
		ReminderFrequency: 3,
	}, &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Profile)
	require.NotNil(t, resp.Profile.ReminderTime)
	assert.Equal(t, "21:30", *resp.Profile.ReminderTime)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfileValidation(t *testing.T) {
	mock, _, token := setupHandlerTest(t)

	cases := []UpdateProfileRequest{
		{ReminderTime: "25:00"},
		{ReminderTime: "9am"},
		{ReminderFrequency: 4},
		{ReminderFrequency: -1},
	}
	for _, c := range cases {
		var resp ProfileResponse
		rec := doRequest(t, UpdateProfile, http.MethodPut, "/api/profile", token, c, &resp)
		assert.Equal(t, http.StatusBadRequest, rec.Code, "%+v", c)
		assert.False(t, resp.Success)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateProfileClearsPreferences(t *testing.T) {
	mock, userID, token := setupHandlerTest(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO profiles")).
		WithArgs(userID, nil, nil).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(selectProfileSQL).
		WithArgs(userID.String()).
		WillReturnRows(profileRow(userID.String(), "casey@example.com", nil, nil))

	var resp ProfileResponse
	rec := doRequest(t, UpdateProfile, http.MethodPut, "/api/profile", token, UpdateProfileRequest{}, &resp)

	assert.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, resp.Profile)
	assert.Nil(t, resp.Profile.ReminderTime)
	assert.Nil(t, resp.Profile.ReminderFrequency)
	assert.NoError(t, mock.ExpectationsWereMet())
}
