package server

import (
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triphive/internal/models"
	"triphive/internal/schedule"
)

func TestCreateTripAddsCreatorAsMember(t *testing.T) {
	srv, app := newTestServer(t)
	user := createTestUser(t, srv.db, "organizer")

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/trips", map[string]any{
		"tripName":  "South Island",
		"startDate": "2025-11-01",
		"endDate":   "2025-11-10",
		"createdBy": user.ID,
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &created)
	require.NotZero(t, created.ID)

	var count int64
	require.NoError(t, srv.db.Model(&models.TripMember{}).
		Where("trip_id = ? AND user_id = ?", created.ID, user.ID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestCreateTripRejectsReversedDates(t *testing.T) {
	srv, app := newTestServer(t)
	user := createTestUser(t, srv.db, "organizer")

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/trips", map[string]any{
		"tripName":  "Backwards",
		"startDate": "2025-11-10",
		"endDate":   "2025-11-01",
		"createdBy": user.ID,
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTripMembers(t *testing.T) {
	srv, app := newTestServer(t)
	owner := createTestUser(t, srv.db, "owner")
	guest := createTestUser(t, srv.db, "guest")
	trip := createTestTrip(t, srv.db, owner.ID, "Lisbon", "2025-06-01", "2025-06-03")

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/trips/1/members", map[string]any{
		"userId": guest.ID,
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	// Duplicate membership is rejected.
	resp, err = app.Test(jsonRequest(http.MethodPost, "/api/v1/trips/1/members", map[string]any{
		"userId": guest.ID,
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodGet, "/api/v1/trips/1/members", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var members []models.TripMemberDetail
	decodeBody(t, resp, &members)
	require.Len(t, members, 1)
	assert.Equal(t, trip.TripName, members[0].TripName)
	assert.Equal(t, guest.Email, members[0].Email)

	resp, err = app.Test(jsonRequest(http.MethodDelete, "/api/v1/trips/1/members/2", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var deleted struct {
		Deleted int64 `json:"deleted"`
	}
	decodeBody(t, resp, &deleted)
	assert.Equal(t, int64(1), deleted.Deleted)
}

func TestGetUserTrips(t *testing.T) {
	srv, app := newTestServer(t)
	user := createTestUser(t, srv.db, "wanderer")
	trip := createTestTrip(t, srv.db, user.ID, "Lisbon", "2025-06-01", "2025-06-03")
	require.NoError(t, srv.db.Create(&models.TripMember{TripID: trip.ID, UserID: user.ID}).Error)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/v1/users/1/trips", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var trips []models.MemberTrip
	decodeBody(t, resp, &trips)
	require.Len(t, trips, 1)
	assert.Equal(t, "Lisbon", trips[0].TripName)
	assert.Equal(t, "Test", trips[0].FirstName)
}

func TestGetTripSchedule(t *testing.T) {
	srv, app := newTestServer(t)
	user := createTestUser(t, srv.db, "planner")
	trip := createTestTrip(t, srv.db, user.ID, "Lisbon", "2025-06-01", "2025-06-03")

	events := []models.Event{
		{TripID: trip.ID, Description: "Arrival", Date: "2025-06-01", StartTime: "0900am"},
		{TripID: trip.ID, Description: "Museum", Date: "2025-06-03"},
	}
	require.NoError(t, srv.db.Create(&events).Error)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/v1/trips/1/schedule", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var days []schedule.Day
	decodeBody(t, resp, &days)
	require.Len(t, days, 3)
	assert.Equal(t, "2025-06-01", days[0].Date)
	require.Len(t, days[0].Events, 1)
	assert.Equal(t, "Arrival", days[0].Events[0].Description)
	assert.Empty(t, days[1].Events)
}

func TestGetTripScheduleMissingTrip(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/v1/trips/99/schedule", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetTripCalendar(t *testing.T) {
	srv, app := newTestServer(t)
	user := createTestUser(t, srv.db, "planner")
	trip := createTestTrip(t, srv.db, user.ID, "Lisbon", "2025-06-01", "2025-06-03")
	require.NoError(t, srv.db.Create(&models.Event{
		TripID: trip.ID, Description: "Arrival", Date: "2025-06-01", StartTime: "0900am",
	}).Error)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/v1/trips/1/calendar.ics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get("Content-Type"), "text/calendar")

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	body := string(raw)
	assert.True(t, strings.HasPrefix(body, "BEGIN:VCALENDAR"))
	assert.Contains(t, body, "SUMMARY:Arrival")
}

func TestUpdateTripPartial(t *testing.T) {
	srv, app := newTestServer(t)
	user := createTestUser(t, srv.db, "planner")
	createTestTrip(t, srv.db, user.ID, "Lisbon", "2025-06-01", "2025-06-03")

	resp, err := app.Test(jsonRequest(http.MethodPatch, "/api/v1/trips/1", map[string]any{
		"tripName": "Lisbon and Porto",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var trip models.Trip
	require.NoError(t, srv.db.First(&trip, 1).Error)
	assert.Equal(t, "Lisbon and Porto", trip.TripName)
	assert.Equal(t, "2025-06-01", trip.StartDate)
}

func TestDeleteTrip(t *testing.T) {
	srv, app := newTestServer(t)
	user := createTestUser(t, srv.db, "planner")
	createTestTrip(t, srv.db, user.ID, "Lisbon", "2025-06-01", "2025-06-03")

	resp, err := app.Test(jsonRequest(http.MethodDelete, "/api/v1/trips/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodGet, "/api/v1/trips/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
