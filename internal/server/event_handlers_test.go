package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triphive/internal/models"
)

func TestEventLifecycle(t *testing.T) {
	srv, app := newTestServer(t)
	user := createTestUser(t, srv.db, "planner")
	trip := createTestTrip(t, srv.db, user.ID, "Lisbon", "2025-06-01", "2025-06-03")

	// Create
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/events", map[string]any{
		"tripId":        trip.ID,
		"description":   "Arrival",
		"date":          "2025-06-01",
		"startTime":     "0900",
		"startMeridiem": "am",
		"note":          "gate B12",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &created)
	require.NotZero(t, created.ID)

	// Read back with matching fields
	resp, err = app.Test(jsonRequest(http.MethodGet, "/api/v1/events/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var event models.Event
	decodeBody(t, resp, &event)
	assert.Equal(t, created.ID, event.ID)
	assert.Equal(t, trip.ID, event.TripID)
	assert.Equal(t, "Arrival", event.Description)
	assert.Equal(t, "0900am", event.StartTime)
	assert.Equal(t, "gate B12", event.Note)

	// Delete returns the removed count
	resp, err = app.Test(jsonRequest(http.MethodDelete, "/api/v1/events/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var deleted struct {
		Deleted int64 `json:"deleted"`
	}
	decodeBody(t, resp, &deleted)
	assert.Equal(t, int64(1), deleted.Deleted)

	// Gone now
	resp, err = app.Test(jsonRequest(http.MethodGet, "/api/v1/events/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetEventNotFound(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/v1/events/999", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	var body models.ErrorResponse
	decodeBody(t, resp, &body)
	assert.Equal(t, "NOT_FOUND", body.Code)
}

func TestGetEventInvalidID(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/v1/events/abc", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateEventRequiresTrip(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/events", map[string]any{
		"description": "No trip",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateTripScopedEvent(t *testing.T) {
	srv, app := newTestServer(t)
	user := createTestUser(t, srv.db, "planner")
	trip := createTestTrip(t, srv.db, user.ID, "Lisbon", "2025-06-01", "2025-06-03")

	// Body carries a bogus tripId; the path wins.
	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/events/1", map[string]any{
		"tripId":      999,
		"description": "Dinner",
		"date":        "2025-06-02",
		"startTime":   "0700pm",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &created)

	var event models.Event
	require.NoError(t, srv.db.First(&event, created.ID).Error)
	assert.Equal(t, trip.ID, event.TripID)
	assert.Equal(t, "0700pm", event.StartTime)
}

func TestUpdateEventPartial(t *testing.T) {
	srv, app := newTestServer(t)
	user := createTestUser(t, srv.db, "planner")
	trip := createTestTrip(t, srv.db, user.ID, "Lisbon", "2025-06-01", "2025-06-03")

	event := models.Event{TripID: trip.ID, Description: "Museum", Date: "2025-06-02"}
	require.NoError(t, srv.db.Create(&event).Error)

	resp, err := app.Test(jsonRequest(http.MethodPatch, "/api/v1/events/1", map[string]any{
		"description": "Maritime museum",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated struct {
		Affected int64 `json:"affected"`
	}
	decodeBody(t, resp, &updated)
	assert.Equal(t, int64(1), updated.Affected)

	var stored models.Event
	require.NoError(t, srv.db.First(&stored, event.ID).Error)
	assert.Equal(t, "Maritime museum", stored.Description)
	assert.Equal(t, "2025-06-02", stored.Date)
}

func TestUpdateEventNormalizesTimes(t *testing.T) {
	srv, app := newTestServer(t)
	user := createTestUser(t, srv.db, "planner")
	trip := createTestTrip(t, srv.db, user.ID, "Lisbon", "2025-06-01", "2025-06-03")

	event := models.Event{TripID: trip.ID, Description: "Museum", Date: "2025-06-02", StartTime: "0900am"}
	require.NoError(t, srv.db.Create(&event).Error)

	// Bare clock plus meridiem is combined the same way create does it.
	resp, err := app.Test(jsonRequest(http.MethodPatch, "/api/v1/events/1", map[string]any{
		"startTime":     "1000",
		"startMeridiem": "PM",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var stored models.Event
	require.NoError(t, srv.db.First(&stored, event.ID).Error)
	assert.Equal(t, "1000pm", stored.StartTime)

	// A suffixed value is validated, not stored blindly.
	resp, err = app.Test(jsonRequest(http.MethodPatch, "/api/v1/events/1", map[string]any{
		"startTime": "9999pm",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	require.NoError(t, srv.db.First(&stored, event.ID).Error)
	assert.Equal(t, "1000pm", stored.StartTime)
}

func TestUpdateEventEmptyBodyTouchesNothing(t *testing.T) {
	srv, app := newTestServer(t)
	user := createTestUser(t, srv.db, "planner")
	trip := createTestTrip(t, srv.db, user.ID, "Lisbon", "2025-06-01", "2025-06-03")

	event := models.Event{TripID: trip.ID, Description: "Museum", Date: "2025-06-02"}
	require.NoError(t, srv.db.Create(&event).Error)

	resp, err := app.Test(jsonRequest(http.MethodPatch, "/api/v1/events/1", map[string]any{}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var updated struct {
		Affected int64 `json:"affected"`
	}
	decodeBody(t, resp, &updated)
	assert.Equal(t, int64(0), updated.Affected)

	var stored models.Event
	require.NoError(t, srv.db.First(&stored, event.ID).Error)
	assert.Equal(t, "Museum", stored.Description)
}

func TestDeleteMissingEventReportsZero(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(jsonRequest(http.MethodDelete, "/api/v1/events/42", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var deleted struct {
		Deleted int64 `json:"deleted"`
	}
	decodeBody(t, resp, &deleted)
	assert.Equal(t, int64(0), deleted.Deleted)
}
