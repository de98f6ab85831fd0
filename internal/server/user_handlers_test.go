package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triphive/internal/models"
)

func TestCreateAndGetUser(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/users", map[string]any{
		"username":  "traveler",
		"email":     "traveler@example.com",
		"password":  "SecurePass12!@",
		"firstName": "Ash",
		"lastName":  "Kim",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		ID uint `json:"id"`
	}
	decodeBody(t, resp, &created)
	require.NotZero(t, created.ID)

	resp, err = app.Test(jsonRequest(http.MethodGet, "/api/v1/users/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var user models.User
	decodeBody(t, resp, &user)
	assert.Equal(t, "traveler", user.Username)
	assert.Equal(t, "Ash", user.FirstName)
	// Password hashes never leave the API.
	assert.Empty(t, user.Password)
}

func TestCreateUserDuplicateUsername(t *testing.T) {
	srv, app := newTestServer(t)
	createTestUser(t, srv.db, "traveler")

	resp, err := app.Test(jsonRequest(http.MethodPost, "/api/v1/users", map[string]any{
		"username": "traveler",
		"email":    "other@example.com",
		"password": "SecurePass12!@",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetUserNotFound(t *testing.T) {
	_, app := newTestServer(t)

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/v1/users/77", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateUserPartial(t *testing.T) {
	srv, app := newTestServer(t)
	createTestUser(t, srv.db, "traveler")

	resp, err := app.Test(jsonRequest(http.MethodPatch, "/api/v1/users/1", map[string]any{
		"firstName":   "Robin",
		"phoneNumber": "5551234567",
	}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var affected struct {
		Affected int64 `json:"affected"`
	}
	decodeBody(t, resp, &affected)
	assert.Equal(t, int64(1), affected.Affected)

	var user models.User
	require.NoError(t, srv.db.First(&user, 1).Error)
	assert.Equal(t, "Robin", user.FirstName)
	assert.Equal(t, "traveler", user.Username)
}

func TestUpdateUserEmptyBody(t *testing.T) {
	srv, app := newTestServer(t)
	createTestUser(t, srv.db, "traveler")

	resp, err := app.Test(jsonRequest(http.MethodPatch, "/api/v1/users/1", map[string]any{}))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var affected struct {
		Affected int64 `json:"affected"`
	}
	decodeBody(t, resp, &affected)
	assert.Equal(t, int64(0), affected.Affected)
}

func TestDeleteUser(t *testing.T) {
	srv, app := newTestServer(t)
	createTestUser(t, srv.db, "traveler")

	resp, err := app.Test(jsonRequest(http.MethodDelete, "/api/v1/users/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = app.Test(jsonRequest(http.MethodGet, "/api/v1/users/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
