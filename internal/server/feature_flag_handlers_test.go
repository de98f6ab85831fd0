package server

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"triphive/internal/featureflags"
)

func TestGetFeatureFlags(t *testing.T) {
	srv, app := newTestServer(t)
	srv.featureFlags = featureflags.NewManager("ics_export=on,live_feed=off")

	resp, err := app.Test(jsonRequest(http.MethodGet, "/api/v1/flags", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Raw       map[string]string `json:"raw"`
		Evaluated map[string]bool   `json:"evaluated"`
	}
	decodeBody(t, resp, &body)
	assert.Equal(t, "on", body.Raw["ics_export"])
	assert.True(t, body.Evaluated["ics_export"])
	assert.False(t, body.Evaluated["live_feed"])
}
