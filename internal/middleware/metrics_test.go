package middleware

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitMetricsReturnsOneInstance(t *testing.T) {
	first := InitMetrics("triphive-api")
	require.NotNil(t, first)

	// A second server in the same process must reuse the instance;
	// re-registering the same collectors on the global registry panics.
	var second interface{}
	assert.NotPanics(t, func() {
		second = InitMetrics("triphive-api")
	})
	assert.Same(t, first, second)
}
