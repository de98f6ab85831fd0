package notifications

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubRegisterAndBroadcast(t *testing.T) {
	hub := NewHub()

	c1, err := hub.Register(7, 1, nil)
	require.NoError(t, err)
	c2, err := hub.Register(7, 2, nil)
	require.NoError(t, err)
	other, err := hub.Register(9, 3, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, hub.Watchers(7))
	assert.Equal(t, 1, hub.Watchers(9))

	hub.Broadcast(7, `{"type":"event_created","tripId":7}`)

	for _, c := range []*Client{c1, c2} {
		select {
		case msg := <-c.Send:
			assert.Contains(t, string(msg), "event_created")
		case <-time.After(time.Second):
			t.Fatal("expected a broadcast message")
		}
	}

	select {
	case <-other.Send:
		t.Fatal("trip 9 client should not receive trip 7 broadcasts")
	default:
	}
}

func TestHubUnregister(t *testing.T) {
	hub := NewHub()

	c, err := hub.Register(7, 1, nil)
	require.NoError(t, err)
	require.Equal(t, 1, hub.Watchers(7))

	hub.UnregisterClient(c)
	assert.Equal(t, 0, hub.Watchers(7))

	// Unregistering twice is a no-op.
	hub.UnregisterClient(c)
	assert.Equal(t, 0, hub.Watchers(7))
}

func TestHubBroadcastToEmptyFeed(t *testing.T) {
	hub := NewHub()
	hub.Broadcast(42, "nobody home")
}
