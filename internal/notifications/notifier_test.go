package notifications

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTripChannel(t *testing.T) {
	assert.Equal(t, "trips:feed:7", TripChannel(7))
}

func TestNotifierNilClient(t *testing.T) {
	n := NewNotifier(nil)
	assert.NoError(t, n.PublishTripEvent(context.Background(), TripEvent{Type: "event_created", TripID: 1}))
	assert.NoError(t, n.StartTripSubscriber(context.Background(), func(string, string) {}))
}

func TestNotifierRoundTrip(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	n := NewNotifier(rdb)
	received := make(chan string, 1)
	require.NoError(t, n.StartTripSubscriber(ctx, func(channel, payload string) {
		received <- payload
	}))

	// Give the pattern subscription a moment to establish.
	time.Sleep(50 * time.Millisecond)

	err := n.PublishTripEvent(ctx, TripEvent{Type: "event_deleted", TripID: 3, EventID: 12})
	require.NoError(t, err)

	select {
	case payload := <-received:
		var ev TripEvent
		require.NoError(t, json.Unmarshal([]byte(payload), &ev))
		assert.Equal(t, "event_deleted", ev.Type)
		assert.Equal(t, uint(3), ev.TripID)
		assert.Equal(t, uint(12), ev.EventID)
	case <-time.After(2 * time.Second):
		t.Fatal("expected the published event to arrive")
	}
}
