package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func setupMiniredis(t *testing.T) {
	t.Helper()
	mr := miniredis.RunT(t)
	InitRedis(mr.Addr())
	t.Cleanup(func() { client = nil })
}

func TestAside_FetchesOnMissAndCaches(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	fetches := 0
	var got payload
	err := Aside(ctx, TripKey(7), &got, time.Minute, func() error {
		fetches++
		got = payload{ID: 7, Name: "South Island"}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, "South Island", got.Name)

	// Second read is served from the cache.
	var again payload
	err = Aside(ctx, TripKey(7), &again, time.Minute, func() error {
		fetches++
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, 1, fetches)
	assert.Equal(t, got, again)
}

func TestInvalidateTrip_DropsScheduleToo(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	require.NoError(t, SetJSON(ctx, TripKey(3), payload{ID: 3}, time.Minute))
	require.NoError(t, SetJSON(ctx, ScheduleKey(3), []string{"2024-08-15"}, time.Minute))

	InvalidateTrip(ctx, 3)

	var dest payload
	found, err := GetJSON(ctx, TripKey(3), &dest)
	require.NoError(t, err)
	assert.False(t, found)

	var days []string
	found, err = GetJSON(ctx, ScheduleKey(3), &days)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestGetJSON_NilClientIsMiss(t *testing.T) {
	client = nil
	var dest payload
	found, err := GetJSON(context.Background(), UserKey(1), &dest)
	assert.NoError(t, err)
	assert.False(t, found)
}
