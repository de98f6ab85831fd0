package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"runtime/debug"
	"strconv"

	"github.com/redis/go-redis/v9"
)

// Notifier publishes trip feed events into Redis channels so every
// server instance sees them. A nil Redis client disables publishing.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// TripEvent is the payload pushed to a trip's feed when its schedule
// changes.
type TripEvent struct {
	Type    string `json:"type"`
	TripID  uint   `json:"tripId"`
	EventID uint   `json:"eventId,omitempty"`
	ActorID uint   `json:"actorId,omitempty"`
}

// PublishTripEvent sends a trip change event to the trip's channel.
func (n *Notifier) PublishTripEvent(ctx context.Context, event TripEvent) error {
	if n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return n.rdb.Publish(ctx, TripChannel(event.TripID), string(payload)).Err()
}

// StartTripSubscriber subscribes to the trips:feed:* pattern and calls
// onMessage for each incoming message.
func (n *Notifier) StartTripSubscriber(
	ctx context.Context, onMessage func(channel string, payload string),
) error {
	if n.rdb == nil {
		return nil
	}
	sub := n.rdb.PSubscribe(ctx, "trips:feed:*")
	ch := sub.Channel()

	go func() {
		defer func() { _ = sub.Close() }()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					return
				}
				func() {
					defer func() {
						if r := recover(); r != nil {
							log.Printf("PANIC in TripSubscriber: %v\n%s", r, debug.Stack())
						}
					}()
					onMessage(msg.Channel, msg.Payload)
				}()
			}
		}
	}()

	return nil
}

// TripChannel derives the Redis channel name for a trip's feed.
func TripChannel(tripID uint) string {
	return "trips:feed:" + strconv.FormatUint(uint64(tripID), 10)
}
