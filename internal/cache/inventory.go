package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	UserKeyPrefix     = "user:%d"
	TripKeyPrefix     = "trip:%d"
	ScheduleKeyPrefix = "trip:%d:schedule"
	FriendsKeyPrefix  = "user:%d:friends"
)

const (
	UserTTL     = 5 * time.Minute
	TripTTL     = 10 * time.Minute
	ScheduleTTL = 10 * time.Minute
	FriendsTTL  = 2 * time.Minute
)

func UserKey(userID uint) string {
	return fmt.Sprintf(UserKeyPrefix, userID)
}

func TripKey(tripID uint) string {
	return fmt.Sprintf(TripKeyPrefix, tripID)
}

func ScheduleKey(tripID uint) string {
	return fmt.Sprintf(ScheduleKeyPrefix, tripID)
}

func FriendsKey(userID uint) string {
	return fmt.Sprintf(FriendsKeyPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateUser(ctx context.Context, userID uint) {
	Invalidate(ctx, UserKey(userID))
	Invalidate(ctx, FriendsKey(userID))
}

func InvalidateTrip(ctx context.Context, tripID uint) {
	Invalidate(ctx, TripKey(tripID))
	Invalidate(ctx, ScheduleKey(tripID))
}
