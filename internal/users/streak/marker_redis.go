// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package streak

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/sixcent/internal/platform/constants"
)

// markerTTL keeps day markers around long enough to cover every timezone's
// view of "today" plus slack, while letting Redis reclaim them unattended.
const markerTTL = 48 * time.Hour

// RedisDayMarker implements SameDayMarker on a shared Redis instance.
type RedisDayMarker struct {
	client *redis.Client
}

// NewRedisDayMarker creates a Redis-backed implementation of SameDayMarker.
func NewRedisDayMarker(client *redis.Client) *RedisDayMarker {
	return &RedisDayMarker{client: client}
}

/*
MarkDay records the (user, day) pair with a single SETNX round trip.

Description: SETNX both tests and sets atomically, so concurrent logins
on the same day race safely: exactly one caller observes alreadySeen
false and proceeds to the transactional path.

Parameters:
  - context: context.Context
  - userID: string
  - day: time.Time

Returns:
  - alreadySeen: bool (true when the day was counted before)
  - err: Redis connectivity failures
*/
func (marker *RedisDayMarker) MarkDay(context context.Context, userID string, day time.Time) (bool, error) {
	key := constants.RedisPrefixStreakDay + userID + ":" + DayKey(day)

	stored, err := marker.client.SetNX(context, key, 1, markerTTL).Result()
	if err != nil {
		return false, fmt.Errorf("redis_day_marker_failed: %w", err)
	}

	return !stored, nil
}

/*
UnmarkDay deletes the (user, day) pair.

Parameters:
  - context: context.Context
  - userID: string
  - day: time.Time

Returns:
  - error: Redis connectivity failures
*/
func (marker *RedisDayMarker) UnmarkDay(context context.Context, userID string, day time.Time) error {
	key := constants.RedisPrefixStreakDay + userID + ":" + DayKey(day)

	if err := marker.client.Del(context, key).Err(); err != nil {
		return fmt.Errorf("redis_day_marker_release_failed: %w", err)
	}

	return nil
}
