// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package streak

import (
	"context"
	"log/slog"
	"time"
)

// Tracker records logins against streak runs. It satisfies the auth
// service's login recorder contract.
type Tracker struct {
	repository StreakRepository
	marker     SameDayMarker
	logger     *slog.Logger
}

// NewTracker constructs a [Tracker]. The marker may be nil, in which case
// every login takes the transactional path.
func NewTracker(repository StreakRepository, marker SameDayMarker, logger *slog.Logger) *Tracker {
	return &Tracker{repository: repository, marker: marker, logger: logger}
}

/*
RecordLogin counts a login toward the user's streak.

Description: The Redis day marker short-circuits repeat logins within one
calendar day. Marker unavailability degrades to the transactional path,
which is idempotent per day on its own; it never fails the login.

Parameters:
  - context: context.Context
  - userID: string
  - today: time.Time

Returns:
  - error: Persistence failures from the transactional path
*/
func (tracker *Tracker) RecordLogin(context context.Context, userID string, today time.Time) error {
	freshMark := false
	if tracker.marker != nil {
		alreadySeen, err := tracker.marker.MarkDay(context, userID, today)
		switch {
		case err != nil:
			tracker.logger.Warn("streak day marker unavailable, falling through",
				slog.String("user_id", userID),
				slog.String("error", err.Error()))
		case alreadySeen:
			return nil
		default:
			freshMark = true
		}
	}

	if err := tracker.repository.Apply(context, userID, today); err != nil {
		// Release the marker set above, or the failed day would be
		// short-circuited on every retry until the TTL expires.
		if freshMark {
			if unmarkErr := tracker.marker.UnmarkDay(context, userID, today); unmarkErr != nil {
				tracker.logger.Warn("streak day marker release failed",
					slog.String("user_id", userID),
					slog.String("error", unmarkErr.Error()))
			}
		}
		return err
	}

	return nil
}
