// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package streak

import (
	"context"
	"time"
)

// StreakRepository persists login runs.
type StreakRepository interface {

	/*
		Apply performs the read-modify-write for one login day.

		The whole transition (read latest run, decide, extend or insert)
		must be atomic per user: two concurrent logins on adjacent days
		may not both extend the same row.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - day: time.Time (calendar day of the login)

		Returns:
		  - error: Persistence failures
	*/
	Apply(context context.Context, userID string, day time.Time) error

	/*
		FindLatest returns the most recent run for the user.

		Returns:
		  - *LoginStreak: Latest run, or nil when the user has none
		  - error: Persistence failures
	*/
	FindLatest(context context.Context, userID string) (*LoginStreak, error)
}

// SameDayMarker is the fast-path check for repeat logins on one calendar day.
type SameDayMarker interface {
	// MarkDay records the (user, day) pair and reports whether it was
	// already present. The first login of a day returns false.
	MarkDay(context context.Context, userID string, day time.Time) (alreadySeen bool, err error)

	// UnmarkDay removes the (user, day) pair. Callers release a fresh
	// marker when the transactional write behind it fails, so a retry
	// later the same day can still reach the repository.
	UnmarkDay(context context.Context, userID string, day time.Time) error
}
