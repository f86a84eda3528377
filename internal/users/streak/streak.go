// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package streak tracks consecutive-day login runs per user.

A run is a row holding the first day, the most recent day, and the day
count. Logging in on the day after the run's last day extends it; a repeat
login on the same day is a no-op; any other gap (including clock moving
backwards) starts a fresh run.

Architecture:

  - Decide: Pure transition function over the latest run.
  - PostgresStreakRepository: Read-modify-write under a per-user advisory
    transaction lock.
  - DayMarker: Redis SETNX fast path that short-circuits repeat same-day
    logins before they reach Postgres.
  - Tracker: Orchestrates marker and repository; plugged into the auth
    service as its login recorder.
*/
package streak

import "time"

// LoginStreak is one consecutive-day login run.
type LoginStreak struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	NumDays   int       `json:"num_days"`
}

// action is the outcome of applying a login day to the latest run.
type action int

const (
	// actionStart opens a fresh one-day run.
	actionStart action = iota
	// actionExtend advances the latest run's end date by one day.
	actionExtend
	// actionNone means the day is already counted.
	actionNone
)

// Decide computes the transition for a login on the given day.
//
// # Rules
//
//   - No run yet: start a new one.
//   - Day equals the run's end date: already counted.
//   - Day is exactly one after the end date: extend.
//   - Anything else (gaps, backwards clocks): start over.
func Decide(latest *LoginStreak, day time.Time) action {
	if latest == nil {
		return actionStart
	}

	switch daysBetween(latest.EndDate, day) {
	case 0:
		return actionNone
	case 1:
		return actionExtend
	default:
		return actionStart
	}
}

// daysBetween returns the whole calendar days from a to b, negative when
// b precedes a. Both arguments are truncated to their UTC date first.
func daysBetween(a, b time.Time) int {
	return int(truncateToDay(b).Sub(truncateToDay(a)).Hours() / 24)
}

// truncateToDay drops the time-of-day component in UTC.
func truncateToDay(t time.Time) time.Time {
	year, month, day := t.UTC().Date()
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// DayKey formats the UTC calendar day for use in Redis marker keys.
func DayKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
