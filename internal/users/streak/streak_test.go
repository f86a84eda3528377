// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package streak

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

/*
TestDecide drives the streak transition function through every rule: no
run, same day, next day, gaps, and a backwards clock.
*/
func TestDecide(t *testing.T) {
	run := &LoginStreak{
		ID:        "run-1",
		UserID:    "user-1",
		StartDate: time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
		NumDays:   6,
	}

	tests := []struct {
		name     string
		latest   *LoginStreak
		day      time.Time
		expected action
	}{
		{"no_run_yet", nil, time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC), actionStart},
		{"same_day", run, time.Date(2026, 8, 25, 23, 59, 0, 0, time.UTC), actionNone},
		{"next_day", run, time.Date(2026, 8, 26, 0, 1, 0, 0, time.UTC), actionExtend},
		{"two_day_gap", run, time.Date(2026, 8, 27, 12, 0, 0, 0, time.UTC), actionStart},
		{"clock_moved_backwards", run, time.Date(2026, 8, 24, 12, 0, 0, 0, time.UTC), actionStart},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Decide(tt.latest, tt.day))
		})
	}
}

/*
TestDaysBetween checks calendar-day arithmetic across time zones and
month boundaries.
*/
func TestDaysBetween(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)

	tests := []struct {
		name     string
		a        time.Time
		b        time.Time
		expected int
	}{
		{
			"same_utc_day",
			time.Date(2026, 8, 25, 1, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 25, 23, 0, 0, 0, time.UTC),
			0,
		},
		{
			"adjacent_days",
			time.Date(2026, 8, 25, 23, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 26, 1, 0, 0, 0, time.UTC),
			1,
		},
		{
			"month_boundary",
			time.Date(2026, 8, 31, 12, 0, 0, 0, time.UTC),
			time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
			1,
		},
		{
			"negative_when_reversed",
			time.Date(2026, 8, 26, 0, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC),
			-1,
		},
		{
			// 08:00 JST on the 26th is 23:00 UTC on the 25th.
			"local_midnight_is_not_utc_midnight",
			time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC),
			time.Date(2026, 8, 26, 8, 0, 0, 0, tokyo),
			0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, daysBetween(tt.a, tt.b))
		})
	}
}

/*
TestDayKey formats Redis marker day keys from the UTC calendar date.
*/
func TestDayKey(t *testing.T) {
	tokyo := time.FixedZone("JST", 9*60*60)

	assert.Equal(t, "2026-08-25", DayKey(time.Date(2026, 8, 25, 23, 59, 59, 0, time.UTC)))
	assert.Equal(t, "2026-08-25", DayKey(time.Date(2026, 8, 26, 8, 0, 0, 0, tokyo)))
}
