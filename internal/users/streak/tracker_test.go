// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package streak

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStreakRepository struct {
	applied  []string
	err      error
	failures int
}

func (repo *fakeStreakRepository) Apply(ctx context.Context, userID string, day time.Time) error {
	if repo.failures > 0 {
		repo.failures--
		return errors.New("deadlock detected")
	}
	if repo.err != nil {
		return repo.err
	}
	repo.applied = append(repo.applied, userID)
	return nil
}

func (repo *fakeStreakRepository) FindLatest(ctx context.Context, userID string) (*LoginStreak, error) {
	return nil, nil
}

type fakeDayMarker struct {
	alreadySeen bool
	err         error
	calls       int
	unmarks     int
}

func (marker *fakeDayMarker) MarkDay(ctx context.Context, userID string, day time.Time) (bool, error) {
	marker.calls++
	return marker.alreadySeen, marker.err
}

func (marker *fakeDayMarker) UnmarkDay(ctx context.Context, userID string, day time.Time) error {
	marker.unmarks++
	return nil
}

// memoryDayMarker mimics the SETNX semantics of the Redis marker.
type memoryDayMarker struct {
	seen map[string]bool
}

func newMemoryDayMarker() *memoryDayMarker {
	return &memoryDayMarker{seen: map[string]bool{}}
}

func (marker *memoryDayMarker) MarkDay(ctx context.Context, userID string, day time.Time) (bool, error) {
	key := userID + ":" + DayKey(day)
	if marker.seen[key] {
		return true, nil
	}
	marker.seen[key] = true
	return false, nil
}

func (marker *memoryDayMarker) UnmarkDay(ctx context.Context, userID string, day time.Time) error {
	delete(marker.seen, userID+":"+DayKey(day))
	return nil
}

/*
TestTracker_RecordLogin covers the marker fast path: the first sighting
of a day reaches the repository, a repeat is short-circuited, and a
broken marker degrades to the transactional path.
*/
func TestTracker_RecordLogin(t *testing.T) {
	day := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name          string
		marker        *fakeDayMarker
		expectApplied int
	}{
		{"first_login_of_day", &fakeDayMarker{alreadySeen: false}, 1},
		{"repeat_login_same_day", &fakeDayMarker{alreadySeen: true}, 0},
		{"marker_unavailable", &fakeDayMarker{err: errors.New("connection refused")}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repository := &fakeStreakRepository{}
			tracker := NewTracker(repository, tt.marker, logger)

			err := tracker.RecordLogin(context.Background(), "user-1", day)
			require.NoError(t, err)

			assert.Len(t, repository.applied, tt.expectApplied)
			assert.Equal(t, 1, tt.marker.calls)
		})
	}
}

/*
TestTracker_RecordLogin_MarkerReleasedOnApplyFailure keeps a transient
write failure from burning the day marker: a retry later the same day
must still reach the repository, and only then does the fast path kick
back in.
*/
func TestTracker_RecordLogin_MarkerReleasedOnApplyFailure(t *testing.T) {
	day := time.Date(2026, 8, 25, 9, 0, 0, 0, time.UTC)
	marker := newMemoryDayMarker()
	repository := &fakeStreakRepository{failures: 1}
	tracker := NewTracker(repository, marker, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := tracker.RecordLogin(context.Background(), "user-1", day)
	require.Error(t, err)
	require.Empty(t, repository.applied)

	// The failed day was released, so the retry lands in the repository.
	err = tracker.RecordLogin(context.Background(), "user-1", day)
	require.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, repository.applied)

	// With the day now counted, the fast path short-circuits again.
	err = tracker.RecordLogin(context.Background(), "user-1", day)
	require.NoError(t, err)
	assert.Len(t, repository.applied, 1)
}

/*
TestTracker_RecordLogin_NilMarker takes the transactional path directly
when no Redis marker is wired.
*/
func TestTracker_RecordLogin_NilMarker(t *testing.T) {
	repository := &fakeStreakRepository{}
	tracker := NewTracker(repository, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := tracker.RecordLogin(context.Background(), "user-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, []string{"user-1"}, repository.applied)
}

/*
TestTracker_RecordLogin_RepositoryFailure propagates persistence errors
to the caller.
*/
func TestTracker_RecordLogin_RepositoryFailure(t *testing.T) {
	repository := &fakeStreakRepository{err: errors.New("deadlock detected")}
	tracker := NewTracker(repository, nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	err := tracker.RecordLogin(context.Background(), "user-1", time.Now())
	require.Error(t, err)
}
