// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package streak

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/sixcent/pkg/uuid"
)

// PostgresStreakRepository implements the StreakRepository interface using pgx.
type PostgresStreakRepository struct {
	pool *pgxpool.Pool
}

// NewStreakRepository creates a new PostgreSQL implementation of StreakRepository.
func NewStreakRepository(pool *pgxpool.Pool) *PostgresStreakRepository {
	return &PostgresStreakRepository{pool: pool}
}

const latestStreakQuery = `
	SELECT id, userid, startdate, enddate, numdays
	FROM users.loginstreak
	WHERE userid = $1
	ORDER BY enddate DESC
	LIMIT 1`

/*
Apply performs the atomic streak transition for one login day.

Description: Runs inside a single transaction under a per-user advisory
lock. The advisory lock also covers the case where the user has no run
yet, which a plain SELECT FOR UPDATE cannot serialize. The lock releases
automatically at commit or rollback.

Parameters:
  - context: context.Context
  - userID: string
  - day: time.Time

Returns:
  - error: Transaction or persistence failures
*/
func (repository *PostgresStreakRepository) Apply(context context.Context, userID string, day time.Time) error {
	transaction, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres_streak_repo_begin_failed: %w", err)
	}
	defer transaction.Rollback(context)

	const lockQuery = "SELECT pg_advisory_xact_lock(hashtextextended('streak:' || $1, 0))"
	if _, err := transaction.Exec(context, lockQuery, userID); err != nil {
		return fmt.Errorf("postgres_streak_repo_lock_failed: %w", err)
	}

	latest, err := scanLatest(transaction.QueryRow(context, latestStreakQuery, userID))
	if err != nil {
		return err
	}

	day = truncateToDay(day)
	switch Decide(latest, day) {
	case actionNone:
		return transaction.Commit(context)

	case actionExtend:
		const extendQuery = `
			UPDATE users.loginstreak
			SET enddate = $2, numdays = numdays + 1
			WHERE id = $1`
		if _, err := transaction.Exec(context, extendQuery, latest.ID, day); err != nil {
			return fmt.Errorf("postgres_streak_repo_extend_failed: %w", err)
		}

	default:
		const startQuery = `
			INSERT INTO users.loginstreak (id, userid, startdate, enddate, numdays)
			VALUES ($1, $2, $3, $3, 1)`
		if _, err := transaction.Exec(context, startQuery, uuid.Must(), userID, day); err != nil {
			return fmt.Errorf("postgres_streak_repo_start_failed: %w", err)
		}
	}

	if err := transaction.Commit(context); err != nil {
		return fmt.Errorf("postgres_streak_repo_commit_failed: %w", err)
	}

	return nil
}

/*
FindLatest returns the user's most recent run, or nil when none exists.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *LoginStreak: Latest run or nil
  - error: Query failures
*/
func (repository *PostgresStreakRepository) FindLatest(context context.Context, userID string) (*LoginStreak, error) {
	return scanLatest(repository.pool.QueryRow(context, latestStreakQuery, userID))
}

// scanLatest hydrates one run row, converting no-rows into a nil run.
func scanLatest(row pgx.Row) (*LoginStreak, error) {
	run := &LoginStreak{}
	err := row.Scan(&run.ID, &run.UserID, &run.StartDate, &run.EndDate, &run.NumDays)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("postgres_streak_repo_scan_failed: %w", err)
	}
	return run, nil
}
