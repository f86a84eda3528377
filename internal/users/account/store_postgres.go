// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRatingRepository implements the RatingRepository interface using pgx.
type PostgresRatingRepository struct {
	pool *pgxpool.Pool
}

// NewRatingRepository creates a new PostgreSQL implementation of RatingRepository.
func NewRatingRepository(pool *pgxpool.Pool) *PostgresRatingRepository {
	return &PostgresRatingRepository{pool: pool}
}

/*
Create persists a new rating record into the users.rating table.

Parameters:
  - context: context.Context
  - rating: *Rating

Returns:
  - error: Constraint violations or connectivity errors
*/
func (repository *PostgresRatingRepository) Create(context context.Context, rating *Rating) error {
	const query = `
		INSERT INTO users.rating (id, userid, numstars, comment, createdat)
		VALUES ($1, $2, $3, $4, $5)`

	if rating.CreatedAt.IsZero() {
		rating.CreatedAt = time.Now()
	}

	_, err := repository.pool.Exec(context, query,
		rating.ID,
		rating.UserID,
		rating.NumStars,
		rating.Comment,
		rating.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("postgres_rating_repo_create_failed: %w", err)
	}

	return nil
}
