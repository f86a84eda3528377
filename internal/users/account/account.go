// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package account implements the authenticated self-service surface.

Everything here runs behind bearer authentication: profile retrieval,
in-session password change, and app-store rating submission. Unlike the
auth package it never mints or consumes credentials, it only acts on the
already-resolved principal.
*/
package account

import (
	"context"
	"time"
)

// Rating is one user-submitted app rating.
type Rating struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	NumStars  int       `json:"num_stars"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"-"`
}

// Rating bounds, app-store convention.
const (
	RatingMinStars = 1
	RatingMaxStars = 5
)

// RatingRepository persists submitted ratings.
type RatingRepository interface {

	/*
		Create persists a new rating row.

		Parameters:
		  - context: context.Context
		  - rating: *Rating

		Returns:
		  - error: Persistence failures
	*/
	Create(context context.Context, rating *Rating) error
}

// Field identifiers used in request payloads and validation errors.
const (
	FieldOldPassword = "old_password"
	FieldNewPassword = "new_password"
	FieldNumStars    = "num_stars"
	FieldComment     = "comment"
	FieldMessage     = "message"
)
