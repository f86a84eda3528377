// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/taibuivan/sixcent/internal/platform/apperr"
	"github.com/taibuivan/sixcent/internal/platform/sec"
	"github.com/taibuivan/sixcent/internal/users/auth"
	"github.com/taibuivan/sixcent/pkg/uuid"
)

// # Service Layer

// Service orchestrates business logic for the authenticated self-service
// surface: profile reads, password changes, and rating submissions.
type Service struct {
	userRepository   auth.UserRepository
	ratingRepository RatingRepository
	logger           *slog.Logger
}

// NewService constructs a new [Service] with its repository dependencies.
func NewService(
	userRepo auth.UserRepository,
	ratingRepo RatingRepository,
	logger *slog.Logger,
) *Service {
	return &Service{
		userRepository:   userRepo,
		ratingRepository: ratingRepo,
		logger:           logger,
	}
}

// # Profile Management

/*
GetProfile retrieves the full private identity of a user.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - *auth.User: The hydrated user profile
  - error: Not found or execution failures
*/
func (service *Service) GetProfile(context context.Context, userID string) (*auth.User, error) {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return nil, fmt.Errorf("account_service_get_profile_failed: %w", err)
	}
	return user, nil
}

/*
ChangePassword rotates the password of an authenticated user.

Description: Verifies the old password with a constant-time comparison
before persisting the new hash. Social-only accounts carry no password
and cannot use this flow.

Parameters:
  - context: context.Context
  - userID: string
  - oldPassword: string
  - newPassword: string

Returns:
  - error: Unauthorized or storage failures
*/
func (service *Service) ChangePassword(context context.Context, userID, oldPassword, newPassword string) error {
	user, err := service.userRepository.FindByID(context, userID)
	if err != nil {
		return err
	}

	if user.PasswordHash == nil || !sec.CheckPasswordHash(oldPassword, *user.PasswordHash) {
		return apperr.Unauthorized("Old password is incorrect")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("account_service_change_password_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, userID, hashedPassword); err != nil {
		return fmt.Errorf("account_service_change_password_update_failed: %w", err)
	}

	service.logger.Info("user_password_changed", slog.String("user_id", userID))

	return nil
}

// # Rating Submission

/*
SubmitRating persists an app rating on behalf of the authenticated user.

Parameters:
  - context: context.Context
  - userID: string
  - numStars: int (within [RatingMinStars, RatingMaxStars])
  - comment: string

Returns:
  - *Rating: The persisted rating
  - error: Storage failures
*/
func (service *Service) SubmitRating(context context.Context, userID string, numStars int, comment string) (*Rating, error) {
	rating := &Rating{
		ID:       uuid.Must(),
		UserID:   userID,
		NumStars: numStars,
		Comment:  comment,
	}

	if err := service.ratingRepository.Create(context, rating); err != nil {
		return nil, fmt.Errorf("account_service_submit_rating_failed: %w", err)
	}

	service.logger.Info("user_rating_submitted",
		slog.String("user_id", userID),
		slog.Int("num_stars", numStars),
	)

	return rating, nil
}
