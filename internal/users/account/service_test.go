// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sixcent/internal/platform/apperr"
	"github.com/taibuivan/sixcent/internal/platform/sec"
	"github.com/taibuivan/sixcent/internal/users/account"
	"github.com/taibuivan/sixcent/internal/users/auth"
)

// fakeUserRepository serves the two methods the account service touches;
// the rest of the auth contract is unused here.
type fakeUserRepository struct {
	user       *auth.User
	newHash    string
	hashUpdate bool
}

func (repo *fakeUserRepository) FindByID(ctx context.Context, id string) (*auth.User, error) {
	if repo.user == nil || repo.user.ID != id {
		return nil, apperr.NotFound("User")
	}
	copied := *repo.user
	return &copied, nil
}

func (repo *fakeUserRepository) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	return nil, apperr.NotFound("User")
}

func (repo *fakeUserRepository) Create(ctx context.Context, user *auth.User) error {
	return nil
}

func (repo *fakeUserRepository) FindOrCreateByFacebookID(ctx context.Context, facebookID, displayName string) (*auth.User, error) {
	return nil, nil
}

func (repo *fakeUserRepository) FindOrCreateByLineID(ctx context.Context, lineID, displayName string) (*auth.User, error) {
	return nil, nil
}

func (repo *fakeUserRepository) UpdatePassword(ctx context.Context, userID, newHash string) error {
	repo.newHash = newHash
	repo.hashUpdate = true
	return nil
}

func (repo *fakeUserRepository) MarkConfirmed(ctx context.Context, userID string) error {
	return nil
}

type fakeRatingRepository struct {
	created []*account.Rating
}

func (repo *fakeRatingRepository) Create(ctx context.Context, rating *account.Rating) error {
	repo.created = append(repo.created, rating)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func emailUser(t *testing.T, password string) *auth.User {
	t.Helper()
	hash, err := sec.HashPassword(password)
	require.NoError(t, err)
	email := "tai@example.com"
	return &auth.User{
		ID:           "user-1",
		Email:        &email,
		PasswordHash: &hash,
		IsActive:     true,
		Status:       auth.StatusConfirmed,
	}
}

/*
TestService_GetProfile returns the hydrated user for a known ID and a
wrapped not-found for an unknown one.
*/
func TestService_GetProfile(t *testing.T) {
	users := &fakeUserRepository{user: emailUser(t, "abc123")}
	service := account.NewService(users, &fakeRatingRepository{}, discardLogger())

	user, err := service.GetProfile(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)

	_, err = service.GetProfile(context.Background(), "nobody")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_ChangePassword rotates the hash when the old password
verifies and stores something other than the plaintext.
*/
func TestService_ChangePassword(t *testing.T) {
	users := &fakeUserRepository{user: emailUser(t, "abc123")}
	service := account.NewService(users, &fakeRatingRepository{}, discardLogger())

	err := service.ChangePassword(context.Background(), "user-1", "abc123", "newpass9")
	require.NoError(t, err)

	require.True(t, users.hashUpdate)
	assert.NotEqual(t, "newpass9", users.newHash)
	assert.True(t, sec.CheckPasswordHash("newpass9", users.newHash))
}

/*
TestService_ChangePassword_Rejections refuses a wrong old password and a
social-only account that has no password at all.
*/
func TestService_ChangePassword_Rejections(t *testing.T) {
	facebookID := "fb-42"
	socialUser := &auth.User{
		ID:         "user-1",
		FacebookID: &facebookID,
		IsActive:   true,
		Status:     auth.StatusConfirmed,
	}

	tests := []struct {
		name        string
		user        *auth.User
		oldPassword string
	}{
		{"wrong_old_password", emailUser(t, "abc123"), "not-it"},
		{"social_only_account", socialUser, "anything"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := &fakeUserRepository{user: tt.user}
			service := account.NewService(users, &fakeRatingRepository{}, discardLogger())

			err := service.ChangePassword(context.Background(), "user-1", tt.oldPassword, "newpass9")
			require.Error(t, err)

			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "UNAUTHORIZED", ae.Code)
			assert.Equal(t, "Old password is incorrect", ae.Message)
			assert.False(t, users.hashUpdate)
		})
	}
}

/*
TestService_SubmitRating persists the rating with a fresh ID bound to the
submitting user.
*/
func TestService_SubmitRating(t *testing.T) {
	ratings := &fakeRatingRepository{}
	service := account.NewService(&fakeUserRepository{}, ratings, discardLogger())

	rating, err := service.SubmitRating(context.Background(), "user-1", 5, "great app")
	require.NoError(t, err)

	assert.NotEmpty(t, rating.ID)
	assert.Equal(t, "user-1", rating.UserID)
	assert.Equal(t, 5, rating.NumStars)
	assert.Equal(t, "great app", rating.Comment)

	require.Len(t, ratings.created, 1)
	assert.Equal(t, rating, ratings.created[0])
}
