// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sixcent/internal/platform/ctxutil"
	"github.com/taibuivan/sixcent/internal/platform/sec"
	"github.com/taibuivan/sixcent/internal/users/account"
)

// authenticatedAs injects a principal the way the bearer middleware does,
// so handler tests can skip token resolution.
func authenticatedAs(userID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			ctx := ctxutil.WithPrincipal(request.Context(), &sec.Principal{
				UserID:   userID,
				TokenKey: "bearer-1",
			})
			next.ServeHTTP(writer, request.WithContext(ctx))
		})
	}
}

func newAccountRouter(users *fakeUserRepository, ratings *fakeRatingRepository, userID string) chi.Router {
	service := account.NewService(users, ratings,
		slog.New(slog.NewTextHandler(io.Discard, nil)))

	router := chi.NewRouter()
	if userID != "" {
		router.Use(authenticatedAs(userID))
	}
	account.NewHandler(service).Register(router)
	return router
}

func doJSON(t *testing.T, router chi.Router, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

/*
TestHandler_GetProfile serves the caller's own profile and keeps the
password hash out of the body.
*/
func TestHandler_GetProfile(t *testing.T) {
	users := &fakeUserRepository{user: emailUser(t, "abc123")}
	router := newAccountRouter(users, &fakeRatingRepository{}, "user-1")

	recorder := doJSON(t, router, http.MethodGet, "/me", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	data := body["data"].(map[string]any)
	assert.Equal(t, "tai@example.com", data["email"])
	assert.NotContains(t, recorder.Body.String(), "passwordhash")
	assert.NotContains(t, recorder.Body.String(), "password_hash")
}

/*
TestHandler_GetProfile_Anonymous blocks unauthenticated access to the
self-service surface.
*/
func TestHandler_GetProfile_Anonymous(t *testing.T) {
	router := newAccountRouter(&fakeUserRepository{}, &fakeRatingRepository{}, "")

	recorder := doJSON(t, router, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHandler_ChangePassword confirms the in-session rotation responds with
the success message and rejects a wrong old password with 401.
*/
func TestHandler_ChangePassword(t *testing.T) {
	users := &fakeUserRepository{user: emailUser(t, "abc123")}
	router := newAccountRouter(users, &fakeRatingRepository{}, "user-1")

	recorder := doJSON(t, router, http.MethodPost, "/me/password",
		`{"old_password": "abc123", "new_password": "newpass9"}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Password changed successfully")

	recorder = doJSON(t, router, http.MethodPost, "/me/password",
		`{"old_password": "newpass9x", "new_password": "another1"}`)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

/*
TestHandler_ChangePassword_Validation requires both password fields.
*/
func TestHandler_ChangePassword_Validation(t *testing.T) {
	users := &fakeUserRepository{user: emailUser(t, "abc123")}
	router := newAccountRouter(users, &fakeRatingRepository{}, "user-1")

	tests := []struct {
		name string
		body string
	}{
		{"missing_old", `{"new_password": "newpass9"}`},
		{"missing_new", `{"old_password": "abc123"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doJSON(t, router, http.MethodPost, "/me/password", tt.body)
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

/*
TestHandler_SubmitRating accepts stars within 1 to 5 and rejects values
outside the range; a blank comment is fine.
*/
func TestHandler_SubmitRating(t *testing.T) {
	ratings := &fakeRatingRepository{}
	router := newAccountRouter(&fakeUserRepository{}, ratings, "user-1")

	recorder := doJSON(t, router, http.MethodPost, "/rating", `{"num_stars": 4, "comment": ""}`)
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Len(t, ratings.created, 1)
	assert.Equal(t, "user-1", ratings.created[0].UserID)
	assert.Equal(t, 4, ratings.created[0].NumStars)

	for _, body := range []string{`{"num_stars": 0}`, `{"num_stars": 6}`} {
		recorder = doJSON(t, router, http.MethodPost, "/rating", body)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	}
	assert.Len(t, ratings.created, 1)
}
