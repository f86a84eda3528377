// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/sixcent/internal/platform/middleware"
	"github.com/taibuivan/sixcent/internal/users/auth"
)

// newAuthRouter mounts the auth handler behind the bearer middleware, the
// way the API server wires it.
func newAuthRouter(fixture *serviceFixture) chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.Authenticate(fixture.service))
	auth.NewHandler(fixture.service).Register(router)
	return router
}

func doJSON(t *testing.T, router chi.Router, method, target, body, bearer string) *httptest.ResponseRecorder {
	t.Helper()
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		request.Header.Set("Authorization", "Bearer "+bearer)
	}
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

/*
TestHandler_Register_Validation rejects malformed registrations before
they reach the service.
*/
func TestHandler_Register_Validation(t *testing.T) {
	router := newAuthRouter(newServiceFixture())

	tests := []struct {
		name string
		body string
	}{
		{"malformed_json", `{"email": `},
		{"missing_email", `{"password": "abc123"}`},
		{"invalid_email", `{"email": "not-an-email", "password": "abc123"}`},
		{"missing_password", `{"email": "tai@example.com"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doJSON(t, router, http.MethodPost, "/register", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
		})
	}
}

/*
TestHandler_Register returns the created profile in the success envelope
and surfaces a duplicate as 409.
*/
func TestHandler_Register(t *testing.T) {
	router := newAuthRouter(newServiceFixture())

	recorder := doJSON(t, router, http.MethodPost, "/register",
		`{"email": "tai@example.com", "password": "abc123"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	body := decodeBody(t, recorder)
	data := body["data"].(map[string]any)
	assert.Equal(t, "tai@example.com", data["email"])
	assert.Equal(t, float64(auth.StatusWaitingConfirmation), data["status"])

	recorder = doJSON(t, router, http.MethodPost, "/register",
		`{"email": "tai@example.com", "password": "abc123"}`, "")
	assert.Equal(t, http.StatusConflict, recorder.Code)
	assert.Equal(t, "CONFLICT", decodeBody(t, recorder)["code"])
}

/*
TestHandler_LoginEmail exchanges credentials for a bearer token and maps
bad credentials to a generic 401.
*/
func TestHandler_LoginEmail(t *testing.T) {
	fixture := newServiceFixture()
	fixture.registerConfirmed(t, "tai@example.com", "abc123")
	router := newAuthRouter(fixture)

	recorder := doJSON(t, router, http.MethodPost, "/login/email",
		`{"email": "tai@example.com", "password": "abc123"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	data := decodeBody(t, recorder)["data"].(map[string]any)
	assert.NotEmpty(t, data["access_token"])
	assert.NotEmpty(t, data["expired_time"])
	require.NotNil(t, data["user"])

	recorder = doJSON(t, router, http.MethodPost, "/login/email",
		`{"email": "tai@example.com", "password": "wrong99"}`, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	body := decodeBody(t, recorder)
	assert.Equal(t, "UNAUTHORIZED", body["code"])
	assert.Equal(t, "Incorrect email or password", body["error"])
}

/*
TestHandler_LoginFacebook_MissingToken rejects an empty token before any
Graph API call happens.
*/
func TestHandler_LoginFacebook_MissingToken(t *testing.T) {
	router := newAuthRouter(newServiceFixture())

	recorder := doJSON(t, router, http.MethodPost, "/login/facebook",
		`{"fb_access_token": ""}`, "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

/*
TestHandler_ConfirmEmail serves the browser-facing confirmation link and
hands back the app deep link.
*/
func TestHandler_ConfirmEmail(t *testing.T) {
	fixture := newServiceFixture()
	router := newAuthRouter(fixture)

	recorder := doJSON(t, router, http.MethodPost, "/register",
		`{"email": "tai@example.com", "password": "abc123"}`, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = doJSON(t, router, http.MethodGet, "/confirm/confirm-1", "", "")
	require.Equal(t, http.StatusOK, recorder.Code)

	data := decodeBody(t, recorder)["data"].(map[string]any)
	assert.Equal(t, "tai@example.com", data["email"])
	assert.Equal(t, "ml://sixcentapp/confirm/confirm-1", data["deep_link"])

	recorder = doJSON(t, router, http.MethodGet, "/confirm/confirm-1", "", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

/*
TestHandler_ResetPassword_Policy enforces the password policy on the
recovery flow: 6 to 16 characters with at least one letter, and a
matching confirmation.
*/
func TestHandler_ResetPassword_Policy(t *testing.T) {
	fixture := newServiceFixture()
	fixture.registerConfirmed(t, "tai@example.com", "abc123")
	router := newAuthRouter(fixture)

	tests := []struct {
		name string
		body string
	}{
		{"too_short", `{"reset_token": "reset-1", "password": "ab1", "confirm_password": "ab1"}`},
		{"too_long", `{"reset_token": "reset-1", "password": "abcdefgh123456789", "confirm_password": "abcdefgh123456789"}`},
		{"digits_only", `{"reset_token": "reset-1", "password": "123456", "confirm_password": "123456"}`},
		{"confirm_mismatch", `{"reset_token": "reset-1", "password": "abc123", "confirm_password": "abc124"}`},
		{"missing_token", `{"password": "abc123", "confirm_password": "abc123"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			recorder := doJSON(t, router, http.MethodPost, "/reset-password", tt.body, "")
			assert.Equal(t, http.StatusBadRequest, recorder.Code)
			assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, recorder)["code"])
		})
	}
}

/*
TestHandler_ForgotPassword queues the reset mail for a known address and
reports an unknown one as a field failure.
*/
func TestHandler_ForgotPassword(t *testing.T) {
	fixture := newServiceFixture()
	fixture.registerConfirmed(t, "tai@example.com", "abc123")
	router := newAuthRouter(fixture)

	recorder := doJSON(t, router, http.MethodPost, "/forgot-password",
		`{"email": "tai@example.com"}`, "")
	assert.Equal(t, http.StatusNoContent, recorder.Code)
	assert.Len(t, fixture.outbox.jobs, 2)

	recorder = doJSON(t, router, http.MethodPost, "/forgot-password",
		`{"email": "nobody@example.com"}`, "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, recorder)["code"])
}

/*
TestHandler_Logout revokes the presented session through the bearer
middleware and refuses anonymous calls.
*/
func TestHandler_Logout(t *testing.T) {
	fixture := newServiceFixture()
	fixture.registerConfirmed(t, "tai@example.com", "abc123")
	router := newAuthRouter(fixture)

	recorder := doJSON(t, router, http.MethodPost, "/logout", "", "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)

	payload, err := fixture.service.Login(context.Background(), "tai@example.com", "abc123")
	require.NoError(t, err)

	recorder = doJSON(t, router, http.MethodPost, "/logout", "", payload.AccessToken)
	assert.Equal(t, http.StatusNoContent, recorder.Code)

	// The revoked token no longer authenticates.
	recorder = doJSON(t, router, http.MethodPost, "/logout", "", payload.AccessToken)
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}
