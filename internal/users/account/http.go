// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package account

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sixcent/internal/platform/middleware"
	requestutil "github.com/taibuivan/sixcent/internal/platform/request"
	"github.com/taibuivan/sixcent/internal/platform/respond"
	"github.com/taibuivan/sixcent/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements the authenticated self-service HTTP endpoints.
type Handler struct {
	accountService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{accountService: service}
}

// Register attaches the self-service routes to the given router. All of
// them require bearer authentication.
//
// # Endpoints
//   - GET  /me          : Current user profile.
//   - POST /me/password : In-session password change.
//   - POST /rating      : App rating submission.
func (handler *Handler) Register(router chi.Router) {
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/me", handler.getProfile)
		r.Post("/me/password", handler.changePassword)
		r.Post("/rating", handler.submitRating)
	})
}

// # Request Payloads

type changePasswordRequest struct {
	OldPassword string `json:"old_password"`
	NewPassword string `json:"new_password"`
}

type ratingRequest struct {
	NumStars int    `json:"num_stars"`
	Comment  string `json:"comment"`
}

/*
GetProfile returns the authenticated user's own profile.

GET /me/

Response:
  - 200: User: Full private profile
  - 401: ErrUnauthorized: Missing or invalid bearer token
*/
func (handler *Handler) getProfile(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.accountService.GetProfile(request.Context(), userID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
ChangePassword rotates the authenticated user's password.

POST /me/password/

Request:
  - Body: changePasswordRequest (OldPassword, NewPassword)

Response:
  - 200: Success: Password changed
  - 400: ErrInvalidJSON: Missing fields
  - 401: ErrUnauthorized: Old password incorrect
*/
func (handler *Handler) changePassword(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input changePasswordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldOldPassword, input.OldPassword).
		Required(FieldNewPassword, input.NewPassword)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.accountService.ChangePassword(request.Context(), userID, input.OldPassword, input.NewPassword); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, map[string]string{
		FieldMessage: "Password changed successfully",
	})
}

/*
SubmitRating records an app rating from the authenticated user.

POST /rating/

Request:
  - Body: ratingRequest (NumStars 1-5, Comment may be empty)

Response:
  - 200: Rating: The persisted rating
  - 400: ErrInvalidJSON: Stars outside the 1-5 range
  - 401: ErrUnauthorized: Missing or invalid bearer token
*/
func (handler *Handler) submitRating(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input ratingRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Range(FieldNumStars, input.NumStars, RatingMinStars, RatingMaxStars)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	rating, err := handler.accountService.SubmitRating(request.Context(), userID, input.NumStars, input.Comment)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, rating)
}
