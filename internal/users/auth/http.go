// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/sixcent/internal/platform/middleware"
	requestutil "github.com/taibuivan/sixcent/internal/platform/request"
	"github.com/taibuivan/sixcent/internal/platform/respond"
	"github.com/taibuivan/sixcent/internal/platform/validate"
)

// # Definitions & Constructors

// Handler implements authentication-related HTTP endpoints.
//
// # Scope
//
// This handler manages everything related to the account lifecycle entry
// points (Registration, Logins, Confirmation, Password Recovery).
type Handler struct {
	authService *Service
}

// NewHandler constructs a new [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{authService: service}
}

// Register attaches the authentication routes to the given router.
//
// # Endpoints
//   - POST /login/email    : Email + password login.
//   - POST /login/facebook : Facebook token login.
//   - POST /login/line     : LINE token login.
//   - POST /register       : Creates a new account.
//   - GET  /confirm/{token}: Email confirmation callback.
func (handler *Handler) Register(router chi.Router) {

	// Public endpoints
	router.Post("/login/email", handler.loginEmail)
	router.Post("/login/facebook", handler.loginFacebook)
	router.Post("/login/line", handler.loginLine)
	router.Post("/register", handler.register)
	router.Get("/confirm/{token}", handler.confirmEmail)
	router.Post("/forgot-password", handler.forgotPassword)
	router.Post("/reset-password", handler.resetPassword)

	// Protected endpoints
	router.Group(func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Post("/logout", handler.logout)
	})
}

// # Request Payloads

type loginEmailRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginFacebookRequest struct {
	FBAccessToken string `json:"fb_access_token"`
}

type loginLineRequest struct {
	LineAccessToken string `json:"line_access_token"`
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	ResetToken      string `json:"reset_token"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

/*
LoginEmail authenticates with email credentials and issues a bearer token.

POST /login/email/

Request:
  - Body: loginEmailRequest (Email, Password)

Response:
  - 200: TokenPayload: Access token, advisory expiry, and user profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 401: ErrUnauthorized: Incorrect email or password
*/
func (handler *Handler) loginEmail(writer http.ResponseWriter, request *http.Request) {
	var input loginEmailRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	payload, err := handler.authService.Login(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, payload)
}

/*
LoginFacebook authenticates with a Facebook access token.

POST /login/facebook/

Request:
  - Body: loginFacebookRequest (FBAccessToken)

Response:
  - 200: TokenPayload: Access token, advisory expiry, and user profile
  - 400: ErrInvalidJSON: Missing token
  - 401: ErrUnauthorized: Token rejected by the Graph API
*/
func (handler *Handler) loginFacebook(writer http.ResponseWriter, request *http.Request) {
	var input loginFacebookRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.FBAccessToken == "" {
		respond.Error(writer, request, validate.RequiredError(FieldFBAccessToken, "This field is required"))
		return
	}

	payload, err := handler.authService.LoginFacebook(request.Context(), input.FBAccessToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, payload)
}

/*
LoginLine authenticates with a LINE access token.

POST /login/line/

Request:
  - Body: loginLineRequest (LineAccessToken)

Response:
  - 200: TokenPayload: Access token, advisory expiry, and user profile
  - 400: ErrInvalidJSON: Missing token
  - 401: ErrUnauthorized: Token rejected by the LINE profile API
*/
func (handler *Handler) loginLine(writer http.ResponseWriter, request *http.Request) {
	var input loginLineRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	if input.LineAccessToken == "" {
		respond.Error(writer, request, validate.RequiredError(FieldLineAccessToken, "This field is required"))
		return
	}

	payload, err := handler.authService.LoginLine(request.Context(), input.LineAccessToken)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, payload)
}

/*
Register handles the creation of a new email account.

POST /register/

Description: Validates input, persists an inactive account awaiting email
confirmation, and triggers the confirmation mail.

Request:
  - Body: registerRequest (Email, Password)

Response:
  - 200: User: Created user profile
  - 400: ErrInvalidJSON: Bad input or validation failure
  - 409: ErrConflict: Email already exists
*/
func (handler *Handler) register(writer http.ResponseWriter, request *http.Request) {
	var input registerRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).
		Email(FieldEmail, input.Email).
		Required(FieldPassword, input.Password)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.Register(request.Context(), input.Email, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
ConfirmEmail consumes the emailed confirmation token.

GET /confirm/{token}/

Description: Activates the account bound to the token and hands back the
deep link that returns the browser to the mobile app.

Response:
  - 200: ConfirmResult: Confirmed email and app deep link
  - 400: ErrExpired: Token past its 24h window (consumed on sighting)
  - 404: ErrNotFound: Unknown token
*/
func (handler *Handler) confirmEmail(writer http.ResponseWriter, request *http.Request) {
	tokenKey := requestutil.Param(request, "token")
	if tokenKey == "" {
		respond.Error(writer, request, validate.RequiredError(FieldToken, "This field is required"))
		return
	}

	result, err := handler.authService.ConfirmEmail(request.Context(), tokenKey)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
ForgotPassword initiates the password recovery flow.

POST /forgot-password/

Description: Emails a one-time reset code to the account. Unknown emails
are reported as a field-level validation failure.

Request:
  - Body: forgotPasswordRequest (Email)

Response:
  - 204: No Content: Reset mail queued
  - 400: ErrInvalidJSON: Invalid or unknown email
*/
func (handler *Handler) forgotPassword(writer http.ResponseWriter, request *http.Request) {
	var input forgotPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldEmail, input.Email).Email(FieldEmail, input.Email)

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.ForgotPassword(request.Context(), input.Email); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
ResetPassword completes the password recovery flow.

POST /reset-password/

Description: Validates the new password policy, consumes the reset code,
and rotates the stored hash.

Request:
  - Body: resetPasswordRequest (ResetToken, Password, ConfirmPassword)

Response:
  - 200: User: Account whose password was rotated
  - 400: ErrInvalidJSON: Policy violation or expired token
  - 404: ErrNotFound: Unknown reset token
*/
func (handler *Handler) resetPassword(writer http.ResponseWriter, request *http.Request) {
	var input resetPasswordRequest

	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, validate.ErrInvalidJSON)
		return
	}

	validator := &validate.Validator{}
	validator.Required(FieldResetToken, input.ResetToken).
		Required(FieldPassword, input.Password).
		MinLen(FieldPassword, input.Password, PasswordMinLen).
		MaxLen(FieldPassword, input.Password, PasswordMaxLen).
		ContainsLetter(FieldPassword, input.Password).
		Required(FieldConfirmPassword, input.ConfirmPassword).
		Equals(FieldConfirmPassword, input.ConfirmPassword, input.Password, "Confirm password must equal password")

	if err := validator.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	user, err := handler.authService.ResetPassword(request.Context(), input.ResetToken, input.Password)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, user)
}

/*
Logout revokes the presented bearer token.

POST /logout/

Description: Deletes the token row backing the current session. Idempotent.

Response:
  - 204: No Content: Session terminated
  - 401: ErrUnauthorized: Missing or invalid bearer token
*/
func (handler *Handler) logout(writer http.ResponseWriter, request *http.Request) {
	principal, err := requestutil.RequiredPrincipal(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.authService.Logout(request.Context(), principal.TokenKey); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}
