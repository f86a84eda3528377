// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/sixcent/internal/platform/apperr"
	"github.com/taibuivan/sixcent/internal/platform/mailer"
	"github.com/taibuivan/sixcent/internal/platform/sec"
	"github.com/taibuivan/sixcent/internal/users/identity"
	"github.com/taibuivan/sixcent/pkg/uuid"
)

// # Service Wiring

// ServiceDeps bundles the collaborators the auth service orchestrates.
type ServiceDeps struct {
	Users              UserRepository
	BearerTokens       BearerTokenRepository
	ResetTokens        ResetTokenRepository
	ConfirmationTokens ConfirmationTokenRepository
	Streaks            LoginRecorder
	Facebook           identity.Verifier
	Line               identity.Verifier
	Mailer             mailer.Enqueuer
	ServerURL          string
	DeepLinkScheme     string
	MailFrom           string
	Logger             *slog.Logger
}

// Service implements user authentication use cases.
//
// # Review Process
//
// This service is critical for security. Any changes to hashing, registration,
// or login logic must be reviewed by the security team.
type Service struct {
	userRepository              UserRepository
	bearerTokenRepository       BearerTokenRepository
	resetTokenRepository        ResetTokenRepository
	confirmationTokenRepository ConfirmationTokenRepository
	loginRecorder               LoginRecorder
	facebookVerifier            identity.Verifier
	lineVerifier                identity.Verifier
	enqueuer                    mailer.Enqueuer
	serverURL                   string
	deepLinkScheme              string
	mailFrom                    string
	logger                      *slog.Logger
}

// NewService constructs a new auth [Service] with necessary dependencies.
func NewService(deps ServiceDeps) *Service {
	return &Service{
		userRepository:              deps.Users,
		bearerTokenRepository:       deps.BearerTokens,
		resetTokenRepository:        deps.ResetTokens,
		confirmationTokenRepository: deps.ConfirmationTokens,
		loginRecorder:               deps.Streaks,
		facebookVerifier:            deps.Facebook,
		lineVerifier:                deps.Line,
		enqueuer:                    deps.Mailer,
		serverURL:                   deps.ServerURL,
		deepLinkScheme:              deps.DeepLinkScheme,
		mailFrom:                    deps.MailFrom,
		logger:                      deps.Logger,
	}
}

// # Transport Payloads

// TokenPayload is the response body for every successful login.
//
// ExpiredTime is advisory only: the server never enforces bearer expiry,
// clients use it to schedule re-login.
type TokenPayload struct {
	AccessToken string    `json:"access_token"`
	ExpiredTime time.Time `json:"expired_time"`
	User        *User     `json:"user"`
}

// ConfirmResult is the response body for a successful email confirmation.
type ConfirmResult struct {
	Email    string `json:"email"`
	DeepLink string `json:"deep_link"`
}

// # Session Issuance

// issueSession mints a bearer token for an authenticated user and records
// the login against their streak. Streak failures are logged and swallowed:
// gamification must never block a login.
func (service *Service) issueSession(context context.Context, user *User) (*TokenPayload, error) {
	token, err := service.bearerTokenRepository.Create(context, user.ID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_token_issue_failed: %w", err)
	}

	if err := service.loginRecorder.RecordLogin(context, user.ID, time.Now()); err != nil {
		service.logger.Warn("login streak recording failed",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()))
	}

	return &TokenPayload{
		AccessToken: token.Key,
		ExpiredTime: token.CreatedAt.Add(BearerTokenTTL),
		User:        user,
	}, nil
}

// # Authentication Flow

/*
Login validates email credentials and issues a bearer token.

Description: Verifies identity with constant-time password comparison.
Unknown email, wrong password, and unconfirmed account all collapse into
one generic 401 so the response never reveals whether an account exists.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *TokenPayload: Transport-ready session payload
  - error: Unauthorized or internal failures
*/
func (service *Service) Login(context context.Context, email, password string) (*TokenPayload, error) {
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		// Only an absent row collapses into the generic 401. Storage
		// failures keep their 500 path so they get logged.
		if appError := apperr.As(err); appError == nil || appError.Code != "NOT_FOUND" {
			return nil, fmt.Errorf("auth_service_login_lookup_failed: %w", err)
		}
		return nil, apperr.Unauthorized("Incorrect email or password")
	}

	// Social-only accounts carry no hash and can never password-login.
	if user.PasswordHash == nil || !sec.CheckPasswordHash(password, *user.PasswordHash) {
		return nil, apperr.Unauthorized("Incorrect email or password")
	}

	// Accounts awaiting email confirmation stay locked out. Same generic
	// message as a credential failure.
	if !user.IsActive {
		return nil, apperr.Unauthorized("Incorrect email or password")
	}

	return service.issueSession(context, user)
}

/*
LoginFacebook authenticates via a Facebook access token.

Description: Verifies the token server-side against the Graph API, then
atomically resolves or creates the account bound to the Facebook identity.
First-time logins mint an active, confirmed account with the profile name
as username.

Parameters:
  - context: context.Context
  - accessToken: string

Returns:
  - *TokenPayload: Transport-ready session payload
  - error: Unauthorized when verification fails, or internal failures
*/
func (service *Service) LoginFacebook(context context.Context, accessToken string) (*TokenPayload, error) {
	profile, err := service.facebookVerifier.Verify(context, accessToken)
	if err != nil {
		return nil, apperr.Unauthorized("Incorrect facebook access token")
	}

	user, err := service.userRepository.FindOrCreateByFacebookID(context, profile.ExternalID, profile.DisplayName)
	if err != nil {
		return nil, fmt.Errorf("auth_service_facebook_login_failed: %w", err)
	}

	return service.issueSession(context, user)
}

/*
LoginLine authenticates via a LINE access token.

Description: LINE twin of [Service.LoginFacebook], keyed on the LINE
user identifier.
*/
func (service *Service) LoginLine(context context.Context, accessToken string) (*TokenPayload, error) {
	profile, err := service.lineVerifier.Verify(context, accessToken)
	if err != nil {
		return nil, apperr.Unauthorized("Incorrect line access token")
	}

	user, err := service.userRepository.FindOrCreateByLineID(context, profile.ExternalID, profile.DisplayName)
	if err != nil {
		return nil, fmt.Errorf("auth_service_line_login_failed: %w", err)
	}

	return service.issueSession(context, user)
}

/*
Logout revokes the presented bearer token.

Description: Idempotent. A key that is already gone still logs out with 204.

Parameters:
  - context: context.Context
  - bearerKey: string

Returns:
  - error: Revocation failures
*/
func (service *Service) Logout(context context.Context, bearerKey string) error {
	if err := service.bearerTokenRepository.Delete(context, bearerKey); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

/*
ResolveToken exchanges a presented bearer key for the authenticated principal.

Description: Backing resolver for the authentication middleware. Unknown or
revoked keys yield a generic 401. Bearer tokens carry no server-side expiry.

Parameters:
  - context: context.Context
  - key: string

Returns:
  - *sec.Principal: Authenticated identity with its session key
  - error: Unauthorized
*/
func (service *Service) ResolveToken(context context.Context, key string) (*sec.Principal, error) {
	token, err := service.bearerTokenRepository.FindByKey(context, key)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid access token")
	}

	return &sec.Principal{UserID: token.UserID, TokenKey: token.Key}, nil
}

// # Registration Flow

/*
Register validates, hashes, and persists a brand new email account.

Description: The account starts inactive in WaitingConfirmation status; the
confirmation email carrying a one-time 24h token is enqueued fire-and-forget,
so a broker outage never fails the registration itself.

Parameters:
  - context: context.Context
  - email: string
  - password: string

Returns:
  - *User: Created entity
  - error: Conflict (if email exists) or storage errors
*/
func (service *Service) Register(context context.Context, email, password string) (*User, error) {

	// Prevent storing plain-text passwords. Default cost is used for balance
	// between security and CPU utilization during registration spikes.
	hashedPassword, err := sec.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	// Time-sortable ID to prevent PG index fragmentation. The unique
	// constraint on email surfaces concurrent duplicates as Conflict.
	user := &User{
		ID:           uuid.Must(),
		Email:        &email,
		PasswordHash: &hashedPassword,
		IsActive:     false,
		UserType:     UserTypeFree,
		Status:       StatusWaitingConfirmation,
	}

	if err := service.userRepository.Create(context, user); err != nil {
		return nil, err
	}

	service.sendConfirmationEmail(context, user)

	return user, nil
}

// sendConfirmationEmail mints a confirmation token and enqueues the
// registration mail. Best-effort: failures are logged and swallowed.
func (service *Service) sendConfirmationEmail(context context.Context, user *User) {
	token, err := service.confirmationTokenRepository.Create(context, user.ID)
	if err != nil {
		service.logger.Error("confirmation token creation failed",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()))
		return
	}

	job := buildConfirmationEmail(service.serverURL, service.mailFrom, *user.Email, token.Key)
	if err := service.enqueuer.Enqueue(context, job); err != nil {
		service.logger.Error("confirmation email enqueue failed",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()))
	}
}

/*
ConfirmEmail consumes a confirmation token and activates the account.

Description: A stale token is deleted the moment it is sighted, then
reported as expired; it can never produce a second, different failure.
The deep link in the result hands the browser back to the mobile app.

Parameters:
  - context: context.Context
  - tokenKey: string

Returns:
  - *ConfirmResult: Confirmed email plus the app deep link
  - error: NotFound, Expired, or storage failures
*/
func (service *Service) ConfirmEmail(context context.Context, tokenKey string) (*ConfirmResult, error) {
	token, err := service.confirmationTokenRepository.FindByKey(context, tokenKey)
	if err != nil {
		return nil, apperr.NotFound("Confirmation token")
	}

	if !IsTokenFresh(token.CreatedAt, time.Now(), ConfirmTokenTTL) {
		if err := service.confirmationTokenRepository.Delete(context, token.Key); err != nil {
			return nil, fmt.Errorf("auth_service_confirm_cleanup_failed: %w", err)
		}
		return nil, apperr.Expired("Confirmation token has expired")
	}

	user, err := service.userRepository.FindByID(context, token.UserID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_confirm_user_lookup_failed: %w", err)
	}

	if err := service.userRepository.MarkConfirmed(context, user.ID); err != nil {
		return nil, fmt.Errorf("auth_service_confirm_activate_failed: %w", err)
	}

	if err := service.confirmationTokenRepository.Delete(context, token.Key); err != nil {
		return nil, fmt.Errorf("auth_service_confirm_consume_failed: %w", err)
	}

	return &ConfirmResult{
		Email:    *user.Email,
		DeepLink: fmt.Sprintf("%s://sixcentapp/confirm/%s", service.deepLinkScheme, token.Key),
	}, nil
}

// # Password Recovery

/*
ForgotPassword initiates the password-reset flow for an email account.

Description: Mints a short one-time reset code (1h TTL) and enqueues the
reset mail. An unknown email is reported as a field-level validation
failure, matching the client contract for this endpoint.

Parameters:
  - context: context.Context
  - email: string

Returns:
  - error: Validation, token creation, or enqueue-side failures
*/
func (service *Service) ForgotPassword(context context.Context, email string) error {
	user, err := service.userRepository.FindByEmail(context, email)
	if err != nil {
		if appError := apperr.As(err); appError == nil || appError.Code != "NOT_FOUND" {
			return fmt.Errorf("auth_service_forgot_lookup_failed: %w", err)
		}
		return apperr.ValidationError("Validation failed",
			apperr.FieldError{Field: FieldEmail, Message: "Email does not exist"})
	}

	token, err := service.resetTokenRepository.Create(context, user.ID)
	if err != nil {
		return fmt.Errorf("auth_service_reset_token_issue_failed: %w", err)
	}

	job := buildForgotPasswordEmail(service.serverURL, service.mailFrom, email, token.Key)
	if err := service.enqueuer.Enqueue(context, job); err != nil {
		service.logger.Error("forgot password email enqueue failed",
			slog.String("user_id", user.ID),
			slog.String("error", err.Error()))
	}

	return nil
}

/*
ResetPassword completes the forgot-password flow.

Description: Consumes the one-time reset code, rehashes, and persists the
new password. Stale codes are deleted on sighting and reported as expired.
Password policy checks happen at the transport layer before this call.

Parameters:
  - context: context.Context
  - tokenKey: string
  - newPassword: string

Returns:
  - *User: The account whose password was rotated
  - error: NotFound, Expired, or update failures
*/
func (service *Service) ResetPassword(context context.Context, tokenKey, newPassword string) (*User, error) {
	token, err := service.resetTokenRepository.FindByKey(context, tokenKey)
	if err != nil {
		return nil, apperr.NotFound("Reset token")
	}

	if !IsTokenFresh(token.CreatedAt, time.Now(), ResetTokenTTL) {
		if err := service.resetTokenRepository.Delete(context, token.Key); err != nil {
			return nil, fmt.Errorf("auth_service_reset_cleanup_failed: %w", err)
		}
		return nil, apperr.Expired("Reset token has expired")
	}

	hashedPassword, err := sec.HashPassword(newPassword)
	if err != nil {
		return nil, fmt.Errorf("auth_service_reset_hash_failed: %w", err)
	}

	if err := service.userRepository.UpdatePassword(context, token.UserID, hashedPassword); err != nil {
		return nil, fmt.Errorf("auth_service_reset_update_failed: %w", err)
	}

	if err := service.resetTokenRepository.Delete(context, token.Key); err != nil {
		return nil, fmt.Errorf("auth_service_reset_consume_failed: %w", err)
	}

	return service.userRepository.FindByID(context, token.UserID)
}
