// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements the user identity and credential lifecycle layer.

It defines the core domain entities (User and the three token kinds) and the
logic for authentication, registration, email confirmation, and password
recovery.

# Architecture

This layer is the "Truth" of the system. Entities defined here have no
external dependencies and encapsulate all business rules related to user
identity.
*/
package auth

import "time"

// # Enumerations

// UserType is the subscription tier of an account. It is stored but carries
// no authorization semantics yet.
type UserType int

const (
	UserTypeFree    UserType = 1
	UserTypePremium UserType = 2
	UserTypeExpired UserType = 3
)

// Status tracks the email confirmation state of an account.
type Status int

const (
	// StatusWaitingConfirmation marks an account created through email
	// registration whose confirmation link has not been opened yet.
	StatusWaitingConfirmation Status = 1

	// StatusConfirmed marks an account that may authenticate. Social-login
	// accounts are born confirmed.
	StatusConfirmed Status = 2
)

// # Domain Entities

// User represents a registered member of the Sixcent platform.
//
// # Identity Invariant
//
// At least one of Email, FacebookID, LineID is always set. Email and
// PasswordHash are nil for social-only accounts; FacebookID/LineID are nil
// for email-registered accounts until the user links a provider.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        *string   `json:"email"`
	PasswordHash *string   `json:"-"` // Explicitly omitted from JSON for security.
	IsActive     bool      `json:"-"` // Internal gate; surfaced indirectly via Status.
	UserType     UserType  `json:"user_type"`
	Status       Status    `json:"status"`
	FacebookID   *string   `json:"facebook_id"`
	LineID       *string   `json:"line_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// # Field Identifiers

// Global field names for validation and identity mapping in the authentication domain.
const (
	FieldEmail           = "email"
	FieldPassword        = "password"
	FieldConfirmPassword = "confirm_password"
	FieldResetToken      = "reset_token"
	FieldFBAccessToken   = "fb_access_token"
	FieldLineAccessToken = "line_access_token"
	FieldToken           = "token"
)
