// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"
)

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByID returns the account with the given ID.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByID(context context.Context, id string) (*User, error)

	/*
		FindByEmail returns the account with the given email.

		Parameters:
		  - context: context.Context
		  - email: string

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound or database retrieval failures
	*/
	FindByEmail(context context.Context, email string) (*User, error)

	/*
		Create persists a brand-new user account to the storage.

		Duplicate emails surface as apperr.Conflict via the unique
		constraint, which protects concurrent registrations of the
		same address.

		Parameters:
		  - context: context.Context
		  - user: *User

		Returns:
		  - error: apperr.Conflict or persistence failures
	*/
	Create(context context.Context, user *User) error

	/*
		FindOrCreateByFacebookID atomically resolves the account owning
		the external Facebook identity, creating a fresh active account
		on first sight.

		The operation is a single upsert guarded by the unique constraint
		on the external id, so two concurrent first-time logins from the
		same identity can never mint two accounts.

		Parameters:
		  - context: context.Context
		  - facebookID: string (stable external identifier)
		  - displayName: string (username for a newly minted account)

		Returns:
		  - *User: Existing or freshly created entity
		  - error: Persistence failures
	*/
	FindOrCreateByFacebookID(context context.Context, facebookID, displayName string) (*User, error)

	/*
		FindOrCreateByLineID is the LINE twin of FindOrCreateByFacebookID,
		keyed on the unique lineid column.
	*/
	FindOrCreateByLineID(context context.Context, lineID, displayName string) (*User, error)

	/*
		UpdatePassword replaces only the user's password hash.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - newHash: string

		Returns:
		  - error: Persistence failures
	*/
	UpdatePassword(context context.Context, userID, newHash string) error

	/*
		MarkConfirmed activates the account and moves its status to
		[StatusConfirmed] after a successful email confirmation.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Persistence failures
	*/
	MarkConfirmed(context context.Context, userID string) error
}

// # Credential Data Access

// BearerTokenRepository manages opaque session tokens.
//
// Key generation lives inside the store: Create draws a fresh random key
// and retries on the (astronomically rare) unique violation, so a key
// collision never escapes the storage layer.
type BearerTokenRepository interface {

	/*
		Create mints and persists a new bearer token for the user.

		Returns:
		  - *BearerToken: The persisted token including its random key
		  - error: Persistence failures
	*/
	Create(context context.Context, userID string) (*BearerToken, error)

	/*
		FindByKey resolves a presented bearer key.

		Returns:
		  - *BearerToken: Hydrated entity
		  - error: apperr.NotFound when the key is unknown or revoked
	*/
	FindByKey(context context.Context, key string) (*BearerToken, error)

	/*
		Delete removes the token row. Idempotent: deleting a key that
		does not exist is not an error, which makes double-logout safe.
	*/
	Delete(context context.Context, key string) error
}

// ResetTokenRepository manages one-time password-reset tokens.
type ResetTokenRepository interface {
	// Create mints and persists a new reset token for the user.
	Create(context context.Context, userID string) (*ResetToken, error)

	// FindByKey returns apperr.NotFound for unknown keys.
	FindByKey(context context.Context, key string) (*ResetToken, error)

	// Delete removes the token row. Idempotent.
	Delete(context context.Context, key string) error
}

// ConfirmationTokenRepository manages one-time email-confirmation tokens.
type ConfirmationTokenRepository interface {
	// Create mints and persists a new confirmation token for the user.
	Create(context context.Context, userID string) (*ConfirmationToken, error)

	// FindByKey returns apperr.NotFound for unknown keys.
	FindByKey(context context.Context, key string) (*ConfirmationToken, error)

	// Delete removes the token row. Idempotent.
	Delete(context context.Context, key string) error
}

// # Cross-Domain Contracts

// LoginRecorder is implemented by the streak tracker. Every successful
// login (password or social) reports the calendar day it happened on.
type LoginRecorder interface {
	RecordLogin(context context.Context, userID string, today time.Time) error
}
