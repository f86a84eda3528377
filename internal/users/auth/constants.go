// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Credential Constraints

const (
	// BearerKeyBytes is the number of random bytes behind a bearer token
	// key (64 hex characters on the wire).
	BearerKeyBytes = 32

	// ResetKeyBytes is the number of random bytes behind a password reset
	// key (10 hex characters on the wire).
	ResetKeyBytes = 5

	// ConfirmKeyBytes is the number of random bytes behind an email
	// confirmation key (128 hex characters on the wire).
	ConfirmKeyBytes = 64

	// BearerTokenTTL is the advisory lifetime reported to clients in the
	// login payload. It is never enforced server-side: bearer tokens are
	// revoked only by logout.
	BearerTokenTTL = 30 * 24 * time.Hour

	// ResetTokenTTL is the duration a password reset token remains valid.
	// Short-lived (1 hour) for security.
	ResetTokenTTL = 1 * time.Hour

	// ConfirmTokenTTL is the duration an email confirmation token remains
	// valid. Long-lived (24 hours) as users might not check email immediately.
	ConfirmTokenTTL = 24 * time.Hour
)

// # Password Policy

// Bounds for the reset-password flow, matching the mobile client's form.
const (
	PasswordMinLen = 6
	PasswordMaxLen = 16
)
