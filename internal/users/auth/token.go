// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "time"

// # Credential Entities

// BearerToken is the opaque session credential presented on every
// authenticated request.
//
// No expiry is stored: a bearer token lives until the owning user logs out
// and the row is deleted. The `expired_time` reported at login is advisory,
// computed as CreatedAt + [BearerTokenTTL] for client display only. Session
// tokens are revoked by action; one-time tokens are revoked by time.
type BearerToken struct {
	// Key is the random credential itself: 64 lowercase hex characters.
	Key       string    `json:"-"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ResetToken is the one-time password-reset credential.
// Consumed (deleted) on successful reset or upon being found expired.
type ResetToken struct {
	// Key is 10 lowercase hex characters — short enough to retype from an email.
	Key       string    `json:"-"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ConfirmationToken is the one-time email-verification credential created at
// registration. Consumed (deleted) on successful confirmation or upon being
// found expired.
type ConfirmationToken struct {
	// Key is 128 lowercase hex characters, embedded in the confirmation link.
	Key       string    `json:"-"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
}

// # Expiry Policy

// IsTokenFresh reports whether a time-boxed token issued at issuedAt is
// still valid at instant now, given its TTL.
//
// The boundary is inclusive: a token checked exactly at issuedAt+ttl is
// still valid. Only strictly-later instants expire it.
func IsTokenFresh(issuedAt, now time.Time, ttl time.Duration) bool {
	return !now.After(issuedAt.Add(ttl))
}
