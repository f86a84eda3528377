// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

// # Authenticated Identity

// Principal represents the caller resolved from an opaque bearer token.
//
// # Why not claims?
//
// Bearer tokens in this platform are random database rows, not signed
// payloads. The middleware resolves the presented key against storage once
// per request and carries the result here, so downstream handlers never
// touch the token store themselves.
type Principal struct {
	// UserID is the account that owns the presented token.
	UserID string

	// TokenKey is the raw bearer key the caller presented. Logout needs it
	// to delete exactly the row used for this request.
	TokenKey string
}
