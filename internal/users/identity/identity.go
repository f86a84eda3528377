// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package identity verifies third-party access tokens against their provider.

Each provider (Facebook, LINE) exposes a profile endpoint that accepts the
client-supplied access token and returns the identity it belongs to. The
verifiers call that endpoint server-side, so a token fabricated by the
client never mints an account.

Architecture:

  - Verifier: Provider-agnostic contract consumed by the auth service.
  - FacebookVerifier / LineVerifier: Thin HTTP adapters over the Graph API
    and the LINE profile API.

Any failure (network, non-200, malformed body, missing id) collapses into
[ErrVerificationFailed]; the auth service maps it to a generic 401.
*/
package identity

import (
	"context"
	"errors"
	"net/http"
	"time"

	"golang.org/x/text/unicode/norm"
)

// ErrVerificationFailed is returned for every verification failure mode.
// Callers must not distinguish failure causes in client-visible responses.
var ErrVerificationFailed = errors.New("identity verification failed")

// verifyTimeout caps each upstream profile call.
const verifyTimeout = 5 * time.Second

// Profile is the verified identity returned by a provider.
type Profile struct {
	// ExternalID is the provider-scoped stable user identifier.
	ExternalID string
	// DisplayName is the provider profile name, NFC-normalized.
	DisplayName string
}

// Verifier exchanges a client-supplied access token for a verified [Profile].
type Verifier interface {
	Verify(ctx context.Context, accessToken string) (*Profile, error)
}

// httpClient is the shared transport for provider calls. The per-request
// context carries the deadline, so the client itself has no timeout.
var httpClient = &http.Client{}

// normalizeName returns the NFC form of a provider display name. Provider
// APIs may emit decomposed Unicode for accented names; normalizing here
// keeps username comparisons and storage canonical.
func normalizeName(name string) string {
	return norm.NFC.String(name)
}
