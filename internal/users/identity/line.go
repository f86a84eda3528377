// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

// LineVerifier validates access tokens against the LINE profile API.
type LineVerifier struct {
	// profileURL is the LINE profile endpoint, e.g.
	// "https://api.line.me/v2/profile". The token travels in the
	// Authorization header, not the URL.
	profileURL string
}

// NewLineVerifier constructs a verifier for the given profile endpoint.
func NewLineVerifier(profileURL string) *LineVerifier {
	return &LineVerifier{profileURL: profileURL}
}

/*
Verify resolves a LINE access token into the profile it belongs to.

Description: Calls the profile endpoint with "Bearer <token>". LINE
returns 200 with {"userId","displayName"} for live tokens and 401 for
revoked or fabricated ones.

Parameters:
  - ctx: context.Context
  - accessToken: string (client-supplied channel token)

Returns:
  - *Profile: Verified external identity
  - error: ErrVerificationFailed on any failure mode
*/
func (verifier *LineVerifier) Verify(ctx context.Context, accessToken string) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, verifier.profileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}
	request.Header.Set("Authorization", "Bearer "+accessToken)

	response, err := httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: line status %d", ErrVerificationFailed, response.StatusCode)
	}

	var body struct {
		UserID      string `json:"userId"`
		DisplayName string `json:"displayName"`
	}
	if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}
	if body.UserID == "" {
		return nil, fmt.Errorf("%w: line response missing userId", ErrVerificationFailed)
	}

	return &Profile{
		ExternalID:  body.UserID,
		DisplayName: normalizeName(body.DisplayName),
	}, nil
}
