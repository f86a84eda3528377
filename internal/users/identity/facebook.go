// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
)

// FacebookVerifier validates access tokens against the Facebook Graph API.
type FacebookVerifier struct {
	// profileURL is the Graph API "me" endpoint with the token appended as
	// a query parameter, e.g.
	// "https://graph.facebook.com/me?fields=id,name&access_token=".
	profileURL string
}

// NewFacebookVerifier constructs a verifier for the given Graph endpoint.
func NewFacebookVerifier(profileURL string) *FacebookVerifier {
	return &FacebookVerifier{profileURL: profileURL}
}

/*
Verify resolves a Facebook access token into the profile it belongs to.

Description: Calls the Graph API server-side with the token appended as a
query parameter. Facebook returns 200 with {"id","name"} for live tokens
and a 4xx error document for revoked or fabricated ones.

Parameters:
  - ctx: context.Context
  - accessToken: string (client-supplied OAuth token)

Returns:
  - *Profile: Verified external identity
  - error: ErrVerificationFailed on any failure mode
*/
func (verifier *FacebookVerifier) Verify(ctx context.Context, accessToken string) (*Profile, error) {
	ctx, cancel := context.WithTimeout(ctx, verifyTimeout)
	defer cancel()

	endpoint := verifier.profileURL + url.QueryEscape(accessToken)
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}

	response, err := httpClient.Do(request)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: facebook status %d", ErrVerificationFailed, response.StatusCode)
	}

	var body struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	}
	if err := json.NewDecoder(response.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrVerificationFailed, err)
	}
	if body.ID == "" {
		return nil, fmt.Errorf("%w: facebook response missing id", ErrVerificationFailed)
	}

	return &Profile{
		ExternalID:  body.ID,
		DisplayName: normalizeName(body.Name),
	}, nil
}
