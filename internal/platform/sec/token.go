// Copyright (c) 2026 Sixcent. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package sec

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// # Opaque Tokens

// GenerateSecureToken returns a cryptographically secure random token,
// hex-encoded. The resulting string is twice numBytes characters long.
//
// # Parameters
//   - numBytes: Number of random bytes to draw (e.g. 32 → 64 hex chars).
//
// # Returns
//   - A lowercase hex string, or an error if the system entropy source fails.
func GenerateSecureToken(numBytes int) (string, error) {
	buffer := make([]byte, numBytes)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return hex.EncodeToString(buffer), nil
}
