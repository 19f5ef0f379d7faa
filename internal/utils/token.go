package utils

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TokenLength is the number of random bytes in a session token.
// The hex-encoded token is twice this long.
const TokenLength = 32

// GenerateToken generates a cryptographically secure session token.
// The token is the sole lookup key for a session and is embedded in
// customer-facing menu links, so it must be unguessable.
func GenerateToken() (string, error) {
	buf := make([]byte, TokenLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
