package utils

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
)

// GenerateSecureRandomString returns n random bytes as lowercase hex (2n characters).
// Used for the OAuth state round-tripped through Google's consent screen.
func GenerateSecureRandomString(n int) (string, error) {
	if n <= 0 {
		return "", errors.New("random string length must be positive")
	}
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to read random bytes: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
