package service

import (
	"crypto/rand"
	"fmt"
)

// sharingTokenLength is the number of characters in a sharing token.
const sharingTokenLength = 12

// sharingTokenAlphabet is the URL-safe character set sharing tokens are
// drawn from.
const sharingTokenAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ-_"

// GenerateSharingToken creates a random opaque token suitable for use in
// a public share URL. Tokens are 12 characters drawn uniformly from a
// 64-character URL-safe alphabet.
func GenerateSharingToken() (string, error) {
	b := make([]byte, sharingTokenLength)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to read random bytes for sharing token: %w", err)
	}

	// The alphabet has 64 entries, so masking the low 6 bits of each
	// random byte keeps the selection uniform.
	token := make([]byte, sharingTokenLength)
	for i, v := range b {
		token[i] = sharingTokenAlphabet[v&0x3f]
	}

	return string(token), nil
}
