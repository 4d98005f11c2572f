package crypto

import (
	"crypto/rand"
	"encoding/base64"
)

const resetTokenBytes = 32

// NewResetToken returns a URL-safe random token carrying 256 bits of entropy.
func NewResetToken() (string, error) {
	b := make([]byte, resetTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
