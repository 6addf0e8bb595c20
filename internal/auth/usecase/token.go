package usecase

import (
	"crypto/rand"
	"encoding/base64"
)

// sessionTokenBytes is the raw entropy of a session token. 32 bytes keeps the
// bearer token above the 256-bit floor.
const sessionTokenBytes = 32

// NewSessionToken returns a cryptographically random, URL-safe session token.
func NewSessionToken() (string, error) {
	raw := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(raw), nil
}
