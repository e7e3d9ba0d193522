// Package session holds the session token conventions shared by the auth
// service and the HTTP layer.
package session

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

const (
	// CookieName is the cookie carrying the session token.
	CookieName = "session"

	// DefaultTTL is how long a session stays valid without logout.
	DefaultTTL = 30 * 24 * time.Hour
)

// NewToken returns a random 256-bit token in hex.
func NewToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
