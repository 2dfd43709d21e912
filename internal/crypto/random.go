// Package crypto implements the primitives of spec.md §4.1: random
// byte generation, PBKDF2 key derivation, AES-256-CTR stream
// encryption, and HMAC-SHA256 message authentication.
package crypto

import (
	"crypto/rand"
	"fmt"
	"io"
)

// RandomBytes returns n cryptographically secure random bytes.
func RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, fmt.Errorf("crypto: failed to generate random bytes: %w", err)
	}
	return buf, nil
}
