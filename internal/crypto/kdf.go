package crypto

import (
	"crypto/sha256"
	"fmt"

	"golang.org/x/crypto/pbkdf2"

	"github.com/hambosto/vaultfs/internal/constants"
)

// DeriveKey derives a 32-byte key from password and salt using
// PBKDF2-HMAC-SHA256 with 100,000 iterations, per spec.md §4.1.
func DeriveKey(password []byte, salt []byte) ([]byte, error) {
	if len(password) == 0 {
		return nil, constants.ErrEmptyPassword
	}
	if len(salt) != constants.SaltSize {
		return nil, fmt.Errorf("%w: expected %d bytes, got %d", constants.ErrInvalidSaltSize, constants.SaltSize, len(salt))
	}

	key := pbkdf2.Key(password, salt, constants.PBKDF2Iters, constants.KeySize, sha256.New)
	return key, nil
}
