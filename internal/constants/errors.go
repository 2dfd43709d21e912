// Package constants holds the sentinel errors and wire-format sizes
// shared across the vaultfs core.
package constants

import "errors"

// Crypto layer errors.
var (
	ErrInvalidKeySize   = errors.New("key must be 32 bytes")
	ErrInvalidNonceSize = errors.New("nonce must be 8 bytes")
	ErrEmptyPassword    = errors.New("password cannot be empty")
	ErrInvalidSaltSize  = errors.New("invalid salt length")
)

// Header layer errors.
var (
	ErrHeaderTooShort       = errors.New("header blob shorter than one slot")
	ErrWrongPasswordOrCorrupt = errors.New("wrong password or corrupted header")
	ErrInvalidPayloadSize   = errors.New("decrypted header payload has unexpected size")
	ErrInvalidVolumeKey     = errors.New("volume key must be 32 bytes")
	ErrInvalidVolumeOffset  = errors.New("volume offset below header area")
	ErrInvalidVolumeSize    = errors.New("volume size must be positive")
)

// Vault container errors.
var (
	ErrSlotOutOfRange   = errors.New("slot index out of range")
	ErrPayloadTooLarge  = errors.New("payload larger than reserved region")
	ErrVaultBusy        = errors.New("vault file is locked by another process")
)

// Mount manager errors.
var (
	ErrWrongPassword   = errors.New("incorrect password for all reachable slots")
	ErrSlotNotKnown    = errors.New("target slot header not known in this session")
	ErrVolumeExists    = errors.New("volume already exists at this fsid")
)

// Namespace errors.
var (
	ErrNotFound     = errors.New("not found")
	ErrExists       = errors.New("already exists")
	ErrVolumeFull   = errors.New("namespace does not fit in the volume's reserved region")
	ErrEmptyName    = errors.New("name must not be empty")
	ErrNameHasSlash = errors.New("name must not contain '/'")
	ErrCorrupt      = errors.New("namespace region failed integrity verification")
)
