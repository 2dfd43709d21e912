package constants

// Crypto primitive sizes (spec §4.1).
const (
	KeySize       = 32 // AES-256 key / volume_key length
	NonceSize     = 8  // AES-CTR nonce length
	MACSize       = 32 // HMAC-SHA256 digest length
	SaltSize      = 16 // PBKDF2 salt length
	PBKDF2Iters   = 100_000
)

// Header codec sizes (spec §4.2).
const (
	// HeaderPlaintextSize is volume_key(32) + volume_offset(8) + volume_size(8) + fsid(4).
	HeaderPlaintextSize = KeySize + 8 + 8 + 4
	// HeaderSlotSize is salt(16) + nonce(8) + mac(32) + ciphertext(52).
	HeaderSlotSize = SaltSize + NonceSize + MACSize + HeaderPlaintextSize
)

// Vault container layout (spec §4.3).
const (
	NumHeaderSlots = 3
	VolumeSize     = 1024 * 1024 // 1 MiB per volume
	HeaderAreaSize = NumHeaderSlots * HeaderSlotSize
)

// DefaultVaultFileName is the backing file name used when none is configured.
const DefaultVaultFileName = "vault.dat"

// AppVersion is the CLI's reported version string.
const AppVersion = "0.1.0"

// Namespace blob codec (spec §4.5 / SPEC_FULL.md §4.5).
const (
	NamespaceBlobVersion = 1

	// RegionLengthPrefixSize + NonceSize + MACSize is the fixed overhead
	// of an encrypted region, independent of ciphertext length.
	RegionLengthPrefixSize = 4
	RegionOverhead         = RegionLengthPrefixSize + NonceSize + MACSize
)
