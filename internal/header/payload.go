// Package header implements the per-volume HeaderPayload and its
// password-gated encryption into a fixed-size slot, per spec.md §4.2.
package header

import (
	"encoding/binary"
	"fmt"

	"github.com/hambosto/vaultfs/internal/constants"
	"github.com/hambosto/vaultfs/internal/crypto"
)

// Payload is the secret metadata describing one volume: its symmetric
// key, its absolute byte range in the vault file, and its fsid.
type Payload struct {
	VolumeKey    []byte
	VolumeOffset uint64
	VolumeSize   uint64
	FSID         uint32
}

// NewPayload builds a HeaderPayload for a freshly created volume at
// the given fsid, with a random 32-byte volume key and the fixed
// offset/size derived from the vault's layout (spec.md §4.3).
func NewPayload(fsid uint32) (*Payload, error) {
	key, err := crypto.RandomBytes(constants.KeySize)
	if err != nil {
		return nil, err
	}

	return &Payload{
		VolumeKey:    key,
		VolumeOffset: uint64(constants.HeaderAreaSize) + uint64(fsid)*constants.VolumeSize,
		VolumeSize:   constants.VolumeSize,
		FSID:         fsid,
	}, nil
}

// Validate checks the payload invariants from spec.md §3.
func (p *Payload) Validate() error {
	if len(p.VolumeKey) != constants.KeySize {
		return constants.ErrInvalidVolumeKey
	}
	if p.VolumeOffset < constants.HeaderAreaSize {
		return constants.ErrInvalidVolumeOffset
	}
	if p.VolumeSize == 0 {
		return constants.ErrInvalidVolumeSize
	}
	return nil
}

// marshal serializes the payload into its 52-byte plaintext form:
// volume_key(32) | volume_offset(u64 LE) | volume_size(u64 LE) | fsid(u32 LE).
func (p *Payload) marshal() []byte {
	buf := make([]byte, constants.HeaderPlaintextSize)
	copy(buf[0:constants.KeySize], p.VolumeKey)
	binary.LittleEndian.PutUint64(buf[constants.KeySize:constants.KeySize+8], p.VolumeOffset)
	binary.LittleEndian.PutUint64(buf[constants.KeySize+8:constants.KeySize+16], p.VolumeSize)
	binary.LittleEndian.PutUint32(buf[constants.KeySize+16:constants.KeySize+20], p.FSID)
	return buf
}

// unmarshalPayload parses the 52-byte plaintext form produced by marshal.
func unmarshalPayload(plain []byte) (*Payload, error) {
	if len(plain) != constants.HeaderPlaintextSize {
		return nil, fmt.Errorf("%w: got %d, want %d", constants.ErrInvalidPayloadSize, len(plain), constants.HeaderPlaintextSize)
	}

	p := &Payload{
		VolumeKey:    append([]byte(nil), plain[0:constants.KeySize]...),
		VolumeOffset: binary.LittleEndian.Uint64(plain[constants.KeySize : constants.KeySize+8]),
		VolumeSize:   binary.LittleEndian.Uint64(plain[constants.KeySize+8 : constants.KeySize+16]),
		FSID:         binary.LittleEndian.Uint32(plain[constants.KeySize+16 : constants.KeySize+20]),
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}
