// Package session bundles the decrypted state of one mounted volume:
// its header payload, the shared vault container, and its in-memory
// namespace. It replaces the original implementation's module-level
// globals (spec.md §9) with an explicit value the mount manager hands
// to the shell.
package session

import (
	"encoding/binary"
	"fmt"

	"github.com/hambosto/vaultfs/internal/constants"
	"github.com/hambosto/vaultfs/internal/crypto"
	"github.com/hambosto/vaultfs/internal/header"
	"github.com/hambosto/vaultfs/internal/namespace"
	"github.com/hambosto/vaultfs/internal/vault"
)

// Session is the live state of one mounted volume.
type Session struct {
	Slot      int
	Payload   *header.Payload
	Namespace *namespace.Namespace

	container *vault.Container
}

// New loads or initializes the namespace for payload's volume region
// and returns a ready Session. If the region is empty or unreadable as
// a namespace blob, the namespace degrades to a fresh root-only tree
// rather than failing the mount (spec.md §4.4's recovery behavior).
func New(slot int, payload *header.Payload, c *vault.Container) (*Session, error) {
	s := &Session{Slot: slot, Payload: payload, container: c}

	blob, err := c.ReadRegion(int64(payload.VolumeOffset), int(payload.VolumeSize))
	if err == nil && len(blob) > 0 {
		if plain, decErr := s.decryptRegion(blob); decErr == nil {
			if entries, unErr := namespace.Unmarshal(plain); unErr == nil {
				s.Namespace = namespace.Load(entries, s.persist)
				return s, nil
			}
		}
	}

	s.Namespace = namespace.New(s.persist)
	if err := s.persist(s.Namespace.Marshal()); err != nil {
		return nil, err
	}
	return s, nil
}

// persist encrypts blob under the volume key and writes it into the
// volume's reserved region, wired as the namespace's PersistFunc. The
// on-disk framing is length‖nonce‖ciphertext‖tag, with the tag
// covering nonce‖ciphertext — the opposite convention from the header
// slots, which MAC ciphertext alone (spec.md §4.5's closing note).
func (s *Session) persist(blob []byte) error {
	ciphertext, nonce, err := crypto.StreamEncrypt(s.Payload.VolumeKey, blob)
	if err != nil {
		return err
	}
	mac := crypto.MAC(s.Payload.VolumeKey, append(append([]byte(nil), nonce...), ciphertext...))

	region := make([]byte, 0, constants.RegionLengthPrefixSize+len(nonce)+len(ciphertext)+len(mac))
	region = binary.LittleEndian.AppendUint32(region, uint32(len(ciphertext)))
	region = append(region, nonce...)
	region = append(region, ciphertext...)
	region = append(region, mac...)

	if len(region) > int(s.Payload.VolumeSize) {
		return constants.ErrVolumeFull
	}

	return s.container.WriteRegion(int64(s.Payload.VolumeOffset), region, int64(s.Payload.VolumeSize))
}

// decryptRegion is the inverse of persist's framing.
func (s *Session) decryptRegion(region []byte) ([]byte, error) {
	if len(region) < constants.RegionLengthPrefixSize {
		return nil, fmt.Errorf("session: region too short: %d bytes", len(region))
	}

	ciphertextLen := binary.LittleEndian.Uint32(region[0:4])
	rest := region[4:]
	if len(rest) < constants.NonceSize+int(ciphertextLen)+constants.MACSize {
		return nil, fmt.Errorf("session: region truncated")
	}

	nonce := rest[0:constants.NonceSize]
	ciphertext := rest[constants.NonceSize : constants.NonceSize+int(ciphertextLen)]
	mac := rest[constants.NonceSize+int(ciphertextLen) : constants.NonceSize+int(ciphertextLen)+constants.MACSize]

	if !crypto.VerifyMAC(s.Payload.VolumeKey, append(append([]byte(nil), nonce...), ciphertext...), mac) {
		return nil, constants.ErrCorrupt
	}
	return crypto.StreamDecrypt(s.Payload.VolumeKey, nonce, ciphertext)
}

// Close zeroizes the volume key in memory. Best effort: Go's GC can
// have already copied the backing array, but this closes the obvious
// window where the key sits in a live, reachable slice.
func (s *Session) Close() {
	for i := range s.Payload.VolumeKey {
		s.Payload.VolumeKey[i] = 0
	}
}
