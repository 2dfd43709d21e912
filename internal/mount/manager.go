// Package mount implements the trial-decryption mount protocol and the
// volume-creation / slot-aliasing primitives of spec.md §4.4, on top of
// the raw vault container.
package mount

import (
	"fmt"

	"github.com/hambosto/vaultfs/internal/constants"
	"github.com/hambosto/vaultfs/internal/header"
	"github.com/hambosto/vaultfs/internal/session"
	"github.com/hambosto/vaultfs/internal/vault"
)

// Manager drives one vault container through its slot lifecycle:
// creating volumes, aliasing slots for plausible deniability, and
// mounting via trial decryption.
type Manager struct {
	container *vault.Container

	// knownHeaders caches payloads decrypted earlier in this process
	// lifetime, keyed by slot, so alias_slot can reuse a payload without
	// re-prompting for its password (spec.md §4.4's State).
	knownHeaders map[int]*header.Payload
}

// New wraps an already-open vault container.
func New(c *vault.Container) *Manager {
	return &Manager{container: c, knownHeaders: make(map[int]*header.Payload)}
}

// CreateVolume creates a fresh volume at fsid, writes its encrypted
// header into slot fsid, and returns an active Session over its
// (empty, root-only) namespace. Per spec.md §4.4 this is only callable
// when the vault is absent or not yet populated at that fsid.
func (m *Manager) CreateVolume(password string, fsid uint32) (*session.Session, error) {
	slot := int(fsid)
	if slot < 0 || slot >= constants.NumHeaderSlots {
		return nil, constants.ErrSlotOutOfRange
	}

	if _, known := m.knownHeaders[slot]; known {
		return nil, constants.ErrVolumeExists
	}

	// knownHeaders only remembers slots touched by this process. A slot
	// populated by an earlier run looks like random noise to us (the
	// whole point of stamping every slot at creation), so the only
	// population check available without the original password is: does
	// this exact password already open something here. That catches the
	// common accident of re-running create_volume with the same
	// password at the same fsid; it cannot detect a slot occupied under
	// a different password without contradicting the slots'
	// indistinguishability invariant.
	if existing, err := m.container.ReadSlot(slot); err == nil {
		if _, decErr := header.Decrypt(existing, password); decErr == nil {
			return nil, constants.ErrVolumeExists
		}
	}

	payload, err := header.NewPayload(fsid)
	if err != nil {
		return nil, err
	}

	blob, err := header.Encrypt(payload, password)
	if err != nil {
		return nil, err
	}
	if err := m.container.WriteSlot(slot, blob); err != nil {
		return nil, err
	}
	m.knownHeaders[slot] = payload

	return session.New(slot, payload, m.container)
}

// AliasSlot re-encrypts the payload already known at targetSlot under
// newPassword and writes the result into writeSlot, so that mounting
// with newPassword later resolves to targetSlot's volume (spec.md
// §4.4's deniability primitive).
func (m *Manager) AliasSlot(targetSlot int, newPassword string, writeSlot int) error {
	payload, ok := m.knownHeaders[targetSlot]
	if !ok {
		return constants.ErrSlotNotKnown
	}
	if writeSlot < 0 || writeSlot >= constants.NumHeaderSlots {
		return constants.ErrSlotOutOfRange
	}

	blob, err := header.Encrypt(payload, newPassword)
	if err != nil {
		return err
	}
	if err := m.container.WriteSlot(writeSlot, blob); err != nil {
		return err
	}
	m.knownHeaders[writeSlot] = payload
	return nil
}

// Mount performs the ascending trial-decryption protocol of spec.md
// §4.4: slot 0 is skipped unless kdOK is true; the first slot whose
// header decrypts under password wins. Per-slot decryption failures
// are swallowed — they never reveal which slot, if any, was close.
func (m *Manager) Mount(password string, kdOK bool) (*session.Session, error) {
	start := 1
	if kdOK {
		start = 0
	}

	for i := start; i < constants.NumHeaderSlots; i++ {
		blob, err := m.container.ReadSlot(i)
		if err != nil {
			return nil, fmt.Errorf("mount: reading slot %d: %w", i, err)
		}

		payload, err := header.Decrypt(blob, password)
		if err != nil {
			continue
		}

		m.knownHeaders[i] = payload
		return session.New(i, payload, m.container)
	}

	return nil, constants.ErrWrongPassword
}
