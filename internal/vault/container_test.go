package vault

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/hambosto/vaultfs/internal/constants"
)

func TestSlotReadWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.dat")

	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	blob := bytes.Repeat([]byte{0x42}, constants.HeaderSlotSize)
	if err := c.WriteSlot(1, blob); err != nil {
		t.Fatalf("WriteSlot failed: %v", err)
	}

	got, err := c.ReadSlot(1)
	if err != nil {
		t.Fatalf("ReadSlot failed: %v", err)
	}
	if !bytes.Equal(got, blob) {
		t.Errorf("ReadSlot returned mismatched bytes")
	}
}

func TestWriteSlotOutOfRange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.dat")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	blob := make([]byte, constants.HeaderSlotSize)
	if err := c.WriteSlot(constants.NumHeaderSlots, blob); err != constants.ErrSlotOutOfRange {
		t.Errorf("expected ErrSlotOutOfRange, got %v", err)
	}
}

func TestRegionReadWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.dat")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	offset := int64(constants.HeaderAreaSize)
	payload := []byte("encrypted namespace bytes")

	if err := c.WriteRegion(offset, payload, constants.VolumeSize); err != nil {
		t.Fatalf("WriteRegion failed: %v", err)
	}

	got, err := c.ReadRegion(offset, len(payload))
	if err != nil {
		t.Fatalf("ReadRegion failed: %v", err)
	}
	if !bytes.Equal(got, payload) {
		t.Errorf("ReadRegion mismatch: got %q, want %q", got, payload)
	}
}

func TestWriteRegionPayloadTooLarge(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.dat")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	payload := make([]byte, 10)
	if err := c.WriteRegion(0, payload, 4); err != constants.ErrPayloadTooLarge {
		t.Errorf("expected ErrPayloadTooLarge, got %v", err)
	}
}

func TestStampRandomSlotsAreDistinct(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.dat")
	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer c.Close()

	if err := c.StampRandomSlots(nil); err != nil {
		t.Fatalf("StampRandomSlots failed: %v", err)
	}

	slots := make([][]byte, constants.NumHeaderSlots)
	for i := range slots {
		slots[i], err = c.ReadSlot(i)
		if err != nil {
			t.Fatalf("ReadSlot(%d) failed: %v", i, err)
		}
	}

	for i := 0; i < len(slots); i++ {
		for j := i + 1; j < len(slots); j++ {
			if bytes.Equal(slots[i], slots[j]) {
				t.Errorf("slots %d and %d are identical, expected independent randomness", i, j)
			}
		}
	}
}

func TestExists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vault.dat")
	if Exists(path) {
		t.Errorf("Exists should be false before creation")
	}

	c, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	c.Close()

	if !Exists(path) {
		t.Errorf("Exists should be true after creation")
	}
}
