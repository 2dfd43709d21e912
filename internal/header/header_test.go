package header

import (
	"bytes"
	"testing"

	"github.com/hambosto/vaultfs/internal/constants"
	"github.com/hambosto/vaultfs/internal/crypto"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	p, err := NewPayload(0)
	if err != nil {
		t.Fatalf("NewPayload failed: %v", err)
	}

	blob, err := Encrypt(p, "correct horse battery staple")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}
	if len(blob) != constants.HeaderSlotSize {
		t.Fatalf("blob length = %d, want %d", len(blob), constants.HeaderSlotSize)
	}

	got, err := Decrypt(blob, "correct horse battery staple")
	if err != nil {
		t.Fatalf("Decrypt failed: %v", err)
	}

	if !bytes.Equal(got.VolumeKey, p.VolumeKey) {
		t.Errorf("VolumeKey mismatch")
	}
	if got.VolumeOffset != p.VolumeOffset || got.VolumeSize != p.VolumeSize || got.FSID != p.FSID {
		t.Errorf("payload fields mismatch: got %+v, want %+v", got, p)
	}
}

func TestDecryptWrongPassword(t *testing.T) {
	p, _ := NewPayload(1)
	blob, err := Encrypt(p, "real-password")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	_, err = Decrypt(blob, "wrong-password")
	if err != constants.ErrWrongPasswordOrCorrupt {
		t.Errorf("expected ErrWrongPasswordOrCorrupt, got %v", err)
	}
}

func TestDecryptTamperedCiphertext(t *testing.T) {
	p, _ := NewPayload(2)
	blob, err := Encrypt(p, "pw")
	if err != nil {
		t.Fatalf("Encrypt failed: %v", err)
	}

	ciphertextStart := constants.SaltSize + constants.NonceSize + constants.MACSize
	blob[ciphertextStart] ^= 0xFF

	_, err = Decrypt(blob, "pw")
	if err != constants.ErrWrongPasswordOrCorrupt {
		t.Errorf("expected ErrWrongPasswordOrCorrupt on tamper, got %v", err)
	}
}

func TestDecryptRandomBlobFails(t *testing.T) {
	blob, err := crypto.RandomBytes(constants.HeaderSlotSize)
	if err != nil {
		t.Fatalf("RandomBytes failed: %v", err)
	}
	if _, err := Decrypt(blob, "any password"); err == nil {
		t.Errorf("expected a random blob to fail decryption")
	}
}

func TestDecryptTooShort(t *testing.T) {
	_, err := Decrypt(make([]byte, constants.HeaderSlotSize-1), "pw")
	if err != constants.ErrHeaderTooShort {
		t.Errorf("expected ErrHeaderTooShort, got %v", err)
	}
}

func TestNewPayloadOffsets(t *testing.T) {
	p0, _ := NewPayload(0)
	p1, _ := NewPayload(1)

	if p0.VolumeOffset != constants.HeaderAreaSize {
		t.Errorf("fsid 0 offset = %d, want %d", p0.VolumeOffset, constants.HeaderAreaSize)
	}
	if p1.VolumeOffset != constants.HeaderAreaSize+constants.VolumeSize {
		t.Errorf("fsid 1 offset = %d, want %d", p1.VolumeOffset, constants.HeaderAreaSize+constants.VolumeSize)
	}
}
