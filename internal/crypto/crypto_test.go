package crypto

import (
	"bytes"
	"testing"

	"github.com/hambosto/vaultfs/internal/constants"
)

func TestStreamEncryptDecrypt(t *testing.T) {
	key := bytes.Repeat([]byte{0x11}, 32)

	plaintext := []byte("the namespace blob goes here")
	ciphertext, nonce, err := StreamEncrypt(key, plaintext)
	if err != nil {
		t.Fatalf("encrypt failed: %v", err)
	}
	if bytes.Equal(ciphertext, plaintext) {
		t.Errorf("ciphertext should not equal plaintext")
	}
	if len(ciphertext) != len(plaintext) {
		t.Errorf("ciphertext length = %d, want %d", len(ciphertext), len(plaintext))
	}

	decrypted, err := StreamDecrypt(key, nonce, ciphertext)
	if err != nil {
		t.Fatalf("decrypt failed: %v", err)
	}
	if !bytes.Equal(decrypted, plaintext) {
		t.Errorf("decrypted = %q, want %q", decrypted, plaintext)
	}
}

func TestStreamEncryptInvalidKeySize(t *testing.T) {
	_, _, err := StreamEncrypt([]byte("shortkey"), []byte("data"))
	if err != constants.ErrInvalidKeySize {
		t.Errorf("expected ErrInvalidKeySize, got %v", err)
	}
}

func TestStreamDecryptInvalidNonceSize(t *testing.T) {
	key := bytes.Repeat([]byte{0x22}, 32)
	_, err := StreamDecrypt(key, []byte("short"), []byte("data"))
	if err != constants.ErrInvalidNonceSize {
		t.Errorf("expected ErrInvalidNonceSize, got %v", err)
	}
}

func TestMACVerify(t *testing.T) {
	key := []byte("mac-key")
	data := []byte("header ciphertext")

	tag := MAC(key, data)
	if !VerifyMAC(key, data, tag) {
		t.Errorf("VerifyMAC should accept a freshly computed tag")
	}

	tampered := append([]byte(nil), tag...)
	tampered[0] ^= 0xFF
	if VerifyMAC(key, data, tampered) {
		t.Errorf("VerifyMAC should reject a tampered tag")
	}
}

func TestDeriveKeyDeterministic(t *testing.T) {
	salt := bytes.Repeat([]byte{0x33}, constants.SaltSize)

	k1, err := DeriveKey([]byte("correct horse"), salt)
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	k2, err := DeriveKey([]byte("correct horse"), salt)
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	if !bytes.Equal(k1, k2) {
		t.Errorf("DeriveKey should be deterministic for the same password and salt")
	}
	if len(k1) != constants.KeySize {
		t.Errorf("derived key length = %d, want %d", len(k1), constants.KeySize)
	}

	k3, err := DeriveKey([]byte("different password"), salt)
	if err != nil {
		t.Fatalf("derive failed: %v", err)
	}
	if bytes.Equal(k1, k3) {
		t.Errorf("different passwords should derive different keys")
	}
}

func TestDeriveKeyEmptyPassword(t *testing.T) {
	salt := make([]byte, constants.SaltSize)
	_, err := DeriveKey(nil, salt)
	if err != constants.ErrEmptyPassword {
		t.Errorf("expected ErrEmptyPassword, got %v", err)
	}
}

func TestDeriveKeyInvalidSalt(t *testing.T) {
	_, err := DeriveKey([]byte("pw"), []byte("tooshort"))
	if err == nil {
		t.Errorf("expected error for invalid salt length")
	}
}

func TestRandomBytesLength(t *testing.T) {
	b, err := RandomBytes(16)
	if err != nil {
		t.Fatalf("RandomBytes failed: %v", err)
	}
	if len(b) != 16 {
		t.Errorf("len = %d, want 16", len(b))
	}
}
