package header

import (
	"github.com/hambosto/vaultfs/internal/constants"
	"github.com/hambosto/vaultfs/internal/crypto"
)

// Encrypt encodes payload as an encrypted header slot, password-gated:
// salt(16) | nonce(8) | mac(32) | ciphertext(52). The MAC covers the
// ciphertext only, per spec.md §4.2 (see SPEC_FULL.md §4.2 for the
// Open Question 1 decision to reproduce that framing as specified).
func Encrypt(p *Payload, password string) ([]byte, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	salt, err := crypto.RandomBytes(constants.SaltSize)
	if err != nil {
		return nil, err
	}

	key, err := crypto.DeriveKey([]byte(password), salt)
	if err != nil {
		return nil, err
	}

	plain := p.marshal()
	ciphertext, nonce, err := crypto.StreamEncrypt(key, plain)
	if err != nil {
		return nil, err
	}

	tag := crypto.MAC(key, ciphertext)

	blob := make([]byte, 0, constants.HeaderSlotSize)
	blob = append(blob, salt...)
	blob = append(blob, nonce...)
	blob = append(blob, tag...)
	blob = append(blob, ciphertext...)
	return blob, nil
}

// Decrypt attempts to decode blob as a header slot encrypted under
// password. Returns ErrWrongPasswordOrCorrupt when the MAC does not
// verify, which callers must treat as "not this slot" rather than a
// hard failure (spec.md §4.4's trial-decryption mount loop relies on
// this).
func Decrypt(blob []byte, password string) (*Payload, error) {
	if len(blob) < constants.HeaderSlotSize {
		return nil, constants.ErrHeaderTooShort
	}

	salt := blob[0:constants.SaltSize]
	nonce := blob[constants.SaltSize : constants.SaltSize+constants.NonceSize]
	tag := blob[constants.SaltSize+constants.NonceSize : constants.SaltSize+constants.NonceSize+constants.MACSize]
	ciphertext := blob[constants.SaltSize+constants.NonceSize+constants.MACSize : constants.HeaderSlotSize]

	key, err := crypto.DeriveKey([]byte(password), salt)
	if err != nil {
		return nil, err
	}

	if !crypto.VerifyMAC(key, ciphertext, tag) {
		return nil, constants.ErrWrongPasswordOrCorrupt
	}

	plain, err := crypto.StreamDecrypt(key, nonce, ciphertext)
	if err != nil {
		return nil, err
	}

	return unmarshalPayload(plain)
}
