package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"fmt"

	"github.com/hambosto/vaultfs/internal/constants"
)

// StreamEncrypt encrypts plaintext with AES-256 in counter mode under a
// freshly generated nonce. The returned ciphertext is exactly as long
// as plaintext. Fails when key is not 32 bytes.
func StreamEncrypt(key, plaintext []byte) (ciphertext, nonce []byte, err error) {
	if len(key) != constants.KeySize {
		return nil, nil, constants.ErrInvalidKeySize
	}

	nonce, err = RandomBytes(constants.NonceSize)
	if err != nil {
		return nil, nil, err
	}

	stream, err := newCTRStream(key, nonce)
	if err != nil {
		return nil, nil, err
	}

	ciphertext = make([]byte, len(plaintext))
	stream.XORKeyStream(ciphertext, plaintext)
	return ciphertext, nonce, nil
}

// StreamDecrypt is the inverse of StreamEncrypt. Fails when key is not
// 32 bytes or nonce is not 8 bytes.
func StreamDecrypt(key, nonce, ciphertext []byte) ([]byte, error) {
	if len(key) != constants.KeySize {
		return nil, constants.ErrInvalidKeySize
	}
	if len(nonce) != constants.NonceSize {
		return nil, constants.ErrInvalidNonceSize
	}

	stream, err := newCTRStream(key, nonce)
	if err != nil {
		return nil, err
	}

	plaintext := make([]byte, len(ciphertext))
	stream.XORKeyStream(plaintext, ciphertext)
	return plaintext, nil
}

// newCTRStream builds an AES-CTR keystream whose 16-byte IV is the
// 8-byte nonce followed by an 8-byte big-endian counter starting at
// zero — the same construction PyCryptodome's AES.MODE_CTR uses with
// an 8-byte nonce, which is what the reference implementation this
// module supersedes relied on.
func newCTRStream(key, nonce []byte) (cipher.Stream, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("crypto: failed to init AES cipher: %w", err)
	}

	iv := make([]byte, aes.BlockSize)
	copy(iv, nonce)
	// remaining bytes are the zero-valued initial counter

	return cipher.NewCTR(block, iv), nil
}
