package crypto

import (
	"crypto/hmac"
	"crypto/sha256"
)

// MAC computes HMAC-SHA256 of data keyed by key.
func MAC(key, data []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write(data)
	return mac.Sum(nil)
}

// VerifyMAC reports whether tag is the correct HMAC-SHA256 of data
// under key, using a constant-time comparison.
func VerifyMAC(key, data, tag []byte) bool {
	expected := MAC(key, data)
	return hmac.Equal(expected, tag)
}
