package util

import (
	"crypto/sha256"
	"encoding/hex"
)

func SHA256Hex(b []byte) string {
	x := sha256.Sum256(b)
	return hex.EncodeToString(x[:])
}

// ContentFingerprint is a short stable id for content, safe to log in place of the content itself.
func ContentFingerprint(s string) string {
	return SHA256Hex([]byte(s))[:12]
}
