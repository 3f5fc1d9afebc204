package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashKey creates a SHA256 hash of a string.
// This is useful for creating consistent, safe keys for Redis and job IDs.
func HashKey(s string) string {
	h := sha256.New()
	h.Write([]byte(s))
	return hex.EncodeToString(h.Sum(nil))
}
