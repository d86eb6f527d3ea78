package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// HashBytes returns the SHA-256 hex digest of raw file bytes. The digest is
// the content fingerprint used to de-duplicate uploads.
func HashBytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
