package util

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
)

// HashUserKey returns a filesystem-safe identifier for a user ID.
func HashUserKey(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}

// SHA256Reader consumes r and returns its hex-encoded SHA-256 digest.
// This is the content hash recorded on documents for upload
// deduplication.
func SHA256Reader(r io.Reader) (string, error) {
	h := sha256.New()
	if _, err := io.Copy(h, r); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
