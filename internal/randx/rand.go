// Package randx provides helpers for drawing cryptographically secure
// random values from an injectable source.
//
// Production code passes crypto/rand.Reader (or nil, which means the same);
// tests supply a deterministic reader for reproducibility.
package randx

import (
	"crypto/rand"
	"encoding/hex"
	"io"
)

// Bytes reads size random bytes from r. A nil r falls back to
// crypto/rand.Reader.
func Bytes(r io.Reader, size int) ([]byte, error) {
	if r == nil {
		r = rand.Reader
	}
	b := make([]byte, size)
	if _, err := io.ReadFull(r, b); err != nil {
		return nil, err
	}
	return b, nil
}

// HexString reads size random bytes from r and returns them hex-encoded.
// The resulting string is twice as long as size (each byte expands to two
// hex characters).
func HexString(r io.Reader, size int) (string, error) {
	b, err := Bytes(r, size)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
