// Package hashing derives and verifies password hashes.
//
// Hashing is intentionally expensive (iterated PBKDF2-SHA256) to resist
// brute-force attacks. Verification is constant-time.
package hashing

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"io"

	"github.com/dsmelov/authsvc/internal/randx"
	"golang.org/x/crypto/pbkdf2"
)

// DigestSize is the length in bytes of every password digest.
const DigestSize = 32

// Hasher derives fixed-length password digests with a per-user salt.
//
// The random source is injectable so tests can be deterministic; a nil
// source means crypto/rand.
type Hasher struct {
	iterations int
	saltSize   int
	rand       io.Reader
}

func New(iterations, saltSize int, rand io.Reader) *Hasher {
	if iterations <= 0 {
		panic(fmt.Sprintf("hashing: invalid iteration count %d", iterations))
	}
	if saltSize < 16 {
		panic(fmt.Sprintf("hashing: salt size %d below 128-bit floor", saltSize))
	}
	return &Hasher{iterations: iterations, saltSize: saltSize, rand: rand}
}

// GenerateSalt draws a fresh random salt from the secure source.
func (h *Hasher) GenerateSalt() ([]byte, error) {
	return randx.Bytes(h.rand, h.saltSize)
}

// Hash derives the digest for password under salt. Deterministic for the
// same (password, salt) pair.
//
// Salts are only ever produced by GenerateSalt, so a wrong salt length is a
// programming error and panics rather than returning an error.
func (h *Hasher) Hash(password, salt []byte) []byte {
	if len(salt) != h.saltSize {
		panic(fmt.Sprintf("hashing: salt length %d, want %d", len(salt), h.saltSize))
	}
	return pbkdf2.Key(password, salt, h.iterations, DigestSize, sha256.New)
}

// Verify reports whether password under salt produces expected. The
// comparison is constant-time; it never short-circuits on the first
// mismatching byte.
func (h *Hasher) Verify(password, salt, expected []byte) bool {
	digest := h.Hash(password, salt)
	return subtle.ConstantTimeCompare(digest, expected) == 1
}
