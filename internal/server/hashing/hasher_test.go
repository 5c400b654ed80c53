package hashing

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testIterations = 1000 // keep tests fast; production uses far more

func newTestHasher() *Hasher {
	return New(testIterations, 16, nil)
}

func TestGenerateSalt_LengthAndUniqueness(t *testing.T) {
	h := newTestHasher()

	s1, err := h.GenerateSalt()
	require.NoError(t, err)
	s2, err := h.GenerateSalt()
	require.NoError(t, err)

	assert.Len(t, s1, 16)
	assert.Len(t, s2, 16)
	assert.NotEqual(t, s1, s2)
}

func TestGenerateSalt_DeterministicSource(t *testing.T) {
	src := bytes.NewReader(bytes.Repeat([]byte{7}, 16))
	h := New(testIterations, 16, src)

	salt, err := h.GenerateSalt()
	require.NoError(t, err)
	assert.Equal(t, bytes.Repeat([]byte{7}, 16), salt)
}

func TestHash_Deterministic(t *testing.T) {
	h := newTestHasher()
	salt, err := h.GenerateSalt()
	require.NoError(t, err)

	d1 := h.Hash([]byte("pw123"), salt)
	d2 := h.Hash([]byte("pw123"), salt)

	assert.Len(t, d1, DigestSize)
	assert.Equal(t, d1, d2)
}

func TestHash_DifferentSaltsDiffer(t *testing.T) {
	h := newTestHasher()
	s1, _ := h.GenerateSalt()
	s2, _ := h.GenerateSalt()

	assert.NotEqual(t, h.Hash([]byte("pw123"), s1), h.Hash([]byte("pw123"), s2))
}

func TestVerify_RoundTrip(t *testing.T) {
	h := newTestHasher()
	salt, _ := h.GenerateSalt()
	digest := h.Hash([]byte("pw123"), salt)

	assert.True(t, h.Verify([]byte("pw123"), salt, digest))
	assert.False(t, h.Verify([]byte("wrong"), salt, digest))
}

func TestHash_PanicsOnMalformedSalt(t *testing.T) {
	h := newTestHasher()

	assert.Panics(t, func() {
		h.Hash([]byte("pw"), []byte("short"))
	})
}

func TestNew_PanicsOnBadParameters(t *testing.T) {
	assert.Panics(t, func() { New(0, 16, nil) })
	assert.Panics(t, func() { New(testIterations, 8, nil) })
}
