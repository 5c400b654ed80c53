package common

// WipeByteArray zeroes the buffer in place. Callers use it to drop password
// material as soon as it has been consumed.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
