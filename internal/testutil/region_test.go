package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWriteHeaderAndEntry(t *testing.T) {
	r := NewRegion(64)
	r.WriteHeader(0x4a0fb10b, 0, 1, 24, 3, 32, 64, 1)
	r.WriteEntry(24, 7, 8, 4, []byte{1, 2, 3, 4})

	buf := r.Bytes()
	assert.Equal(t, byte(0x0b), buf[0])
	assert.Equal(t, byte(24), buf[6])
	assert.Equal(t, byte(1), buf[32])
}

func TestIntegrityTagStable(t *testing.T) {
	r := NewRegion(24)
	r.WriteHeader(1, 2, 3, 4, 5, 6, 7, 8)

	assert.Equal(t, IntegrityTag(r.Bytes()), IntegrityTag(r.Bytes()))
}
