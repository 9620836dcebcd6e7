package abi

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPackPtrLenRoundTrip(t *testing.T) {
	tests := []struct {
		name   string
		ptr    uint32
		length uint32
		want   uint64
	}{
		{
			name:   "typical values",
			ptr:    0x12345678,
			length: 0xABCDEF00,
			want:   (uint64(0x12345678) << PtrHighBits) | uint64(0xABCDEF00),
		},
		{
			name:   "zero pointer zero length",
			ptr:    0,
			length: 0,
			want:   0,
		},
		{
			name:   "max pointer",
			ptr:    0xFFFFFFFF,
			length: 1,
			want:   (uint64(0xFFFFFFFF) << PtrHighBits) | 1,
		},
		{
			name:   "max length",
			ptr:    1,
			length: 0xFFFFFFFF,
			want:   (uint64(1) << PtrHighBits) | 0xFFFFFFFF,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			packed := PackPtrLen(tt.ptr, tt.length)
			assert.Equal(t, tt.want, packed, "packed value mismatch")

			gotPtr, gotLen := UnpackPtrLen(packed)
			assert.Equal(t, tt.ptr, gotPtr, "unpacked pointer mismatch")
			assert.Equal(t, tt.length, gotLen, "unpacked length mismatch")
		})
	}
}

func TestPackHalvesDoNotBleed(t *testing.T) {
	// A full low half must not carry into the pointer and vice versa.
	ptr, length := UnpackPtrLen(PackPtrLen(0, 0xFFFFFFFF))
	assert.Equal(t, uint32(0), ptr)
	assert.Equal(t, uint32(0xFFFFFFFF), length)

	ptr, length = UnpackPtrLen(PackPtrLen(0xFFFFFFFF, 0))
	assert.Equal(t, uint32(0xFFFFFFFF), ptr)
	assert.Equal(t, uint32(0), length)
}

func TestIsEmptyRef(t *testing.T) {
	tests := []struct {
		name   string
		packed uint64
		want   bool
	}{
		{"all zero", 0, true},
		{"null pointer with length", PackPtrLen(0, 100), true},
		{"pointer with zero length", PackPtrLen(0x1000, 0), true},
		{"live reference", PackPtrLen(0x1000, 16), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsEmptyRef(tt.packed))
		})
	}
}

// Packing sits in the hot path of every host call, so it should stay a pure
// bit operation with no allocation.
func BenchmarkPackUnpackRoundtrip(b *testing.B) {
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		packed := PackPtrLen(0x12345678, 256)
		ptr, length := UnpackPtrLen(packed)
		_, _ = ptr, length
	}
}
