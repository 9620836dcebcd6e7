// Package abi implements the guest side of the Flow-Like WASM ABI: the
// packed pointer/length reference codec, the linear-memory allocator
// exported to the host, and the single outbound result slot.
//
// A packed reference is the only way variable-length data crosses from a
// guest export back to the host: a single 64-bit integer holding a 32-bit
// offset into guest linear memory in its high half and a 32-bit length in
// its low half. Every language binding of the ABI must produce bit-identical
// packed values.
package abi

// PtrHighBits is the shift that places the pointer in the high 32 bits of a
// packed reference.
const PtrHighBits = 32

// PackPtrLen packs a pointer and length into a single uint64 with the
// pointer in the high 32 bits and the length in the low 32 bits.
//
// It is a pure bit operation: no allocation, no validation. A packed value
// with ptr==0 or len==0 is the canonical empty reference; readers such as
// UnpackString collapse it to "" instead of dereferencing.
func PackPtrLen(ptr, length uint32) uint64 {
	return (uint64(ptr) << PtrHighBits) | uint64(length)
}

// UnpackPtrLen is the exact inverse of PackPtrLen.
func UnpackPtrLen(packed uint64) (ptr, length uint32) {
	return uint32(packed >> PtrHighBits), uint32(packed)
}

// IsEmptyRef reports whether a packed reference denotes the absent/empty
// payload (null pointer or zero length).
func IsEmptyRef(packed uint64) bool {
	ptr, length := UnpackPtrLen(packed)
	return ptr == 0 || length == 0
}
