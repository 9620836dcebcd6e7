//go:build wasip1

package abi

import (
	"fmt"
	"sync"
	"unsafe"
)

// MaxTotalAllocations bounds the total memory handed out through the alloc
// export. Prevents unbounded growth of WASM linear memory when a host keeps
// staging inputs without freeing.
const MaxTotalAllocations = 100 * 1024 * 1024 // 100 MB

// memoryManager tracks every allocation made through the alloc export. It
// keeps a reference to each slice so the Go GC cannot collect it while the
// host still holds the pointer.
var memoryManager = struct {
	sync.Mutex
	ptrs           map[uint32][]byte
	totalAllocated int
}{
	ptrs: make(map[uint32][]byte),
}

// allocExport reserves guest linear memory for the host to stage call-input
// bytes into before invoking an export.
//
//go:wasmexport alloc
func allocExport(size uint32) uint32 {
	if size == 0 {
		return 0
	}

	memoryManager.Lock()
	defer memoryManager.Unlock()

	if memoryManager.totalAllocated+int(size) > MaxTotalAllocations {
		panic(fmt.Sprintf("abi: allocation limit exceeded (requested %d, allocated %d)",
			size, memoryManager.totalAllocated))
	}

	buf := make([]byte, size)
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))
	memoryManager.ptrs[ptr] = buf
	memoryManager.totalAllocated += int(size)
	return ptr
}

// deallocExport releases memory previously returned by alloc. Untracked
// pointers are ignored, which makes double-free idempotent. Accounting uses
// the stored slice length, not the caller's size argument.
//
//go:wasmexport dealloc
func deallocExport(ptr uint32, size uint32) {
	_ = size
	memoryManager.Lock()
	defer memoryManager.Unlock()

	stored, ok := memoryManager.ptrs[ptr]
	if !ok {
		return
	}
	delete(memoryManager.ptrs, ptr)
	memoryManager.totalAllocated -= len(stored)
	if memoryManager.totalAllocated < 0 {
		memoryManager.totalAllocated = 0
	}
}

// Dealloc releases a tracked allocation from guest code. Used after reading
// a host-produced payload that the host placed via the alloc export.
func Dealloc(ptr, size uint32) {
	deallocExport(ptr, size)
}

// StringPtr returns the linear-memory offset and length of a string's bytes.
// The reference is only valid while the string is reachable, which holds for
// the duration of a synchronous host call.
func StringPtr(s string) (uint32, uint32) {
	if len(s) == 0 {
		return 0, 0
	}
	return uint32(uintptr(unsafe.Pointer(unsafe.StringData(s)))), uint32(len(s))
}

// BytesPtr returns the linear-memory offset and length of a byte slice.
func BytesPtr(b []byte) (uint32, uint32) {
	if len(b) == 0 {
		return 0, 0
	}
	return uint32(uintptr(unsafe.Pointer(&b[0]))), uint32(len(b))
}

// ReadBytes copies length bytes from guest linear memory at ptr.
func ReadBytes(ptr, length uint32) []byte {
	if ptr == 0 || length == 0 {
		return nil
	}
	src := unsafe.Slice((*byte)(unsafe.Pointer(uintptr(ptr))), length)
	out := make([]byte, length)
	copy(out, src)
	return out
}

// BytesFromPacked reads the payload a packed reference points at. Empty
// references yield nil. The source memory is deallocated after the copy,
// since host-produced payloads are staged through the guest's own allocator.
func BytesFromPacked(packed uint64) []byte {
	ptr, length := UnpackPtrLen(packed)
	if ptr == 0 || length == 0 {
		return nil
	}
	out := ReadBytes(ptr, length)
	Dealloc(ptr, length)
	return out
}

// UnpackString decodes a packed reference as text, treating ptr==0 or len==0
// as the empty string rather than dereferencing.
func UnpackString(packed uint64) string {
	return string(BytesFromPacked(packed))
}

// PackResult stores payload in the slot and returns a packed reference into
// the slot's buffer for the host to read.
func (s *ResultSlot) PackResult(payload []byte) uint64 {
	buf := s.Produce(payload)
	if len(buf) == 0 {
		return 0
	}
	ptr := uint32(uintptr(unsafe.Pointer(&buf[0])))
	return PackPtrLen(ptr, uint32(len(buf)))
}
