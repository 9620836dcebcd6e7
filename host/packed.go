package host

import (
	"fmt"

	"github.com/tetratelabs/wazero/api"
)

// ReadPacked copies the payload a packed (ptr << 32 | len) reference points
// at out of guest memory. The copy detaches the result from the guest's
// reusable result buffer, which the next export call overwrites.
func ReadPacked(mem api.Memory, packed uint64) ([]byte, error) {
	ptr := uint32(packed >> 32)
	length := uint32(packed)
	if ptr == 0 || length == 0 {
		return nil, fmt.Errorf("empty reference from guest")
	}
	data, ok := mem.Read(ptr, length)
	if !ok {
		return nil, fmt.Errorf("packed reference (ptr=%d, len=%d) out of bounds", ptr, length)
	}
	out := make([]byte, length)
	copy(out, data)
	return out, nil
}
