package abi

import "sync"

// ResultSlot is the single reusable buffer holding the bytes of the most
// recently produced outbound payload. Every export that returns a packed
// reference writes into this slot and returns a reference into it.
//
// The slot admits at most one live outbound reference at a time: the host
// must fully read a returned payload before the guest produces the next one.
// The protocol is strictly call-then-read, never call-call-read; producing a
// second payload while the first is still outstanding is a contract
// violation. In strict mode (test builds) the violation panics; otherwise it
// is counted so callers can assert on it.
type ResultSlot struct {
	mu          sync.Mutex
	buf         []byte
	outstanding bool
	strict      bool
	violations  int
}

// NewResultSlot returns an empty result slot.
func NewResultSlot() *ResultSlot {
	return &ResultSlot{}
}

// SetStrict toggles strict mode. When strict, Produce panics if the previous
// payload has not been consumed.
func (s *ResultSlot) SetStrict(strict bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.strict = strict
}

// Produce copies payload into the slot's backing buffer and marks the slot
// outstanding. The returned slice aliases the slot buffer and stays valid
// only until the next Produce call.
func (s *ResultSlot) Produce(payload []byte) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.outstanding {
		s.violations++
		if s.strict {
			panic("abi: result slot produced before previous payload was consumed")
		}
	}

	if cap(s.buf) < len(payload) {
		s.buf = make([]byte, len(payload))
	}
	s.buf = s.buf[:len(payload)]
	copy(s.buf, payload)
	s.outstanding = len(payload) > 0
	return s.buf
}

// Consume marks the current payload as fully read by the host. A new export
// call implies the host is done with the previous payload, so exports call
// Consume before producing.
func (s *ResultSlot) Consume() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.outstanding = false
}

// Outstanding reports whether a produced payload has not been consumed yet.
func (s *ResultSlot) Outstanding() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.outstanding
}

// Violations returns how many times Produce overwrote an unconsumed payload.
func (s *ResultSlot) Violations() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.violations
}

// Bytes returns the slot's current payload.
func (s *ResultSlot) Bytes() []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf
}
