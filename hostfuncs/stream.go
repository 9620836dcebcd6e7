package hostfuncs

import (
	"strings"
	"sync"
)

// StreamSink receives the events a node emits through the stream namespace.
type StreamSink interface {
	Emit(eventType, data string)
}

// StreamFunc adapts a function to StreamSink.
type StreamFunc func(eventType, data string)

func (f StreamFunc) Emit(eventType, data string) { f(eventType, data) }

// DefaultMaxStreamCapture bounds the text a CaptureSink accumulates (1MB).
// Protects the host from a node streaming unbounded output.
const DefaultMaxStreamCapture = 1 * 1024 * 1024

// DefaultMaxStreamEvents bounds how many events a CaptureSink records. The
// event list needs its own cap: the text limit alone would let a node exhaust
// host memory with non-text emissions.
const DefaultMaxStreamEvents = 4096

// CaptureSink records stream events and concatenates text chunks up to a
// size limit, discarding the overflow. Used by embedded hosts that want the
// streamed text after the run, and by tests.
type CaptureSink struct {
	mu        sync.Mutex
	limit     int
	maxEvents int
	text      strings.Builder
	events    []StreamEvent
	Truncated bool
}

// StreamEvent is one recorded emission.
type StreamEvent struct {
	Type string
	Data string
}

// NewCaptureSink returns a sink bounded to limit bytes of text; a limit of 0
// uses DefaultMaxStreamCapture.
func NewCaptureSink(limit int) *CaptureSink {
	if limit <= 0 {
		limit = DefaultMaxStreamCapture
	}
	return &CaptureSink{limit: limit, maxEvents: DefaultMaxStreamEvents}
}

func (c *CaptureSink) Emit(eventType, data string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if len(c.events) < c.maxEvents {
		c.events = append(c.events, StreamEvent{Type: eventType, Data: data})
	} else {
		c.Truncated = true
	}
	if eventType != "text" {
		return
	}

	remaining := c.limit - c.text.Len()
	if remaining <= 0 {
		c.Truncated = true
		return
	}
	if len(data) > remaining {
		c.Truncated = true
		data = data[:remaining]
	}
	c.text.WriteString(data)
}

// Text returns the concatenated text chunks.
func (c *CaptureSink) Text() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.text.String()
}

// Events returns a copy of all recorded events.
func (c *CaptureSink) Events() []StreamEvent {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]StreamEvent, len(c.events))
	copy(out, c.events)
	return out
}

// Reset clears recorded events, text and the truncation flag.
func (c *CaptureSink) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.events = nil
	c.text.Reset()
	c.Truncated = false
}
