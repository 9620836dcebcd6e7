package hostfuncs

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCaptureSinkCollectsTextAndEvents(t *testing.T) {
	sink := NewCaptureSink(0)

	sink.Emit("text", "hello ")
	sink.Emit("progress", `{"progress":0.5}`)
	sink.Emit("text", "world")

	assert.Equal(t, "hello world", sink.Text())
	events := sink.Events()
	require.Len(t, events, 3)
	assert.Equal(t, StreamEvent{Type: "progress", Data: `{"progress":0.5}`}, events[1])
	assert.False(t, sink.Truncated)
}

func TestCaptureSinkTruncatesAtLimit(t *testing.T) {
	sink := NewCaptureSink(8)

	sink.Emit("text", "12345")
	sink.Emit("text", "67890")
	sink.Emit("text", "overflow")

	assert.Equal(t, "12345678", sink.Text())
	assert.True(t, sink.Truncated)
	// Events are still recorded past the text limit.
	assert.Len(t, sink.Events(), 3)
}

func TestCaptureSinkBoundsEventCount(t *testing.T) {
	sink := NewCaptureSink(0)
	require.Equal(t, DefaultMaxStreamEvents, sink.maxEvents)
	sink.maxEvents = 3

	sink.Emit("token", "a")
	sink.Emit("token", "b")
	sink.Emit("text", "keep ")
	sink.Emit("token", "dropped")
	sink.Emit("text", "going")

	assert.Len(t, sink.Events(), 3)
	assert.True(t, sink.Truncated)
	// Text keeps accumulating under its own budget once the event list is
	// full, so the concatenated stream stays complete.
	assert.Equal(t, "keep going", sink.Text())
}

func TestCaptureSinkReset(t *testing.T) {
	sink := NewCaptureSink(4)
	sink.Emit("text", strings.Repeat("x", 10))
	require.True(t, sink.Truncated)

	sink.Reset()
	assert.Empty(t, sink.Text())
	assert.Empty(t, sink.Events())
	assert.False(t, sink.Truncated)

	sink.Emit("text", "ok")
	assert.Equal(t, "ok", sink.Text())
}

func TestStreamFuncAdapter(t *testing.T) {
	var gotType, gotData string
	sink := StreamFunc(func(eventType, data string) {
		gotType, gotData = eventType, data
	})
	sink.Emit("token", "t1")
	assert.Equal(t, "token", gotType)
	assert.Equal(t, "t1", gotData)
}

func TestInvocationState(t *testing.T) {
	inv := NewInvocation(map[string]string{"input_text": `"hi"`})
	inv.NodeID = "node-1"
	inv.UserID = "user-1"

	assert.Equal(t, `"hi"`, inv.Input("input_text"))
	assert.Equal(t, "", inv.Input("absent"))

	inv.SetOutput("output_text", `"done"`)
	inv.ActivateExec("exec_out")

	assert.Equal(t, map[string]string{"output_text": `"done"`}, inv.Outputs())
	assert.Equal(t, []string{"exec_out"}, inv.Activations())
	assert.Equal(t, Scope{NodeID: "node-1", UserID: "user-1"}, inv.Scope())

	// Returned copies do not alias internal state.
	inv.Outputs()["x"] = "y"
	assert.NotContains(t, inv.Outputs(), "x")
}
