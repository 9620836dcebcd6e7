//go:build !wasip1

package sdk

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TM9657/flow-like-sdk-go/hostcall"
	"github.com/TM9657/flow-like-sdk-go/jsonlite"
)

func resetRegistry() {
	registry.nodes = nil
	registry.byName = nil
}

// repeatTextNode repeats its input text a clamped number of times.
type repeatTextNode struct{}

func (repeatTextNode) Definition() NodeDefinition {
	def := NewNodeDefinition("repeat_text", "Repeat Text", "Repeats text N times", "Text")
	def.AddPin(InputPin(ExecIn, "In", "", TypeExec)).
		AddPin(InputPin("input_text", "Text", "", TypeString)).
		AddPin(InputPin("multiplier", "Multiplier", "", TypeI64).WithDefault("1")).
		AddPin(OutputPin(ExecOut, "Out", "", TypeExec)).
		AddPin(OutputPin("output_text", "Repeated", "", TypeString)).
		AddPin(OutputPin("char_count", "Characters", "", TypeI64))
	return def
}

func (repeatTextNode) Run(ctx *ExecutionContext) ExecutionResult {
	text := ctx.GetString("input_text")
	multiplier := ctx.GetI64("multiplier")
	if multiplier < 0 {
		multiplier = 0
	}

	repeated := strings.Repeat(text, int(multiplier))
	ctx.SetOutputString("output_text", repeated)
	ctx.SetOutputI64("char_count", int64(len(repeated)))
	return ctx.Success()
}

type panicNode struct{}

func (panicNode) Definition() NodeDefinition {
	return NewNodeDefinition("panic_node", "Panic", "", "Test")
}

func (panicNode) Run(*ExecutionContext) ExecutionResult {
	panic("boom")
}

type sloppyNode struct{}

func (sloppyNode) Definition() NodeDefinition {
	return NewNodeDefinition("sloppy", "Sloppy", "", "Test")
}

func (sloppyNode) Run(ctx *ExecutionContext) ExecutionResult {
	result := ctx.Success()
	ctx.SetOutputString("late", "too late")
	return result
}

type pendingNode struct{}

func (pendingNode) Definition() NodeDefinition {
	return NewNodeDefinition("pending_node", "Pending", "", "Test")
}

func (pendingNode) Run(ctx *ExecutionContext) ExecutionResult {
	ctx.SetPending(true)
	return ctx.Finish()
}

func runEnvelope(nodeName string, inputs map[string]string) string {
	b := jsonlite.NewBuilder().
		BeginObject().
		Key("inputs").BeginObject()
	for k, v := range inputs {
		b.Key(k).Raw(v)
	}
	b.EndObject().
		Key("node_id").Str("node-1").
		Key("node_name").Str(nodeName).
		Key("run_id").Str("run-1").
		Key("app_id").Str("app-1").
		Key("board_id").Str("board-1").
		Key("user_id").Str("user-1").
		Key("stream_state").Bool(false).
		Key("log_level").Int(int64(LevelInfo))
	return b.EndObject().String()
}

type resultEnvelope struct {
	Outputs      map[string]json.RawMessage `json:"outputs"`
	Error        *string                    `json:"error"`
	ActivateExec []string                   `json:"activate_exec"`
	Pending      bool                       `json:"pending"`
}

func parseResult(t *testing.T, doc string) resultEnvelope {
	t.Helper()
	var r resultEnvelope
	require.NoError(t, json.Unmarshal([]byte(doc), &r), "result must be valid JSON: %s", doc)
	return r
}

func TestDispatchRepeatText(t *testing.T) {
	resetRegistry()
	Register(repeatTextNode{})

	out := dispatchRun(runEnvelope("repeat_text", map[string]string{
		"input_text": `"ab"`,
		"multiplier": "3",
	}))
	r := parseResult(t, out)

	require.Nil(t, r.Error)
	assert.Equal(t, `"ababab"`, string(r.Outputs["output_text"]))
	assert.Equal(t, "6", string(r.Outputs["char_count"]))
	assert.Equal(t, []string{ExecOut}, r.ActivateExec)
	assert.False(t, r.Pending)
}

func TestDispatchRepeatTextEmptyInput(t *testing.T) {
	resetRegistry()
	Register(repeatTextNode{})

	out := dispatchRun(runEnvelope("repeat_text", nil))
	r := parseResult(t, out)

	require.Nil(t, r.Error)
	assert.Equal(t, `""`, string(r.Outputs["output_text"]))
	assert.Equal(t, "0", string(r.Outputs["char_count"]))
}

func TestDispatchNegativeMultiplierClampsToZero(t *testing.T) {
	resetRegistry()
	Register(repeatTextNode{})

	out := dispatchRun(runEnvelope("repeat_text", map[string]string{
		"input_text": `"xyz"`,
		"multiplier": "-5",
	}))
	r := parseResult(t, out)

	require.Nil(t, r.Error)
	assert.Equal(t, `""`, string(r.Outputs["output_text"]))
	assert.Equal(t, "0", string(r.Outputs["char_count"]))
}

func TestDispatchSingleNodeIgnoresEmptyName(t *testing.T) {
	resetRegistry()
	Register(repeatTextNode{})

	out := dispatchRun(runEnvelope("", map[string]string{
		"input_text": `"a"`,
		"multiplier": "2",
	}))
	r := parseResult(t, out)

	require.Nil(t, r.Error)
	assert.Equal(t, `"aa"`, string(r.Outputs["output_text"]))
}

func TestDispatchUnknownNode(t *testing.T) {
	resetRegistry()
	Register(repeatTextNode{})
	Register(pendingNode{})

	r := parseResult(t, dispatchRun(runEnvelope("no_such_node", nil)))
	require.NotNil(t, r.Error)
	assert.Contains(t, *r.Error, `unknown node "no_such_node"`)
}

func TestDispatchNoNodesRegistered(t *testing.T) {
	resetRegistry()

	r := parseResult(t, dispatchRun(runEnvelope("anything", nil)))
	require.NotNil(t, r.Error)
	assert.Contains(t, *r.Error, "no nodes registered")
}

func TestDispatchPanicBecomesErrorResult(t *testing.T) {
	resetRegistry()
	Register(panicNode{})

	r := parseResult(t, dispatchRun(runEnvelope("panic_node", nil)))
	require.NotNil(t, r.Error)
	assert.Contains(t, *r.Error, "node panicked: boom")
	assert.Empty(t, r.ActivateExec)
}

func TestDispatchContractViolationOverridesResult(t *testing.T) {
	resetRegistry()
	Register(sloppyNode{})

	r := parseResult(t, dispatchRun(runEnvelope("sloppy", nil)))
	require.NotNil(t, r.Error)
	assert.Contains(t, *r.Error, "contract violation in SetOutput")
}

func TestDispatchPendingSerializedVerbatim(t *testing.T) {
	resetRegistry()
	Register(pendingNode{})

	out := dispatchRun(runEnvelope("pending_node", nil))
	r := parseResult(t, out)

	assert.True(t, r.Pending)
	assert.Contains(t, out, `"pending":true`)
}

// fetchStatusNode mirrors the http-status example: it reports the status of
// a GET request and degrades to success:false when the capability is denied.
type fetchStatusNode struct{}

func (fetchStatusNode) Definition() NodeDefinition {
	def := NewNodeDefinition("fetch_status", "Fetch Status", "", "Network")
	def.AddPermission("http")
	return def
}

func (fetchStatusNode) Run(ctx *ExecutionContext) ExecutionResult {
	status := hostcall.HTTPRequest(hostcall.MethodGet, "https://example.com", "{}", nil)
	if status == hostcall.HTTPDenied {
		ctx.Error("http capability denied")
		ctx.SetOutputI64("status", 0)
		ctx.SetOutputBool("success", false)
		return ctx.Success()
	}
	ctx.SetOutputI64("status", int64(status))
	ctx.SetOutputBool("success", status >= 200 && status < 300)
	return ctx.Success()
}

func TestDispatchHTTPDenialFinishesNormally(t *testing.T) {
	resetRegistry()
	Register(fetchStatusNode{})
	hostcall.SetBridge(nil) // denying bridge, as for an ungranted capability

	r := parseResult(t, dispatchRun(runEnvelope("fetch_status", nil)))

	// Denial is an in-band value, not a failure: the node completes and
	// reports it through its outputs.
	require.Nil(t, r.Error)
	assert.Equal(t, "0", string(r.Outputs["status"]))
	assert.Equal(t, "false", string(r.Outputs["success"]))
	assert.Equal(t, []string{ExecOut}, r.ActivateExec)
	assert.False(t, r.Pending)
}

// nestedRunNode invokes the run dispatch from inside its own run body.
type nestedRunNode struct{}

func (nestedRunNode) Definition() NodeDefinition {
	return NewNodeDefinition("nested_run", "Nested Run", "", "Test")
}

func (nestedRunNode) Run(ctx *ExecutionContext) ExecutionResult {
	ctx.SetOutput("inner", dispatchRun(runEnvelope("nested_run", nil)))
	return ctx.Success()
}

func TestDispatchReentrantRunIsViolation(t *testing.T) {
	resetRegistry()
	Register(nestedRunNode{})

	r := parseResult(t, dispatchRun(runEnvelope("nested_run", nil)))

	// The outer run completes; the inner one is rejected in-band.
	require.Nil(t, r.Error)
	inner := parseResult(t, string(r.Outputs["inner"]))
	require.NotNil(t, inner.Error)
	assert.Contains(t, *inner.Error, "contract violation in run: reentrant invocation")
	assert.Empty(t, inner.ActivateExec)
}

func TestDispatchMalformedEnvelope(t *testing.T) {
	resetRegistry()
	Register(repeatTextNode{})

	r := parseResult(t, dispatchRun(`{"inputs":`))
	require.Nil(t, r.Error)
	assert.Equal(t, `""`, string(r.Outputs["output_text"]))
}

func TestDefinitionsJSON(t *testing.T) {
	resetRegistry()
	Register(repeatTextNode{})
	Register(pendingNode{})

	var defs []map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(definitionsJSON()), &defs))
	require.Len(t, defs, 2)
	assert.JSONEq(t, `"repeat_text"`, string(defs[0]["name"]))
	assert.JSONEq(t, `"pending_node"`, string(defs[1]["name"]))

	var single map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(definitionJSON()), &single))
	assert.JSONEq(t, `"repeat_text"`, string(single["name"]))
}

func TestDefinitionJSONEmptyRegistry(t *testing.T) {
	resetRegistry()
	assert.Equal(t, "{}", definitionJSON())
	assert.Equal(t, "[]", definitionsJSON())
}

func TestRegisterRejectsInvalidAndDuplicate(t *testing.T) {
	resetRegistry()

	assert.Panics(t, func() {
		Register(badNode{})
	})

	resetRegistry()
	Register(pendingNode{})
	assert.Panics(t, func() {
		Register(pendingNode{})
	})
}

type badNode struct{}

func (badNode) Definition() NodeDefinition {
	return NodeDefinition{FriendlyName: "nameless"}
}

func (badNode) Run(ctx *ExecutionContext) ExecutionResult {
	return ctx.Finish()
}

func TestResultToJSONSortsOutputKeys(t *testing.T) {
	r := SuccessResult()
	r.SetOutput("zulu", "1").SetOutput("alpha", "2").SetOutput("mike", "3")

	out := r.ToJSON()
	assert.Less(t, strings.Index(out, `"alpha"`), strings.Index(out, `"mike"`))
	assert.Less(t, strings.Index(out, `"mike"`), strings.Index(out, `"zulu"`))
	// Same content always serializes to the same bytes.
	assert.Equal(t, out, r.ToJSON())
}

func TestParseExecutionInputDefaults(t *testing.T) {
	in := ParseExecutionInput("{}")
	assert.NotNil(t, in.Inputs)
	assert.Empty(t, in.Inputs)
	assert.Equal(t, "", in.NodeName)
	assert.False(t, in.StreamState)
	assert.Equal(t, int32(0), in.LogLevel)

	in = ParseExecutionInput(runEnvelope("repeat_text", map[string]string{"k": `{"nested":["v"]}`}))
	assert.Equal(t, "repeat_text", in.NodeName)
	assert.Equal(t, "run-1", in.RunID)
	assert.Equal(t, `{"nested":["v"]}`, in.Inputs["k"])
	assert.Equal(t, LevelInfo, in.LogLevel)
}
