package sdk

import (
	"github.com/TM9657/flow-like-sdk-go/hostcall"
	"github.com/TM9657/flow-like-sdk-go/jsonlite"
)

// ExecutionContext carries one run of a node: the input pin values, the run
// identity, and the result under construction. It is a state machine with
// two states, running and finished. Finish, Success and Fail seal the
// context; any mutation after that is a contract violation, recorded and
// surfaced in the run's error result.
//
// A context belongs to a single run and is not safe for concurrent use.
type ExecutionContext struct {
	input     ExecutionInput
	result    ExecutionResult
	finished  bool
	violation *ContractViolationError
}

// NewExecutionContext builds a running context over a parsed input envelope.
func NewExecutionContext(input ExecutionInput) *ExecutionContext {
	return &ExecutionContext{
		input:  input,
		result: SuccessResult(),
	}
}

// NodeID returns the board node instance id of this run.
func (c *ExecutionContext) NodeID() string { return c.input.NodeID }

// RunID returns the workflow run id.
func (c *ExecutionContext) RunID() string { return c.input.RunID }

// AppID returns the owning application id.
func (c *ExecutionContext) AppID() string { return c.input.AppID }

// BoardID returns the board id.
func (c *ExecutionContext) BoardID() string { return c.input.BoardID }

// UserID returns the id of the user the run executes for.
func (c *ExecutionContext) UserID() string { return c.input.UserID }

// IsStreaming reports whether the run has a live stream consumer.
func (c *ExecutionContext) IsStreaming() bool { return c.input.StreamState }

// LogLevel returns the run's minimum delivered log severity.
func (c *ExecutionContext) LogLevel() int32 { return c.input.LogLevel }

// lookupRaw finds an input pin's raw JSON text: the envelope first, then a
// live pin read from the host. Reports whether the pin exists at all.
func (c *ExecutionContext) lookupRaw(name string) (string, bool) {
	if raw, ok := c.input.Inputs[name]; ok {
		return raw, true
	}
	if raw := hostcall.GetInput(name); raw != "" {
		return raw, true
	}
	return "", false
}

// GetRaw returns the raw JSON text of an input pin. Pins absent from the
// envelope fall back to a live pin read from the host; a pin the host does
// not know either reads as "".
func (c *ExecutionContext) GetRaw(name string) string {
	raw, _ := c.lookupRaw(name)
	return raw
}

// GetString returns an input pin as text with one layer of JSON string
// encoding removed. Non-string values return their raw text; a missing pin
// reads as "".
func (c *ExecutionContext) GetString(name string) string {
	return c.GetStringOr(name, "")
}

// GetStringOr is GetString with a caller-supplied default for a missing pin.
func (c *ExecutionContext) GetStringOr(name, def string) string {
	raw, ok := c.lookupRaw(name)
	if !ok {
		return def
	}
	return jsonlite.Unquote(raw)
}

// GetI64 returns an input pin as an integer, parsed leniently: floats
// truncate and non-numeric values read as 0. A missing pin reads as 0.
func (c *ExecutionContext) GetI64(name string) int64 {
	return c.GetI64Or(name, 0)
}

// GetI64Or is GetI64 with a caller-supplied default for a missing pin. The
// default applies only to absence; a present non-numeric value still parses
// leniently to 0.
func (c *ExecutionContext) GetI64Or(name string, def int64) int64 {
	raw, ok := c.lookupRaw(name)
	if !ok {
		return def
	}
	return jsonlite.ParseLenientInt(raw)
}

// GetF64 returns an input pin as a float; non-numeric values read as 0. A
// missing pin reads as 0.
func (c *ExecutionContext) GetF64(name string) float64 {
	return c.GetF64Or(name, 0)
}

// GetF64Or is GetF64 with a caller-supplied default for a missing pin.
func (c *ExecutionContext) GetF64Or(name string, def float64) float64 {
	raw, ok := c.lookupRaw(name)
	if !ok {
		return def
	}
	return jsonlite.ParseLenientFloat(raw)
}

// GetBool returns an input pin as a boolean. Only the literal true reads as
// true; a missing pin reads as false.
func (c *ExecutionContext) GetBool(name string) bool {
	return c.GetBoolOr(name, false)
}

// GetBoolOr is GetBool with a caller-supplied default for a missing pin.
func (c *ExecutionContext) GetBoolOr(name string, def bool) bool {
	raw, ok := c.lookupRaw(name)
	if !ok {
		return def
	}
	return raw == "true"
}

// violate records a contract violation. Only the first one is kept.
func (c *ExecutionContext) violate(op, reason string) {
	if c.violation == nil {
		c.violation = &ContractViolationError{Op: op, Reason: reason}
	}
}

func (c *ExecutionContext) guard(op string) bool {
	if c.finished {
		c.violate(op, "context already finished")
		return false
	}
	return true
}

// SetOutput stores a raw JSON value on an output pin.
func (c *ExecutionContext) SetOutput(name, rawJSON string) {
	if !c.guard("SetOutput") {
		return
	}
	c.result.SetOutput(name, rawJSON)
}

// SetOutputString stores a text value on an output pin, quoting it for the
// wire.
func (c *ExecutionContext) SetOutputString(name, value string) {
	c.SetOutput(name, jsonlite.Quote(value))
}

// SetOutputI64 stores an integer value on an output pin.
func (c *ExecutionContext) SetOutputI64(name string, value int64) {
	c.SetOutput(name, jsonlite.NewBuilder().Int(value).String())
}

// SetOutputBool stores a boolean value on an output pin.
func (c *ExecutionContext) SetOutputBool(name string, value bool) {
	if value {
		c.SetOutput(name, "true")
	} else {
		c.SetOutput(name, "false")
	}
}

// ActivateExec queues an exec pin for downstream activation.
func (c *ExecutionContext) ActivateExec(name string) {
	if !c.guard("ActivateExec") {
		return
	}
	c.result.ActivateExecPin(name)
}

// SetPending marks the run as intentionally unfinished so the host keeps the
// node scheduled.
func (c *ExecutionContext) SetPending(pending bool) {
	if !c.guard("SetPending") {
		return
	}
	c.result.SetPending(pending)
}

// SetError records an error message without finishing the run.
func (c *ExecutionContext) SetError(message string) {
	if !c.guard("SetError") {
		return
	}
	c.result.SetError(message)
}

// Finish seals the context and returns the accumulated result. Finishing
// twice is a contract violation; the first result stands.
func (c *ExecutionContext) Finish() ExecutionResult {
	if c.finished {
		c.violate("Finish", "context already finished")
		return c.result
	}
	c.finished = true
	return c.result
}

// Success activates the conventional exec_out pin and finishes.
func (c *ExecutionContext) Success() ExecutionResult {
	c.ActivateExec(ExecOut)
	return c.Finish()
}

// Fail records an error and finishes without activating any exec pin.
func (c *ExecutionContext) Fail(message string) ExecutionResult {
	c.SetError(message)
	return c.Finish()
}

// Finished reports whether the context has been sealed.
func (c *ExecutionContext) Finished() bool { return c.finished }

// Violation returns the first recorded contract violation, or nil.
func (c *ExecutionContext) Violation() *ContractViolationError { return c.violation }

func (c *ExecutionContext) emit(level int32, send func()) {
	if c.input.LogLevel <= level {
		send()
	}
}

// Trace logs at trace severity, subject to the run's log level.
func (c *ExecutionContext) Trace(msg string) {
	c.emit(LevelTrace, func() { hostcall.LogTrace(msg) })
}

// Debug logs at debug severity.
func (c *ExecutionContext) Debug(msg string) {
	c.emit(LevelDebug, func() { hostcall.LogDebug(msg) })
}

// Info logs at info severity.
func (c *ExecutionContext) Info(msg string) {
	c.emit(LevelInfo, func() { hostcall.LogInfo(msg) })
}

// Warn logs at warn severity.
func (c *ExecutionContext) Warn(msg string) {
	c.emit(LevelWarn, func() { hostcall.LogWarn(msg) })
}

// Error logs at error severity.
func (c *ExecutionContext) Error(msg string) {
	c.emit(LevelError, func() { hostcall.LogError(msg) })
}

// LogJSON logs a message with a structured JSON payload at the given
// severity.
func (c *ExecutionContext) LogJSON(level int32, msg, dataJSON string) {
	c.emit(level, func() { hostcall.LogJSON(level, msg, dataJSON) })
}

// StreamText emits a text chunk to the run's stream consumer. A no-op when
// the run is not streaming, so nodes can stream unconditionally.
func (c *ExecutionContext) StreamText(text string) {
	if c.input.StreamState {
		hostcall.StreamText(text)
	}
}

// StreamJSON emits a typed event with a JSON payload to the stream.
func (c *ExecutionContext) StreamJSON(eventType, dataJSON string) {
	if c.input.StreamState {
		hostcall.StreamEmit(eventType, dataJSON)
	}
}

// StreamProgress emits a progress event. Progress is a fraction in [0, 1].
func (c *ExecutionContext) StreamProgress(progress float64, message string) {
	if !c.input.StreamState {
		return
	}
	payload := jsonlite.NewBuilder().
		BeginObject().
		Key("progress").Raw(jsonlite.FormatFloat(progress)).
		Key("message").Str(message).
		EndObject().
		String()
	hostcall.StreamEmit("progress", payload)
}

// Variable reads a run-scoped variable from the host.
func (c *ExecutionContext) Variable(name string) string {
	return hostcall.VarGet(name)
}

// SetVariable writes a run-scoped variable on the host.
func (c *ExecutionContext) SetVariable(name, value string) {
	hostcall.VarSet(name, value)
}

// HasVariable reports whether a run-scoped variable exists.
func (c *ExecutionContext) HasVariable(name string) bool {
	return hostcall.VarHas(name)
}

// DeleteVariable removes a run-scoped variable.
func (c *ExecutionContext) DeleteVariable(name string) {
	hostcall.VarDelete(name)
}

// TimeNow returns the host's wall clock in unix milliseconds. WASM guests
// have no trustworthy clock of their own.
func (c *ExecutionContext) TimeNow() int64 {
	return hostcall.TimeNow()
}

// Random returns a host-sourced random value.
func (c *ExecutionContext) Random() int64 {
	return hostcall.Random()
}
