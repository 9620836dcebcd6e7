package sdk

import (
	"sort"

	"github.com/TM9657/flow-like-sdk-go/jsonlite"
)

// ExecutionResult is what a run hands back to the host: output pin values as
// raw JSON text, the exec pins to fire next, and optionally an error message
// or a pending marker for long-running work.
type ExecutionResult struct {
	Outputs      map[string]string `json:"outputs"`
	Error        *string           `json:"error,omitempty"`
	ActivateExec []string          `json:"activate_exec"`
	Pending      bool              `json:"pending"`
}

// SuccessResult returns an empty successful result.
func SuccessResult() ExecutionResult {
	return ExecutionResult{
		Outputs:      make(map[string]string),
		ActivateExec: []string{},
	}
}

// FailResult returns a result carrying an error message.
func FailResult(message string) ExecutionResult {
	r := SuccessResult()
	r.Error = &message
	return r
}

// SetOutput stores a raw JSON value on an output pin.
func (r *ExecutionResult) SetOutput(name, rawJSON string) *ExecutionResult {
	if r.Outputs == nil {
		r.Outputs = make(map[string]string)
	}
	r.Outputs[name] = rawJSON
	return r
}

// ActivateExecPin queues an exec pin for downstream activation.
func (r *ExecutionResult) ActivateExecPin(name string) *ExecutionResult {
	r.ActivateExec = append(r.ActivateExec, name)
	return r
}

// SetPending marks the run as intentionally unfinished.
func (r *ExecutionResult) SetPending(pending bool) *ExecutionResult {
	r.Pending = pending
	return r
}

// SetError records an error message on the result.
func (r *ExecutionResult) SetError(message string) *ExecutionResult {
	r.Error = &message
	return r
}

// ToJSON renders the result envelope. Output keys are emitted in sorted
// order so the same result always serializes to the same bytes. The error
// field appears only when an error is set; pending is always present.
func (r *ExecutionResult) ToJSON() string {
	keys := make([]string, 0, len(r.Outputs))
	for k := range r.Outputs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	b := jsonlite.NewBuilder().
		BeginObject().
		Key("outputs").BeginObject()
	for _, k := range keys {
		b.Key(k).Raw(r.Outputs[k])
	}
	b.EndObject().
		Key("activate_exec").BeginArray()
	for _, name := range r.ActivateExec {
		b.Str(name)
	}
	b.EndArray().
		Key("pending").Bool(r.Pending)
	if r.Error != nil {
		b.Key("error").Str(*r.Error)
	}
	return b.EndObject().String()
}
