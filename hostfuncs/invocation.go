package hostfuncs

import "sync"

// Invocation is the per-run state the import namespaces read and write: pin
// values for live reads, outputs and activations a node pushes during a long
// run, and the identity the meta namespace reports. The host installs one
// before calling the run export and collects it afterwards.
type Invocation struct {
	mu sync.Mutex

	// Identity, fixed for the run.
	NodeID      string
	RunID       string
	AppID       string
	BoardID     string
	UserID      string
	StreamState bool
	LogLevel    int32

	inputs      map[string]string
	outputs     map[string]string
	activations []string
}

// NewInvocation returns an invocation with the given pin inputs, raw JSON
// text keyed by pin name.
func NewInvocation(inputs map[string]string) *Invocation {
	inv := &Invocation{
		inputs:  make(map[string]string, len(inputs)),
		outputs: make(map[string]string),
	}
	for k, v := range inputs {
		inv.inputs[k] = v
	}
	return inv
}

// Input returns the raw JSON value of a pin, or "" when the pin is unknown.
func (inv *Invocation) Input(name string) string {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	return inv.inputs[name]
}

// SetOutput records a pin value pushed through the pins namespace.
func (inv *Invocation) SetOutput(name, value string) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.outputs[name] = value
}

// ActivateExec records an exec pin activation pushed during the run.
func (inv *Invocation) ActivateExec(name string) {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	inv.activations = append(inv.activations, name)
}

// Outputs returns a copy of the pin values pushed so far.
func (inv *Invocation) Outputs() map[string]string {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	out := make(map[string]string, len(inv.outputs))
	for k, v := range inv.outputs {
		out[k] = v
	}
	return out
}

// Activations returns a copy of the exec activations pushed so far.
func (inv *Invocation) Activations() []string {
	inv.mu.Lock()
	defer inv.mu.Unlock()
	out := make([]string, len(inv.activations))
	copy(out, inv.activations)
	return out
}

// Scope returns the storage scope of this invocation.
func (inv *Invocation) Scope() Scope {
	return Scope{NodeID: inv.NodeID, UserID: inv.UserID}
}
