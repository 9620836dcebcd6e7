package host

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tetratelabs/wazero/api"

	"github.com/TM9657/flow-like-sdk-go/hostfuncs"
)

// SupportedABIVersion is the guest ABI this host speaks.
const SupportedABIVersion = 1

// NodeDefinition is the host-side view of a node's self-description. Pin
// defaults stay raw JSON because their type depends on the pin.
type NodeDefinition struct {
	Name         string          `json:"name"`
	FriendlyName string          `json:"friendly_name"`
	Description  string          `json:"description"`
	Category     string          `json:"category"`
	Icon         *string         `json:"icon,omitempty"`
	Pins         []PinDefinition `json:"pins"`
	Scores       json.RawMessage `json:"scores,omitempty"`
	LongRunning  bool            `json:"long_running"`
	Docs         *string         `json:"docs,omitempty"`
	Permissions  []string        `json:"permissions,omitempty"`
	ABIVersion   uint32          `json:"abi_version"`
}

// PinDefinition is the host-side view of one pin.
type PinDefinition struct {
	Name         string          `json:"name"`
	FriendlyName string          `json:"friendly_name"`
	Description  string          `json:"description"`
	PinType      string          `json:"pin_type"`
	DataType     string          `json:"data_type"`
	DefaultValue json.RawMessage `json:"default_value,omitempty"`
	ValueType    *string         `json:"value_type,omitempty"`
	Schema       *string         `json:"schema,omitempty"`
}

// RunRequest is one node invocation: pin inputs as raw JSON plus the run
// identity and delivery settings.
type RunRequest struct {
	NodeName string
	NodeID   string
	RunID    string
	AppID    string
	BoardID  string
	UserID   string
	Stream   bool
	LogLevel int32
	Inputs   map[string]json.RawMessage
}

// RunResult is the outcome of a node invocation.
type RunResult struct {
	Outputs      map[string]json.RawMessage `json:"outputs"`
	Error        *string                    `json:"error,omitempty"`
	ActivateExec []string                   `json:"activate_exec"`
	Pending      bool                       `json:"pending"`
}

type runEnvelope struct {
	Inputs      map[string]json.RawMessage `json:"inputs"`
	NodeID      string                     `json:"node_id"`
	NodeName    string                     `json:"node_name"`
	RunID       string                     `json:"run_id"`
	AppID       string                     `json:"app_id"`
	BoardID     string                     `json:"board_id"`
	UserID      string                     `json:"user_id"`
	StreamState bool                       `json:"stream_state"`
	LogLevel    int32                      `json:"log_level"`
}

// NodeModule is an instantiated node module: one WASM instance plus its
// declared definitions. Calls into one module must not overlap; the guest is
// single threaded and its result slot holds one payload at a time.
type NodeModule struct {
	module api.Module
	host   *hostfuncs.Host
	defs   []NodeDefinition
}

// LoadModule instantiates a module, verifies its ABI version, reads its node
// definitions and grants the permissions they declare.
func (e *Executor) LoadModule(ctx context.Context, wasmBytes []byte) (*NodeModule, error) {
	mod, err := e.runtime.Instantiate(ctx, wasmBytes)
	if err != nil {
		return nil, fmt.Errorf("instantiate module: %w", err)
	}

	nm := &NodeModule{module: mod, host: e.host}

	abiVersion, err := nm.abiVersion(ctx)
	if err != nil {
		_ = mod.Close(ctx)
		return nil, err
	}
	if abiVersion != SupportedABIVersion {
		_ = mod.Close(ctx)
		return nil, fmt.Errorf("unsupported ABI version %d (host speaks %d)", abiVersion, SupportedABIVersion)
	}

	defs, err := nm.readDefinitions(ctx)
	if err != nil {
		_ = mod.Close(ctx)
		return nil, err
	}
	nm.defs = defs

	perms := make([]string, 0)
	for _, def := range defs {
		perms = append(perms, def.Permissions...)
	}
	e.host.SetPermissions(perms)

	return nm, nil
}

// Definitions returns the node definitions the module declared at load time.
func (m *NodeModule) Definitions() []NodeDefinition {
	return m.defs
}

// Definition returns the definition of the named node.
func (m *NodeModule) Definition(name string) (NodeDefinition, error) {
	for _, def := range m.defs {
		if def.Name == name {
			return def, nil
		}
	}
	return NodeDefinition{}, fmt.Errorf("module does not declare node %q", name)
}

// Close releases the module instance.
func (m *NodeModule) Close(ctx context.Context) error {
	return m.module.Close(ctx)
}

func (m *NodeModule) abiVersion(ctx context.Context) (uint32, error) {
	fn := m.module.ExportedFunction("get_abi_version")
	if fn == nil {
		return 0, fmt.Errorf("module does not export get_abi_version")
	}
	results, err := fn.Call(ctx)
	if err != nil {
		return 0, fmt.Errorf("get_abi_version: %w", err)
	}
	if len(results) == 0 {
		return 0, fmt.Errorf("get_abi_version returned no result")
	}
	return uint32(results[0]), nil
}

func (m *NodeModule) readDefinitions(ctx context.Context) ([]NodeDefinition, error) {
	packed, err := m.callRaw(ctx, "get_nodes", nil)
	if err != nil {
		return nil, err
	}
	data, err := ReadPacked(m.module.Memory(), packed)
	if err != nil {
		return nil, fmt.Errorf("read definitions: %w", err)
	}

	var defs []NodeDefinition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("parse definitions: %w", err)
	}
	return defs, nil
}

// Run executes one node invocation and returns its result.
func (m *NodeModule) Run(ctx context.Context, req RunRequest) (RunResult, error) {
	envelope := runEnvelope{
		Inputs:      req.Inputs,
		NodeID:      req.NodeID,
		NodeName:    req.NodeName,
		RunID:       req.RunID,
		AppID:       req.AppID,
		BoardID:     req.BoardID,
		UserID:      req.UserID,
		StreamState: req.Stream,
		LogLevel:    req.LogLevel,
	}
	if envelope.Inputs == nil {
		envelope.Inputs = make(map[string]json.RawMessage)
	}
	input, err := json.Marshal(envelope)
	if err != nil {
		return RunResult{}, fmt.Errorf("marshal run input: %w", err)
	}

	inv := hostfuncs.NewInvocation(rawInputs(req.Inputs))
	inv.NodeID = req.NodeID
	inv.RunID = req.RunID
	inv.AppID = req.AppID
	inv.BoardID = req.BoardID
	inv.UserID = req.UserID
	inv.StreamState = req.Stream
	inv.LogLevel = req.LogLevel

	m.host.SetInvocation(inv)
	defer m.host.SetInvocation(nil)

	packed, err := m.callRaw(ctx, "run", input)
	if err != nil {
		return RunResult{}, fmt.Errorf("run: %w", err)
	}
	data, err := ReadPacked(m.module.Memory(), packed)
	if err != nil {
		return RunResult{}, fmt.Errorf("read run result: %w", err)
	}

	var result RunResult
	if err := json.Unmarshal(data, &result); err != nil {
		return RunResult{}, fmt.Errorf("parse run result: %w", err)
	}
	return result, nil
}

func rawInputs(inputs map[string]json.RawMessage) map[string]string {
	out := make(map[string]string, len(inputs))
	for k, v := range inputs {
		out[k] = string(v)
	}
	return out
}

// callRaw invokes an export, staging the input through the guest allocator
// when present, and returns the packed result reference.
func (m *NodeModule) callRaw(ctx context.Context, name string, input []byte) (uint64, error) {
	fn := m.module.ExportedFunction(name)
	if fn == nil {
		return 0, fmt.Errorf("export %q not found", name)
	}

	var results []uint64
	var err error

	if len(input) == 0 {
		results, err = fn.Call(ctx)
	} else {
		alloc := m.module.ExportedFunction("alloc")
		if alloc == nil {
			return 0, fmt.Errorf("guest does not export alloc")
		}
		allocRes, allocErr := alloc.Call(ctx, uint64(len(input)))
		if allocErr != nil {
			return 0, fmt.Errorf("guest alloc: %w", allocErr)
		}
		if len(allocRes) == 0 || uint32(allocRes[0]) == 0 {
			return 0, fmt.Errorf("guest alloc failed for %d bytes", len(input))
		}
		ptr := uint32(allocRes[0])
		if !m.module.Memory().Write(ptr, input) {
			return 0, fmt.Errorf("write input to guest memory")
		}
		results, err = fn.Call(ctx, uint64(ptr), uint64(len(input)))
	}

	if err != nil {
		return 0, err
	}
	if len(results) == 0 {
		return 0, fmt.Errorf("export %q returned no result", name)
	}
	return results[0], nil
}
