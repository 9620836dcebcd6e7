// Package sdk builds Flow-Like workflow nodes that compile to WASM.
//
// A node declares its shape through a NodeDefinition (typed input and output
// pins, permissions, catalog metadata), registers itself with Register, and
// implements Run against an ExecutionContext. The package wires the guest
// side of the ABI: get_node, get_nodes and run exports, the packed-pointer
// result contract, and the capability-gated host call surface. Host-side
// loading and execution live in the host package.
package sdk

const (
	// Version of the SDK.
	Version = "0.1.0"

	// ABIVersion is reported through the get_abi_version export. Hosts
	// refuse modules whose ABI version they do not understand.
	ABIVersion uint32 = 1
)

// Log severity levels. A message is delivered only when the run's log level
// is at or below the message severity.
const (
	LevelTrace int32 = iota
	LevelDebug
	LevelInfo
	LevelWarn
	LevelError
)

// PinType discriminates input pins from output pins.
type PinType string

const (
	PinInput  PinType = "Input"
	PinOutput PinType = "Output"
)

// DataType is the declared value type of a pin.
type DataType string

const (
	TypeExec    DataType = "Exec"
	TypeString  DataType = "String"
	TypeI64     DataType = "I64"
	TypeF64     DataType = "F64"
	TypeBool    DataType = "Bool"
	TypeGeneric DataType = "Generic"
	TypeBytes   DataType = "Bytes"
	TypeDate    DataType = "Date"
	TypePathBuf DataType = "PathBuf"
	TypeStruct  DataType = "Struct"
)

// Conventional execution pin names. Boards route control flow through exec
// pins; most nodes expose exactly this pair.
const (
	ExecIn  = "exec_in"
	ExecOut = "exec_out"
)
