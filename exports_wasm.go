//go:build wasip1

package sdk

import "github.com/TM9657/flow-like-sdk-go/internal/abi"

// resultSlot backs the packed references returned by the exports. One slot
// serves all exports: the host must copy a result before the next call, per
// the ABI's produce-then-consume contract.
var resultSlot = abi.NewResultSlot()

//go:wasmexport get_abi_version
func exportABIVersion() uint32 {
	return ABIVersion
}

//go:wasmexport get_node
func exportGetNode() uint64 {
	resultSlot.Consume()
	return resultSlot.PackResult([]byte(definitionJSON()))
}

//go:wasmexport get_nodes
func exportGetNodes() uint64 {
	resultSlot.Consume()
	return resultSlot.PackResult([]byte(definitionsJSON()))
}

//go:wasmexport run
func exportRun(ptr, length uint32) uint64 {
	input := string(abi.ReadBytes(ptr, length))
	abi.Dealloc(ptr, length)
	out := dispatchRun(input)
	resultSlot.Consume()
	return resultSlot.PackResult([]byte(out))
}
