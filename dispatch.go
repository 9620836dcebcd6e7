package sdk

import (
	"fmt"
	"sync/atomic"

	"github.com/TM9657/flow-like-sdk-go/jsonlite"
)

// runInFlight guards the run export against reentry. The guest is single
// threaded, so a second entry can only mean a host calling run from inside a
// host function it serves for the same run.
var runInFlight atomic.Bool

// definitionJSON renders the first registered node's definition for the
// get_node export. An empty module renders an empty object.
func definitionJSON() string {
	if len(registry.nodes) == 0 {
		return "{}"
	}
	def := registry.nodes[0].Definition()
	return def.ToJSON()
}

// definitionsJSON renders all registered definitions, in registration order,
// for the get_nodes export.
func definitionsJSON() string {
	b := jsonlite.NewBuilder().BeginArray()
	for _, n := range registry.nodes {
		def := n.Definition()
		b.Raw(def.ToJSON())
	}
	return b.EndArray().String()
}

// dispatchRun parses a run envelope, routes it to the addressed node and
// serializes the outcome. Always returns a well-formed result document:
// lookup failures, panics in node code and contract violations all come back
// as error results rather than traps.
func dispatchRun(inputJSON string) string {
	if !runInFlight.CompareAndSwap(false, true) {
		r := FailResult("contract violation in run: reentrant invocation")
		return r.ToJSON()
	}
	defer runInFlight.Store(false)

	input := ParseExecutionInput(inputJSON)
	node, err := lookupNode(input.NodeName)
	if err != nil {
		r := FailResult(err.Error())
		return r.ToJSON()
	}

	result := runNode(node, input)
	return result.ToJSON()
}

// runNode executes one node invocation, converting panics into error
// results. A contract violation recorded on the context overrides whatever
// result the node body returned.
func runNode(node Node, input ExecutionInput) (result ExecutionResult) {
	ctx := NewExecutionContext(input)
	defer func() {
		if rec := recover(); rec != nil {
			result = FailResult(fmt.Sprintf("node panicked: %v", rec))
			return
		}
		if v := ctx.Violation(); v != nil {
			result = FailResult(v.Error())
		}
	}()

	result = node.Run(ctx)
	if !ctx.Finished() {
		// The node returned a hand-built result without sealing the
		// context. Accept it; the violation check above still applies.
		return result
	}
	return result
}
