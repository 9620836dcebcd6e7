package sdk

import "fmt"

// Node is what a module author implements: a self-description and a run
// body. Run receives a fresh context per invocation and returns the sealed
// result, usually via ctx.Success, ctx.Fail or ctx.Finish.
type Node interface {
	Definition() NodeDefinition
	Run(ctx *ExecutionContext) ExecutionResult
}

// registry holds the nodes of this module in registration order. Populated
// from init or main before the host calls any export, then read-only.
var registry struct {
	nodes  []Node
	byName map[string]Node
}

// Register adds a node to the module. Call it from the module's main (or an
// init function) before the scheduler starts. Registration validates the
// definition and panics on a malformed one or a duplicate name, since a
// module that cannot describe itself must not reach a host.
func Register(n Node) {
	def := n.Definition()
	if err := ValidateDefinition(def); err != nil {
		panic(fmt.Sprintf("sdk: invalid node definition: %v", err))
	}
	if registry.byName == nil {
		registry.byName = make(map[string]Node)
	}
	if _, dup := registry.byName[def.Name]; dup {
		panic(fmt.Sprintf("sdk: node %q registered twice", def.Name))
	}
	registry.nodes = append(registry.nodes, n)
	registry.byName[def.Name] = n
}

// RegisteredNodes returns the registered nodes in registration order.
func RegisteredNodes() []Node {
	return registry.nodes
}

// lookupNode resolves the node a run envelope addresses. With a single
// registered node the name is not required; with several, an unknown or
// empty name fails.
func lookupNode(name string) (Node, error) {
	if name == "" && len(registry.nodes) == 1 {
		return registry.nodes[0], nil
	}
	if n, ok := registry.byName[name]; ok {
		return n, nil
	}
	if len(registry.nodes) == 0 {
		return nil, fmt.Errorf("no nodes registered")
	}
	return nil, fmt.Errorf("unknown node %q", name)
}
