package host

import (
	"context"
	"fmt"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/imports/wasi_snapshot_preview1"

	"github.com/TM9657/flow-like-sdk-go/hostfuncs"
)

// Executor owns a wazero runtime with WASI and the flowlike_* import
// namespaces instantiated. Modules loaded from one executor share its host
// environment, permission gate and invocation slot, so run one module at a
// time per executor.
type Executor struct {
	runtime wazero.Runtime
	env     *hostfuncs.Environment
	host    *hostfuncs.Host
}

// Option configures the Executor.
type Option func(*Executor)

// WithEnvironment supplies the host services backing the import namespaces.
func WithEnvironment(env *hostfuncs.Environment) Option {
	return func(e *Executor) {
		e.env = env
	}
}

// NewExecutor creates an executor with the given options. Close it to
// release the runtime.
func NewExecutor(ctx context.Context, opts ...Option) (*Executor, error) {
	e := &Executor{}
	for _, opt := range opts {
		opt(e)
	}
	if e.env == nil {
		e.env = hostfuncs.NewEnvironment()
	}

	rt := wazero.NewRuntime(ctx)
	wasi_snapshot_preview1.MustInstantiate(ctx, rt)
	e.runtime = rt

	e.host = hostfuncs.NewHost(e.env)
	if err := e.host.Register(ctx, rt); err != nil {
		_ = rt.Close(ctx)
		return nil, fmt.Errorf("register host functions: %w", err)
	}

	return e, nil
}

// Environment returns the host services the executor was built with.
func (e *Executor) Environment() *hostfuncs.Environment {
	return e.env
}

// Close releases the runtime and all modules instantiated from it.
func (e *Executor) Close(ctx context.Context) error {
	return e.runtime.Close(ctx)
}
