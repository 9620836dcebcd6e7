// Package host loads and runs Flow-Like WASM node modules.
//
// It abstracts the underlying WASM engine (wazero), manages module lifecycle,
// and handles the low-level ABI interactions: the packed-pointer result
// contract, staging run input through the guest allocator, and wiring the
// flowlike_* import namespaces with capability gating.
package host
