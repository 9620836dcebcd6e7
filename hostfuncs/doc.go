// Package hostfuncs implements the host side of the node call surface: the
// services behind the flowlike_* import namespaces and their registration
// into a wazero runtime. Pure Go service code (stores, storage, HTTP) is
// kept separate from the WASM glue in host.go so it can be tested without a
// runtime.
package hostfuncs
