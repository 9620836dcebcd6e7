//go:build !wasip1

package hostcall

func defaultBridge() Bridge {
	return Denied{}
}

// SetBridge installs an in-process bridge for native execution and tests.
// Passing nil restores the denying default. Not available on wasip1 builds,
// where the bridge is fixed to the wasm imports.
func SetBridge(b Bridge) {
	if b == nil {
		b = Denied{}
	}
	active = b
}
