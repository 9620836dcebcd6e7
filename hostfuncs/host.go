package hostfuncs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
)

// HTTPDenied is returned from the http namespace when the capability is not
// granted. Distinct from 0, which means the request was allowed but failed.
const HTTPDenied int32 = -1

// LevelTrace is finer than slog's debug; guest trace logs map to it.
const LevelTrace = slog.LevelDebug - 4

// Host wires an Environment into a wazero runtime as the ten flowlike_*
// import modules. Permissions and the current invocation are installed after
// construction: permissions once the node definitions have been read, the
// invocation before each run.
type Host struct {
	env     *Environment
	checker *CapabilityChecker

	mu  sync.Mutex
	inv *Invocation
}

// NewHost returns a host over the given environment with all gated
// namespaces denied.
func NewHost(env *Environment) *Host {
	if env == nil {
		env = NewEnvironment()
	}
	return &Host{
		env:     env,
		checker: NewCapabilityChecker(),
	}
}

// SetPermissions grants the namespaces a loaded module's definitions
// declare.
func (h *Host) SetPermissions(perms []string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checker.SetPermissions(perms)
}

// SetInvocation installs the per-run state. Pass nil after the run to drop
// it.
func (h *Host) SetInvocation(inv *Invocation) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.inv = inv
}

func (h *Host) invocation() *Invocation {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.inv
}

func (h *Host) allowed(namespace string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.checker.Allowed(namespace)
}

// readString copies a (ptr, len) string out of guest memory. Out-of-range
// references read as "".
func readString(m api.Module, ptr, length uint32) string {
	if ptr == 0 || length == 0 {
		return ""
	}
	data, ok := m.Memory().Read(ptr, length)
	if !ok {
		return ""
	}
	return string(data)
}

func readBytes(m api.Module, ptr, length uint32) []byte {
	if ptr == 0 || length == 0 {
		return nil
	}
	data, ok := m.Memory().Read(ptr, length)
	if !ok {
		return nil
	}
	out := make([]byte, length)
	copy(out, data)
	return out
}

// writeToGuest stages a payload into guest memory through the guest's alloc
// export and returns the packed reference. Empty payloads and allocation
// failures return 0, which the guest reads as empty.
func writeToGuest(ctx context.Context, m api.Module, data []byte) uint64 {
	if len(data) == 0 {
		return 0
	}
	alloc := m.ExportedFunction("alloc")
	if alloc == nil {
		return 0
	}
	results, err := alloc.Call(ctx, uint64(len(data)))
	if err != nil || len(results) == 0 {
		return 0
	}
	ptr := uint32(results[0])
	if ptr == 0 || !m.Memory().Write(ptr, data) {
		return 0
	}
	return (uint64(ptr) << 32) | uint64(len(data))
}

func writeString(ctx context.Context, m api.Module, s string) uint64 {
	return writeToGuest(ctx, m, []byte(s))
}

func boolResult(v bool) int32 {
	if v {
		return 1
	}
	return 0
}

// Register instantiates all import modules into the runtime. Must run before
// any guest module that imports them is instantiated.
func (h *Host) Register(ctx context.Context, rt wazero.Runtime) error {
	for name, build := range map[string]func(wazero.HostModuleBuilder){
		"flowlike_log":     h.buildLog,
		"flowlike_pins":    h.buildPins,
		"flowlike_vars":    h.buildVars,
		"flowlike_cache":   h.buildCache,
		"flowlike_meta":    h.buildMeta,
		"flowlike_storage": h.buildStorage,
		"flowlike_models":  h.buildModels,
		"flowlike_http":    h.buildHTTP,
		"flowlike_stream":  h.buildStream,
		"flowlike_auth":    h.buildAuth,
	} {
		builder := rt.NewHostModuleBuilder(name)
		build(builder)
		if _, err := builder.Instantiate(ctx); err != nil {
			return fmt.Errorf("instantiate %s: %w", name, err)
		}
	}
	return nil
}

func (h *Host) logAt(ctx context.Context, level slog.Level, msg string, attrs ...any) {
	attrs = append(attrs, "node_id", "")
	if inv := h.invocation(); inv != nil {
		attrs[len(attrs)-1] = inv.NodeID
		attrs = append(attrs, "run_id", inv.RunID)
	}
	h.env.Logger.Log(ctx, level, msg, attrs...)
}

func (h *Host) buildLog(b wazero.HostModuleBuilder) {
	logFn := func(level slog.Level) func(context.Context, api.Module, uint32, uint32) {
		return func(ctx context.Context, m api.Module, ptr, length uint32) {
			h.logAt(ctx, level, readString(m, ptr, length))
		}
	}
	b.NewFunctionBuilder().WithFunc(logFn(LevelTrace)).Export("trace")
	b.NewFunctionBuilder().WithFunc(logFn(slog.LevelDebug)).Export("debug")
	b.NewFunctionBuilder().WithFunc(logFn(slog.LevelInfo)).Export("info")
	b.NewFunctionBuilder().WithFunc(logFn(slog.LevelWarn)).Export("warn")
	b.NewFunctionBuilder().WithFunc(logFn(slog.LevelError)).Export("error")
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, level int32, msgPtr, msgLen, dataPtr, dataLen uint32) {
			h.logAt(ctx, guestLevel(level), readString(m, msgPtr, msgLen),
				"data", readString(m, dataPtr, dataLen))
		}).
		Export("log_json")
}

// guestLevel maps wire severities (trace=0..error=4) onto slog levels.
func guestLevel(level int32) slog.Level {
	switch level {
	case 0:
		return LevelTrace
	case 1:
		return slog.LevelDebug
	case 2:
		return slog.LevelInfo
	case 3:
		return slog.LevelWarn
	default:
		return slog.LevelError
	}
}

func (h *Host) buildPins(b wazero.HostModuleBuilder) {
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, ptr, length uint32) int64 {
			inv := h.invocation()
			if inv == nil {
				return 0
			}
			return int64(writeString(ctx, m, inv.Input(readString(m, ptr, length))))
		}).
		Export("get_input")
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, namePtr, nameLen, valPtr, valLen uint32) {
			if inv := h.invocation(); inv != nil {
				inv.SetOutput(readString(m, namePtr, nameLen), readString(m, valPtr, valLen))
			}
		}).
		Export("set_output")
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, ptr, length uint32) {
			if inv := h.invocation(); inv != nil {
				inv.ActivateExec(readString(m, ptr, length))
			}
		}).
		Export("activate_exec")
}

func (h *Host) buildVars(b wazero.HostModuleBuilder) {
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, ptr, length uint32) int64 {
			if !h.allowed(NamespaceVars) {
				return 0
			}
			v, _ := h.env.Vars.Get(readString(m, ptr, length))
			return int64(writeString(ctx, m, v))
		}).
		Export("get")
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, namePtr, nameLen, valPtr, valLen uint32) {
			if !h.allowed(NamespaceVars) {
				return
			}
			h.env.Vars.Set(readString(m, namePtr, nameLen), readString(m, valPtr, valLen))
		}).
		Export("set")
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, ptr, length uint32) {
			if !h.allowed(NamespaceVars) {
				return
			}
			h.env.Vars.Delete(readString(m, ptr, length))
		}).
		Export("delete")
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, ptr, length uint32) int32 {
			if !h.allowed(NamespaceVars) {
				return 0
			}
			_, ok := h.env.Vars.Get(readString(m, ptr, length))
			return boolResult(ok)
		}).
		Export("has")
}

func (h *Host) buildCache(b wazero.HostModuleBuilder) {
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, ptr, length uint32) int64 {
			if !h.allowed(NamespaceCache) {
				return 0
			}
			v, _ := h.env.Cache.Get(readString(m, ptr, length))
			return int64(writeString(ctx, m, v))
		}).
		Export("get")
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, keyPtr, keyLen, valPtr, valLen uint32) {
			if !h.allowed(NamespaceCache) {
				return
			}
			h.env.Cache.Set(readString(m, keyPtr, keyLen), readString(m, valPtr, valLen))
		}).
		Export("set")
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, ptr, length uint32) {
			if !h.allowed(NamespaceCache) {
				return
			}
			h.env.Cache.Delete(readString(m, ptr, length))
		}).
		Export("delete")
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, ptr, length uint32) int32 {
			if !h.allowed(NamespaceCache) {
				return 0
			}
			_, ok := h.env.Cache.Get(readString(m, ptr, length))
			return boolResult(ok)
		}).
		Export("has")
}

func (h *Host) buildMeta(b wazero.HostModuleBuilder) {
	metaFn := func(get func(*Invocation) string) func(context.Context, api.Module) int64 {
		return func(ctx context.Context, m api.Module) int64 {
			inv := h.invocation()
			if inv == nil {
				return 0
			}
			return int64(writeString(ctx, m, get(inv)))
		}
	}
	b.NewFunctionBuilder().
		WithFunc(metaFn(func(inv *Invocation) string { return inv.NodeID })).
		Export("get_node_id")
	b.NewFunctionBuilder().
		WithFunc(metaFn(func(inv *Invocation) string { return inv.RunID })).
		Export("get_run_id")
	b.NewFunctionBuilder().
		WithFunc(metaFn(func(inv *Invocation) string { return inv.AppID })).
		Export("get_app_id")
	b.NewFunctionBuilder().
		WithFunc(metaFn(func(inv *Invocation) string { return inv.BoardID })).
		Export("get_board_id")
	b.NewFunctionBuilder().
		WithFunc(metaFn(func(inv *Invocation) string { return inv.UserID })).
		Export("get_user_id")
	b.NewFunctionBuilder().
		WithFunc(func(context.Context, api.Module) int32 {
			inv := h.invocation()
			return boolResult(inv != nil && inv.StreamState)
		}).
		Export("is_streaming")
	b.NewFunctionBuilder().
		WithFunc(func(context.Context, api.Module) int32 {
			if inv := h.invocation(); inv != nil {
				return inv.LogLevel
			}
			return 0
		}).
		Export("get_log_level")
	b.NewFunctionBuilder().
		WithFunc(func(context.Context, api.Module) int64 { return h.env.Now() }).
		Export("time_now")
	b.NewFunctionBuilder().
		WithFunc(func(context.Context, api.Module) int64 { return h.env.Rand() }).
		Export("random")
}

func (h *Host) scope() Scope {
	if inv := h.invocation(); inv != nil {
		return inv.Scope()
	}
	return Scope{}
}

func (h *Host) buildStorage(b wazero.HostModuleBuilder) {
	storageReady := func() bool {
		return h.allowed(NamespaceStorage) && h.env.Storage != nil
	}
	dirFn := func(get func() (string, error)) func(context.Context, api.Module) int64 {
		return func(ctx context.Context, m api.Module) int64 {
			if !storageReady() {
				return 0
			}
			dir, err := get()
			if err != nil {
				h.logAt(ctx, slog.LevelWarn, "storage dir failed", "error", err)
				return 0
			}
			return int64(writeString(ctx, m, dir))
		}
	}

	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, ptr, length uint32) int64 {
			if !storageReady() {
				return 0
			}
			data, err := h.env.Storage.Read(readString(m, ptr, length))
			if err != nil {
				h.logAt(ctx, slog.LevelWarn, "storage read failed", "error", err)
				return 0
			}
			return int64(writeToGuest(ctx, m, data))
		}).
		Export("read_request")
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, pathPtr, pathLen, dataPtr, dataLen uint32) int32 {
			if !storageReady() {
				return 0
			}
			err := h.env.Storage.Write(readString(m, pathPtr, pathLen), readBytes(m, dataPtr, dataLen))
			if err != nil {
				h.logAt(ctx, slog.LevelWarn, "storage write failed", "error", err)
				return 0
			}
			return 1
		}).
		Export("write_request")
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, nodeScoped int32) int64 {
			return dirFn(func() (string, error) {
				return h.env.Storage.StorageDir(h.scope(), nodeScoped != 0)
			})(ctx, m)
		}).
		Export("storage_dir")
	b.NewFunctionBuilder().
		WithFunc(dirFn(func() (string, error) {
			return h.env.Storage.UploadDir()
		})).
		Export("upload_dir")
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, nodeScoped, userScoped int32) int64 {
			return dirFn(func() (string, error) {
				return h.env.Storage.CacheDir(h.scope(), nodeScoped != 0, userScoped != 0)
			})(ctx, m)
		}).
		Export("cache_dir")
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, nodeScoped int32) int64 {
			return dirFn(func() (string, error) {
				return h.env.Storage.UserDir(h.scope(), nodeScoped != 0)
			})(ctx, m)
		}).
		Export("user_dir")
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, ptr, length uint32) int64 {
			if !storageReady() {
				return 0
			}
			listing, err := h.env.Storage.List(readString(m, ptr, length))
			if err != nil {
				h.logAt(ctx, slog.LevelWarn, "storage list failed", "error", err)
				return 0
			}
			return int64(writeString(ctx, m, listing))
		}).
		Export("list_request")
}

func (h *Host) buildModels(b wazero.HostModuleBuilder) {
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, modelPtr, modelLen, textsPtr, textsLen uint32) int64 {
			if !h.allowed(NamespaceModels) || h.env.Embed == nil {
				return 0
			}
			out, err := h.env.Embed(readString(m, modelPtr, modelLen), readString(m, textsPtr, textsLen))
			if err != nil {
				h.logAt(ctx, slog.LevelWarn, "embed_text failed", "error", err)
				return 0
			}
			return int64(writeString(ctx, m, out))
		}).
		Export("embed_text")
}

func (h *Host) buildHTTP(b wazero.HostModuleBuilder) {
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, method int32, urlPtr, urlLen, headersPtr, headersLen, bodyPtr, bodyLen uint32) int32 {
			if !h.allowed(NamespaceHTTP) {
				return HTTPDenied
			}

			req := HTTPRequest{
				Method: MethodName(method),
				URL:    readString(m, urlPtr, urlLen),
				Body:   readBytes(m, bodyPtr, bodyLen),
			}
			if req.Method == "" {
				h.logAt(ctx, slog.LevelWarn, "http request with unknown method code", "code", method)
				return 0
			}
			if headers := readString(m, headersPtr, headersLen); headers != "" {
				if err := json.Unmarshal([]byte(headers), &req.Headers); err != nil {
					h.logAt(ctx, slog.LevelWarn, "http request with malformed headers", "error", err)
					return 0
				}
			}

			res := PerformHTTPRequest(ctx, req, h.env.HTTP...)
			if res.Err != nil {
				h.logAt(ctx, slog.LevelWarn, "http request failed", "url", req.URL, "error", res.Err)
				return 0
			}
			return int32(res.StatusCode)
		}).
		Export("request")
}

func (h *Host) buildStream(b wazero.HostModuleBuilder) {
	emit := func(eventType, data string) {
		if h.env.Stream != nil {
			h.env.Stream.Emit(eventType, data)
		}
	}
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, eventPtr, eventLen, dataPtr, dataLen uint32) {
			if !h.allowed(NamespaceStream) {
				return
			}
			emit(readString(m, eventPtr, eventLen), readString(m, dataPtr, dataLen))
		}).
		Export("emit")
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, ptr, length uint32) {
			if !h.allowed(NamespaceStream) {
				return
			}
			emit("text", readString(m, ptr, length))
		}).
		Export("text")
}

func (h *Host) buildAuth(b wazero.HostModuleBuilder) {
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, ptr, length uint32) int64 {
			if !h.allowed(NamespaceAuth) {
				return 0
			}
			return int64(writeString(ctx, m, h.env.Tokens[readString(m, ptr, length)]))
		}).
		Export("get_oauth_token")
	b.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, m api.Module, ptr, length uint32) int32 {
			if !h.allowed(NamespaceAuth) {
				return 0
			}
			_, ok := h.env.Tokens[readString(m, ptr, length)]
			return boolResult(ok)
		}).
		Export("has_oauth_token")
}
