// Package hostcall exposes the Flow-Like host capability surface to guest
// code: ten import namespaces (log, pins, vars, cache, meta, storage,
// models, http, stream, auth) crossing the sandbox trust boundary.
//
// The Bridge interface is the single source of truth for the call surface.
// On wasip1 builds it is bound to the flowlike_* wasm imports; on native
// builds an in-process implementation can be installed with SetBridge, and
// the default denies everything. The host may likewise deny any call whose
// namespace was not declared in the node's permissions; denial is always
// signaled in-band (HTTPDenied, empty references, false), never via a trap,
// so callers must check results rather than assume success.
package hostcall

// HTTPDenied is returned by HTTPRequest when the host denies the call
// because the node did not declare the "http" permission. It signals
// capability denial, not transport failure.
const HTTPDenied int32 = -1

// HTTP method codes as the request import takes them.
const (
	MethodGet int32 = iota
	MethodPost
	MethodPut
	MethodDelete
	MethodPatch
	MethodHead
	MethodOptions
)

// Bridge is the full host call surface. Signatures mirror the wire-level
// imports one to one so a host-side implementation and the wasm binding
// cannot drift apart.
type Bridge interface {
	// flowlike_log
	LogTrace(msg string)
	LogDebug(msg string)
	LogInfo(msg string)
	LogWarn(msg string)
	LogError(msg string)
	LogJSON(level int32, msg, data string)

	// flowlike_pins
	GetInput(name string) string
	SetOutput(name, value string)
	ActivateExec(name string)

	// flowlike_vars
	VarGet(name string) string
	VarSet(name, value string)
	VarDelete(name string)
	VarHas(name string) bool

	// flowlike_cache
	CacheGet(key string) string
	CacheSet(key, value string)
	CacheDelete(key string)
	CacheHas(key string) bool

	// flowlike_meta
	NodeID() string
	RunID() string
	AppID() string
	BoardID() string
	UserID() string
	IsStreaming() bool
	LogLevel() int32
	TimeNow() int64
	Random() int64

	// flowlike_storage
	StorageRead(pathJSON string) []byte
	StorageWrite(pathJSON string, data []byte) bool
	StorageDir(nodeScoped bool) string
	UploadDir() string
	CacheDir(nodeScoped, userScoped bool) string
	UserDir(nodeScoped bool) string
	StorageList(pathJSON string) string

	// flowlike_models
	EmbedText(modelJSON, textsJSON string) string

	// flowlike_http
	HTTPRequest(method int32, url, headersJSON string, body []byte) int32

	// flowlike_stream
	StreamEmit(eventType, data string)
	StreamText(text string)

	// flowlike_auth
	OAuthToken(provider string) string
	HasOAuthToken(provider string) bool
}

var active Bridge = defaultBridge()

// Current returns the bridge in effect for this build.
func Current() Bridge {
	return active
}
