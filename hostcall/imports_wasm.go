//go:build wasip1

package hostcall

import "github.com/TM9657/flow-like-sdk-go/internal/abi"

// Raw import declarations. Strings and byte payloads cross the boundary as
// (ptr, len) pairs into guest linear memory; host-produced values come back
// as packed (ptr << 32 | len) references that the guest must copy out and
// free.

//go:wasmimport flowlike_log trace
func hostLogTrace(ptr, length uint32)

//go:wasmimport flowlike_log debug
func hostLogDebug(ptr, length uint32)

//go:wasmimport flowlike_log info
func hostLogInfo(ptr, length uint32)

//go:wasmimport flowlike_log warn
func hostLogWarn(ptr, length uint32)

//go:wasmimport flowlike_log error
func hostLogError(ptr, length uint32)

//go:wasmimport flowlike_log log_json
func hostLogJSON(level int32, msgPtr, msgLen, dataPtr, dataLen uint32)

//go:wasmimport flowlike_pins get_input
func hostGetInput(namePtr, nameLen uint32) int64

//go:wasmimport flowlike_pins set_output
func hostSetOutput(namePtr, nameLen, valPtr, valLen uint32)

//go:wasmimport flowlike_pins activate_exec
func hostActivateExec(namePtr, nameLen uint32)

//go:wasmimport flowlike_vars get
func hostVarGet(namePtr, nameLen uint32) int64

//go:wasmimport flowlike_vars set
func hostVarSet(namePtr, nameLen, valPtr, valLen uint32)

//go:wasmimport flowlike_vars delete
func hostVarDelete(namePtr, nameLen uint32)

//go:wasmimport flowlike_vars has
func hostVarHas(namePtr, nameLen uint32) int32

//go:wasmimport flowlike_cache get
func hostCacheGet(keyPtr, keyLen uint32) int64

//go:wasmimport flowlike_cache set
func hostCacheSet(keyPtr, keyLen, valPtr, valLen uint32)

//go:wasmimport flowlike_cache delete
func hostCacheDelete(keyPtr, keyLen uint32)

//go:wasmimport flowlike_cache has
func hostCacheHas(keyPtr, keyLen uint32) int32

//go:wasmimport flowlike_meta get_node_id
func hostGetNodeID() int64

//go:wasmimport flowlike_meta get_run_id
func hostGetRunID() int64

//go:wasmimport flowlike_meta get_app_id
func hostGetAppID() int64

//go:wasmimport flowlike_meta get_board_id
func hostGetBoardID() int64

//go:wasmimport flowlike_meta get_user_id
func hostGetUserID() int64

//go:wasmimport flowlike_meta is_streaming
func hostIsStreaming() int32

//go:wasmimport flowlike_meta get_log_level
func hostGetLogLevel() int32

//go:wasmimport flowlike_meta time_now
func hostTimeNow() int64

//go:wasmimport flowlike_meta random
func hostRandom() int64

//go:wasmimport flowlike_storage read_request
func hostStorageRead(pathPtr, pathLen uint32) int64

//go:wasmimport flowlike_storage write_request
func hostStorageWrite(pathPtr, pathLen, dataPtr, dataLen uint32) int32

//go:wasmimport flowlike_storage storage_dir
func hostStorageDir(nodeScoped int32) int64

//go:wasmimport flowlike_storage upload_dir
func hostUploadDir() int64

//go:wasmimport flowlike_storage cache_dir
func hostCacheDir(nodeScoped, userScoped int32) int64

//go:wasmimport flowlike_storage user_dir
func hostUserDir(nodeScoped int32) int64

//go:wasmimport flowlike_storage list_request
func hostStorageList(pathPtr, pathLen uint32) int64

//go:wasmimport flowlike_models embed_text
func hostEmbedText(modelPtr, modelLen, textsPtr, textsLen uint32) int64

//go:wasmimport flowlike_http request
func hostHTTPRequest(method int32, urlPtr, urlLen, headersPtr, headersLen, bodyPtr, bodyLen uint32) int32

//go:wasmimport flowlike_stream emit
func hostStreamEmit(eventPtr, eventLen, dataPtr, dataLen uint32)

//go:wasmimport flowlike_stream text
func hostStreamText(textPtr, textLen uint32)

//go:wasmimport flowlike_auth get_oauth_token
func hostGetOAuthToken(providerPtr, providerLen uint32) int64

//go:wasmimport flowlike_auth has_oauth_token
func hostHasOAuthToken(providerPtr, providerLen uint32) int32

func defaultBridge() Bridge {
	return wasmBridge{}
}

// wasmBridge binds Bridge to the flowlike_* imports.
type wasmBridge struct{}

var _ Bridge = wasmBridge{}

func (wasmBridge) LogTrace(msg string) {
	ptr, length := abi.StringPtr(msg)
	hostLogTrace(ptr, length)
}

func (wasmBridge) LogDebug(msg string) {
	ptr, length := abi.StringPtr(msg)
	hostLogDebug(ptr, length)
}

func (wasmBridge) LogInfo(msg string) {
	ptr, length := abi.StringPtr(msg)
	hostLogInfo(ptr, length)
}

func (wasmBridge) LogWarn(msg string) {
	ptr, length := abi.StringPtr(msg)
	hostLogWarn(ptr, length)
}

func (wasmBridge) LogError(msg string) {
	ptr, length := abi.StringPtr(msg)
	hostLogError(ptr, length)
}

func (wasmBridge) LogJSON(level int32, msg, data string) {
	mp, ml := abi.StringPtr(msg)
	dp, dl := abi.StringPtr(data)
	hostLogJSON(level, mp, ml, dp, dl)
}

func (wasmBridge) GetInput(name string) string {
	ptr, length := abi.StringPtr(name)
	return abi.UnpackString(uint64(hostGetInput(ptr, length)))
}

func (wasmBridge) SetOutput(name, value string) {
	np, nl := abi.StringPtr(name)
	vp, vl := abi.StringPtr(value)
	hostSetOutput(np, nl, vp, vl)
}

func (wasmBridge) ActivateExec(name string) {
	ptr, length := abi.StringPtr(name)
	hostActivateExec(ptr, length)
}

func (wasmBridge) VarGet(name string) string {
	ptr, length := abi.StringPtr(name)
	return abi.UnpackString(uint64(hostVarGet(ptr, length)))
}

func (wasmBridge) VarSet(name, value string) {
	np, nl := abi.StringPtr(name)
	vp, vl := abi.StringPtr(value)
	hostVarSet(np, nl, vp, vl)
}

func (wasmBridge) VarDelete(name string) {
	ptr, length := abi.StringPtr(name)
	hostVarDelete(ptr, length)
}

func (wasmBridge) VarHas(name string) bool {
	ptr, length := abi.StringPtr(name)
	return hostVarHas(ptr, length) != 0
}

func (wasmBridge) CacheGet(key string) string {
	ptr, length := abi.StringPtr(key)
	return abi.UnpackString(uint64(hostCacheGet(ptr, length)))
}

func (wasmBridge) CacheSet(key, value string) {
	kp, kl := abi.StringPtr(key)
	vp, vl := abi.StringPtr(value)
	hostCacheSet(kp, kl, vp, vl)
}

func (wasmBridge) CacheDelete(key string) {
	ptr, length := abi.StringPtr(key)
	hostCacheDelete(ptr, length)
}

func (wasmBridge) CacheHas(key string) bool {
	ptr, length := abi.StringPtr(key)
	return hostCacheHas(ptr, length) != 0
}

func (wasmBridge) NodeID() string  { return abi.UnpackString(uint64(hostGetNodeID())) }
func (wasmBridge) RunID() string   { return abi.UnpackString(uint64(hostGetRunID())) }
func (wasmBridge) AppID() string   { return abi.UnpackString(uint64(hostGetAppID())) }
func (wasmBridge) BoardID() string { return abi.UnpackString(uint64(hostGetBoardID())) }
func (wasmBridge) UserID() string  { return abi.UnpackString(uint64(hostGetUserID())) }

func (wasmBridge) IsStreaming() bool { return hostIsStreaming() != 0 }
func (wasmBridge) LogLevel() int32   { return hostGetLogLevel() }
func (wasmBridge) TimeNow() int64    { return hostTimeNow() }
func (wasmBridge) Random() int64     { return hostRandom() }

func (wasmBridge) StorageRead(pathJSON string) []byte {
	ptr, length := abi.StringPtr(pathJSON)
	return abi.BytesFromPacked(uint64(hostStorageRead(ptr, length)))
}

func (wasmBridge) StorageWrite(pathJSON string, data []byte) bool {
	pp, pl := abi.StringPtr(pathJSON)
	dp, dl := abi.BytesPtr(data)
	return hostStorageWrite(pp, pl, dp, dl) != 0
}

func (wasmBridge) StorageDir(nodeScoped bool) string {
	return abi.UnpackString(uint64(hostStorageDir(boolFlag(nodeScoped))))
}

func (wasmBridge) UploadDir() string {
	return abi.UnpackString(uint64(hostUploadDir()))
}

func (wasmBridge) CacheDir(nodeScoped, userScoped bool) string {
	return abi.UnpackString(uint64(hostCacheDir(boolFlag(nodeScoped), boolFlag(userScoped))))
}

func (wasmBridge) UserDir(nodeScoped bool) string {
	return abi.UnpackString(uint64(hostUserDir(boolFlag(nodeScoped))))
}

func (wasmBridge) StorageList(pathJSON string) string {
	ptr, length := abi.StringPtr(pathJSON)
	return abi.UnpackString(uint64(hostStorageList(ptr, length)))
}

func (wasmBridge) EmbedText(modelJSON, textsJSON string) string {
	mp, ml := abi.StringPtr(modelJSON)
	tp, tl := abi.StringPtr(textsJSON)
	return abi.UnpackString(uint64(hostEmbedText(mp, ml, tp, tl)))
}

func (wasmBridge) HTTPRequest(method int32, url, headersJSON string, body []byte) int32 {
	up, ul := abi.StringPtr(url)
	hp, hl := abi.StringPtr(headersJSON)
	bp, bl := abi.BytesPtr(body)
	return hostHTTPRequest(method, up, ul, hp, hl, bp, bl)
}

func (wasmBridge) StreamEmit(eventType, data string) {
	ep, el := abi.StringPtr(eventType)
	dp, dl := abi.StringPtr(data)
	hostStreamEmit(ep, el, dp, dl)
}

func (wasmBridge) StreamText(text string) {
	ptr, length := abi.StringPtr(text)
	hostStreamText(ptr, length)
}

func (wasmBridge) OAuthToken(provider string) string {
	ptr, length := abi.StringPtr(provider)
	return abi.UnpackString(uint64(hostGetOAuthToken(ptr, length)))
}

func (wasmBridge) HasOAuthToken(provider string) bool {
	ptr, length := abi.StringPtr(provider)
	return hostHasOAuthToken(ptr, length) != 0
}

func boolFlag(v bool) int32 {
	if v {
		return 1
	}
	return 0
}
