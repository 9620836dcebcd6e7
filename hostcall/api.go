package hostcall

// Package-level wrappers over the active bridge. Guest code calls these;
// which bridge answers depends on the build (wasm imports on wasip1, the
// installed or denying bridge elsewhere).

func LogTrace(msg string)                  { active.LogTrace(msg) }
func LogDebug(msg string)                  { active.LogDebug(msg) }
func LogInfo(msg string)                   { active.LogInfo(msg) }
func LogWarn(msg string)                   { active.LogWarn(msg) }
func LogError(msg string)                  { active.LogError(msg) }
func LogJSON(level int32, msg, data string) { active.LogJSON(level, msg, data) }

func GetInput(name string) string  { return active.GetInput(name) }
func SetOutput(name, value string) { active.SetOutput(name, value) }
func ActivateExec(name string)     { active.ActivateExec(name) }

func VarGet(name string) string  { return active.VarGet(name) }
func VarSet(name, value string)  { active.VarSet(name, value) }
func VarDelete(name string)      { active.VarDelete(name) }
func VarHas(name string) bool    { return active.VarHas(name) }

func CacheGet(key string) string { return active.CacheGet(key) }
func CacheSet(key, value string) { active.CacheSet(key, value) }
func CacheDelete(key string)     { active.CacheDelete(key) }
func CacheHas(key string) bool   { return active.CacheHas(key) }

func NodeID() string    { return active.NodeID() }
func RunID() string     { return active.RunID() }
func AppID() string     { return active.AppID() }
func BoardID() string   { return active.BoardID() }
func UserID() string    { return active.UserID() }
func IsStreaming() bool { return active.IsStreaming() }
func LogLevel() int32   { return active.LogLevel() }
func TimeNow() int64    { return active.TimeNow() }
func Random() int64     { return active.Random() }

func StorageRead(pathJSON string) []byte        { return active.StorageRead(pathJSON) }
func StorageWrite(pathJSON string, data []byte) bool { return active.StorageWrite(pathJSON, data) }
func StorageDir(nodeScoped bool) string         { return active.StorageDir(nodeScoped) }
func UploadDir() string                         { return active.UploadDir() }
func CacheDir(nodeScoped, userScoped bool) string { return active.CacheDir(nodeScoped, userScoped) }
func UserDir(nodeScoped bool) string            { return active.UserDir(nodeScoped) }
func StorageList(pathJSON string) string        { return active.StorageList(pathJSON) }

func EmbedText(modelJSON, textsJSON string) string { return active.EmbedText(modelJSON, textsJSON) }

// HTTPRequest performs a host-mediated HTTP call and returns the status
// code, 0 on transport failure, or HTTPDenied when the capability was not
// granted.
func HTTPRequest(method int32, url, headersJSON string, body []byte) int32 {
	return active.HTTPRequest(method, url, headersJSON, body)
}

func StreamEmit(eventType, data string) { active.StreamEmit(eventType, data) }
func StreamText(text string)            { active.StreamText(text) }

func OAuthToken(provider string) string  { return active.OAuthToken(provider) }
func HasOAuthToken(provider string) bool { return active.HasOAuthToken(provider) }
