package hostcall

// Denied implements Bridge by refusing every capability: reads return empty,
// writes are dropped, predicates are false and HTTPRequest returns
// HTTPDenied. It is the default bridge on native builds and the embedding
// base for partial test bridges, so a fake only implements the calls it
// cares about and inherits denial for the rest.
type Denied struct{}

var _ Bridge = Denied{}

func (Denied) LogTrace(string)               {}
func (Denied) LogDebug(string)               {}
func (Denied) LogInfo(string)                {}
func (Denied) LogWarn(string)                {}
func (Denied) LogError(string)               {}
func (Denied) LogJSON(int32, string, string) {}

func (Denied) GetInput(string) string   { return "" }
func (Denied) SetOutput(string, string) {}
func (Denied) ActivateExec(string)      {}

func (Denied) VarGet(string) string  { return "" }
func (Denied) VarSet(string, string) {}
func (Denied) VarDelete(string)      {}
func (Denied) VarHas(string) bool    { return false }

func (Denied) CacheGet(string) string  { return "" }
func (Denied) CacheSet(string, string) {}
func (Denied) CacheDelete(string)      {}
func (Denied) CacheHas(string) bool    { return false }

func (Denied) NodeID() string    { return "" }
func (Denied) RunID() string     { return "" }
func (Denied) AppID() string     { return "" }
func (Denied) BoardID() string   { return "" }
func (Denied) UserID() string    { return "" }
func (Denied) IsStreaming() bool { return false }
func (Denied) LogLevel() int32   { return 0 }
func (Denied) TimeNow() int64    { return 0 }
func (Denied) Random() int64     { return 0 }

func (Denied) StorageRead(string) []byte        { return nil }
func (Denied) StorageWrite(string, []byte) bool { return false }
func (Denied) StorageDir(bool) string           { return "" }
func (Denied) UploadDir() string                { return "" }
func (Denied) CacheDir(bool, bool) string       { return "" }
func (Denied) UserDir(bool) string              { return "" }
func (Denied) StorageList(string) string        { return "" }

func (Denied) EmbedText(string, string) string { return "" }

func (Denied) HTTPRequest(int32, string, string, []byte) int32 { return HTTPDenied }

func (Denied) StreamEmit(string, string) {}
func (Denied) StreamText(string)         {}

func (Denied) OAuthToken(string) string  { return "" }
func (Denied) HasOAuthToken(string) bool { return false }
