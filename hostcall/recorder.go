package hostcall

import "sync"

// LogEntry is one captured log call.
type LogEntry struct {
	Level int32
	Msg   string
	Data  string
}

// StreamEvent is one captured stream emission.
type StreamEvent struct {
	Type string
	Data string
}

// Recorder is a test bridge that answers pin reads and metadata from fixed
// values, stores variables and cache entries in maps, and records log and
// stream traffic. Everything it does not model is inherited from Denied.
type Recorder struct {
	Denied

	mu sync.Mutex

	Inputs    map[string]string
	Meta      map[string]string
	Level     int32
	Streaming bool

	Outputs     map[string]string
	Activations []string
	Vars        map[string]string
	Cache       map[string]string
	Logs        []LogEntry
	Stream      []StreamEvent
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{
		Inputs:  make(map[string]string),
		Meta:    make(map[string]string),
		Outputs: make(map[string]string),
		Vars:    make(map[string]string),
		Cache:   make(map[string]string),
	}
}

func (r *Recorder) log(level int32, msg, data string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Logs = append(r.Logs, LogEntry{Level: level, Msg: msg, Data: data})
}

func (r *Recorder) LogTrace(msg string) { r.log(0, msg, "") }
func (r *Recorder) LogDebug(msg string) { r.log(1, msg, "") }
func (r *Recorder) LogInfo(msg string)  { r.log(2, msg, "") }
func (r *Recorder) LogWarn(msg string)  { r.log(3, msg, "") }
func (r *Recorder) LogError(msg string) { r.log(4, msg, "") }

func (r *Recorder) LogJSON(level int32, msg, data string) { r.log(level, msg, data) }

func (r *Recorder) GetInput(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Inputs[name]
}

func (r *Recorder) SetOutput(name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Outputs[name] = value
}

func (r *Recorder) ActivateExec(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Activations = append(r.Activations, name)
}

func (r *Recorder) VarGet(name string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Vars[name]
}

func (r *Recorder) VarSet(name, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Vars[name] = value
}

func (r *Recorder) VarDelete(name string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Vars, name)
}

func (r *Recorder) VarHas(name string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.Vars[name]
	return ok
}

func (r *Recorder) CacheGet(key string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.Cache[key]
}

func (r *Recorder) CacheSet(key, value string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Cache[key] = value
}

func (r *Recorder) CacheDelete(key string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.Cache, key)
}

func (r *Recorder) CacheHas(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.Cache[key]
	return ok
}

func (r *Recorder) NodeID() string  { return r.Meta["node_id"] }
func (r *Recorder) RunID() string   { return r.Meta["run_id"] }
func (r *Recorder) AppID() string   { return r.Meta["app_id"] }
func (r *Recorder) BoardID() string { return r.Meta["board_id"] }
func (r *Recorder) UserID() string  { return r.Meta["user_id"] }

func (r *Recorder) IsStreaming() bool { return r.Streaming }
func (r *Recorder) LogLevel() int32   { return r.Level }

func (r *Recorder) StreamEmit(eventType, data string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Stream = append(r.Stream, StreamEvent{Type: eventType, Data: data})
}

func (r *Recorder) StreamText(text string) {
	r.StreamEmit("text", text)
}
