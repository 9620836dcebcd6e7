// Package log routes the standard library's slog through the host's log
// namespace, so node code can use a plain *slog.Logger and still have its
// records land in the run log with the right severity.
package log

import (
	"context"
	"log/slog"

	"github.com/TM9657/flow-like-sdk-go/hostcall"
	"github.com/TM9657/flow-like-sdk-go/jsonlite"
)

// LevelTrace sits one slog step below Debug and maps to the host's trace
// severity.
const LevelTrace = slog.LevelDebug - 4

// Handler implements slog.Handler on top of the host log calls. Records
// without attributes go out as plain messages; records with attributes are
// sent as structured payloads so the host keeps the key/value pairs.
type Handler struct {
	level slog.Leveler
	attrs []slog.Attr
	group string
}

// Option configures a Handler.
type Option func(*Handler)

// WithLevel sets the minimum level the handler forwards. Records below it
// are dropped on the guest side before any host call is made.
func WithLevel(level slog.Leveler) Option {
	return func(h *Handler) {
		h.level = level
	}
}

// NewHandler returns a Handler forwarding records at LevelTrace and above.
// The host applies the run's own log level on top, so forwarding everything
// is the safe default.
func NewHandler(opts ...Option) *Handler {
	h := &Handler{level: LevelTrace}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Install makes a host-backed logger the slog default for the module.
func Install(opts ...Option) {
	slog.SetDefault(slog.New(NewHandler(opts...)))
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.level.Level()
}

func (h *Handler) Handle(_ context.Context, record slog.Record) error {
	// Stored attrs were qualified with the group in effect when they were
	// attached; only the record's own attrs take the current group.
	attrs := make([]slog.Attr, 0, len(h.attrs)+record.NumAttrs())
	attrs = append(attrs, h.attrs...)
	record.Attrs(func(a slog.Attr) bool {
		attrs = append(attrs, h.qualify(a))
		return true
	})

	if len(attrs) == 0 {
		h.emit(record.Level, record.Message)
		return nil
	}
	hostcall.LogJSON(wireSeverity(record.Level), record.Message, encodeAttrs(attrs))
	return nil
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	clone := *h
	clone.attrs = make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	clone.attrs = append(clone.attrs, h.attrs...)
	for _, a := range attrs {
		clone.attrs = append(clone.attrs, h.qualify(a))
	}
	return &clone
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	clone := *h
	clone.group = h.prefixed(name)
	return &clone
}

func (h *Handler) qualify(a slog.Attr) slog.Attr {
	if h.group == "" {
		return a
	}
	return slog.Attr{Key: h.prefixed(a.Key), Value: a.Value}
}

func (h *Handler) prefixed(key string) string {
	if h.group == "" {
		return key
	}
	return h.group + "." + key
}

func (h *Handler) emit(level slog.Level, msg string) {
	switch {
	case level < slog.LevelDebug:
		hostcall.LogTrace(msg)
	case level < slog.LevelInfo:
		hostcall.LogDebug(msg)
	case level < slog.LevelWarn:
		hostcall.LogInfo(msg)
	case level < slog.LevelError:
		hostcall.LogWarn(msg)
	default:
		hostcall.LogError(msg)
	}
}

// wireSeverity maps slog levels to the host's trace=0..error=4 scale.
func wireSeverity(level slog.Level) int32 {
	switch {
	case level < slog.LevelDebug:
		return 0
	case level < slog.LevelInfo:
		return 1
	case level < slog.LevelWarn:
		return 2
	case level < slog.LevelError:
		return 3
	default:
		return 4
	}
}

// encodeAttrs renders already-qualified attributes as a flat JSON object.
// Group membership survives as dotted keys.
func encodeAttrs(attrs []slog.Attr) string {
	b := jsonlite.NewBuilder()
	b.BeginObject()
	for _, a := range attrs {
		appendAttr(b, a)
	}
	b.EndObject()
	return b.String()
}

func appendAttr(b *jsonlite.Builder, a slog.Attr) {
	a.Value = a.Value.Resolve()
	b.Key(a.Key)
	switch a.Value.Kind() {
	case slog.KindInt64:
		b.Int(a.Value.Int64())
	case slog.KindUint64:
		b.Uint(a.Value.Uint64())
	case slog.KindBool:
		b.Bool(a.Value.Bool())
	case slog.KindFloat64:
		b.Raw(jsonlite.FormatFloat(a.Value.Float64()))
	default:
		b.Str(a.Value.String())
	}
}
