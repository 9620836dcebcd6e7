package hostfuncs

import (
	"log/slog"
	"math/rand"
	"time"
)

// Embedder turns texts into embeddings for the models namespace. Both
// arguments and the result are JSON documents; the host decides which model
// backend serves the call.
type Embedder func(modelJSON, textsJSON string) (string, error)

// Environment bundles the host services behind the import namespaces. Build
// one with NewEnvironment and share it across module instances; per-run
// state lives in Invocation, not here.
type Environment struct {
	Logger  *slog.Logger
	Vars    VarStore
	Cache   CacheStore
	Storage *DirStorage
	Stream  StreamSink
	Embed   Embedder
	Tokens  map[string]string
	HTTP    []HTTPOption
	Now     func() int64
	Rand    func() int64
}

// EnvironmentOption configures an Environment.
type EnvironmentOption func(*Environment)

// WithLogger routes guest log calls to the given logger.
func WithLogger(l *slog.Logger) EnvironmentOption {
	return func(e *Environment) {
		e.Logger = l
	}
}

// WithVarStore replaces the variable store.
func WithVarStore(s VarStore) EnvironmentOption {
	return func(e *Environment) {
		e.Vars = s
	}
}

// WithCacheStore replaces the cache store.
func WithCacheStore(s CacheStore) EnvironmentOption {
	return func(e *Environment) {
		e.Cache = s
	}
}

// WithStorage enables the storage namespace, rooted at the given storage.
func WithStorage(s *DirStorage) EnvironmentOption {
	return func(e *Environment) {
		e.Storage = s
	}
}

// WithStreamSink routes stream emissions to the given sink.
func WithStreamSink(s StreamSink) EnvironmentOption {
	return func(e *Environment) {
		e.Stream = s
	}
}

// WithEmbedder enables the models namespace.
func WithEmbedder(fn Embedder) EnvironmentOption {
	return func(e *Environment) {
		e.Embed = fn
	}
}

// WithOAuthToken registers a provider token for the auth namespace.
func WithOAuthToken(provider, token string) EnvironmentOption {
	return func(e *Environment) {
		if e.Tokens == nil {
			e.Tokens = make(map[string]string)
		}
		e.Tokens[provider] = token
	}
}

// WithHTTPOptions configures outbound HTTP behavior for the http namespace.
func WithHTTPOptions(opts ...HTTPOption) EnvironmentOption {
	return func(e *Environment) {
		e.HTTP = append(e.HTTP, opts...)
	}
}

// WithClock replaces the time source of the meta namespace. Used by tests
// that need deterministic timestamps.
func WithClock(now func() int64) EnvironmentOption {
	return func(e *Environment) {
		e.Now = now
	}
}

// WithRandSource replaces the random source of the meta namespace.
func WithRandSource(fn func() int64) EnvironmentOption {
	return func(e *Environment) {
		e.Rand = fn
	}
}

// NewEnvironment returns an environment with in-memory stores, the default
// slog logger and host wall clock. Storage, models and streaming stay
// disabled until configured.
func NewEnvironment(opts ...EnvironmentOption) *Environment {
	e := &Environment{
		Logger: slog.Default(),
		Vars:   NewMemoryStore(),
		Cache:  NewMemoryStore(),
		Now:    func() int64 { return time.Now().UnixMilli() },
		Rand:   rand.Int63,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}
