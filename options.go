package kenlmgo

import "github.com/hupe1980/kenlmgo/engine"

type options struct {
	engine      engine.Engine
	libraryDir  string
	cacheDir    string
	logger      *Logger
	metrics     MetricsCollector
	autoRelease bool
}

// Option configures Model construction.
type Option func(*options)

// WithEngine supplies an already-loaded engine instead of resolving and
// loading the native library. Primarily useful for tests and for sharing one
// engine across many models.
func WithEngine(e engine.Engine) Option {
	return func(o *options) {
		o.engine = e
	}
}

// WithLibraryDir configures the directory the native library is resolved
// from. Without it, resolution falls back to the KENLM_LIB_PATH environment
// variable, the executable's lib/ directory, and the system loader path.
func WithLibraryDir(dir string) Option {
	return func(o *options) {
		o.libraryDir = dir
	}
}

// WithCacheDir configures the directory used for staged model files
// (decompressed .gz models, fetched remote models).
//
// If unset, the OS temp directory is used.
func WithCacheDir(dir string) Option {
	return func(o *options) {
		o.cacheDir = dir
	}
}

// WithLogger configures the logger. If nil is passed, logging is disabled.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// WithMetricsCollector configures metrics collection for scoring calls.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metrics = mc
	}
}

// WithAutoRelease arms a garbage-collection backstop that releases the
// native model if the Model becomes unreachable without Close having been
// called. Explicit Close remains the primary contract; the backstop exists
// so a leaked Model does not leak the native allocation.
func WithAutoRelease() Option {
	return func(o *options) {
		o.autoRelease = true
	}
}

func applyOptions(opts ...Option) options {
	o := options{
		logger:  NoopLogger(),
		metrics: NoopMetricsCollector{},
	}
	for _, fn := range opts {
		fn(&o)
	}
	return o
}
