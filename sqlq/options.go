package sqlq

import (
	"log/slog"
)

// Options defines options for query execution.
type Options struct {
	debug       bool
	measureTime bool
	logger      *slog.Logger
}

// Option defines a function type for setting Options.
type Option func(*Options)

// WithDebug enables debug logging of executed queries.
func WithDebug() Option {
	return func(o *Options) {
		o.debug = true
	}
}

// WithMeasureTime adds build and execution durations to the debug logs.
func WithMeasureTime() Option {
	return func(o *Options) {
		o.measureTime = true
	}
}

// WithLogger sets the logger of debug logs, slog.Default() by default.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Options) {
		o.logger = logger
	}
}

func newDefaultOptions() *Options {
	return &Options{}
}

func mergeOptions(opts ...Option) *Options {
	options := newDefaultOptions()
	for _, opt := range opts {
		opt(options)
	}
	return options
}
