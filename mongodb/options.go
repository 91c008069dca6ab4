package mongodb

import (
	"log/slog"
)

// Options defines options of a Query.
type Options struct {
	converter   ValueConverter
	debug       bool
	measureTime bool
	logger      *slog.Logger
}

// Option defines a function type for setting Options.
type Option func(*Options)

// WithValueConverter sets the converter of compared values.
func WithValueConverter(converter ValueConverter) Option {
	return func(o *Options) {
		o.converter = converter
	}
}

// WithDebug enables debug logging of executed queries.
func WithDebug() Option {
	return func(o *Options) {
		o.debug = true
	}
}

// WithMeasureTime adds the execution durations to the debug logs.
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

func mergeOptions(opts ...Option) *Options {
	options := &Options{}
	for _, opt := range opts {
		opt(options)
	}
	if options.logger == nil {
		options.logger = slog.Default()
	}
	return options
}
