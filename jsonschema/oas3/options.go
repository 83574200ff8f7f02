package oas3

import "log/slog"

// Option configures a read.
type Option func(o *options)

type options struct {
	logger   *slog.Logger
	maxDepth int
	strict   bool
}

func newOptions(opts ...Option) *options {
	o := &options{
		logger: slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// WithLogger sets the logger that receives debug records about the read.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithMaxDepth bounds how deeply schemas may nest. Zero, the default, means no limit.
func WithMaxDepth(depth int) Option {
	return func(o *options) {
		o.maxDepth = max(depth, 0)
	}
}

// WithStrictValidation validates each top-level schema node against the OpenAPI 3.0
// Schema object meta-schema before reading it, turning shape mismatches that are
// otherwise read leniently into ErrSchemaInvalid errors.
func WithStrictValidation() Option {
	return func(o *options) {
		o.strict = true
	}
}
