package resolver

import (
	"log/slog"

	"go.opentelemetry.io/otel/trace"

	"github.com/ab0utbla-k/envresolver/convert"
)

// LookupFunc reads one variable from an environment table.
type LookupFunc func(key string) (string, bool)

type options struct {
	separator      string
	dateTimeFormat string
	silent         bool
	logger         *slog.Logger
	lookup         LookupFunc
	registry       *convert.Registry
	tracerProvider trace.TracerProvider
}

// Option configures a Resolver.
type Option func(*options)

// WithSeparator sets the list separator. Ignored when WithRegistry is used.
func WithSeparator(sep string) Option {
	return func(o *options) {
		o.separator = sep
	}
}

// WithDateTimeFormat sets the datetime layout. Ignored when WithRegistry is used.
func WithDateTimeFormat(layout string) Option {
	return func(o *options) {
		o.dateTimeFormat = layout
	}
}

// WithSilent suppresses diagnostics for invalid environment values.
func WithSilent(silent bool) Option {
	return func(o *options) {
		o.silent = silent
	}
}

// WithLogger sets the diagnostic channel.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithLookup replaces the process environment as the variable source.
func WithLookup(lookup LookupFunc) Option {
	return func(o *options) {
		o.lookup = lookup
	}
}

// WithRegistry shares an existing converter registry.
func WithRegistry(registry *convert.Registry) Option {
	return func(o *options) {
		o.registry = registry
	}
}

func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(o *options) {
		o.tracerProvider = tp
	}
}
