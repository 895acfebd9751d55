// Package resolver reads declared environment variables into typed values.
//
// Variables are declared up front with a name, a convert.Tag and a default.
// Resolve reads the environment once per variable and converts the raw text;
// a variable that is unset, empty or malformed keeps its default. Malformed
// values are reported on the diagnostic logger but never fail the pass.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ab0utbla-k/envresolver/convert"
	"github.com/ab0utbla-k/envresolver/internal/env"
)

const tracerName = "github.com/ab0utbla-k/envresolver/resolver"

// State is the lifecycle position of a declared variable.
type State int

const (
	Declared State = iota
	Resolved
)

func (s State) String() string {
	if s == Resolved {
		return "resolved"
	}
	return "declared"
}

// Spec is a declared variable and its current value.
type Spec struct {
	Name    string
	Tag     convert.Tag
	Default any
	Value   any
	State   State
}

// Resolver owns a set of declared variables. It is not safe for concurrent use.
type Resolver struct {
	registry *convert.Registry
	specs    map[string]*Spec
	lookup   env.LookupFunc
	logger   *slog.Logger
	tracer   trace.Tracer
	silent   bool
}

func New(opts ...Option) *Resolver {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}

	registry := o.registry
	if registry == nil {
		registry = convert.NewRegistry(
			convert.WithSeparator(o.separator),
			convert.WithDateTimeFormat(o.dateTimeFormat),
		)
	}

	logger := o.logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	lookup := env.OS
	if o.lookup != nil {
		lookup = env.LookupFunc(o.lookup)
	}

	tracer := otel.Tracer(tracerName)
	if o.tracerProvider != nil {
		tracer = o.tracerProvider.Tracer(tracerName)
	}

	return &Resolver{
		registry: registry,
		specs:    make(map[string]*Spec),
		lookup:   lookup,
		logger:   logger,
		tracer:   tracer,
		silent:   o.silent,
	}
}

func (r *Resolver) Registry() *convert.Registry {
	return r.registry
}

// AddConverter registers a converter for kind, replacing any existing one.
func (r *Resolver) AddConverter(kind convert.Kind, fn convert.Func) error {
	return r.registry.Register(kind, fn)
}

// Declare adds a variable to resolve. The tag must be supported by the
// registry at declaration time. Declaring an existing name replaces it.
func (r *Resolver) Declare(name string, tag convert.Tag, def any) error {
	if name == "" {
		return fmt.Errorf("%w: variable name cannot be empty", ErrInvalidArgument)
	}
	if tag.IsZero() {
		return &Error{Name: name, Err: fmt.Errorf("%w: type cannot be empty", ErrInvalidArgument)}
	}
	if tag.Elem != "" && tag.Kind != convert.List {
		return &Error{Name: name, Err: fmt.Errorf("%w: element type on non-list type %s", ErrInvalidArgument, tag.Kind)}
	}
	if !r.registry.Supports(tag) {
		return &Error{Name: name, Err: fmt.Errorf("%w: %s", ErrUnsupportedType, tag)}
	}

	r.specs[name] = &Spec{
		Name:    name,
		Tag:     tag,
		Default: def,
		Value:   def,
		State:   Declared,
	}
	return nil
}

// MustDeclare is like Declare but panics on error.
func (r *Resolver) MustDeclare(name string, tag convert.Tag, def any) {
	if err := r.Declare(name, tag, def); err != nil {
		panic(err)
	}
}

// Resolve reads every declared variable from the environment and returns a
// snapshot of the resulting values. It can be called again to re-read.
func (r *Resolver) Resolve(ctx context.Context) Values {
	ctx, span := r.tracer.Start(ctx, "Resolve")
	defer span.End()

	fallbacks := 0
	for _, spec := range r.specs {
		if !r.resolve(ctx, spec) {
			fallbacks++
		}
	}

	span.SetAttributes(
		attribute.Int("envresolver.variables", len(r.specs)),
		attribute.Int("envresolver.fallbacks", fallbacks),
	)

	return r.Values()
}

// resolve updates one spec and reports false when a present value was rejected.
func (r *Resolver) resolve(ctx context.Context, spec *Spec) bool {
	spec.Value = spec.Default
	spec.State = Resolved

	raw, ok := env.Value(r.lookup, spec.Name)
	if !ok {
		return true
	}

	v, err := r.registry.Convert(spec.Tag, raw)
	if err != nil {
		r.report(ctx, spec.Name, spec.Tag, raw, err)
		return false
	}

	spec.Value = v
	return true
}

func (r *Resolver) report(ctx context.Context, name string, tag convert.Tag, raw string, err error) {
	trace.SpanFromContext(ctx).AddEvent("fallback", trace.WithAttributes(
		attribute.String("envresolver.name", name),
		attribute.String("envresolver.type", tag.String()),
	))

	if r.silent {
		return
	}

	r.logger.WarnContext(
		ctx,
		"invalid environment value",
		slog.String("name", name),
		slog.String("type", tag.String()),
		slog.String("value", raw),
		slog.String("error", err.Error()),
	)
}

// Get returns the current value of a declared variable.
func (r *Resolver) Get(name string) (any, error) {
	spec, ok := r.specs[name]
	if !ok {
		return nil, &Error{Name: name, Err: ErrUnknownVariable}
	}
	return spec.Value, nil
}

// Lookup returns a copy of the declared spec for name.
func (r *Resolver) Lookup(name string) (Spec, bool) {
	spec, ok := r.specs[name]
	if !ok {
		return Spec{}, false
	}
	return *spec, true
}

// Names returns the declared variable names in sorted order.
func (r *Resolver) Names() []string {
	names := lo.Keys(r.specs)
	slices.Sort(names)
	return names
}

// Values returns a snapshot of every declared variable's current value.
func (r *Resolver) Values() Values {
	return lo.MapValues(r.specs, func(spec *Spec, _ string) any {
		return spec.Value
	})
}

// GetDirect reads and converts one variable without declaring it. A zero tag
// means string. Unset, empty and malformed values, as well as tags without a
// converter, yield def.
func (r *Resolver) GetDirect(name string, tag convert.Tag, def any) any {
	if tag.IsZero() {
		tag = convert.Of(convert.String)
	}

	raw, ok := env.Value(r.lookup, name)
	if !ok {
		return def
	}

	v, err := r.registry.Convert(tag, raw)
	if err != nil {
		r.report(context.Background(), name, tag, raw, err)
		return def
	}
	return v
}

var std = New()

// Direct is GetDirect on the process environment with the default settings.
func Direct(name string, tag convert.Tag, def any) any {
	return std.GetDirect(name, tag, def)
}
