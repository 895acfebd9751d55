// Package convert turns raw environment strings into typed values.
//
// A Registry maps a Kind to a conversion Func. It comes seeded with the
// built-in kinds and can be extended at runtime with Register.
package convert

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidArgument indicates a malformed registration or tag.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrConversion indicates a raw value could not be converted.
	ErrConversion = errors.New("conversion failed")
)

const (
	DefaultSeparator      = ","
	DefaultDateTimeFormat = "2006-01-02 15:04:05"
)

// Func converts a raw string into a typed value.
type Func func(raw string) (any, error)

// Registry holds the converters known for each Kind.
// It is not safe for concurrent mutation.
type Registry struct {
	converters     map[Kind]Func
	separator      string
	dateTimeFormat string
}

// Option configures a Registry.
type Option func(*Registry)

// WithSeparator sets the list separator. Empty values are ignored.
func WithSeparator(sep string) Option {
	return func(r *Registry) {
		if sep != "" {
			r.separator = sep
		}
	}
}

// WithDateTimeFormat sets the time layout used by the datetime kind. Empty values are ignored.
func WithDateTimeFormat(layout string) Option {
	return func(r *Registry) {
		if layout != "" {
			r.dateTimeFormat = layout
		}
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		separator:      DefaultSeparator,
		dateTimeFormat: DefaultDateTimeFormat,
	}
	for _, opt := range opts {
		opt(r)
	}

	r.converters = map[Kind]Func{
		String:   parseString,
		Int:      parseInt,
		Float:    parseFloat,
		Bool:     parseBool,
		JSON:     parseJSON,
		XML:      parseXML,
		DateTime: parseDateTime(r.dateTimeFormat),
		Duration: parseDuration,
		YAML:     parseYAML,
		List: func(raw string) (any, error) {
			return r.Split(raw), nil
		},
	}

	return r
}

// Register adds or replaces the converter for kind.
func (r *Registry) Register(kind Kind, fn Func) error {
	if kind == "" {
		return fmt.Errorf("%w: kind cannot be empty", ErrInvalidArgument)
	}
	if fn == nil {
		return fmt.Errorf("%w: converter for %s cannot be nil", ErrInvalidArgument, kind)
	}

	r.converters[kind] = fn
	return nil
}

// Lookup returns the converter registered for kind.
func (r *Registry) Lookup(kind Kind) (Func, bool) {
	fn, ok := r.converters[kind]
	return fn, ok
}

// Supports reports whether every kind named by tag has a converter.
func (r *Registry) Supports(tag Tag) bool {
	if _, ok := r.Lookup(tag.Kind); !ok {
		return false
	}
	if tag.Elem == "" {
		return true
	}
	if tag.Kind != List || tag.Elem == List {
		return false
	}
	_, ok := r.Lookup(tag.Elem)
	return ok
}

func (r *Registry) Separator() string {
	return r.separator
}

func (r *Registry) DateTimeFormat() string {
	return r.dateTimeFormat
}

// Split breaks raw on the list separator. It never fails: an empty string
// yields a single empty element and no whitespace is trimmed.
func (r *Registry) Split(raw string) []string {
	return strings.Split(raw, r.separator)
}

// Convert dispatches raw through the converter for tag. Strings pass through
// untouched. A parametrized list converts every element or fails as a whole;
// lists of built-in kinds come back as typed slices ([]float64, []int64, ...),
// anything else as []any.
func (r *Registry) Convert(tag Tag, raw string) (any, error) {
	switch {
	case tag.Kind == String:
		return raw, nil
	case tag.Kind == List && tag.Elem == "":
		return r.Split(raw), nil
	case tag.Kind == List:
		return r.convertList(tag, raw)
	}

	fn, ok := r.Lookup(tag.Kind)
	if !ok {
		return nil, fmt.Errorf("%w: no converter for %s", ErrConversion, tag)
	}

	v, err := fn(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrConversion, tag, err)
	}
	return v, nil
}

func (r *Registry) convertList(tag Tag, raw string) (any, error) {
	fn, ok := r.Lookup(tag.Elem)
	if !ok || tag.Elem == List {
		return nil, fmt.Errorf("%w: no element converter for %s", ErrConversion, tag)
	}
	if tag.Elem == String {
		fn = parseString
	}

	parts := r.Split(raw)
	out := make([]any, 0, len(parts))
	for i, part := range parts {
		v, err := fn(part)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: element %d %q: %w", ErrConversion, tag, i, part, err)
		}
		out = append(out, v)
	}

	if collect, ok := collectors[tag.Elem]; ok {
		return collect(out), nil
	}
	return out, nil
}
