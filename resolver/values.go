package resolver

import (
	"fmt"
	"time"

	"github.com/samber/lo"
)

// Values maps variable names to resolved values.
type Values map[string]any

// Has reports whether name is present in the snapshot.
func (v Values) Has(name string) bool {
	_, ok := v[name]
	return ok
}

func (v Values) String(name string) string {
	s, _ := v[name].(string)
	return s
}

// Int returns the named value as int64. Any Go integer type is accepted so that
// defaults written as plain int literals read back the same as parsed values.
func (v Values) Int(name string) int64 {
	switch n := v[name].(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case int32:
		return int64(n)
	case int16:
		return int64(n)
	case int8:
		return int64(n)
	}
	return 0
}

func (v Values) Float(name string) float64 {
	switch n := v[name].(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	}
	return 0
}

func (v Values) Bool(name string) bool {
	b, _ := v[name].(bool)
	return b
}

func (v Values) Time(name string) time.Time {
	t, _ := v[name].(time.Time)
	return t
}

func (v Values) Duration(name string) time.Duration {
	d, _ := v[name].(time.Duration)
	return d
}

// GetAs returns a declared variable's value as T. A nil value yields T's zero value.
func GetAs[T any](r *Resolver, name string) (T, error) {
	var zero T

	v, err := r.Get(name)
	if err != nil || v == nil {
		return zero, err
	}

	t, ok := v.(T)
	if !ok {
		return zero, &Error{Name: name, Err: fmt.Errorf("%w: have %T, want %T", ErrTypeMismatch, v, zero)}
	}
	return t, nil
}

// GetListAs returns a declared list variable's elements as []T.
func GetListAs[T any](r *Resolver, name string) ([]T, error) {
	v, err := r.Get(name)
	if err != nil || v == nil {
		return nil, err
	}

	switch list := v.(type) {
	case []T:
		return list, nil
	case []any:
		if lo.EveryBy(list, func(item any) bool {
			_, ok := item.(T)
			return ok
		}) {
			return lo.Map(list, func(item any, _ int) T { return item.(T) }), nil
		}
	}

	var zero []T
	return nil, &Error{Name: name, Err: fmt.Errorf("%w: have %T, want %T", ErrTypeMismatch, v, zero)}
}
