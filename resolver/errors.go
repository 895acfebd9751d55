package resolver

import (
	"errors"
	"fmt"

	"github.com/ab0utbla-k/envresolver/convert"
)

var (
	// ErrInvalidArgument indicates a malformed declaration or registration.
	ErrInvalidArgument = convert.ErrInvalidArgument
	// ErrUnsupportedType indicates no converter exists for a declared type.
	ErrUnsupportedType = errors.New("unsupported type")
	// ErrUnknownVariable indicates access to a variable that was never declared.
	ErrUnknownVariable = errors.New("unknown variable")
	// ErrTypeMismatch indicates a typed accessor was used with the wrong type.
	ErrTypeMismatch = errors.New("type mismatch")
)

// Error is returned by declaration and access methods for a named variable.
type Error struct {
	Name string
	Err  error
}

func (e *Error) Error() string {
	return fmt.Sprintf("variable %s: %v", e.Name, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
