// Package errors defines the error kinds raised by the runtime core.
//
// Two families exist. Allocation failures (NoMemoryError) mean the allocator
// refused a request; the operation that hit one returns early without having
// mutated its receiver. Usage errors (IndexError, TypeError, ArgsError) mean
// the caller passed something the operation cannot accept. Both are plain
// error values that propagate to the caller; nothing in the core prints and
// continues.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel values usable with errors.Is to classify an error without
// inspecting its concrete type.
var (
	ErrNoMemory = errors.New("no memory")
	ErrIndex    = errors.New("index error")
	ErrType     = errors.New("type error")
	ErrArgs     = errors.New("args error")
)

// NoMemoryError indicates the allocator could not satisfy a request.
// The operation that observed it left its receiver untouched.
type NoMemoryError struct {
	Err error
}

func (e *NoMemoryError) Error() string {
	return e.Err.Error()
}

func (e *NoMemoryError) Unwrap() error {
	return e.Err
}

func (e *NoMemoryError) Is(target error) bool {
	return target == ErrNoMemory
}

func NewNoMemoryError(err error) *NoMemoryError {
	return &NoMemoryError{Err: err}
}

func NoMemoryErrorf(format string, args ...any) *NoMemoryError {
	return NewNoMemoryError(fmt.Errorf(format, args...))
}

// IndexError indicates an index or range was out of bounds after adjustment.
// No mutation was performed.
type IndexError struct {
	Err error
}

func (e *IndexError) Error() string {
	return e.Err.Error()
}

func (e *IndexError) Unwrap() error {
	return e.Err
}

func (e *IndexError) Is(target error) bool {
	return target == ErrIndex
}

func NewIndexError(err error) *IndexError {
	return &IndexError{Err: err}
}

func IndexErrorf(format string, args ...any) *IndexError {
	return NewIndexError(fmt.Errorf(format, args...))
}

// TypeError indicates an operand of an unsupported type was supplied.
type TypeError struct {
	Err error
}

func (e *TypeError) Error() string {
	return e.Err.Error()
}

func (e *TypeError) Unwrap() error {
	return e.Err
}

func (e *TypeError) Is(target error) bool {
	return target == ErrType
}

func NewTypeError(err error) *TypeError {
	return &TypeError{Err: err}
}

func TypeErrorf(format string, args ...any) *TypeError {
	return NewTypeError(fmt.Errorf(format, args...))
}

// ArgsError indicates an operator was invoked with the wrong number or shape
// of arguments.
type ArgsError struct {
	Err error
}

func (e *ArgsError) Error() string {
	return e.Err.Error()
}

func (e *ArgsError) Unwrap() error {
	return e.Err
}

func (e *ArgsError) Is(target error) bool {
	return target == ErrArgs
}

func NewArgsError(err error) *ArgsError {
	return &ArgsError{Err: err}
}

func ArgsErrorf(format string, args ...any) *ArgsError {
	return NewArgsError(fmt.Errorf(format, args...))
}

// IsUsage reports whether err is a usage error (index, type, or args), as
// opposed to an allocation failure. Dispatch layers use this to decide which
// errors to translate into console diagnostics.
func IsUsage(err error) bool {
	return errors.Is(err, ErrIndex) || errors.Is(err, ErrType) || errors.Is(err, ErrArgs)
}
