package object

import "fmt"

// Error wraps a Go error interface and implements Object. The core operators
// return plain errors; a dispatch layer that wants to surface a failed
// invocation as a value wraps the error here.
type Error struct {
	err error
}

func (e *Error) Type() Type {
	return ERROR
}

func (e *Error) Inspect() string {
	return fmt.Sprintf("error(%q)", e.err.Error())
}

func (e *Error) String() string {
	return e.err.Error()
}

func (e *Error) Value() error {
	return e.err
}

func (e *Error) Interface() interface{} {
	return e.err
}

func (e *Error) Equals(other Object) bool {
	otherError, ok := other.(*Error)
	if !ok {
		return false
	}
	return e.err.Error() == otherError.err.Error()
}

func (e *Error) IsTruthy() bool {
	return false
}

func (e *Error) Error() string {
	return e.err.Error()
}

func (e *Error) Unwrap() error {
	return e.err
}

func NewError(err error) *Error {
	if wrapped, ok := err.(*Error); ok { // avoid unhelpful nesting
		return wrapped
	}
	return &Error{err: err}
}

func Errorf(format string, a ...interface{}) *Error {
	var args []interface{}
	for _, arg := range a {
		if obj, ok := arg.(Object); ok {
			args = append(args, obj.Interface())
		} else {
			args = append(args, arg)
		}
	}
	return &Error{err: fmt.Errorf(format, args...)}
}

func IsError(obj Object) bool {
	if obj != nil {
		return obj.Type() == ERROR
	}
	return false
}
