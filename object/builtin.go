package object

import (
	"context"
	"fmt"
)

// BuiltinFunction holds the type of a built-in function.
type BuiltinFunction func(ctx context.Context, args ...Object) (Object, error)

// Builtin wraps a Go function and implements Object. Method lookup on a
// receiver yields a Builtin already bound to that receiver.
type Builtin struct {
	fn   BuiltinFunction
	name string
}

func (b *Builtin) Type() Type {
	return BUILTIN
}

func (b *Builtin) Value() BuiltinFunction {
	return b.fn
}

func (b *Builtin) Call(ctx context.Context, args ...Object) (Object, error) {
	return b.fn(ctx, args...)
}

func (b *Builtin) Inspect() string {
	return fmt.Sprintf("builtin(%s)", b.name)
}

func (b *Builtin) String() string {
	return b.Inspect()
}

func (b *Builtin) Name() string {
	return b.name
}

func (b *Builtin) Interface() interface{} {
	return nil
}

func (b *Builtin) Equals(other Object) bool {
	otherBuiltin, ok := other.(*Builtin)
	if !ok {
		return false
	}
	return b == otherBuiltin
}

func (b *Builtin) IsTruthy() bool {
	return true
}

// NewBuiltin creates a new builtin function with the given name and function.
func NewBuiltin(name string, fn BuiltinFunction) *Builtin {
	return &Builtin{fn: fn, name: name}
}
