package object

import "fmt"

// Bool wraps bool and implements Object.
type Bool struct {
	value bool
}

func (b *Bool) Type() Type {
	return BOOL
}

func (b *Bool) Value() bool {
	return b.value
}

func (b *Bool) Inspect() string {
	return fmt.Sprintf("%t", b.value)
}

func (b *Bool) String() string {
	return b.Inspect()
}

func (b *Bool) Interface() interface{} {
	return b.value
}

func (b *Bool) Equals(other Object) bool {
	otherBool, ok := other.(*Bool)
	if !ok {
		return false
	}
	return b.value == otherBool.value
}

func (b *Bool) IsTruthy() bool {
	return b.value
}

// NewBool returns the singleton for the given bool value.
func NewBool(value bool) *Bool {
	if value {
		return True
	}
	return False
}
