// Package object provides the value types of the picoshell runtime.
//
// The central type is String: a mutable, null-terminated byte buffer held
// behind a handle, so that any number of value slots can alias one string and
// observe each other's mutations. The remaining types (Int, Bool, NilType,
// Builtin) are the immutable scalars the string operators produce and consume.
//
// An object.Object is often type asserted to a concrete type:
//
//	switch obj := obj.(type) {
//	case *object.String:
//		// obj.Value()
//	case *object.Int:
//		// obj.Value()
//	}
package object

// Type of an object as a string.
type Type string

// Type constants
const (
	BOOL    Type = "bool"
	BUILTIN Type = "builtin"
	ERROR   Type = "error"
	INT     Type = "int"
	NIL     Type = "nil"
	STRING  Type = "string"
)

var (
	Nil   = &NilType{}
	True  = &Bool{value: true}
	False = &Bool{value: false}
)

// Object is the interface implemented by all runtime values.
type Object interface {
	// Type of the object.
	Type() Type

	// Inspect returns a string representation of the given object.
	Inspect() string

	// Interface converts the given object to a native Go value.
	Interface() interface{}

	// Equals returns true if the given object is equal to this object.
	Equals(other Object) bool

	// IsTruthy returns true if the object is considered "truthy".
	IsTruthy() bool
}

// HasMethods is implemented by types whose instances expose named operators
// through a method table. The dispatch layer uses it to resolve a method name
// against a receiver.
type HasMethods interface {
	GetMethod(name string) (*Builtin, bool)
}

// Equals is the runtime's whole-value equality predicate: type tag plus
// content. The != operator is its logical negation.
func Equals(a, b Object) bool {
	if a.Type() != b.Type() {
		return false
	}
	return a.Equals(b)
}
