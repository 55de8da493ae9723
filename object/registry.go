package object

import (
	"context"
	"fmt"
	"slices"

	"github.com/hashicorp/go-multierror"
	"github.com/picoshell-dev/picoshell/errors"
)

// MethodSpec describes a registered method for introspection and tooling.
type MethodSpec struct {
	Name    string
	Doc     string
	Args    []string
	Returns string
}

// methodDef combines a method's specification with its implementation.
type methodDef[T any] struct {
	spec    MethodSpec
	minArgs int
	impl    func(self T, ctx context.Context, args ...Object) (Object, error)
}

// Registry holds all methods for a given object type. It is populated once
// during package initialization, frozen, and read-only thereafter for the
// lifetime of the process.
type Registry[T any] struct {
	typeName string
	methods  map[string]methodDef[T]
	specs    []MethodSpec
	frozen   bool
}

// MethodBuilder provides a fluent API for defining a single method.
type MethodBuilder[T any] struct {
	registry *Registry[T]
	name     string
	doc      string
	args     []string
	minArgs  int
	returns  string
}

// NewRegistry creates a method registry for the given type name.
func NewRegistry[T any](typeName string) *Registry[T] {
	return &Registry[T]{
		typeName: typeName,
		methods:  make(map[string]methodDef[T]),
	}
}

// Define starts building a new method definition.
func (r *Registry[T]) Define(name string) *MethodBuilder[T] {
	return &MethodBuilder[T]{
		registry: r,
		name:     name,
	}
}

// Freeze makes the registry read-only. Any later Define().Impl() panics.
func (r *Registry[T]) Freeze() {
	r.frozen = true
}

// Specs returns a copy of all registered method specifications in
// registration order.
func (r *Registry[T]) Specs() []MethodSpec {
	return slices.Clone(r.specs)
}

// Get returns a Builtin for the named method bound to self.
// Returns nil, false if the method doesn't exist.
func (r *Registry[T]) Get(self T, name string) (*Builtin, bool) {
	m, ok := r.methods[name]
	if !ok {
		return nil, false
	}
	minArgs := m.minArgs
	maxArgs := len(m.spec.Args)
	fullName := r.typeName + "." + name
	return &Builtin{
		name: fullName,
		fn: func(ctx context.Context, args ...Object) (Object, error) {
			if len(args) < minArgs || len(args) > maxArgs {
				return nil, argsError(fullName, minArgs, maxArgs, len(args))
			}
			return m.impl(self, ctx, args...)
		},
	}, true
}

// Validate checks every registered method for completeness and returns all
// problems found, aggregated into a single error.
func (r *Registry[T]) Validate() error {
	var result *multierror.Error
	for _, spec := range r.specs {
		if spec.Doc == "" {
			result = multierror.Append(result,
				fmt.Errorf("%s.%s: missing doc", r.typeName, spec.Name))
		}
		if spec.Returns == "" {
			result = multierror.Append(result,
				fmt.Errorf("%s.%s: missing return type", r.typeName, spec.Name))
		}
		seen := make(map[string]bool, len(spec.Args))
		for _, arg := range spec.Args {
			if seen[arg] {
				result = multierror.Append(result,
					fmt.Errorf("%s.%s: duplicate argument name %q", r.typeName, spec.Name, arg))
			}
			seen[arg] = true
		}
	}
	return result.ErrorOrNil()
}

// Doc sets the method's documentation string.
func (b *MethodBuilder[T]) Doc(doc string) *MethodBuilder[T] {
	b.doc = doc
	return b
}

// Arg adds a required argument by name. Required arguments must be declared
// before optional ones.
func (b *MethodBuilder[T]) Arg(name string) *MethodBuilder[T] {
	if len(b.args) > b.minArgs {
		panic(fmt.Sprintf("%s: required argument %q after optional", b.name, name))
	}
	b.args = append(b.args, name)
	b.minArgs++
	return b
}

// OptArg adds an optional trailing argument by name.
func (b *MethodBuilder[T]) OptArg(name string) *MethodBuilder[T] {
	b.args = append(b.args, name)
	return b
}

// Returns sets the return type (for documentation/tooling).
func (b *MethodBuilder[T]) Returns(typ string) *MethodBuilder[T] {
	b.returns = typ
	return b
}

// Impl sets the implementation and registers the method.
// Panics if the registry is frozen or the name is already registered.
func (b *MethodBuilder[T]) Impl(fn func(T, context.Context, ...Object) (Object, error)) {
	r := b.registry
	if r.frozen {
		panic(fmt.Sprintf("%s: registry is frozen, cannot register %q", r.typeName, b.name))
	}
	if _, exists := r.methods[b.name]; exists {
		panic(fmt.Sprintf("%s: method %q already registered", r.typeName, b.name))
	}
	spec := MethodSpec{
		Name:    b.name,
		Doc:     b.doc,
		Args:    b.args,
		Returns: b.returns,
	}
	r.methods[b.name] = methodDef[T]{spec: spec, minArgs: b.minArgs, impl: fn}
	r.specs = append(r.specs, spec)
}

// argsError returns a grammatically correct argument count error.
func argsError(methodName string, min, max, got int) error {
	if min == max {
		if min == 1 {
			return errors.ArgsErrorf("%s: expected 1 argument, got %d", methodName, got)
		}
		return errors.ArgsErrorf("%s: expected %d arguments, got %d", methodName, min, got)
	}
	return errors.ArgsErrorf("%s: expected %d to %d arguments, got %d", methodName, min, max, got)
}
