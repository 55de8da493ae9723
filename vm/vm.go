// Package vm implements the invocation boundary between a host program and
// the object core: the execution context that carries the allocator, the
// value-slot frame an operator receives, and name-based operator dispatch
// against the frozen method tables.
//
// The execution model is single threaded and cooperative. Exactly one
// operator runs at a time, to completion; nothing here suspends or retries.
package vm

import (
	"context"

	"github.com/picoshell-dev/picoshell/alloc"
	"github.com/picoshell-dev/picoshell/console"
	"github.com/picoshell-dev/picoshell/errors"
	"github.com/picoshell-dev/picoshell/object"
)

// ReleaseFunc is the hook invoked when a frame slot stops referencing a
// value. A refcounting host decrements here and calls Destroy at zero; the
// default is a no-op, leaving reclamation to the Go runtime and explicit
// Destroy calls.
type ReleaseFunc func(obj object.Object)

// Runtime owns the collaborators an operator invocation needs: the allocator,
// the diagnostic console, and the release hook.
type Runtime struct {
	alloc   alloc.Allocator
	console console.Console
	release ReleaseFunc
}

type Option func(*Runtime)

// WithAllocator sets the allocator operators draw buffers from.
func WithAllocator(a alloc.Allocator) Option {
	return func(r *Runtime) {
		r.alloc = a
	}
}

// WithConsole sets the diagnostic side channel.
func WithConsole(c console.Console) Option {
	return func(r *Runtime) {
		r.console = c
	}
}

// WithReleaser sets the hook called when a slot's previous value is released.
func WithReleaser(fn ReleaseFunc) Option {
	return func(r *Runtime) {
		r.release = fn
	}
}

// New returns a Runtime backed by an unbounded heap and a silent console
// unless options say otherwise.
func New(opts ...Option) *Runtime {
	r := &Runtime{
		alloc:   alloc.NewHeap(),
		console: console.Discard,
		release: func(object.Object) {},
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Allocator returns the runtime's allocator.
func (r *Runtime) Allocator() alloc.Allocator {
	return r.alloc
}

// Context returns ctx with the runtime's allocator installed, which is how
// operators reach it during a call.
func (r *Runtime) Context(ctx context.Context) context.Context {
	return object.WithAllocator(ctx, r.alloc)
}

// Invoke resolves name against the frame's receiver and runs the operator.
// When the operator produces a result value it replaces slot 0, with the
// prior occupant released first. Mutating operators return the receiver
// itself, so slot 0 is left alone. Usage errors are translated onto the
// console diagnostic channel and returned; allocation failures are returned
// without a diagnostic, the caller decides whether they are fatal.
func (r *Runtime) Invoke(ctx context.Context, f *Frame, name string) (object.Object, error) {
	recv, ok := f.Receiver().(object.HasMethods)
	if !ok {
		return nil, r.usageError(errors.TypeErrorf(
			"undefined method %q for %s", name, f.Receiver().Type()))
	}
	method, found := recv.GetMethod(name)
	if !found {
		return nil, r.usageError(errors.TypeErrorf(
			"undefined method %q for %s", name, f.Receiver().Type()))
	}
	result, err := method.Call(r.Context(ctx), f.Args()...)
	if err != nil {
		if errors.IsUsage(err) {
			r.console.Print(err.Error())
		}
		return nil, err
	}
	if result != nil {
		f.SetReceiver(result)
	}
	return f.Receiver(), nil
}

func (r *Runtime) usageError(err error) error {
	r.console.Print(err.Error())
	return err
}
