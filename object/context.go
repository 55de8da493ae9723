package object

import (
	"context"

	"github.com/picoshell-dev/picoshell/alloc"
)

type contextKey string

const allocatorKey = contextKey("picoshell:allocator")

// WithAllocator adds an Allocator to the context. Operators that construct or
// resize string buffers obtain their allocator from the invocation context.
func WithAllocator(ctx context.Context, a alloc.Allocator) context.Context {
	return context.WithValue(ctx, allocatorKey, a)
}

// GetAllocator returns the Allocator from the context, if one was set.
func GetAllocator(ctx context.Context) (alloc.Allocator, bool) {
	if a, ok := ctx.Value(allocatorKey).(alloc.Allocator); ok {
		if a != nil {
			return a, ok
		}
	}
	return nil, false
}

var defaultHeap = alloc.NewHeap()

// allocatorFrom returns the context's allocator, falling back to an unbounded
// heap so the package remains usable without explicit runtime wiring.
func allocatorFrom(ctx context.Context) alloc.Allocator {
	if a, ok := GetAllocator(ctx); ok {
		return a
	}
	return defaultHeap
}
