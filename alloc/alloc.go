// Package alloc defines the allocator contract consumed by the object core.
//
// Every buffer the runtime owns is obtained from an Allocator, and failure is
// a first-class outcome: small embedded deployments run against a fixed
// memory budget, so every call site checks the error rather than assuming
// success. The Pool implementation enforces such a budget; Heap is the
// unbounded variant used when the host does not care.
package alloc

import (
	"github.com/picoshell-dev/picoshell/errors"
)

// Allocator hands out, resizes, and reclaims byte buffers. Implementations
// are not safe for concurrent use; the runtime is single-threaded.
type Allocator interface {
	// Allocate returns a zeroed buffer of exactly size bytes.
	Allocate(size int) ([]byte, error)

	// Reallocate resizes buf to newSize bytes, preserving content up to the
	// minimum of the old and new sizes. The returned slice may or may not
	// share storage with buf. On failure buf remains valid and unchanged.
	Reallocate(buf []byte, newSize int) ([]byte, error)

	// Free returns buf to the allocator. buf must not be used afterwards.
	Free(buf []byte)
}

// Heap is an Allocator backed directly by the Go heap. It never fails.
type Heap struct{}

func NewHeap() *Heap {
	return &Heap{}
}

func (h *Heap) Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, errors.NoMemoryErrorf("alloc: negative size %d", size)
	}
	return make([]byte, size), nil
}

func (h *Heap) Reallocate(buf []byte, newSize int) ([]byte, error) {
	if newSize < 0 {
		return nil, errors.NoMemoryErrorf("alloc: negative size %d", newSize)
	}
	if newSize <= cap(buf) {
		old := len(buf)
		buf = buf[:newSize]
		for i := old; i < newSize; i++ {
			buf[i] = 0
		}
		return buf, nil
	}
	next := make([]byte, newSize)
	copy(next, buf)
	return next, nil
}

func (h *Heap) Free(buf []byte) {}
