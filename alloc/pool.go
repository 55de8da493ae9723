package alloc

import (
	"github.com/picoshell-dev/picoshell/errors"
)

// Pool is an Allocator with a fixed byte budget. Requests that would push the
// live total past the budget fail with a NoMemoryError, which is how the
// object core's allocation-failure paths become reachable on a host with
// effectively unlimited memory.
//
// The pool counts requested sizes, not capacities, so a shrink via
// Reallocate returns budget immediately.
type Pool struct {
	budget int
	live   int
	allocs int
}

// NewPool returns a pool that will keep at most budget bytes live.
func NewPool(budget int) *Pool {
	return &Pool{budget: budget}
}

func (p *Pool) Allocate(size int) ([]byte, error) {
	if size < 0 {
		return nil, errors.NoMemoryErrorf("alloc: negative size %d", size)
	}
	if p.live+size > p.budget {
		return nil, errors.NoMemoryErrorf(
			"alloc: pool exhausted: %d bytes requested, %d of %d in use",
			size, p.live, p.budget)
	}
	p.live += size
	p.allocs++
	return make([]byte, size), nil
}

func (p *Pool) Reallocate(buf []byte, newSize int) ([]byte, error) {
	if newSize < 0 {
		return nil, errors.NoMemoryErrorf("alloc: negative size %d", newSize)
	}
	delta := newSize - len(buf)
	if delta > 0 && p.live+delta > p.budget {
		return nil, errors.NoMemoryErrorf(
			"alloc: pool exhausted: %d bytes requested, %d of %d in use",
			delta, p.live, p.budget)
	}
	p.live += delta
	next := make([]byte, newSize)
	copy(next, buf)
	return next, nil
}

func (p *Pool) Free(buf []byte) {
	p.live -= len(buf)
	if p.live < 0 {
		// Double free or a buffer the pool never issued.
		panic("alloc: pool freed more bytes than it allocated")
	}
}

// Live returns the number of bytes currently checked out.
func (p *Pool) Live() int {
	return p.live
}

// Budget returns the pool's byte budget.
func (p *Pool) Budget() int {
	return p.budget
}

// Allocs returns the number of Allocate calls that succeeded.
func (p *Pool) Allocs() int {
	return p.allocs
}
