package alloc

import (
	"errors"
	"testing"

	perrors "github.com/picoshell-dev/picoshell/errors"
	"github.com/stretchr/testify/require"
)

func TestHeapAllocate(t *testing.T) {
	h := NewHeap()
	buf, err := h.Allocate(8)
	require.Nil(t, err)
	require.Len(t, buf, 8)
	for _, b := range buf {
		require.Equal(t, byte(0), b)
	}
}

func TestHeapReallocate(t *testing.T) {
	h := NewHeap()
	buf, err := h.Allocate(4)
	require.Nil(t, err)
	copy(buf, "abcd")

	grown, err := h.Reallocate(buf, 6)
	require.Nil(t, err)
	require.Len(t, grown, 6)
	require.Equal(t, []byte("abcd\x00\x00"), grown)

	shrunk, err := h.Reallocate(grown, 2)
	require.Nil(t, err)
	require.Equal(t, []byte("ab"), shrunk)
}

func TestHeapNegativeSize(t *testing.T) {
	h := NewHeap()
	_, err := h.Allocate(-1)
	require.NotNil(t, err)
	require.True(t, errors.Is(err, perrors.ErrNoMemory))
}

func TestPoolBudget(t *testing.T) {
	p := NewPool(10)
	a, err := p.Allocate(6)
	require.Nil(t, err)
	require.Equal(t, 6, p.Live())

	_, err = p.Allocate(5)
	require.NotNil(t, err)
	require.True(t, errors.Is(err, perrors.ErrNoMemory))
	require.Equal(t, 6, p.Live())

	b, err := p.Allocate(4)
	require.Nil(t, err)
	require.Equal(t, 10, p.Live())

	p.Free(a)
	require.Equal(t, 4, p.Live())
	p.Free(b)
	require.Equal(t, 0, p.Live())
}

func TestPoolReallocate(t *testing.T) {
	p := NewPool(8)
	buf, err := p.Allocate(4)
	require.Nil(t, err)
	copy(buf, "abcd")

	// Growing past the budget fails and leaves the original intact.
	_, err = p.Reallocate(buf, 9)
	require.NotNil(t, err)
	require.True(t, errors.Is(err, perrors.ErrNoMemory))
	require.Equal(t, []byte("abcd"), buf)
	require.Equal(t, 4, p.Live())

	grown, err := p.Reallocate(buf, 8)
	require.Nil(t, err)
	require.Equal(t, []byte("abcd\x00\x00\x00\x00"), grown)
	require.Equal(t, 8, p.Live())

	// Shrinking returns budget.
	shrunk, err := p.Reallocate(grown, 2)
	require.Nil(t, err)
	require.Equal(t, []byte("ab"), shrunk)
	require.Equal(t, 2, p.Live())
}

func TestPoolDoubleFreePanics(t *testing.T) {
	p := NewPool(4)
	buf, err := p.Allocate(4)
	require.Nil(t, err)
	p.Free(buf)
	require.Panics(t, func() {
		p.Free(buf)
	})
}

func TestPoolAllocCount(t *testing.T) {
	p := NewPool(100)
	_, err := p.Allocate(1)
	require.Nil(t, err)
	_, err = p.Allocate(1)
	require.Nil(t, err)
	_, err = p.Allocate(1000)
	require.NotNil(t, err)
	require.Equal(t, 2, p.Allocs())
}
