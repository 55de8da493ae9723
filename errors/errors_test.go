package errors

import (
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestErrorKinds(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
	}{
		{"no memory", NoMemoryErrorf("pool exhausted: want %d bytes", 64), ErrNoMemory},
		{"index", IndexErrorf("index out of range: %d", -3), ErrIndex},
		{"type", TypeErrorf("expected string, got %s", "int"), ErrType},
		{"args", ArgsErrorf("takes 1 argument (%d given)", 3), ErrArgs},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.True(t, stderrors.Is(tt.err, tt.sentinel))
			for _, other := range []error{ErrNoMemory, ErrIndex, ErrType, ErrArgs} {
				if other == tt.sentinel {
					continue
				}
				require.False(t, stderrors.Is(tt.err, other))
			}
		})
	}
}

func TestUnwrap(t *testing.T) {
	inner := stderrors.New("boom")
	err := NewTypeError(fmt.Errorf("wrapped: %w", inner))
	require.True(t, stderrors.Is(err, inner))
	require.Equal(t, "wrapped: boom", err.Error())
}

func TestIsUsage(t *testing.T) {
	require.True(t, IsUsage(IndexErrorf("bad index")))
	require.True(t, IsUsage(TypeErrorf("bad type")))
	require.True(t, IsUsage(ArgsErrorf("bad args")))
	require.False(t, IsUsage(NoMemoryErrorf("oom")))
	require.False(t, IsUsage(stderrors.New("unrelated")))
}
