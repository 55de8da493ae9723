package object

import (
	stderrors "errors"
	"testing"

	"github.com/picoshell-dev/picoshell/errors"
	"github.com/stretchr/testify/require"
)

func TestErrorObject(t *testing.T) {
	inner := errors.TypeErrorf("unsupported operand type %s", NIL)
	errObj := NewError(inner)
	require.Equal(t, ERROR, errObj.Type())
	require.Equal(t, `error("unsupported operand type nil")`, errObj.Inspect())
	require.Equal(t, "unsupported operand type nil", errObj.String())
	require.False(t, errObj.IsTruthy())
	require.True(t, IsError(errObj))
	require.False(t, IsError(Nil))

	// The wrapped error stays classifiable.
	require.True(t, stderrors.Is(errObj, errors.ErrType))
	require.Same(t, inner, errObj.Unwrap())
}

func TestErrorObjectEquals(t *testing.T) {
	a := Errorf("boom")
	require.True(t, Equals(a, Errorf("boom")))
	require.False(t, Equals(a, Errorf("bang")))
	require.False(t, Equals(a, Nil))
}

func TestNewErrorDoesNotNest(t *testing.T) {
	errObj := Errorf("boom")
	require.Same(t, errObj, NewError(errObj))
}

func TestErrorfInterpolatesObjects(t *testing.T) {
	errObj := Errorf("bad value: %v", NewInt(42))
	require.Equal(t, "bad value: 42", errObj.String())
}
