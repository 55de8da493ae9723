package console

import (
	"bytes"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	var buf bytes.Buffer
	c := NewWriter(&buf)
	c.Print("plain message")
	c.Printf("formatted: %d", 42)
	require.Equal(t, "plain message\nformatted: 42\n", buf.String())
}

func TestLogger(t *testing.T) {
	var buf bytes.Buffer
	c := NewLogger(zerolog.New(&buf))
	c.Printf("index out of range: %d", 9)
	require.Contains(t, buf.String(), "index out of range: 9")
	require.Contains(t, buf.String(), `"level":"warn"`)
}

func TestDiscard(t *testing.T) {
	// Must simply not panic.
	Discard.Print("dropped")
	Discard.Printf("dropped %s", strings.Repeat("x", 3))
}
