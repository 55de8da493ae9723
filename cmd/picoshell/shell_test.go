package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/picoshell-dev/picoshell/alloc"
	"github.com/picoshell-dev/picoshell/console"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestShell(t *testing.T, pool *alloc.Pool) (*Shell, *bytes.Buffer) {
	t.Helper()
	color.NoColor = true
	var out bytes.Buffer
	var a alloc.Allocator
	if pool != nil {
		a = pool
	} else {
		a = alloc.NewHeap()
	}
	sh := NewShell(a, pool, console.Discard, zerolog.Nop(), &out)
	return sh, &out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		line     string
		expected []string
	}{
		{"", nil},
		{"  ", nil},
		{"# comment", nil},
		{"new s hello", []string{"new", "s", "hello"}},
		{`new s "two words"`, []string{"new", "s", "two words"}},
		{`call s << "tab\there"`, []string{"call", "s", "<<", "tab\there"}},
		{"call s []= 1 2 XYZ # trailing", []string{"call", "s", "[]=", "1", "2", "XYZ"}},
	}
	for _, tt := range tests {
		tokens, err := tokenize(tt.line)
		require.Nil(t, err, "line: %q", tt.line)
		require.Equal(t, tt.expected, tokens, "line: %q", tt.line)
	}

	_, err := tokenize(`new s "unterminated`)
	require.NotNil(t, err)
}

func TestShellNewAndShow(t *testing.T) {
	sh, out := newTestShell(t, nil)
	require.Nil(t, sh.Exec("new s hello"))
	require.Nil(t, sh.Exec("show s"))
	require.Contains(t, out.String(), `s = "hello" (5 bytes)`)
}

func TestShellCallOperators(t *testing.T) {
	sh, out := newTestShell(t, nil)
	for _, line := range []string{
		"new s foo",
		`call s << bar`,
		"call s << 33",
		"call s size",
		"call s [] -1",
		`call s []= 1 2 XYZ`,
		"new n 123abc",
		"call n to_i",
		"new a A",
		"call a ord",
	} {
		require.Nil(t, sh.Exec(line), "line: %q", line)
	}
	text := out.String()
	require.Contains(t, text, `=> "foobar"`)
	require.Contains(t, text, `=> "foobar!"`)
	require.Contains(t, text, "=> 7")
	require.Contains(t, text, `=> "!"`)
	require.Contains(t, text, `=> "fXYZbar!"`)
	require.Contains(t, text, "=> 123")
	require.Contains(t, text, "=> 65")
}

func TestShellAliasSeesMutation(t *testing.T) {
	sh, out := newTestShell(t, nil)
	require.Nil(t, sh.Exec("new s foo"))
	require.Nil(t, sh.Exec("alias t s"))
	require.Nil(t, sh.Exec("call s << bar"))
	out.Reset()
	require.Nil(t, sh.Exec("show t"))
	require.Contains(t, out.String(), `t = "foobar"`)
}

func TestShellErrorsReported(t *testing.T) {
	sh, out := newTestShell(t, nil)
	require.Nil(t, sh.Exec("new s hello"))

	// Usage errors surface as error values and the session continues.
	require.Nil(t, sh.Exec("call s + 1"))
	require.Contains(t, out.String(), `=> error(`)
	require.Contains(t, out.String(), "unsupported operand type int")

	out.Reset()
	require.Nil(t, sh.Exec("call s []= 9 1 x"))
	require.Contains(t, out.String(), `=> error(`)
	require.Contains(t, out.String(), "out of range")

	out.Reset()
	require.Nil(t, sh.Exec("call s upcase"))
	require.Contains(t, out.String(), `=> error(`)
	require.Contains(t, out.String(), `undefined method \"upcase\"`)

	// Shell-level mistakes are still plain command errors.
	err := sh.Exec("call missing size")
	require.NotNil(t, err)
	require.Contains(t, err.Error(), `undefined variable "missing"`)

	err = sh.Exec("bogus")
	require.NotNil(t, err)
	require.Contains(t, err.Error(), "unknown command")

	// The receiver survives every failed call.
	out.Reset()
	require.Nil(t, sh.Exec("show s"))
	require.Contains(t, out.String(), `s = "hello"`)
}

func TestShellPoolAccounting(t *testing.T) {
	pool := alloc.NewPool(4096)
	sh, out := newTestShell(t, pool)
	require.Nil(t, sh.Exec("new s hello"))
	require.Nil(t, sh.Exec("call s + world")) // result and temp are reclaimed
	require.Nil(t, sh.Exec("free s"))
	require.Equal(t, 0, pool.Live())

	out.Reset()
	require.Nil(t, sh.Exec("mem"))
	require.Contains(t, out.String(), "0 of 4096 bytes in use")
}

func TestShellFreeKeepsAliasedStorage(t *testing.T) {
	pool := alloc.NewPool(4096)
	sh, out := newTestShell(t, pool)
	require.Nil(t, sh.Exec("new s hello"))
	require.Nil(t, sh.Exec("alias t s"))
	require.Nil(t, sh.Exec("free s"))

	// The handle is still reachable through the alias.
	out.Reset()
	require.Nil(t, sh.Exec("show t"))
	require.Contains(t, out.String(), `t = "hello"`)
	require.Greater(t, pool.Live(), 0)

	require.Nil(t, sh.Exec("free t"))
	require.Equal(t, 0, pool.Live())
}

func TestShellScript(t *testing.T) {
	sh, out := newTestShell(t, nil)
	script := strings.NewReader(`# build a greeting
new s hello
call s << ", world"
call s size
`)
	require.Nil(t, sh.RunScript(script))
	require.Contains(t, out.String(), `=> "hello, world"`)
	require.Contains(t, out.String(), "=> 12")
}

func TestShellMethods(t *testing.T) {
	sh, out := newTestShell(t, nil)
	require.Nil(t, sh.Exec("methods"))
	for _, name := range []string{"+", "size", "to_i", "<<", "[]", "[]=", "ord"} {
		require.Contains(t, out.String(), name)
	}
}
