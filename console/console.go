// Package console provides the diagnostic text side channel the runtime
// writes user-visible messages to. The core only ever writes; it never reads.
package console

import (
	"fmt"
	"io"

	"github.com/rs/zerolog"
)

// Console receives diagnostic messages such as type mismatches reported by
// the dispatch layer.
type Console interface {
	Print(msg string)
	Printf(format string, args ...any)
}

// Writer is a Console that writes plain lines to an io.Writer.
type Writer struct {
	w io.Writer
}

func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

func (c *Writer) Print(msg string) {
	fmt.Fprintln(c.w, msg)
}

func (c *Writer) Printf(format string, args ...any) {
	fmt.Fprintf(c.w, format, args...)
	fmt.Fprintln(c.w)
}

// Logger is a Console that emits diagnostics through a zerolog logger at
// warn level, for hosts that route runtime diagnostics into their logs.
type Logger struct {
	log zerolog.Logger
}

func NewLogger(log zerolog.Logger) *Logger {
	return &Logger{log: log}
}

func (c *Logger) Print(msg string) {
	c.log.Warn().Msg(msg)
}

func (c *Logger) Printf(format string, args ...any) {
	c.log.Warn().Msgf(format, args...)
}

// Discard drops all diagnostics.
var Discard Console = discard{}

type discard struct{}

func (discard) Print(msg string) {}

func (discard) Printf(format string, args ...any) {}
