package object

import (
	"bytes"
	"fmt"

	"github.com/picoshell-dev/picoshell/alloc"
)

// handleSize is the accounting size of a handle allocation. Handles are
// charged to the allocator like buffers are, so a constrained pool sees the
// true per-string cost and the partial-failure path (handle allocated, buffer
// refused) is reachable.
const handleSize = 16

// handle is the indirection cell shared by every alias of a string. A value
// slot references the handle, never the buffer, so a resize that relocates
// the buffer is visible to all aliases without updating them individually.
// Resize operations are the only writers of the buf field.
type handle struct {
	typ Type
	mem []byte // the handle's own allocation, held for accounting
	buf []byte // content bytes followed by a zero terminator
}

// String is a mutable, null-terminated byte string held behind a handle.
//
// Length is never stored; it is recomputed by scanning for the terminator.
// A consequence kept on purpose: an embedded zero byte truncates the apparent
// length, and indexed reads that land on a zero byte report absence.
type String struct {
	h *handle
}

// NewString allocates a handle and a buffer of length+1 bytes, copies length
// bytes from src into it, and writes the terminator. A nil src yields empty
// content in a buffer of the requested size, for callers that fill it
// afterwards. On buffer allocation failure the handle is released before the
// error returns, so the partial-failure path leaks nothing.
func NewString(a alloc.Allocator, src []byte, length int) (*String, error) {
	hmem, err := a.Allocate(handleSize)
	if err != nil {
		return nil, err
	}
	buf, err := a.Allocate(length + 1)
	if err != nil {
		a.Free(hmem)
		return nil, err
	}
	if src != nil {
		copy(buf, src[:length])
	}
	buf[length] = 0
	return &String{h: &handle{typ: STRING, mem: hmem, buf: buf}}, nil
}

// NewStringFromText computes the content length of text by scanning for a
// terminator and delegates to NewString. Text beyond an embedded zero byte
// is not copied.
func NewStringFromText(a alloc.Allocator, text string) (*String, error) {
	data := []byte(text)
	return NewString(a, data, scanLength(data))
}

// Destroy releases the buffer and then the handle. It must be invoked at
// most once per string, and only once no alias references the handle; the
// surrounding refcount owner is responsible for that.
func (s *String) Destroy(a alloc.Allocator) {
	a.Free(s.h.buf)
	a.Free(s.h.mem)
}

// Alias returns a new String sharing this string's handle. Mutation through
// either value is visible through the other. This is the value-slot copy
// operation; constructors never produce shared handles.
func (s *String) Alias() *String {
	return &String{h: s.h}
}

// SharesHandle reports whether two strings alias the same storage.
func (s *String) SharesHandle(other *String) bool {
	return s.h == other.h
}

// resize reallocates the buffer to newSize+1 bytes, preserving content up to
// the minimum of the old and new sizes, and points the handle at the result.
// On failure the handle keeps its current buffer and the string remains
// usable; only this request failed.
func (s *String) resize(a alloc.Allocator, newSize int) error {
	buf, err := a.Reallocate(s.h.buf, newSize+1)
	if err != nil {
		return err
	}
	s.h.buf = buf
	return nil
}

// Len returns the byte count up to the terminator.
func (s *String) Len() int {
	return scanLength(s.h.buf)
}

// Bytes returns the content bytes, excluding the terminator. The slice views
// the live buffer and is invalidated by any mutation of the string.
func (s *String) Bytes() []byte {
	return s.h.buf[:s.Len()]
}

// Value returns a copy of the content as a Go string.
func (s *String) Value() string {
	return string(s.Bytes())
}

func (s *String) Type() Type {
	return s.h.typ
}

func (s *String) Inspect() string {
	return fmt.Sprintf("%q", s.Value())
}

func (s *String) String() string {
	return s.Value()
}

func (s *String) Interface() interface{} {
	return s.Value()
}

func (s *String) Equals(other Object) bool {
	otherString, ok := other.(*String)
	if !ok {
		return false
	}
	return bytes.Equal(s.Bytes(), otherString.Bytes())
}

// IsTruthy is true for every string, empty included.
func (s *String) IsTruthy() bool {
	return true
}

// GetMethod resolves an operator name against this string.
func (s *String) GetMethod(name string) (*Builtin, bool) {
	return stringMethods.Get(s, name)
}

// scanLength returns the offset of the first zero byte, which is the
// string's apparent length.
func scanLength(buf []byte) int {
	if i := bytes.IndexByte(buf, 0); i >= 0 {
		return i
	}
	return len(buf)
}
