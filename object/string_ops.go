package object

import (
	"context"
	"strconv"

	"github.com/picoshell-dev/picoshell/errors"
)

// stringMethods is the process-wide operator table for strings: populated
// once here, validated, frozen, and read-only for the program's lifetime.
var stringMethods = NewRegistry[*String]("string")

func init() {
	stringMethods.Define("+").
		Doc("Concatenate with another string, producing a new string").
		Arg("other").Returns("string").Impl(opAdd)
	stringMethods.Define("size").
		Doc("Byte count of the string").
		Returns("int").Impl(opSize)
	stringMethods.Define("length").
		Doc("Byte count of the string").
		Returns("int").Impl(opSize)
	stringMethods.Define("!=").
		Doc("Negation of whole-value equality").
		Arg("other").Returns("bool").Impl(opNotEqual)
	stringMethods.Define("to_i").
		Doc("Parse leading whitespace, an optional sign, and decimal digits, base 10 only").
		Returns("int").Impl(opToI)
	stringMethods.Define("<<").
		Doc("Append a string, or an integer as one raw byte, in place").
		Arg("value").Returns("string").Impl(opAppend)
	stringMethods.Define("[]").
		Doc("Read one byte or a byte range as a new string; nil when out of range").
		Arg("index").OptArg("span").Returns("string").Impl(opIndex)
	stringMethods.Define("[]=").
		Doc("Replace the byte range [index, index+span) in place; span defaults to 1 when the middle argument is omitted").
		Arg("index").Arg("span").OptArg("replacement").Returns("string").Impl(opSpliceAssign)
	stringMethods.Define("ord").
		Doc("Byte value of the first byte; 0 for the empty string").
		Returns("int").Impl(opOrd)
	stringMethods.Freeze()
	if err := stringMethods.Validate(); err != nil {
		panic(err)
	}
}

// StringMethodSpecs returns the specifications of every registered string
// operator, for tooling and help output.
func StringMethodSpecs() []MethodSpec {
	return stringMethods.Specs()
}

// opAdd requires a string operand and constructs a brand-new string holding
// the receiver's bytes followed by the operand's. On a type mismatch nothing
// is written and the receiver is untouched; the caller receives a TypeError
// rather than an undefined result.
func opAdd(s *String, ctx context.Context, args ...Object) (Object, error) {
	other, ok := args[0].(*String)
	if !ok {
		return nil, errors.TypeErrorf("string.+: unsupported operand type %s", args[0].Type())
	}
	a := allocatorFrom(ctx)
	left := s.Bytes()
	right := other.Bytes()
	result, err := NewString(a, nil, len(left)+len(right))
	if err != nil {
		return nil, err
	}
	n := copy(result.h.buf, left)
	copy(result.h.buf[n:], right)
	return result, nil
}

func opSize(s *String, ctx context.Context, args ...Object) (Object, error) {
	return NewInt(int64(s.Len())), nil
}

func opNotEqual(s *String, ctx context.Context, args ...Object) (Object, error) {
	return NewBool(!Equals(s, args[0])), nil
}

func opToI(s *String, ctx context.Context, args ...Object) (Object, error) {
	return NewInt(parseDecimal(s.Bytes())), nil
}

// parseDecimal converts leading whitespace, an optional sign, and leading
// decimal digits to an int64, ignoring anything after the digits. No digits
// yields 0. Values beyond the int64 range saturate.
func parseDecimal(b []byte) int64 {
	end := 0
	for end < len(b) && isSpace(b[end]) {
		end++
	}
	begin := end
	if end < len(b) && (b[end] == '+' || b[end] == '-') {
		end++
	}
	start := end
	for end < len(b) && b[end] >= '0' && b[end] <= '9' {
		end++
	}
	if end == start {
		return 0
	}
	n, _ := strconv.ParseInt(string(b[begin:end]), 10, 64)
	return n
}

func isSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

// opAppend grows the receiver in place. A string operand contributes its
// bytes; an integer operand contributes its low byte (value mod 256) as one
// raw byte, not its decimal text. On reallocation failure the receiver is
// untouched.
func opAppend(s *String, ctx context.Context, args ...Object) (Object, error) {
	a := allocatorFrom(ctx)
	len1 := s.Len()
	switch operand := args[0].(type) {
	case *String:
		data := operand.Bytes()
		if err := s.resize(a, len1+len(data)); err != nil {
			return nil, err
		}
		copy(s.h.buf[len1:], data)
		s.h.buf[len1+len(data)] = 0
	case *Int:
		if err := s.resize(a, len1+1); err != nil {
			return nil, err
		}
		s.h.buf[len1] = byte(operand.Value())
		s.h.buf[len1+1] = 0
	default:
		return nil, errors.TypeErrorf("string.<<: unsupported operand type %s", args[0].Type())
	}
	return s, nil
}

// opIndex implements both indexed-read forms. A negative index counts from
// the end. Out of range is absence (nil), not an error.
func opIndex(s *String, ctx context.Context, args ...Object) (Object, error) {
	a := allocatorFrom(ctx)
	length := s.Len()

	idxObj, ok := args[0].(*Int)
	if !ok {
		return nil, errors.TypeErrorf("string.[]: unsupported index type %s", args[0].Type())
	}
	idx := int(idxObj.Value())
	if idx < 0 {
		idx += length
	}

	// Single index: one byte as a new string, or nil. A zero byte (past an
	// embedded terminator or past the end) reads as absence.
	if len(args) == 1 {
		var ch byte
		if idx >= 0 && idx < length {
			ch = s.h.buf[idx]
		}
		if ch == 0 {
			return Nil, nil
		}
		result, err := NewString(a, nil, 1)
		if err != nil {
			return nil, err
		}
		result.h.buf[0] = ch
		return result, nil
	}

	// Range: span clamps to the remaining bytes; a negative clamped span or
	// a still-negative index is absence.
	spanObj, ok := args[1].(*Int)
	if !ok {
		return nil, errors.TypeErrorf("string.[]: unsupported span type %s", args[1].Type())
	}
	if idx >= 0 {
		span := int(spanObj.Value())
		if rest := length - idx; span > rest {
			span = rest
		}
		if span >= 0 {
			return NewString(a, s.h.buf[idx:idx+span], span)
		}
	}
	return Nil, nil
}

// opSpliceAssign replaces the byte range [index, index+span) with the
// replacement bytes, shifting the tail. Accepted shapes are
// (index, replacement) with span 1 and (index, span, replacement).
func opSpliceAssign(s *String, ctx context.Context, args ...Object) (Object, error) {
	var nth, span int
	var val *String
	switch len(args) {
	case 2:
		idx, ok1 := args[0].(*Int)
		v, ok2 := args[1].(*String)
		if !ok1 || !ok2 {
			return nil, errors.TypeErrorf("string.[]=: unsupported argument types %s, %s",
				args[0].Type(), args[1].Type())
		}
		nth, span, val = int(idx.Value()), 1, v
	case 3:
		idx, ok1 := args[0].(*Int)
		spn, ok2 := args[1].(*Int)
		v, ok3 := args[2].(*String)
		if !ok1 || !ok2 || !ok3 {
			return nil, errors.TypeErrorf("string.[]=: unsupported argument types %s, %s, %s",
				args[0].Type(), args[1].Type(), args[2].Type())
		}
		nth, span, val = int(idx.Value()), int(spn.Value()), v
	}

	a := allocatorFrom(ctx)
	len1 := s.Len()
	rep := val.Bytes()
	len2 := len(rep)

	if nth < 0 {
		nth += len1
	}
	if span > len1-nth {
		span = len1 - nth
	}
	if nth < 0 || nth > len1 || span < 0 {
		return nil, errors.IndexErrorf("string.[]=: index %d out of range for length %d",
			nth, len1)
	}

	newLen := len1 - span + len2
	if newLen > len1 {
		// Grow before shifting so the tail has room; failure leaves the
		// receiver untouched.
		if err := s.resize(a, newLen); err != nil {
			return nil, err
		}
	}
	buf := s.h.buf
	copy(buf[nth+len2:newLen], buf[nth+span:len1])
	copy(buf[nth:nth+len2], rep)
	buf[newLen] = 0
	if newLen < len1 {
		// Content and terminator are already final. A refused shrink leaves
		// the slack allocated but the value correct, so it is not an error.
		_ = s.resize(a, newLen)
	}
	return s, nil
}

func opOrd(s *String, ctx context.Context, args ...Object) (Object, error) {
	return NewInt(int64(s.h.buf[0])), nil
}
