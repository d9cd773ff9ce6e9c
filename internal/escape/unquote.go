// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package escape handles quoting and unquoting of KDL strings.
//
// Unescaping is available in two modes sharing a single escape table: Append
// and Unescape decode a complete string eagerly into a buffer, while a Decoder
// produces the decoded runes one at a time without allocating.
package escape

import (
	"errors"
	"io"
	"unicode/utf8"

	"go4.org/mem"
)

// Errors reported for malformed escape sequences.
var (
	ErrUnrecognizedEscape = errors.New("unrecognized escape")
	ErrUnexpectedEOF      = errors.New("unexpected end of escape")
	ErrBadUnicodeEscape   = errors.New("bad Unicode escape")
)

// maxHexDigits is the maximum number of hex digits in a \u{...} escape.
const maxHexDigits = 6

// Unescape decodes the contents of a KDL quoted string, with the enclosing
// quotation marks already removed, into a newly-allocated slice.
func Unescape(src mem.RO) ([]byte, error) {
	return Append(make([]byte, 0, src.Len()), src)
}

// Append decodes the contents of a KDL quoted string, with the enclosing
// quotation marks already removed, and appends the result to dst. In case of
// error, the contents of dst up to the malformed escape are returned along
// with the error.
func Append(dst []byte, src mem.RO) ([]byte, error) {
	for {
		i := mem.IndexByte(src, '\\')
		if i < 0 {
			return mem.Append(dst, src), nil
		}
		dst = mem.Append(dst, src.SliceTo(i))
		r, n, err := decodeEscape(src.SliceFrom(i))
		if err != nil {
			return dst, err
		}
		dst = utf8.AppendRune(dst, r)
		src = src.SliceFrom(i + n)
	}
}

// A Decoder decodes the contents of a KDL quoted string one rune at a time.
type Decoder struct {
	src mem.RO
	err error
}

// NewDecoder constructs a Decoder for the contents of a quoted string, with
// the enclosing quotation marks already removed.
func NewDecoder(src mem.RO) *Decoder { return &Decoder{src: src} }

// Next returns the next decoded rune. It returns io.EOF when the input is
// exhausted. If the input contains a malformed escape, Next reports the error,
// and every subsequent call reports the same error.
func (d *Decoder) Next() (rune, error) {
	if d.err != nil {
		return 0, d.err
	} else if d.src.Len() == 0 {
		return 0, io.EOF
	}
	if d.src.At(0) != '\\' {
		r, n := mem.DecodeRune(d.src)
		d.src = d.src.SliceFrom(n)
		return r, nil
	}
	r, n, err := decodeEscape(d.src)
	if err != nil {
		d.err = err
		return 0, err
	}
	d.src = d.src.SliceFrom(n)
	return r, nil
}

// decodeEscape decodes the escape sequence at the front of src, and returns
// the resulting rune and the number of bytes of src consumed.
// Precondition: src begins with a backslash.
func decodeEscape(src mem.RO) (rune, int, error) {
	if src.Len() < 2 {
		return 0, 0, ErrUnexpectedEOF
	}
	switch src.At(1) {
	case 'n':
		return '\n', 2, nil
	case 'r':
		return '\r', 2, nil
	case 't':
		return '\t', 2, nil
	case '\\':
		return '\\', 2, nil
	case 'b':
		return '\b', 2, nil
	case 'f':
		return '\f', 2, nil
	case '/':
		return '/', 2, nil
	case '"':
		return '"', 2, nil
	case 'u':
		return decodeUnicode(src)
	default:
		return 0, 0, ErrUnrecognizedEscape
	}
}

// decodeUnicode decodes an escape of the form \u{H...H} at the front of src.
func decodeUnicode(src mem.RO) (rune, int, error) {
	if src.Len() < 3 {
		return 0, 0, ErrUnexpectedEOF
	} else if src.At(2) != '{' {
		return 0, 0, ErrBadUnicodeEscape
	}
	var v rune
	for i := 3; i < src.Len(); i++ {
		b := src.At(i)
		if b == '}' {
			if i == 3 {
				return 0, 0, ErrBadUnicodeEscape // no digits
			} else if !utf8.ValidRune(v) {
				return 0, 0, ErrBadUnicodeEscape
			}
			return v, i + 1, nil
		}
		d, ok := hexValue(b)
		if !ok || i-3 >= maxHexDigits {
			return 0, 0, ErrBadUnicodeEscape
		}
		v = v<<4 | rune(d)
	}
	return 0, 0, ErrUnexpectedEOF
}

func hexValue(b byte) (byte, bool) {
	switch {
	case '0' <= b && b <= '9':
		return b - '0', true
	case 'a' <= b && b <= 'f':
		return b - 'a' + 10, true
	case 'A' <= b && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}
