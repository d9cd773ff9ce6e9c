// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package kdl

import (
	"io"
	"iter"
	"unicode/utf8"

	"github.com/creachadair/kdl/internal/escape"
	"go4.org/mem"
)

// A String is the text of a KDL string or identifier. It is a view of the
// source text, and records whether that text contains escape sequences.
//
// An escapeless String is used as-is and never copied. An escaped String must
// be unescaped before it is compared or displayed; the methods of String do
// this on demand. The zero String is empty and escapeless.
type String struct {
	text    mem.RO
	escaped bool
}

// Escapeless returns a String for text that contains no escape sequences.
func Escapeless(text mem.RO) String { return String{text: text} }

// Escaped returns a String for text that may contain escape sequences.
func Escaped(text mem.RO) String { return String{text: text, escaped: true} }

// Raw returns the raw text of s, without unescaping.
func (s String) Raw() mem.RO { return s.text }

// IsEscaped reports whether s requires unescaping.
func (s String) IsEscaped() bool { return s.escaped }

// Unescape returns the unescaped text of s. If s is escapeless, its raw text
// is returned without copying; otherwise the result is newly allocated. An
// error is reported if s contains a malformed escape.
func (s String) Unescape() (mem.RO, error) {
	if !s.escaped {
		return s.text, nil
	}
	dec, err := escape.Unescape(s.text)
	if err != nil {
		return mem.RO{}, err
	}
	return mem.B(dec), nil
}

// AppendUnescaped appends the unescaped text of s to dst. This permits the
// caller to choose the storage, for example a fixed-size array on the stack.
func (s String) AppendUnescaped(dst []byte) ([]byte, error) {
	if !s.escaped {
		return mem.Append(dst, s.text), nil
	}
	return escape.Append(dst, s.text)
}

// Runes returns a sequence of the unescaped runes of s, decoded lazily
// without allocating the unescaped text. If s contains a malformed escape, the
// sequence reports the error as its final element.
func (s String) Runes() iter.Seq2[rune, error] {
	return func(yield func(rune, error) bool) {
		rr := newRuneReader(s)
		for {
			r, err := rr.next()
			if err == io.EOF {
				return
			} else if !yield(r, err) || err != nil {
				return
			}
		}
	}
}

// Equal reports whether s and t have the same unescaped text. A String
// containing a malformed escape is not equal to any other String.
func (s String) Equal(t String) bool {
	if !s.escaped && !t.escaped {
		return s.text.Equal(t.text)
	}
	sr, tr := newRuneReader(s), newRuneReader(t)
	for {
		a, aerr := sr.next()
		b, berr := tr.next()
		if aerr == io.EOF || berr == io.EOF {
			return aerr == berr
		} else if aerr != nil || berr != nil || a != b {
			return false
		}
	}
}

// EqualString reports whether the unescaped text of s is equal to str.
func (s String) EqualString(str string) bool {
	if !s.escaped {
		return s.text.EqualString(str)
	}
	rr := newRuneReader(s)
	for {
		r, err := rr.next()
		if err == io.EOF {
			return str == ""
		} else if err != nil || str == "" {
			return false
		}
		q, n := utf8.DecodeRuneInString(str)
		if r != q {
			return false
		}
		str = str[n:]
	}
}

// A runeReader reads the unescaped runes of a String.
type runeReader struct {
	raw mem.RO          // remaining input, if escapeless
	dec *escape.Decoder // decoder, if escaped
}

func newRuneReader(s String) runeReader {
	if s.escaped {
		return runeReader{dec: escape.NewDecoder(s.text)}
	}
	return runeReader{raw: s.text}
}

func (rr *runeReader) next() (rune, error) {
	if rr.dec != nil {
		return rr.dec.Next()
	} else if rr.raw.Len() == 0 {
		return 0, io.EOF
	}
	r, n := mem.DecodeRune(rr.raw)
	rr.raw = rr.raw.SliceFrom(n)
	return r, nil
}

// String returns a copy of the unescaped text of s. If s contains a malformed
// escape, its raw text is returned instead.
func (s String) String() string {
	u, err := s.Unescape()
	if err != nil {
		return s.text.StringCopy()
	}
	return u.StringCopy()
}

// Quote returns the unescaped text of s as a KDL quoted string.
func (s String) Quote() string {
	u, err := s.Unescape()
	if err != nil {
		u = s.text
	}
	return string(escape.Quote(u))
}
