// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import (
	"unicode/utf8"

	"go4.org/mem"
)

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote encodes a string as a KDL quoted string, including the enclosing
// double quotation marks.
func Quote(src mem.RO) []byte {
	buf := make([]byte, 0, src.Len()+2)
	buf = append(buf, '"')
	putByte := func(bs ...byte) { buf = append(buf, bs...) }

	for src.Len() != 0 {
		r, n := mem.DecodeRune(src)
		src = src.SliceFrom(n)
		if r < utf8.RuneSelf {
			if r < ' ' || r == 0x7f {
				if r < ' ' {
					if b := controlEsc[r]; b != 0 {
						putByte('\\', b)
						continue
					}
				}
				buf = appendUnicodeEscape(buf, r)
			} else if r == '\\' || r == '"' {
				putByte('\\', byte(r))
			} else {
				putByte(byte(r))
			}
			continue
		}

		switch r {
		case '\u0085', '\u2028', '\u2029', '\ufeff': // newlines and BOM
			buf = appendUnicodeEscape(buf, r)
		default:
			buf = utf8.AppendRune(buf, r)
		}
	}
	return append(buf, '"')
}

// appendUnicodeEscape appends the \u{...} escape for r to buf.
func appendUnicodeEscape(buf []byte, r rune) []byte {
	buf = append(buf, '\\', 'u', '{')
	var digits [maxHexDigits]byte
	i := len(digits)
	for {
		i--
		digits[i] = hexDigit[r&15]
		r >>= 4
		if r == 0 {
			break
		}
	}
	buf = append(buf, digits[i:]...)
	return append(buf, '}')
}
