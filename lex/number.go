// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package lex

import (
	"go4.org/mem"
)

// isNumStart reports whether ch, followed by the byte next, begins a numeric
// literal. A leading "-" or "." must be followed by a digit; a leading "+" is
// not permitted.
func isNumStart(ch rune, next byte) bool {
	if ch == '-' || ch == '.' {
		return isDigit(rune(next))
	}
	return isDigit(ch)
}

// scanNumber scans a numeric literal beginning at start.
// Precondition: isNumStart holds at start.
func (l *Lexer) scanNumber(start int) (Token, error) {
	i := start
	neg := l.byteAt(i) == '-'
	if neg {
		i++
	}

	// Check for a radix prefix.
	if l.byteAt(i) == '0' {
		var isRadixDigit func(byte) bool
		var radix int
		switch l.byteAt(i + 1) {
		case 'x', 'X':
			isRadixDigit, radix = isHexDigit, 16
		case 'o':
			isRadixDigit, radix = isOctDigit, 8
		case 'b':
			isRadixDigit, radix = isBinDigit, 2
		}
		if radix != 0 {
			digits := l.readWhile(i+2, func(b byte) bool { return b == '_' || isRadixDigit(b) })
			l.pos = digits
			if digits == i+2 {
				return l.failf(start, "missing digits after %q", l.src.Slice(i, i+2).StringCopy())
			}
			v, err := parseInt(neg, l.src.Slice(i+2, digits), radix)
			if err != nil {
				return l.failf(start, "invalid integer: %v", err)
			}
			return Token{Kind: Integer, Text: l.src.Slice(start, l.pos), Span: Span{Pos: start, End: l.pos}, ival: v}, nil
		}
	}

	// Consume the integer part. This may be empty if the literal begins with
	// a decimal point.
	i = l.readWhile(i, isDecDigit)

	var isFloat bool
	if l.byteAt(i) == '.' && isDigit(rune(l.byteAt(i+1))) {
		isFloat = true
		i = l.readWhile(i+1, isDecDigit)
	}
	if e := l.byteAt(i); e == 'e' || e == 'E' {
		j := i + 1
		if s := l.byteAt(j); s == '+' || s == '-' {
			j++
		}
		if isDigit(rune(l.byteAt(j))) {
			isFloat = true
			i = l.readWhile(j, isDecDigit)
		}
	}
	l.pos = i

	text := l.src.Slice(start, i)
	if isFloat {
		v, err := mem.ParseFloat(stripSeparators(text), 64)
		if err != nil {
			return l.failf(start, "invalid float: %v", err)
		}
		return Token{Kind: Float, Text: text, Span: Span{Pos: start, End: i}, fval: v}, nil
	}
	v, err := mem.ParseInt(stripSeparators(text), 10, 64)
	if err != nil {
		return l.failf(start, "invalid integer: %v", err)
	}
	return Token{Kind: Integer, Text: text, Span: Span{Pos: start, End: i}, ival: v}, nil
}

// readWhile returns the offset of the first byte at or after i that does not
// satisfy f, or the end of input.
func (l *Lexer) readWhile(i int, f func(byte) bool) int {
	for i < l.src.Len() && f(l.src.At(i)) {
		i++
	}
	return i
}

// parseInt parses digits in the given radix, with separators removed and the
// sign applied.
func parseInt(neg bool, digits mem.RO, radix int) (int64, error) {
	buf := make([]byte, 0, digits.Len()+1)
	if neg {
		buf = append(buf, '-')
	}
	for i := 0; i < digits.Len(); i++ {
		if b := digits.At(i); b != '_' {
			buf = append(buf, b)
		}
	}
	return mem.ParseInt(mem.B(buf), radix, 64)
}

// stripSeparators returns text with "_" digit separators removed. If text
// contains no separators, it is returned without copying.
func stripSeparators(text mem.RO) mem.RO {
	if mem.IndexByte(text, '_') < 0 {
		return text
	}
	buf := make([]byte, 0, text.Len())
	for i := 0; i < text.Len(); i++ {
		if b := text.At(i); b != '_' {
			buf = append(buf, b)
		}
	}
	return mem.B(buf)
}

func isDecDigit(b byte) bool { return b == '_' || ('0' <= b && b <= '9') }
func isOctDigit(b byte) bool { return '0' <= b && b <= '7' }
func isBinDigit(b byte) bool { return b == '0' || b == '1' }

func isHexDigit(b byte) bool {
	return ('0' <= b && b <= '9') || ('a' <= b && b <= 'f') || ('A' <= b && b <= 'F')
}
