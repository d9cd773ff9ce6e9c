// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package lex implements a lexical scanner for KDL documents.
//
// A Lexer reads tokens from a single contiguous input buffer. Tokens do not
// copy the input: the text of each token is a view of the buffer, so the
// buffer must not be modified while tokens are in use.
//
//	lx := lex.New(mem.S(input))
//	for {
//	   tok, err := lx.Next()
//	   if err == io.EOF {
//	      break
//	   } else if err != nil {
//	      log.Fatalf("Lexing failed: %v", err)
//	   }
//	   log.Printf("Next token: %v", tok)
//	}
//
// Whitespace and comments are discarded and never reported as tokens.
package lex

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"go4.org/mem"
)

// ErrInvalidToken is wrapped by all errors reported by the Lexer.
var ErrInvalidToken = errors.New("invalid token")

// A Lexer reads lexical tokens from an input buffer. Each call to Next
// advances the lexer to the next token, or reports an error.
type Lexer struct {
	src mem.RO
	pos int // offset of the next unread byte
}

// New constructs a new Lexer that consumes tokens from src.
func New(src mem.RO) *Lexer { return &Lexer{src: src} }

// Next returns the next token of the input, or reports an error. At the end
// of the input, Next returns io.EOF.
//
// If the input at the current position is not a valid token, Next returns a
// token of kind Invalid spanning the rejected input, together with an error
// wrapping ErrInvalidToken. The lexer advances past the rejected input, so a
// subsequent call to Next resumes after it.
func (l *Lexer) Next() (Token, error) {
	for l.pos < l.src.Len() {
		start := l.pos
		ch, n := l.peekRune(start)
		switch {
		case isSpace(ch):
			l.pos += n
			continue

		case isNewline(ch):
			l.pos += n
			for l.pos < l.src.Len() {
				ch, n := l.peekRune(l.pos)
				if !isNewline(ch) {
					break
				}
				l.pos += n
			}
			return l.token(Newline, start), nil

		case ch == '/':
			switch l.byteAt(start + 1) {
			case '/':
				l.skipLineComment()
				continue
			case '*':
				if err := l.skipBlockComment(); err != nil {
					return l.token(Invalid, start), err
				}
				continue
			case '-':
				l.pos += 2
				return l.token(SlashDash, start), nil
			}
			l.pos++
			return l.failf(start, "unexpected %q", ch)

		case ch == '"':
			return l.scanString(start)

		case ch == 'r' && l.isRawStart(start):
			return l.scanRawString(start)

		case ch == '(':
			return l.scanParen(start)

		case isNumStart(ch, l.byteAt(start+1)):
			return l.scanNumber(start)
		}

		if k, ok := selfDelim(ch); ok {
			l.pos += n
			return l.token(k, start), nil
		}
		if isIdentRune(ch) {
			return l.scanIdent(start), nil
		}
		l.pos += n
		return l.failf(start, "unexpected %q", ch)
	}
	return Token{Span: Span{Pos: l.pos, End: l.pos}}, io.EOF
}

// LineCol reports the line and column of the given byte offset in the input.
// Offsets past the end of the input are clamped to the end.
func (l *Lexer) LineCol(offset int) LineCol {
	offset = min(max(offset, 0), l.src.Len())
	lc := LineCol{Line: 1}
	for i := 0; i < offset; {
		ch, n := l.peekRune(i)
		i += n
		if ch == '\r' && i < offset && l.byteAt(i) == '\n' {
			continue // CR LF counts as one line break, at the LF
		}
		if isNewline(ch) {
			lc.Line++
			lc.Column = 0
		} else {
			lc.Column += n
		}
	}
	return lc
}

// scanString scans a quoted string beginning at start.
// Precondition: the byte at start is '"'.
func (l *Lexer) scanString(start int) (Token, error) {
	var esc bool
	for i := start + 1; i < l.src.Len(); i++ {
		switch l.src.At(i) {
		case '\\':
			esc = true
			i++ // skip the escaped byte, whatever it is
		case '"':
			l.pos = i + 1
			kind := PlainString
			if esc {
				kind = EscapedString
			}
			return Token{Kind: kind, Text: l.src.Slice(start+1, i), Span: Span{Pos: start, End: l.pos}}, nil
		}
	}
	l.pos = l.src.Len()
	return l.failf(start, "unterminated string")
}

// isRawStart reports whether the input at start begins a raw string, that
// is: "r", zero or more "#", and a double quote.
func (l *Lexer) isRawStart(start int) bool {
	i := start + 1
	for l.byteAt(i) == '#' {
		i++
	}
	return l.byteAt(i) == '"'
}

// closers is a pool of raw string closing delimiters, sliced to size.
const closers = `"################################`

// scanRawString scans a raw string beginning at start.
// Precondition: isRawStart(start).
func (l *Lexer) scanRawString(start int) (Token, error) {
	i := start + 1
	for l.byteAt(i) == '#' {
		i++
	}
	hashes := i - start - 1
	body := i + 1 // skip the opening quote

	var closer mem.RO
	if hashes < len(closers) {
		closer = mem.S(closers[:hashes+1])
	} else {
		closer = mem.S(`"` + strings.Repeat("#", hashes))
	}
	end := mem.Index(l.src.SliceFrom(body), closer)
	if end < 0 {
		l.pos = l.src.Len()
		return l.failf(start, "unterminated raw string")
	}
	l.pos = body + end + closer.Len()
	return Token{Kind: PlainString, Text: l.src.Slice(body, body+end), Span: Span{Pos: start, End: l.pos}}, nil
}

// scanParen scans either a type annotation or a bare open parenthesis
// beginning at start.
// Precondition: the byte at start is '('.
func (l *Lexer) scanParen(start int) (Token, error) {
	i := start + 1
	for i < l.src.Len() {
		ch, n := l.peekRune(i)
		if !isIdentRune(ch) || (i == start+1 && isDigit(ch)) {
			break
		}
		i += n
	}
	if i > start+1 && l.byteAt(i) == ')' {
		l.pos = i + 1
		return Token{Kind: TypeAnnot, Text: l.src.Slice(start+1, i), Span: Span{Pos: start, End: l.pos}}, nil
	}
	l.pos = start + 1
	return l.token(ParenOpen, start), nil
}

// scanIdent scans a bare identifier or keyword beginning at start.
// Precondition: isIdentRune of the rune at start.
func (l *Lexer) scanIdent(start int) Token {
	i := start
	for i < l.src.Len() {
		ch, n := l.peekRune(i)
		if !isIdentRune(ch) {
			break
		}
		i += n
	}
	l.pos = i
	tok := l.token(Ident, start)
	switch {
	case tok.Text.EqualString("true"):
		tok.Kind = True
	case tok.Text.EqualString("false"):
		tok.Kind = False
	case tok.Text.EqualString("null"):
		tok.Kind = Null
	}
	return tok
}

// skipLineComment discards a "//" comment up to, but not including, the end
// of the line.
func (l *Lexer) skipLineComment() {
	for l.pos < l.src.Len() {
		ch, n := l.peekRune(l.pos)
		if isNewline(ch) {
			return
		}
		l.pos += n
	}
}

// skipBlockComment discards a "/* ... */" comment, which may contain nested
// block comments.
func (l *Lexer) skipBlockComment() error {
	start := l.pos
	depth := 0
	for l.pos < l.src.Len() {
		switch {
		case l.byteAt(l.pos) == '/' && l.byteAt(l.pos+1) == '*':
			depth++
			l.pos += 2
		case l.byteAt(l.pos) == '*' && l.byteAt(l.pos+1) == '/':
			depth--
			l.pos += 2
			if depth == 0 {
				return nil
			}
		default:
			l.pos++
		}
	}
	return fmt.Errorf("%w: unterminated block comment at offset %d", ErrInvalidToken, start)
}

func (l *Lexer) token(kind Kind, start int) Token {
	return Token{Kind: kind, Text: l.src.Slice(start, l.pos), Span: Span{Pos: start, End: l.pos}}
}

func (l *Lexer) failf(start int, msg string, args ...any) (Token, error) {
	tok := l.token(Invalid, start)
	return tok, fmt.Errorf("%w: %s (offset %d)", ErrInvalidToken, fmt.Sprintf(msg, args...), start)
}

// byteAt returns the byte at offset i, or 0 if i is out of range.
func (l *Lexer) byteAt(i int) byte {
	if i < l.src.Len() {
		return l.src.At(i)
	}
	return 0
}

func (l *Lexer) peekRune(i int) (rune, int) {
	if b := l.src.At(i); b < utf8.RuneSelf {
		return rune(b), 1
	}
	return mem.DecodeRune(l.src.SliceFrom(i))
}

var self = [...]Kind{BlockOpen, BlockClose, ParenClose, Equals, Semicolon, Backslash}

func selfDelim(ch rune) (Kind, bool) {
	i := strings.IndexRune("{})=;\\", ch)
	if i >= 0 {
		return self[i], true
	}
	return Invalid, false
}

func isSpace(ch rune) bool {
	switch ch {
	case '\t', ' ', '\u00a0', '\u1680', '\u202f', '\u205f', '\u3000', '\ufeff':
		return true
	}
	return ch >= '\u2000' && ch <= '\u200a'
}

func isNewline(ch rune) bool {
	switch ch {
	case '\r', '\n', '\u0085', '\u000c', '\u2028', '\u2029':
		return true
	}
	return false
}

// isIdentRune reports whether ch may occur in an identifier.
func isIdentRune(ch rune) bool {
	if ch <= ' ' || isSpace(ch) || isNewline(ch) {
		return false
	}
	return !strings.ContainsRune(`/\(){}<>;[]=,"`, ch)
}

func isDigit(ch rune) bool { return '0' <= ch && ch <= '9' }
