// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package lex

import (
	"fmt"

	"go4.org/mem"
)

// Kind is the type of a lexical token in the KDL grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid       Kind = iota // invalid token
	BlockOpen                 // left brace "{"
	BlockClose                // right brace "}"
	ParenOpen                 // left paren "("
	ParenClose                // right paren ")"
	True                      // constant: true
	False                     // constant: false
	Equals                    // equal sign "="
	SlashDash                 // slash-dash "/-"
	Semicolon                 // semicolon ";"
	Null                      // constant: null
	Backslash                 // line continuation "\"
	Newline                   // one or more line separators
	EscapedString             // quoted string containing escapes
	PlainString               // raw string, or quoted string without escapes
	Float                     // number with fraction and/or exponent
	Integer                   // integer in radix 2, 8, 10, or 16
	TypeAnnot                 // type annotation: (name)
	Ident                     // bare identifier
)

var kindStr = [...]string{
	Invalid:       "invalid token",
	BlockOpen:     `"{"`,
	BlockClose:    `"}"`,
	ParenOpen:     `"("`,
	ParenClose:    `")"`,
	True:          "true",
	False:         "false",
	Equals:        `"="`,
	SlashDash:     `"/-"`,
	Semicolon:     `";"`,
	Null:          "null",
	Backslash:     `"\"`,
	Newline:       "newline",
	EscapedString: "escaped string",
	PlainString:   "string",
	Float:         "float",
	Integer:       "integer",
	TypeAnnot:     "type annotation",
	Ident:         "identifier",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// IsValue reports whether k is the kind of a literal value token, one that
// may appear as a positional value, a property value, or after a type
// annotation.
func (k Kind) IsValue() bool {
	switch k {
	case EscapedString, PlainString, Float, Integer, True, False, Null:
		return true
	}
	return false
}

// IsString reports whether k is one of the string kinds.
func (k Kind) IsString() bool { return k == EscapedString || k == PlainString }

// A Token is a single lexical token. Tokens do not own their text: Text is a
// view of the original input. For strings, Text excludes the delimiters; for
// type annotations it excludes the parentheses.
type Token struct {
	Kind Kind
	Text mem.RO
	Span Span

	ival int64
	fval float64
}

// NewToken constructs a token of the given kind and text, with no location.
// It is meant for token sources other than the Lexer. Use IntToken and
// FloatToken for numeric tokens.
func NewToken(kind Kind, text string) Token { return Token{Kind: kind, Text: mem.S(text)} }

// IntToken constructs an Integer token with value v.
func IntToken(v int64) Token {
	return Token{Kind: Integer, Text: mem.S(fmt.Sprint(v)), ival: v}
}

// FloatToken constructs a Float token with value v.
func FloatToken(v float64) Token {
	return Token{Kind: Float, Text: mem.S(fmt.Sprint(v)), fval: v}
}

// Int64 returns the value of an Integer token. It panics if t is not an
// Integer.
func (t Token) Int64() int64 {
	if t.Kind != Integer {
		panic(fmt.Sprintf("Int64 called on %v", t.Kind))
	}
	return t.ival
}

// Float64 returns the value of a Float token. It panics if t is not a Float.
func (t Token) Float64() float64 {
	if t.Kind != Float {
		panic(fmt.Sprintf("Float64 called on %v", t.Kind))
	}
	return t.fval
}

func (t Token) String() string {
	switch t.Kind {
	case Ident, EscapedString, PlainString, TypeAnnot, Integer, Float, Invalid:
		return fmt.Sprintf("%v %q", t.Kind, t.Text.StringCopy())
	}
	return t.Kind.String()
}
