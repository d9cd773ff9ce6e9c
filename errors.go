// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package kdl

import (
	"errors"
	"fmt"

	"github.com/creachadair/kdl/internal/escape"
	"github.com/creachadair/kdl/lex"
)

// Errors reported by the parser. A *SyntaxError wraps one of these values,
// or an error from the token source; use errors.Is to check for them.
var (
	// A property key and "=" were not followed by a value.
	ErrIncompleteProperty = errors.New("incomplete property")

	// A ";" or "}" had no corresponding open node, or the input ended inside
	// a child block.
	ErrMismatchedNodeClosing = errors.New("mismatched node closing")

	// A node name or valid node content was expected but not found.
	ErrNotANode = errors.New("not a node")

	// A type annotation was not immediately followed by a value.
	ErrTypeDescriptorWithNoValue = errors.New("type descriptor with no value")

	// Nodes are nested more deeply than the parser limits permit.
	ErrNestingTooDeep = errors.New("nesting too deep")

	// A node has more properties or values than the parser limits permit.
	ErrTooManyEntries = errors.New("too many entries")
)

// Errors reported for malformed escape sequences when unescaping a String.
var (
	ErrUnrecognizedEscape = escape.ErrUnrecognizedEscape
	ErrUnexpectedEOF      = escape.ErrUnexpectedEOF
	ErrBadUnicodeEscape   = escape.ErrBadUnicodeEscape
)

// SyntaxError is the concrete type of errors reported by the parser.
type SyntaxError struct {
	Span     lex.Span    // the location of the offending token
	Location lex.LineCol // the line and column of Span.Pos, if known

	Err error // the underlying error
}

// Error satisfies the error interface.
func (s *SyntaxError) Error() string {
	if s.Location.IsValid() {
		return fmt.Sprintf("at %s: %v", s.Location, s.Err)
	}
	return fmt.Sprintf("at offset %d: %v", s.Span.Pos, s.Err)
}

// Unwrap supports error wrapping.
func (s *SyntaxError) Unwrap() error { return s.Err }
