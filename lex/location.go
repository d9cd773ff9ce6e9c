// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package lex

import "fmt"

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

func (s Span) String() string { return fmt.Sprintf("%d-%d", s.Pos, s.End) }

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

// IsValid reports whether lc describes a real location. The zero LineCol is
// used when the position of a token is not known.
func (lc LineCol) IsValid() bool { return lc.Line > 0 }

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }
