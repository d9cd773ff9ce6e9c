// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package kdl

import (
	"strings"

	"github.com/creachadair/kdl/lex"
)

// EventKind identifies the type of an Event.
type EventKind byte

// Constants defining the valid EventKind values.
const (
	// NodeOpen begins a node. If the node has a child block, the events for
	// its children follow, ending with a BracketedNodeClose.
	NodeOpen EventKind = iota + 1

	// NodeClose ends a node that had no child block. The node was terminated
	// by ";", a newline, the "}" of its enclosing block, or the end of input.
	NodeClose

	// BracketedNodeClose ends a node whose child block was closed by "}".
	BracketedNodeClose
)

var eventKindStr = [...]string{
	NodeOpen:           "NodeOpen",
	NodeClose:          "NodeClose",
	BracketedNodeClose: "BracketedNodeClose",
}

func (k EventKind) String() string {
	if k == 0 || int(k) >= len(eventKindStr) {
		return "invalid event"
	}
	return eventKindStr[k]
}

// An Event is a unit of parser output.
//
// The Name of a close event is always the Name of its corresponding
// NodeOpen. The Props, Values, and HasChildren fields are set only for
// NodeOpen events.
type Event struct {
	Kind EventKind
	Name String
	Span lex.Span // the name token of an open, the closing token of a close

	Props       []Property
	Values      []TypedValue
	HasChildren bool
}

// Equal reports whether e and f are equivalent events. Spans are not
// compared, and names and values are compared by their unescaped text.
func (e Event) Equal(f Event) bool {
	if e.Kind != f.Kind || !e.Name.Equal(f.Name) || e.HasChildren != f.HasChildren ||
		len(e.Props) != len(f.Props) || len(e.Values) != len(f.Values) {
		return false
	}
	for i, p := range e.Props {
		if !p.Equal(f.Props[i]) {
			return false
		}
	}
	for i, v := range e.Values {
		if !v.Equal(f.Values[i]) {
			return false
		}
	}
	return true
}

// String renders a compact human-readable summary of e.
func (e Event) String() string {
	var sb strings.Builder
	sb.WriteString(e.Kind.String())
	sb.WriteByte(' ')
	sb.WriteString(e.Name.String())
	for _, p := range e.Props {
		sb.WriteByte(' ')
		sb.WriteString(p.String())
	}
	for _, v := range e.Values {
		sb.WriteByte(' ')
		sb.WriteString(v.String())
	}
	if e.HasChildren {
		sb.WriteString(" {")
	}
	return sb.String()
}
