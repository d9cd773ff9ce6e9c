// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package kdl implements a streaming parser for the KDL document language.
//
// # Parsing
//
// The Parser type is a pull parser. Construct a parser from the text of a
// document and call its Next method to iterate over the events it contains.
// Next returns io.EOF when the input has been fully consumed:
//
//	p := kdl.NewParser(input)
//	for {
//	   ev, err := p.Next()
//	   if err == io.EOF {
//	      break
//	   } else if err != nil {
//	      log.Fatalf("Parse failed: %v", err)
//	   }
//	   log.Printf("Event: %v", ev)
//	}
//
// Alternatively, range over the All method, which stops after the first error:
//
//	for ev, err := range p.All() {
//	   ...
//	}
//
// Each node produces a NodeOpen event carrying its name, properties, and
// positional values. The node is later closed by exactly one close event: a
// BracketedNodeClose if the node had a child block, otherwise a NodeClose.
// The events for the children of a node occur between its open and its close.
//
// Nodes, properties, values, and child blocks preceded by "/-" are parsed and
// discarded; they produce no events.
//
// # Handlers
//
// The Handler interface accepts events pushed from a Parser. Call the Parse
// method to deliver all remaining events to a handler:
//
//	if err := p.Parse(handler); err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//
// The ast package uses a Handler to assemble a tree of nodes.
//
// # Strings
//
// Names, property keys, and string values are reported as String values,
// which refer to the input text without copying it. A String records whether
// its text contains escape sequences. Escapeless strings are used directly;
// escaped strings can be unescaped eagerly (Unescape, AppendUnescaped) or
// lazily, one rune at a time (Runes). Comparisons between strings use the
// unescaped text.
//
// # Errors
//
// Syntax errors are reported as values of concrete type *SyntaxError, which
// wrap one of the sentinel errors defined by this package, or an error from
// the token source. Use errors.Is to check for specific conditions. The
// parser does not recover from errors.
//
// # Limits
//
// By default, parser storage grows as needed. Call SetLimits to fix the
// maximum nesting depth and the number of entries per node; input exceeding
// the limits is reported as an error rather than truncated.
package kdl
