// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package ast defines a tree representation of KDL documents, and an
// assembler that constructs trees from the events of a kdl.Parser.
//
// Unlike the events of the parser, the nodes of a tree do not refer to the
// input text: names and strings are unescaped and copied during assembly.
package ast

import (
	"iter"

	"github.com/creachadair/kdl"
	"github.com/creachadair/kdl/lex"
)

// A Node is a single KDL node with its entries and children.
type Node struct {
	Name     string
	Span     lex.Span // the location of the node name
	Props    []Prop
	Values   []Value
	Children []*Node
}

// Find returns the first child of n with the given name, or nil.
func (n *Node) Find(name string) *Node {
	for _, c := range n.Children {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// FindAll returns a sequence of the children of n with the given name.
func (n *Node) FindAll(name string) iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, c := range n.Children {
			if c.Name == name && !yield(c) {
				return
			}
		}
	}
}

// Prop returns the value of the property of n with the given key, and
// reports whether it was found. If the key occurs more than once, the last
// occurrence wins.
func (n *Node) Prop(key string) (Value, bool) {
	for i := len(n.Props) - 1; i >= 0; i-- {
		if n.Props[i].Key == key {
			return n.Props[i].Value, true
		}
	}
	return Value{}, false
}

// Arg returns the positional value of n at index i, and reports whether it
// exists. Negative indices count backward from the end.
func (n *Node) Arg(i int) (Value, bool) {
	if i < 0 {
		i += len(n.Values)
	}
	if i < 0 || i >= len(n.Values) {
		return Value{}, false
	}
	return n.Values[i], true
}

// A Prop is a key-value property of a node.
type Prop struct {
	Key   string
	Value Value
}

// A Value is a KDL value with an optional type annotation. String values
// are escapeless and do not share storage with the input.
type Value struct {
	Type string // the type annotation, or ""
	kdl.Value
}

// String renders v as a KDL literal, with its annotation if it has one.
func (v Value) String() string {
	if v.Type != "" {
		return "(" + v.Type + ")" + v.Value.String()
	}
	return v.Value.String()
}

// Text returns the text of a string value, or "" if v is not a string.
func (v Value) Text() string {
	s, ok := v.AsString()
	if !ok {
		return ""
	}
	return s.String()
}
