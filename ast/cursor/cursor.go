// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements traversal over trees of KDL nodes.
package cursor

import (
	"fmt"

	"github.com/creachadair/kdl/ast"
)

// Path traverses a sequential path into the structure of nodes, where path
// elements are as documented for the Cursor.Down method. This is a
// convenience wrapper for creating a cursor, applying path, and retrieving its
// value. The type T is typically *ast.Node or ast.Value.
func Path[T any](nodes []*ast.Node, path ...any) (T, error) {
	c := New(nodes).Down(path...)
	var result T
	if err := c.Err(); err != nil {
		return result, err
	}
	v, ok := c.Value().(T)
	if !ok {
		return result, fmt.Errorf("wrong value type %T", c.Value())
	}
	return v, nil
}

// Arg is a path element that selects a positional value of a node by index.
// Negative indices count backward from the end.
type Arg int

// Prop is a path element that selects the value of a property of a node.
type Prop string

// A Cursor is a pointer that navigates into the structure of a tree of nodes.
// Its origin is a root node with no name, whose children are the top-level
// nodes of the tree.
type Cursor struct {
	org *ast.Node
	stk []any // *ast.Node or ast.Value
	err error
}

// New constructs a new Cursor to traverse the structure of nodes.
func New(nodes []*ast.Node) *Cursor { return &Cursor{org: &ast.Node{Children: nodes}} }

// Origin returns the root node of c.
func (c *Cursor) Origin() *ast.Node { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor, either an *ast.Node or
// an ast.Value.
func (c *Cursor) Value() any {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Node reports the current node under the cursor, or nil if the cursor is
// positioned on a value.
func (c *Cursor) Node() *ast.Node {
	n, _ := c.Value().(*ast.Node)
	return n
}

// Path reports the complete sequence of values from the origin to the current
// location in c.
func (c *Cursor) Path() []any {
	return append([]any{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current location, where path elements are strings (denoting child names),
// integers (denoting child offsets), Arg and Prop values (denoting entries of
// a node), or functions (see below). If the path is valid, the element reached
// is returned. If the path cannot be completely consumed, traversal stops and
// an error is recorded. Use Err to recover the error.
//
// If a path element is a string, the current value must be a node, and the
// string resolves to its first child with that name.
//
// If a path element is an integer, the current value must be a node, and the
// integer resolves to the child at that index. Negative indices count
// backward from the end (-1 is last, -2 second last). An error is reported if
// the index is out of bounds.
//
// An Arg or Prop resolves to a value of the current node. A value has no
// further structure, so it must be the last element of the path.
//
// If a path element is a function, the function is executed and its result
// becomes the next node in the sequence. The function must have a signature
//
//	func(*ast.Node) (*ast.Node, error)
//
// If the function reports an error, traversal stops and the error is recorded.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Value()
	for _, elt := range path {
		node, ok := cur.(*ast.Node)
		if !ok {
			return c.setErrorf("cannot traverse %T with %v", cur, elt)
		}

		switch t := elt.(type) {
		case string:
			next := node.Find(t)
			if next == nil {
				return c.setErrorf("child %q not found", t)
			}
			cur = c.push(next)

		case int:
			i, ok := fixBound(len(node.Children), t)
			if !ok {
				return c.setErrorf("child index %d out of bounds (n=%d)", i, len(node.Children))
			}
			cur = c.push(node.Children[i])

		case Arg:
			v, ok := node.Arg(int(t))
			if !ok {
				return c.setErrorf("argument %d out of bounds (n=%d)", t, len(node.Values))
			}
			cur = c.push(v)

		case Prop:
			v, ok := node.Prop(string(t))
			if !ok {
				return c.setErrorf("property %q not found", t)
			}
			cur = c.push(v)

		case func(*ast.Node) (*ast.Node, error):
			next, err := t(node)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		default:
			return c.setErrorf("invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v any) any { c.stk = append(c.stk, v); return v }

func (c *Cursor) setErrorf(msg string, args ...any) *Cursor {
	c.err = fmt.Errorf(msg, args...)
	return c
}

func fixBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
