// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package store implements the container backends used by the parser.
//
// Each container has an unbounded backend, which grows as needed, and a
// bounded backend with a fixed capacity chosen at construction. Adding to a
// full bounded container reports ErrFull instead of discarding the value.
package store

import (
	"errors"

	"github.com/creachadair/mds/stack"
)

// ErrFull is reported when adding to a bounded container that is full.
var ErrFull = errors.New("container is full")

// A Stack is a LIFO stack of values.
type Stack[T any] interface {
	// Push adds v to the top of the stack, or reports ErrFull.
	Push(v T) error

	// Pop reports whether the stack is non-empty, and if so removes and
	// returns its top value.
	Pop() (T, bool)

	// Top reports whether the stack is non-empty, and if so returns its top
	// value without removing it.
	Top() (T, bool)

	// Len reports the number of values in the stack.
	Len() int
}

// NewStack returns an empty stack holding at most max values. If max <= 0
// the stack is unbounded.
func NewStack[T any](max int) Stack[T] {
	if max <= 0 {
		return unboundedStack[T]{s: stack.New[T]()}
	}
	return &boundedStack[T]{list: make([]T, 0, max)}
}

type unboundedStack[T any] struct{ s *stack.Stack[T] }

func (u unboundedStack[T]) Push(v T) error { u.s.Push(v); return nil }
func (u unboundedStack[T]) Pop() (T, bool) { return u.s.Pop() }
func (u unboundedStack[T]) Top() (T, bool) { return u.s.Peek(0) }
func (u unboundedStack[T]) Len() int       { return u.s.Len() }

type boundedStack[T any] struct{ list []T }

func (b *boundedStack[T]) Push(v T) error {
	if len(b.list) == cap(b.list) {
		return ErrFull
	}
	b.list = append(b.list, v)
	return nil
}

func (b *boundedStack[T]) Pop() (T, bool) {
	top, ok := b.Top()
	if ok {
		var zero T
		b.list[len(b.list)-1] = zero
		b.list = b.list[:len(b.list)-1]
	}
	return top, ok
}

func (b *boundedStack[T]) Top() (T, bool) {
	if len(b.list) == 0 {
		var zero T
		return zero, false
	}
	return b.list[len(b.list)-1], true
}

func (b *boundedStack[T]) Len() int { return len(b.list) }

// A Seq is an ordered sequence of values, optionally bounded in length.
// The zero Seq is unbounded and empty.
type Seq[T any] struct {
	list []T
	max  int
}

// NewSeq returns an empty sequence holding at most max values. If max <= 0
// the sequence is unbounded.
func NewSeq[T any](max int) Seq[T] { return Seq[T]{max: max} }

// Add appends v to the end of s, or reports ErrFull.
func (s *Seq[T]) Add(v T) error {
	if s.max > 0 && len(s.list) >= s.max {
		return ErrFull
	}
	s.list = append(s.list, v)
	return nil
}

// Len reports the number of values in s.
func (s *Seq[T]) Len() int { return len(s.list) }

// Slice returns the contents of s, in order. The caller must not retain the
// slice across further calls to Add.
func (s *Seq[T]) Slice() []T { return s.list }
