// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package store_test

import (
	"errors"
	"testing"

	"github.com/creachadair/kdl/internal/store"
	"github.com/google/go-cmp/cmp"
)

func TestStack(t *testing.T) {
	for _, max := range []int{0, 3} {
		s := store.NewStack[string](max)
		if v, ok := s.Pop(); ok {
			t.Errorf("Pop empty (max=%d): got %q, want none", max, v)
		}
		for _, v := range []string{"a", "b", "c"} {
			if err := s.Push(v); err != nil {
				t.Fatalf("Push %q (max=%d): unexpected error: %v", v, max, err)
			}
		}
		if top, ok := s.Top(); !ok || top != "c" {
			t.Errorf("Top (max=%d): got %q, %v; want c, true", max, top, ok)
		}
		if s.Len() != 3 {
			t.Errorf("Len (max=%d): got %d, want 3", max, s.Len())
		}
		var got []string
		for {
			v, ok := s.Pop()
			if !ok {
				break
			}
			got = append(got, v)
		}
		if diff := cmp.Diff([]string{"c", "b", "a"}, got); diff != "" {
			t.Errorf("Pop order (max=%d) (-want, +got):\n%s", max, diff)
		}
	}
}

func TestBoundedStack(t *testing.T) {
	s := store.NewStack[int](2)
	s.Push(1)
	s.Push(2)
	if err := s.Push(3); !errors.Is(err, store.ErrFull) {
		t.Errorf("Push on full stack: got %v, want %v", err, store.ErrFull)
	}
	if top, _ := s.Top(); top != 2 {
		t.Errorf("Top after failed push: got %d, want 2", top)
	}
	s.Pop()
	if err := s.Push(3); err != nil {
		t.Errorf("Push after Pop: unexpected error: %v", err)
	}
}

func TestSeq(t *testing.T) {
	var u store.Seq[int]
	for i := range 100 {
		if err := u.Add(i); err != nil {
			t.Fatalf("Add %d to unbounded: unexpected error: %v", i, err)
		}
	}
	if u.Len() != 100 {
		t.Errorf("Len: got %d, want 100", u.Len())
	}

	b := store.NewSeq[string](2)
	b.Add("x")
	b.Add("y")
	if err := b.Add("z"); !errors.Is(err, store.ErrFull) {
		t.Errorf("Add to full seq: got %v, want %v", err, store.ErrFull)
	}
	if diff := cmp.Diff([]string{"x", "y"}, b.Slice()); diff != "" {
		t.Errorf("Slice (-want, +got):\n%s", diff)
	}
}
