// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"github.com/creachadair/kdl"
	"go4.org/mem"
)

// Parse assembles the nodes reported by p into trees, and returns the
// top-level nodes. In case of error, any nodes already assembled are returned
// along with the error.
func Parse(p *kdl.Parser) ([]*Node, error) {
	h := new(parseHandler)
	err := p.Parse(h)
	return h.roots, err
}

// ParseString parses and assembles the KDL document in text.
func ParseString(text string) ([]*Node, error) { return Parse(kdl.NewParser(text)) }

// A parseHandler implements the kdl.Handler interface to construct trees of
// nodes.
type parseHandler struct {
	roots []*Node
	stk   []*Node
	tbuf  [][]byte
}

// intern appends the unescaped text of s to a shared buffer, and returns a
// view of the copy. Allocations are batched to reduce allocation overhead.
func (h *parseHandler) intern(s kdl.String) (mem.RO, error) {
	const bufBlockBytes = 8192

	if s.Raw().Len() >= bufBlockBytes {
		buf, err := s.AppendUnescaped(nil)
		return mem.B(buf), err
	}

	// The unescaped text is never longer than the raw text.
	need := s.Raw().Len()
	i := 0
	for i < len(h.tbuf) {
		if len(h.tbuf[i])+need <= cap(h.tbuf[i]) {
			break
		}
		i++
	}
	if i == len(h.tbuf) {
		h.tbuf = append(h.tbuf, make([]byte, 0, bufBlockBytes))
	}
	start := len(h.tbuf[i])
	buf, err := s.AppendUnescaped(h.tbuf[i])
	if err != nil {
		return mem.RO{}, err
	}
	h.tbuf[i] = buf
	return mem.B(buf[start:len(buf):len(buf)]), nil
}

func (h *parseHandler) value(tv kdl.TypedValue) (Value, error) {
	v := Value{Type: tv.Type.StringCopy(), Value: tv.Value}
	if s, ok := tv.Value.AsString(); ok {
		text, err := h.intern(s)
		if err != nil {
			return Value{}, err
		}
		v.Value = kdl.Str(kdl.Escapeless(text))
	}
	return v, nil
}

func (h *parseHandler) OpenNode(ev kdl.Event) error {
	name, err := ev.Name.Unescape()
	if err != nil {
		return h.errorAt(ev, err)
	}
	n := &Node{Name: name.StringCopy(), Span: ev.Span}
	for _, p := range ev.Props {
		key, err := p.Key.Unescape()
		if err != nil {
			return h.errorAt(ev, err)
		}
		v, err := h.value(p.Value)
		if err != nil {
			return h.errorAt(ev, err)
		}
		n.Props = append(n.Props, Prop{Key: key.StringCopy(), Value: v})
	}
	for _, tv := range ev.Values {
		v, err := h.value(tv)
		if err != nil {
			return h.errorAt(ev, err)
		}
		n.Values = append(n.Values, v)
	}

	if len(h.stk) == 0 {
		h.roots = append(h.roots, n)
	} else {
		top := h.stk[len(h.stk)-1]
		top.Children = append(top.Children, n)
	}
	h.stk = append(h.stk, n)
	return nil
}

func (h *parseHandler) CloseNode(ev kdl.Event) error {
	h.stk = h.stk[:len(h.stk)-1]
	return nil
}

func (h *parseHandler) errorAt(ev kdl.Event, err error) error {
	return &kdl.SyntaxError{Span: ev.Span, Err: err}
}
