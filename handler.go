// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package kdl

import "io"

// A Handler handles events from parsing an input. If a method reports an
// error, parsing stops and that error is returned to the caller. The parser
// ensures that opens and closes are correctly balanced.
//
// The Event passed to a Handler method shares storage with the input. If the
// method needs to retain names or values after the input is discarded, it
// must copy them.
type Handler interface {
	// Begin a new node. If ev.HasChildren is true, the node's children are
	// reported before its close.
	OpenNode(ev Event) error

	// End the most-recently-opened node. The event kind is NodeClose or
	// BracketedNodeClose.
	CloseNode(ev Event) error
}

// Parse consumes the remaining input from p and delivers events to h until
// either an error occurs or the input is exhausted. In case of a syntax
// error, the returned error has type [*SyntaxError]. If a Handler method
// reports an error, parsing stops and that error is returned unchanged.
func (p *Parser) Parse(h Handler) error {
	for {
		ev, err := p.Next()
		if err == io.EOF {
			return nil
		} else if err != nil {
			return err
		}
		if ev.Kind == NodeOpen {
			err = h.OpenNode(ev)
		} else {
			err = h.CloseNode(ev)
		}
		if err != nil {
			return err
		}
	}
}
