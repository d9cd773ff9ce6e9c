// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/creachadair/kdl"
	"github.com/creachadair/kdl/lex"
	"github.com/rivo/uniseg"
	"go4.org/mem"
)

// writeErrorContext writes serr to w, followed by the line of data containing
// the error and a caret marking its position:
//
//	input.kdl:2:5: mismatched node closing
//	  foo }}
//	      ^
func writeErrorContext(w io.Writer, path string, data []byte, serr *kdl.SyntaxError) {
	pos := min(max(serr.Span.Pos, 0), len(data))
	lc := serr.Location
	if !lc.IsValid() {
		lc = lex.New(mem.B(data)).LineCol(pos)
	}
	fmt.Fprintf(w, "%s:%d:%d: %v\n", path, lc.Line, lc.Column+1, serr.Err)

	start := bytes.LastIndexByte(data[:pos], '\n') + 1
	end := len(data)
	if i := bytes.IndexAny(data[pos:], "\r\n"); i >= 0 {
		end = pos + i
	}
	fmt.Fprintf(w, "  %s\n  %s^\n", data[start:end], caretPad(string(data[start:pos])))
}

// caretPad returns blank padding with the same display width as prefix.
// Tabs are preserved so the caret lines up however the terminal expands them.
func caretPad(prefix string) string {
	var sb strings.Builder
	state := -1
	for prefix != "" {
		var cluster string
		var width int
		cluster, prefix, width, state = uniseg.FirstGraphemeClusterInString(prefix, state)
		if cluster == "\t" {
			sb.WriteByte('\t')
		} else {
			sb.WriteString(strings.Repeat(" ", width))
		}
	}
	return sb.String()
}
