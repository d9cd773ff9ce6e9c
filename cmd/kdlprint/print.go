// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/creachadair/kdl"
	"github.com/creachadair/kdl/ast"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/tailscale/hujson"
)

// printFile parses the KDL document at path and prints it to stdout in the
// format selected by cfg. Syntax errors are described on stderr.
func printFile(stdout, stderr io.Writer, logger log.Logger, path string, cfg settings) error {
	data, err := readInput(path)
	if err != nil {
		return err
	}
	level.Debug(logger).Log("msg", "parsing", "file", path, "bytes", len(data))

	p := kdl.NewParserBytes(data)
	p.SetLimits(kdl.Limits{MaxDepth: cfg.MaxDepth, MaxEntries: cfg.MaxEntries})

	w := bufio.NewWriter(stdout)
	defer w.Flush()

	switch {
	case cfg.Tree, cfg.JSON:
		nodes, err := ast.Parse(p)
		if err != nil {
			w.Flush()
			return reportError(stderr, path, data, err)
		}
		level.Debug(logger).Log("msg", "assembled", "file", path, "nodes", len(nodes))
		if cfg.JSON {
			return writeJSON(w, nodes, cfg.Compact)
		}
		for _, n := range nodes {
			writeNode(w, 0, n)
		}
		return nil

	default:
		ep := &eventPrinter{w: w}
		if err := p.Parse(ep); err != nil {
			w.Flush()
			return reportError(stderr, path, data, err)
		}
		level.Debug(logger).Log("msg", "parsed", "file", path, "events", ep.n)
		return nil
	}
}

func readInput(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

// reportError writes a description of err to w, with source context if it is
// a syntax error, and returns err.
func reportError(w io.Writer, path string, data []byte, err error) error {
	var serr *kdl.SyntaxError
	if errors.As(err, &serr) {
		writeErrorContext(w, path, data, serr)
	}
	return err
}

// An eventPrinter is a kdl.Handler that prints one line per event, indented
// by nesting depth.
type eventPrinter struct {
	w     io.Writer
	depth int
	n     int
}

func (e *eventPrinter) OpenNode(ev kdl.Event) error {
	e.print(ev)
	if ev.HasChildren {
		e.depth++
	}
	return nil
}

func (e *eventPrinter) CloseNode(ev kdl.Event) error {
	if ev.Kind == kdl.BracketedNodeClose {
		e.depth--
	}
	e.print(ev)
	return nil
}

func (e *eventPrinter) print(ev kdl.Event) {
	e.n++
	fmt.Fprintf(e.w, "%s%v\n", strings.Repeat("  ", e.depth), ev)
}

// writeNode writes n and its children to w in tag form, indented by depth.
func writeNode(w io.Writer, depth int, n *ast.Node) {
	indent := strings.Repeat("  ", depth)
	fmt.Fprintf(w, "%s<%s", indent, n.Name)
	for _, p := range n.Props {
		fmt.Fprintf(w, " %s=%v", p.Key, p.Value)
	}
	for _, v := range n.Values {
		fmt.Fprintf(w, " %v", v)
	}
	if len(n.Children) == 0 {
		fmt.Fprintf(w, "></%s>\n", n.Name)
		return
	}
	fmt.Fprintln(w, ">")
	for _, c := range n.Children {
		writeNode(w, depth+1, c)
	}
	fmt.Fprintf(w, "%s</%s>\n", indent, n.Name)
}

// writeJSON writes nodes to w as a JSON array. If compact is true, the output
// has no insignificant whitespace; otherwise it is formatted.
func writeJSON(w io.Writer, nodes []*ast.Node, compact bool) error {
	if nodes == nil {
		nodes = []*ast.Node{}
	}
	data, err := json.MarshalIndent(nodes, "", "  ")
	if err != nil {
		return err
	}
	v, err := hujson.Parse(data)
	if err != nil {
		return err
	}
	if compact {
		v.Minimize()
	} else {
		v.Format()
	}
	out := v.Pack()
	if len(out) == 0 || out[len(out)-1] != '\n' {
		out = append(out, '\n')
	}
	_, err = w.Write(out)
	return err
}
