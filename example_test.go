// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package kdl_test

import (
	"fmt"
	"log"
	"strings"

	"github.com/creachadair/kdl"
	"github.com/creachadair/kdl/ast"
	"github.com/creachadair/kdl/ast/cursor"
)

const exampleDoc = `
package name="kdl" {
  version "1.0.0"
  /-unreleased true
  authors "Alice" "Bob"
}
`

func ExampleParser() {
	p := kdl.NewParser(exampleDoc)
	depth := 0
	for ev, err := range p.All() {
		if err != nil {
			log.Fatalf("Parse failed: %v", err)
		}
		if ev.Kind == kdl.BracketedNodeClose {
			depth--
		}
		fmt.Printf("%s%v\n", strings.Repeat("  ", depth), ev)
		if ev.HasChildren {
			depth++
		}
	}
	// Output:
	// NodeOpen package name="kdl" {
	//   NodeOpen version "1.0.0"
	//   NodeClose version
	//   NodeOpen authors "Alice" "Bob"
	//   NodeClose authors
	// BracketedNodeClose package
}

func ExampleString_Equal() {
	ev, err := kdl.NewParser(`node "abc" "a\u{62}c"`).Next()
	if err != nil {
		log.Fatalf("Next failed: %v", err)
	}
	a, _ := ev.Values[0].Value.AsString()
	b, _ := ev.Values[1].Value.AsString()
	fmt.Println(a.IsEscaped(), b.IsEscaped(), a.Equal(b))
	// Output:
	// false true true
}

func ExampleParser_SetLimits() {
	p := kdl.NewParser("a {\n  b {\n    c\n  }\n}")
	p.SetLimits(kdl.Limits{MaxDepth: 1})
	for _, err := range p.All() {
		if err != nil {
			fmt.Println(err)
		}
	}
	// Output:
	// at 2:2: nesting too deep
}

func Example_tree() {
	nodes, err := ast.ParseString(exampleDoc)
	if err != nil {
		log.Fatalf("Parse failed: %v", err)
	}
	name, err := cursor.Path[ast.Value](nodes, "package", cursor.Prop("name"))
	if err != nil {
		log.Fatalf("Path failed: %v", err)
	}
	last, err := cursor.Path[ast.Value](nodes, "package", "authors", cursor.Arg(-1))
	if err != nil {
		log.Fatalf("Path failed: %v", err)
	}
	fmt.Println(name.Text(), last.Text())
	// Output:
	// kdl Bob
}
