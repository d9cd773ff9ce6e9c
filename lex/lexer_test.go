// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package lex_test

import (
	"errors"
	"io"
	"testing"

	"github.com/creachadair/kdl/lex"
	"github.com/creachadair/mds/mtest"
	"github.com/google/go-cmp/cmp"
	"go4.org/mem"
)

// scanAll returns all the tokens of input, stopping at the first error.
func scanAll(t *testing.T, input string) ([]lex.Token, error) {
	t.Helper()
	lx := lex.New(mem.S(input))
	var toks []lex.Token
	for {
		tok, err := lx.Next()
		if err == io.EOF {
			return toks, nil
		} else if err != nil {
			return toks, err
		}
		toks = append(toks, tok)
	}
}

func kinds(toks []lex.Token) []lex.Kind {
	var out []lex.Kind
	for _, tok := range toks {
		out = append(out, tok.Kind)
	}
	return out
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input string
		want  []lex.Kind
	}{
		// Empty inputs
		{"", nil},
		{"  \t ", nil},
		{"\u00a0\u3000\ufeff\u2003", nil},

		// Newlines collapse
		{"\n", []lex.Kind{lex.Newline}},
		{"\n\n\r\n\u00a0", []lex.Kind{lex.Newline}},
		{"\n  \n", []lex.Kind{lex.Newline, lex.Newline}},

		// Constants
		{"true false null", []lex.Kind{lex.True, lex.False, lex.Null}},
		{"trueish nullable", []lex.Kind{lex.Ident, lex.Ident}},

		// Punctuation
		{`{ } ( ) = ; \ /-`, []lex.Kind{
			lex.BlockOpen, lex.BlockClose, lex.ParenOpen, lex.ParenClose,
			lex.Equals, lex.Semicolon, lex.Backslash, lex.SlashDash,
		}},

		// Strings
		{`"" "a b c" "a\nb"`, []lex.Kind{lex.PlainString, lex.PlainString, lex.EscapedString}},
		{`r"raw\n" r#"has "quotes""# r##"a "# b"##`, []lex.Kind{
			lex.PlainString, lex.PlainString, lex.PlainString,
		}},
		{"\"multi\nline\"", []lex.Kind{lex.PlainString}},

		// Identifiers
		{`foo foo-bar r #x .x - +1 ☃`, []lex.Kind{
			lex.Ident, lex.Ident, lex.Ident, lex.Ident, lex.Ident, lex.Ident, lex.Ident, lex.Ident,
		}},

		// Type annotations
		{`(i8)1 (u32)"x" ( ) (1x)`, []lex.Kind{
			lex.TypeAnnot, lex.Integer, lex.TypeAnnot, lex.PlainString,
			lex.ParenOpen, lex.ParenClose, lex.ParenOpen, lex.Integer, lex.Ident, lex.ParenClose,
		}},

		// Numbers
		{`0 -1 1_000 0x1F 0o17 0b101`, []lex.Kind{
			lex.Integer, lex.Integer, lex.Integer, lex.Integer, lex.Integer, lex.Integer,
		}},
		{`1.5 1e10 1.5E-3 .5 -2.5e+2`, []lex.Kind{
			lex.Float, lex.Float, lex.Float, lex.Float, lex.Float,
		}},

		// Comments
		{"// comment", nil},
		{"a // comment\nb", []lex.Kind{lex.Ident, lex.Newline, lex.Ident}},
		{"a /* inline */ b", []lex.Kind{lex.Ident, lex.Ident}},
		{"/* a /* nested */ comment */ x", []lex.Kind{lex.Ident}},
		{"/*\nspanning\nlines\n*/", nil},

		// Mixed
		{"node 1 key=\"v\" {\n  child\n}\n", []lex.Kind{
			lex.Ident, lex.Integer, lex.Ident, lex.Equals, lex.PlainString, lex.BlockOpen, lex.Newline,
			lex.Ident, lex.Newline,
			lex.BlockClose, lex.Newline,
		}},
	}

	for _, test := range tests {
		toks, err := scanAll(t, test.input)
		if err != nil {
			t.Errorf("Input %#q: Next failed: %v", test.input, err)
		}
		if diff := cmp.Diff(test.want, kinds(toks)); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestLexerText(t *testing.T) {
	tests := []struct {
		input string
		kind  lex.Kind
		text  string
	}{
		{`"abc"`, lex.PlainString, "abc"},
		{`"a\"b"`, lex.EscapedString, `a\"b`},
		{`r"a\nb"`, lex.PlainString, `a\nb`},
		{`r#"say "hi""#`, lex.PlainString, `say "hi"`},
		{`r###"a"##b"###`, lex.PlainString, `a"##b`},
		{`(date)`, lex.TypeAnnot, "date"},
		{`name`, lex.Ident, "name"},
		{`0x1_F`, lex.Integer, "0x1_F"},
	}
	for _, test := range tests {
		toks, err := scanAll(t, test.input)
		if err != nil {
			t.Errorf("Input %#q: Next failed: %v", test.input, err)
			continue
		} else if len(toks) != 1 {
			t.Errorf("Input %#q: got %d tokens, want 1", test.input, len(toks))
			continue
		}
		tok := toks[0]
		if tok.Kind != test.kind {
			t.Errorf("Input %#q: kind is %v, want %v", test.input, tok.Kind, test.kind)
		}
		if got := tok.Text.StringCopy(); got != test.text {
			t.Errorf("Input %#q: text is %#q, want %#q", test.input, got, test.text)
		}
		if tok.Span.Pos != 0 || tok.Span.End != len(test.input) {
			t.Errorf("Input %#q: span is %v, want 0-%d", test.input, tok.Span, len(test.input))
		}
	}
}

func TestLexerNumbers(t *testing.T) {
	t.Run("Integer", func(t *testing.T) {
		tests := []struct {
			input string
			want  int64
		}{
			{"0", 0},
			{"15", 15},
			{"-25", -25},
			{"1_000_000", 1000000},
			{"0x1_F", 31},
			{"0XfF", 255},
			{"-0x10", -16},
			{"0o17", 15},
			{"0b101", 5},
			{"0b1_0_1", 5},
			{"9223372036854775807", 9223372036854775807},
			{"-0x8000000000000000", -9223372036854775808},
		}
		for _, test := range tests {
			toks, err := scanAll(t, test.input)
			if err != nil || len(toks) != 1 || toks[0].Kind != lex.Integer {
				t.Errorf("Input %#q: got %v, %v; want one integer", test.input, toks, err)
				continue
			}
			if got := toks[0].Int64(); got != test.want {
				t.Errorf("Input %#q: got %d, want %d", test.input, got, test.want)
			}
		}
	})
	t.Run("Float", func(t *testing.T) {
		tests := []struct {
			input string
			want  float64
		}{
			{"1.5e10", 1.5e10},
			{"0.25", 0.25},
			{".5", 0.5},
			{"-3.75", -3.75},
			{"2E3", 2000},
			{"1_000.5", 1000.5},
			{"6.02e-2", 0.0602},
		}
		for _, test := range tests {
			toks, err := scanAll(t, test.input)
			if err != nil || len(toks) != 1 || toks[0].Kind != lex.Float {
				t.Errorf("Input %#q: got %v, %v; want one float", test.input, toks, err)
				continue
			}
			if got := toks[0].Float64(); got != test.want {
				t.Errorf("Input %#q: got %g, want %g", test.input, got, test.want)
			}
		}
	})
	t.Run("Accessors", func(t *testing.T) {
		mtest.MustPanic(t, func() { lex.FloatToken(1).Int64() })
		mtest.MustPanic(t, func() { lex.IntToken(1).Float64() })
		mtest.MustPanic(t, func() { lex.NewToken(lex.Ident, "x").Int64() })
	})
}

func TestLexerErrors(t *testing.T) {
	tests := []struct {
		input string
		want  []lex.Kind // tokens before the error
	}{
		{`"unterminated`, nil},
		{`r#"unterminated"`, nil},
		{`a /* unterminated`, []lex.Kind{lex.Ident}},
		{`a < b`, []lex.Kind{lex.Ident}},
		{`[`, nil},
		{`a, b`, []lex.Kind{lex.Ident}},
		{`/`, nil},
		{`0x`, nil},
		{`0b_`, nil},
		{`99999999999999999999`, nil},
		{`0xFFFFFFFFFFFFFFFFF`, nil},
		{`1e999`, nil},
	}
	for _, test := range tests {
		toks, err := scanAll(t, test.input)
		if err == nil {
			t.Errorf("Input %#q: got %v, want error", test.input, toks)
			continue
		} else if !errors.Is(err, lex.ErrInvalidToken) {
			t.Errorf("Input %#q: got error %v, want %v", test.input, err, lex.ErrInvalidToken)
		}
		if diff := cmp.Diff(test.want, kinds(toks)); diff != "" {
			t.Errorf("Input: %#q\nTokens: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestLexerResume(t *testing.T) {
	lx := lex.New(mem.S("a < b"))
	var got []string
	for {
		tok, err := lx.Next()
		if err == io.EOF {
			break
		} else if err != nil {
			got = append(got, "error")
			if tok.Kind != lex.Invalid {
				t.Errorf("Error token kind: got %v, want %v", tok.Kind, lex.Invalid)
			}
			continue
		}
		got = append(got, tok.Text.StringCopy())
	}
	if diff := cmp.Diff([]string{"a", "error", "b"}, got); diff != "" {
		t.Errorf("Tokens (-want, +got):\n%s", diff)
	}
}

func TestLineCol(t *testing.T) {
	const input = "one\ntwo three\r\n\nfour"
	lx := lex.New(mem.S(input))
	tests := []struct {
		offset int
		want   string
	}{
		{0, "1:0"},
		{2, "1:2"},
		{4, "2:0"},
		{8, "2:4"},
		{15, "3:0"},
		{16, "4:0"},
		{18, "4:2"},
		{100, "4:4"},
	}
	for _, test := range tests {
		if got := lx.LineCol(test.offset).String(); got != test.want {
			t.Errorf("LineCol(%d): got %s, want %s", test.offset, got, test.want)
		}
	}
}
