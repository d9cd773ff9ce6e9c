// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape_test

import (
	"errors"
	"io"
	"testing"

	"github.com/creachadair/kdl/internal/escape"
	"go4.org/mem"
)

// decodeAll runs a Decoder over src to completion.
func decodeAll(src string) (string, error) {
	d := escape.NewDecoder(mem.S(src))
	var out []rune
	for {
		r, err := d.Next()
		if err == io.EOF {
			return string(out), nil
		} else if err != nil {
			return string(out), err
		}
		out = append(out, r)
	}
}

func TestUnescape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{``, ``},
		{`ok go`, "ok go"},
		{`abc\ndef`, "abc\ndef"},
		{`\tabc\n`, "\tabc\n"},
		{`\b\f\n\r\t`, "\b\f\n\r\t"},
		{`a\"b`, `a"b`},
		{`a\\b\\cd`, `a\b\cd`},
		{`\/`, `/`},
		{`a \u{26} b`, "a & b"},
		{`a\u{62}c`, "abc"},
		{`\u{1F600}`, "\U0001F600"},
		{`\u{00000A}`, "\n"},
		{`\u{10FFFF}`, "\U0010FFFF"},
		{`héllo\t☃`, "héllo\t☃"},
	}
	for _, test := range tests {
		got, err := escape.Unescape(mem.S(test.input))
		if err != nil {
			t.Errorf("Unescape(%#q): unexpected error: %v", test.input, err)
		} else if string(got) != test.want {
			t.Errorf("Unescape(%#q): got %#q, want %#q", test.input, got, test.want)
		}

		// The lazy decoder must agree exactly with the eager one.
		lazy, err := decodeAll(test.input)
		if err != nil {
			t.Errorf("Decoder(%#q): unexpected error: %v", test.input, err)
		} else if lazy != string(got) {
			t.Errorf("Decoder(%#q): got %#q, eager %#q", test.input, lazy, got)
		}
	}
}

func TestUnescapeErrors(t *testing.T) {
	tests := []struct {
		input string
		want  error
	}{
		{`\`, escape.ErrUnexpectedEOF},
		{`abc\`, escape.ErrUnexpectedEOF},
		{`\q`, escape.ErrUnrecognizedEscape},
		{`\x41`, escape.ErrUnrecognizedEscape},
		{`\u`, escape.ErrUnexpectedEOF},
		{`\u41`, escape.ErrBadUnicodeEscape},
		{`\u{`, escape.ErrUnexpectedEOF},
		{`\u{41`, escape.ErrUnexpectedEOF},
		{`\u{}`, escape.ErrBadUnicodeEscape},
		{`\u{xyz}`, escape.ErrBadUnicodeEscape},
		{`\u{1234567}`, escape.ErrBadUnicodeEscape},
		{`\u{D800}`, escape.ErrBadUnicodeEscape},
		{`\u{110000}`, escape.ErrBadUnicodeEscape},
	}
	for _, test := range tests {
		if got, err := escape.Unescape(mem.S(test.input)); !errors.Is(err, test.want) {
			t.Errorf("Unescape(%#q): got %#q, %v; want %v", test.input, got, err, test.want)
		}
		if got, err := decodeAll(test.input); !errors.Is(err, test.want) {
			t.Errorf("Decoder(%#q): got %#q, %v; want %v", test.input, got, err, test.want)
		}
	}
}

func TestDecoderSticky(t *testing.T) {
	d := escape.NewDecoder(mem.S(`a\qb`))
	if r, err := d.Next(); err != nil || r != 'a' {
		t.Fatalf("Next: got %q, %v; want 'a', nil", r, err)
	}
	for range 3 {
		if _, err := d.Next(); !errors.Is(err, escape.ErrUnrecognizedEscape) {
			t.Errorf("Next: got %v, want %v", err, escape.ErrUnrecognizedEscape)
		}
	}
}

func TestAppend(t *testing.T) {
	var buf [64]byte
	got, err := escape.Append(buf[:0], mem.S(`x\ty`))
	if err != nil {
		t.Fatalf("Append: unexpected error: %v", err)
	}
	if string(got) != "x\ty" {
		t.Errorf("Append: got %#q, want %#q", got, "x\ty")
	}
	if &got[0] != &buf[0] {
		t.Error("Append did not use the provided buffer")
	}

	// On error, the prefix decoded so far is returned.
	got, err = escape.Append(nil, mem.S(`ab\qcd`))
	if !errors.Is(err, escape.ErrUnrecognizedEscape) {
		t.Errorf("Append: got error %v, want %v", err, escape.ErrUnrecognizedEscape)
	}
	if string(got) != "ab" {
		t.Errorf("Append: got %#q, want %#q", got, "ab")
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"", `""`},
		{" ", `" "`},
		{"a\t\nb", `"a\t\nb"`},
		{"\x00\x01\x7f", `"\u{0}\u{1}\u{7f}"`},
		{`a "b c\" d"`, `"a \"b c\\\" d\""`},
		{"\u2028 \u2029 \u0085", `"\u{2028} \u{2029} \u{85}"`},
		{"snow ☃", `"snow ☃"`},
	}
	for _, test := range tests {
		got := string(escape.Quote(mem.S(test.input)))
		if got != test.want {
			t.Errorf("Input: %#q\nGot:  %#q\nWant: %#q", test.input, got, test.want)
		}

		// Quoting and unquoting should round-trip.
		dec, err := escape.Unescape(mem.S(got[1 : len(got)-1]))
		if err != nil {
			t.Errorf("Unescape(%#q): unexpected error: %v", got, err)
		} else if string(dec) != test.input {
			t.Errorf("Unescape(%#q): got %#q, want %#q", got, dec, test.input)
		}
	}
}
