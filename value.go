// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package kdl

import (
	"math"
	"strconv"

	"go4.org/mem"
)

// ValueKind identifies the type of a Value.
type ValueKind byte

// Constants defining the valid ValueKind values.
const (
	KindNull ValueKind = iota
	KindString
	KindInt
	KindFloat
	KindBool
)

var valueKindStr = [...]string{
	KindNull:   "null",
	KindString: "string",
	KindInt:    "integer",
	KindFloat:  "float",
	KindBool:   "bool",
}

func (k ValueKind) String() string {
	if int(k) >= len(valueKindStr) {
		return "invalid"
	}
	return valueKindStr[k]
}

// A Value is a KDL value: a string, integer, float, Boolean, or null.
// The zero Value is null.
type Value struct {
	kind ValueKind
	str  String
	bits uint64 // integer, float, and Boolean payloads
}

// Str returns a string Value.
func Str(s String) Value { return Value{kind: KindString, str: s} }

// Int returns an integer Value.
func Int(v int64) Value { return Value{kind: KindInt, bits: uint64(v)} }

// Float returns a floating-point Value.
func Float(v float64) Value { return Value{kind: KindFloat, bits: math.Float64bits(v)} }

// Bool returns a Boolean Value.
func Bool(v bool) Value {
	if v {
		return Value{kind: KindBool, bits: 1}
	}
	return Value{kind: KindBool}
}

// Null returns the null Value.
func Null() Value { return Value{} }

// Kind reports the type of v.
func (v Value) Kind() ValueKind { return v.kind }

// IsNull reports whether v is null.
func (v Value) IsNull() bool { return v.kind == KindNull }

// AsString reports whether v is a string, and if so returns its value.
func (v Value) AsString() (String, bool) { return v.str, v.kind == KindString }

// AsInt reports whether v is an integer, and if so returns its value.
func (v Value) AsInt() (int64, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return int64(v.bits), true
}

// AsFloat reports whether v is a float, and if so returns its value.
func (v Value) AsFloat() (float64, bool) {
	if v.kind != KindFloat {
		return 0, false
	}
	return math.Float64frombits(v.bits), true
}

// AsBool reports whether v is a Boolean, and if so returns its value.
func (v Value) AsBool() (bool, bool) { return v.bits != 0, v.kind == KindBool }

// Equal reports whether v and w are the same value. Strings are compared by
// their unescaped text.
func (v Value) Equal(w Value) bool {
	if v.kind != w.kind {
		return false
	}
	switch v.kind {
	case KindString:
		return v.str.Equal(w.str)
	case KindFloat:
		return math.Float64frombits(v.bits) == math.Float64frombits(w.bits)
	}
	return v.bits == w.bits
}

// String renders v as a KDL literal. KDL has no literal for a non-finite
// float, so those render as "+Inf", "-Inf" or "NaN" for display only; the
// lexer does not accept that text.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return v.str.Quote()
	case KindInt:
		return strconv.FormatInt(int64(v.bits), 10)
	case KindFloat:
		f := math.Float64frombits(v.bits)
		s := strconv.FormatFloat(f, 'g', -1, 64)
		if !math.IsInf(f, 0) && !math.IsNaN(f) && isIntegral(s) {
			s += ".0" // keep the literal a float
		}
		return s
	case KindBool:
		return strconv.FormatBool(v.bits != 0)
	}
	return "null"
}

func isIntegral(s string) bool {
	for _, c := range s {
		if c == '.' || c == 'e' || c == 'E' {
			return false
		}
	}
	return true
}

// A TypedValue is a Value with an optional type annotation.
type TypedValue struct {
	Type  mem.RO // the type annotation, empty if none
	Value Value
}

// HasType reports whether tv has a type annotation.
func (tv TypedValue) HasType() bool { return tv.Type.Len() != 0 }

// Equal reports whether tv and uv have equal values. Type annotations are not
// considered.
func (tv TypedValue) Equal(uv TypedValue) bool { return tv.Value.Equal(uv.Value) }

// String renders tv as a KDL literal, with its annotation if it has one.
func (tv TypedValue) String() string {
	if tv.HasType() {
		return "(" + tv.Type.StringCopy() + ")" + tv.Value.String()
	}
	return tv.Value.String()
}

// A Property is a key=value pair attached to a node.
type Property struct {
	Key   String
	Value TypedValue
}

// Equal reports whether p and q have equal keys and values.
func (p Property) Equal(q Property) bool {
	return p.Key.Equal(q.Key) && p.Value.Equal(q.Value)
}

// String renders p as key=value.
func (p Property) String() string {
	return p.Key.String() + "=" + p.Value.String()
}
