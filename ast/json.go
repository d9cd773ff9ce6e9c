// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package ast

import (
	"encoding/json"
	"math"

	"github.com/creachadair/kdl"
)

// MarshalJSON encodes n as a JSON object with fields "name", "props",
// "values", and "children". Empty fields are omitted. Properties are encoded
// as an object whose keys are in source order.
func (n *Node) MarshalJSON() ([]byte, error) {
	buf := []byte(`{"name":`)
	buf, err := appendJSON(buf, n.Name)
	if err != nil {
		return nil, err
	}
	if len(n.Props) != 0 {
		buf = append(buf, `,"props":{`...)
		for i, p := range n.Props {
			if i > 0 {
				buf = append(buf, ',')
			}
			if buf, err = appendJSON(buf, p.Key); err != nil {
				return nil, err
			}
			buf = append(buf, ':')
			if buf, err = appendJSON(buf, p.Value); err != nil {
				return nil, err
			}
		}
		buf = append(buf, '}')
	}
	if len(n.Values) != 0 {
		buf = append(buf, `,"values":`...)
		if buf, err = appendJSON(buf, n.Values); err != nil {
			return nil, err
		}
	}
	if len(n.Children) != 0 {
		buf = append(buf, `,"children":`...)
		if buf, err = appendJSON(buf, n.Children); err != nil {
			return nil, err
		}
	}
	return append(buf, '}'), nil
}

// MarshalJSON encodes v as a JSON value. A value with a type annotation is
// encoded as an object {"type": T, "value": V}. Non-finite floats are encoded
// as strings.
func (v Value) MarshalJSON() ([]byte, error) {
	var plain any
	switch v.Kind() {
	case kdl.KindString:
		plain = v.Text()
	case kdl.KindInt:
		plain, _ = v.AsInt()
	case kdl.KindFloat:
		f, _ := v.AsFloat()
		if math.IsInf(f, 0) || math.IsNaN(f) {
			plain = v.Value.String()
		} else {
			plain = f
		}
	case kdl.KindBool:
		plain, _ = v.AsBool()
	}
	if v.Type != "" {
		return json.Marshal(struct {
			Type  string `json:"type"`
			Value any    `json:"value"`
		}{v.Type, plain})
	}
	return json.Marshal(plain)
}

func appendJSON(buf []byte, v any) ([]byte, error) {
	bits, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return append(buf, bits...), nil
}
