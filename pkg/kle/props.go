package kle

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/matzehuels/kle/pkg/errors"
)

// properties is a decoded property object. Every field is optional: a nil
// pointer means the key was absent and the cursor keeps its current value.
type properties struct {
	r, rx, ry *float64

	a  *float64
	f  *float64
	f2 *float64
	fa *[]float64 // nil slice inside means "fa": null
	p  *string
	c  *string
	t  *string

	x, y, w, h     *float64
	x2, y2, w2, h2 *float64

	n, l, d, g *bool
	sm, sb, st *string

	// unknown lists keys without a meaning in the raw format, sorted.
	unknown []string
}

// parseProperties decodes obj field by field. Numbers may be float64 (as
// produced by encoding/json), json.Number or a Go integer type; booleans must
// be JSON booleans and strings must be JSON strings. A field of the wrong type
// is MALFORMED_INPUT.
func parseProperties(obj map[string]any) (properties, error) {
	var p properties
	for k, v := range obj {
		var err error
		switch k {
		case "r":
			p.r, err = numberField(k, v)
		case "rx":
			p.rx, err = numberField(k, v)
		case "ry":
			p.ry, err = numberField(k, v)
		case "a":
			p.a, err = numberField(k, v)
		case "f":
			p.f, err = numberField(k, v)
		case "f2":
			p.f2, err = numberField(k, v)
		case "fa":
			p.fa, err = numberArrayField(k, v)
		case "p":
			p.p, err = stringField(k, v)
		case "c":
			p.c, err = stringField(k, v)
		case "t":
			p.t, err = stringField(k, v)
		case "x":
			p.x, err = numberField(k, v)
		case "y":
			p.y, err = numberField(k, v)
		case "w":
			p.w, err = numberField(k, v)
		case "h":
			p.h, err = numberField(k, v)
		case "x2":
			p.x2, err = numberField(k, v)
		case "y2":
			p.y2, err = numberField(k, v)
		case "w2":
			p.w2, err = numberField(k, v)
		case "h2":
			p.h2, err = numberField(k, v)
		case "n":
			p.n, err = boolField(k, v)
		case "l":
			p.l, err = boolField(k, v)
		case "d":
			p.d, err = boolField(k, v)
		case "g":
			p.g, err = boolField(k, v)
		case "sm":
			p.sm, err = stringField(k, v)
		case "sb":
			p.sb, err = stringField(k, v)
		case "st":
			p.st, err = stringField(k, v)
		default:
			p.unknown = append(p.unknown, k)
		}
		if err != nil {
			return properties{}, err
		}
	}
	sort.Strings(p.unknown)
	return p, nil
}

// hasRotation reports whether the object sets any rotation field.
func (p *properties) hasRotation() bool {
	return p.r != nil || p.rx != nil || p.ry != nil
}

// toFloat converts a tokenized JSON number.
func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case int32:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	}
	return 0, false
}

func fieldError(field string, v any, want string) *DecodeError {
	return &DecodeError{
		Kind:  errors.ErrCodeMalformedInput,
		Row:   -1,
		Item:  -1,
		Field: field,
		Value: v,
		Msg:   fmt.Sprintf("expected %s, got %s", want, jsonType(v)),
	}
}

func numberField(field string, v any) (*float64, error) {
	f, ok := toFloat(v)
	if !ok {
		return nil, fieldError(field, v, "number")
	}
	return &f, nil
}

func stringField(field string, v any) (*string, error) {
	s, ok := v.(string)
	if !ok {
		return nil, fieldError(field, v, "string")
	}
	return &s, nil
}

func boolField(field string, v any) (*bool, error) {
	b, ok := v.(bool)
	if !ok {
		return nil, fieldError(field, v, "boolean")
	}
	return &b, nil
}

func numberArrayField(field string, v any) (*[]float64, error) {
	if v == nil {
		var empty []float64
		return &empty, nil
	}
	arr, ok := v.([]any)
	if !ok {
		return nil, fieldError(field, v, "array of numbers")
	}
	if len(arr) > NumLegends {
		return nil, &DecodeError{
			Kind:  errors.ErrCodeMalformedInput,
			Row:   -1,
			Item:  -1,
			Field: field,
			Value: v,
			Msg:   fmt.Sprintf("%d legend sizes given, at most %d allowed", len(arr), NumLegends),
		}
	}
	out := make([]float64, len(arr))
	for i, e := range arr {
		f, ok := toFloat(e)
		if !ok {
			return nil, fieldError(field, v, "array of numbers")
		}
		out[i] = f
	}
	return &out, nil
}
