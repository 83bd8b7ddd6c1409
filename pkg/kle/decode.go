package kle

import (
	"encoding/json"

	"github.com/matzehuels/kle/pkg/errors"
)

// decodeState is the position of the row/item decoder in the document.
type decodeState int

const (
	stateBetweenRows decodeState = iota
	stateInRow
	stateDone
)

func (s decodeState) String() string {
	switch s {
	case stateBetweenRows:
		return "between rows"
	case stateInRow:
		return "in row"
	case stateDone:
		return "done"
	}
	return "unknown"
}

// decoder runs one decode pass over a tokenized document.
type decoder struct {
	cur   *cursor
	state decodeState
	out   Layout
}

// Unmarshal tokenizes a raw editor document and decodes it.
// JSON syntax errors are reported as MALFORMED_INPUT.
func Unmarshal(data []byte, opts ...Option) (*Layout, error) {
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &DecodeError{
			Kind: errors.ErrCodeMalformedInput,
			Row:  -1,
			Item: -1,
			Msg:  "invalid JSON",
			Err:  err,
		}
	}
	return Decode(doc, opts...)
}

// Decode decodes an already-tokenized raw document, as produced by
// json.Unmarshal into an any. The document must be an array; an object at
// index 0 holds the layout metadata and every other element is a row array.
//
// The first error aborts the decode and is returned as a *DecodeError; a
// partial layout is never returned.
func Decode(doc any, opts ...Option) (*Layout, error) {
	rows, ok := doc.([]any)
	if !ok {
		return nil, newDecodeError(errors.ErrCodeMalformedInput, -1, -1, doc,
			"document must be an array, got %s", jsonType(doc))
	}

	d := &decoder{
		cur:   newCursor(newOptions(opts)),
		state: stateBetweenRows,
		out:   Layout{Meta: DefaultMetadata()},
	}
	for i, el := range rows {
		if err := d.element(i, el); err != nil {
			return nil, err
		}
	}
	d.state = stateDone
	if d.out.Keys == nil {
		d.out.Keys = []Key{}
	}
	return &d.out, nil
}

// element handles one top-level element of the document.
func (d *decoder) element(i int, el any) error {
	switch v := el.(type) {
	case []any:
		return d.row(i, v)
	case map[string]any:
		if i != 0 {
			return newDecodeError(errors.ErrCodeMalformedInput, i, -1, v,
				"metadata object must be the first element of the document")
		}
		meta, err := decodeMetadata(v)
		if err != nil {
			return locate(err, i, -1)
		}
		d.out.Meta = meta
		return nil
	default:
		return newDecodeError(errors.ErrCodeMalformedInput, i, -1, el,
			"expected row array, got %s", jsonType(el))
	}
}

// row decodes the items of a single row.
func (d *decoder) row(i int, items []any) error {
	d.state = stateInRow
	d.cur.beginRow()

	for j, item := range items {
		switch v := item.(type) {
		case map[string]any:
			p, err := parseProperties(v)
			if err != nil {
				return locate(err, i, j)
			}
			if err := d.cur.applyProperties(p); err != nil {
				return locate(err, i, j)
			}
		case string:
			k, err := d.cur.snapshot(v)
			if err != nil {
				return locate(err, i, j)
			}
			d.out.Keys = append(d.out.Keys, k)
		default:
			return newDecodeError(errors.ErrCodeUnexpectedItemType, i, j, item,
				"expected legend string or property object, got %s", jsonType(item))
		}
	}

	d.cur.endRow()
	d.state = stateBetweenRows
	return nil
}
