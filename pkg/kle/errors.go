package kle

import (
	"fmt"
	"strings"

	"github.com/matzehuels/kle/pkg/errors"
)

// DecodeError reports why a raw document was rejected.
//
// Row and Item locate the offending value: Row is the index of the element in
// the top-level document array and Item the index within that row. Either is
// -1 when it does not apply (for example, a document that is not an array).
type DecodeError struct {
	Kind  errors.Code // one of the decode codes in pkg/errors
	Row   int
	Item  int
	Field string // property name, when a single property is at fault
	Value any    // offending raw value
	Msg   string
	Err   error // underlying parser error, if any
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	switch {
	case e.Row >= 0 && e.Item >= 0:
		fmt.Fprintf(&b, " at row %d, item %d", e.Row, e.Item)
	case e.Row >= 0:
		fmt.Fprintf(&b, " at row %d", e.Row)
	}
	if e.Field != "" {
		fmt.Fprintf(&b, " (field %q)", e.Field)
	}
	if e.Msg != "" {
		b.WriteString(": ")
		b.WriteString(e.Msg)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

// Code returns the error's kind, so errors.Is and errors.GetCode see it.
func (e *DecodeError) Code() errors.Code { return e.Kind }

func (e *DecodeError) Unwrap() error { return e.Err }

// locate fills in the row and item index of a decode error raised by a helper
// that does not know where it was called from. Other errors pass through.
func locate(err error, row, item int) error {
	de, ok := err.(*DecodeError)
	if !ok {
		return err
	}
	if de.Row < 0 {
		de.Row = row
	}
	if de.Item < 0 {
		de.Item = item
	}
	return de
}

// withField records the property that caused err, unless one is already set.
func withField(err error, field string) error {
	if de, ok := err.(*DecodeError); ok && de.Field == "" {
		de.Field = field
	}
	return err
}

func newDecodeError(kind errors.Code, row, item int, value any, format string, args ...any) *DecodeError {
	return &DecodeError{
		Kind:  kind,
		Row:   row,
		Item:  item,
		Value: value,
		Msg:   fmt.Sprintf(format, args...),
	}
}

// jsonType names the JSON type of a tokenized value for diagnostics.
func jsonType(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	case float64, float32, int, int64, int32, uint, uint64, uint32:
		return "number"
	default:
		if _, ok := v.(interface{ Float64() (float64, error) }); ok {
			return "number"
		}
		return fmt.Sprintf("%T", v)
	}
}
