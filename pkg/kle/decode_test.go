package kle

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/kle/pkg/errors"
)

func mustUnmarshal(t *testing.T, doc string, opts ...Option) *Layout {
	t.Helper()
	l, err := Unmarshal([]byte(doc), opts...)
	require.NoError(t, err)
	return l
}

func legends(k Key) map[int]string {
	out := map[int]string{}
	for i, l := range k.Legends {
		if l != nil {
			out[i] = l.Text
		}
	}
	return out
}

func TestDecodeSingleKeyGeometry(t *testing.T) {
	l := mustUnmarshal(t, `[[{"x":1,"y":2,"w":2,"h":1},"A"]]`)
	require.Len(t, l.Keys, 1)

	k := l.Keys[0]
	assert.Equal(t, 1.0, k.X)
	assert.Equal(t, 2.0, k.Y)
	assert.Equal(t, 2.0, k.Width)
	assert.Equal(t, 1.0, k.Height)
	assert.Equal(t, map[int]string{0: "A"}, legends(k))

	l = mustUnmarshal(t, `[[{"x":1,"y":2,"w":2,"h":1,"a":7},"A"]]`)
	assert.Equal(t, map[int]string{4: "A"}, legends(l.Keys[0]))
}

func TestDecodeDefaults(t *testing.T) {
	l := mustUnmarshal(t, `[["A"]]`)
	require.Len(t, l.Keys, 1)

	k := l.Keys[0]
	assert.Equal(t, DefaultKeyColor, k.Color)
	assert.Equal(t, "#cccccc", k.Color.Hex())
	assert.Equal(t, 1.0, k.Width)
	assert.Equal(t, 1.0, k.Height)
	assert.Equal(t, 1.0, k.Width2)
	assert.Equal(t, 1.0, k.Height2)
	assert.Zero(t, k.Rotation)
	require.NotNil(t, k.Legends[0])
	assert.Equal(t, DefaultLegendSize, k.Legends[0].Size)
	assert.Equal(t, DefaultLegendColor, k.Legends[0].Color)
	assert.Equal(t, DefaultBackgroundColor, l.Meta.BackgroundColor)
}

func TestDecodeDeterministic(t *testing.T) {
	doc := `[
		{"name":"test","backcolor":"#ff0000"},
		[{"r":15,"rx":1,"ry":1,"c":"#00ff00","t":"#ff0000\n#0000ff"},"A\nB",{"w":1.5},"C"],
		[{"a":7,"f":4},"D",{"x":0.25,"g":true},"E"]
	]`
	a := mustUnmarshal(t, doc)
	b := mustUnmarshal(t, doc)
	assert.Equal(t, a, b)
}

func TestDecodeInheritance(t *testing.T) {
	l := mustUnmarshal(t, `[
		[{"c":"#ff0000","w":2,"p":"DCS","sm":"cherry","a":7,"f":5,"g":true},"A",{"x":1},"B"],
		["C"]
	]`)
	require.Len(t, l.Keys, 3)
	a, b, c := l.Keys[0], l.Keys[1], l.Keys[2]

	for _, k := range []Key{b, c} {
		assert.Equal(t, a.Color, k.Color)
		assert.Equal(t, a.Width, k.Width)
		assert.Equal(t, a.Profile, k.Profile)
		assert.Equal(t, a.Switch, k.Switch)
		require.NotNil(t, k.Legends[4])
		assert.Equal(t, 5, k.Legends[4].Size)
		assert.False(t, k.Ghost)
	}
	assert.True(t, a.Ghost)
	assert.Equal(t, 3.0, b.X, "x offset is relative to the end of the previous key")
}

func TestDecodeRowReset(t *testing.T) {
	t.Run("NoRotation", func(t *testing.T) {
		l := mustUnmarshal(t, `[[{"x":2},"A","B"],["C"],[{"y":0.5},"D"]]`)
		require.Len(t, l.Keys, 4)
		assert.Equal(t, 0.0, l.Keys[2].X)
		assert.Equal(t, l.Keys[1].Y+1, l.Keys[2].Y)
		assert.Equal(t, 2.5, l.Keys[3].Y)
	})

	t.Run("RotationOriginIsRowStart", func(t *testing.T) {
		l := mustUnmarshal(t, `[[{"r":15,"rx":1,"ry":2},"A","B"],["C"]]`)
		require.Len(t, l.Keys, 3)
		assert.Equal(t, 1.0, l.Keys[0].X)
		assert.Equal(t, 2.0, l.Keys[0].Y)
		assert.Equal(t, 1.0, l.Keys[2].X)
		assert.Equal(t, 3.0, l.Keys[2].Y)
		assert.Equal(t, 15.0, l.Keys[2].Rotation)
	})
}

func TestDecodeRotationOriginAfterFirstKey(t *testing.T) {
	var logged int
	withOrigin, err := Unmarshal([]byte(`[[{"r":10},"A",{"rx":5,"ry":5},"B"]]`),
		WithLogger(func(string, ...any) { logged++ }))
	require.NoError(t, err)
	without := mustUnmarshal(t, `[[{"r":10},"A","B"]]`)

	assert.Equal(t, without.Keys, withOrigin.Keys)
	assert.Equal(t, 1, logged)
}

func TestDecodeAlignmentRemap(t *testing.T) {
	l := mustUnmarshal(t, `[[{"a":0},"X\nY",{"a":5},"X\nY",{"a":6},"X\n\nY"]]`)
	require.Len(t, l.Keys, 3)
	assert.Equal(t, map[int]string{0: "X", 6: "Y"}, legends(l.Keys[0]))
	assert.Equal(t, map[int]string{1: "X", 7: "Y"}, legends(l.Keys[1]))
	assert.Equal(t, map[int]string{3: "X", 5: "Y"}, legends(l.Keys[2]))

	_, err := Unmarshal([]byte(`[[{"a":7},"X\nY"]]`))
	assert.True(t, errors.Is(err, errors.ErrCodeTooManyLegends))
}

func TestDecodeMetadata(t *testing.T) {
	l := mustUnmarshal(t, `[
		{
			"backcolor":"#000000","name":"Sixty","author":"me","radii":"6px",
			"background":{"name":"Carbon","style":"background-image: url('carbon.png')"},
			"switchMount":"cherry","switchBrand":"gateron","switchType":"G-yellow",
			"plate":true,"pcb":false,"notes":"hi","css":".x{}","version":2
		},
		["Esc"]
	]`)
	m := l.Meta
	assert.Equal(t, Color{0, 0, 0, 255}, m.BackgroundColor)
	assert.Equal(t, "Sixty", m.Name)
	assert.Equal(t, "me", m.Author)
	assert.Equal(t, "6px", m.Radii)
	assert.Equal(t, Background{Name: "Carbon", Style: "background-image: url('carbon.png')"}, m.Background)
	assert.Equal(t, Switch{Mount: "cherry", Brand: "gateron", Type: "G-yellow"}, m.Switch)
	assert.True(t, m.PlateMount)
	assert.False(t, m.PCBMount)
	assert.Equal(t, "hi", m.Notes)
	assert.Equal(t, ".x{}", m.Raw["css"])
	assert.Equal(t, 2.0, m.Raw["version"])
	assert.Equal(t, "Sixty", m.Raw["name"])
	assert.NotContains(t, m.Raw, "background")
	require.Len(t, l.Keys, 1)
	assert.Equal(t, 0.0, l.Keys[0].Y, "metadata does not occupy a row")
}

func TestDecodeEmpty(t *testing.T) {
	l := mustUnmarshal(t, `[]`)
	assert.Empty(t, l.Keys)
	assert.NotNil(t, l.Keys)
	assert.Equal(t, DefaultMetadata(), l.Meta)
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		code  errors.Code
		row   int
		item  int
		field string
	}{
		{"BareNumberItem", `[[42]]`, errors.ErrCodeUnexpectedItemType, 0, 0, ""},
		{"NullItem", `[["A",null]]`, errors.ErrCodeUnexpectedItemType, 0, 1, ""},
		{"NestedArrayItem", `[[["A"]]]`, errors.ErrCodeUnexpectedItemType, 0, 0, ""},
		{"ZeroWidth", `[[{"w":0},"A"]]`, errors.ErrCodeInvalidSize, 0, 0, "w"},
		{"NegativeHeight", `[["A",{"h":-1},"B"]]`, errors.ErrCodeInvalidSize, 0, 1, "h"},
		{"AlignmentOutOfRange", `[[{"a":8},"A"]]`, errors.ErrCodeInvalidAlignment, 0, 0, "a"},
		{"AlignmentFraction", `[[{"a":2.5},"A"]]`, errors.ErrCodeInvalidAlignment, 0, 0, "a"},
		{"TooManyLegends", `[[{"a":7},"A\nB\nC\nD\nE\nF"]]`, errors.ErrCodeTooManyLegends, 0, 1, ""},
		{"BadKeyColor", `[[{"c":"nope"},"A"]]`, errors.ErrCodeInvalidColor, 0, 0, "c"},
		{"BadLegendColor", `[["A"],[{"t":"#000\nnope"},"B"]]`, errors.ErrCodeInvalidColor, 1, 0, "t"},
		{"BadBackColor", `[{"backcolor":"nope"}]`, errors.ErrCodeInvalidColor, 0, -1, "backcolor"},
		{"WrongPropertyType", `[[{"w":"2"},"A"]]`, errors.ErrCodeMalformedInput, 0, 0, "w"},
		{"WrongMetadataType", `[{"name":3}]`, errors.ErrCodeMalformedInput, 0, -1, "name"},
		{"NotAnArray", `{"name":"x"}`, errors.ErrCodeMalformedInput, -1, -1, ""},
		{"RowIsNumber", `[["A"],7]`, errors.ErrCodeMalformedInput, 1, -1, ""},
		{"LateMetadata", `[["A"],{"name":"x"}]`, errors.ErrCodeMalformedInput, 1, -1, ""},
		{"InvalidJSON", `[["A"]`, errors.ErrCodeMalformedInput, -1, -1, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := Unmarshal([]byte(tt.doc))
			require.Error(t, err)
			assert.Nil(t, l, "no partial layout")

			var de *DecodeError
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.code, de.Kind)
			assert.Equal(t, tt.row, de.Row, "row")
			assert.Equal(t, tt.item, de.Item, "item")
			assert.Equal(t, tt.field, de.Field, "field")
			assert.True(t, errors.Is(err, tt.code))
			assert.True(t, errors.IsDecodeCode(errors.GetCode(err)))
		})
	}
}

func TestDecodeErrorMessage(t *testing.T) {
	_, err := Unmarshal([]byte(`[["A",{"w":0}]]`))
	require.Error(t, err)
	assert.Equal(t, `INVALID_SIZE at row 0, item 1 (field "w"): size must be positive, got 0`, err.Error())

	_, err = Unmarshal([]byte(`[[42]]`))
	assert.Contains(t, err.Error(), "got number")
}

func TestDecodeTokenizedTree(t *testing.T) {
	var doc any
	require.NoError(t, json.Unmarshal([]byte(`[["A","B"]]`), &doc))
	l, err := Decode(doc)
	require.NoError(t, err)
	require.Len(t, l.Keys, 2)
	assert.Equal(t, 1.0, l.Keys[1].X)

	l, err = Decode([]any{[]any{map[string]any{"w": 2}, "A", "B"}})
	require.NoError(t, err)
	assert.Equal(t, 2.0, l.Keys[1].X)
}

func TestDecodeEditorCarry(t *testing.T) {
	doc := `[[{"w":2,"n":true},"A","B"]]`

	l := mustUnmarshal(t, doc)
	assert.Equal(t, 2.0, l.Keys[1].Width)
	assert.True(t, l.Keys[1].Homing)

	l = mustUnmarshal(t, doc, WithEditorCarry())
	assert.Equal(t, 1.0, l.Keys[1].Width)
	assert.False(t, l.Keys[1].Homing)
	assert.Equal(t, 2.0, l.Keys[1].X)
}

func TestDecodeLoggerReportsUnknownProperties(t *testing.T) {
	var keys []any
	_, err := Unmarshal([]byte(`[[{"zz":1},"A"]]`), WithLogger(func(msg string, args ...any) {
		keys = append(keys, args...)
	}))
	require.NoError(t, err)
	assert.Equal(t, []any{"key", "zz"}, keys)
}
