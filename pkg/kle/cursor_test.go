package kle

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/kle/pkg/errors"
)

func mustProps(t *testing.T, obj map[string]any) properties {
	t.Helper()
	p, err := parseProperties(obj)
	require.NoError(t, err)
	return p
}

func TestParseProperties(t *testing.T) {
	p := mustProps(t, map[string]any{
		"x": 1.0, "w": 2, "a": int64(7), "c": "#ff0000", "g": true, "fa": []any{1.0, 0.0, 4.0},
		"zzz": 1.0, "aaa": "x",
	})
	require.NotNil(t, p.x)
	assert.Equal(t, 1.0, *p.x)
	assert.Equal(t, 2.0, *p.w)
	assert.Equal(t, 7.0, *p.a)
	assert.Equal(t, "#ff0000", *p.c)
	assert.True(t, *p.g)
	assert.Equal(t, []float64{1, 0, 4}, *p.fa)
	assert.Nil(t, p.y)
	assert.Nil(t, p.h)
	assert.Equal(t, []string{"aaa", "zzz"}, p.unknown)
	assert.False(t, p.hasRotation())
}

func TestParsePropertiesTypeErrors(t *testing.T) {
	tests := []struct {
		name string
		obj  map[string]any
	}{
		{"StringForNumber", map[string]any{"w": "2"}},
		{"NumberForString", map[string]any{"c": 1.0}},
		{"NumberForBool", map[string]any{"g": 1.0}},
		{"ObjectForArray", map[string]any{"fa": map[string]any{}}},
		{"StringInArray", map[string]any{"fa": []any{"3"}}},
		{"ArrayTooLong", map[string]any{"fa": []any{1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0, 1.0}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseProperties(tt.obj)
			require.Error(t, err)
			assert.Equal(t, errors.ErrCodeMalformedInput, errors.GetCode(err))
		})
	}
}

func TestCursorLeavesAbsentFieldsUntouched(t *testing.T) {
	c := newCursor(newOptions(nil))
	require.NoError(t, c.applyProperties(mustProps(t, map[string]any{
		"w": 2.0, "h": 1.5, "c": "red", "p": "DSA", "a": 7.0, "f": 5.0, "sm": "alps", "n": true,
	})))
	before := *c

	require.NoError(t, c.applyProperties(mustProps(t, map[string]any{})))
	assert.Equal(t, before.w, c.w)
	assert.Equal(t, before.h, c.h)
	assert.Equal(t, before.color, c.color)
	assert.Equal(t, before.profile, c.profile)
	assert.Equal(t, before.align, c.align)
	assert.Equal(t, before.sizeDefault, c.sizeDefault)
	assert.Equal(t, before.sw, c.sw)
	assert.Equal(t, before.homing, c.homing)
}

func TestCursorOffsetsAreRelative(t *testing.T) {
	c := newCursor(newOptions(nil))
	require.NoError(t, c.applyProperties(mustProps(t, map[string]any{"x": 0.5, "y": 0.25})))
	require.NoError(t, c.applyProperties(mustProps(t, map[string]any{"x": 0.5})))
	assert.Equal(t, 1.0, c.x)
	assert.Equal(t, 0.25, c.y)
}

func TestCursorSnapshotAdvances(t *testing.T) {
	c := newCursor(newOptions(nil))
	require.NoError(t, c.applyProperties(mustProps(t, map[string]any{"w": 1.25})))

	k, err := c.snapshot("A")
	require.NoError(t, err)
	assert.Equal(t, 0.0, k.X)
	assert.Equal(t, 1.25, k.Width)
	assert.Equal(t, 1.25, k.Width2)
	assert.Equal(t, 1.0, k.Height2)
	assert.Equal(t, 1.25, c.x)
}

func TestCursorResetsSingleKeyFields(t *testing.T) {
	props := map[string]any{
		"w": 1.5, "x2": -0.25, "y2": 0.0, "w2": 1.5, "h2": 2.0,
		"d": true, "g": true, "l": true, "n": true,
	}

	t.Run("Default", func(t *testing.T) {
		c := newCursor(newOptions(nil))
		require.NoError(t, c.applyProperties(mustProps(t, props)))
		k, err := c.snapshot("A")
		require.NoError(t, err)
		assert.True(t, k.Decal && k.Ghost && k.Stepped && k.Homing)
		assert.Equal(t, -0.25, k.X2)
		assert.Equal(t, 2.0, k.Height2)

		k, err = c.snapshot("B")
		require.NoError(t, err)
		assert.False(t, k.Decal)
		assert.False(t, k.Ghost)
		assert.False(t, k.Stepped)
		assert.True(t, k.Homing)
		assert.Equal(t, 1.5, k.Width)
		assert.Equal(t, 0.0, k.X2)
		assert.Equal(t, 1.5, k.Width2)
		assert.Equal(t, 1.0, k.Height2)
	})

	t.Run("EditorCarry", func(t *testing.T) {
		c := newCursor(newOptions([]Option{WithEditorCarry()}))
		require.NoError(t, c.applyProperties(mustProps(t, props)))
		_, err := c.snapshot("A")
		require.NoError(t, err)

		k, err := c.snapshot("B")
		require.NoError(t, err)
		assert.False(t, k.Decal)
		assert.True(t, k.Ghost)
		assert.False(t, k.Stepped)
		assert.False(t, k.Homing)
		assert.Equal(t, 1.0, k.Width)
		assert.Equal(t, 1.0, k.Width2)
		assert.Equal(t, 1.5, k.X)
	})
}

func TestCursorRotationOrigin(t *testing.T) {
	var logged []string
	c := newCursor(newOptions([]Option{WithLogger(func(msg string, _ ...any) {
		logged = append(logged, msg)
	})}))

	require.NoError(t, c.applyProperties(mustProps(t, map[string]any{"r": 30.0, "rx": 2.0, "ry": 3.0})))
	assert.Equal(t, 2.0, c.x)
	assert.Equal(t, 3.0, c.y)

	k, err := c.snapshot("A")
	require.NoError(t, err)
	assert.Equal(t, 30.0, k.Rotation)
	assert.Equal(t, 2.0, k.RX)

	require.NoError(t, c.applyProperties(mustProps(t, map[string]any{"rx": 9.0, "ry": 9.0})))
	assert.Equal(t, 2.0, c.rx)
	assert.Equal(t, 3.0, c.ry)
	assert.Equal(t, 3.0, c.x)
	require.Len(t, logged, 1)

	c.endRow()
	c.beginRow()
	assert.Equal(t, 2.0, c.x)
	assert.Equal(t, 4.0, c.y)
	require.NoError(t, c.applyProperties(mustProps(t, map[string]any{"rx": 9.0})))
	assert.Equal(t, 9.0, c.rx)
	assert.Equal(t, 9.0, c.x)
	assert.Equal(t, 3.0, c.y)
}

func TestCursorInvalidSize(t *testing.T) {
	for _, field := range []string{"w", "h", "w2", "h2"} {
		for _, v := range []float64{0, -1} {
			c := newCursor(newOptions(nil))
			err := c.applyProperties(mustProps(t, map[string]any{field: v}))
			var de *DecodeError
			require.ErrorAs(t, err, &de, "%s=%v", field, v)
			assert.Equal(t, errors.ErrCodeInvalidSize, de.Kind)
			assert.Equal(t, field, de.Field)
		}
	}
}

func TestCursorLegendSizes(t *testing.T) {
	tests := []struct {
		name  string
		props []map[string]any
		text  string
		align float64
		want  map[int]int
	}{
		{
			name: "Default",
			text: "A\nB",
			want: map[int]int{0: 3, 6: 3},
		},
		{
			name:  "F",
			props: []map[string]any{{"f": 5.0}},
			text:  "A\nB",
			want:  map[int]int{0: 5, 6: 5},
		},
		{
			name:  "F2AppliesAfterFirstLine",
			props: []map[string]any{{"f": 4.0, "f2": 2.0}},
			text:  "A\nB",
			want:  map[int]int{0: 4, 6: 2},
		},
		{
			name:  "FAByPosition",
			props: []map[string]any{{"fa": []any{0.0, 6.0}}},
			text:  "A\nB",
			want:  map[int]int{0: 3, 6: 6},
		},
		{
			name:  "FResetsFA",
			props: []map[string]any{{"fa": []any{7.0, 7.0}}, {"f": 2.0}},
			text:  "A\nB",
			want:  map[int]int{0: 2, 6: 2},
		},
		{
			name:  "Clamped",
			props: []map[string]any{{"fa": []any{20.0, -3.0}}},
			text:  "A\nB",
			want:  map[int]int{0: 9, 6: 1},
		},
		{
			name:  "RealignedToSlots",
			props: []map[string]any{{"a": 7.0, "fa": []any{0.0, 0.0, 0.0, 0.0, 2.0}}},
			text:  "A\n\n\n\nfn",
			want:  map[int]int{4: 3, 10: 2},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCursor(newOptions(nil))
			for _, p := range tt.props {
				require.NoError(t, c.applyProperties(mustProps(t, p)))
			}
			k, err := c.snapshot(tt.text)
			require.NoError(t, err)
			for slot, size := range tt.want {
				require.NotNil(t, k.Legends[slot], "slot %d", slot)
				assert.Equal(t, size, k.Legends[slot].Size, "slot %d", slot)
			}
		})
	}
}

func TestCursorLegendColors(t *testing.T) {
	red := Color{255, 0, 0, 255}
	blue := Color{0, 0, 255, 255}

	c := newCursor(newOptions(nil))
	k, err := c.snapshot("A")
	require.NoError(t, err)
	assert.Equal(t, DefaultLegendColor, k.Legends[0].Color)

	require.NoError(t, c.applyProperties(mustProps(t, map[string]any{"t": "#ff0000\n#0000ff"})))
	k, err = c.snapshot("A\nB\nC")
	require.NoError(t, err)
	assert.Equal(t, red, k.Legends[0].Color)
	assert.Equal(t, blue, k.Legends[6].Color)
	assert.Equal(t, blue, k.Legends[2].Color, "position past last color reuses it")

	require.NoError(t, c.applyProperties(mustProps(t, map[string]any{"t": ""})))
	k, err = c.snapshot("A")
	require.NoError(t, err)
	assert.Equal(t, red, k.Legends[0].Color, "empty token leaves colors untouched")
}
