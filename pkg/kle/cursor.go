package kle

import (
	"fmt"
	"math"

	"github.com/matzehuels/kle/pkg/errors"
)

// cursor accumulates the inherited key attributes during a decode pass. It is
// owned by exactly one decode and mutated in document order.
type cursor struct {
	x, y float64
	w, h float64

	// Secondary rectangle. w2 and h2 are zero until set, meaning "same as
	// the primary size".
	x2, y2 float64
	w2, h2 float64

	r      float64
	rx, ry float64

	// Rotation origin fields are honored only until the first key of a row.
	originOpen bool

	align Alignment

	// Legend sizes and colors indexed by legend line position, not slot;
	// they are realigned to slots when a key is built. A zero size means the
	// default size.
	sizeDefault  int
	sizes        [NumLegends]int
	colorDefault Color
	colors       [NumLegends]Color
	colorsSet    bool

	color   Color
	profile string
	sw      Switch

	ghost, decal, stepped, homing bool

	editorCarry bool
	logf        func(msg string, args ...any)
}

func newCursor(o options) *cursor {
	return &cursor{
		w:            1,
		h:            1,
		originOpen:   true,
		align:        DefaultAlignment,
		sizeDefault:  DefaultLegendSize,
		colorDefault: DefaultLegendColor,
		color:        DefaultKeyColor,
		editorCarry:  o.editorCarry,
		logf:         o.logger,
	}
}

// applyProperties merges a property object into the cursor. Rotation fields
// are applied first so that x and y offsets are relative to a new origin.
func (c *cursor) applyProperties(p properties) error {
	for _, k := range p.unknown {
		c.logf("ignoring unknown property", "key", k)
	}
	if err := c.applyRotation(p); err != nil {
		return err
	}
	return c.mergeProperties(p)
}

// applyRotation handles r, rx and ry. A rotation origin given after the first
// key of a row is ignored.
func (c *cursor) applyRotation(p properties) error {
	if p.r != nil {
		c.r = *p.r
	}
	if p.rx == nil && p.ry == nil {
		return nil
	}
	if !c.originOpen {
		c.logf("ignoring rotation origin after first key of row", "rx", deref(p.rx), "ry", deref(p.ry))
		return nil
	}
	if p.rx != nil {
		c.rx = *p.rx
	}
	if p.ry != nil {
		c.ry = *p.ry
	}
	c.x, c.y = c.rx, c.ry
	return nil
}

// mergeProperties copies every present field into the cursor and leaves every
// absent field untouched.
func (c *cursor) mergeProperties(p properties) error {
	if p.a != nil {
		a, err := checkAlignment(*p.a)
		if err != nil {
			return err
		}
		c.align = a
	}

	if p.f != nil {
		c.sizeDefault = legendSize(*p.f, DefaultLegendSize)
		c.sizes = [NumLegends]int{}
	}
	if p.f2 != nil {
		s := legendSize(*p.f2, c.sizeDefault)
		for i := 1; i < NumLegends; i++ {
			c.sizes[i] = s
		}
	}
	if p.fa != nil {
		c.sizes = [NumLegends]int{}
		for i, v := range *p.fa {
			if v != 0 {
				c.sizes[i] = legendSize(v, c.sizeDefault)
			}
		}
	}

	if p.p != nil {
		c.profile = *p.p
	}
	if p.c != nil && *p.c != "" {
		col, err := ResolveColor(*p.c, c.color)
		if err != nil {
			return withField(err, "c")
		}
		c.color = col
	}
	if p.t != nil && *p.t != "" {
		def, colors, err := resolveLegendColors(*p.t, c.colorDefault)
		if err != nil {
			return withField(err, "t")
		}
		c.colorDefault = def
		c.colors = colors
		c.colorsSet = true
	}

	if p.x != nil {
		c.x += *p.x
	}
	if p.y != nil {
		c.y += *p.y
	}
	if p.w != nil {
		if err := checkSize("w", *p.w); err != nil {
			return err
		}
		c.w = *p.w
	}
	if p.h != nil {
		if err := checkSize("h", *p.h); err != nil {
			return err
		}
		c.h = *p.h
	}
	if p.x2 != nil {
		c.x2 = *p.x2
	}
	if p.y2 != nil {
		c.y2 = *p.y2
	}
	if p.w2 != nil {
		if err := checkSize("w2", *p.w2); err != nil {
			return err
		}
		c.w2 = *p.w2
	}
	if p.h2 != nil {
		if err := checkSize("h2", *p.h2); err != nil {
			return err
		}
		c.h2 = *p.h2
	}

	if p.n != nil {
		c.homing = *p.n
	}
	if p.l != nil {
		c.stepped = *p.l
	}
	if p.d != nil {
		c.decal = *p.d
	}
	if p.g != nil {
		c.ghost = *p.g
	}

	if p.sm != nil {
		c.sw.Mount = *p.sm
	}
	if p.sb != nil {
		c.sw.Brand = *p.sb
	}
	if p.st != nil {
		c.sw.Type = *p.st
	}
	return nil
}

// snapshot builds a key from the cursor and the legend text, then advances
// the cursor past it.
func (c *cursor) snapshot(text string) (Key, error) {
	slots, err := placeLegends(text, c.align)
	if err != nil {
		return Key{}, err
	}

	k := Key{
		X:        c.x,
		Y:        c.y,
		Width:    c.w,
		Height:   c.h,
		X2:       c.x2,
		Y2:       c.y2,
		Width2:   c.w2,
		Height2:  c.h2,
		Rotation: c.r,
		RX:       c.rx,
		RY:       c.ry,
		Color:    c.color,
		Profile:  c.profile,
		Switch:   c.sw,
		Ghost:    c.ghost,
		Decal:    c.decal,
		Stepped:  c.stepped,
		Homing:   c.homing,
	}
	if k.Width2 == 0 {
		k.Width2 = k.Width
	}
	if k.Height2 == 0 {
		k.Height2 = k.Height
	}

	for slot, s := range slots {
		if s == "" {
			continue
		}
		pos := c.align.position(slot)
		l := &Legend{Text: s, Size: c.sizeDefault, Color: c.colorDefault}
		if c.sizes[pos] != 0 {
			l.Size = c.sizes[pos]
		}
		if c.colorsSet {
			l.Color = c.colors[pos]
		}
		k.Legends[slot] = l
	}

	c.advance()
	return k, nil
}

// advance moves past the key just built and clears the attributes that
// apply to a single key.
func (c *cursor) advance() {
	c.x += c.w
	c.originOpen = false

	c.x2, c.y2 = 0, 0
	c.w2, c.h2 = 0, 0
	c.decal = false
	c.stepped = false

	if c.editorCarry {
		c.w, c.h = 1, 1
		c.homing = false
	} else {
		c.ghost = false
	}
}

// endRow moves the cursor to the start of the next row.
func (c *cursor) endRow() {
	c.y++
	c.x = c.rx
}

// beginRow re-enables the rotation origin for the row about to start.
func (c *cursor) beginRow() {
	c.originOpen = true
}

func checkSize(field string, v float64) error {
	if v > 0 && !math.IsInf(v, 1) {
		return nil
	}
	return &DecodeError{
		Kind:  errors.ErrCodeInvalidSize,
		Row:   -1,
		Item:  -1,
		Field: field,
		Value: v,
		Msg:   fmt.Sprintf("size must be positive, got %v", v),
	}
}

// legendSize rounds and clamps a raw legend size. NaN falls back to def.
func legendSize(v float64, def int) int {
	if math.IsNaN(v) {
		return def
	}
	n := int(math.Round(math.Max(MinLegendSize, math.Min(MaxLegendSize, v))))
	return n
}

func deref(p *float64) any {
	if p == nil {
		return nil
	}
	return *p
}
