package kle

import (
	"fmt"
	"math"
	"strings"

	"github.com/mazznoer/csscolorparser"

	"github.com/matzehuels/kle/pkg/errors"
)

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Default colors used when a document does not set one.
var (
	DefaultBackgroundColor = Color{0xee, 0xee, 0xee, 0xff}
	DefaultKeyColor        = Color{0xcc, 0xcc, 0xcc, 0xff}
	DefaultLegendColor     = Color{0x00, 0x00, 0x00, 0xff}
)

// Hex formats c as #rrggbb, or #rrggbbaa when c is not fully opaque.
func (c Color) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// String implements fmt.Stringer.
func (c Color) String() string { return c.Hex() }

// ResolveColor parses a CSS color token (hex forms, named colors, rgb() and
// hsl() functions). An empty token returns fallback unchanged. A token that
// cannot be parsed yields an INVALID_COLOR [*DecodeError] carrying the token.
func ResolveColor(token string, fallback Color) (Color, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return fallback, nil
	}
	c, err := csscolorparser.Parse(token)
	if err != nil {
		return Color{}, &DecodeError{
			Kind:  errors.ErrCodeInvalidColor,
			Row:   -1,
			Item:  -1,
			Value: token,
			Msg:   fmt.Sprintf("cannot parse color %q", token),
			Err:   err,
		}
	}
	return Color{R: channel(c.R), G: channel(c.G), B: channel(c.B), A: channel(c.A)}, nil
}

// channel converts a [0, 1] color channel to 8 bits.
func channel(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(1, v)) * 255))
}

// resolveLegendColors expands a multi-line legend color token into one color
// per legend line position.
//
// A non-empty first line becomes the new default legend color. Positions with
// an empty line take the default; positions past the last line reuse the last
// non-empty color supplied.
func resolveLegendColors(token string, def Color) (Color, [NumLegends]Color, error) {
	var out [NumLegends]Color
	lines := strings.Split(token, "\n")
	if len(lines) > NumLegends {
		return def, out, &DecodeError{
			Kind:  errors.ErrCodeTooManyLegends,
			Row:   -1,
			Item:  -1,
			Value: token,
			Msg:   fmt.Sprintf("%d legend colors given, at most %d allowed", len(lines), NumLegends),
		}
	}

	if lines[0] != "" {
		c, err := ResolveColor(lines[0], def)
		if err != nil {
			return def, out, err
		}
		def = c
	}

	last := def
	for i := range out {
		if i >= len(lines) {
			out[i] = last
			continue
		}
		if lines[i] == "" {
			out[i] = def
			continue
		}
		c, err := ResolveColor(lines[i], def)
		if err != nil {
			return def, out, err
		}
		out[i] = c
		last = c
	}
	return def, out, nil
}
