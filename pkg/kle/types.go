package kle

// NumLegends is the number of legend slots on a key.
const NumLegends = 12

// Default legend size, in the editor's font size units, and its valid range.
const (
	DefaultLegendSize = 3
	MinLegendSize     = 1
	MaxLegendSize     = 9
)

// Legend is the text printed in one slot of a keycap.
type Legend struct {
	Text  string
	Size  int
	Color Color
}

// Switch identifies a key switch. All fields are empty unless set.
type Switch struct {
	Mount string // typically "cherry" or "alps"
	Brand string
	Type  string
}

// Key is a single, fully-resolved key.
type Key struct {
	// Position and size in key units.
	X, Y          float64
	Width, Height float64

	// Secondary rectangle of stepped and L-shaped keys, relative to X and Y.
	// For regular keys this is (0, 0, Width, Height).
	X2, Y2          float64
	Width2, Height2 float64

	// Rotation in degrees (clockwise) around the origin (RX, RY).
	Rotation float64
	RX, RY   float64

	// Legends indexed by slot; nil means the slot is empty.
	Legends [NumLegends]*Legend

	Color   Color
	Profile string
	Switch  Switch

	Ghost   bool
	Decal   bool
	Stepped bool
	Homing  bool
}

// Legend returns the text in slot, or "" when the slot is empty or out of range.
func (k *Key) Legend(slot int) string {
	if slot < 0 || slot >= NumLegends || k.Legends[slot] == nil {
		return ""
	}
	return k.Legends[slot].Text
}

// Background is the named background style of a layout.
type Background struct {
	Name  string
	Style string // CSS declaration, e.g. "background-image: url(...)"
}

// Metadata holds the layout-level fields of the document's leading object.
type Metadata struct {
	BackgroundColor Color
	Background      Background
	Radii           string
	Name            string
	Author          string
	Switch          Switch
	PlateMount      bool
	PCBMount        bool
	Notes           string

	// Raw holds every scalar (string, float64 or bool) field of the metadata
	// object keyed as written, including fields without a typed counterpart.
	Raw map[string]any
}

// DefaultMetadata returns the metadata of a document without a leading object.
func DefaultMetadata() Metadata {
	return Metadata{
		BackgroundColor: DefaultBackgroundColor,
		Raw:             map[string]any{},
	}
}

// Layout is a decoded keyboard layout. Keys appear in document order.
type Layout struct {
	Meta Metadata
	Keys []Key
}
