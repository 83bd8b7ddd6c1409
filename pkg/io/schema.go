package io

import (
	"github.com/matzehuels/kle/pkg/errors"
	"github.com/matzehuels/kle/pkg/kle"
)

type layout struct {
	Meta meta  `json:"meta" yaml:"meta" msgpack:"meta"`
	Keys []key `json:"keys" yaml:"keys" msgpack:"keys"`
}

type meta struct {
	BackgroundColor string         `json:"backcolor" yaml:"backcolor" msgpack:"backcolor"`
	Background      *background    `json:"background,omitempty" yaml:"background,omitempty" msgpack:"background,omitempty"`
	Radii           string         `json:"radii,omitempty" yaml:"radii,omitempty" msgpack:"radii,omitempty"`
	Name            string         `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Author          string         `json:"author,omitempty" yaml:"author,omitempty" msgpack:"author,omitempty"`
	Switch          *keySwitch     `json:"switch,omitempty" yaml:"switch,omitempty" msgpack:"switch,omitempty"`
	Plate           bool           `json:"plate,omitempty" yaml:"plate,omitempty" msgpack:"plate,omitempty"`
	PCB             bool           `json:"pcb,omitempty" yaml:"pcb,omitempty" msgpack:"pcb,omitempty"`
	Notes           string         `json:"notes,omitempty" yaml:"notes,omitempty" msgpack:"notes,omitempty"`
	Raw             map[string]any `json:"raw,omitempty" yaml:"raw,omitempty" msgpack:"raw,omitempty"`
}

type background struct {
	Name  string `json:"name,omitempty" yaml:"name,omitempty" msgpack:"name,omitempty"`
	Style string `json:"style,omitempty" yaml:"style,omitempty" msgpack:"style,omitempty"`
}

type keySwitch struct {
	Mount string `json:"mount,omitempty" yaml:"mount,omitempty" msgpack:"mount,omitempty"`
	Brand string `json:"brand,omitempty" yaml:"brand,omitempty" msgpack:"brand,omitempty"`
	Type  string `json:"type,omitempty" yaml:"type,omitempty" msgpack:"type,omitempty"`
}

type key struct {
	X       float64    `json:"x" yaml:"x" msgpack:"x"`
	Y       float64    `json:"y" yaml:"y" msgpack:"y"`
	W       float64    `json:"w" yaml:"w" msgpack:"w"`
	H       float64    `json:"h" yaml:"h" msgpack:"h"`
	X2      float64    `json:"x2" yaml:"x2" msgpack:"x2"`
	Y2      float64    `json:"y2" yaml:"y2" msgpack:"y2"`
	W2      float64    `json:"w2" yaml:"w2" msgpack:"w2"`
	H2      float64    `json:"h2" yaml:"h2" msgpack:"h2"`
	R       float64    `json:"r" yaml:"r" msgpack:"r"`
	RX      float64    `json:"rx" yaml:"rx" msgpack:"rx"`
	RY      float64    `json:"ry" yaml:"ry" msgpack:"ry"`
	Color   string     `json:"color" yaml:"color" msgpack:"color"`
	Profile string     `json:"profile,omitempty" yaml:"profile,omitempty" msgpack:"profile,omitempty"`
	Switch  *keySwitch `json:"switch,omitempty" yaml:"switch,omitempty" msgpack:"switch,omitempty"`
	Ghost   bool       `json:"ghost,omitempty" yaml:"ghost,omitempty" msgpack:"ghost,omitempty"`
	Decal   bool       `json:"decal,omitempty" yaml:"decal,omitempty" msgpack:"decal,omitempty"`
	Stepped bool       `json:"stepped,omitempty" yaml:"stepped,omitempty" msgpack:"stepped,omitempty"`
	Homing  bool       `json:"homing,omitempty" yaml:"homing,omitempty" msgpack:"homing,omitempty"`
	Legends []legend   `json:"legends" yaml:"legends" msgpack:"legends"`
}

type legend struct {
	Slot  int    `json:"slot" yaml:"slot" msgpack:"slot"`
	Text  string `json:"text" yaml:"text" msgpack:"text"`
	Size  int    `json:"size" yaml:"size" msgpack:"size"`
	Color string `json:"color" yaml:"color" msgpack:"color"`
}

func fromLayout(l *kle.Layout) layout {
	out := layout{
		Meta: fromMetadata(l.Meta),
		Keys: make([]key, len(l.Keys)),
	}
	for i := range l.Keys {
		out.Keys[i] = fromKey(&l.Keys[i])
	}
	return out
}

func fromMetadata(m kle.Metadata) meta {
	out := meta{
		BackgroundColor: m.BackgroundColor.Hex(),
		Radii:           m.Radii,
		Name:            m.Name,
		Author:          m.Author,
		Switch:          fromSwitch(m.Switch),
		Plate:           m.PlateMount,
		PCB:             m.PCBMount,
		Notes:           m.Notes,
		Raw:             m.Raw,
	}
	if m.Background != (kle.Background{}) {
		out.Background = &background{Name: m.Background.Name, Style: m.Background.Style}
	}
	return out
}

func fromSwitch(s kle.Switch) *keySwitch {
	if s == (kle.Switch{}) {
		return nil
	}
	return &keySwitch{Mount: s.Mount, Brand: s.Brand, Type: s.Type}
}

func fromKey(k *kle.Key) key {
	out := key{
		X: k.X, Y: k.Y, W: k.Width, H: k.Height,
		X2: k.X2, Y2: k.Y2, W2: k.Width2, H2: k.Height2,
		R: k.Rotation, RX: k.RX, RY: k.RY,
		Color:   k.Color.Hex(),
		Profile: k.Profile,
		Switch:  fromSwitch(k.Switch),
		Ghost:   k.Ghost,
		Decal:   k.Decal,
		Stepped: k.Stepped,
		Homing:  k.Homing,
		Legends: []legend{},
	}
	for slot, l := range k.Legends {
		if l == nil {
			continue
		}
		out.Legends = append(out.Legends, legend{
			Slot:  slot,
			Text:  l.Text,
			Size:  l.Size,
			Color: l.Color.Hex(),
		})
	}
	return out
}

func (l *layout) toLayout() (*kle.Layout, error) {
	m, err := l.Meta.toMetadata()
	if err != nil {
		return nil, err
	}
	out := &kle.Layout{Meta: m, Keys: make([]kle.Key, len(l.Keys))}
	for i := range l.Keys {
		k, err := l.Keys[i].toKey()
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "key %d", i)
		}
		out.Keys[i] = k
	}
	return out, nil
}

func (m *meta) toMetadata() (kle.Metadata, error) {
	out := kle.DefaultMetadata()
	c, err := kle.ResolveColor(m.BackgroundColor, kle.DefaultBackgroundColor)
	if err != nil {
		return out, errors.Wrap(errors.ErrCodeInvalidInput, err, "metadata")
	}
	out.BackgroundColor = c
	out.Radii = m.Radii
	out.Name = m.Name
	out.Author = m.Author
	out.Switch = m.Switch.toSwitch()
	out.PlateMount = m.Plate
	out.PCBMount = m.PCB
	out.Notes = m.Notes
	if m.Background != nil {
		out.Background = kle.Background{Name: m.Background.Name, Style: m.Background.Style}
	}
	for k, v := range m.Raw {
		out.Raw[k] = normalizeScalar(v)
	}
	return out, nil
}

func (s *keySwitch) toSwitch() kle.Switch {
	if s == nil {
		return kle.Switch{}
	}
	return kle.Switch{Mount: s.Mount, Brand: s.Brand, Type: s.Type}
}

func (k *key) toKey() (kle.Key, error) {
	c, err := kle.ResolveColor(k.Color, kle.DefaultKeyColor)
	if err != nil {
		return kle.Key{}, err
	}
	out := kle.Key{
		X: k.X, Y: k.Y, Width: k.W, Height: k.H,
		X2: k.X2, Y2: k.Y2, Width2: k.W2, Height2: k.H2,
		Rotation: k.R, RX: k.RX, RY: k.RY,
		Color:   c,
		Profile: k.Profile,
		Switch:  k.Switch.toSwitch(),
		Ghost:   k.Ghost,
		Decal:   k.Decal,
		Stepped: k.Stepped,
		Homing:  k.Homing,
	}
	for _, l := range k.Legends {
		if l.Slot < 0 || l.Slot >= kle.NumLegends {
			return kle.Key{}, errors.New(errors.ErrCodeInvalidInput, "legend slot %d out of range", l.Slot)
		}
		lc, err := kle.ResolveColor(l.Color, kle.DefaultLegendColor)
		if err != nil {
			return kle.Key{}, err
		}
		out.Legends[l.Slot] = &kle.Legend{Text: l.Text, Size: l.Size, Color: lc}
	}
	return out, nil
}

// normalizeScalar maps the integer types YAML and MessagePack decoders
// produce back to float64, the only number type the decoder stores.
func normalizeScalar(v any) any {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int8:
		return float64(n)
	case int16:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case uint:
		return float64(n)
	case uint8:
		return float64(n)
	case uint16:
		return float64(n)
	case uint32:
		return float64(n)
	case uint64:
		return float64(n)
	case float32:
		return float64(n)
	}
	return v
}
