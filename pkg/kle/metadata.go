package kle

// decodeMetadata reads the document's leading metadata object. Known fields
// populate the typed Metadata fields; every scalar field, known or not, is
// also kept in Metadata.Raw.
func decodeMetadata(obj map[string]any) (Metadata, error) {
	m := DefaultMetadata()

	for k, v := range obj {
		switch x := v.(type) {
		case string, bool:
			m.Raw[k] = x
		default:
			if f, ok := toFloat(v); ok {
				m.Raw[k] = f
			}
		}
	}

	str := func(field string, dst *string) error {
		v, ok := obj[field]
		if !ok {
			return nil
		}
		s, err := stringField(field, v)
		if err != nil {
			return err
		}
		*dst = *s
		return nil
	}
	flag := func(field string, dst *bool) error {
		v, ok := obj[field]
		if !ok {
			return nil
		}
		b, err := boolField(field, v)
		if err != nil {
			return err
		}
		*dst = *b
		return nil
	}

	var backcolor string
	for _, f := range []struct {
		name string
		dst  *string
	}{
		{"backcolor", &backcolor},
		{"radii", &m.Radii},
		{"name", &m.Name},
		{"author", &m.Author},
		{"switchMount", &m.Switch.Mount},
		{"switchBrand", &m.Switch.Brand},
		{"switchType", &m.Switch.Type},
		{"notes", &m.Notes},
	} {
		if err := str(f.name, f.dst); err != nil {
			return Metadata{}, err
		}
	}
	if err := flag("plate", &m.PlateMount); err != nil {
		return Metadata{}, err
	}
	if err := flag("pcb", &m.PCBMount); err != nil {
		return Metadata{}, err
	}

	c, err := ResolveColor(backcolor, DefaultBackgroundColor)
	if err != nil {
		return Metadata{}, withField(err, "backcolor")
	}
	m.BackgroundColor = c

	if v, ok := obj["background"]; ok && v != nil {
		bg, ok := v.(map[string]any)
		if !ok {
			return Metadata{}, fieldError("background", v, "object")
		}
		for _, f := range []struct {
			name string
			dst  *string
		}{
			{"name", &m.Background.Name},
			{"style", &m.Background.Style},
		} {
			raw, ok := bg[f.name]
			if !ok {
				continue
			}
			s, err := stringField("background."+f.name, raw)
			if err != nil {
				return Metadata{}, err
			}
			*f.dst = *s
		}
	}

	return m, nil
}
