package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/kle/pkg/errors"
	"github.com/matzehuels/kle/pkg/kle"
)

// WriteLayout encodes a decoded layout in the named format and writes it to w.
// The output can be read back with [ReadLayout].
func WriteLayout(w io.Writer, l *kle.Layout, format string) error {
	format, err := NormalizeFormat(format)
	if err != nil {
		return err
	}
	out := fromLayout(l)

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatMsgpack:
		enc := msgpack.NewEncoder(w)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode msgpack: %w", err)
		}
		return nil
	default:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode json: %w", err)
		}
		return nil
	}
}

// ExportLayout writes a layout to a file at path.
// This is a convenience wrapper around [WriteLayout] for file-based output.
func ExportLayout(l *kle.Layout, path, format string) error {
	if err := errors.ValidatePath(path); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteLayout(f, l, format); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
