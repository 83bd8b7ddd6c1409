// Package io reads raw editor documents and reads and writes decoded layouts.
//
// # Raw Documents
//
// Use [ImportRaw] to decode a raw keyboard-layout-editor file from a path, or
// [ReadRaw] to decode from any io.Reader. Both enforce
// [errors.MaxDocumentSize] and return the decoder's [*kle.DecodeError] for
// rejected documents:
//
//	layout, err := io.ImportRaw("sixty.json")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// # Normalized Layouts
//
// A decoded [kle.Layout] can be written in three encodings, selected by name:
//
//   - json: indented JSON, the default
//   - yaml: YAML 1.2 via gopkg.in/yaml.v3
//   - msgpack: MessagePack via github.com/vmihailenco/msgpack/v5
//
// All three share one schema. Every key is written with its full geometry,
// colors as "#rrggbb" (or "#rrggbbaa" when not opaque) and only its non-empty
// legends, each tagged with its slot:
//
//	{
//	  "meta": {"backcolor": "#eeeeee", "name": "fragment"},
//	  "keys": [
//	    {
//	      "x": 0, "y": 0, "w": 1.5, "h": 1,
//	      "x2": 0, "y2": 0, "w2": 1.5, "h2": 1,
//	      "r": 0, "rx": 0, "ry": 0,
//	      "color": "#cccccc",
//	      "legends": [{"slot": 0, "text": "Tab", "size": 3, "color": "#000000"}]
//	    }
//	  ]
//	}
//
// [WriteLayout] and [ReadLayout] round-trip: reading a written layout yields
// an equal [kle.Layout]. [ExportLayout] writes to a file.
//
// # Concurrency
//
// All functions are safe for concurrent use. Layouts are only read while
// writing, and reading returns an independent value.
//
// [errors.MaxDocumentSize]: github.com/matzehuels/kle/pkg/errors.MaxDocumentSize
package io
