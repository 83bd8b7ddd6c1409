// Package pkg provides the libraries behind kle, a decoder for keyboard layouts
// written in the raw KLE (keyboard-layout-editor) JSON format.
//
// # Overview
//
// A raw KLE document is a JSON array. An optional leading object carries
// keyboard metadata; every following array is a row whose items are either
// legend strings (one key each) or property objects that update the state
// used for the keys after them. Decoding turns that stateful stream into a
// flat list of fully resolved keys.
//
// The pkg directory is organized into three areas:
//
//  1. [kle] - Domain logic (legend slots, colors, the key cursor, decoding)
//  2. [io], [cache], [observability] - Infrastructure (formats, caching, hooks)
//  3. [pipeline] - Orchestration (hash → cache → decode → export)
//
// Supporting packages: [errors] for coded errors, [config] for the TOML
// configuration file and [buildinfo] for version metadata.
//
// # Architecture
//
// The typical data flow:
//
//	raw KLE JSON
//	     ↓
//	[pipeline] (size check, content hash, cache lookup)
//	     ↓
//	[kle] (rows → cursor → keys)
//	     ↓
//	[io] (JSON, YAML or msgpack export)
//
// # Quick Start
//
// Decode a document directly:
//
//	layout, err := kle.Unmarshal(data)
//	if err != nil {
//	    var de *kle.DecodeError
//	    if errors.As(err, &de) {
//	        fmt.Println(de.Kind, de.Row, de.Item)
//	    }
//	    return err
//	}
//	for _, k := range layout.Keys {
//	    fmt.Println(k.Legend(0), k.X, k.Y, k.Width)
//	}
//
// Decode through the cached pipeline and export YAML:
//
//	c, _ := cache.NewFileCache(dir)
//	runner := pipeline.NewRunner(c, nil, logger)
//	out, res, err := runner.Export(ctx, data, pipeline.Options{Format: io.FormatYAML})
//
// # Main Packages
//
// [kle] - The decoder. [kle.Alignment] maps legend lines to the twelve
// slots of a key cap, [kle.ResolveColor] turns CSS color tokens into RGBA,
// and [kle.Decode] walks rows with a cursor that carries state between keys.
//
// [io] - Conversion between decoded layouts and JSON, YAML and msgpack, plus
// bounded reads of raw documents.
//
// [cache] - Content-addressed caching of decoded layouts with null, file,
// Redis and MongoDB backends.
//
// [observability] - Hook interfaces for decode, cache and HTTP events.
//
// [pipeline] - The decode/export pipeline shared by the CLI and the HTTP
// server.
//
// # Testing
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/kle/...      # Decoder only
//	go test -run Example       # Examples only
//
// [kle]: https://pkg.go.dev/github.com/matzehuels/kle/pkg/kle
// [io]: https://pkg.go.dev/github.com/matzehuels/kle/pkg/io
// [cache]: https://pkg.go.dev/github.com/matzehuels/kle/pkg/cache
// [observability]: https://pkg.go.dev/github.com/matzehuels/kle/pkg/observability
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/kle/pkg/pipeline
// [errors]: https://pkg.go.dev/github.com/matzehuels/kle/pkg/errors
// [config]: https://pkg.go.dev/github.com/matzehuels/kle/pkg/config
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/kle/pkg/buildinfo
package pkg
