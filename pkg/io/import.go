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

// ReadDocument reads a whole raw document from r, refusing anything larger
// than limit bytes. A non-positive limit means [errors.MaxDocumentSize].
// ReadDocument does not close r.
func ReadDocument(r io.Reader, limit int64) ([]byte, error) {
	if limit <= 0 {
		limit = errors.MaxDocumentSize
	}
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	if err := errors.ValidateDocumentSize(int64(len(data)), limit); err != nil {
		return nil, err
	}
	return data, nil
}

// ReadRaw reads and decodes a raw editor document from r.
//
// ReadRaw returns a [*kle.DecodeError] when the document is rejected, and an
// INVALID_INPUT or TOO_LARGE error when it is empty or oversized.
func ReadRaw(r io.Reader, opts ...kle.Option) (*kle.Layout, error) {
	data, err := ReadDocument(r, 0)
	if err != nil {
		return nil, err
	}
	return kle.Unmarshal(data, opts...)
}

// ImportRaw reads a raw editor document file at path and decodes it.
// A missing file is reported as FILE_NOT_FOUND.
func ImportRaw(path string, opts ...kle.Option) (*kle.Layout, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadRaw(f, opts...)
}

// ReadLayout decodes a layout previously written by [WriteLayout] in the
// named format. ReadLayout does not close r.
func ReadLayout(r io.Reader, format string) (*kle.Layout, error) {
	format, err := NormalizeFormat(format)
	if err != nil {
		return nil, err
	}

	var data layout
	switch format {
	case FormatYAML:
		err = yaml.NewDecoder(r).Decode(&data)
	case FormatMsgpack:
		err = msgpack.NewDecoder(r).Decode(&data)
	default:
		err = json.NewDecoder(r).Decode(&data)
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "decode %s layout", format)
	}
	return data.toLayout()
}

// ImportLayout reads a layout file at path in the named format.
func ImportLayout(path, format string) (*kle.Layout, error) {
	f, err := openFile(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadLayout(f, format)
}

func openFile(path string) (*os.File, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	return f, nil
}
