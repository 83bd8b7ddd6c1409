package io

import (
	"strings"

	"github.com/matzehuels/kle/pkg/errors"
)

// Supported layout encodings.
const (
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatMsgpack = "msgpack"
)

// Formats lists every supported encoding name.
var Formats = []string{FormatJSON, FormatYAML, FormatMsgpack}

var contentTypes = map[string]string{
	FormatJSON:    "application/json",
	FormatYAML:    "application/yaml",
	FormatMsgpack: "application/msgpack",
}

var extensions = map[string]string{
	FormatJSON:    ".json",
	FormatYAML:    ".yaml",
	FormatMsgpack: ".msgpack",
}

// NormalizeFormat validates a format name and returns its canonical form.
// An empty name selects JSON; "yml" and "mp" are accepted aliases.
func NormalizeFormat(format string) (string, error) {
	f := strings.ToLower(strings.TrimSpace(format))
	switch f {
	case "":
		return FormatJSON, nil
	case "yml":
		return FormatYAML, nil
	case "mp", "mpk":
		return FormatMsgpack, nil
	}
	if err := errors.ValidateFormat(f, Formats...); err != nil {
		return "", err
	}
	return f, nil
}

// ContentType returns the MIME type for a format name.
func ContentType(format string) string {
	if ct, ok := contentTypes[format]; ok {
		return ct
	}
	return "application/octet-stream"
}

// Extension returns the file extension, including the dot, for a format name.
func Extension(format string) string {
	return extensions[format]
}
