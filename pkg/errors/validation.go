package errors

import (
	"strings"
	"unicode"
)

// MaxDocumentSize is the largest raw layout document accepted by the CLI and API.
// Real editor exports are a few hundred kilobytes at most.
const MaxDocumentSize = 4 << 20

// ValidateDocumentSize rejects empty documents and documents larger than limit.
// A non-positive limit falls back to MaxDocumentSize.
func ValidateDocumentSize(n, limit int64) error {
	if limit <= 0 {
		limit = MaxDocumentSize
	}
	if n == 0 {
		return New(ErrCodeInvalidInput, "layout document is empty")
	}
	if n > limit {
		return New(ErrCodeTooLarge, "layout document too large (%d bytes, max %d)", n, limit)
	}
	return nil
}

// ValidateFormat checks that format names one of the supported output encodings.
func ValidateFormat(format string, supported ...string) error {
	if format == "" {
		return New(ErrCodeInvalidFormat, "format cannot be empty")
	}
	for _, s := range supported {
		if strings.EqualFold(format, s) {
			return nil
		}
	}
	return New(ErrCodeInvalidFormat, "invalid format: %q (must be one of: %s)", format, strings.Join(supported, ", "))
}

// ValidatePath validates an output file path supplied on the command line.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 4096 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 4096
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}

	return nil
}

// ValidateURL validates a cache backend connection string.
// It ensures the URL uses one of the given schemes.
func ValidateURL(rawURL string, schemes ...string) error {
	if rawURL == "" {
		return New(ErrCodeInvalidConfig, "URL cannot be empty")
	}

	for _, s := range schemes {
		if strings.HasPrefix(rawURL, s+"://") {
			return nil
		}
	}
	return New(ErrCodeInvalidConfig, "URL must use one of the schemes: %s", strings.Join(schemes, ", "))
}
