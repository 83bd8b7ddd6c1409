// Package pipeline runs the decode → encode flow shared by the CLI and the
// decode API.
//
// # Architecture
//
// The pipeline has two stages:
//
//  1. Decode: turn a raw editor document into a [kle.Layout], with caching
//  2. Export: encode the layout as JSON, YAML or MessagePack
//
// Decoded layouts are cached by the hash of the raw document and the decode
// options, so a cache hit skips the decoder entirely. The encoded output is
// cheap to produce and is never cached.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	data, result, err := runner.Export(ctx, raw, pipeline.Options{Format: "yaml"})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Stats.KeyCount, "keys")
package pipeline

import (
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kle/pkg/cache"
	"github.com/matzehuels/kle/pkg/errors"
	kleio "github.com/matzehuels/kle/pkg/io"
	"github.com/matzehuels/kle/pkg/kle"
)

// =============================================================================
// Default Values - Single Source of Truth for CLI and API
// =============================================================================

const (
	// DefaultFormat is the output encoding when none is requested.
	DefaultFormat = kleio.FormatJSON

	// DefaultTTL is how long decoded layouts stay cached.
	DefaultTTL = cache.DefaultTTL

	// DefaultMaxBytes is the largest raw document accepted.
	DefaultMaxBytes = errors.MaxDocumentSize
)

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for a pipeline run.
// This struct supports JSON serialization for API requests.
type Options struct {
	// Decode options
	EditorCarry bool `json:"editor_carry,omitempty"`
	Refresh     bool `json:"refresh,omitempty"` // bypass cached layouts

	// Export options
	Format string `json:"format,omitempty"`

	// Limits
	MaxBytes int64         `json:"-"`
	TTL      time.Duration `json:"-"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-"`

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Layout is the decoded layout.
	Layout *kle.Layout

	// DocHash is the SHA-256 of the raw document.
	DocHash string

	// Stats contains timing and size information.
	Stats Stats

	// CacheHit reports whether the layout came from the cache.
	CacheHit bool
}

// Stats contains pipeline execution statistics.
type Stats struct {
	KeyCount   int
	DocBytes   int
	DecodeTime time.Duration
	ExportTime time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and applies defaults.
// This method is idempotent - calling it multiple times has the same effect as calling it once.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	format, err := kleio.NormalizeFormat(o.Format)
	if err != nil {
		return err
	}
	o.Format = format

	if o.MaxBytes <= 0 {
		o.MaxBytes = DefaultMaxBytes
	}
	if o.TTL <= 0 {
		o.TTL = DefaultTTL
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}

// LayoutKeyOpts returns cache key options for decoded layouts.
func (o *Options) LayoutKeyOpts() cache.LayoutKeyOpts {
	return cache.LayoutKeyOpts{EditorCarry: o.EditorCarry}
}

// DecodeOptions returns the decoder options. Inputs the decoder ignores are
// logged at debug level.
func (o *Options) DecodeOptions() []kle.Option {
	opts := []kle.Option{}
	if o.EditorCarry {
		opts = append(opts, kle.WithEditorCarry())
	}
	if o.Logger != nil {
		logger := o.Logger
		opts = append(opts, kle.WithLogger(func(msg string, args ...any) {
			logger.Debug(msg, args...)
		}))
	}
	return opts
}
