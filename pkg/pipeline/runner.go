package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/kle/pkg/cache"
	"github.com/matzehuels/kle/pkg/errors"
	kleio "github.com/matzehuels/kle/pkg/io"
	"github.com/matzehuels/kle/pkg/kle"
	"github.com/matzehuels/kle/pkg/observability"
)

// Runner encapsulates pipeline execution with caching.
// Both CLI and API use it so caching behaves the same everywhere.
//
// The Runner is stateless except for the cache and logger - it doesn't
// store pipeline results. Multiple goroutines can safely use the same
// Runner with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Decode decodes a raw document, consulting the cache first unless
// opts.Refresh is set. Decode errors are returned unchanged, so callers can
// inspect them with errors.GetCode or errors.As(*kle.DecodeError).
func (r *Runner) Decode(ctx context.Context, raw []byte, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if err := errors.ValidateDocumentSize(int64(len(raw)), opts.MaxBytes); err != nil {
		return nil, err
	}

	result := &Result{
		DocHash: cache.Hash(raw),
		Stats:   Stats{DocBytes: len(raw)},
	}
	cacheKey := r.Keyer.LayoutKey(result.DocHash, opts.LayoutKeyOpts())
	hooks := observability.Cache()

	if !opts.Refresh {
		if l, ok := r.cachedLayout(ctx, cacheKey); ok {
			hooks.OnCacheHit(ctx, "layout")
			result.Layout = l
			result.CacheHit = true
			result.Stats.KeyCount = len(l.Keys)
			opts.Logger.Debug("layout cache hit", "hash", short(result.DocHash))
			return result, nil
		}
		hooks.OnCacheMiss(ctx, "layout")
	}

	start := time.Now()
	observability.Decode().OnDecodeStart(ctx, result.DocHash, len(raw))
	l, err := kle.Unmarshal(raw, opts.DecodeOptions()...)
	result.Stats.DecodeTime = time.Since(start)
	keys := 0
	if l != nil {
		keys = len(l.Keys)
	}
	observability.Decode().OnDecodeComplete(ctx, result.DocHash, keys, result.Stats.DecodeTime, err)
	if err != nil {
		return nil, err
	}
	result.Layout = l
	result.Stats.KeyCount = keys

	opts.Logger.Info("decoded layout",
		"keys", keys,
		"bytes", len(raw),
		"duration", result.Stats.DecodeTime)

	var buf bytes.Buffer
	if err := kleio.WriteLayout(&buf, l, kleio.FormatMsgpack); err == nil {
		if err := r.Cache.Set(ctx, cacheKey, buf.Bytes(), opts.TTL); err != nil {
			opts.Logger.Warn("cache write failed", "error", err)
		} else {
			hooks.OnCacheSet(ctx, "layout", buf.Len())
		}
	}

	return result, nil
}

// Export decodes a raw document and encodes the layout in opts.Format.
func (r *Runner) Export(ctx context.Context, raw []byte, opts Options) ([]byte, *Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, nil, err
	}
	result, err := r.Decode(ctx, raw, opts)
	if err != nil {
		return nil, nil, err
	}

	start := time.Now()
	var buf bytes.Buffer
	err = kleio.WriteLayout(&buf, result.Layout, opts.Format)
	result.Stats.ExportTime = time.Since(start)
	observability.Decode().OnExport(ctx, opts.Format, buf.Len(), result.Stats.ExportTime, err)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInternal, err, "encode %s", opts.Format)
	}
	return buf.Bytes(), result, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// cachedLayout loads a layout from the cache. Backend failures and entries
// that no longer decode are treated as misses.
func (r *Runner) cachedLayout(ctx context.Context, key string) (*kle.Layout, bool) {
	data, hit, err := r.Cache.Get(ctx, key)
	if err != nil {
		r.Logger.Warn("cache read failed", "error", err)
		return nil, false
	}
	if !hit {
		return nil, false
	}
	l, err := kleio.ReadLayout(bytes.NewReader(data), kleio.FormatMsgpack)
	if err != nil {
		r.Logger.Debug("discarding unreadable cache entry", "error", err)
		_ = r.Cache.Delete(ctx, key)
		return nil, false
	}
	return l, true
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}

func short(hash string) string {
	if len(hash) > 12 {
		return hash[:12]
	}
	return hash
}

// String summarizes a result for log lines.
func (res *Result) String() string {
	src := "decoded"
	if res.CacheHit {
		src = "cached"
	}
	return fmt.Sprintf("%d keys (%s, %s)", res.Stats.KeyCount, src, short(res.DocHash))
}
