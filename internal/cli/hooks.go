package cli

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
)

// logHooks reports decode, cache and HTTP events as debug log lines.
// It implements every observability hook interface.
type logHooks struct {
	logger *log.Logger
}

func newLogHooks(l *log.Logger) *logHooks {
	return &logHooks{logger: l}
}

func (h *logHooks) OnDecodeStart(_ context.Context, docHash string, size int) {
	h.logger.Debug("decode start", "hash", shortHash(docHash), "bytes", size)
}

func (h *logHooks) OnDecodeComplete(_ context.Context, docHash string, keyCount int, d time.Duration, err error) {
	if err != nil {
		h.logger.Debug("decode failed", "hash", shortHash(docHash), "error", err)
		return
	}
	h.logger.Debug("decode done", "hash", shortHash(docHash), "keys", keyCount, "duration", d)
}

func (h *logHooks) OnExport(_ context.Context, format string, size int, d time.Duration, err error) {
	h.logger.Debug("export", "format", format, "bytes", size, "duration", d, "error", err)
}

func (h *logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h *logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h *logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h *logHooks) OnRequest(_ context.Context, method, route string) {
	h.logger.Debug("http request", "method", method, "route", route)
}

func (h *logHooks) OnResponse(_ context.Context, method, route string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "route", route, "status", status, "duration", d)
}

func (h *logHooks) OnError(_ context.Context, method, route string, err error) {
	h.logger.Debug("http error", "method", method, "route", route, "error", err)
}

func shortHash(h string) string {
	if len(h) > 12 {
		return h[:12]
	}
	return h
}
