package cli

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/scaduxx/folio/pkg/observability"
)

// newLogger creates a logger with timestamps formatted as "HH:MM:SS.ms".
func newLogger(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// progress logs the elapsed time of an operation when it completes.
type progress struct {
	logger *log.Logger
	start  time.Time
}

func newProgress(l *log.Logger) *progress {
	return &progress{logger: l, start: time.Now()}
}

// done logs msg with the elapsed time, e.g. "Loaded 42 projects (1.234s)".
func (p *progress) done(msg string) {
	p.logger.Infof("%s (%s)", msg, time.Since(p.start).Round(time.Millisecond))
}

type ctxKey int

const loggerKey ctxKey = 0

func withLogger(ctx context.Context, l *log.Logger) context.Context {
	return context.WithValue(ctx, loggerKey, l)
}

// loggerFromContext returns the logger attached by the root command, or
// log.Default.
func loggerFromContext(ctx context.Context) *log.Logger {
	if l, ok := ctx.Value(loggerKey).(*log.Logger); ok {
		return l
	}
	return log.Default()
}

// =============================================================================
// Log-backed Hooks
// =============================================================================

// logHooks traces observability events at debug level.
type logHooks struct {
	logger *log.Logger
}

var (
	_ observability.CMSHooks   = logHooks{}
	_ observability.CacheHooks = logHooks{}
	_ observability.HTTPHooks  = logHooks{}
)

// registerLogHooks routes every hook category to logger.
func registerLogHooks(logger *log.Logger) {
	h := logHooks{logger: logger.WithPrefix("hooks")}
	observability.SetCMSHooks(h)
	observability.SetCacheHooks(h)
	observability.SetHTTPHooks(h)
}

func (h logHooks) OnQueryStart(_ context.Context, source, query string) {
	h.logger.Debug("query start", "source", source, "query", query)
}

func (h logHooks) OnQueryComplete(_ context.Context, source, query string, count int, d time.Duration, err error) {
	if err != nil {
		h.logger.Warn("query failed", "source", source, "query", query, "duration", d, "err", err)
		return
	}
	h.logger.Debug("query done", "source", source, "query", query, "count", count, "duration", d)
}

func (h logHooks) OnReload(_ context.Context, source string, count int, err error) {
	if err != nil {
		h.logger.Warn("reload failed", "source", source, "err", err)
		return
	}
	h.logger.Info("content reloaded", "source", source, "projects", count)
}

func (h logHooks) OnCacheHit(_ context.Context, keyType string) {
	h.logger.Debug("cache hit", "type", keyType)
}

func (h logHooks) OnCacheMiss(_ context.Context, keyType string) {
	h.logger.Debug("cache miss", "type", keyType)
}

func (h logHooks) OnCacheSet(_ context.Context, keyType string, size int) {
	h.logger.Debug("cache set", "type", keyType, "bytes", size)
}

func (h logHooks) OnRequest(_ context.Context, method, host, path string) {
	h.logger.Debug("http request", "method", method, "host", host, "path", path)
}

func (h logHooks) OnResponse(_ context.Context, method, host, path string, status int, d time.Duration) {
	h.logger.Debug("http response", "method", method, "host", host, "path", path, "status", status, "duration", d)
}

func (h logHooks) OnError(_ context.Context, method, host, path string, err error) {
	h.logger.Warn("http error", "method", method, "host", host, "path", path, "err", err)
}
