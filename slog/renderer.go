package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/webpdf"
)

// Ensure LoggingRenderer implements webpdf.Renderer.
var _ webpdf.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with logging.
type LoggingRenderer struct {
	next   webpdf.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next webpdf.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer and logs the operation.
func (r *LoggingRenderer) Render(ctx context.Context, url, dest string) (err error) {
	defer func(begin time.Time) {
		r.logger.Info("render",
			"url", url,
			"dest", dest,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(ctx, url, dest)
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}

// Ensure LoggingMerger implements webpdf.Merger.
var _ webpdf.Merger = (*LoggingMerger)(nil)

// LoggingMerger wraps a Merger with logging.
type LoggingMerger struct {
	next   webpdf.Merger
	logger *slog.Logger
}

// NewLoggingMerger creates a new LoggingMerger.
func NewLoggingMerger(next webpdf.Merger, logger *slog.Logger) *LoggingMerger {
	return &LoggingMerger{next: next, logger: logger}
}

// Merge delegates to the wrapped merger and logs the operation.
func (m *LoggingMerger) Merge(paths []string, dest string) (err error) {
	defer func(begin time.Time) {
		m.logger.Info("merge",
			"files", len(paths),
			"dest", dest,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return m.next.Merge(paths, dest)
}
