package mock

import (
	"context"

	"github.com/fwojciec/webpdf"
)

var _ webpdf.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of webpdf.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url, dest string) error
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, url, dest string) error {
	return r.RenderFn(ctx, url, dest)
}

func (r *Renderer) Close() error {
	return r.CloseFn()
}

var _ webpdf.Merger = (*Merger)(nil)

// Merger is a mock implementation of webpdf.Merger.
type Merger struct {
	MergeFn func(paths []string, dest string) error
}

func (m *Merger) Merge(paths []string, dest string) error {
	return m.MergeFn(paths, dest)
}
