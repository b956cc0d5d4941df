// Package rod renders web pages to PDF with a headless Chrome browser
// driven by go-rod.
package rod

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/fwojciec/webpdf"
	"github.com/go-rod/rod/lib/proto"
)

// DefaultRenderTimeout bounds navigation plus printing of a single page.
const DefaultRenderTimeout = 30 * time.Second

// Ensure Renderer implements webpdf.Renderer at compile time.
var _ webpdf.Renderer = (*Renderer)(nil)

// Renderer prints pages to PDF through Chrome's print-to-PDF.
// Client-side content is rendered before printing because the page is
// printed only after its load event.
type Renderer struct {
	manager         *BrowserManager
	timeout         time.Duration
	landscape       bool
	printBackground bool
	managerOpts     []ManagerOption
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithRenderTimeout sets the per-page timeout.
// Defaults to DefaultRenderTimeout if not specified.
func WithRenderTimeout(d time.Duration) Option {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithLandscape prints pages in landscape orientation.
func WithLandscape(enabled bool) Option {
	return func(r *Renderer) {
		r.landscape = enabled
	}
}

// WithPrintBackground controls whether background colors and images are
// printed. Enabled by default.
func WithPrintBackground(enabled bool) Option {
	return func(r *Renderer) {
		r.printBackground = enabled
	}
}

// WithManagerOptions passes options to the underlying BrowserManager.
func WithManagerOptions(opts ...ManagerOption) Option {
	return func(r *Renderer) {
		r.managerOpts = append(r.managerOpts, opts...)
	}
}

// NewRenderer creates a new Renderer that launches a headless Chrome browser.
// Close must be called when the Renderer is no longer needed.
//
// Returns an error if Chrome/Chromium cannot be found or launched.
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		timeout:         DefaultRenderTimeout,
		printBackground: true,
	}
	for _, opt := range opts {
		opt(r)
	}

	manager, err := NewBrowserManager(r.managerOpts...)
	if err != nil {
		return nil, err
	}
	r.manager = manager
	return r, nil
}

// Render navigates to url, waits for the page to load and writes its PDF
// to dest. The PDF is streamed to a temporary file next to dest and renamed
// into place, so a failed render never leaves a partial file at dest.
func (r *Renderer) Render(ctx context.Context, url string, dest string) error {
	if r.manager.Closed() {
		return webpdf.Errorf(webpdf.EINVALID, "renderer is closed")
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	page, err := r.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return webpdf.Errorf(webpdf.ERENDER, "opening page for %s: %v", url, err)
	}
	defer page.Close()
	defer r.manager.IncrementPageCount()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return webpdf.Errorf(webpdf.ERENDER, "navigating to %s: %v", url, err)
	}
	if err := page.WaitLoad(); err != nil {
		return webpdf.Errorf(webpdf.ERENDER, "waiting for %s to load: %v", url, err)
	}

	stream, err := page.PDF(&proto.PagePrintToPDF{
		Landscape:       r.landscape,
		PrintBackground: r.printBackground,
	})
	if err != nil {
		return webpdf.Errorf(webpdf.ERENDER, "printing %s: %v", url, err)
	}

	if err := writeAtomic(dest, stream); err != nil {
		return webpdf.Errorf(webpdf.ERENDER, "writing %s: %v", dest, err)
	}
	return nil
}

// writeAtomic copies src to dest via a ".part" file.
func writeAtomic(dest string, src io.Reader) error {
	tmp := dest + ".part"
	f, err := os.Create(tmp)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, src); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// Close releases browser resources. Close is safe to call multiple times.
func (r *Renderer) Close() error {
	return r.manager.Close()
}

// LauncherPID returns the process ID of the browser launcher.
// This method exists for testing purposes to verify proper cleanup.
func (r *Renderer) LauncherPID() int {
	r.manager.mu.Lock()
	defer r.manager.mu.Unlock()
	if r.manager.launcher == nil {
		return 0
	}
	return r.manager.launcher.PID()
}
