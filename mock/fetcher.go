package mock

import (
	"context"

	"github.com/fwojciec/webpdf"
)

var _ webpdf.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of webpdf.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ webpdf.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of webpdf.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string) ([]string, error)
}

func (e *LinkExtractor) ExtractLinks(html string) ([]string, error) {
	return e.ExtractLinksFn(html)
}

var _ webpdf.DomainLimiter = (*DomainLimiter)(nil)

// DomainLimiter is a mock implementation of webpdf.DomainLimiter.
type DomainLimiter struct {
	WaitFn func(ctx context.Context, domain string) error
}

func (l *DomainLimiter) Wait(ctx context.Context, domain string) error {
	return l.WaitFn(ctx, domain)
}
