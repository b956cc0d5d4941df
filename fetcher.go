package webpdf

import "context"

// Fetcher retrieves page markup from URLs.
type Fetcher interface {
	// Fetch issues a GET for the URL and returns the response body.
	// Network failures are reported with EFETCH, non-2xx responses with ESTATUS.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases fetcher resources.
	Close() error
}

// LinkExtractor finds hyperlink targets in HTML.
type LinkExtractor interface {
	// ExtractLinks returns the href values of hyperlink elements in
	// document order. Values are returned as written, unresolved.
	ExtractLinks(html string) ([]string, error)
}

// DomainLimiter provides per-domain rate limiting.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
