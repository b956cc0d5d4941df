// Package http provides an HTTP-based implementation of webpdf.Fetcher.
// It retrieves raw page markup for link discovery; rendering is done
// separately by a browser.
package http

import (
	"context"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/fwojciec/webpdf"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = webpdf.DefaultTimeout

// DefaultUserAgent identifies the crawler to servers.
const DefaultUserAgent = "webpdf/1.0 (+https://github.com/fwojciec/webpdf)"

// maxBodyBytes caps how much of a response is read for link discovery.
const maxBodyBytes = 32 << 20

// Ensure Fetcher implements webpdf.Fetcher at compile time.
var _ webpdf.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content from URLs using HTTP GET requests.
// Fetcher is safe for concurrent use by multiple goroutines.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
	htmlOnly  bool
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithHTMLOnly makes Fetch reject responses whose content type is not HTML
// with an ENOTHTML error.
func WithHTMLOnly(enabled bool) Option {
	return func(f *Fetcher) {
		f.htmlOnly = enabled
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.client = &http.Client{
		Timeout: f.timeout,
	}
	return f
}

// Fetch retrieves the HTML content from the given URL.
// Transport failures and timeouts are returned as EFETCH, responses outside
// the 2xx range as ESTATUS. A cancelled context is returned as is.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", webpdf.Errorf(webpdf.EINVALID, "building request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		return "", webpdf.Errorf(webpdf.EFETCH, "GET %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", webpdf.Errorf(webpdf.ESTATUS, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return "", webpdf.Errorf(webpdf.EFETCH, "reading body of %s: %v", url, err)
	}

	if f.htmlOnly && !isHTML(resp.Header.Get("Content-Type"), body) {
		return "", webpdf.Errorf(webpdf.ENOTHTML, "%s is not HTML (%s)", url, resp.Header.Get("Content-Type"))
	}

	return string(body), nil
}

// isHTML checks the declared content type, falling back to sniffing the
// body when the server sent none.
func isHTML(contentType string, body []byte) bool {
	if contentType == "" {
		contentType = http.DetectContentType(body)
	}
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
