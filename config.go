package webpdf

import (
	"net/url"
	"strings"
	"time"
)

// Defaults applied when the corresponding CrawlConfig field is empty.
const (
	DefaultOutputFilename = "website.pdf"
	DefaultWorkDir        = "website_download"
	DefaultTimeout        = 10 * time.Second
)

// CrawlConfig is the immutable configuration of a single run.
type CrawlConfig struct {
	StartURL       string
	OutputFilename string

	// MaxDepth limits how many links away from the seed a page may be.
	// A negative value means unlimited.
	MaxDepth int

	// ExcludePatterns are case-insensitive substrings; a URL containing any
	// of them is never visited.
	ExcludePatterns []string

	NoMerge          bool
	SaveIntermediate bool
	Verbose          bool

	// WorkDir holds the per-page PDFs until they are merged.
	WorkDir string

	// Timeout bounds each fetch and each render.
	Timeout time.Duration

	// MaxPages stops the crawl after that many URLs were visited.
	// Zero means unlimited.
	MaxPages int

	// ContentTypeAcceptance follows links regardless of their suffix and
	// relies on the fetcher rejecting non-HTML responses instead.
	ContentTypeAcceptance bool
}

// DepthLimited reports whether a maximum depth is configured.
func (c *CrawlConfig) DepthLimited() bool {
	return c.MaxDepth >= 0
}

// Validate returns an error if the configuration cannot be used for a run.
// It fills in defaults and drops empty exclude patterns, which would
// otherwise match every URL.
func (c *CrawlConfig) Validate() error {
	if c.StartURL == "" {
		return Errorf(EINVALID, "start URL required")
	}
	u, err := url.Parse(c.StartURL)
	if err != nil {
		return Errorf(EINVALID, "invalid start URL %q: %v", c.StartURL, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return Errorf(EINVALID, "start URL must use http or https: %q", c.StartURL)
	}
	if u.Host == "" {
		return Errorf(EINVALID, "start URL has no host: %q", c.StartURL)
	}

	if c.OutputFilename == "" {
		c.OutputFilename = DefaultOutputFilename
	}
	if c.WorkDir == "" {
		c.WorkDir = DefaultWorkDir
	}
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxPages < 0 {
		return Errorf(EINVALID, "max pages must not be negative")
	}

	patterns := c.ExcludePatterns[:0:0]
	for _, p := range c.ExcludePatterns {
		if p = strings.TrimSpace(p); p != "" {
			patterns = append(patterns, p)
		}
	}
	c.ExcludePatterns = patterns
	return nil
}
