package crawl

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/purell"
	"github.com/fwojciec/webpdf"
)

// normalizeFlags are applied to every URL before it is compared or stored.
const normalizeFlags = purell.FlagsSafe | purell.FlagRemoveDotSegments | purell.FlagRemoveFragment

// Normalize returns the canonical form of an absolute URL: lower-case scheme
// and host, no default port, no dot segments, no fragment and "/" for an
// empty HTTP path.
func Normalize(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", webpdf.Errorf(webpdf.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	return normalize(u), nil
}

// Resolve resolves href against the page it was found on and normalizes the result.
func Resolve(baseURL, href string) (string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return "", webpdf.Errorf(webpdf.EINVALID, "invalid base URL %q: %v", baseURL, err)
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return "", webpdf.Errorf(webpdf.EINVALID, "invalid link %q: %v", href, err)
	}
	return normalize(base.ResolveReference(ref)), nil
}

// normalize applies purell and maps an empty HTTP path to "/"; both forms
// name the same resource.
func normalize(u *url.URL) string {
	scheme := strings.ToLower(u.Scheme)
	if (scheme == "http" || scheme == "https") && u.Opaque == "" && u.Path == "" {
		u.Path = "/"
		u.RawPath = ""
	}
	return purell.NormalizeURL(u, normalizeFlags)
}

// Visited reports whether a normalized URL was already visited.
type Visited interface {
	Contains(url string) bool
}

// Policy decides which URLs the crawler visits.
// It holds no mutable state; decisions depend only on the arguments.
type Policy struct {
	startDomain string
	maxDepth    int
	exclude     []string

	// suffixHeuristic limits followed links to ones ending in ".html" or "/".
	suffixHeuristic bool
}

// NewPolicy creates a Policy for a crawl of startDomain under cfg.
func NewPolicy(cfg webpdf.CrawlConfig, startDomain string) *Policy {
	exclude := make([]string, 0, len(cfg.ExcludePatterns))
	for _, p := range cfg.ExcludePatterns {
		if p != "" {
			exclude = append(exclude, strings.ToLower(p))
		}
	}
	maxDepth := cfg.MaxDepth
	if maxDepth < 0 {
		maxDepth = -1
	}
	return &Policy{
		startDomain:     strings.ToLower(startDomain),
		maxDepth:        maxDepth,
		exclude:         exclude,
		suffixHeuristic: !cfg.ContentTypeAcceptance,
	}
}

// StartDomain returns the host the crawl is restricted to.
func (p *Policy) StartDomain() string {
	return p.startDomain
}

// CheckVisit applies the rules that hold for every URL, the seed included:
// already visited, too deep, or excluded by pattern.
func (p *Policy) CheckVisit(rawURL string, depth int, visited Visited) webpdf.Decision {
	if visited != nil && visited.Contains(rawURL) {
		return webpdf.RejectVisited
	}
	if p.maxDepth >= 0 && depth > p.maxDepth {
		return webpdf.RejectDepth
	}
	lower := strings.ToLower(rawURL)
	for _, pattern := range p.exclude {
		if strings.Contains(lower, pattern) {
			return webpdf.RejectExcluded
		}
	}
	return webpdf.Accept
}

// Accept applies the full policy to a discovered link. Beyond CheckVisit it
// rejects links to other hosts and, unless content-type acceptance is on,
// links that look like neither an HTML document nor a directory index.
func (p *Policy) Accept(rawURL string, depth int, visited Visited) webpdf.Decision {
	if d := p.CheckVisit(rawURL, depth, visited); d != webpdf.Accept {
		return d
	}

	u, err := url.Parse(rawURL)
	if err != nil || !strings.EqualFold(u.Host, p.startDomain) {
		return webpdf.RejectExternal
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return webpdf.RejectExternal
	}

	if p.suffixHeuristic && !strings.HasSuffix(rawURL, ".html") && !strings.HasSuffix(rawURL, "/") {
		return webpdf.RejectSuffix
	}
	return webpdf.Accept
}
