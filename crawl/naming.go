package crawl

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// maxSlugLen bounds the slug so filenames stay well under common
// filesystem name limits.
const maxSlugLen = 100

// PageFilename returns the file name for the page rendered as the
// ordinal-th visited URL, e.g. "003_docs_intro.pdf".
// Names sort lexically in discovery order up to 999 pages; past that the
// ordinal widens. Merging follows CrawlReport.PDFPaths, never name order.
func PageFilename(ordinal int, rawURL string) string {
	return fmt.Sprintf("%03d_%s.pdf", ordinal, Slug(rawURL))
}

// Slug derives a filesystem-safe token from the URL path: segments joined
// with "_", surrounding slashes stripped, the last segment's extension
// removed, and "index" for an empty path.
func Slug(rawURL string) string {
	var p string
	if u, err := url.Parse(rawURL); err == nil {
		p = u.Path
	}

	p = strings.Trim(p, "/")
	p = strings.TrimSuffix(p, path.Ext(p))
	p = strings.Trim(p, "/")
	if p == "" {
		return "index"
	}

	slug := strings.Map(safeRune, strings.ReplaceAll(p, "/", "_"))
	if len(slug) > maxSlugLen {
		sum := uint32(xxhash.Sum64String(slug))
		slug = fmt.Sprintf("%s-%08x", slug[:maxSlugLen], sum)
	}
	return slug
}

func safeRune(r rune) rune {
	switch {
	case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		return r
	case r == '.', r == '_', r == '-':
		return r
	}
	return '-'
}
