// Package goquery provides HTML link extraction using goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/webpdf"
)

var _ webpdf.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor returns the targets of anchor elements in document order.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks parses HTML and returns the href of every anchor, in the
// order the anchors appear. Empty hrefs, in-page fragments and non-HTTP
// schemes (javascript:, mailto:, tel:, data:) are left out. Duplicates are
// kept; the crawler's visited set handles them.
func (e *LinkExtractor) ExtractLinks(html string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, webpdf.Errorf(webpdf.EINVALID, "failed to parse HTML: %v", err)
	}

	var links []string
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" || strings.HasPrefix(href, "#") {
			return
		}
		if isNonHTTPLink(href) {
			return
		}
		links = append(links, href)
	})
	return links, nil
}

// isNonHTTPLink returns true for links that should not be followed.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(href)
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
