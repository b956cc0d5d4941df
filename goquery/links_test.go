package goquery_test

import (
	"testing"

	"github.com/fwojciec/webpdf/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	t.Run("returns hrefs in document order", func(t *testing.T) {
		t.Parallel()

		html := `<html><body>
<nav><a href="/b.html">B</a></nav>
<main>
  <a href="a.html">A</a>
  <p>text <a href="https://other.com">Other</a></p>
  <a href="../up/">Up</a>
</main>
<footer><a href="/b.html">B again</a></footer>
</body></html>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html)

		require.NoError(t, err)
		assert.Equal(t, []string{"/b.html", "a.html", "https://other.com", "../up/", "/b.html"}, links)
	})

	t.Run("skips empty, fragment and non-HTTP links", func(t *testing.T) {
		t.Parallel()

		html := `<a href="">empty</a>
<a>no href</a>
<a href="#top">top</a>
<a href="javascript:void(0)">js</a>
<a href="MAILTO:me@example.com">mail</a>
<a href="tel:123">tel</a>
<a href="data:text/plain,hi">data</a>
<a href="  /kept.html  ">kept</a>`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html)

		require.NoError(t, err)
		assert.Equal(t, []string{"/kept.html"}, links)
	})

	t.Run("ignores non-anchor elements", func(t *testing.T) {
		t.Parallel()

		html := `<link href="/style.css" rel="stylesheet"><img src="/logo.png"><area href="/map.html">`

		links, err := goquery.NewLinkExtractor().ExtractLinks(html)

		require.NoError(t, err)
		assert.Empty(t, links)
	})
}
