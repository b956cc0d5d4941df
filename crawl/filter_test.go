package crawl_test

import (
	"testing"

	"github.com/fwojciec/webpdf"
	"github.com/fwojciec/webpdf/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases scheme and host", "HTTPS://Example.COM/Docs/", "https://example.com/Docs/"},
		{"drops default port", "https://example.com:443/a.html", "https://example.com/a.html"},
		{"removes dot segments", "https://example.com/a/../b.html", "https://example.com/b.html"},
		{"removes fragment", "https://example.com/a.html#section", "https://example.com/a.html"},
		{"keeps query", "https://example.com/a.html?page=2", "https://example.com/a.html?page=2"},
		{"empty path becomes root", "https://Example.com", "https://example.com/"},
		{"empty path with query", "https://example.com?lang=en", "https://example.com/?lang=en"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := crawl.Normalize(tt.in)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		base string
		href string
		want string
	}{
		{"relative sibling", "https://example.com/docs/intro.html", "setup.html", "https://example.com/docs/setup.html"},
		{"parent directory", "https://example.com/docs/intro.html", "../about.html", "https://example.com/about.html"},
		{"root relative", "https://example.com/docs/intro.html", "/index.html", "https://example.com/index.html"},
		{"absolute", "https://example.com/", "https://other.com/x.html", "https://other.com/x.html"},
		{"absolute bare host", "https://example.com/a.html", "https://example.com", "https://example.com/"},
		{"fragment only link resolves to page", "https://example.com/docs/", "#top", "https://example.com/docs/"},
		{"surrounding whitespace", "https://example.com/", "  a.html ", "https://example.com/a.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := crawl.Resolve(tt.base, tt.href)

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	t.Run("rejects unparseable link", func(t *testing.T) {
		t.Parallel()

		_, err := crawl.Resolve("https://example.com/", "http://[::1")

		assert.Equal(t, webpdf.EINVALID, webpdf.ErrorCode(err))
	})
}

func TestPolicy_Accept(t *testing.T) {
	t.Parallel()

	cfg := webpdf.CrawlConfig{
		MaxDepth:        1,
		ExcludePatterns: []string{"login"},
	}

	tests := []struct {
		name  string
		url   string
		depth int
		want  webpdf.Decision
	}{
		{"same host html page", "https://site/page.html", 1, webpdf.Accept},
		{"directory index", "https://site/docs/", 1, webpdf.Accept},
		{"too deep", "https://site/deep.html", 2, webpdf.RejectDepth},
		{"exclude is case-insensitive", "https://site/LOGIN/page.html", 1, webpdf.RejectExcluded},
		{"other host", "https://other.com/page.html", 1, webpdf.RejectExternal},
		{"subdomain is external", "https://docs.site/page.html", 1, webpdf.RejectExternal},
		{"non-http scheme", "ftp://site/page.html", 1, webpdf.RejectExternal},
		{"pdf document", "https://site/manual.pdf", 1, webpdf.RejectSuffix},
		{"extensionless path", "https://site/about", 1, webpdf.RejectSuffix},
		{"host is case-insensitive", "https://SITE/page.html", 1, webpdf.Accept},
	}

	policy := crawl.NewPolicy(cfg, "site")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, policy.Accept(tt.url, tt.depth, nil))
		})
	}

	t.Run("visited wins over every other rule", func(t *testing.T) {
		t.Parallel()

		visited := crawl.NewVisitedSet()
		visited.Add("https://site/login.pdf")

		assert.Equal(t, webpdf.RejectVisited, policy.Accept("https://site/login.pdf", 5, visited))
	})

	t.Run("is pure", func(t *testing.T) {
		t.Parallel()

		visited := crawl.NewVisitedSet()
		visited.Add("https://site/a.html")

		for _, u := range []string{"https://site/a.html", "https://site/b.html", "https://other.com/"} {
			first := policy.Accept(u, 1, visited)
			second := policy.Accept(u, 1, visited)
			assert.Equal(t, first, second, u)
		}
	})

	t.Run("negative max depth is unlimited", func(t *testing.T) {
		t.Parallel()

		p := crawl.NewPolicy(webpdf.CrawlConfig{MaxDepth: -1}, "site")

		assert.Equal(t, webpdf.Accept, p.Accept("https://site/a.html", 1000, nil))
	})

	t.Run("zero max depth admits only the seed", func(t *testing.T) {
		t.Parallel()

		p := crawl.NewPolicy(webpdf.CrawlConfig{MaxDepth: 0}, "site")

		assert.Equal(t, webpdf.Accept, p.CheckVisit("https://site/", 0, nil))
		assert.Equal(t, webpdf.RejectDepth, p.Accept("https://site/a.html", 1, nil))
	})

	t.Run("content type acceptance disables the suffix rule", func(t *testing.T) {
		t.Parallel()

		p := crawl.NewPolicy(webpdf.CrawlConfig{MaxDepth: -1, ContentTypeAcceptance: true}, "site")

		assert.Equal(t, webpdf.Accept, p.Accept("https://site/about", 1, nil))
		assert.Equal(t, webpdf.RejectExternal, p.Accept("https://other.com/about", 1, nil))
	})
}

func TestPolicy_CheckVisit(t *testing.T) {
	t.Parallel()

	t.Run("ignores host and suffix", func(t *testing.T) {
		t.Parallel()

		p := crawl.NewPolicy(webpdf.CrawlConfig{MaxDepth: -1}, "site")

		assert.Equal(t, webpdf.Accept, p.CheckVisit("https://other.com/start", 0, nil))
	})

	t.Run("applies exclusions to the seed", func(t *testing.T) {
		t.Parallel()

		p := crawl.NewPolicy(webpdf.CrawlConfig{MaxDepth: -1, ExcludePatterns: []string{"Private"}}, "site")

		assert.Equal(t, webpdf.RejectExcluded, p.CheckVisit("https://site/private/", 0, nil))
	})
}
