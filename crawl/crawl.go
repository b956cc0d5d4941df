// Package crawl provides website crawling orchestration.
// It walks same-host links depth-first from a seed URL, renders every
// accepted page to a PDF file, and merges the rendered files.
package crawl

import (
	"context"
	"log/slog"
	"net/url"
	"time"

	"github.com/fwojciec/webpdf"
	"github.com/fwojciec/webpdf/fs"
)

// Crawler walks a website and renders its pages.
// Pages are processed one at a time; fetch, render and link discovery
// for a page complete before the next page is popped.
type Crawler struct {
	Fetcher  webpdf.Fetcher
	Links    webpdf.LinkExtractor
	Renderer webpdf.Renderer

	// RateLimiter, if set, is waited on before every fetch and render.
	RateLimiter webpdf.DomainLimiter

	// RetryDelays are the pauses between fetch attempts.
	// Nil means a single attempt.
	RetryDelays []time.Duration

	Logger *slog.Logger
}

// State is the mutable record of a single run. It is owned by one Run call.
type State struct {
	visited     *VisitedSet
	pageOrder   []string
	startDomain string
}

func newState(startDomain string) *State {
	return &State{
		visited:     NewVisitedSet(),
		startDomain: startDomain,
	}
}

// Run crawls the site described by cfg. The progress callback, if provided,
// receives one PageResult per crawl step.
//
// Fetch and render failures are page-local: they are reported and counted
// but never abort the crawl. Run returns an error only when the crawl cannot
// start (invalid configuration, unusable working directory). Cancelling ctx
// stops the crawl between pages and returns what was rendered so far.
func (c *Crawler) Run(ctx context.Context, cfg webpdf.CrawlConfig, progress webpdf.ProgressFunc) (*webpdf.CrawlReport, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger := c.logger()

	seed, err := Normalize(cfg.StartURL)
	if err != nil {
		return nil, err
	}
	seedURL, err := url.Parse(seed)
	if err != nil {
		return nil, webpdf.Errorf(webpdf.EINVALID, "invalid start URL %q: %v", seed, err)
	}

	workspace := fs.NewWorkspace(cfg.WorkDir)
	if err := workspace.Create(); err != nil {
		return nil, err
	}

	state := newState(seedURL.Host)
	policy := NewPolicy(cfg, state.startDomain)
	frontier := NewFrontier(Link{URL: seed, Depth: 0})
	report := &webpdf.CrawlReport{}

	record := func(result webpdf.PageResult) {
		switch {
		case result.Outcome == webpdf.OutcomeRendered:
			report.RenderedCount++
			logger.Debug("rendered", "url", result.URL, "depth", result.Depth, "path", result.PDFPath)
		case result.Outcome.Skipped():
			report.SkippedCount++
			logger.Debug("skip", "url", result.URL, "depth", result.Depth, "reason", result.Outcome.String())
		default:
			report.FailedCount++
			logger.Warn(result.Outcome.String(), "url", result.URL, "depth", result.Depth, "err", result.Err)
		}
		if progress != nil {
			progress(result)
		}
	}

	logger.Debug("crawl started", "url", seed, "domain", state.startDomain)

	for {
		link, ok := frontier.Pop()
		if !ok {
			break
		}

		if err := ctx.Err(); err != nil {
			logger.Warn("crawl canceled", "pending", frontier.Len()+1, "err", err)
			break
		}
		if cfg.MaxPages > 0 && state.visited.Len() >= cfg.MaxPages {
			logger.Warn("page limit reached", "limit", cfg.MaxPages, "pending", frontier.Len()+1)
			break
		}

		// The seed is exempt from the host and suffix rules; any popped link
		// may have been visited since it was pushed.
		if d := policy.CheckVisit(link.URL, link.Depth, state.visited); d != webpdf.Accept {
			record(webpdf.PageResult{URL: link.URL, Depth: link.Depth, Outcome: d.Outcome()})
			continue
		}

		// Marking before fetching keeps cyclic link graphs finite.
		state.visited.Add(link.URL)
		ordinal := state.visited.Len()

		html, err := c.fetch(ctx, link.URL)
		if err != nil {
			record(webpdf.PageResult{URL: link.URL, Depth: link.Depth, Outcome: webpdf.OutcomeFetchFailed, Err: err})
			continue
		}

		path := workspace.Path(PageFilename(ordinal, link.URL))
		if err := c.render(ctx, link.URL, path); err != nil {
			record(webpdf.PageResult{URL: link.URL, Depth: link.Depth, PDFPath: path, Outcome: webpdf.OutcomeRenderFailed, Err: err})
		} else {
			state.pageOrder = append(state.pageOrder, path)
			record(webpdf.PageResult{URL: link.URL, Depth: link.Depth, PDFPath: path, Outcome: webpdf.OutcomeRendered})
		}

		hrefs, err := c.Links.ExtractLinks(html)
		if err != nil {
			logger.Warn("link extraction failed", "url", link.URL, "err", err)
			continue
		}

		var children []Link
		for _, href := range hrefs {
			next, err := Resolve(link.URL, href)
			if err != nil {
				logger.Debug("skip", "href", href, "reason", "unparseable", "err", err)
				continue
			}
			depth := link.Depth + 1
			if d := policy.Accept(next, depth, state.visited); d != webpdf.Accept {
				record(webpdf.PageResult{URL: next, Depth: depth, Outcome: d.Outcome()})
				continue
			}
			children = append(children, Link{URL: next, Depth: depth})
		}
		frontier.PushChildren(children)
	}

	report.PDFPaths = state.pageOrder
	logger.Debug("crawl finished",
		"visited", state.visited.Len(),
		"rendered", report.RenderedCount,
		"failed", report.FailedCount,
		"skipped", report.SkippedCount,
	)
	return report, nil
}

// fetch retrieves page markup, honouring the rate limiter and retry delays.
func (c *Crawler) fetch(ctx context.Context, rawURL string) (string, error) {
	fetchFn := func(ctx context.Context, rawURL string) (string, error) {
		if err := c.wait(ctx, rawURL); err != nil {
			return "", err
		}
		return c.Fetcher.Fetch(ctx, rawURL)
	}
	return FetchWithRetryDelays(ctx, rawURL, fetchFn, c.Logger, c.RetryDelays)
}

func (c *Crawler) render(ctx context.Context, rawURL, path string) error {
	if err := c.wait(ctx, rawURL); err != nil {
		return err
	}
	return c.Renderer.Render(ctx, rawURL, path)
}

func (c *Crawler) wait(ctx context.Context, rawURL string) error {
	if c.RateLimiter == nil {
		return nil
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return webpdf.Errorf(webpdf.EINVALID, "invalid URL %q: %v", rawURL, err)
	}
	return c.RateLimiter.Wait(ctx, u.Host)
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return c.Logger
}
