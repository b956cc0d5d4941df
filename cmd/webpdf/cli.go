package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/webpdf"
	"github.com/fwojciec/webpdf/crawl"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	Crawler *crawl.Crawler
	Merge   *crawl.MergeStage
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	URL              string        `arg:"" help:"Start URL to crawl"`
	Output           string        `short:"o" default:"website.pdf" help:"Merged output file"`
	MaxDepth         int           `default:"-1" help:"Maximum link depth from the start URL (-1 for unlimited)"`
	NoMerge          bool          `help:"Keep per-page PDFs and skip the merge"`
	SaveIntermediate bool          `help:"Keep per-page PDFs after merging"`
	Verbose          bool          `short:"v" help:"Log every fetch, render and skipped URL"`
	Exclude          []string      `placeholder:"PATTERN,..." help:"Skip URLs containing any of these comma-separated texts, case-insensitive; repeat the flag to add more"`
	WorkDir          string        `default:"website_download" env:"WEBPDF_WORK_DIR" help:"Directory for per-page PDFs"`
	Timeout          time.Duration `short:"t" default:"10s" env:"WEBPDF_TIMEOUT" help:"Timeout per fetch and per render"`
	Retries          int           `default:"0" help:"Retries for failed network fetches"`
	Rate             float64       `default:"0" help:"Requests per second to the site (0 for unlimited)"`
	MaxPages         int           `default:"0" help:"Stop after visiting this many URLs (0 for unlimited)"`
	ContentType      bool          `name:"content-type" help:"Follow every same-site link and keep only HTML responses"`
	Landscape        bool          `help:"Print pages in landscape orientation"`
	NoBackground     bool          `help:"Omit background graphics"`
	Browser          string        `env:"WEBPDF_BROWSER" help:"Path to the Chrome or Chromium binary"`
	NoSandbox        bool          `help:"Run the browser without its sandbox"`
}

// Config returns the crawl configuration described by the flags.
func (c *CLI) Config() webpdf.CrawlConfig {
	return webpdf.CrawlConfig{
		StartURL:              c.URL,
		OutputFilename:        c.Output,
		MaxDepth:              c.MaxDepth,
		ExcludePatterns:       c.Exclude,
		NoMerge:               c.NoMerge,
		SaveIntermediate:      c.SaveIntermediate,
		Verbose:               c.Verbose,
		WorkDir:               c.WorkDir,
		Timeout:               c.Timeout,
		MaxPages:              c.MaxPages,
		ContentTypeAcceptance: c.ContentType,
	}
}

// runCrawl crawls the site, prints progress and a summary, and merges the
// rendered pages. It fails when the merge stage has nothing to merge or the
// merge failed. Individual page failures only show up in the summary.
func runCrawl(deps *Dependencies, cfg webpdf.CrawlConfig) error {
	report, err := deps.Crawler.Run(deps.Ctx, cfg, printProgress(deps.Stdout, cfg.Verbose))
	if err != nil {
		return err
	}

	fmt.Fprintf(deps.Stdout, "\nRendered %d pages (%d failed, %d skipped)\n",
		report.RenderedCount, report.FailedCount, report.SkippedCount)

	if deps.Ctx.Err() != nil {
		fmt.Fprintln(deps.Stdout, "Interrupted, keeping pages rendered so far")
	}

	result, err := deps.Merge.Merge(report.PDFPaths, cfg)
	if err != nil {
		return err
	}

	switch result {
	case webpdf.NothingToMerge:
		return fmt.Errorf("no pages rendered from %s", cfg.StartURL)
	case webpdf.Merged:
		fmt.Fprintf(deps.Stdout, "Saved %s\n", cfg.OutputFilename)
	case webpdf.MergeSkipped:
		fmt.Fprintf(deps.Stdout, "Pages kept in %s\n", cfg.WorkDir)
	}
	return nil
}

// printProgress reports rendered pages and failures on w. Skipped URLs are
// only reported when verbose.
func printProgress(w io.Writer, verbose bool) webpdf.ProgressFunc {
	return func(r webpdf.PageResult) {
		switch {
		case r.Outcome == webpdf.OutcomeRendered:
			fmt.Fprintf(w, "saving %s -> %s\n", r.URL, r.PDFPath)
		case r.Outcome.Skipped():
			if verbose {
				fmt.Fprintf(w, "skipping %s (%s)\n", r.URL, r.Outcome)
			}
		default:
			fmt.Fprintf(w, "%s: %s: %s\n", r.Outcome, r.URL, errorText(r.Err))
		}
	}
}

// errorText returns the message of an application error and the full
// text of any other error.
func errorText(err error) string {
	if webpdf.ErrorCode(err) == webpdf.EINTERNAL {
		return err.Error()
	}
	return webpdf.ErrorMessage(err)
}
