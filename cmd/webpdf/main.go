package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/webpdf"
	"github.com/fwojciec/webpdf/crawl"
	"github.com/fwojciec/webpdf/goquery"
	webpdfhttp "github.com/fwojciec/webpdf/http"
	"github.com/fwojciec/webpdf/pdfcpu"
	"github.com/fwojciec/webpdf/rod"
	webpdfslog "github.com/fwojciec/webpdf/slog"
	"github.com/google/uuid"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, errorText(err))
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Collaborators for end-to-end testing. Nil fields are replaced with
	// the production implementations.
	Fetcher  webpdf.Fetcher
	Renderer webpdf.Renderer
	Merger   webpdf.Merger
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("webpdf"),
		kong.Description("Crawl a website and save its pages as one PDF"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg := cli.Config()
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := newLogger(stderr, cfg.Verbose)

	fetcher := m.Fetcher
	if fetcher == nil {
		f := webpdfhttp.NewFetcher(
			webpdfhttp.WithTimeout(cfg.Timeout),
			webpdfhttp.WithHTMLOnly(cfg.ContentTypeAcceptance),
		)
		defer f.Close()
		fetcher = f
	}

	renderer := m.Renderer
	if renderer == nil {
		r, err := rod.NewRenderer(
			rod.WithRenderTimeout(cfg.Timeout),
			rod.WithLandscape(cli.Landscape),
			rod.WithPrintBackground(!cli.NoBackground),
			rod.WithManagerOptions(rod.WithBrowserBin(cli.Browser), rod.WithNoSandbox(cli.NoSandbox)),
		)
		if err != nil {
			fmt.Fprintln(stderr, "Hint: Chrome or Chromium must be installed")
			return fmt.Errorf("failed to start browser: %w", err)
		}
		defer r.Close()
		renderer = r
	}

	merger := m.Merger
	if merger == nil {
		merger = pdfcpu.NewMerger()
	}

	if cfg.Verbose {
		fetcher = webpdfslog.NewLoggingFetcher(fetcher, logger)
		renderer = webpdfslog.NewLoggingRenderer(renderer, logger)
		merger = webpdfslog.NewLoggingMerger(merger, logger)
	}

	var limiter webpdf.DomainLimiter
	if cli.Rate > 0 {
		limiter = crawl.NewDomainLimiter(cli.Rate)
	}

	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
		Crawler: &crawl.Crawler{
			Fetcher:     fetcher,
			Links:       goquery.NewLinkExtractor(),
			Renderer:    renderer,
			RateLimiter: limiter,
			RetryDelays: crawl.RetryDelays(cli.Retries),
			Logger:      logger,
		},
		Merge: &crawl.MergeStage{
			Merger: merger,
			Logger: logger,
		},
	}

	return runCrawl(deps, cfg)
}

// newLogger returns a text logger on w. Verbose runs log at debug level,
// otherwise only warnings and errors are shown. Every line carries the
// run id.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})
	return slog.New(handler).With("run", uuid.NewString())
}
