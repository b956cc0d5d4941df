package crawl

import (
	"log/slog"

	"github.com/fwojciec/webpdf"
	"github.com/fwojciec/webpdf/fs"
)

// MergeStage combines the per-page PDFs of a crawl into the output file
// and removes the intermediates afterwards.
type MergeStage struct {
	Merger webpdf.Merger
	Logger *slog.Logger
}

// Merge writes paths, in order, to cfg.OutputFilename.
//
// Without paths the result is NothingToMerge and no output file is produced,
// whether or not cfg.NoMerge is set. With cfg.NoMerge every intermediate file
// is kept. After a successful merge the
// intermediates and the then-empty working directory are removed unless
// cfg.SaveIntermediate is set; cleanup failures are logged and ignored.
// A merge failure is returned as an EMERGE error.
func (s *MergeStage) Merge(paths []string, cfg webpdf.CrawlConfig) (webpdf.MergeResult, error) {
	logger := s.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	if len(paths) == 0 {
		logger.Warn("nothing to merge")
		return webpdf.NothingToMerge, nil
	}
	if cfg.NoMerge {
		logger.Debug("merge skipped", "files", len(paths))
		return webpdf.MergeSkipped, nil
	}

	output := cfg.OutputFilename
	if output == "" {
		output = webpdf.DefaultOutputFilename
	}
	if err := s.Merger.Merge(paths, output); err != nil {
		if webpdf.ErrorCode(err) != webpdf.EMERGE {
			err = webpdf.Errorf(webpdf.EMERGE, "merging %d files into %s: %v", len(paths), output, err)
		}
		return webpdf.MergeFailed, err
	}
	logger.Debug("merged", "files", len(paths), "output", output)

	if cfg.SaveIntermediate {
		return webpdf.Merged, nil
	}

	workDir := cfg.WorkDir
	if workDir == "" {
		workDir = webpdf.DefaultWorkDir
	}
	workspace := fs.NewWorkspace(workDir)
	for _, err := range workspace.Remove(paths) {
		logger.Warn("cleanup failed", "err", err)
	}
	if err := workspace.RemoveIfEmpty(); err != nil {
		logger.Warn("cleanup failed", "err", err)
	}
	return webpdf.Merged, nil
}
