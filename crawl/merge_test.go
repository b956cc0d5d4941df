package crawl_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/webpdf"
	"github.com/fwojciec/webpdf/crawl"
	"github.com/fwojciec/webpdf/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// concatMerger writes the bytes of every input, in order, to dest.
func concatMerger(calls *int) *mock.Merger {
	return &mock.Merger{
		MergeFn: func(paths []string, dest string) error {
			*calls++
			var out []byte
			for _, p := range paths {
				b, err := os.ReadFile(p)
				if err != nil {
					return err
				}
				out = append(out, b...)
			}
			return os.WriteFile(dest, out, 0644)
		},
	}
}

// writePages creates one file per name in a fresh working directory and
// returns a config pointing at it along with the file paths.
func writePages(t *testing.T, names ...string) (webpdf.CrawlConfig, []string) {
	t.Helper()

	root := t.TempDir()
	cfg := webpdf.CrawlConfig{
		StartURL:       "https://site/",
		OutputFilename: filepath.Join(root, "website.pdf"),
		WorkDir:        filepath.Join(root, "work"),
	}
	require.NoError(t, os.MkdirAll(cfg.WorkDir, 0755))

	var paths []string
	for _, name := range names {
		p := filepath.Join(cfg.WorkDir, name)
		require.NoError(t, os.WriteFile(p, []byte(name+";"), 0644))
		paths = append(paths, p)
	}
	return cfg, paths
}

func TestMergeStage_Merge(t *testing.T) {
	t.Parallel()

	t.Run("merges in order and removes intermediates", func(t *testing.T) {
		t.Parallel()

		// Given three rendered pages
		cfg, paths := writePages(t, "001_index.pdf", "002_a.pdf", "003_b.pdf")
		calls := 0
		stage := &crawl.MergeStage{Merger: concatMerger(&calls)}

		// When they are merged
		result, err := stage.Merge(paths, cfg)

		// Then the output preserves discovery order and the working directory is gone
		require.NoError(t, err)
		assert.Equal(t, webpdf.Merged, result)
		out, err := os.ReadFile(cfg.OutputFilename)
		require.NoError(t, err)
		assert.Equal(t, "001_index.pdf;002_a.pdf;003_b.pdf;", string(out))
		_, err = os.Stat(cfg.WorkDir)
		assert.True(t, os.IsNotExist(err))
	})

	t.Run("keeps intermediates when asked to", func(t *testing.T) {
		t.Parallel()

		cfg, paths := writePages(t, "001_index.pdf", "002_a.pdf")
		cfg.SaveIntermediate = true
		calls := 0
		stage := &crawl.MergeStage{Merger: concatMerger(&calls)}

		result, err := stage.Merge(paths, cfg)

		require.NoError(t, err)
		assert.Equal(t, webpdf.Merged, result)
		assert.FileExists(t, cfg.OutputFilename)
		for _, p := range paths {
			assert.FileExists(t, p)
		}
	})

	t.Run("no merge keeps every file and writes no output", func(t *testing.T) {
		t.Parallel()

		cfg, paths := writePages(t, "001_index.pdf")
		cfg.NoMerge = true
		calls := 0
		stage := &crawl.MergeStage{Merger: concatMerger(&calls)}

		result, err := stage.Merge(paths, cfg)

		require.NoError(t, err)
		assert.Equal(t, webpdf.MergeSkipped, result)
		assert.Equal(t, 0, calls)
		assert.FileExists(t, paths[0])
		assert.NoFileExists(t, cfg.OutputFilename)
	})

	t.Run("nothing to merge creates no output", func(t *testing.T) {
		t.Parallel()

		cfg, _ := writePages(t)
		calls := 0
		stage := &crawl.MergeStage{Merger: concatMerger(&calls)}

		result, err := stage.Merge(nil, cfg)

		require.NoError(t, err)
		assert.Equal(t, webpdf.NothingToMerge, result)
		assert.Equal(t, 0, calls)
		assert.NoFileExists(t, cfg.OutputFilename)
	})

	t.Run("nothing to merge takes precedence over no merge", func(t *testing.T) {
		t.Parallel()

		cfg, _ := writePages(t)
		cfg.NoMerge = true
		calls := 0
		stage := &crawl.MergeStage{Merger: concatMerger(&calls)}

		result, err := stage.Merge(nil, cfg)

		require.NoError(t, err)
		assert.Equal(t, webpdf.NothingToMerge, result)
		assert.Equal(t, 0, calls)
	})

	t.Run("merge failure keeps intermediates", func(t *testing.T) {
		t.Parallel()

		cfg, paths := writePages(t, "001_index.pdf", "002_a.pdf")
		stage := &crawl.MergeStage{Merger: &mock.Merger{
			MergeFn: func([]string, string) error {
				return errors.New("corrupt xref table")
			},
		}}

		result, err := stage.Merge(paths, cfg)

		assert.Equal(t, webpdf.MergeFailed, result)
		assert.Equal(t, webpdf.EMERGE, webpdf.ErrorCode(err))
		for _, p := range paths {
			assert.FileExists(t, p)
		}
	})

	t.Run("cleanup leaves foreign files alone", func(t *testing.T) {
		t.Parallel()

		cfg, paths := writePages(t, "001_index.pdf")
		foreign := filepath.Join(cfg.WorkDir, "notes.txt")
		require.NoError(t, os.WriteFile(foreign, []byte("keep"), 0644))
		calls := 0
		stage := &crawl.MergeStage{Merger: concatMerger(&calls)}

		result, err := stage.Merge(paths, cfg)

		require.NoError(t, err)
		assert.Equal(t, webpdf.Merged, result)
		assert.NoFileExists(t, paths[0])
		assert.FileExists(t, foreign)
	})
}
