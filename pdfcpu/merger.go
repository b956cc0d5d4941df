// Package pdfcpu merges PDF files with pdfcpu.
package pdfcpu

import (
	"os"
	"sync"

	"github.com/fwojciec/webpdf"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// Ensure Merger implements webpdf.Merger at compile time.
var _ webpdf.Merger = (*Merger)(nil)

// pdfcpu writes a config file to the user's config dir unless told not to.
var disableConfigDir sync.Once

// Merger concatenates PDF files page by page.
type Merger struct {
	conf *model.Configuration
}

// NewMerger creates a Merger using relaxed validation, which accepts the
// minor format deviations common in browser-generated PDFs.
func NewMerger() *Merger {
	disableConfigDir.Do(api.DisableConfigDir)

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return &Merger{conf: conf}
}

// Merge writes the pages of paths, in order, to dest. The result is built
// in a temporary file and renamed into place, so a failed merge leaves any
// existing dest untouched.
func (m *Merger) Merge(paths []string, dest string) error {
	if len(paths) == 0 {
		return webpdf.Errorf(webpdf.EINVALID, "no files to merge")
	}

	tmp := dest + ".part"
	if err := api.MergeCreateFile(paths, tmp, false, m.conf); err != nil {
		os.Remove(tmp)
		return webpdf.Errorf(webpdf.EMERGE, "merging %d files: %v", len(paths), err)
	}
	if err := os.Rename(tmp, dest); err != nil {
		os.Remove(tmp)
		return webpdf.Errorf(webpdf.EMERGE, "writing %s: %v", dest, err)
	}
	return nil
}
