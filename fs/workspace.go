// Package fs provides the working directory that holds per-page PDFs.
package fs

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/fwojciec/webpdf"
)

// Workspace is a directory of intermediate files for a single run.
// Concurrent runs must use different directories.
type Workspace struct {
	dir string
}

// NewWorkspace creates a Workspace rooted at dir. The directory is not
// touched until Create is called.
func NewWorkspace(dir string) *Workspace {
	return &Workspace{dir: dir}
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string {
	return w.dir
}

// Create makes the workspace directory, including missing parents.
// An existing directory is reused.
func (w *Workspace) Create() error {
	if err := os.MkdirAll(w.dir, 0755); err != nil {
		return webpdf.Errorf(webpdf.EINVALID, "creating working directory %s: %v", w.dir, err)
	}
	return nil
}

// Path returns the location of name inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Remove deletes every path and returns one ECLEANUP error per path that
// could not be deleted. Paths that no longer exist are not errors.
func (w *Workspace) Remove(paths []string) []error {
	var errs []error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			errs = append(errs, webpdf.Errorf(webpdf.ECLEANUP, "removing %s: %v", p, err))
		}
	}
	return errs
}

// RemoveIfEmpty deletes the workspace directory if nothing is left in it.
// A non-empty directory is left alone and reported as ECLEANUP.
func (w *Workspace) RemoveIfEmpty() error {
	entries, err := os.ReadDir(w.dir)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	} else if err != nil {
		return webpdf.Errorf(webpdf.ECLEANUP, "reading working directory %s: %v", w.dir, err)
	}
	if len(entries) > 0 {
		return webpdf.Errorf(webpdf.ECLEANUP, "working directory %s not empty (%d entries)", w.dir, len(entries))
	}
	if err := os.Remove(w.dir); err != nil {
		return webpdf.Errorf(webpdf.ECLEANUP, "removing working directory %s: %v", w.dir, err)
	}
	return nil
}
