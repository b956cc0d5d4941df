package webpdf

import "context"

// Renderer converts a web page to a PDF file on disk.
// Implementations fetch and render the page themselves, including any
// client-side content.
type Renderer interface {
	// Render writes the PDF for url to dest. On failure no file is left at dest.
	Render(ctx context.Context, url string, dest string) error

	// Close releases renderer resources.
	// Must be called when the Renderer is no longer needed.
	Close() error
}

// Merger concatenates PDF files.
type Merger interface {
	// Merge writes the pages of every file in paths, in order, to dest.
	Merge(paths []string, dest string) error
}
