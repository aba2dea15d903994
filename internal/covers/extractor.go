// Package covers derives raster cover images from source documents.
//
// PDFs are rendered directly (first page). EPUBs are first converted
// to a temporary PDF through a DocumentConverter, which is always
// cleaned up. Any other extension yields no cover without an error.
package covers

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/go-fitz"
)

// Extractor derives a cover image from a source document.
type Extractor struct {
	converter DocumentConverter
}

// NewExtractor creates an Extractor using the given converter for
// formats that need an intermediate PDF.
func NewExtractor(converter DocumentConverter) *Extractor {
	return &Extractor{converter: converter}
}

// Extract returns the cover image for the document at path.
//
// A nil image with a nil error means the format is not supported and
// no extraction was attempted. A non-nil error means extraction was
// attempted and failed (corrupt file, empty document, conversion
// failure); callers are expected to fall back to a user-supplied
// image rather than treat this as fatal.
func (e *Extractor) Extract(ctx context.Context, path string) (image.Image, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf":
		return extractPDFCover(path)
	case ".epub":
		return e.extractEPUBCover(ctx, path)
	default:
		return nil, nil
	}
}

// extractPDFCover renders page 0 of the PDF to an RGB raster.
func extractPDFCover(path string) (image.Image, error) {
	doc, err := fitz.New(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer doc.Close()

	if doc.NumPage() == 0 {
		return nil, fmt.Errorf("pdf %s has no pages", path)
	}

	img, err := doc.Image(0)
	if err != nil {
		return nil, fmt.Errorf("render pdf page 0 of %s: %w", path, err)
	}
	return img, nil
}

// extractEPUBCover converts the EPUB to a temporary PDF and extracts
// from that. The temporary PDF is removed on every exit path.
func (e *Extractor) extractEPUBCover(ctx context.Context, path string) (image.Image, error) {
	tmp, err := os.CreateTemp("", "libtrack-cover-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp pdf: %w", err)
	}
	pdfPath := tmp.Name()
	tmp.Close()
	defer os.Remove(pdfPath)

	if err := e.converter.Convert(ctx, path, pdfPath); err != nil {
		return nil, fmt.Errorf("convert epub %s: %w", path, err)
	}
	return extractPDFCover(pdfPath)
}
