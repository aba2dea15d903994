package covers

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"time"
)

// DocumentConverter converts a document into a PDF at the given output
// path. Implementations must treat failure as a normal outcome; the
// extraction pipeline degrades to "no cover" when conversion fails.
type DocumentConverter interface {
	Convert(ctx context.Context, srcPath, pdfPath string) error
}

// EbookConvert runs Calibre's ebook-convert command-line tool.
type EbookConvert struct {
	Command string        // binary name or absolute path, e.g. "ebook-convert"
	Timeout time.Duration // zero means no bound on the conversion
}

// Convert invokes the external tool as "<command> <src> <pdf>". A
// non-zero exit status or an exceeded timeout is returned as an error
// with the tool's combined output attached.
func (c EbookConvert) Convert(ctx context.Context, srcPath, pdfPath string) error {
	if c.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.Command, srcPath, pdfPath)
	out, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s: %w: %s", c.Command, err, bytes.TrimSpace(out))
	}
	return nil
}
