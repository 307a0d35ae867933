package source

import (
	"errors"
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// ErrPageCountMismatch is returned when a page dump does not cover
// the same number of pages as its source PDF.
var ErrPageCountMismatch = errors.New("page count mismatch")

// VerifyPageCount cross-checks a dump's page count against the PDF it
// was extracted from. Catches truncated or stale dumps before any
// table enters the engine.
func VerifyPageCount(pdfPath string, dumpPages int) error {
	f, err := os.Open(pdfPath)
	if err != nil {
		return fmt.Errorf("open PDF: %w", err)
	}
	defer f.Close()

	pageCount, err := api.PageCount(f, nil)
	if err != nil {
		return fmt.Errorf("count PDF pages: %w", err)
	}
	if pageCount != dumpPages {
		return fmt.Errorf("%w: PDF has %d pages, dump has %d", ErrPageCountMismatch, pageCount, dumpPages)
	}
	return nil
}
