// Package pdf extracts page text from PDF files.
package pdf

import (
	"context"
	"fmt"

	"github.com/fwojciec/hermes"
	"github.com/ledongthuc/pdf"
)

// Ensure Extractor implements hermes.Extractor at compile time.
var _ hermes.Extractor = (*Extractor)(nil)

// Extractor reads the text layer of each page with ledongthuc/pdf.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the text of every page in the PDF at path. Scanned pages
// without a text layer come back empty. The parser panics on some malformed
// files, so panics are converted to EINVALID errors.
func (e *Extractor) Extract(ctx context.Context, path string) (pages []hermes.PageText, err error) {
	defer func() {
		if r := recover(); r != nil {
			pages = nil
			err = hermes.Errorf(hermes.EINVALID, "malformed PDF %q: %v", path, r)
		}
	}()

	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, hermes.Errorf(hermes.EINVALID, "open PDF %q: %v", path, err)
	}
	defer f.Close()

	n := r.NumPage()
	pages = make([]hermes.PageText, 0, n)
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, hermes.PageText{Number: i})
			continue
		}

		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("page %d of %s: %w", i, path, err)
		}
		pages = append(pages, hermes.PageText{Number: i, Content: text})
	}

	return pages, nil
}
