package hermes

import "context"

// PageText holds the raw text of one PDF page.
type PageText struct {
	// Number is the 1-based page number.
	Number  int
	Content string
}

// Extractor extracts text from PDF files page by page.
type Extractor interface {
	// Extract returns the text of every page in the PDF at path.
	// Pages without a text layer are returned with empty content.
	Extract(ctx context.Context, path string) ([]PageText, error)
}
