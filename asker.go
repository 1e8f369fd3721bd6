package hermes

import "context"

// Asker provides natural language question answering over the indexed PDFs.
type Asker interface {
	// Ask answers a question using the most relevant page snippets.
	// Returns ENOTFOUND if no snippet matches.
	Ask(ctx context.Context, question string) (string, error)
}
