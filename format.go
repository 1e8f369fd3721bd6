package hermes

import (
	"fmt"
	"strings"
)

// SnippetLength is the maximum number of runes shown per result.
const SnippetLength = 300

// FormatResults formats search results for display.
// Results are numbered and separated by blank lines.
func FormatResults(results []*SearchResult) string {
	if len(results) == 0 {
		return ""
	}

	parts := make([]string, 0, len(results))
	for i, r := range results {
		header := fmt.Sprintf("%d. %s (page %d", i+1, r.Path, r.Page)
		if r.Distance != nil {
			header += fmt.Sprintf(", distance %.2f", *r.Distance)
		}
		header += ")"
		parts = append(parts, header+"\n   "+Snippet(r.Text, SnippetLength))
	}

	return strings.Join(parts, "\n\n")
}

// Snippet shortens text to at most n runes, appending "..." when cut.
func Snippet(text string, n int) string {
	runes := []rune(strings.TrimSpace(text))
	if n <= 0 || len(runes) <= n {
		return string(runes)
	}
	if n <= 3 {
		return string(runes[:n])
	}
	return string(runes[:n-3]) + "..."
}
