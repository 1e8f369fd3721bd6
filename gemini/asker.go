// Package gemini implements embeddings, token counting and question answering
// on top of Google Gemini.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/hermes"
	"google.golang.org/genai"
)

// Answer generation defaults.
const (
	DefaultAskModel = "gemini-2.5-flash"

	// askContextSize is how many snippets are passed to the model.
	askContextSize = 8
)

// Ensure Asker implements hermes.Asker at compile time.
var _ hermes.Asker = (*Asker)(nil)

// Asker implements hermes.Asker using Google Gemini over search results.
type Asker struct {
	client *genai.Client
	search hermes.SearchService
	model  string
}

// NewAsker creates a new Asker.
func NewAsker(client *genai.Client, search hermes.SearchService) *Asker {
	return &Asker{client: client, search: search, model: DefaultAskModel}
}

// Ask answers a natural language question from the closest page snippets.
func (a *Asker) Ask(ctx context.Context, question string) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", hermes.Errorf(hermes.EINVALID, "question required")
	}

	results, err := a.search.Search(ctx, question, hermes.SearchOptions{Limit: askContextSize})
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		return "", hermes.Errorf(hermes.ENOTFOUND, "no indexed pages match the question")
	}

	result, err := a.client.Models.GenerateContent(ctx, a.model,
		[]*genai.Content{{
			Parts: []*genai.Part{{Text: BuildUserPrompt(results, question)}},
		}},
		BuildConfig(),
	)
	if err != nil {
		return "", err
	}
	if result == nil {
		return "", hermes.Errorf(hermes.EINTERNAL, "gemini returned nil result")
	}

	return result.Text(), nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.2)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "You are a helpful assistant answering questions about a collection of PDF documents. Answer only from the excerpts provided and cite the file and page you used. If the answer is not in the excerpts, say so.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the user prompt containing page excerpts and question.
func BuildUserPrompt(results []*hermes.SearchResult, question string) string {
	var sb strings.Builder
	sb.WriteString("<documents>\n")
	for i, r := range results {
		sb.WriteString("<document>\n")
		fmt.Fprintf(&sb, "<index>%d</index>\n", i+1)
		fmt.Fprintf(&sb, "<source>%s</source>\n", r.Path)
		fmt.Fprintf(&sb, "<page>%d</page>\n", r.Page)
		fmt.Fprintf(&sb, "<content>%s</content>\n", r.Text)
		sb.WriteString("</document>\n")
	}
	sb.WriteString("</documents>\n\n")
	fmt.Fprintf(&sb, "Question: %s", question)
	return sb.String()
}
