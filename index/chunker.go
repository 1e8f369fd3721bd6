package index

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/fwojciec/hermes"
)

// DefaultMaxTokens is the context length of text-embedding-ada-002. It
// applies when a Chunker has no limit of its own.
const DefaultMaxTokens = 8191

var _ hermes.TokenCounter = ApproxCounter{}

// ApproxCounter estimates tokens when no model tokenizer is available. ASCII
// text counts one token per four bytes, rounded up. Every other byte counts
// as a token, which byte-level tokenizers never exceed.
type ApproxCounter struct{}

// CountTokens returns the estimated token count of text.
func (ApproxCounter) CountTokens(_ context.Context, text string) (int, error) {
	ascii, other := 0, 0
	for i := 0; i < len(text); i++ {
		if text[i] < utf8.RuneSelf {
			ascii++
		} else {
			other++
		}
	}
	return (ascii+3)/4 + other, nil
}

// Chunker splits normalized page text into pieces that fit the embedding
// model's context window.
type Chunker struct {
	Counter   hermes.TokenCounter
	MaxTokens int
}

// NewChunker creates a Chunker for an embedder accepting maxTokens tokens
// per input. A non-positive maxTokens selects DefaultMaxTokens.
func NewChunker(counter hermes.TokenCounter, maxTokens int) *Chunker {
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	return &Chunker{Counter: counter, MaxTokens: maxTokens}
}

// Split packs whole sentences into chunks of at most MaxTokens tokens.
// Sentences longer than the limit are split on word boundaries, and words
// over the limit are cut between runes. Empty chunks are never returned.
func (c *Chunker) Split(ctx context.Context, text string) ([]string, error) {
	counter := c.Counter
	if counter == nil {
		counter = ApproxCounter{}
	}
	maxTokens := c.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	p := packer{max: maxTokens}
	for _, sentence := range splitSentences(text) {
		n, err := counter.CountTokens(ctx, sentence)
		if err != nil {
			return nil, err
		}
		if n <= maxTokens {
			p.add(sentence, n, true)
			continue
		}
		for _, word := range strings.Fields(sentence) {
			pieces, err := fit(ctx, counter, word, maxTokens)
			if err != nil {
				return nil, err
			}
			for i, pc := range pieces {
				p.add(pc.text, pc.tokens, i == 0)
			}
		}
	}
	p.flush()

	return p.chunks, nil
}

type piece struct {
	text   string
	tokens int
}

// fit halves s between runes until every part counts at most limit tokens.
// A single rune is returned as is.
func fit(ctx context.Context, counter hermes.TokenCounter, s string, limit int) ([]piece, error) {
	n, err := counter.CountTokens(ctx, s)
	if err != nil {
		return nil, err
	}
	runes := []rune(s)
	if n <= limit || len(runes) < 2 {
		return []piece{{text: s, tokens: n}}, nil
	}

	mid := len(runes) / 2
	left, err := fit(ctx, counter, string(runes[:mid]), limit)
	if err != nil {
		return nil, err
	}
	right, err := fit(ctx, counter, string(runes[mid:]), limit)
	if err != nil {
		return nil, err
	}
	return append(left, right...), nil
}

// packer accumulates pieces greedily. Token counts of joined pieces are
// approximated by summing piece counts plus one per separator.
type packer struct {
	max int

	chunks []string
	cur    []string
	tokens int
}

// add appends piece to the current chunk. Without sep the piece continues
// the previous one, as when a word was cut.
func (p *packer) add(piece string, n int, sep bool) {
	extra := n
	if len(p.cur) > 0 && sep {
		extra++
	}
	if len(p.cur) > 0 && p.tokens+extra > p.max {
		p.flush()
		extra = n
	}
	if len(p.cur) > 0 && !sep {
		p.cur[len(p.cur)-1] += piece
	} else {
		p.cur = append(p.cur, piece)
	}
	p.tokens += extra
}

func (p *packer) flush() {
	if len(p.cur) == 0 {
		return
	}
	if chunk := strings.TrimSpace(strings.Join(p.cur, " ")); chunk != "" {
		p.chunks = append(p.chunks, chunk)
	}
	p.cur = p.cur[:0]
	p.tokens = 0
}

// splitSentences splits text after every period followed by whitespace.
func splitSentences(text string) []string {
	var sentences []string
	start := 0
	for i := 0; i < len(text); i++ {
		if text[i] != '.' {
			continue
		}
		if i+1 < len(text) && text[i+1] != ' ' && text[i+1] != '\n' && text[i+1] != '\t' {
			continue
		}
		if s := strings.TrimSpace(text[start : i+1]); s != "" {
			sentences = append(sentences, s)
		}
		start = i + 1
	}
	if s := strings.TrimSpace(text[start:]); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}
