package openai

import (
	"context"

	"github.com/fwojciec/hermes"
	"github.com/pkoukk/tiktoken-go"
)

// Encoding is the tokenizer used by the OpenAI embedding models.
const Encoding = "cl100k_base"

var _ hermes.TokenCounter = (*TokenCounter)(nil)

// TokenCounter counts tokens with the cl100k_base byte-pair encoding.
type TokenCounter struct {
	enc *tiktoken.Tiktoken
}

// NewTokenCounter loads the encoding. The first call may download the
// encoding file, which is cached under TIKTOKEN_CACHE_DIR when set.
func NewTokenCounter() (*TokenCounter, error) {
	enc, err := tiktoken.GetEncoding(Encoding)
	if err != nil {
		return nil, hermes.Errorf(hermes.EUNAVAILABLE, "load %s encoding: %v", Encoding, err)
	}
	return &TokenCounter{enc: enc}, nil
}

// CountTokens returns the number of tokens in text. Special tokens such as
// <|endoftext|> count as one token each.
func (tc *TokenCounter) CountTokens(_ context.Context, text string) (int, error) {
	if text == "" {
		return 0, nil
	}
	return len(tc.enc.Encode(text, []string{"all"}, nil)), nil
}
