// Package openai implements hermes.Embedder on the OpenAI embeddings API.
package openai

import (
	"context"
	"fmt"

	"github.com/fwojciec/hermes"
	openai "github.com/sashabaranov/go-openai"
	"golang.org/x/time/rate"
)

// Embedding defaults. ada-002 matches the vectors the service was built on.
const (
	DefaultModel      = openai.AdaEmbeddingV2
	DefaultDimensions = 1536
	DefaultMaxTokens  = 8191

	// DefaultRequestsPerSecond keeps bulk indexing under the tier-1 rate limit.
	DefaultRequestsPerSecond = 5

	// maxBatchSize is the number of inputs sent per request.
	maxBatchSize = 256
)

var _ hermes.Embedder = (*Embedder)(nil)

// Embedder implements hermes.Embedder using OpenAI.
type Embedder struct {
	client     *openai.Client
	limiter    *rate.Limiter
	model      openai.EmbeddingModel
	dimensions int
}

// Option configures an Embedder.
type Option func(*Embedder)

// WithRequestsPerSecond overrides the request rate limit.
func WithRequestsPerSecond(rps float64) Option {
	return func(e *Embedder) {
		e.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// NewEmbedder creates an Embedder authenticated with apiKey.
func NewEmbedder(apiKey string, opts ...Option) *Embedder {
	return NewEmbedderWithConfig(openai.DefaultConfig(apiKey), opts...)
}

// NewEmbedderWithConfig creates an Embedder from a full client config.
func NewEmbedderWithConfig(config openai.ClientConfig, opts ...Option) *Embedder {
	e := &Embedder{
		client:     openai.NewClientWithConfig(config),
		limiter:    rate.NewLimiter(rate.Limit(DefaultRequestsPerSecond), 1),
		model:      DefaultModel,
		dimensions: DefaultDimensions,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Model returns the embedding model name.
func (e *Embedder) Model() string { return string(e.model) }

// Dimensions returns the vector length produced by the model.
func (e *Embedder) Dimensions() int { return e.dimensions }

// MaxTokens returns the model's input limit.
func (e *Embedder) MaxTokens() int { return DefaultMaxTokens }

// Embed returns one vector per text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, len(texts))
	for start := 0; start < len(texts); start += maxBatchSize {
		end := min(start+maxBatchSize, len(texts))

		if err := e.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
			Input: texts[start:end],
			Model: e.model,
		})
		if err != nil {
			return nil, fmt.Errorf("openai embed: %w", err)
		}
		if len(resp.Data) != end-start {
			return nil, hermes.Errorf(hermes.EINTERNAL, "openai returned %d embeddings for %d texts", len(resp.Data), end-start)
		}

		// Data is keyed by Index, which is not guaranteed to follow input order.
		for _, d := range resp.Data {
			if d.Index < 0 || d.Index >= end-start {
				return nil, hermes.Errorf(hermes.EINTERNAL, "openai returned embedding index %d out of range", d.Index)
			}
			v := make([]float32, len(d.Embedding))
			for i := range d.Embedding {
				v[i] = float32(d.Embedding[i])
			}
			out[start+d.Index] = v
		}
	}
	return out, nil
}
