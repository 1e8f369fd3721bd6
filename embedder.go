package hermes

import "context"

// Embedder turns text into vectors.
type Embedder interface {
	// Embed returns one vector per input, in input order.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Model returns the name of the embedding model.
	Model() string

	// Dimensions returns the length of the produced vectors.
	Dimensions() int

	// MaxTokens returns the largest input, in tokens, the model accepts.
	MaxTokens() int
}
