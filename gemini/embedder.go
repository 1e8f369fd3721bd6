package gemini

import (
	"context"
	"fmt"

	"github.com/fwojciec/hermes"
	"google.golang.org/genai"
)

// Embedding defaults.
const (
	DefaultEmbeddingModel      = "text-embedding-004"
	DefaultEmbeddingDimensions = 768
	DefaultEmbeddingMaxTokens  = 2048

	// maxBatchSize is the largest number of contents accepted per request.
	maxBatchSize = 100
)

// Task types tell the model which side of a retrieval pair it embeds.
const (
	TaskRetrievalDocument = "RETRIEVAL_DOCUMENT"
	TaskRetrievalQuery    = "RETRIEVAL_QUERY"
)

var _ hermes.Embedder = (*Embedder)(nil)

// Embedder implements hermes.Embedder using the Gemini embedding API.
type Embedder struct {
	client     *genai.Client
	model      string
	dimensions int
	taskType   string
}

// NewEmbedder creates an Embedder for indexed documents.
func NewEmbedder(client *genai.Client) *Embedder {
	return newEmbedder(client, TaskRetrievalDocument)
}

// NewQueryEmbedder creates an Embedder for search queries. Its vectors are
// comparable with those of NewEmbedder.
func NewQueryEmbedder(client *genai.Client) *Embedder {
	return newEmbedder(client, TaskRetrievalQuery)
}

func newEmbedder(client *genai.Client, taskType string) *Embedder {
	return &Embedder{
		client:     client,
		model:      DefaultEmbeddingModel,
		dimensions: DefaultEmbeddingDimensions,
		taskType:   taskType,
	}
}

// Model returns the embedding model name.
func (e *Embedder) Model() string { return e.model }

// Dimensions returns the vector length produced by the model.
func (e *Embedder) Dimensions() int { return e.dimensions }

// MaxTokens returns the model's input limit.
func (e *Embedder) MaxTokens() int { return DefaultEmbeddingMaxTokens }

// TaskType returns the retrieval task the vectors are produced for.
func (e *Embedder) TaskType() string { return e.taskType }

// Embed returns one vector per text, in input order.
func (e *Embedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	out := make([][]float32, 0, len(texts))
	for start := 0; start < len(texts); start += maxBatchSize {
		end := min(start+maxBatchSize, len(texts))

		contents := make([]*genai.Content, 0, end-start)
		for _, text := range texts[start:end] {
			contents = append(contents, genai.NewContentFromText(text, genai.RoleUser))
		}

		resp, err := e.client.Models.EmbedContent(ctx, e.model, contents, BuildEmbedConfig(e.taskType, e.dimensions))
		if err != nil {
			return nil, fmt.Errorf("gemini embed: %w", err)
		}
		if resp == nil || len(resp.Embeddings) != end-start {
			return nil, hermes.Errorf(hermes.EINTERNAL, "gemini returned %d embeddings for %d texts", embeddingCount(resp), end-start)
		}

		for _, emb := range resp.Embeddings {
			out = append(out, emb.Values)
		}
	}
	return out, nil
}

// BuildEmbedConfig returns the EmbedContentConfig for a retrieval task.
func BuildEmbedConfig(taskType string, dimensions int) *genai.EmbedContentConfig {
	dim := int32(dimensions)
	return &genai.EmbedContentConfig{
		TaskType:             taskType,
		OutputDimensionality: &dim,
	}
}

func embeddingCount(resp *genai.EmbedContentResponse) int {
	if resp == nil {
		return 0
	}
	return len(resp.Embeddings)
}
