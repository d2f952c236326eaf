// Package embedding provides the OpenAI embedding adapter.
// Adapter implementing ports.EmbeddingService; the domain layer never sees
// OpenAI request shapes.
package embedding

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIAdapter implements ports.EmbeddingService against the OpenAI
// embeddings API (or any compatible endpoint via baseURL). The credential is
// supplied per call, so a client is built per request. No retries, no
// caching: the upstream service is the sole source of truth for the
// embedding function.
type OpenAIAdapter struct {
	baseURL string
	model   string
}

// NewOpenAIAdapter creates a new embedding adapter. An empty baseURL uses the
// OpenAI default endpoint.
func NewOpenAIAdapter(baseURL, model string) *OpenAIAdapter {
	if model == "" {
		model = "text-embedding-3-small"
	}
	return &OpenAIAdapter{
		baseURL: baseURL,
		model:   model,
	}
}

// Embed generates an embedding vector for the given text.
func (a *OpenAIAdapter) Embed(ctx context.Context, text, apiKey string) ([]float32, error) {
	if apiKey == "" {
		return nil, errors.New("api key is required")
	}

	resp, err := a.client(apiKey).CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(a.model),
		Input: []string{text},
	})
	if err != nil {
		return nil, fmt.Errorf("embeddings request: %w", err)
	}
	if len(resp.Data) == 0 {
		return nil, errors.New("embedding response empty")
	}

	embedding := make([]float32, len(resp.Data[0].Embedding))
	copy(embedding, resp.Data[0].Embedding)
	return embedding, nil
}

func (a *OpenAIAdapter) client(apiKey string) *openai.Client {
	cfg := openai.DefaultConfig(apiKey)
	if a.baseURL != "" {
		cfg.BaseURL = a.baseURL
	}
	return openai.NewClientWithConfig(cfg)
}
