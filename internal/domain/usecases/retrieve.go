package usecases

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/docuchat/docuchat-go/internal/domain/ports"
)

// RetrieveUseCase answers similarity queries against the active document.
type RetrieveUseCase struct {
	embedder ports.EmbeddingService
	registry *DocumentRegistry
	logger   *zap.Logger
}

// NewRetrieveUseCase creates a RetrieveUseCase with injected dependencies.
func NewRetrieveUseCase(embedder ports.EmbeddingService, registry *DocumentRegistry, logger *zap.Logger) *RetrieveUseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &RetrieveUseCase{
		embedder: embedder,
		registry: registry,
		logger:   logger,
	}
}

// Retrieve embeds the query and returns the texts of the k most similar
// chunks. No active document is a normal state, not a failure: the result is
// simply empty. An embedding failure is surfaced to the caller.
func (uc *RetrieveUseCase) Retrieve(ctx context.Context, queryText string, k int, apiKey string) ([]string, error) {
	doc := uc.registry.Current()
	if doc == nil {
		return nil, nil
	}

	embedding, err := uc.embedder.Embed(ctx, queryText, apiKey)
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}

	hits := doc.Index.Query(embedding, k)
	texts := make([]string, 0, len(hits))
	for _, hit := range hits {
		texts = append(texts, hit.Text)
	}
	return texts, nil
}
