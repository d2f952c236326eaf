package usecases

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/docuchat/docuchat-go/internal/domain/ports"
)

// ErrNoExtractedText is returned when the source document yields no usable
// text. The ingestion call fails; any previously active document stays active.
var ErrNoExtractedText = errors.New("no text could be extracted")

// IngestUseCase turns raw document text into a published vector index:
// chunk, embed each chunk, populate a fresh index, swap it in as the active
// document. A failed ingestion never replaces the prior document.
type IngestUseCase struct {
	embedder     ports.EmbeddingService
	newIndex     func() ports.VectorIndex
	registry     *DocumentRegistry
	chunkSize    int
	chunkOverlap int
	strict       bool
	logger       *zap.Logger

	// mu serializes whole ingestions to avoid wasted embedding work when two
	// uploads race. Readers of the registry never take it.
	mu sync.Mutex
}

// NewIngestUseCase creates an IngestUseCase with injected dependencies.
// newIndex is called once per ingestion so every run builds into a private,
// unpublished index. When strict is true the first embedding failure aborts
// the ingestion; otherwise failing chunks are logged and skipped.
func NewIngestUseCase(
	embedder ports.EmbeddingService,
	newIndex func() ports.VectorIndex,
	registry *DocumentRegistry,
	chunkSize, chunkOverlap int,
	strict bool,
	logger *zap.Logger,
) *IngestUseCase {
	if chunkSize <= 0 {
		chunkSize = 1000
	}
	if chunkOverlap < 0 {
		chunkOverlap = 200
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &IngestUseCase{
		embedder:     embedder,
		newIndex:     newIndex,
		registry:     registry,
		chunkSize:    chunkSize,
		chunkOverlap: chunkOverlap,
		strict:       strict,
		logger:       logger,
	}
}

// Ingest processes a document and returns the number of chunks the text was
// split into. The new index is published only after the whole pipeline
// completes; chunk IDs are the sequential positions in the split output.
func (uc *IngestUseCase) Ingest(ctx context.Context, documentName, rawText, apiKey string) (int, error) {
	if strings.TrimSpace(rawText) == "" {
		return 0, ErrNoExtractedText
	}

	chunks, err := SplitText(rawText, uc.chunkSize, uc.chunkOverlap)
	if err != nil {
		return 0, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	index := uc.newIndex()
	for i, text := range chunks {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		embedding, err := uc.embedder.Embed(ctx, text, apiKey)
		if err != nil {
			if uc.strict {
				return 0, fmt.Errorf("embedding chunk %d: %w", i, err)
			}
			uc.logger.Warn("skipping chunk after embedding failure",
				zap.String("document", documentName),
				zap.Int("chunk", i),
				zap.Error(err))
			continue
		}
		if err := index.Insert(strconv.Itoa(i), embedding, text); err != nil {
			return 0, fmt.Errorf("inserting chunk %d: %w", i, err)
		}
	}

	uc.registry.Publish(&ActiveDocument{Name: documentName, Index: index})
	uc.logger.Info("document indexed",
		zap.String("document", documentName),
		zap.Int("chunks", len(chunks)),
		zap.Int("stored", index.Size()))

	return len(chunks), nil
}
