// Package ports defines interfaces for external dependencies.
// Usecases depend on these abstractions, not concrete implementations;
// adapters implement them. This keeps the embedding and chat providers
// swappable without touching the core.
package ports

import (
	"context"

	"github.com/docuchat/docuchat-go/internal/domain/entities"
)

// EmbeddingService converts text into a fixed-dimension vector by calling an
// external model service. The credential is caller-supplied per request.
// Implementations perform no retries and no caching; retry policy belongs to
// the caller.
type EmbeddingService interface {
	Embed(ctx context.Context, text, apiKey string) ([]float32, error)
}

// ChatService streams a chat completion from an external model.
// The returned channel is finite and not restartable: it terminates with a
// Done token on normal end-of-stream or an Error token on mid-stream failure.
type ChatService interface {
	StreamChat(ctx context.Context, messages []entities.ChatMessage, model, apiKey string) (<-chan StreamToken, error)
}

// StreamToken represents a single fragment in a streaming model response.
type StreamToken struct {
	Content string
	Done    bool
	Error   error
}

// VectorIndex holds embedded chunks and answers k-nearest-neighbor queries by
// cosine similarity. An index is populated once during ingestion and must not
// be mutated after it has been published for reads.
type VectorIndex interface {
	// Insert adds a chunk. The first insert establishes the index dimension.
	Insert(id string, embedding []float32, text string) error

	// Query returns up to k results, descending by score, ties in insertion
	// order. An empty index or k <= 0 yields an empty result.
	Query(embedding []float32, k int) []entities.ScoredChunk

	// Size reports the number of stored chunks.
	Size() int
}

// TextExtractor pulls plain text out of a binary document payload.
type TextExtractor interface {
	Extract(ctx context.Context, data []byte) (string, error)
}

// DocumentLoader reads a document from disk and extracts its text.
type DocumentLoader interface {
	Load(ctx context.Context, path string) (name, text string, err error)
}

// FileWatcher monitors a directory for changes.
type FileWatcher interface {
	// Watch starts monitoring the directory and emits events until ctx ends.
	Watch(ctx context.Context, dir string) (<-chan FileEvent, error)

	// Stop stops the watcher.
	Stop() error
}

// FileEvent represents a file system change.
type FileEvent struct {
	Path      string
	Operation FileOperation
}

// FileOperation is the type of file change.
type FileOperation int

const (
	FileCreated FileOperation = iota
	FileModified
	FileDeleted
)
