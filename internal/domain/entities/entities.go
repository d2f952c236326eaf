// Package entities contains core business entities.
// These are the enterprise business rules - pure domain objects with no external dependencies.
package entities

// Chunk is a bounded span of document text stored with its embedding vector.
// Chunks are immutable once inserted into an index.
type Chunk struct {
	ID        string
	Text      string
	Embedding []float32
}

// ScoredChunk is a retrieval hit: the chunk text and its cosine similarity
// against the query vector.
type ScoredChunk struct {
	Text  string
	Score float64
}

// ChatMessage represents one turn of a model conversation.
type ChatMessage struct {
	Role    string // "system" or "user"
	Content string
}

// ChatTurn is a single incoming chat request. Nothing here is persisted.
type ChatTurn struct {
	UserMessage string
	Model       string // resolved model identifier; empty means the default
	UseRAG      bool
	APIKey      string // caller-supplied credential for the model service
}

// DocumentStatus describes the currently indexed document, if any.
type DocumentStatus struct {
	HasDocument  bool   `json:"has_document"`
	DocumentName string `json:"document_name"`
	VectorCount  int    `json:"vector_count"`
}
