// Package vectordb provides vector store adapters.
// The in-memory index implements ports.VectorIndex with a brute-force cosine
// scan: O(N*D) per query, which is fine at single-document scale.
package vectordb

import (
	"errors"
	"math"
	"sort"

	"github.com/docuchat/docuchat-go/internal/domain/entities"
)

var (
	// ErrDimensionMismatch is returned when an inserted vector disagrees with
	// the dimension established by the first insert.
	ErrDimensionMismatch = errors.New("vector dimension mismatch")

	// ErrDuplicateID is returned when a chunk ID is inserted twice.
	ErrDuplicateID = errors.New("duplicate chunk id")
)

// MemoryIndex stores chunks in insertion order. It is populated by a single
// goroutine during ingestion and published as an immutable snapshot, so reads
// after publication need no locking.
type MemoryIndex struct {
	dimension int
	ids       map[string]struct{}
	chunks    []entities.Chunk
}

// NewMemoryIndex creates an empty in-memory index. The dimension is fixed by
// the first inserted vector.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{
		ids: make(map[string]struct{}),
	}
}

// Insert adds a chunk to the index.
func (s *MemoryIndex) Insert(id string, embedding []float32, text string) error {
	if _, ok := s.ids[id]; ok {
		return ErrDuplicateID
	}
	if s.dimension == 0 {
		s.dimension = len(embedding)
	} else if len(embedding) != s.dimension {
		return ErrDimensionMismatch
	}

	s.ids[id] = struct{}{}
	s.chunks = append(s.chunks, entities.Chunk{
		ID:        id,
		Text:      text,
		Embedding: embedding,
	})
	return nil
}

// Query returns up to k chunks ranked by descending cosine similarity.
// Equal scores keep insertion order so rankings are reproducible.
func (s *MemoryIndex) Query(embedding []float32, k int) []entities.ScoredChunk {
	if k <= 0 || len(s.chunks) == 0 {
		return nil
	}

	results := make([]entities.ScoredChunk, 0, len(s.chunks))
	for _, chunk := range s.chunks {
		results = append(results, entities.ScoredChunk{
			Text:  chunk.Text,
			Score: cosineSimilarity(embedding, chunk.Embedding),
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	if len(results) > k {
		results = results[:k]
	}
	return results
}

// Size reports the number of stored chunks.
func (s *MemoryIndex) Size() int {
	return len(s.chunks)
}

// Dimension reports the established vector dimension, 0 if empty.
func (s *MemoryIndex) Dimension() int {
	return s.dimension
}

// cosineSimilarity computes dot(a,b) / (|a|*|b|). A zero-norm vector scores
// 0.0 rather than NaN; mismatched lengths also score 0.0.
func cosineSimilarity(a, b []float32) float64 {
	if len(a) == 0 || len(a) != len(b) {
		return 0
	}
	var dot, normA, normB float64
	for i := range a {
		av := float64(a[i])
		bv := float64(b[i])
		dot += av * bv
		normA += av * av
		normB += bv * bv
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
