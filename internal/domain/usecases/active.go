package usecases

import (
	"sync/atomic"

	"github.com/docuchat/docuchat-go/internal/domain/entities"
	"github.com/docuchat/docuchat-go/internal/domain/ports"
)

// ActiveDocument pairs a document name with its published vector index.
// Instances are immutable: a new ingestion publishes a wholly new value.
type ActiveDocument struct {
	Name  string
	Index ports.VectorIndex
}

// DocumentRegistry holds the process-wide reference to the active document.
// Publication is a single atomic pointer swap, so readers observe either the
// fully-old or the fully-new index - never a partially built one. Reads take
// no lock because published indexes are never mutated.
type DocumentRegistry struct {
	current atomic.Pointer[ActiveDocument]
}

// NewDocumentRegistry creates an empty registry. Current returns nil until
// the first successful ingestion publishes a document.
func NewDocumentRegistry() *DocumentRegistry {
	return &DocumentRegistry{}
}

// Current returns the active document snapshot, or nil if none is indexed.
func (r *DocumentRegistry) Current() *ActiveDocument {
	return r.current.Load()
}

// Publish atomically replaces the active document.
func (r *DocumentRegistry) Publish(doc *ActiveDocument) {
	r.current.Store(doc)
}

// Status reports whether a document is active, its name and its chunk count.
func (r *DocumentRegistry) Status() entities.DocumentStatus {
	doc := r.current.Load()
	if doc == nil {
		return entities.DocumentStatus{}
	}
	return entities.DocumentStatus{
		HasDocument:  true,
		DocumentName: doc.Name,
		VectorCount:  doc.Index.Size(),
	}
}
