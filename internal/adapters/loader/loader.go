// Package loader provides document loading adapters.
// Adapter implementing ports.DocumentLoader for the directory watcher path.
package loader

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/docuchat/docuchat-go/internal/domain/ports"
)

// PDFFileLoader reads a PDF from disk and extracts its text. The document
// name reported to the pipeline is the file's base name, matching what an
// upload would carry.
type PDFFileLoader struct {
	extractor ports.TextExtractor
}

// NewPDFFileLoader creates a loader backed by the given text extractor.
func NewPDFFileLoader(extractor ports.TextExtractor) *PDFFileLoader {
	return &PDFFileLoader{extractor: extractor}
}

// Load reads the file and returns its name and extracted text.
func (l *PDFFileLoader) Load(ctx context.Context, path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("reading %s: %w", path, err)
	}

	name := filepath.Base(path)
	text, err := l.extractor.Extract(ctx, data)
	if err != nil {
		return "", "", fmt.Errorf("extracting %s: %w", name, err)
	}
	return name, text, nil
}
