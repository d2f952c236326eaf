// Package parser provides document parsing adapters.
// Adapter implementing ports.TextExtractor.
package parser

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/ledongthuc/pdf"
)

// PDFParser extracts plain text from PDF bytes in-process.
type PDFParser struct{}

// NewPDFParser creates a new PDF text extractor.
func NewPDFParser() *PDFParser {
	return &PDFParser{}
}

// Extract pulls the plain text out of a PDF payload. Scanned or image-only
// PDFs yield an empty string, which the ingestion pipeline rejects.
func (p *PDFParser) Extract(ctx context.Context, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening pdf: %w", err)
	}

	content, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, content); err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}
	return buf.String(), nil
}
