// Package usecases contains application business rules.
// Usecases orchestrate entities and depend on port interfaces only - no
// framework code, no provider SDKs.
package usecases

import (
	"errors"
	"strings"
)

// ErrInvalidChunkConfig is returned when chunkSize does not exceed overlap or
// overlap is negative. Rejected before any work is done.
var ErrInvalidChunkConfig = errors.New("invalid chunking configuration: require chunkSize > overlap >= 0")

// SplitText splits text into overlapping fixed-size windows. The window
// advances by chunkSize-overlap, starting at offset 0, while the window start
// is inside the text. Windows are trimmed of surrounding whitespace and
// dropped when empty after trimming. Pure function of its inputs.
//
// Offsets are rune-based so multi-byte text never splits mid-character.
func SplitText(text string, chunkSize, overlap int) ([]string, error) {
	if chunkSize <= 0 || overlap < 0 || overlap >= chunkSize {
		return nil, ErrInvalidChunkConfig
	}

	runes := []rune(text)
	stride := chunkSize - overlap

	var chunks []string
	for start := 0; start < len(runes); start += stride {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		window := strings.TrimSpace(string(runes[start:end]))
		if window == "" {
			continue
		}
		chunks = append(chunks, window)
	}
	return chunks, nil
}
