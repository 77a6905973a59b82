// Package chunker turns normalized document text into overlapping,
// boundary-aware segments and searches raw page text for keywords.
package chunker

import (
	"fmt"
	"regexp"
	"strings"
)

// InvalidParameterError reports a chunking configuration that cannot
// make forward progress.
type InvalidParameterError struct {
	ChunkSize int
	Overlap   int
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid chunk parameters: chunk_size=%d overlap=%d", e.ChunkSize, e.Overlap)
}

var (
	pageNumberRe = regexp.MustCompile(`\n\d+\n`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// Normalize cleans raw extracted text: null characters are stripped,
// standalone page-number lines removed, whitespace runs collapsed to a
// single space, and the result trimmed. Page-number removal runs before
// the whitespace collapse, while the newlines it matches on still exist.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\x00", "")
	text = pageNumberRe.ReplaceAllString(text, "\n")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Split partitions text into an ordered sequence of chunks of up to
// chunkSize bytes, with consecutive chunks overlapping by roughly
// overlap bytes. Non-final chunks prefer to end just after the
// rightmost ". " or newline inside the window; when neither lands
// strictly after the chunk start, the cut is a hard one at chunkSize.
// Each emitted chunk is trimmed of surrounding whitespace.
//
// chunkSize must be positive and overlap must satisfy
// 0 <= overlap < chunkSize; anything else returns
// *InvalidParameterError before any work is done, since a non-positive
// advance would otherwise loop forever.
func Split(text string, chunkSize, overlap int) ([]string, error) {
	if chunkSize <= 0 || overlap < 0 || overlap >= chunkSize {
		return nil, &InvalidParameterError{ChunkSize: chunkSize, Overlap: overlap}
	}

	var chunks []string
	length := len(text)
	start := 0

	for start < length {
		end := start + chunkSize
		if end > length {
			end = length
		}

		if end < length {
			// Snap to a sentence or line boundary inside the window.
			window := text[start:end]
			breakPoint := strings.LastIndex(window, ". ")
			if nl := strings.LastIndex(window, "\n"); nl > breakPoint {
				breakPoint = nl
			}
			if breakPoint > 0 {
				end = start + breakPoint + 1
			}
		}

		chunks = append(chunks, strings.TrimSpace(text[start:end]))

		next := end - overlap
		if next <= start {
			// Boundary snapping pulled end too close to start for the
			// overlap to leave forward progress; drop the overlap for
			// this step rather than stall.
			next = end
		}
		start = next
	}

	return chunks, nil
}
