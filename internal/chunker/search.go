package chunker

import (
	"strings"

	"github.com/quizforge/quizforge/internal/document"
)

// Context window size on each side of a matched keyword, in bytes.
const searchContext = 100

// Match is one page-attributed search hit.
type Match struct {
	Page    int    `json:"page"`
	Keyword string `json:"keyword"`
	Context string `json:"context"`
}

// Search scans each page's raw text for a case-insensitive occurrence
// of keyword, in page order. Only the first occurrence per page is
// reported, with up to searchContext bytes of context on each side,
// clamped to the page and trimmed. Pages without a match are omitted.
// An empty keyword matches every page that has text. Search never
// triggers extraction; the caller supplies the pages.
func Search(pages []document.Page, keyword string) []Match {
	needle := strings.ToLower(keyword)

	var matches []Match
	for _, page := range pages {
		if page.Text == "" {
			continue
		}
		idx := strings.Index(strings.ToLower(page.Text), needle)
		if idx < 0 {
			continue
		}

		start := idx - searchContext
		if start < 0 {
			start = 0
		}
		end := idx + len(keyword) + searchContext
		if end > len(page.Text) {
			end = len(page.Text)
		}

		matches = append(matches, Match{
			Page:    page.Number,
			Keyword: keyword,
			Context: strings.TrimSpace(page.Text[start:end]),
		})
	}
	return matches
}
