// Package engine binds a document's page store to the chunker and
// exposes the surface the quiz layers consume.
package engine

import (
	"github.com/quizforge/quizforge/internal/chunker"
	"github.com/quizforge/quizforge/internal/document"
)

// Default chunking parameters for quiz generation.
const (
	DefaultChunkSize = 2000
	DefaultOverlap   = 200
)

// Engine wraps one document for chunking and search. Each document
// processed gets its own Engine; instances are not shared.
type Engine struct {
	store *document.Store
}

// New creates an Engine over an existing page store.
func New(store *document.Store) *Engine {
	return &Engine{store: store}
}

// Open creates an Engine over a document on disk.
func Open(path string) (*Engine, error) {
	store, err := document.NewStore(path)
	if err != nil {
		return nil, err
	}
	return &Engine{store: store}, nil
}

// Store exposes the underlying page store.
func (e *Engine) Store() *document.Store { return e.store }

// TextChunks normalizes the document's full text and splits it into
// overlapping chunks, extracting the document first if needed.
func (e *Engine) TextChunks(chunkSize, overlap int) ([]string, error) {
	text, err := e.store.FullText()
	if err != nil {
		return nil, err
	}
	return chunker.Split(chunker.Normalize(text), chunkSize, overlap)
}

// TotalPages returns the document's page count.
func (e *Engine) TotalPages() (int, error) {
	return e.store.TotalPages()
}

// PageText returns the raw text of a 1-based page number, or "" when
// the page does not exist.
func (e *Engine) PageText(n int) (string, error) {
	return e.store.PageText(n)
}

// SearchText finds keyword occurrences across the document's raw page
// text, priming the store first.
func (e *Engine) SearchText(keyword string) ([]chunker.Match, error) {
	pages, err := e.store.Pages()
	if err != nil {
		return nil, err
	}
	return chunker.Search(pages, keyword), nil
}
