// Package document owns the per-page decomposition of a source document
// and the derived full text used for chunking.
package document

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Page is one unit of source-document text with a 1-based ordinal.
// Page numbers are dense and strictly increasing in extraction order.
// Text may be empty (a page with nothing extractable) but is never absent.
type Page struct {
	Number int    `json:"page"`
	Text   string `json:"text"`
}

// ExtractionError reports that the source document could not be read or
// a page refused to surrender its text.
type ExtractionError struct {
	Source string
	Err    error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extract %s: %v", e.Source, e.Err)
}

func (e *ExtractionError) Unwrap() error { return e.Err }

// Store holds the ordered page sequence of a single document and the
// newline-joined concatenation of the page texts. It is single-owner:
// callers processing documents concurrently use one Store each.
type Store struct {
	name   string
	open   func() (io.ReadCloser, error)
	reader Reader

	pages  []Page
	text   string
	primed bool
}

// NewStore creates a Store over a file on disk. The file is not opened
// until extraction runs.
func NewStore(path string) (*Store, error) {
	r, err := ForFile(path)
	if err != nil {
		return nil, err
	}
	return &Store{
		name:   filepath.Base(path),
		open:   func() (io.ReadCloser, error) { return os.Open(path) },
		reader: r,
	}, nil
}

// NewStoreFromBytes creates a Store over in-memory document data, as
// received from an HTTP upload. The filename selects the page reader.
func NewStoreFromBytes(filename string, data []byte) (*Store, error) {
	r, err := ForFile(filename)
	if err != nil {
		return nil, err
	}
	return &Store{
		name:   filename,
		open:   func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
		reader: r,
	}, nil
}

// Extract reads every page of the source in order and replaces the
// stored page sequence and full text from scratch. Re-running never
// accumulates text from earlier runs. On any failure the store is left
// empty and a *ExtractionError wrapping the cause is returned.
func (s *Store) Extract() (string, error) {
	s.pages = nil
	s.text = ""
	s.primed = false

	rc, err := s.open()
	if err != nil {
		return "", &ExtractionError{Source: s.name, Err: err}
	}
	defer rc.Close()

	pages, err := s.reader.ReadPages(rc, s.name)
	if err != nil {
		return "", &ExtractionError{Source: s.name, Err: err}
	}

	texts := make([]string, len(pages))
	for i, p := range pages {
		texts[i] = p.Text
	}
	s.pages = pages
	s.text = strings.Join(texts, "\n")
	s.primed = true
	return s.text, nil
}

// prime runs extraction once if the store is still empty. A store only
// becomes populated through a successful Extract.
func (s *Store) prime() error {
	if s.primed {
		return nil
	}
	_, err := s.Extract()
	return err
}

// Pages returns the stored page sequence, extracting first if needed.
func (s *Store) Pages() ([]Page, error) {
	if err := s.prime(); err != nil {
		return nil, err
	}
	return s.pages, nil
}

// FullText returns the newline-joined page texts, extracting first if
// needed.
func (s *Store) FullText() (string, error) {
	if err := s.prime(); err != nil {
		return "", err
	}
	return s.text, nil
}

// PageText returns the raw text of the given 1-based page number, or
// the empty string when no such page exists.
func (s *Store) PageText(n int) (string, error) {
	if err := s.prime(); err != nil {
		return "", err
	}
	if n < 1 || n > len(s.pages) {
		return "", nil
	}
	return s.pages[n-1].Text, nil
}

// TotalPages returns the page count, extracting first if needed.
func (s *Store) TotalPages() (int, error) {
	if err := s.prime(); err != nil {
		return 0, err
	}
	return len(s.pages), nil
}

// Name returns the document's display name.
func (s *Store) Name() string { return s.name }
