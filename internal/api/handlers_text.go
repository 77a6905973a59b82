package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/quizforge/quizforge/internal/chunker"
	"github.com/quizforge/quizforge/internal/document"
	"github.com/quizforge/quizforge/internal/engine"
	"github.com/quizforge/quizforge/internal/pipeline"
)

// handleExtract runs extraction and chunking synchronously and reports
// what the document yields, without generating questions.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	defer r.MultipartForm.RemoveAll()

	chunkSize := s.cfg.DefaultChunkSize
	if v := r.FormValue("chunk_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			chunkSize = n
		}
	}
	overlap := s.cfg.DefaultChunkOverlap
	if v := r.FormValue("overlap"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			overlap = n
		}
	}

	store, err := document.NewStoreFromBytes(filename, data)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	eng := engine.New(store)

	pages, err := eng.TotalPages()
	if err != nil {
		s.extractionError(w, err)
		return
	}
	chunks, err := eng.TextChunks(chunkSize, overlap)
	if err != nil {
		var paramErr *chunker.InvalidParameterError
		if errors.As(err, &paramErr) {
			jsonError(w, paramErr.Error(), http.StatusBadRequest)
			return
		}
		s.extractionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"filename": filename,
		"doc_id":   pipeline.ContentHashHex(data)[:16],
		"pages":    pages,
		"chunks":   len(chunks),
	})
}

// handleSearch scans a document's pages for a keyword and returns
// page-attributed context windows.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	defer r.MultipartForm.RemoveAll()

	keyword := r.FormValue("keyword")

	store, err := document.NewStoreFromBytes(filename, data)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}
	eng := engine.New(store)

	matches, err := eng.SearchText(keyword)
	if err != nil {
		s.extractionError(w, err)
		return
	}
	if matches == nil {
		matches = []chunker.Match{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"filename": filename,
		"keyword":  keyword,
		"matches":  matches,
	})
}

// extractionError maps extraction failures to 422: the upload arrived
// but its content could not be read as a document.
func (s *Server) extractionError(w http.ResponseWriter, err error) {
	var extractErr *document.ExtractionError
	if errors.As(err, &extractErr) {
		jsonError(w, extractErr.Error(), http.StatusUnprocessableEntity)
		return
	}
	jsonError(w, err.Error(), http.StatusInternalServerError)
}
