package api

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/quizforge/quizforge/internal/document"
	"github.com/quizforge/quizforge/internal/pipeline"
	"github.com/quizforge/quizforge/internal/quiz"
)

// readUpload pulls the "file" part out of a multipart request, enforcing
// the configured size limit. The returned filename is sanitized.
func (s *Server) readUpload(w http.ResponseWriter, r *http.Request) (string, []byte, bool) {
	r.Body = http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes+1024*1024) // extra 1MB for form overhead

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		jsonError(w, "invalid multipart form: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		jsonError(w, "file is required: "+err.Error(), http.StatusBadRequest)
		return "", nil, false
	}
	defer file.Close()

	filename := sanitizeFilename(header.Filename)
	if !document.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return "", nil, false
	}

	data, err := io.ReadAll(io.LimitReader(file, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read file", http.StatusInternalServerError)
		return "", nil, false
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("file exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return "", nil, false
	}
	return filename, data, true
}

// quizOptions reads generation options from form values, falling back
// to configured defaults.
func (s *Server) quizOptions(r *http.Request) (pipeline.Options, error) {
	opts := pipeline.Options{
		NumQuestions: s.cfg.DefaultQuestionCount,
		Difficulty:   s.cfg.DefaultDifficulty,
		ChunkSize:    s.cfg.DefaultChunkSize,
		Overlap:      s.cfg.DefaultChunkOverlap,
	}

	if v := r.FormValue("num_questions"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.NumQuestions = n
		}
	}
	if v := r.FormValue("difficulty"); v != "" {
		opts.Difficulty = v
	}
	if v := r.FormValue("chunk_size"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.ChunkSize = n
		}
	}
	if v := r.FormValue("overlap"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			opts.Overlap = n
		}
	}
	if v := r.FormValue("max_chunks"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			opts.MaxChunks = n
		}
	}
	if v := r.FormValue("types"); v != "" {
		for _, part := range strings.Split(v, ",") {
			qt, err := quiz.ParseType(part)
			if err != nil {
				return opts, err
			}
			opts.Types = append(opts.Types, qt)
		}
	}
	if opts.Overlap >= opts.ChunkSize {
		return opts, fmt.Errorf("overlap (%d) must be smaller than chunk_size (%d)", opts.Overlap, opts.ChunkSize)
	}
	return opts, nil
}

func (s *Server) handleCreateQuiz(w http.ResponseWriter, r *http.Request) {
	filename, data, ok := s.readUpload(w, r)
	if !ok {
		return
	}
	defer r.MultipartForm.RemoveAll()

	opts, err := s.quizOptions(r)
	if err != nil {
		jsonError(w, err.Error(), http.StatusBadRequest)
		return
	}

	now := time.Now()
	job := &pipeline.Job{
		ID:        pipeline.NewJobID(),
		DocID:     pipeline.ContentHashHex(data)[:16],
		Filename:  filename,
		Status:    pipeline.StatusQueued,
		Phase:     "queued",
		Options:   opts,
		CreatedAt: now,
		UpdatedAt: now,
	}
	job.SetFileData(data)

	if err := s.orchestrator.Submit(job); err != nil {
		jsonError(w, err.Error(), http.StatusServiceUnavailable)
		return
	}

	writeJSON(w, http.StatusAccepted, map[string]any{
		"job_id":   job.ID,
		"doc_id":   job.DocID,
		"status":   job.Status,
		"poll_url": fmt.Sprintf("/api/quiz/%s", job.ID),
	})
}

func (s *Server) handleQuizStatus(w http.ResponseWriter, r *http.Request) {
	jobID := chi.URLParam(r, "jobID")
	job := s.orchestrator.GetJob(jobID)
	if job == nil {
		jsonError(w, "job not found", http.StatusNotFound)
		return
	}
	writeJSON(w, http.StatusOK, job.Snapshot())
}

type validateRequest struct {
	Question quiz.Question `json:"question"`
	Answer   string        `json:"answer"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req); err != nil {
		jsonError(w, "invalid request body: "+err.Error(), http.StatusBadRequest)
		return
	}
	if req.Question.Question == "" {
		jsonError(w, "question is required", http.StatusBadRequest)
		return
	}

	result := s.generator.Validate(r.Context(), req.Question, req.Answer)
	writeJSON(w, http.StatusOK, result)
}
