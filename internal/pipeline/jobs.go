// Package pipeline runs asynchronous quiz-generation jobs: extract a
// document's pages, chunk the text, and generate questions per chunk.
package pipeline

import (
	"crypto/sha256"
	"fmt"
	"sync"
	"time"

	"github.com/quizforge/quizforge/internal/quiz"
)

// JobStatus represents the state of a quiz-generation job.
type JobStatus string

const (
	StatusQueued     JobStatus = "queued"
	StatusExtracting JobStatus = "extracting"
	StatusChunking   JobStatus = "chunking"
	StatusGenerating JobStatus = "generating"
	StatusCompleted  JobStatus = "completed"
	StatusFailed     JobStatus = "failed"
	StatusPartial    JobStatus = "partial"
)

// Options configures one quiz-generation job.
type Options struct {
	NumQuestions int
	Difficulty   string
	Types        []quiz.QuestionType
	ChunkSize    int
	Overlap      int
	MaxChunks    int // 0 means quiz every chunk
}

// Progress tracks processing progress.
type Progress struct {
	TotalPages         int      `json:"total_pages"`
	TotalChunks        int      `json:"total_chunks"`
	ChunksProcessed    int      `json:"chunks_processed"`
	QuestionsGenerated int      `json:"questions_generated"`
	Errors             []string `json:"errors"`
}

// Job tracks the state of a single quiz generation.
type Job struct {
	mu sync.Mutex

	ID       string `json:"job_id"`
	DocID    string `json:"doc_id"`
	Filename string `json:"filename"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Options  Options  `json:"-"`
	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	fileData  []byte
	questions []quiz.Question
	errors    []string
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// SetTotalPages records the extracted page count.
func (j *Job) SetTotalPages(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalPages = n
	j.UpdatedAt = time.Now()
}

// SetTotalChunks records total chunk count.
func (j *Job) SetTotalChunks(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalChunks = n
	j.UpdatedAt = time.Now()
}

// IncrChunksProcessed atomically increments chunks processed.
func (j *Job) IncrChunksProcessed() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.ChunksProcessed++
	j.UpdatedAt = time.Now()
}

// AddQuestions appends generated questions to the job result.
func (j *Job) AddQuestions(questions []quiz.Question) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.questions = append(j.questions, questions...)
	j.Progress.QuestionsGenerated = len(j.questions)
	j.UpdatedAt = time.Now()
}

// SetFileData sets the raw document bytes for processing.
func (j *Job) SetFileData(data []byte) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.fileData = data
}

// FileData returns the raw document bytes.
func (j *Job) FileData() []byte {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.fileData
}

// LastUpdated returns the last state-change time. Readers outside the
// job's workers use this instead of touching UpdatedAt directly.
func (j *Job) LastUpdated() time.Time {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.UpdatedAt
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID        string          `json:"job_id"`
	DocID     string          `json:"doc_id"`
	Filename  string          `json:"filename"`
	Status    JobStatus       `json:"status"`
	Phase     string          `json:"phase"`
	Progress  Progress        `json:"progress"`
	Questions []quiz.Question `json:"questions,omitempty"`
}

// Snapshot returns a JSON-safe copy of the job state. Questions are
// included once the job has finished.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	snap := JobSnapshot{
		ID:       j.ID,
		DocID:    j.DocID,
		Filename: j.Filename,
		Status:   j.Status,
		Phase:    j.Phase,
		Progress: Progress{
			TotalPages:         j.Progress.TotalPages,
			TotalChunks:        j.Progress.TotalChunks,
			ChunksProcessed:    j.Progress.ChunksProcessed,
			QuestionsGenerated: j.Progress.QuestionsGenerated,
			Errors:             errs,
		},
	}
	switch j.Status {
	case StatusCompleted, StatusPartial:
		snap.Questions = j.questions
	}
	return snap
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.LastUpdated()) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// ContentHashHex computes SHA-256 of content and returns a hex string.
func ContentHashHex(data []byte) string {
	h := sha256.Sum256(data)
	return fmt.Sprintf("%x", h[:])
}
