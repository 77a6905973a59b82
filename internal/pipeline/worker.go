package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/quizforge/quizforge/internal/document"
	"github.com/quizforge/quizforge/internal/engine"
	"github.com/quizforge/quizforge/internal/quiz"
)

// Worker processes a single quiz-generation job.
type Worker struct {
	generator *quiz.Generator
	log       *slog.Logger

	maxConcurrentGenerate int
}

func NewWorker(generator *quiz.Generator, log *slog.Logger, maxGenerate int) *Worker {
	if maxGenerate <= 0 {
		maxGenerate = 1
	}
	return &Worker{
		generator:             generator,
		log:                   log,
		maxConcurrentGenerate: maxGenerate,
	}
}

// Process runs the full pipeline for a job: extract pages, chunk the
// text, generate questions per chunk.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "doc_id", job.DocID)
	opts := job.Options

	// Phase 1: Extract
	job.SetStatus(StatusExtracting, "extracting pages")
	store, err := document.NewStoreFromBytes(job.Filename, job.FileData())
	if err != nil {
		log.Error("unsupported format", "error", err)
		job.AddError(err.Error())
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	eng := engine.New(store)

	totalPages, err := eng.TotalPages()
	if err != nil {
		log.Error("extraction failed", "error", err)
		job.AddError(fmt.Sprintf("extract: %s", err))
		job.SetStatus(StatusFailed, "extracting")
		return
	}
	job.SetTotalPages(totalPages)

	// Phase 2: Chunk
	job.SetStatus(StatusChunking, "splitting into chunks")
	chunks, err := eng.TextChunks(opts.ChunkSize, opts.Overlap)
	if err != nil {
		log.Error("chunking failed", "error", err)
		job.AddError(fmt.Sprintf("chunk: %s", err))
		job.SetStatus(StatusFailed, "chunking")
		return
	}

	// Empty chunks carry nothing worth quizzing.
	usable := chunks[:0]
	for _, c := range chunks {
		if c != "" {
			usable = append(usable, c)
		}
	}
	chunks = usable
	if opts.MaxChunks > 0 && len(chunks) > opts.MaxChunks {
		chunks = chunks[:opts.MaxChunks]
	}

	job.SetTotalChunks(len(chunks))
	log.Info("chunked document", "pages", totalPages, "chunks", len(chunks))

	if len(chunks) == 0 {
		log.Warn("no chunks produced")
		job.AddError("no extractable content")
		job.SetStatus(StatusFailed, "chunking")
		return
	}

	// Phase 3: Generate questions per chunk with bounded concurrency.
	job.SetStatus(StatusGenerating, "generating questions")
	type chunkResult struct {
		questions []quiz.Question
		err       error
		idx       int
	}
	results := make(chan chunkResult, len(chunks))
	sem := make(chan struct{}, w.maxConcurrentGenerate)

	for i, chunk := range chunks {
		sem <- struct{}{}
		go func(i int, chunk string) {
			defer func() { <-sem }()
			var questions []quiz.Question
			var lastErr error
			for attempt := 0; attempt < MaxRetries; attempt++ {
				questions, lastErr = w.generator.Generate(ctx, chunk, opts.NumQuestions, opts.Types, opts.Difficulty)
				if lastErr == nil || !IsRetryable(lastErr) {
					break
				}
				log.Warn("retryable generation error", "chunk", i, "attempt", attempt, "error", lastErr)
				select {
				case <-time.After(Backoff(attempt)):
				case <-ctx.Done():
					results <- chunkResult{err: ctx.Err(), idx: i}
					return
				}
			}
			results <- chunkResult{questions: questions, err: lastErr, idx: i}
		}(i, chunk)
	}

	hadErrors := false
	for range chunks {
		r := <-results
		job.IncrChunksProcessed()
		if r.err != nil {
			log.Error("generation failed", "chunk", r.idx, "error", r.err)
			job.AddError(fmt.Sprintf("chunk %d: %s", r.idx, r.err))
			hadErrors = true
			continue
		}
		job.AddQuestions(r.questions)
	}

	generated := job.Snapshot().Progress.QuestionsGenerated
	log.Info("generation complete", "questions", generated, "errors", hadErrors)

	switch {
	case generated == 0:
		job.SetStatus(StatusFailed, "generating")
	case hadErrors:
		job.SetStatus(StatusPartial, "done")
	default:
		job.SetStatus(StatusCompleted, "done")
	}
}
