// Package session tracks an interactive quiz run: which chunk feeds the
// next batch of questions, and how the user is scoring.
package session

import (
	"context"
	"fmt"

	"github.com/quizforge/quizforge/internal/quiz"
)

// TypeStats is the per-question-type tally.
type TypeStats struct {
	Total   int
	Correct int
}

// Stats accumulates answer outcomes for a session.
type Stats struct {
	TotalQuestions int
	CorrectAnswers int
	ByType         map[quiz.QuestionType]*TypeStats
}

func NewStats() *Stats {
	return &Stats{ByType: make(map[quiz.QuestionType]*TypeStats)}
}

// Record counts one answered question.
func (s *Stats) Record(q quiz.Question, r quiz.Result) {
	s.TotalQuestions++
	ts := s.ByType[q.Type]
	if ts == nil {
		ts = &TypeStats{}
		s.ByType[q.Type] = ts
	}
	ts.Total++
	if r.Correct {
		s.CorrectAnswers++
		ts.Correct++
	}
}

// Accuracy returns the overall percentage of correct answers.
func (s *Stats) Accuracy() float64 {
	if s.TotalQuestions == 0 {
		return 0
	}
	return float64(s.CorrectAnswers) / float64(s.TotalQuestions) * 100
}

// QuestionSource generates quiz questions from a text chunk.
type QuestionSource interface {
	Generate(ctx context.Context, text string, numQuestions int, types []quiz.QuestionType, difficulty string) ([]quiz.Question, error)
}

// A chunk that yields nothing gets skipped for the next one; after this
// many consecutive empty or failed chunks the batch gives up.
const maxBatchAttempts = 3

// Quiz walks the document's chunks in order, wrapping around at the
// end, and draws question batches from them.
type Quiz struct {
	chunks []string
	next   int
	source QuestionSource

	Stats *Stats
}

func New(chunks []string, source QuestionSource) *Quiz {
	return &Quiz{
		chunks: chunks,
		source: source,
		Stats:  NewStats(),
	}
}

// ChunkCount returns how many chunks feed the quiz.
func (q *Quiz) ChunkCount() int { return len(q.chunks) }

// NextBatch generates the next batch of questions, advancing through
// the chunks. Empty results move on to the next chunk, bounded by
// maxBatchAttempts rather than retrying indefinitely.
func (q *Quiz) NextBatch(ctx context.Context, numQuestions int, types []quiz.QuestionType, difficulty string) ([]quiz.Question, error) {
	if len(q.chunks) == 0 {
		return nil, fmt.Errorf("no text chunks to quiz from")
	}

	var lastErr error
	for attempt := 0; attempt < maxBatchAttempts; attempt++ {
		chunk := q.chunks[q.next%len(q.chunks)]
		q.next++

		questions, err := q.source.Generate(ctx, chunk, numQuestions, types, difficulty)
		if err != nil {
			lastErr = err
			continue
		}
		if len(questions) > 0 {
			return questions, nil
		}
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, fmt.Errorf("no questions generated after %d attempts", maxBatchAttempts)
}
