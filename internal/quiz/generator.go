package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"
)

// QuestionType identifies a quiz question format.
type QuestionType string

const (
	MultipleChoice QuestionType = "multiple_choice"
	TrueFalse      QuestionType = "true_false"
	ShortAnswer    QuestionType = "short_answer"
	FillBlank      QuestionType = "fill_blank"
)

// DefaultTypes is the full set of question types, in generation order.
var DefaultTypes = []QuestionType{MultipleChoice, TrueFalse, ShortAnswer, FillBlank}

// Label returns the human-readable form of the type.
func (qt QuestionType) Label() string {
	return strings.ReplaceAll(string(qt), "_", " ")
}

// ParseType validates a question type string.
func ParseType(s string) (QuestionType, error) {
	qt := QuestionType(strings.TrimSpace(strings.ToLower(s)))
	switch qt {
	case MultipleChoice, TrueFalse, ShortAnswer, FillBlank:
		return qt, nil
	}
	return "", fmt.Errorf("unknown question type: %q", s)
}

// Question is one generated quiz question. Fields not used by a given
// type stay empty.
type Question struct {
	Type          QuestionType `json:"type"`
	Question      string       `json:"question"`
	Options       []string     `json:"options,omitempty"`
	CorrectAnswer string       `json:"correct_answer,omitempty"`
	Explanation   string       `json:"explanation,omitempty"`
	SampleAnswer  string       `json:"sample_answer,omitempty"`
	KeyPoints     []string     `json:"key_points,omitempty"`
}

// ChatCompleter is the slice of Client the generator needs.
type ChatCompleter interface {
	Chat(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error)
}

// Generator produces quiz questions from text chunks.
type Generator struct {
	client ChatCompleter
	log    *slog.Logger
	stats  *Stats
}

// NewGenerator creates a Generator. stats may be nil.
func NewGenerator(client ChatCompleter, log *slog.Logger, stats *Stats) *Generator {
	return &Generator{client: client, log: log, stats: stats}
}

// Generate produces up to numQuestions questions from a text chunk,
// spread across the requested types. Types are generated concurrently;
// a type whose generation or parsing fails is logged and skipped rather
// than failing the batch. The combined set is shuffled and capped at
// numQuestions. An error is returned only when every type failed.
func (g *Generator) Generate(ctx context.Context, text string, numQuestions int, types []QuestionType, difficulty string) ([]Question, error) {
	if numQuestions <= 0 {
		numQuestions = 5
	}
	if len(types) == 0 {
		types = DefaultTypes
	}
	if difficulty == "" {
		difficulty = "medium"
	}

	perType := numQuestions / len(types)
	if perType < 1 {
		perType = 1
	}

	results := make([][]Question, len(types))
	errs := make([]error, len(types))

	grp, gctx := errgroup.WithContext(ctx)
	for i, qt := range types {
		i, qt := i, qt
		grp.Go(func() error {
			start := time.Now()
			content, err := g.client.Chat(gctx, generatorSystem, buildQuestionPrompt(qt, text, perType, difficulty), 0.7, 2000)
			if err != nil {
				g.log.Warn("question generation failed", "type", qt, "error", err)
				errs[i] = err
				return nil
			}
			questions, err := parseQuestions(content, qt)
			if err != nil {
				g.log.Warn("question parse failed", "type", qt, "error", err)
				errs[i] = err
				return nil
			}
			if g.stats != nil {
				g.stats.Record(qt, time.Since(start), len(questions))
			}
			results[i] = questions
			return nil
		})
	}
	if err := grp.Wait(); err != nil {
		return nil, err
	}

	var all []Question
	for _, qs := range results {
		all = append(all, qs...)
	}

	if len(all) == 0 {
		for _, err := range errs {
			if err != nil {
				return nil, err
			}
		}
		return nil, nil
	}

	rand.Shuffle(len(all), func(i, j int) {
		all[i], all[j] = all[j], all[i]
	})
	if len(all) > numQuestions {
		all = all[:numQuestions]
	}
	return all, nil
}

// parseQuestions decodes the model's JSON array and tags each question
// with its type.
func parseQuestions(content string, qt QuestionType) ([]Question, error) {
	content = stripCodeBlock(content)

	var questions []Question
	if err := json.Unmarshal([]byte(content), &questions); err != nil {
		return nil, fmt.Errorf("parse questions json: %w (raw: %s)", err, truncate(content, 200))
	}
	for i := range questions {
		questions[i].Type = qt
	}
	return questions, nil
}
