package quiz

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"
)

type chatFunc func(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error)

func (f chatFunc) Chat(ctx context.Context, system, user string, temperature float64, maxTokens int) (string, error) {
	return f(ctx, system, user, temperature, maxTokens)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseType(t *testing.T) {
	for _, s := range []string{"multiple_choice", "TRUE_FALSE", " short_answer ", "fill_blank"} {
		if _, err := ParseType(s); err != nil {
			t.Errorf("%q: unexpected error: %v", s, err)
		}
	}
	if _, err := ParseType("essay"); err == nil {
		t.Error("expected error for unknown type")
	}
}

func TestQuestionType_Label(t *testing.T) {
	if got := MultipleChoice.Label(); got != "multiple choice" {
		t.Errorf("expected %q, got %q", "multiple choice", got)
	}
}

func TestGenerator_TagsQuestionsWithType(t *testing.T) {
	fake := chatFunc(func(_ context.Context, _, _ string, _ float64, _ int) (string, error) {
		return `[{"question":"What is Go?","correct_answer":"A language"}]`, nil
	})
	g := NewGenerator(fake, discardLogger(), nil)

	questions, err := g.Generate(context.Background(), "some text", 1, []QuestionType{FillBlank}, "easy")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question, got %d", len(questions))
	}
	if questions[0].Type != FillBlank {
		t.Errorf("expected type %q, got %q", FillBlank, questions[0].Type)
	}
}

func TestGenerator_CapsAtRequestedCount(t *testing.T) {
	fake := chatFunc(func(_ context.Context, _, _ string, _ float64, _ int) (string, error) {
		return `[{"question":"q1"},{"question":"q2"},{"question":"q3"},{"question":"q4"},{"question":"q5"}]`, nil
	})
	g := NewGenerator(fake, discardLogger(), nil)

	questions, err := g.Generate(context.Background(), "text", 5, DefaultTypes, "medium")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 5 {
		t.Errorf("expected 5 questions after capping, got %d", len(questions))
	}
}

func TestGenerator_OneTypeFailingIsSkipped(t *testing.T) {
	fake := chatFunc(func(_ context.Context, _, user string, _ float64, _ int) (string, error) {
		if strings.Contains(user, TrueFalse.Label()) {
			return "", errors.New("model unavailable")
		}
		return `[{"question":"ok","correct_answer":"A"}]`, nil
	})
	g := NewGenerator(fake, discardLogger(), nil)

	questions, err := g.Generate(context.Background(), "text", 4,
		[]QuestionType{MultipleChoice, TrueFalse}, "medium")
	if err != nil {
		t.Fatalf("expected partial success, got error: %v", err)
	}
	if len(questions) != 1 {
		t.Fatalf("expected 1 question from the surviving type, got %d", len(questions))
	}
	if questions[0].Type != MultipleChoice {
		t.Errorf("expected surviving question type %q, got %q", MultipleChoice, questions[0].Type)
	}
}

func TestGenerator_AllTypesFailingReturnsError(t *testing.T) {
	fake := chatFunc(func(_ context.Context, _, _ string, _ float64, _ int) (string, error) {
		return "", errors.New("model unavailable")
	})
	g := NewGenerator(fake, discardLogger(), nil)

	_, err := g.Generate(context.Background(), "text", 5, DefaultTypes, "medium")
	if err == nil {
		t.Fatal("expected error when every type fails")
	}
}

func TestGenerator_UnparseableResponsesReturnError(t *testing.T) {
	fake := chatFunc(func(_ context.Context, _, _ string, _ float64, _ int) (string, error) {
		return "I cannot produce JSON today.", nil
	})
	g := NewGenerator(fake, discardLogger(), nil)

	if _, err := g.Generate(context.Background(), "text", 5, DefaultTypes, "medium"); err == nil {
		t.Fatal("expected error when no response parses")
	}
}

func TestGenerator_RecordsStats(t *testing.T) {
	fake := chatFunc(func(_ context.Context, _, _ string, _ float64, _ int) (string, error) {
		return `[{"question":"q"}]`, nil
	})
	stats := NewStats(time.Hour)
	g := NewGenerator(fake, discardLogger(), stats)

	if _, err := g.Generate(context.Background(), "text", 2, []QuestionType{TrueFalse}, "medium"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	snap := stats.Snapshot()
	if snap.Count != 1 {
		t.Errorf("expected 1 recorded call, got %d", snap.Count)
	}
	if snap.QuestionsByType[string(TrueFalse)] != 1 {
		t.Errorf("expected 1 true_false question counted, got %d", snap.QuestionsByType[string(TrueFalse)])
	}
}

func TestParseQuestions_CodeFencedJSON(t *testing.T) {
	content := "```json\n[{\"question\":\"fenced\"}]\n```"
	questions, err := parseQuestions(content, ShortAnswer)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(questions) != 1 || questions[0].Question != "fenced" {
		t.Fatalf("expected fenced question parsed, got %+v", questions)
	}
	if questions[0].Type != ShortAnswer {
		t.Errorf("expected type tagged, got %q", questions[0].Type)
	}
}

func TestParseQuestions_Invalid(t *testing.T) {
	if _, err := parseQuestions("not json", MultipleChoice); err == nil {
		t.Error("expected parse error")
	}
}
