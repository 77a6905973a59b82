package quiz

import (
	"context"
	"errors"
	"testing"
)

func TestValidate_MultipleChoice(t *testing.T) {
	g := NewGenerator(nil, discardLogger(), nil)
	q := Question{
		Type:          MultipleChoice,
		Question:      "Which planet is largest?",
		Options:       []string{"Mars", "Jupiter", "Venus", "Earth"},
		CorrectAnswer: "Jupiter",
		Explanation:   "Jupiter is the largest planet.",
	}

	cases := []struct {
		answer string
		want   bool
	}{
		{"Jupiter", true},
		{"jupiter", true},
		{"  Jupiter  ", true},
		{"Mars", false},
		{"", false},
	}
	for _, tc := range cases {
		r := g.Validate(context.Background(), q, tc.answer)
		if r.Correct != tc.want {
			t.Errorf("answer %q: expected correct=%v, got %v", tc.answer, tc.want, r.Correct)
		}
		if r.CorrectAnswer != "Jupiter" {
			t.Errorf("answer %q: expected correct answer echoed", tc.answer)
		}
	}
}

func TestValidate_MultipleChoiceLetterAnswers(t *testing.T) {
	// Generated questions carry the option letter as the correct
	// answer; both the letter and the matching option text must grade
	// correct.
	g := NewGenerator(nil, discardLogger(), nil)
	q := Question{
		Type:          MultipleChoice,
		Question:      "What is the capital of France?",
		Options:       []string{"A) Paris", "B) Lyon", "C) Nice", "D) Lille"},
		CorrectAnswer: "A",
	}

	cases := []struct {
		answer string
		want   bool
	}{
		{"A", true},
		{"a", true},
		{"A) Paris", true},
		{"a) paris", true},
		{"B", false},
		{"B) Lyon", false},
		{"Paris", false}, // bare option body is not an accepted form
	}
	for _, tc := range cases {
		r := g.Validate(context.Background(), q, tc.answer)
		if r.Correct != tc.want {
			t.Errorf("answer %q: expected correct=%v, got %v", tc.answer, tc.want, r.Correct)
		}
	}
}

func TestValidate_TrueFalse(t *testing.T) {
	g := NewGenerator(nil, discardLogger(), nil)
	qTrue := Question{Type: TrueFalse, CorrectAnswer: "True"}
	qFalse := Question{Type: TrueFalse, CorrectAnswer: "False"}

	cases := []struct {
		q      Question
		answer string
		want   bool
	}{
		{qTrue, "true", true},
		{qTrue, "T", true},
		{qTrue, "yes", true},
		{qTrue, "y", true},
		{qTrue, "false", false},
		{qTrue, "maybe", false},
		{qFalse, "false", true},
		{qFalse, "No", true},
		{qFalse, "n", true},
		{qFalse, "true", false},
	}
	for _, tc := range cases {
		r := g.Validate(context.Background(), tc.q, tc.answer)
		if r.Correct != tc.want {
			t.Errorf("correct=%q answer=%q: expected %v, got %v",
				tc.q.CorrectAnswer, tc.answer, tc.want, r.Correct)
		}
	}
}

func TestValidate_FillBlank(t *testing.T) {
	g := NewGenerator(nil, discardLogger(), nil)
	q := Question{Type: FillBlank, CorrectAnswer: "photosynthesis"}

	cases := []struct {
		answer string
		want   bool
	}{
		{"photosynthesis", true},
		{"Photosynthesis", true},
		{"the process of photosynthesis", true}, // containment counts
		{"respiration", false},
	}
	for _, tc := range cases {
		r := g.Validate(context.Background(), q, tc.answer)
		if r.Correct != tc.want {
			t.Errorf("answer %q: expected %v, got %v", tc.answer, tc.want, r.Correct)
		}
	}
}

func TestValidate_ShortAnswerGraded(t *testing.T) {
	fake := chatFunc(func(_ context.Context, _, _ string, _ float64, _ int) (string, error) {
		return `{"correct":true,"score":85,"feedback":"Good answer."}`, nil
	})
	g := NewGenerator(fake, discardLogger(), nil)
	q := Question{
		Type:         ShortAnswer,
		Question:     "Explain gravity.",
		SampleAnswer: "Mass attracts mass.",
	}

	r := g.Validate(context.Background(), q, "Things fall because mass attracts mass.")
	if !r.Correct {
		t.Error("expected graded correct")
	}
	if r.Score != 85 {
		t.Errorf("expected score 85, got %d", r.Score)
	}
	if r.Feedback != "Good answer." {
		t.Errorf("expected model feedback, got %q", r.Feedback)
	}
	if r.SampleAnswer != "Mass attracts mass." {
		t.Errorf("expected sample answer carried through, got %q", r.SampleAnswer)
	}
}

func TestValidate_ShortAnswerGradingFailureFallsBack(t *testing.T) {
	fake := chatFunc(func(_ context.Context, _, _ string, _ float64, _ int) (string, error) {
		return "", errors.New("model down")
	})
	g := NewGenerator(fake, discardLogger(), nil)
	q := Question{Type: ShortAnswer, SampleAnswer: "sample"}

	r := g.Validate(context.Background(), q, "my answer")
	if r.Correct {
		t.Error("fallback result must not claim correctness")
	}
	if r.Feedback == "" {
		t.Error("expected fallback feedback explaining the failure")
	}
	if r.SampleAnswer != "sample" {
		t.Errorf("expected sample answer in fallback, got %q", r.SampleAnswer)
	}
}

func TestValidate_ShortAnswerUnparseableGradeFallsBack(t *testing.T) {
	fake := chatFunc(func(_ context.Context, _, _ string, _ float64, _ int) (string, error) {
		return "definitely not json", nil
	})
	g := NewGenerator(fake, discardLogger(), nil)

	r := g.Validate(context.Background(), Question{Type: ShortAnswer}, "answer")
	if r.Correct {
		t.Error("expected fallback to mark answer incorrect")
	}
}
