package quiz

import (
	"context"
	"encoding/json"
	"strings"
)

// Result reports how a user's answer scored against a question.
type Result struct {
	Correct       bool   `json:"correct"`
	Score         int    `json:"score,omitempty"`
	UserAnswer    string `json:"user_answer"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
	SampleAnswer  string `json:"sample_answer,omitempty"`
	Explanation   string `json:"explanation,omitempty"`
	Feedback      string `json:"feedback,omitempty"`
}

var (
	truthyAnswers = map[string]bool{"true": true, "t": true, "yes": true, "y": true}
	falsyAnswers  = map[string]bool{"false": true, "f": true, "no": true, "n": true}
)

// Validate checks a user's answer. Multiple choice, true/false and
// fill-in-the-blank are graded locally; short answers go to the model.
func (g *Generator) Validate(ctx context.Context, q Question, userAnswer string) Result {
	answer := strings.TrimSpace(userAnswer)

	switch q.Type {
	case MultipleChoice:
		correct := strings.EqualFold(answer, q.CorrectAnswer)
		// The correct answer is usually the option letter; accept the
		// full option text for that letter too.
		if !correct && len(q.CorrectAnswer) == 1 {
			if idx := int(strings.ToUpper(q.CorrectAnswer)[0] - 'A'); idx >= 0 && idx < len(q.Options) {
				correct = strings.EqualFold(answer, q.Options[idx])
			}
		}
		return Result{
			Correct:       correct,
			UserAnswer:    answer,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}

	case TrueFalse:
		given := strings.ToLower(answer)
		want := strings.ToLower(q.CorrectAnswer)
		correct := (truthyAnswers[given] && want == "true") ||
			(falsyAnswers[given] && want == "false")
		return Result{
			Correct:       correct,
			UserAnswer:    answer,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}

	case FillBlank:
		wantLower := strings.ToLower(strings.TrimSpace(q.CorrectAnswer))
		givenLower := strings.ToLower(answer)
		correct := wantLower == givenLower || strings.Contains(givenLower, wantLower)
		return Result{
			Correct:       correct,
			UserAnswer:    answer,
			CorrectAnswer: q.CorrectAnswer,
			Explanation:   q.Explanation,
		}

	case ShortAnswer:
		return g.gradeShortAnswer(ctx, q, answer)
	}

	return Result{Correct: false, UserAnswer: answer}
}

type gradeResponse struct {
	Correct  bool   `json:"correct"`
	Score    int    `json:"score"`
	Feedback string `json:"feedback"`
}

// gradeShortAnswer asks the model to evaluate a free-form answer.
// Grading failures degrade to an "unable to evaluate" result instead of
// surfacing an error mid-quiz.
func (g *Generator) gradeShortAnswer(ctx context.Context, q Question, answer string) Result {
	fallback := Result{
		Correct:      false,
		UserAnswer:   answer,
		SampleAnswer: q.SampleAnswer,
		Feedback:     "Could not evaluate answer automatically.",
	}

	content, err := g.client.Chat(ctx, graderSystem, buildGradingPrompt(q, answer), 0.3, 500)
	if err != nil {
		g.log.Warn("short answer grading failed", "error", err)
		return fallback
	}

	var graded gradeResponse
	if err := json.Unmarshal([]byte(stripCodeBlock(content)), &graded); err != nil {
		g.log.Warn("short answer grade parse failed", "error", err)
		return fallback
	}

	return Result{
		Correct:      graded.Correct,
		Score:        graded.Score,
		UserAnswer:   answer,
		SampleAnswer: q.SampleAnswer,
		Feedback:     graded.Feedback,
	}
}
