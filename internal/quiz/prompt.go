package quiz

import "fmt"

const generatorSystem = "You are a helpful assistant that generates educational quiz questions. Always respond with valid JSON."

const graderSystem = "You are an educational assistant evaluating student answers. Be fair but thorough."

// Source text beyond this many bytes is cut before prompting; one chunk
// comfortably fits.
const promptTextLimit = 3000

const multipleChoiceFormat = `[
  {
    "question": "What is...",
    "options": ["A) Option 1", "B) Option 2", "C) Option 3", "D) Option 4"],
    "correct_answer": "A",
    "explanation": "Brief explanation of why this is correct"
  }
]`

const trueFalseFormat = `[
  {
    "question": "Statement to evaluate...",
    "correct_answer": "True",
    "explanation": "Brief explanation of why this is true/false"
  }
]`

const shortAnswerFormat = `[
  {
    "question": "What...",
    "sample_answer": "Sample correct answer",
    "key_points": ["Key point 1", "Key point 2"]
  }
]`

const fillBlankFormat = `[
  {
    "question": "The process of _____ involves...",
    "correct_answer": "the missing word or phrase",
    "explanation": "Brief explanation"
  }
]`

// buildQuestionPrompt assembles the generation prompt for one question
// type over a source chunk.
func buildQuestionPrompt(qt QuestionType, text string, n int, difficulty string) string {
	var format, extra string
	switch qt {
	case MultipleChoice:
		format = multipleChoiceFormat
		extra = "Make sure the questions are diverse and test understanding of key concepts."
	case TrueFalse:
		format = trueFalseFormat
		extra = "Include a mix of true and false statements."
	case ShortAnswer:
		format = shortAnswerFormat
		extra = "Questions should require 1-3 sentence answers."
	case FillBlank:
		format = fillBlankFormat
		extra = "Use _____ to indicate the blank."
	}

	if len(text) > promptTextLimit {
		text = text[:promptTextLimit]
	}

	return fmt.Sprintf(`Based on the following text, generate %d %s questions at %s difficulty level.

Text:
%s

Return your response as a JSON array with this exact format:
%s

%s`, n, qt.Label(), difficulty, text, format, extra)
}

// buildGradingPrompt assembles the short-answer evaluation prompt.
func buildGradingPrompt(q Question, userAnswer string) string {
	keyPoints := ""
	for i, kp := range q.KeyPoints {
		if i > 0 {
			keyPoints += ", "
		}
		keyPoints += kp
	}

	return fmt.Sprintf(`Evaluate if this answer is correct for the given question.

Question: %s
Sample Answer: %s
Key Points: %s
User Answer: %s

Respond with JSON in this format:
{
  "correct": true/false,
  "score": 0-100,
  "feedback": "Brief feedback on the answer"
}`, q.Question, q.SampleAnswer, keyPoints, userAnswer)
}
