package domain

import (
	"fmt"
	"math"
	"strings"
)

const (
	// OptionsPerQuestion is the number of choices every question must carry
	OptionsPerQuestion = 4

	// DefaultMarks is assigned when the provider omits a usable marks value
	DefaultMarks = 1.0

	// WrongAnswerPenalty is subtracted for an incorrect answer regardless of
	// the question's marks value
	WrongAnswerPenalty = 0.25

	// MinQuestions and MaxQuestions bound the requested quiz size
	MinQuestions = 1
	MaxQuestions = 20
)

// Difficulty is the requested quiz difficulty. It only informs the provider
// prompt and is not validated against the generated output.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty parses a difficulty string case-insensitively
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyMedium:
		return DifficultyMedium, nil
	case DifficultyHard:
		return DifficultyHard, nil
	default:
		return "", fmt.Errorf("invalid difficulty: %q", s)
	}
}

// Question is a validated multiple-choice question. Instances are created by
// the validator from provider output and are immutable afterwards.
type Question struct {
	Text          string
	Options       []string
	CorrectAnswer string
	Marks         float64
}

// Quiz is an ordered set of validated questions. Insertion order is display
// order and scoring order. A quiz is replaced, never mutated, on regeneration.
type Quiz struct {
	Questions      []Question
	Difficulty     Difficulty
	RequestedCount int
}

// AnswerSet maps a 0-based question index to the selected option text.
// A missing entry means the question is unanswered.
type AnswerSet map[int]string

// Clone returns an independent copy used as a scoring snapshot
func (a AnswerSet) Clone() AnswerSet {
	out := make(AnswerSet, len(a))
	for i, v := range a {
		out[i] = v
	}
	return out
}

// QuestionResult is the per-question review entry of a ScoreReport
type QuestionResult struct {
	Index         int
	Question      string
	Answered      bool
	UserAnswer    string
	CorrectAnswer string
	IsCorrect     bool
}

// ScoreReport is derived from a Quiz and a frozen AnswerSet. It is recomputed
// on demand and never mutated in place.
type ScoreReport struct {
	Obtained    float64
	Total       float64
	Percentage  int
	PerQuestion []QuestionResult
}

// Score computes the marking of the given answers against the quiz.
//
// Each question contributes its marks to the total. A trimmed exact match
// earns the question's marks; a wrong answer costs the flat penalty; an
// unanswered question earns and costs nothing. The obtained score is not
// floored at zero, so negative totals are possible and surfaced as-is.
func (q *Quiz) Score(answers AnswerSet) *ScoreReport {
	report := &ScoreReport{
		PerQuestion: make([]QuestionResult, 0, len(q.Questions)),
	}

	for i, question := range q.Questions {
		report.Total += question.Marks

		result := QuestionResult{
			Index:         i,
			Question:      question.Text,
			CorrectAnswer: question.CorrectAnswer,
		}

		if answer, ok := answers[i]; ok {
			result.Answered = true
			result.UserAnswer = answer
			if strings.TrimSpace(answer) == strings.TrimSpace(question.CorrectAnswer) {
				result.IsCorrect = true
				report.Obtained += question.Marks
			} else {
				report.Obtained -= WrongAnswerPenalty
			}
		}

		report.PerQuestion = append(report.PerQuestion, result)
	}

	if report.Total > 0 {
		report.Percentage = int(math.Round(report.Obtained / report.Total * 100))
	}

	return report
}
