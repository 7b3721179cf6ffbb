package validation

import (
	"encoding/json"
	"fmt"
	"strings"

	"assessly/internal/domain"
)

// Reason classifies why a provider question was rejected
type Reason string

const (
	ReasonNotAnObject        Reason = "NOT_AN_OBJECT"
	ReasonMalformedEntry     Reason = "MALFORMED_ENTRY"
	ReasonMissingField       Reason = "MISSING_FIELD"
	ReasonInvalidOptionCount Reason = "INVALID_OPTION_COUNT"
	ReasonAnswerNotInOptions Reason = "ANSWER_NOT_IN_OPTIONS"
)

// QuestionError records one rejected question by array index
type QuestionError struct {
	Index  int    `json:"index"`
	Reason Reason `json:"reason"`
	Detail string `json:"detail,omitempty"`
}

func (e QuestionError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("question %d: %s (%s)", e.Index, e.Reason, e.Detail)
	}
	return fmt.Sprintf("question %d: %s", e.Index, e.Reason)
}

// Report accumulates per-question failures. A failed entry never aborts
// validation of the remaining entries.
type Report struct {
	Errors []QuestionError
}

// Skipped is the number of questions excluded from the quiz
func (r Report) Skipped() int {
	return len(r.Errors)
}

// rawQuestion is the loosely-typed question shape the provider returns.
// Nothing outside this package operates on it.
type rawQuestion struct {
	Question      string          `json:"question"`
	Options       []string        `json:"options"`
	CorrectAnswer string          `json:"correct_answer"`
	Marks         json.RawMessage `json:"marks"`
}

// BuildQuiz converts parsed provider elements into a validated Quiz.
//
// Each element is checked independently: it must decode as an object, carry a
// non-empty question, exactly four options, and a correct_answer whose
// trimmed text case-sensitively matches one trimmed option. Marks default to
// 1 when absent or unusable. A quiz with zero valid questions is a hard
// failure; otherwise invalid entries are reported and excluded. Valid
// questions beyond the requested count are dropped.
func BuildQuiz(elements []json.RawMessage, requestedCount int, difficulty domain.Difficulty) (*domain.Quiz, Report, error) {
	var report Report
	questions := make([]domain.Question, 0, len(elements))

	for i, element := range elements {
		question, qErr := buildQuestion(i, element)
		if qErr != nil {
			report.Errors = append(report.Errors, *qErr)
			continue
		}
		questions = append(questions, *question)
	}

	if len(questions) == 0 {
		return nil, report, domain.NewEmptyQuizError(report.Skipped())
	}

	if len(questions) > requestedCount {
		questions = questions[:requestedCount]
	}

	return &domain.Quiz{
		Questions:      questions,
		Difficulty:     difficulty,
		RequestedCount: requestedCount,
	}, report, nil
}

func buildQuestion(index int, element json.RawMessage) (*domain.Question, *QuestionError) {
	if !startsWith(element, '{') {
		return nil, &QuestionError{Index: index, Reason: ReasonNotAnObject}
	}

	var raw rawQuestion
	if err := json.Unmarshal(element, &raw); err != nil {
		return nil, &QuestionError{Index: index, Reason: ReasonMalformedEntry, Detail: err.Error()}
	}

	if strings.TrimSpace(raw.Question) == "" {
		return nil, &QuestionError{Index: index, Reason: ReasonMissingField, Detail: "question"}
	}

	if len(raw.Options) != domain.OptionsPerQuestion {
		return nil, &QuestionError{
			Index:  index,
			Reason: ReasonInvalidOptionCount,
			Detail: fmt.Sprintf("got %d options, want %d", len(raw.Options), domain.OptionsPerQuestion),
		}
	}

	trimmedAnswer := strings.TrimSpace(raw.CorrectAnswer)
	matched := false
	for _, opt := range raw.Options {
		if strings.TrimSpace(opt) == trimmedAnswer && trimmedAnswer != "" {
			matched = true
			break
		}
	}
	if !matched {
		return nil, &QuestionError{Index: index, Reason: ReasonAnswerNotInOptions}
	}

	return &domain.Question{
		Text:          raw.Question,
		Options:       raw.Options,
		CorrectAnswer: raw.CorrectAnswer,
		Marks:         parseMarks(raw.Marks),
	}, nil
}

// parseMarks falls back to the default for absent, non-numeric or
// non-positive values
func parseMarks(raw json.RawMessage) float64 {
	if len(raw) == 0 {
		return domain.DefaultMarks
	}
	var marks float64
	if err := json.Unmarshal(raw, &marks); err != nil || marks <= 0 {
		return domain.DefaultMarks
	}
	return marks
}

func startsWith(value json.RawMessage, c byte) bool {
	for _, b := range value {
		switch b {
		case ' ', '\t', '\n', '\r':
			continue
		default:
			return b == c
		}
	}
	return false
}
