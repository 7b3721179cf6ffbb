package validation

import (
	"strings"

	"assessly/internal/domain"
)

// Validator provides request validation functionality
type Validator struct{}

// NewValidator creates a new validator instance
func NewValidator() *Validator {
	return &Validator{}
}

// ValidateGenerateRequest validates the upload-and-generate form fields
func (v *Validator) ValidateGenerateRequest(filename string, numQuestions int, difficulty string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if strings.TrimSpace(filename) == "" {
		errors = append(errors, domain.NewMissingFieldError("file"))
	}

	if numQuestions < domain.MinQuestions || numQuestions > domain.MaxQuestions {
		errors = append(errors, domain.NewOutOfRangeError("num_questions", numQuestions, domain.MinQuestions, domain.MaxQuestions))
	}

	if _, err := domain.ParseDifficulty(difficulty); err != nil {
		errors = append(errors, domain.NewInvalidFormatError("difficulty", difficulty))
	}

	return errors
}

// ValidateAnswerRequest validates the record-answer request body
func (v *Validator) ValidateAnswerRequest(index int, answer string) domain.ValidationErrors {
	var errors domain.ValidationErrors

	if index < 0 {
		errors = append(errors, domain.NewOutOfRangeError("index", index, 0, domain.MaxQuestions-1))
	}

	if strings.TrimSpace(answer) == "" {
		errors = append(errors, domain.NewMissingFieldError("answer"))
	}

	return errors
}
