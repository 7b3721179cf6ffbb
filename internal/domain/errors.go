package domain

import (
	"encoding/json"
	"fmt"
)

// ErrorCode represents a specific type of error in the domain
type ErrorCode string

const (
	// Common errors
	CodeInternal     ErrorCode = "INTERNAL_ERROR"
	CodeInvalidInput ErrorCode = "INVALID_INPUT"
	CodeNotFound     ErrorCode = "NOT_FOUND"

	// Validation errors
	CodeValidation    ErrorCode = "VALIDATION_ERROR"
	CodeMissingField  ErrorCode = "MISSING_FIELD"
	CodeInvalidFormat ErrorCode = "INVALID_FORMAT"
	CodeOutOfRange    ErrorCode = "OUT_OF_RANGE"

	// Pipeline errors
	CodeExtraction    ErrorCode = "EXTRACTION_ERROR"
	CodeEmptyResponse ErrorCode = "EMPTY_RESPONSE"
	CodeMalformedJSON ErrorCode = "MALFORMED_JSON"
	CodeProviderError ErrorCode = "PROVIDER_ERROR"
	CodeEmptyQuiz     ErrorCode = "EMPTY_QUIZ"

	// Session errors
	CodeSessionNotFound ErrorCode = "SESSION_NOT_FOUND"
	CodeInvalidState    ErrorCode = "INVALID_STATE"
)

// DomainError represents a domain-specific error
type DomainError struct {
	Code    ErrorCode              `json:"code"`
	Message string                 `json:"message"`
	Cause   error                  `json:"-"`
	Context map[string]interface{} `json:"-"`
}

func (e *DomainError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *DomainError) Unwrap() error {
	return e.Cause
}

// MarshalJSON implements the json.Marshaler interface
func (e *DomainError) MarshalJSON() ([]byte, error) {
	return json.Marshal(&struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	}{
		Code:    string(e.Code),
		Message: e.Message,
	})
}

// NewError creates a new DomainError
func NewError(code ErrorCode, message string, cause error) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithContext attaches additional detail to the error for the HTTP layer
func (e *DomainError) WithContext(key string, value interface{}) *DomainError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Helper functions for common errors

func NewInternalError(message string, cause error) *DomainError {
	return NewError(CodeInternal, message, cause)
}

func NewInvalidInputError(message string) *DomainError {
	return NewError(CodeInvalidInput, message, nil)
}

func NewExtractionError(message string, cause error) *DomainError {
	return NewError(CodeExtraction, message, cause)
}

func NewEmptyResponseError() *DomainError {
	return NewError(CodeEmptyResponse, "Provider returned no content", nil)
}

func NewMalformedJSONError(cause error) *DomainError {
	return NewError(CodeMalformedJSON, "Provider response is not valid JSON", cause)
}

func NewProviderError(cause error) *DomainError {
	return NewError(CodeProviderError, "Quiz generation provider call failed", cause)
}

func NewEmptyQuizError(skipped int) *DomainError {
	return NewError(CodeEmptyQuiz, "No valid questions in provider response", nil).
		WithContext("skipped", skipped)
}

func NewSessionNotFoundError(sessionID string) *DomainError {
	return NewError(CodeSessionNotFound, fmt.Sprintf("Session not found: %s", sessionID), nil)
}

func NewInvalidStateError(message string) *DomainError {
	return NewError(CodeInvalidState, message, nil)
}

// ValidationError represents a single request validation failure
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors accumulates validation failures for a request
type ValidationErrors []ValidationError

func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "validation failed"
	}
	return fmt.Sprintf("validation failed: %s (and %d more)", e[0].Error(), len(e)-1)
}

func NewMissingFieldError(field string) ValidationError {
	return ValidationError{Field: field, Message: "is required"}
}

func NewInvalidFormatError(field, value string) ValidationError {
	return ValidationError{Field: field, Message: fmt.Sprintf("has invalid format: %q", value)}
}

func NewOutOfRangeError(field string, value, min, max int) ValidationError {
	return ValidationError{
		Field:   field,
		Message: fmt.Sprintf("must be between %d and %d, got %d", min, max, value),
	}
}
