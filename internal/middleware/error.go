package middleware

import (
	"errors"
	"net/http"

	"assessly/internal/domain"
	"assessly/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse is the standard error payload. Detail carries the
// human-readable reason, mirroring the transport contract.
type ErrorResponse struct {
	Detail  string                 `json:"detail"`
	Code    string                 `json:"code"`
	Context map[string]interface{} `json:"context,omitempty"`
}

// ValidationErrorResponse carries accumulated request validation failures
type ValidationErrorResponse struct {
	Detail string                   `json:"detail"`
	Code   string                   `json:"code"`
	Errors []domain.ValidationError `json:"errors"`
}

// ErrorHandler is the centralized fiber error handler. Handlers and
// middleware return errors; this is the only place that turns them into
// HTTP responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		log := logger.Get()

		// Accumulated request validation failures
		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			log.Warn("Request validation failed",
				zap.String("path", c.Path()),
				zap.Int("error_count", len(validationErrs)),
			)
			return c.Status(http.StatusBadRequest).JSON(ValidationErrorResponse{
				Detail: "Request validation failed",
				Code:   string(domain.CodeValidation),
				Errors: validationErrs,
			})
		}

		// Domain errors
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := mapDomainErrorToHTTPStatus(domainErr)

			log.Error("Domain error occurred",
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", statusCode),
				zap.Error(domainErr.Cause),
			)

			return c.Status(statusCode).JSON(ErrorResponse{
				Detail:  domainErr.Message,
				Code:    string(domainErr.Code),
				Context: domainErr.Context,
			})
		}

		// Fiber errors (routing, body limits, ...)
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			log.Warn("HTTP error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Detail: fiberErr.Message,
				Code:   "HTTP_ERROR",
			})
		}

		// Anything else
		log.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Detail: "Internal server error",
			Code:   string(domain.CodeInternal),
		})
	}
}

func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeNotFound, domain.CodeSessionNotFound:
		return http.StatusNotFound
	case domain.CodeInvalidInput, domain.CodeExtraction,
		domain.CodeValidation, domain.CodeMissingField, domain.CodeInvalidFormat, domain.CodeOutOfRange:
		return http.StatusBadRequest
	case domain.CodeInvalidState:
		return http.StatusConflict
	case domain.CodeEmptyResponse, domain.CodeMalformedJSON, domain.CodeEmptyQuiz:
		return http.StatusBadGateway
	case domain.CodeProviderError:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
