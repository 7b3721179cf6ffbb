package middleware

import (
	"strconv"

	"assessly/internal/domain"
	"assessly/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const (
	defaultNumQuestions = 5
	defaultDifficulty   = "medium"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateGenerateParams validates the form fields of a generation request
// and stores the parsed values in the request context. num_questions and
// difficulty fall back to their defaults when absent.
func (vm *ValidationMiddleware) ValidateGenerateParams() fiber.Handler {
	return func(c *fiber.Ctx) error {
		numQuestions := defaultNumQuestions
		if raw := c.FormValue("num_questions"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil {
				return domain.ValidationErrors{
					domain.NewInvalidFormatError("num_questions", raw),
				}
			}
			numQuestions = parsed
		}

		difficulty := c.FormValue("difficulty")
		if difficulty == "" {
			difficulty = defaultDifficulty
		}

		file, err := c.FormFile("file")
		filename := ""
		if err == nil && file != nil {
			filename = file.Filename
		}

		if errs := vm.validator.ValidateGenerateRequest(filename, numQuestions, difficulty); len(errs) > 0 {
			return errs // Handled by the ErrorHandler
		}

		parsedDifficulty, _ := domain.ParseDifficulty(difficulty)

		c.Locals("validated_num_questions", numQuestions)
		c.Locals("validated_difficulty", parsedDifficulty)
		return c.Next()
	}
}
