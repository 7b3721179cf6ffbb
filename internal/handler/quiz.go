package handler

import (
	"io"

	"assessly/internal/domain"
	"assessly/internal/dto"
	"assessly/internal/service"
	"assessly/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuizHandler handles quiz generation and session HTTP requests
type QuizHandler struct {
	service   service.QuizService
	validator *validation.Validator
}

// NewQuizHandler creates a new QuizHandler instance
func NewQuizHandler(service service.QuizService) *QuizHandler {
	return &QuizHandler{
		service:   service,
		validator: validation.NewValidator(),
	}
}

// GenerateQuiz godoc
// @Summary Generate a quiz from an uploaded document
// @Description Extracts text from a PDF or DOCX upload and generates a multiple-choice quiz
// @Tags quiz
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF or DOCX document"
// @Param num_questions formData int false "Number of questions (1-20, default 5)"
// @Param difficulty formData string false "easy, medium or hard (default medium)"
// @Param session_id formData string false "Existing session to regenerate into"
// @Success 200 {object} dto.GenerateQuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /upload-n-generate [post]
func (h *QuizHandler) GenerateQuiz(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return domain.ValidationErrors{domain.NewMissingFieldError("file")}
	}

	file, err := fileHeader.Open()
	if err != nil {
		return domain.NewInternalError("Failed to open uploaded file", err)
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return domain.NewInternalError("Failed to read uploaded file", err)
	}

	resp, err := h.service.GenerateFromDocument(c.Context(), service.GenerateRequest{
		Filename:     fileHeader.Filename,
		Data:         data,
		NumQuestions: c.Locals("validated_num_questions").(int),
		Difficulty:   c.Locals("validated_difficulty").(domain.Difficulty),
		SessionID:    c.FormValue("session_id"),
	})
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// RecordAnswer godoc
// @Summary Record an answer for a session's quiz
// @Tags sessions
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.AnswerRequest true "Answer details"
// @Success 200 {object} dto.SessionStateResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/answers [post]
func (h *QuizHandler) RecordAnswer(c *fiber.Ctx) error {
	var req dto.AnswerRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("Invalid request body")
	}

	if errs := h.validator.ValidateAnswerRequest(req.Index, req.Answer); len(errs) > 0 {
		return errs
	}

	resp, err := h.service.RecordAnswer(c.Params("id"), req.Index, req.Answer)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// SubmitQuiz godoc
// @Summary Submit a session's quiz for scoring
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.ScoreReportResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /sessions/{id}/submit [post]
func (h *QuizHandler) SubmitQuiz(c *fiber.Ctx) error {
	resp, err := h.service.Submit(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ResetQuiz godoc
// @Summary Reset a session for another attempt at the same quiz
// @Tags sessions
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionStateResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id}/reset [post]
func (h *QuizHandler) ResetQuiz(c *fiber.Ctx) error {
	resp, err := h.service.Reset(c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// DiscardSession godoc
// @Summary Discard a session and its quiz
// @Tags sessions
// @Param id path string true "Session ID"
// @Success 204
// @Failure 404 {object} middleware.ErrorResponse
// @Router /sessions/{id} [delete]
func (h *QuizHandler) DiscardSession(c *fiber.Ctx) error {
	if err := h.service.Discard(c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// HealthCheck godoc
// @Summary Liveness probe
// @Produce json
// @Success 200 {object} dto.HealthResponse
// @Router /health [get]
func (h *QuizHandler) HealthCheck(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{Status: "healthy"})
}
