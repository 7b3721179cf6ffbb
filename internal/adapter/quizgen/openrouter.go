package quizgen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"assessly/internal/domain"

	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
)

// OpenRouterGenerator implements domain.QuizGenerator against OpenRouter's
// OpenAI-compatible chat completion API.
type OpenRouterGenerator struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenRouterGenerator creates a generator for the given credentials.
// baseURL may be empty to talk to api.openai.com directly.
func NewOpenRouterGenerator(apiKey, baseURL, model string, logger *zap.Logger) (domain.QuizGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("OpenRouter API key cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("OpenRouter model name cannot be empty")
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	logger.Info("Initializing OpenRouter quiz generator",
		zap.String("model", model),
		zap.String("base_url", cfg.BaseURL),
	)

	return &OpenRouterGenerator{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		logger: logger,
	}, nil
}

// Generate sends a single chat completion request and returns the raw
// response text. Transport and provider failures surface as PROVIDER_ERROR;
// a response without content is EMPTY_RESPONSE. No retries.
func (g *OpenRouterGenerator) Generate(ctx context.Context, text string, count int, difficulty domain.Difficulty) (string, error) {
	prompt := BuildPrompt(text, count, difficulty)

	g.logger.Debug("Sending generation request",
		zap.String("model", g.model),
		zap.Int("num_questions", count),
		zap.String("difficulty", string(difficulty)),
		zap.Int("prompt_len", len(prompt)),
	)

	start := time.Now()
	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		Temperature: 0.7,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemInstruction},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		g.logger.Error("Chat completion call failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return "", domain.NewProviderError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		g.logger.Warn("Provider returned an empty completion", zap.String("model", g.model))
		return "", domain.NewEmptyResponseError()
	}

	g.logger.Info("Generation request completed",
		zap.String("model", g.model),
		zap.Duration("elapsed", time.Since(start)),
	)
	return resp.Choices[0].Message.Content, nil
}

var _ domain.QuizGenerator = (*OpenRouterGenerator)(nil)
