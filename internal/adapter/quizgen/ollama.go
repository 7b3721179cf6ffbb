package quizgen

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"assessly/internal/domain"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/ollama"
	"go.uber.org/zap"
)

// OllamaGenerator implements domain.QuizGenerator against a local Ollama
// server, for running the pipeline without an external provider.
type OllamaGenerator struct {
	llm    *ollama.LLM
	model  string
	logger *zap.Logger
}

// NewOllamaGenerator creates a generator bound to the given Ollama server
func NewOllamaGenerator(serverURL, model string, httpClient *http.Client, logger *zap.Logger) (domain.QuizGenerator, error) {
	if serverURL == "" {
		return nil, fmt.Errorf("Ollama server URL cannot be empty")
	}
	if model == "" {
		return nil, fmt.Errorf("Ollama model name cannot be empty")
	}

	llm, err := ollama.New(
		ollama.WithServerURL(serverURL),
		ollama.WithModel(model),
		ollama.WithHTTPClient(httpClient),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Ollama client: %w", err)
	}

	logger.Info("Initializing Ollama quiz generator",
		zap.String("server_url", serverURL),
		zap.String("model", model),
	)

	return &OllamaGenerator{llm: llm, model: model, logger: logger}, nil
}

// Generate sends the prompt as a system+user exchange and returns the raw
// completion text
func (g *OllamaGenerator) Generate(ctx context.Context, text string, count int, difficulty domain.Difficulty) (string, error) {
	prompt := BuildPrompt(text, count, difficulty)

	content := []llms.MessageContent{
		llms.TextParts(llms.ChatMessageTypeSystem, systemInstruction),
		llms.TextParts(llms.ChatMessageTypeHuman, prompt),
	}

	start := time.Now()
	resp, err := g.llm.GenerateContent(ctx, content, llms.WithTemperature(0.7))
	if err != nil {
		g.logger.Error("Ollama call failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return "", domain.NewProviderError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Content) == "" {
		g.logger.Warn("Ollama returned an empty completion", zap.String("model", g.model))
		return "", domain.NewEmptyResponseError()
	}

	g.logger.Info("Generation request completed",
		zap.String("model", g.model),
		zap.Duration("elapsed", time.Since(start)),
	)
	return resp.Choices[0].Content, nil
}

var _ domain.QuizGenerator = (*OllamaGenerator)(nil)
