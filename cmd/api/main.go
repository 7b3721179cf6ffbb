// @title Assessly API
// @version 1.0
// @description Turns uploaded lecture documents into multiple-choice quizzes.
// @host localhost:8000
// @BasePath /api
// @schemes http https
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"assessly/internal/adapter/quizgen"
	"assessly/internal/config"
	"assessly/internal/domain"
	"assessly/internal/extract"
	"assessly/internal/handler"
	"assessly/internal/logger"
	"assessly/internal/middleware"
	"assessly/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// requestLogger is a middleware that logs HTTP requests
func requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		path := c.Path()
		method := c.Method()

		err := c.Next()

		duration := time.Since(start)
		status := c.Response().StatusCode()

		logger.Get().Info("HTTP Request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
			zap.Duration("duration", duration),
			zap.String("ip", c.IP()),
			zap.String("user_agent", c.Get("User-Agent")),
		)

		return err
	}
}

func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	if err := logger.Initialize(cfg.Logger); err != nil {
		panic(err)
	}
	appLogger := logger.Get()
	defer logger.Sync()

	// Initialize quiz generator
	var generator domain.QuizGenerator
	switch cfg.Provider.Source {
	case config.SourceOpenRouter:
		appLogger.Info("Initializing OpenRouter quiz generator",
			zap.String("base_url", cfg.Provider.BaseURL),
			zap.String("model", cfg.Provider.Model))
		generator, err = quizgen.NewOpenRouterGenerator(cfg.Provider.APIKey, cfg.Provider.BaseURL, cfg.Provider.Model, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create OpenRouter quiz generator", zap.Error(err))
		}
	case config.SourceOllama:
		appLogger.Info("Initializing Ollama quiz generator",
			zap.String("server_url", cfg.Provider.BaseURL),
			zap.String("model", cfg.Provider.Model))
		httpClient := &http.Client{Timeout: cfg.Provider.GenerateTimeout}
		generator, err = quizgen.NewOllamaGenerator(cfg.Provider.BaseURL, cfg.Provider.Model, httpClient, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to create Ollama quiz generator", zap.Error(err))
		}
	default:
		appLogger.Fatal("Unsupported provider source. Please check PROVIDER_SOURCE in config.",
			zap.String("source", cfg.Provider.Source))
	}

	// Initialize services
	sessionStore := service.NewSessionStore()
	quizService := service.NewQuizService(generator, extract.Text, sessionStore, cfg.Provider.GenerateTimeout)
	appLogger.Info("QuizService initialized")

	// Initialize handlers
	quizHandler := handler.NewQuizHandler(quizService)
	validationMiddleware := middleware.NewValidationMiddleware()

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BodyLimit:    cfg.Server.BodyLimit,
		ErrorHandler: middleware.ErrorHandler(),
	})

	// Add request logging middleware
	app.Use(requestLogger())
	app.Use(cors.New(cors.Config{AllowOrigins: "*", AllowMethods: "GET,POST,DELETE,OPTIONS", AllowHeaders: "Origin,Content-Type,Accept", MaxAge: 300}))
	app.Use(recover.New())

	app.Get("/health", quizHandler.HealthCheck)

	// API group
	apiGroup := app.Group("/api")
	apiGroup.Post("/upload-n-generate", validationMiddleware.ValidateGenerateParams(), quizHandler.GenerateQuiz)

	sessionGroup := apiGroup.Group("/sessions")
	sessionGroup.Post("/:id/answers", quizHandler.RecordAnswer)
	sessionGroup.Post("/:id/submit", quizHandler.SubmitQuiz)
	sessionGroup.Post("/:id/reset", quizHandler.ResetQuiz)
	sessionGroup.Delete("/:id", quizHandler.DiscardSession)

	// Start server
	go func() {
		appLogger.Info("Starting server", zap.Int("port", cfg.Server.Port), zap.String("env", os.Getenv("ENV")))
		if err := app.Listen(":" + strconv.Itoa(cfg.Server.Port)); err != nil {
			appLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(ctx); err != nil {
		appLogger.Fatal("Server forced to shutdown", zap.Error(err))
	}
	appLogger.Info("Server exited gracefully")
}
