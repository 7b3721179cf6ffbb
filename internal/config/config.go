package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	SourceOpenRouter = "openrouter"
	SourceOllama     = "ollama"
)

type Config struct {
	Server   ServerConfig
	Provider ProviderConfig
	Logger   LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
	BodyLimit    int
}

// ProviderConfig selects and configures the quiz generation provider
type ProviderConfig struct {
	Source          string
	BaseURL         string
	Model           string
	APIKey          string
	GenerateTimeout time.Duration
}

type LoggerConfig struct {
	Level string
	Env   string
}

// LoadConfig reads config.yaml (optional) with environment overrides. A
// .env file is loaded first so local development can keep the provider
// credential out of the shell.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./configs")
	viper.AutomaticEnv()

	viper.SetDefault("server.port", 8000)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 30*time.Second)
	viper.SetDefault("server.idle_timeout", 30*time.Second)
	viper.SetDefault("server.body_limit", 10*1024*1024)
	viper.SetDefault("provider.source", SourceOpenRouter)
	viper.SetDefault("provider.base_url", "https://openrouter.ai/api/v1")
	viper.SetDefault("provider.model", "openai/gpt-oss-20b:free")
	viper.SetDefault("provider.generate_timeout", 300*time.Second)
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.env", "development")

	if err := viper.ReadInConfig(); err != nil {
		// Config file is optional; defaults plus env cover a full setup
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config := &Config{
		Server: ServerConfig{
			Port:         viper.GetInt("server.port"),
			ReadTimeout:  viper.GetDuration("server.read_timeout"),
			WriteTimeout: viper.GetDuration("server.write_timeout"),
			IdleTimeout:  viper.GetDuration("server.idle_timeout"),
			BodyLimit:    viper.GetInt("server.body_limit"),
		},
		Provider: ProviderConfig{
			Source:          viper.GetString("provider.source"),
			BaseURL:         viper.GetString("provider.base_url"),
			Model:           viper.GetString("provider.model"),
			APIKey:          viper.GetString("provider.api_key"),
			GenerateTimeout: viper.GetDuration("provider.generate_timeout"),
		},
		Logger: LoggerConfig{
			Level: viper.GetString("logger.level"),
			Env:   viper.GetString("logger.env"),
		},
	}

	// Environment overrides
	if key := os.Getenv("ASSESSLY_API_KEY"); key != "" {
		config.Provider.APIKey = key
	}
	if source := os.Getenv("PROVIDER_SOURCE"); source != "" {
		config.Provider.Source = source
	}
	if baseURL := os.Getenv("PROVIDER_BASE_URL"); baseURL != "" {
		config.Provider.BaseURL = baseURL
	}
	if model := os.Getenv("PROVIDER_MODEL"); model != "" {
		config.Provider.Model = model
	}
	if env := os.Getenv("ENV"); env != "" {
		config.Logger.Env = env
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate fails fast on a configuration the server cannot run with, most
// importantly a missing provider credential.
func (c *Config) Validate() error {
	switch c.Provider.Source {
	case SourceOpenRouter:
		if c.Provider.APIKey == "" {
			return fmt.Errorf("provider credential is not set: export ASSESSLY_API_KEY or set provider.api_key")
		}
	case SourceOllama:
		if c.Provider.BaseURL == "" {
			return fmt.Errorf("provider.base_url is required for the ollama source")
		}
	default:
		return fmt.Errorf("unsupported provider source: %q (want %q or %q)", c.Provider.Source, SourceOpenRouter, SourceOllama)
	}

	if c.Provider.Model == "" {
		return fmt.Errorf("provider.model must not be empty")
	}
	if c.Provider.GenerateTimeout <= 0 {
		return fmt.Errorf("provider.generate_timeout must be positive")
	}
	return nil
}
