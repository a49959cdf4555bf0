package config

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the complete gateway configuration
type Config struct {
	Server        ServerConfig
	Router        RouterConfig
	Fallback      FallbackConfig
	Backend       BackendConfig
	Observability ObservabilityConfig
	Environment   string
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host            string
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// RouterConfig holds model routing configuration
type RouterConfig struct {
	// CostWeight scales the per-model cost penalty during scoring
	CostWeight float64

	// LatencyWeight scales the per-model latency penalty during scoring
	LatencyWeight float64

	// DefaultModelID is the recovery model when no candidate resolves
	DefaultModelID string
}

// FallbackConfig holds fallback chain configuration
type FallbackConfig struct {
	// Models is the candidate order, cheapest/fastest first
	Models []string

	// MaxRetries is the extra attempts per model beyond the first
	MaxRetries int

	// RetryDelay is the fixed wait between attempts of the same model
	RetryDelay time.Duration
}

// BackendConfig holds backend call defaults
type BackendConfig struct {
	// Timeout bounds each individual backend attempt
	Timeout time.Duration

	Temperature float64
	MaxTokens   int
}

// ObservabilityConfig holds logging configuration
type ObservabilityConfig struct {
	LogLevel  string
	LogFormat string // json or text
}

// New creates a new Config instance by loading environment variables
func New(ctx context.Context) (*Config, error) {
	// Load .env file if it exists
	_ = godotenv.Load(".env")

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Host:            getEnv("SERVER_HOST", "0.0.0.0"),
			Port:            getPort(),
			ReadTimeout:     getEnvAsDuration("SERVER_READ_TIMEOUT", 30*time.Second),
			WriteTimeout:    getEnvAsDuration("SERVER_WRITE_TIMEOUT", 120*time.Second),
			ShutdownTimeout: getEnvAsDuration("SERVER_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Router: RouterConfig{
			CostWeight:     getEnvAsFloat("ROUTER_COST_WEIGHT", 0.3),
			LatencyWeight:  getEnvAsFloat("ROUTER_LATENCY_WEIGHT", 0.2),
			DefaultModelID: getEnv("ROUTER_DEFAULT_MODEL", "medium-1"),
		},
		Fallback: FallbackConfig{
			Models:     getEnvAsList("FALLBACK_MODELS", []string{"small-1", "medium-1", "large-1"}),
			MaxRetries: getEnvAsInt("FALLBACK_MAX_RETRIES", 2),
			RetryDelay: getEnvAsDuration("FALLBACK_RETRY_DELAY", 1*time.Second),
		},
		Backend: BackendConfig{
			Timeout:     getEnvAsDuration("BACKEND_TIMEOUT", 30*time.Second),
			Temperature: getEnvAsFloat("BACKEND_TEMPERATURE", 0.7),
			MaxTokens:   getEnvAsInt("BACKEND_MAX_TOKENS", 1024),
		},
		Observability: ObservabilityConfig{
			LogLevel:  getEnv("LOG_LEVEL", "info"),
			LogFormat: getEnv("LOG_FORMAT", "json"),
		},
	}

	// Validate the configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks if all required configuration fields are set
func (c *Config) Validate() error {
	if c.Router.DefaultModelID == "" {
		return fmt.Errorf("default model id is required")
	}
	if c.Router.CostWeight < 0 {
		return fmt.Errorf("cost weight cannot be negative")
	}
	if c.Router.LatencyWeight < 0 {
		return fmt.Errorf("latency weight cannot be negative")
	}
	if len(c.Fallback.Models) == 0 {
		return fmt.Errorf("at least one fallback model is required")
	}
	if c.Fallback.MaxRetries < 0 {
		return fmt.Errorf("max retries cannot be negative")
	}
	if c.Backend.Timeout <= 0 {
		return fmt.Errorf("backend timeout must be positive")
	}
	if c.Observability.LogLevel == "" {
		return fmt.Errorf("log level is required")
	}
	return nil
}

// IsProduction returns true if running in production environment
func (c *Config) IsProduction() bool {
	return c.Environment == "production" || c.Environment == "prod"
}

// IsDevelopment returns true if running in development environment
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "dev"
}

// Address returns the HTTP server address
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Helper functions

// getPort returns the server port from PORT or SERVER_PORT env vars (default: 8080)
func getPort() int {
	if value := os.Getenv("PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	if value := os.Getenv("SERVER_PORT"); value != "" {
		if p, err := strconv.Atoi(value); err == nil {
			return p
		}
	}
	return 8080
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(valueStr, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return defaultValue
	}
	return out
}
