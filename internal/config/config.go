package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	pkgRetry "github.com/floww-ai/backend/internal/pkg/retry"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// External service configurations
	OpenAICfg     OpenAIConfig     `envPrefix:"OPENAI_"`
	EnrichmentCfg EnrichmentConfig `envPrefix:"ENRICHMENT_"`

	// Session configuration
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"2h"`

	// Office export configuration. Without a key the xlsx, docx and pptx
	// exports fail at save time; csv, pdf and markdown are unaffected.
	UnidocLicenseKey string `env:"UNIDOC_LICENSE_API_KEY"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// OpenAIConfig holds the generative service connection settings. The API key
// is the only required credential in the whole configuration; its absence is
// fatal at startup.
type OpenAIConfig struct {
	HTTPClientConfig
	APIKey              string               `env:"API_KEY"`
	Model               string               `env:"MODEL" envDefault:"gpt-4o-mini"`
	CompletionsEndpoint string               `env:"COMPLETIONS_ENDPOINT" envDefault:"/v1/chat/completions"`
	Retry               pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// EnrichmentConfig holds the optional company-lookup provider settings.
// An empty API key silently disables the feature.
type EnrichmentConfig struct {
	HTTPClientConfig
	APIKey          string `env:"API_KEY"`
	ProfileEndpoint string `env:"PROFILE_ENDPOINT" envDefault:"/v1/company/profile"`
}

// Enabled reports whether the enrichment feature is configured.
func (c *EnrichmentConfig) Enabled() bool {
	return c.APIKey != ""
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"60s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"60s"`
	Url                   string        `env:"SERVICE_URL"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if cfg.OpenAICfg.Url == "" {
		cfg.OpenAICfg.Url = "https://api.openai.com"
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	// The generative service credential is the only fatal requirement.
	// With mocks enabled no real call is ever made, so it may be absent.
	if cfg.OpenAICfg.APIKey == "" && !cfg.EnableMocks {
		errors = append(errors, "OPENAI_API_KEY is required")
	}

	if cfg.SessionTTL < time.Minute {
		errors = append(errors, fmt.Sprintf("SESSION_TTL must be at least 1m, got %s", cfg.SessionTTL))
	}

	if cfg.EnrichmentCfg.Enabled() && cfg.EnrichmentCfg.Url == "" {
		errors = append(errors, "ENRICHMENT_SERVICE_URL is required when ENRICHMENT_API_KEY is set")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
