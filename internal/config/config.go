package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/caarlos0/env/v10"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DefaultEnvFile is read before the environment is parsed, if present.
const DefaultEnvFile = ".env"

// Config holds application configuration.
type Config struct {
	Port int `env:"PORT" envDefault:"8080" validate:"min=1,max=65535"`

	// GitHub configuration
	GitHubURL   string `env:"GITHUB_URL" envDefault:"https://api.github.com" validate:"required,url"`
	GitHubToken string `env:"GITHUB_TOKEN"`

	Report    Report
	AddSearch AddSearch
	HTTP      HTTP
	Log       Log

	// PageDataFile overrides the embedded not-found page data (YAML).
	PageDataFile string `env:"PAGE_DATA_FILE"`
}

// Load loads configuration from DefaultEnvFile and environment variables.
func Load() (*Config, error) {
	return LoadFile(DefaultEnvFile)
}

// LoadFile loads configuration from envFile and environment variables.
// Variables already set in the environment win over the file; a missing
// file is not an error.
func LoadFile(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("godotenv.Load(%s): %w", envFile, err)
		}
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("env.Parse: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks field constraints.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

// HasGitHubConfig returns true if a GitHub token is configured.
// Public repositories can still be read without one, subject to lower rate limits.
func (c *Config) HasGitHubConfig() bool {
	return c.GitHubToken != ""
}

// HasSearchConfig returns true if hosted search is configured.
func (c *Config) HasSearchConfig() bool {
	return c.AddSearch.SiteKey != ""
}

// Addr returns the HTTP listen address.
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}
