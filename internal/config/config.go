// Package config loads application configuration from environment variables
// with an optional YAML file base. Engine parameters configured here are
// passed to the analysis engine as explicit per-call values; the engine
// itself never reads process-wide state.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `yaml:"server" envconfig:"SERVER"`
	Logging   LoggingConfig   `yaml:"logging" envconfig:"LOGGING"`
	Upload    UploadConfig    `yaml:"upload" envconfig:"UPLOAD"`
	Analysis  AnalysisConfig  `yaml:"analysis" envconfig:"ANALYSIS"`
	Narrative NarrativeConfig `yaml:"narrative" envconfig:"NARRATIVE"`
	RateLimit RateLimitConfig `yaml:"rate_limit" envconfig:"RATE_LIMIT"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Port            int           `yaml:"port" envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"READ_TIMEOUT" default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"WRITE_TIMEOUT" default:"60s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout" envconfig:"IDLE_TIMEOUT" default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"SHUTDOWN_TIMEOUT" default:"30s"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `yaml:"level" envconfig:"LEVEL" default:"info" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" envconfig:"FORMAT" default:"json" validate:"oneof=json text"`
}

// UploadConfig bounds uploaded dataset files
type UploadConfig struct {
	MaxBytes int64 `yaml:"max_bytes" envconfig:"MAX_BYTES" default:"10485760" validate:"min=1"`
}

// AnalysisConfig carries the default engine parameters. They are defaults
// only: each request may override bucket width and field names per call.
type AnalysisConfig struct {
	SkillField      string  `yaml:"skill_field" envconfig:"SKILL_FIELD"`
	ScoreStat       string  `yaml:"score_stat" envconfig:"SCORE_STAT"`
	BucketWidth     float64 `yaml:"bucket_width" envconfig:"BUCKET_WIDTH" default:"5" validate:"gt=0"`
	MorningCutoffHr int     `yaml:"morning_cutoff_hour" envconfig:"MORNING_CUTOFF_HOUR" default:"10" validate:"min=1,max=23"`
}

// NarrativeConfig configures the external narrative generator. An empty API
// key disables narrative generation entirely.
type NarrativeConfig struct {
	APIKey      string        `yaml:"api_key" envconfig:"API_KEY"`
	Model       string        `yaml:"model" envconfig:"MODEL"`
	Temperature float32       `yaml:"temperature" envconfig:"TEMPERATURE" default:"0.7" validate:"min=0,max=2"`
	MaxTokens   int           `yaml:"max_tokens" envconfig:"MAX_TOKENS" default:"2000" validate:"min=1"`
	Timeout     time.Duration `yaml:"timeout" envconfig:"TIMEOUT" default:"60s"`
}

// RateLimitConfig contains rate limiting configuration
type RateLimitConfig struct {
	Enabled bool    `yaml:"enabled" envconfig:"ENABLED" default:"true"`
	RPS     float64 `yaml:"rps" envconfig:"RPS" default:"10" validate:"min=0"`
	Burst   int     `yaml:"burst" envconfig:"BURST" default:"20" validate:"min=0"`
}

// Load loads configuration from an optional YAML file and the environment,
// environment taking precedence, then validates the result.
func Load() (*Config, error) {
	var cfg Config

	if path := configFilePath(); path != "" {
		if _, err := os.Stat(path); err == nil {
			data, err := os.ReadFile(path)
			if err != nil {
				return nil, fmt.Errorf("read config file: %w", err)
			}
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config file: %w", err)
			}
		}
	}

	if err := envconfig.Process("GOLFSIGHT", &cfg); err != nil {
		return nil, fmt.Errorf("load config from env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration against its struct tags.
func (c *Config) Validate() error {
	return validator.New().Struct(c)
}

// configFilePath returns the YAML config location, overridable via
// GOLFSIGHT_CONFIG.
func configFilePath() string {
	if path := os.Getenv("GOLFSIGHT_CONFIG"); path != "" {
		return path
	}
	return "golfsight.yaml"
}
