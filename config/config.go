/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	BackendMemory   = "memory"
	BackendDynamoDB = "dynamodb"
)

type Config struct {
	Backend  string       `yaml:"backend"`
	LogLevel string       `yaml:"logLevel"`
	AWS      AWSConfig    `yaml:"aws"`
	Mapper   MapperConfig `yaml:"mapper"`
}

type AWSConfig struct {
	AccessKey    string        `yaml:"accessKey"`
	SecretKey    string        `yaml:"secretKey"`
	Region       string        `yaml:"region"`
	Table        string        `yaml:"table"`
	MaxRetries   int           `yaml:"maxRetries"`
	RetryBackoff time.Duration `yaml:"retryBackoff"`
}

type MapperConfig struct {
	StrictNarrowing   bool `yaml:"strictNarrowing"`
	FailOnFieldErrors bool `yaml:"failOnFieldErrors"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Backend:  BackendMemory,
		LogLevel: "info",
		AWS: AWSConfig{
			MaxRetries:   3,
			RetryBackoff: 100 * time.Millisecond,
		},
	}
}

// Load builds the configuration from, in increasing precedence, the
// defaults, the YAML file named by ENTITYMAPPER_CONFIG and the environment.
// A .env file in the working directory is loaded into the environment first.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		slog.Debug("no .env file found, using environment variables")
	}

	cfg := Default()
	if path := os.Getenv("ENTITYMAPPER_CONFIG"); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if cfg, err = Parse(data); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Parse parses YAML data on top of the defaults.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Backend = getEnv("ENTITYMAPPER_BACKEND", cfg.Backend)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	cfg.AWS.AccessKey = getEnv("AWS_ACCESS_KEY", cfg.AWS.AccessKey)
	cfg.AWS.SecretKey = getEnv("AWS_SECRET_KEY", cfg.AWS.SecretKey)
	cfg.AWS.Region = getEnv("AWS_REGION", cfg.AWS.Region)
	cfg.AWS.Table = getEnv("AWS_DDB_TABLE", cfg.AWS.Table)
	cfg.AWS.MaxRetries = getEnvAsInt("ENTITYMAPPER_MAX_RETRIES", cfg.AWS.MaxRetries)

	cfg.Mapper.StrictNarrowing = getEnvAsBool("ENTITYMAPPER_STRICT_NARROWING", cfg.Mapper.StrictNarrowing)
	cfg.Mapper.FailOnFieldErrors = getEnvAsBool("ENTITYMAPPER_FAIL_ON_FIELD_ERRORS", cfg.Mapper.FailOnFieldErrors)
}

func (c *Config) Validate() error {
	switch c.Backend {
	case BackendMemory:
	case BackendDynamoDB:
		if c.AWS.Region == "" {
			return fmt.Errorf("AWS_REGION is required for the %s backend", BackendDynamoDB)
		}
		if c.AWS.Table == "" {
			return fmt.Errorf("AWS_DDB_TABLE is required for the %s backend", BackendDynamoDB)
		}
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}

	if c.AWS.MaxRetries < 0 {
		return fmt.Errorf("maxRetries must not be negative")
	}
	if _, err := parseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// SlogLevel returns LogLevel as a slog.Level.
func (c *Config) SlogLevel() slog.Level {
	l, _ := parseLevel(c.LogLevel)
	return l
}

func parseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := l.UnmarshalText([]byte(strings.ToUpper(s))); err != nil {
		return slog.LevelInfo, fmt.Errorf("invalid LOG_LEVEL %q: %w", s, err)
	}
	return l, nil
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
		slog.Warn("invalid integer in environment, using default", slog.String("key", key), slog.Int("default", defaultValue))
		return defaultValue
	}

	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		slog.Warn("invalid boolean in environment, using default", slog.String("key", key), slog.Bool("default", defaultValue))
		return defaultValue
	}

	return value
}
