/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	for _, k := range []string{
		"ENTITYMAPPER_CONFIG", "ENTITYMAPPER_BACKEND", "ENTITYMAPPER_STRICT_NARROWING",
		"ENTITYMAPPER_FAIL_ON_FIELD_ERRORS", "ENTITYMAPPER_MAX_RETRIES",
		"AWS_ACCESS_KEY", "AWS_SECRET_KEY", "AWS_REGION", "AWS_DDB_TABLE", "LOG_LEVEL",
	} {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendMemory, cfg.Backend)
	assert.Equal(t, 3, cfg.AWS.MaxRetries)
	assert.Equal(t, slog.LevelInfo, cfg.SlogLevel())
	assert.False(t, cfg.Mapper.StrictNarrowing)
}

func TestLoadYAMLAndEnv(t *testing.T) {
	clearEnv(t)

	path := filepath.Join(t.TempDir(), "entitymapper.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
backend: dynamodb
logLevel: debug
aws:
  region: eu-north-1
  table: entities
  retryBackoff: 250ms
mapper:
  strictNarrowing: true
`), 0o600))

	t.Setenv("ENTITYMAPPER_CONFIG", path)
	t.Setenv("AWS_DDB_TABLE", "override")
	t.Setenv("ENTITYMAPPER_MAX_RETRIES", "5")
	t.Setenv("ENTITYMAPPER_FAIL_ON_FIELD_ERRORS", "true")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, BackendDynamoDB, cfg.Backend)
	assert.Equal(t, "eu-north-1", cfg.AWS.Region)
	assert.Equal(t, "override", cfg.AWS.Table)
	assert.Equal(t, 250*time.Millisecond, cfg.AWS.RetryBackoff)
	assert.Equal(t, 5, cfg.AWS.MaxRetries)
	assert.True(t, cfg.Mapper.StrictNarrowing)
	assert.True(t, cfg.Mapper.FailOnFieldErrors)
	assert.Equal(t, slog.LevelDebug, cfg.SlogLevel())
}

func TestLoadErrors(t *testing.T) {
	t.Run("MissingFile", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENTITYMAPPER_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("DynamoDBWithoutTable", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENTITYMAPPER_BACKEND", BackendDynamoDB)
		t.Setenv("AWS_REGION", "eu-north-1")
		_, err := Load()
		assert.ErrorContains(t, err, "AWS_DDB_TABLE")
	})

	t.Run("UnknownBackend", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("ENTITYMAPPER_BACKEND", "postgres")
		_, err := Load()
		assert.Error(t, err)
	})

	t.Run("BadLogLevel", func(t *testing.T) {
		clearEnv(t)
		t.Setenv("LOG_LEVEL", "loud")
		_, err := Load()
		assert.Error(t, err)
	})
}

func TestParse(t *testing.T) {
	cfg, err := Parse([]byte("backend: memory\n"))
	require.NoError(t, err)
	assert.Equal(t, 100*time.Millisecond, cfg.AWS.RetryBackoff)

	_, err = Parse([]byte("backend: [unterminated"))
	assert.Error(t, err)
}
