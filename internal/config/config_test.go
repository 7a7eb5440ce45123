package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "https://tululu.org", cfg.Library.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.Library.Timeout)
	assert.Equal(t, uint(5), cfg.Library.MaxAttempts)
	assert.Equal(t, 5*time.Second, cfg.Library.RetryBackoff)
	assert.Equal(t, "books", cfg.Output.BooksDir)
	assert.Equal(t, "images", cfg.Output.ImagesDir)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromFile(t *testing.T) {
	cfgFile := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte("library:\n  base_url: http://localhost:8080\n  timeout: 250ms\n  max_attempts: 0\nlog:\n  level: debug\n")
	require.NoError(t, os.WriteFile(cfgFile, content, 0o644))

	cfg, err := Load(cfgFile)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.Library.BaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.Library.Timeout)
	assert.Equal(t, uint(0), cfg.Library.MaxAttempts)
	assert.Equal(t, "debug", cfg.Log.Level)
	// untouched sections keep their defaults
	assert.Equal(t, "books", cfg.Output.BooksDir)
}
