package container

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tululu/loader/internal/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	root := t.TempDir()
	return &config.Config{
		Library: config.LibraryConfig{
			BaseURL:      "http://localhost:1",
			Timeout:      time.Second,
			MaxAttempts:  1,
			RetryBackoff: time.Millisecond,
		},
		Output: config.OutputConfig{
			BooksDir:  filepath.Join(root, "books"),
			ImagesDir: filepath.Join(root, "images"),
		},
		Log: config.LogConfig{Level: "error"},
	}
}

func TestNewWiresComponents(t *testing.T) {
	app, err := New(testConfig(t))
	require.NoError(t, err)

	assert.NotNil(t, app.Client)
	assert.NotNil(t, app.Storage)
	assert.NotNil(t, app.Service)
}

func TestNewRejectsBadLogLevel(t *testing.T) {
	cfg := testConfig(t)
	cfg.Log.Level = "chatty"

	_, err := New(cfg)
	assert.Error(t, err)
}
