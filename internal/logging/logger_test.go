package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew_FileSink_WritesJSON tests rotating file output
func TestNew_FileSink_WritesJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "sbx.log")
	cfg := DefaultConfig()
	cfg.File = path
	cfg.Level = "debug"

	logger, err := New(cfg)
	require.NoError(t, err)

	componentLogger := logger.Component("panel")
	componentLogger.Debug().Str("plugin_id", "ai-watch-logs").Msg("opened")
	require.NoError(t, logger.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"component":"panel"`)
	assert.Contains(t, string(data), `"plugin_id":"ai-watch-logs"`)
	assert.Contains(t, string(data), `"message":"opened"`)
}

// TestNew_InvalidLevel_FallsBackToInfo tests level parsing
func TestNew_InvalidLevel_FallsBackToInfo(t *testing.T) {
	logger, err := New(Config{Level: "chatty"})
	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, logger.Zerolog().GetLevel())
	assert.NoError(t, logger.Close(), "Close without a file should succeed")
}

// TestNop_DiscardsEverything tests the no-op logger
func TestNop_DiscardsEverything(t *testing.T) {
	logger := Nop()
	assert.Equal(t, zerolog.Disabled, logger.Zerolog().GetLevel())
	assert.NoError(t, logger.Close())
}
