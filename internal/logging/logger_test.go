package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_Levels(t *testing.T) {
	logger, err := New(Config{Level: "WARN", Format: "console"})
	require.NoError(t, err)
	assert.False(t, logger.Core().Enabled(zapcore.InfoLevel))
	assert.True(t, logger.Core().Enabled(zapcore.WarnLevel))

	logger, err = New(Config{Level: "verbose"})
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.InfoLevel), "unknown level falls back to info")
	assert.False(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestNew_WritesJSONToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "service.log")

	logger, err := New(Config{Level: "debug", Format: "json", File: path})
	require.NoError(t, err)

	logger.Info("course folder provisioned", zap.Int64("remote_id", 321))
	_ = logger.Sync()

	raw, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(raw, &entry))
	assert.Equal(t, "course folder provisioned", entry["msg"])
	assert.Equal(t, float64(321), entry["remote_id"])
	assert.Contains(t, entry, "timestamp")
}

func TestRotatorDefaults(t *testing.T) {
	r := rotator(Config{File: "x.log", MaxBackups: 2})
	assert.Equal(t, 100, r.MaxSize)
	assert.Equal(t, 2, r.MaxBackups)
	assert.Equal(t, 28, r.MaxAge)
	assert.True(t, r.Compress)
}
