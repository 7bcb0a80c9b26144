package logger

import (
	"path/filepath"
	"study_coach_backend/internal/config"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestSetLevel(t *testing.T) {
	SetLevel("debug")
	assert.Equal(t, zapcore.DebugLevel, Level())

	SetLevel("release")
	assert.Equal(t, zapcore.InfoLevel, Level())
}

func TestInitLoggerUsesConfiguredFile(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Mode = "debug"
	cfg.Log.File = filepath.Join(t.TempDir(), "app.log")
	cfg.Log.MaxSize = 1

	InitLogger(cfg)
	defer SetLevel("release")

	assert.NotNil(t, Log)
	assert.True(t, Log.Core().Enabled(zapcore.DebugLevel))
}
