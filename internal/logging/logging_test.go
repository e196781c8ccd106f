package logging

import (
	"bytes"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr bool
	}{
		{"stdout only", Config{Level: "info"}, false},
		{"upper case level", Config{Level: "WARN"}, false},
		{"unknown level", Config{Level: "verbose"}, true},
		{"file with defaults", Config{Level: "debug", File: "x.log", MaxSize: 10}, false},
		{"file with zero size", Config{Level: "debug", File: "x.log"}, true},
		{"negative backups", Config{Level: "debug", File: "x.log", MaxSize: 1, MaxBackups: -1}, true},
		{"negative age", Config{Level: "debug", File: "x.log", MaxSize: 1, MaxAge: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelWarn)

	logger.Debug("debug %d", 1)
	logger.Info("info %d", 2)
	assert.Empty(t, buf.String())

	logger.Warn("warn %d", 3)
	logger.Error("error %d", 4)
	assert.Contains(t, buf.String(), "warn 3")
	assert.Contains(t, buf.String(), "error 4")
}

func TestLogHTTPErrorIncludesCause(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, LevelInfo)

	logger.LogHTTPError("POST", "/api/chat", "10.0.0.1", 500, "chat failed", errors.New("upstream 502"))

	out := buf.String()
	assert.Contains(t, out, "/api/chat")
	assert.Contains(t, out, "chat failed: upstream 502")
}

func TestNewLoggerWithFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "relay.log")

	logger, err := NewLogger(&Config{Level: LevelInfo, File: path, MaxSize: 1})
	require.NoError(t, err)
	defer logger.Close()

	logger.Info("hello")
	assert.FileExists(t, path)
}
