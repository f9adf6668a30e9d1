package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/hashicorp/go-hclog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scan-io-git/ruffrules/internal/config"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		name string
		env  string
		cfg  *config.Config
		want hclog.Level
	}{
		{"defaults to info", "", nil, hclog.Info},
		{"config level", "", &config.Config{Logger: config.Logger{Level: "debug"}}, hclog.Debug},
		{"env wins over config", "error", &config.Config{Logger: config.Logger{Level: "debug"}}, hclog.Error},
		{"unknown level falls back to info", "loud", nil, hclog.Info},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(LogLevelEnv, tt.env)
			var buf bytes.Buffer
			assert.Equal(t, tt.want, determineLogLevel(tt.cfg, &buf))
		})
	}
}

func TestNewLoggerJSONFormat(t *testing.T) {
	t.Setenv(LogLevelEnv, "")
	yes := true
	cfg := &config.Config{Logger: config.Logger{JSONFormat: &yes}}

	var buf bytes.Buffer
	l := newLogger(cfg, "core", &buf)
	l.Info("rules processed", "kept", 3)

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "rules processed", entry["@message"])
	assert.Equal(t, "core", entry["@module"])
	assert.EqualValues(t, 3, entry["kept"])
}

func TestNewLoggerRespectsLevel(t *testing.T) {
	t.Setenv(LogLevelEnv, "warn")

	var buf bytes.Buffer
	l := newLogger(nil, "core", &buf)
	l.Info("hidden")
	assert.Empty(t, buf.String())

	l.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
}
