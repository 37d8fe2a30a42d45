package logs

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"tasker/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  slog.Level
	}{
		{input: "debug", want: slog.LevelDebug},
		{input: "INFO", want: slog.LevelInfo},
		{input: "", want: slog.LevelInfo},
		{input: " Warn ", want: slog.LevelWarn},
		{input: "warning", want: slog.LevelWarn},
		{input: "error", want: slog.LevelError},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := parseLogLevel(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := parseLogLevel("verbose")
	assert.Error(t, err)
}

func TestNew_RejectsUnknownLevel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Log.Level = "loud"

	logger, err := New(Params{Config: cfg})
	assert.Error(t, err)
	assert.Nil(t, logger)
}

func TestBuild_TagsServiceAndEnv(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.ServiceName = "tasker"
	cfg.Env.Env = "local"
	cfg.Env.Log.Level = "info"

	var out bytes.Buffer
	logger, err := build(&out, cfg)
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Info("started", slog.Int("port", 3000))

	var line map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &line))
	assert.Equal(t, "started", line["msg"])
	assert.Equal(t, "tasker", line["service"])
	assert.Equal(t, "local", line["env"])
	assert.EqualValues(t, 3000, line["port"])
}

func TestBuild_PrettyHandler(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Log.Pretty = true

	var out bytes.Buffer
	logger, err := build(&out, cfg)
	require.NoError(t, err)
	assert.IsType(t, &slog.TextHandler{}, logger.Handler())
}
