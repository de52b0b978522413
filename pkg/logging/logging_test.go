package logging

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		raw   string
		want  zerolog.Level
		found bool
	}{
		{"", zerolog.InfoLevel, false},
		{"trace", zerolog.TraceLevel, true},
		{" Diagnostics ", zerolog.TraceLevel, true},
		{"DEBUG", zerolog.DebugLevel, true},
		{"warning", zerolog.WarnLevel, true},
		{"error", zerolog.ErrorLevel, true},
		{"off", zerolog.Disabled, true},
		{"loud", zerolog.InfoLevel, false},
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			got, ok := ParseLevel(tt.raw)
			assert.Equal(t, tt.found, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	runtime := DefaultConfig(ProfileRuntime)
	assert.Equal(t, zerolog.InfoLevel, runtime.Level)
	assert.True(t, runtime.Timestamp)

	test := DefaultConfig(ProfileTest)
	assert.Equal(t, zerolog.DebugLevel, test.Level)
	assert.False(t, test.Timestamp)
	assert.True(t, test.NoColor)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvLogLevel, "trace")
	t.Setenv(EnvLogTimestamp, "false")
	t.Setenv(EnvLogNoColor, "not-a-bool")
	t.Setenv(EnvLogJSON, "1")

	cfg := DefaultConfig(ProfileRuntime)
	ApplyEnv(&cfg)

	assert.Equal(t, zerolog.TraceLevel, cfg.Level)
	assert.False(t, cfg.Timestamp)
	assert.False(t, cfg.NoColor)
	assert.True(t, cfg.JSON)
}

func TestNew(t *testing.T) {
	prev := zerolog.GlobalLevel()
	defer zerolog.SetGlobalLevel(prev)

	var out bytes.Buffer
	logger := New(Config{Level: zerolog.TraceLevel, JSON: true, Output: &out})
	assert.Equal(t, zerolog.TraceLevel, zerolog.GlobalLevel())

	logger.Trace().Str("field", "cap").Msg("read")
	logger.Debug().Msg("visible")
	require.NotEmpty(t, out.String())
	assert.Contains(t, out.String(), `"field":"cap"`)
	assert.NotContains(t, out.String(), `"time"`)

	out.Reset()
	quiet := New(Config{Level: zerolog.WarnLevel, NoColor: true, Output: &out})
	quiet.Info().Msg("hidden")
	assert.Empty(t, out.String())
	quiet.Warn().Msg("shown")
	assert.Contains(t, out.String(), "shown")
}

func TestConfigure(t *testing.T) {
	t.Setenv(EnvLogLevel, "warn")

	log := Configure(ProfileTest)
	assert.Equal(t, zerolog.WarnLevel, log.GetLevel())
	assert.Equal(t, zerolog.WarnLevel, zerolog.GlobalLevel())

	zerolog.SetGlobalLevel(zerolog.TraceLevel)
}
