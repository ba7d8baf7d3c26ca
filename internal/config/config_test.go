package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"SERVER_PORT", "ALLOWED_ORIGINS", "NATS_URL", "GEMINI_API_KEY",
		"GEMINI_TIMEOUT", "KEYWORDS_TOP", "KEYWORDS_MIN_FREQ", "USE_GEMINI_KEYWORDS",
	} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, []string{"http://localhost:5174", "http://localhost:8000"}, cfg.Server.CorsOrigins)
	assert.Equal(t, 20*time.Second, cfg.Gemini.Timeout)
	assert.Equal(t, "gemini-2.5-flash", cfg.Gemini.Model)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.Gemini.BatchModel)
	assert.Equal(t, 40, cfg.Keywords.Top)
	assert.Equal(t, 1, cfg.Keywords.MinFrequency)
	assert.Equal(t, "talkclass", cfg.NATS.EventsTopic)
	assert.False(t, cfg.NATS.Enabled())
	assert.False(t, cfg.Gemini.Enabled())
	assert.False(t, cfg.Gemini.UseKeywords)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "https://app.example.com/, http://localhost:3000 ,,")
	t.Setenv("GEMINI_API_KEY", "key")
	t.Setenv("GEMINI_TIMEOUT", "5s")
	t.Setenv("USE_GEMINI_KEYWORDS", "true")
	t.Setenv("NATS_URL", "nats://localhost:4222")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"https://app.example.com", "http://localhost:3000"}, cfg.Server.CorsOrigins)
	assert.Equal(t, 5*time.Second, cfg.Gemini.Timeout)
	assert.True(t, cfg.Gemini.Enabled())
	assert.True(t, cfg.Gemini.UseKeywords)
	assert.True(t, cfg.NATS.Enabled())
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := map[string]struct {
		key   string
		value string
	}{
		"port out of range":  {key: "SERVER_PORT", value: "70000"},
		"negative timeout":   {key: "GEMINI_TIMEOUT", value: "-1s"},
		"zero read timeout":  {key: "SERVER_READ_TIMEOUT", value: "0s"},
		"negative keyword n": {key: "KEYWORDS_TOP", value: "-3"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(tc.key, tc.value)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, Config{LogLevel: "DEBUG"}.SlogLevel())
	assert.Equal(t, slog.LevelWarn, Config{LogLevel: "warning"}.SlogLevel())
	assert.Equal(t, slog.LevelError, Config{LogLevel: "error"}.SlogLevel())
	assert.Equal(t, slog.LevelInfo, Config{LogLevel: ""}.SlogLevel())
}
