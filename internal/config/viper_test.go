package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
)

func defaultConfig(t *testing.T) *Config {
	t.Helper()
	v := viper.New()
	setDefaults(v)
	var cfg Config
	assert.NoError(t, v.Unmarshal(&cfg))
	return &cfg
}

func TestDefaults(t *testing.T) {
	cfg := defaultConfig(t)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "http://localhost:8080/api", cfg.API.BaseURL)
	assert.Equal(t, 30, cfg.API.TimeoutSeconds)
	assert.Equal(t, ",", cfg.Export.Delimiter)
	assert.True(t, cfg.Export.IncludeHeaders)
	assert.Equal(t, 8, cfg.Form.TagSuggestionLimit)

	assert.NoError(t, validateConfig(cfg))
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		errContains string
	}{
		{
			name:        "bad log level",
			mutate:      func(c *Config) { c.Log.Level = "verbose" },
			errContains: "invalid log level",
		},
		{
			name:        "bad log format",
			mutate:      func(c *Config) { c.Log.Format = "xml" },
			errContains: "invalid log format",
		},
		{
			name:        "relative base url",
			mutate:      func(c *Config) { c.API.BaseURL = "/api" },
			errContains: "api.base_url",
		},
		{
			name:        "empty base url",
			mutate:      func(c *Config) { c.API.BaseURL = "" },
			errContains: "api.base_url",
		},
		{
			name:        "timeout too small",
			mutate:      func(c *Config) { c.API.TimeoutSeconds = 0 },
			errContains: "api.timeout_seconds",
		},
		{
			name:        "timeout too large",
			mutate:      func(c *Config) { c.API.TimeoutSeconds = 500 },
			errContains: "api.timeout_seconds",
		},
		{
			name:        "multi-char delimiter",
			mutate:      func(c *Config) { c.Export.Delimiter = ";;" },
			errContains: "delimiter",
		},
		{
			name:        "zero suggestion limit",
			mutate:      func(c *Config) { c.Form.TagSuggestionLimit = 0 },
			errContains: "tag_suggestion_limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig(t)
			tt.mutate(cfg)
			err := validateConfig(cfg)
			assert.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}
}

func TestGetEnv(t *testing.T) {
	t.Setenv("TXFORM_TEST_KEY", "value")
	assert.Equal(t, "value", GetEnv("TXFORM_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", GetEnv("TXFORM_TEST_MISSING", "fallback"))
}
