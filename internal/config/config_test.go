package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var configEnvVars = []string{
	"OPTIMIZE_CONFIG_FILE",
	"OPTIMIZE_SERVER_PORT", "OPTIMIZE_SERVER_READ_TIMEOUT",
	"OPTIMIZE_LOGGING_LEVEL", "OPTIMIZE_LOGGING_OUTPUT",
	"OPTIMIZE_PATHS_DATA_DIR", "OPTIMIZE_PATHS_DATASET_FILE",
	"OPTIMIZE_ANALYTICS_DEFAULT_WINDOW_DAYS", "OPTIMIZE_ANALYTICS_DEFAULT_LIMIT",
	"OPTIMIZE_ASSISTANT_OPENAI_API_KEY", "OPENAI_API_KEY",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, v := range configEnvVars {
		t.Setenv(v, "")
		os.Unsetenv(v)
	}
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// TestLoad tests the Load function with various scenarios
func TestLoad(t *testing.T) {
	tests := []struct {
		name        string
		env         map[string]string
		file        string
		wantErr     bool
		validateCfg func(*testing.T, *Config)
	}{
		{
			name: "defaults with no env vars",
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 5001, cfg.Server.Port)
				assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
				assert.Equal(t, []string{"*"}, cfg.Security.AllowedOrigins)
				assert.True(t, cfg.Security.RateLimit.Enabled)
				assert.Equal(t, "info", cfg.Logging.Level)
				assert.Equal(t, "json", cfg.Logging.Format)
				assert.Equal(t, "console", cfg.Logging.Output)
				assert.Equal(t, MediumDataFile, cfg.Paths.MediumFile)
				assert.Equal(t, SmallDataFile, cfg.Paths.SmallFile)
				assert.Equal(t, 30, cfg.Analytics.DefaultWindowDays)
				assert.Equal(t, 10, cfg.Analytics.DefaultLimit)
				assert.False(t, cfg.HasOpenAIKey())
				assert.Equal(t, "prometheus", cfg.Telemetry.MetricExporter)
			},
		},
		{
			name: "env overrides",
			env: map[string]string{
				"OPTIMIZE_SERVER_PORT":                   "9000",
				"OPTIMIZE_LOGGING_LEVEL":                 "debug",
				"OPTIMIZE_ANALYTICS_DEFAULT_WINDOW_DAYS": "14",
			},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9000, cfg.Server.Port)
				assert.Equal(t, "debug", cfg.Logging.Level)
				assert.Equal(t, 14, cfg.Analytics.DefaultWindowDays)
			},
		},
		{
			name: "unprefixed openai key",
			env:  map[string]string{"OPENAI_API_KEY": "sk-test"},
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.True(t, cfg.HasOpenAIKey())
			},
		},
		{
			name: "file fills values left at default",
			env:  map[string]string{"OPTIMIZE_SERVER_PORT": "9100"},
			file: `
server:
  port: 7000
  read_timeout: 5s
paths:
  data_dir: /srv/demo
analytics:
  default_limit: 3
`,
			validateCfg: func(t *testing.T, cfg *Config) {
				assert.Equal(t, 9100, cfg.Server.Port, "env wins")
				assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
				assert.Equal(t, "/srv/demo", cfg.Paths.DataDir)
				assert.Equal(t, 3, cfg.Analytics.DefaultLimit)
			},
		},
		{
			name:    "invalid port",
			env:     map[string]string{"OPTIMIZE_SERVER_PORT": "70000"},
			wantErr: true,
		},
		{
			name:    "invalid logging output",
			env:     map[string]string{"OPTIMIZE_LOGGING_OUTPUT": "syslog"},
			wantErr: true,
		},
		{
			name:    "malformed file",
			file:    "server: [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if tt.file != "" {
				t.Setenv("OPTIMIZE_CONFIG_FILE", writeConfigFile(t, tt.file))
			}

			cfg, err := Load()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			tt.validateCfg(t, cfg)
		})
	}
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.validate())
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "zero port", mutate: func(c *Config) { c.Server.Port = 0 }},
		{name: "zero read timeout", mutate: func(c *Config) { c.Server.ReadTimeout = 0 }},
		{name: "no origins", mutate: func(c *Config) { c.Security.AllowedOrigins = nil }},
		{name: "no medium file", mutate: func(c *Config) { c.Paths.MediumFile = "" }},
		{name: "zero window", mutate: func(c *Config) { c.Analytics.DefaultWindowDays = 0 }},
		{name: "negative limit", mutate: func(c *Config) { c.Analytics.DefaultLimit = -1 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			assert.Error(t, cfg.validate())
		})
	}
}
