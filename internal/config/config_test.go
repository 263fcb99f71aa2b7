package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() Config {
	return Config{
		Portal:  Portal{URL: "https://portal.example.com/api", Timeout: 10 * time.Second, Rate: 1},
		Refresh: Refresh{Interval: time.Hour},
		Sensors: Sensors{AttributePolicy: "accumulate"},
		Log:     Log{Level: "info", Format: "console"},
		Serve:   Serve{Listen: "127.0.0.1:9470"},
		Secrets: Secrets{Backend: "chain"},
	}
}

func TestLoadUsesDefaultsWithoutConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	conf, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(home, ".ogero"), conf.Dir)
	assert.Equal(t, filepath.Join(home, ".ogero", "entries.toml"), conf.EntriesPath)
	assert.Equal(t, DefaultPortalURL, conf.Portal.URL)
	assert.Equal(t, time.Hour, conf.Refresh.Interval)
	assert.Equal(t, "accumulate", conf.Sensors.AttributePolicy)
	assert.Equal(t, "info", conf.Log.Level)
	assert.True(t, conf.Serve.Metrics)
	assert.Equal(t, SecretsBackendChain, conf.Secrets.Backend)
}

func TestLoadReadsConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".ogero"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".ogero", "config.toml"), []byte(`
[portal]
url = "https://portal.example.com/api"

[refresh]
interval = "30m"

[sensors]
attribute_policy = "replace"

[log]
level = "debug"
format = "json"
`), 0o600))

	conf, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "https://portal.example.com/api", conf.Portal.URL)
	assert.Equal(t, 30*time.Minute, conf.Refresh.Interval)
	assert.Equal(t, "replace", conf.Sensors.AttributePolicy)
	assert.Equal(t, "debug", conf.Log.Level)
	assert.Equal(t, "json", conf.Log.Format)
}

func TestLoadEnvironmentOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("OGERO_PORTAL_URL", "http://127.0.0.1:8080/api")
	t.Setenv("OGERO_LOG_LEVEL", "warn")

	conf, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:8080/api", conf.Portal.URL)
	assert.Equal(t, "warn", conf.Log.Level)
}

func TestLoadRejectsMalformedConfigFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	require.NoError(t, os.MkdirAll(filepath.Join(home, ".ogero"), 0o700))
	require.NoError(t, os.WriteFile(filepath.Join(home, ".ogero", "config.toml"), []byte("[portal\nurl="), 0o600))

	_, err := Load(viper.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestValidateAcceptsValidConfig(t *testing.T) {
	assert.NoError(t, validConfig().Validate())
}

func TestValidateRejectsInvalidSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{name: "empty portal url", mutate: func(c *Config) { c.Portal.URL = "" }},
		{name: "unknown log level", mutate: func(c *Config) { c.Log.Level = "verbose" }},
		{name: "unknown log format", mutate: func(c *Config) { c.Log.Format = "xml" }},
		{name: "unknown attribute policy", mutate: func(c *Config) { c.Sensors.AttributePolicy = "prune" }},
		{name: "unknown secrets backend", mutate: func(c *Config) { c.Secrets.Backend = "vault" }},
		{name: "empty listen address", mutate: func(c *Config) { c.Serve.Listen = "" }},
		{name: "refresh interval too short", mutate: func(c *Config) { c.Refresh.Interval = time.Second }},
		{name: "negative timeout", mutate: func(c *Config) { c.Portal.Timeout = -time.Second }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}
