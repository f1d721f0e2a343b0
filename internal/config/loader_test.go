package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/dlovans/lpmspec/pkg/lpm"
)

func writeYAML(t *testing.T, v any) string {
	t.Helper()
	data, err := yaml.Marshal(v)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, data, 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := DefaultConfig()
	assert.Equal(t, lpm.DefaultExposed, cfg.Exposed)
	assert.False(t, cfg.Capabilities.FinancialConnections)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)

	cfg.Exposed[0] = "mutated"
	assert.Equal(t, "card", lpm.DefaultExposed[0], "defaults must not alias the package list")
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Parallel()

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFile(t *testing.T) {
	t.Parallel()

	path := writeYAML(t, map[string]any{
		"exposed":        []string{"card", "sofort"},
		"bundled_schema": "/etc/lpms.json",
		"capabilities":   map[string]any{"financial_connections": true},
		"log":            map[string]any{"level": "debug"},
	})

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"card", "sofort"}, cfg.Exposed)
	assert.Equal(t, "/etc/lpms.json", cfg.BundledSchema)
	assert.True(t, cfg.Capabilities.FinancialConnections)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format, "unset keys keep defaults")
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := writeYAML(t, map[string]any{
		"log": map[string]any{"level": "debug", "format": "text"},
	})
	t.Setenv("LPMSPEC_LOG_FORMAT", "json")
	t.Setenv("LPMSPEC_EXPOSED", "paypal,klarna")
	t.Setenv("LPMSPEC_CAPABILITIES_FINANCIAL_CONNECTIONS", "true")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, []string{"paypal", "klarna"}, cfg.Exposed)
	assert.True(t, cfg.Capabilities.FinancialConnections)
}

func TestLoadMalformedFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log: [unterminated"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestWriteDefaultLoadsBack(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteDefault(path, false))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestWriteDefaultKeepsExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  level: debug\n"), 0644))

	err := WriteDefault(path, false)
	assert.ErrorIs(t, err, ErrConfigExists)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "log:\n  level: debug\n", string(data))

	require.NoError(t, WriteDefault(path, true))
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}
