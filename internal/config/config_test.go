// SPDX-License-Identifier: Apache-2.0

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cropreport.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_File(t *testing.T) {
	path := writeFile(t, "log:\n  level: debug\n  format: console\nlexicon_path: /etc/cropreport/lexicon.yaml\noutput: YAML\n")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, "/etc/cropreport/lexicon.yaml", cfg.LexiconPath)
	assert.Equal(t, "yaml", cfg.Output)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeFile(t, "output: yaml\n")
	t.Setenv("CROPREPORT_OUTPUT", "json")
	t.Setenv("CROPREPORT_LOG_LEVEL", "warn")
	t.Setenv("CROPREPORT_LEXICON", "custom.yaml")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "custom.yaml", cfg.LexiconPath)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name        string
		content     string
		errContains string
	}{
		{name: "bad output", content: "output: xml\n", errContains: "unsupported output format"},
		{name: "bad log format", content: "log:\n  format: logfmt\n", errContains: "unsupported log format"},
		{name: "malformed yaml", content: "log: [", errContains: "failed to unmarshal config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}
