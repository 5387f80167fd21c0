package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestLoad_MissingFile_YieldsDefaults tests that the config file is optional
func TestLoad_MissingFile_YieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	require.NoError(t, err)

	assert.Empty(t, cfg.SystemRoot)
	assert.Empty(t, cfg.UserRoot)
	assert.Equal(t, "info", cfg.LogLevel)
}

// TestLoad_ParsesSettings tests a populated config file
func TestLoad_ParsesSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
system_root = "/opt/cep/extensions"
user_root = "/home/jess/cep/extensions"
log_level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/opt/cep/extensions", cfg.SystemRoot)
	assert.Equal(t, "/home/jess/cep/extensions", cfg.UserRoot)
	assert.Equal(t, "debug", cfg.LogLevel)
}

// TestLoad_MalformedFile_Errors tests that a broken config surfaces
func TestLoad_MalformedFile_Errors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("system_root = ["), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}

// TestLoad_PartialFile_KeepsDefaults tests defaulting of absent keys
func TestLoad_PartialFile_KeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(`user_root = "/tmp/exts"`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "/tmp/exts", cfg.UserRoot)
	assert.Equal(t, "info", cfg.LogLevel)
}
