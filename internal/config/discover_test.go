package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "")

	path := DefaultPath()
	assert.Contains(t, path, ".config/relayarr/config.toml")
}

func TestDefaultPath_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")

	path := DefaultPath()
	assert.Equal(t, "/custom/config/relayarr/config.toml", path)
}

func TestDiscover_EnvVar(t *testing.T) {
	tmp := t.TempDir()
	cfgPath := filepath.Join(tmp, "custom.toml")
	err := os.WriteFile(cfgPath, []byte("[server]"), 0644)
	require.NoError(t, err)

	t.Setenv("RELAYARR_CONFIG", cfgPath)

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, cfgPath, path)
}

func TestDiscover_EnvVarNotFound(t *testing.T) {
	t.Setenv("RELAYARR_CONFIG", "/nonexistent/config.toml")

	_, err := Discover()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "RELAYARR_CONFIG")
}

func TestDiscover_CurrentDir(t *testing.T) {
	t.Setenv("RELAYARR_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	origDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { os.Chdir(origDir) })

	tmp := t.TempDir()
	require.NoError(t, os.Chdir(tmp))
	require.NoError(t, os.WriteFile("config.toml", []byte("[server]"), 0644))

	path, err := Discover()
	require.NoError(t, err)
	assert.Equal(t, "./config.toml", path)
}

func TestDiscover_NotFound(t *testing.T) {
	t.Setenv("RELAYARR_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	origDir, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { os.Chdir(origDir) })
	require.NoError(t, os.Chdir(t.TempDir()))

	_, err = Discover()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "config not found")
}
