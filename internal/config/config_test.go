// Copyright 2025 KrakLabs
//
// SPDX-License-Identifier: AGPL-3.0-or-later

package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	t.Setenv("FNPOOL_DEFAULT_LANGUAGE", "")
	t.Setenv("FNPOOL_DEFAULT_AUTHOR", "")

	cfg := DefaultConfig("demo")
	assert.Equal(t, "demo", cfg.ProjectID)
	assert.Equal(t, configVersion, cfg.Version)
	assert.Equal(t, "eng", cfg.DefaultLanguage)
}

func TestSaveAndLoadConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := ConfigPath(dir)

	cfg := DefaultConfig("roundtrip")
	cfg.Root = "pool"
	require.NoError(t, SaveConfig(cfg, cfgPath))

	loaded, err := LoadConfig(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "roundtrip", loaded.ProjectID)
	assert.Equal(t, "pool", loaded.Root)
}

func TestLoadConfig_RejectsUnsupportedVersion(t *testing.T) {
	dir := t.TempDir()
	cfgPath := ConfigPath(dir)

	cfg := DefaultConfig("demo")
	cfg.Version = "99"
	require.NoError(t, SaveConfig(cfg, cfgPath))

	_, err := LoadConfig(cfgPath)
	assert.Error(t, err)
}

func TestLoadConfig_EnvOverridesRoot(t *testing.T) {
	dir := t.TempDir()
	cfgPath := ConfigPath(dir)

	cfg := DefaultConfig("demo")
	cfg.Root = "pool"
	require.NoError(t, SaveConfig(cfg, cfgPath))

	t.Setenv("FNPOOL_ROOT", "/tmp/override-root")
	loaded, err := LoadConfig(cfgPath)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override-root", loaded.Root)
}

func TestStorageRoot_RelativeToProjectDir(t *testing.T) {
	dir := t.TempDir()
	cfg := &Config{Root: "pool", ConfigPath: ConfigPath(dir)}
	assert.Equal(t, filepath.Join(dir, "pool"), cfg.StorageRoot())
}

func TestStorageRoot_AbsoluteUnchanged(t *testing.T) {
	cfg := &Config{Root: "/abs/pool", ConfigPath: ConfigPath(t.TempDir())}
	assert.Equal(t, "/abs/pool", cfg.StorageRoot())
}
