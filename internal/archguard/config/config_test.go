package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := LoadConfig(t.TempDir())
	assert.Error(t, err)
}

func TestLoadConfigAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "archguard.json"),
		[]byte(`{"max_file_lines": 300}`), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, 300, cfg.MaxFileLines)
	assert.Equal(t, DefaultConfig.Extensions, cfg.Extensions)
	assert.Equal(t, DefaultConfig.ExcludedDirs, cfg.ExcludedDirs)
	assert.Equal(t, 12, cfg.MaxDepth)
	assert.Equal(t, "dependency-policy.yaml", cfg.PolicyFile)
	assert.Equal(t, ".archguard", cfg.PersistenceDir)
}

func TestLoadConfigMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "archguard.json"),
		[]byte(`{"max_depth": `), 0o644))

	_, err := LoadConfig(dir)
	assert.Error(t, err)
}

func TestLoadConfigFullOverride(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "archguard.json"),
		[]byte(`{
  "excluded_dirs": ["generated"],
  "extensions": [".tsx"],
  "max_depth": 4,
  "follow_symlinks": true,
  "max_file_lines": 250,
  "policy_file": "deps.yaml",
  "persistence_dir": ".cache"
}`), 0o644))

	cfg, err := LoadConfig(dir)
	require.NoError(t, err)

	assert.Equal(t, []string{"generated"}, cfg.ExcludedDirs)
	assert.Equal(t, []string{".tsx"}, cfg.Extensions)
	assert.Equal(t, 4, cfg.MaxDepth)
	assert.True(t, cfg.FollowSymlinks)
	assert.Equal(t, 250, cfg.MaxFileLines)
	assert.Equal(t, "deps.yaml", cfg.PolicyFile)
	assert.Equal(t, ".cache", cfg.PersistenceDir)
}
