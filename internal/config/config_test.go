package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/entityfusion/fusion/internal/config"
)

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestLoadOverlaysYAMLOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "fusion.yaml")
	contents := "workers: 8\noutput: /tmp/out\ngazetteer_dir: /tmp/gaz\n"
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, 8, cfg.Workers)
	assert.Equal(t, "/tmp/out", cfg.OutputDir)
	assert.Equal(t, "/tmp/gaz", cfg.GazetteerDir)
	assert.Equal(t, config.Default().BatchSize, cfg.BatchSize)
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := config.Load("/nonexistent/fusion.yaml")
	assert.Error(t, err)
}
