package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	d := Default()
	assert.Equal(t, "hashmap", d.Backend)
	assert.Equal(t, ":8080", d.BindAddr)
	assert.Equal(t, uint64(100_000), d.ProgressEvery)
	assert.Equal(t, 256, d.BatchParallelThreshold)
}

func TestNormalize_ReplacesInvalidBackend(t *testing.T) {
	c := Config{Backend: "not-a-backend"}
	c.Normalize()
	assert.Equal(t, "hashmap", c.Backend)
}

func TestNormalize_KeepsValidBackend(t *testing.T) {
	for _, b := range []string{"hashmap", "vec", "hybrid", "fullhash"} {
		c := Config{Backend: b}
		c.Normalize()
		assert.Equal(t, b, c.Backend)
	}
}

func TestNormalize_ZeroValuesFallBackToDefaults(t *testing.T) {
	c := Config{}
	c.Normalize()
	d := Default()
	assert.Equal(t, d.BindAddr, c.BindAddr)
	assert.Equal(t, d.ProgressEvery, c.ProgressEvery)
	assert.Equal(t, d.BatchParallelThreshold, c.BatchParallelThreshold)
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Backend, c.Backend)
}

func TestLoad_ValidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_source: data/occlusion.csv\nbackend: vec\nbind_addr: :9090\n"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "data/occlusion.csv", c.DataSource)
	assert.Equal(t, "vec", c.Backend)
	assert.Equal(t, ":9090", c.BindAddr)
}

func TestLoad_MalformedYAMLFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("not: [valid: yaml"), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default().Backend, c.Backend)
}
