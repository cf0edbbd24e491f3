package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gofeatures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "reverse", cfg.Relation.Kind)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.GreaterOrEqual(t, cfg.Analysis.Workers, 1)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
analysis:
  filter: example.com/app
  include_unexported: true
  per_package: true
  workers: 3
relation:
  kind: extended
  exclude_accessors: true
output:
  format: mermaid
  path: out.mmd
log:
  level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "example.com/app", cfg.Analysis.Filter)
	assert.False(t, cfg.Analysis.IncludeStdlib)
	assert.True(t, cfg.Analysis.IncludeUnexported)
	assert.True(t, cfg.Analysis.PerPackage)
	assert.Equal(t, 3, cfg.Analysis.Workers)
	assert.Equal(t, "extended", cfg.Relation.Kind)
	assert.True(t, cfg.Relation.ExcludeAccessors)
	assert.Equal(t, "mermaid", cfg.Output.Format)
	assert.Equal(t, "out.mmd", cfg.Output.Path)
	assert.Equal(t, "debug", cfg.Log.Level)
	// Keys absent from the file keep their defaults.
	assert.Equal(t, "logs/gofeatures.log", cfg.Log.File)
}

func TestLoadEmptyFile(t *testing.T) {
	cfg, err := Load(writeConfig(t, ""))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	_, err := Load(writeConfig(t, "relation:\n  kinds: usual\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kinds")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		field  string
	}{
		{"unknown relation", func(c *Config) { c.Relation.Kind = "inverse" }, "relation.kind"},
		{"unknown format", func(c *Config) { c.Output.Format = "svg" }, "output.format"},
		{"no workers", func(c *Config) { c.Analysis.Workers = 0 }, "analysis.workers"},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.ErrorIs(t, err, ErrInvalidConfig)
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestLoadInvalidValue(t *testing.T) {
	_, err := Load(writeConfig(t, "output:\n  format: svg\n"))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}
