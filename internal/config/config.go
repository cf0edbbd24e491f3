// Package config loads the gofeatures YAML configuration file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/olehluchkiv/gofeatures/internal/logging"
	"github.com/olehluchkiv/gofeatures/internal/relation"
	"github.com/olehluchkiv/gofeatures/internal/report"
)

// ErrInvalidConfig is returned for a configuration that fails validation.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full run configuration. Command-line flags override the
// values they set.
type Config struct {
	Analysis AnalysisConfig `yaml:"analysis"`
	Relation RelationConfig `yaml:"relation"`
	Output   OutputConfig   `yaml:"output"`
	Log      LogConfig      `yaml:"log"`
}

// AnalysisConfig selects what gets analyzed.
type AnalysisConfig struct {
	Filter            string `yaml:"filter"` // package path prefix
	IncludeStdlib     bool   `yaml:"include_stdlib"`
	IncludeUnexported bool   `yaml:"include_unexported"`
	// PerPackage builds one lattice per package instead of one for the
	// module.
	PerPackage bool `yaml:"per_package"`
	Workers    int  `yaml:"workers"`
}

// RelationConfig selects the relation the lattice is built from.
type RelationConfig struct {
	Kind             string `yaml:"kind"` // reverse, usual or extended
	ExcludeAccessors bool   `yaml:"exclude_accessors"`
}

// OutputConfig selects the report format and destination. An empty path
// writes to stdout.
type OutputConfig struct {
	Format string `yaml:"format"`
	Path   string `yaml:"path"`
}

type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Analysis: AnalysisConfig{Workers: runtime.NumCPU()},
		Relation: RelationConfig{Kind: string(relation.KindReverse)},
		Output:   OutputConfig{Format: string(report.FormatText)},
		Log:      LogConfig{File: "logs/gofeatures.log", Level: "info"},
	}
}

// Load reads the YAML file at path over the defaults and validates the
// result. Unknown keys are rejected.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}
	cfg := Default()
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, fmt.Errorf("parsing config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every enumerated value and the worker count.
func (c Config) Validate() error {
	if _, err := relation.ParseKind(c.Relation.Kind); err != nil {
		return fmt.Errorf("%w: relation.kind: %v", ErrInvalidConfig, err)
	}
	if _, err := report.ParseFormat(c.Output.Format); err != nil {
		return fmt.Errorf("%w: output.format: %v", ErrInvalidConfig, err)
	}
	if c.Analysis.Workers < 1 {
		return fmt.Errorf("%w: analysis.workers must be at least 1, got %d", ErrInvalidConfig, c.Analysis.Workers)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %v", ErrInvalidConfig, err)
	}
	return nil
}
