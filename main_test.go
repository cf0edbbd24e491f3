package main

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olehluchkiv/gofeatures/internal/config"
)

// ---------------------------------------------------------------------------
// reorderArgs tests
// ---------------------------------------------------------------------------

func TestReorderArgs_NoArgs(t *testing.T) {
	flags, positional := reorderArgs(nil)
	assert.Nil(t, flags)
	assert.Nil(t, positional)
}

func TestReorderArgs_PositionalOnly(t *testing.T) {
	flags, positional := reorderArgs([]string{"./mypackage"})
	assert.Nil(t, flags)
	assert.Equal(t, []string{"./mypackage"}, positional)
}

func TestReorderArgs_PositionalBeforeFlags(t *testing.T) {
	// The whole point of reorderArgs: allow positional args before flags.
	flags, positional := reorderArgs([]string{"./pkg", "-relation", "usual"})
	assert.Equal(t, []string{"-relation", "usual"}, flags)
	assert.Equal(t, []string{"./pkg"}, positional)
}

func TestReorderArgs_PositionalBetweenFlags(t *testing.T) {
	flags, positional := reorderArgs([]string{"-per-package", "./pkg", "-workers", "4"})
	assert.Equal(t, []string{"-per-package", "-workers", "4"}, flags)
	assert.Equal(t, []string{"./pkg"}, positional)
}

func TestReorderArgs_ValueFlagWithEquals(t *testing.T) {
	// When a value flag uses "=" syntax, the value is part of the same arg.
	flags, positional := reorderArgs([]string{"-output=report.json", "./pkg"})
	assert.Equal(t, []string{"-output=report.json"}, flags)
	assert.Equal(t, []string{"./pkg"}, positional)
}

func TestReorderArgs_DoubleHyphenValueFlag(t *testing.T) {
	flags, positional := reorderArgs([]string{"--format", "json", "./pkg"})
	assert.Equal(t, []string{"--format", "json"}, flags)
	assert.Equal(t, []string{"./pkg"}, positional)
}

func TestReorderArgs_BooleanFlagsDoNotConsumeNextArg(t *testing.T) {
	for _, f := range []string{"-include-stdlib", "-include-unexported", "-per-package", "-exclude-accessors", "-help"} {
		flags, positional := reorderArgs([]string{f, "./pkg"})
		assert.Equal(t, []string{f}, flags, f)
		assert.Equal(t, []string{"./pkg"}, positional, f)
	}
}

func TestReorderArgs_AllValueFlags(t *testing.T) {
	// Exercise every flag that takes a value argument.
	args := []string{
		"-path", "/tmp/repo",
		"-config", "gofeatures.yaml",
		"-filter", "github.com/foo",
		"-workers", "2",
		"-relation", "extended",
		"-format", "mermaid",
		"-output", "out.mmd",
		"-log-file", "app.log",
		"-log-level", "debug",
	}
	flags, positional := reorderArgs(args)
	assert.Equal(t, args, flags)
	assert.Nil(t, positional)
}

func TestReorderArgs_ValueFlagAtEnd(t *testing.T) {
	// If a value flag is at the very end with no following arg, it stays
	// as a flag (flag.Parse will report the error).
	flags, positional := reorderArgs([]string{"-format"})
	assert.Equal(t, []string{"-format"}, flags)
	assert.Nil(t, positional)
}

// ---------------------------------------------------------------------------
// parseArgs tests
// ---------------------------------------------------------------------------

func TestParseArgs_Defaults(t *testing.T) {
	opts, err := parseArgs([]string{"./pkg"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "./pkg", opts.input)
	assert.Equal(t, config.Default(), opts.cfg)
}

func TestParseArgs_PathFlag(t *testing.T) {
	opts, err := parseArgs([]string{"-path", "./myrepo"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "./myrepo", opts.input)

	// A positional argument wins over -path.
	opts, err = parseArgs([]string{"-path", "./myrepo", "./other"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "./other", opts.input)
}

func TestParseArgs_NoInput(t *testing.T) {
	var stderr bytes.Buffer
	_, err := parseArgs([]string{"-relation", "usual"}, &stderr)
	assert.ErrorIs(t, err, errUsage)
	assert.Contains(t, stderr.String(), "usage: gofeatures")
}

func TestParseArgs_Help(t *testing.T) {
	_, err := parseArgs([]string{"-help"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, flag.ErrHelp)
}

func TestParseArgs_InvalidValue(t *testing.T) {
	_, err := parseArgs([]string{"./pkg", "-relation", "inverse"}, &bytes.Buffer{})
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestParseArgs_FlagsOverrideConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gofeatures.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
analysis:
  workers: 3
relation:
  kind: usual
output:
  format: json
`), 0o644))

	opts, err := parseArgs([]string{"./pkg", "-config", path, "-format", "lattice", "-per-package"}, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "lattice", opts.cfg.Output.Format)
	assert.True(t, opts.cfg.Analysis.PerPackage)
	// Unset flags leave the file's values alone.
	assert.Equal(t, "usual", opts.cfg.Relation.Kind)
	assert.Equal(t, 3, opts.cfg.Analysis.Workers)
}

// ---------------------------------------------------------------------------
// run tests
// ---------------------------------------------------------------------------

func TestRun_TextToStdout(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"./testdata/11_delegation", "-log-file", "", "-log-level", "warn"}, &stdout, &stderr)
	require.NoError(t, err)

	assert.Contains(t, stdout.String(), "Features of ./testdata/11_delegation (relation: reverse)")
	assert.Contains(t, stdout.String(), "== example.com/workers:")
	assert.Contains(t, stdout.String(), "ANCHOR: [example.com/workers.Worker]")
	assert.Contains(t, stderr.String(), "candidate features in 1 lattices")
}

func TestRun_JSONToFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")
	logFile := filepath.Join(t.TempDir(), "run.log")
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-format", "json", "-output", out, "-log-file", logFile, "-per-package",
		"./testdata/06_cross_package",
	}, &stdout, &stderr)
	require.NoError(t, err)
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var rep struct {
		Sections []struct {
			Name string `json:"name"`
		} `json:"sections"`
	}
	require.NoError(t, json.Unmarshal(data, &rep))
	require.Len(t, rep.Sections, 2)
	assert.Equal(t, "example.com/testmod/cache", rep.Sections[0].Name)

	logs, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(logs), `"msg":"report written"`)
}

func TestRun_MermaidFileIncludesInit(t *testing.T) {
	out := filepath.Join(t.TempDir(), "lattice.mmd")
	err := run(context.Background(), []string{
		"./testdata/11_delegation", "-format", "mermaid", "-output", out, "-log-file", "",
	}, &bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), "%%{init:")
	assert.Contains(t, string(data), "flowchart TD")
}

func TestRun_MissingInput(t *testing.T) {
	err := run(context.Background(), []string{filepath.Join(t.TempDir(), "missing"), "-log-file", ""}, &bytes.Buffer{}, &bytes.Buffer{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "resolve:")
}
