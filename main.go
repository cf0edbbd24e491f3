package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/olehluchkiv/gofeatures/internal/analyzer"
	"github.com/olehluchkiv/gofeatures/internal/config"
	"github.com/olehluchkiv/gofeatures/internal/logging"
	"github.com/olehluchkiv/gofeatures/internal/pipeline"
	"github.com/olehluchkiv/gofeatures/internal/relation"
	"github.com/olehluchkiv/gofeatures/internal/report"
)

// errUsage is returned when no input was given.
var errUsage = errors.New("usage: gofeatures [flags] <path-or-url>")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if !errors.Is(err, flag.ErrHelp) && !errors.Is(err, errUsage) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

// options holds the parsed command line. Flags override the configuration
// file only when they are set explicitly.
type options struct {
	input      string
	configPath string
	cfg        config.Config
}

func parseArgs(args []string, stderr io.Writer) (options, error) {
	// Use a custom FlagSet so we can parse all args regardless of position.
	// Go's default flag.Parse stops at the first non-flag argument, which
	// breaks "gofeatures ./path -output report.txt". We reorder args so
	// flags come first, then positional args.
	flags, positional := reorderArgs(args)

	def := config.Default()
	fs := flag.NewFlagSet("gofeatures", flag.ContinueOnError)
	fs.SetOutput(stderr)
	pathFlag := fs.String("path", "", "path or GitHub URL to analyze (alternative to positional argument)")
	configPath := fs.String("config", "", "YAML configuration file")
	filter := fs.String("filter", def.Analysis.Filter, "package path prefix filter")
	includeStdlib := fs.Bool("include-stdlib", def.Analysis.IncludeStdlib, "include standard library interfaces")
	includeUnexported := fs.Bool("include-unexported", def.Analysis.IncludeUnexported, "include unexported types and interfaces")
	perPackage := fs.Bool("per-package", def.Analysis.PerPackage, "build one lattice per package")
	workers := fs.Int("workers", def.Analysis.Workers, "packages processed concurrently with -per-package")
	kind := fs.String("relation", def.Relation.Kind, "relation: reverse, usual or extended")
	excludeAccessors := fs.Bool("exclude-accessors", def.Relation.ExcludeAccessors, "drop getters, setters and constructors")
	format := fs.String("format", def.Output.Format, "report format: text, json, mermaid or lattice")
	output := fs.String("output", def.Output.Path, "write the report to file instead of stdout")
	logFile := fs.String("log-file", def.Log.File, "log file path (empty for stderr only)")
	logLevel := fs.String("log-level", def.Log.Level, "log level (debug, info, warn, error)")

	if err := fs.Parse(flags); err != nil {
		return options{}, err
	}
	// Collect any remaining args from flag parsing + our positional args
	positional = append(positional, fs.Args()...)

	opts := options{configPath: *configPath, cfg: def}
	// Positional argument takes precedence, then -path flag
	if len(positional) > 0 {
		opts.input = positional[0]
	}
	if opts.input == "" {
		opts.input = *pathFlag
	}

	if opts.configPath != "" {
		cfg, err := config.Load(opts.configPath)
		if err != nil {
			return options{}, err
		}
		opts.cfg = cfg
	}

	fs.Visit(func(f *flag.Flag) {
		c := &opts.cfg
		switch f.Name {
		case "filter":
			c.Analysis.Filter = *filter
		case "include-stdlib":
			c.Analysis.IncludeStdlib = *includeStdlib
		case "include-unexported":
			c.Analysis.IncludeUnexported = *includeUnexported
		case "per-package":
			c.Analysis.PerPackage = *perPackage
		case "workers":
			c.Analysis.Workers = *workers
		case "relation":
			c.Relation.Kind = *kind
		case "exclude-accessors":
			c.Relation.ExcludeAccessors = *excludeAccessors
		case "format":
			c.Output.Format = *format
		case "output":
			c.Output.Path = *output
		case "log-file":
			c.Log.File = *logFile
		case "log-level":
			c.Log.Level = *logLevel
		}
	})
	if err := opts.cfg.Validate(); err != nil {
		return options{}, err
	}

	if opts.input == "" {
		fmt.Fprintln(stderr, errUsage)
		fs.PrintDefaults()
		return options{}, errUsage
	}
	return opts, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	opts, err := parseArgs(args, stderr)
	if err != nil {
		return err
	}
	cfg := opts.cfg

	// Validate has already checked these.
	level, _ := logging.ParseLevel(cfg.Log.Level)
	kind, _ := relation.ParseKind(cfg.Relation.Kind)
	format, _ := report.ParseFormat(cfg.Output.Format)

	logger, logCleanup, err := logging.Setup(stderr, cfg.Log.File, level)
	if err != nil {
		return fmt.Errorf("setting up logging: %w", err)
	}
	defer logCleanup()

	fmt.Fprintln(stderr, "Analyzing", opts.input)
	rep, resolverCleanup, err := pipeline.RunAnalysis(ctx, pipeline.Config{
		Input: opts.input,
		Analysis: analyzer.AnalyzeOptions{
			Filter:            cfg.Analysis.Filter,
			IncludeStdlib:     cfg.Analysis.IncludeStdlib,
			IncludeUnexported: cfg.Analysis.IncludeUnexported,
		},
		Relation:   kind,
		Options:    relation.Options{ExcludeAccessors: cfg.Relation.ExcludeAccessors},
		PerPackage: cfg.Analysis.PerPackage,
		Workers:    cfg.Analysis.Workers,
	}, logger)
	if err != nil {
		logger.Error("analysis failed", "error", err)
		return err
	}
	defer resolverCleanup()

	candidates := 0
	for _, s := range rep.Sections {
		candidates += len(s.Candidates)
	}
	fmt.Fprintf(stderr, "Found %d candidate features in %d lattices\n", candidates, len(rep.Sections))

	rctx := report.NewContext()
	if cfg.Output.Path == "" {
		return report.Write(stdout, format, rep, rctx)
	}

	// File output: include %%{init:}%% for standalone .mmd rendering
	rctx.IncludeInit = true
	f, err := os.Create(cfg.Output.Path)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	if err := report.Write(f, format, rep, rctx); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", cfg.Output.Path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", cfg.Output.Path, err)
	}
	logger.Info("report written", "path", cfg.Output.Path, "format", string(format))
	fmt.Fprintf(stderr, "Wrote report to %s\n", cfg.Output.Path)
	return nil
}

// reorderArgs separates flags and positional arguments so flags can appear
// in any position (before or after the positional path argument).
// Flags that take a value (e.g., -output file.txt) consume the next arg.
func reorderArgs(args []string) (flags, positional []string) {
	// Set of flags that take a value argument
	valueFlagSet := map[string]bool{
		"-path": true, "-config": true, "-filter": true, "-workers": true,
		"-relation": true, "-format": true, "-output": true,
		"-log-file": true, "-log-level": true,
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if strings.HasPrefix(arg, "-") {
			flags = append(flags, arg)
			// Check if this flag takes a value (and it's not using = syntax)
			name := "-" + strings.TrimLeft(arg, "-")
			if !strings.Contains(arg, "=") && valueFlagSet[name] && i+1 < len(args) {
				i++
				flags = append(flags, args[i])
			}
		} else {
			positional = append(positional, arg)
		}
	}
	return flags, positional
}
