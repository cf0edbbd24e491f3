// Package pipeline runs feature detection end to end: resolve the input,
// analyze it, build the relation and its concept lattice, purge, detect,
// validate, and collect everything into a report.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/olehluchkiv/gofeatures/internal/analyzer"
	"github.com/olehluchkiv/gofeatures/internal/fca"
	"github.com/olehluchkiv/gofeatures/internal/feature"
	"github.com/olehluchkiv/gofeatures/internal/model"
	"github.com/olehluchkiv/gofeatures/internal/relation"
	"github.com/olehluchkiv/gofeatures/internal/report"
	"github.com/olehluchkiv/gofeatures/internal/resolver"
)

// Config holds the parameters of one run.
type Config struct {
	Input    string
	Analysis analyzer.AnalyzeOptions
	Relation relation.Kind
	Options  relation.Options
	// PerPackage builds one lattice per package, Workers at a time.
	PerPackage bool
	Workers    int
}

// RunAnalysis executes the full resolve → analyze → detect pipeline. The
// returned cleanup removes any checkout made by the resolver and must be
// called once the report is no longer needed.
func RunAnalysis(ctx context.Context, cfg Config, logger *slog.Logger) (*report.Report, func(), error) {
	logger = logger.With("component", "pipeline")

	// Step 1: Resolve input to local directory.
	logger.Info("resolving input", "input", cfg.Input)
	dir, cleanup, err := resolver.Resolve(ctx, cfg.Input, logger)
	if err != nil {
		return nil, func() {}, fmt.Errorf("resolve: %w", err)
	}

	// Step 2: Analyze packages.
	logger.Info("analyzing packages", "dir", dir)
	result, err := analyzer.Analyze(ctx, dir, cfg.Analysis, logger)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("analyze: %w", err)
	}

	// Step 3: Detect features.
	sections, err := Detect(ctx, result, cfg, logger)
	if err != nil {
		cleanup()
		return nil, func() {}, fmt.Errorf("detect: %w", err)
	}

	return &report.Report{Input: cfg.Input, Relation: cfg.Relation, Sections: sections}, cleanup, nil
}

// Detect builds the sections of result: one for the whole module, or one
// per package with defined types when cfg.PerPackage is set.
func Detect(ctx context.Context, result *analyzer.Result, cfg Config, logger *slog.Logger) ([]report.Section, error) {
	if !cfg.PerPackage {
		name := result.ModulePath
		if name == "" {
			name = cfg.Input
		}
		s, err := Section(ctx, name, result.Project, cfg, logger)
		if err != nil {
			return nil, err
		}
		return []report.Section{s}, nil
	}

	var pkgs []string
	for _, pkg := range result.Packages {
		if len(result.PackageTypes(pkg)) > 0 {
			pkgs = append(pkgs, pkg)
		}
	}

	sections := make([]report.Section, len(pkgs))
	g, gctx := errgroup.WithContext(ctx)
	workers := cfg.Workers
	if workers < 1 {
		workers = 1
	}
	g.SetLimit(workers)
	for i, pkg := range pkgs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			view := &packageView{ProjectDef: result.Project, types: result.PackageTypes(pkg)}
			s, err := Section(gctx, pkg, view, cfg, logger.With("package", pkg))
			if err != nil {
				return fmt.Errorf("package %s: %w", pkg, err)
			}
			sections[i] = s
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return sections, nil
}

// Section runs relation → lattice → purge → detect → validate over
// project. Each stage needs exclusive access to the lattice, so a section
// is built sequentially.
func Section(ctx context.Context, name string, project model.Project, cfg Config, logger *slog.Logger) (report.Section, error) {
	rel, err := relation.NewBuilder(cfg.Options, logger).Build(cfg.Relation, project)
	if err != nil {
		return report.Section{}, err
	}
	if err := ctx.Err(); err != nil {
		return report.Section{}, err
	}

	l, err := fca.NewBuilder[model.Type, *model.Attribute](logger).Build(rel.Relation)
	if err != nil {
		return report.Section{}, fmt.Errorf("building lattice: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return report.Section{}, err
	}

	purger := feature.NewPurger(rel, logger)
	if err := purger.Run(l); err != nil {
		return report.Section{}, fmt.Errorf("purging extents: %w", err)
	}
	det := feature.NewDetector(rel, logger)
	if err := det.Run(l); err != nil {
		return report.Section{}, fmt.Errorf("detecting features: %w", err)
	}

	s := report.Section{
		Name:       name,
		Lattice:    l,
		Candidates: det.Candidates(),
		Purged:     purger.Removed(),
	}
	// Only extended attributes can explain a plain one.
	if cfg.Relation == relation.KindExtended {
		adhoc, err := feature.ValidateAdhoc(l)
		if err != nil {
			return report.Section{}, fmt.Errorf("validating adhoc attributes: %w", err)
		}
		s.Adhoc = adhoc
	}

	logger.Info("section complete",
		"section", name,
		"domain", len(rel.Relation.Domain()),
		"nodes", l.Len(),
		"candidates", len(s.Candidates),
		"purged", s.Purged)
	return s, nil
}

// packageView restricts a project's domain to one package while type
// lookups still see the whole module.
type packageView struct {
	*model.ProjectDef
	types []model.Type
}

func (v *packageView) Types() []model.Type { return v.types }
