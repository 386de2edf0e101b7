// Package driver runs the generation pipeline over a set of package
// patterns: load, plan and render every package, then write or check the
// results. Every command of the CLI goes through Run.
package driver

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"accessor-generator/internal/analyze"
	"accessor-generator/internal/config"
	"accessor-generator/internal/diagnostic"
	"accessor-generator/internal/gen"
	"accessor-generator/internal/logger"
	"accessor-generator/internal/plan"
)

// Options configures one run.
type Options struct {
	// Patterns are go/packages patterns (default ".").
	Patterns []string
	// Dir is the working directory for the patterns.
	Dir string
	// Config holds the effective settings (default config.Default()).
	Config *config.Config
	// Env overrides the environment of the go command.
	Env []string
}

// Package is the outcome for one package.
type Package struct {
	Plan *plan.Plan
	// File is nil when the package has nothing to generate.
	File *gen.GeneratedFile
}

// Result holds per-package outcomes in load order.
type Result struct {
	Packages []Package
	// Filename is the generated file name used for every package.
	Filename string
}

// Run loads, plans and renders. Packages are planned and rendered
// concurrently; the first error cancels the rest and nothing is returned.
// Progress is logged to the logger carried by ctx.
func Run(ctx context.Context, opts Options) (*Result, error) {
	log := logger.FromContext(ctx)

	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}

	patterns := opts.Patterns
	if len(patterns) == 0 {
		patterns = []string{"."}
	}

	defaults, err := cfg.DefaultOptions()
	if err != nil {
		return nil, err
	}

	planner, err := plan.NewPlanner(plan.Config{Defaults: defaults, Receiver: cfg.Receiver})
	if err != nil {
		return nil, err
	}

	generator := gen.NewGenerator(gen.GeneratorConfig{
		Filename:         cfg.Output,
		BuildTag:         cfg.BuildTag,
		DebugUnformatted: true,
	})

	loader := analyze.NewLoader(analyze.LoadOptions{
		Dir:      opts.Dir,
		Env:      opts.Env,
		BuildTag: cfg.BuildTag,
		Tags:     cfg.Tags,
		Types:    cfg.Types,
	})

	pkgs, err := loader.Load(ctx, patterns...)
	if err != nil {
		return nil, err
	}

	log.Debug("packages loaded", "patterns", patterns, "count", len(pkgs))

	results := make([]Package, len(pkgs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))

	for i, pkg := range pkgs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			p, err := planner.Plan(pkg)
			if err != nil {
				return fmt.Errorf("%s: %w", pkg.Path, err)
			}

			file, err := generator.Generate(p)
			if err != nil {
				return err
			}

			log.With("pkg", pkg.Path).Debug("package planned",
				"records", len(p.Records), "functions", p.Functions(), "file", file != nil)

			results[i] = Package{Plan: p, File: file}

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{Packages: results, Filename: generator.Filename()}, nil
}

// Files returns the rendered files, skipping packages without one.
func (r *Result) Files() []*gen.GeneratedFile {
	var files []*gen.GeneratedFile

	for _, p := range r.Packages {
		if p.File != nil {
			files = append(files, p.File)
		}
	}

	return files
}

// Plans returns every package plan.
func (r *Result) Plans() []*plan.Plan {
	plans := make([]*plan.Plan, 0, len(r.Packages))
	for _, p := range r.Packages {
		plans = append(plans, p.Plan)
	}

	return plans
}

// Diagnostics collects the non-fatal notes of every package.
func (r *Result) Diagnostics() diagnostic.Diagnostics {
	var d diagnostic.Diagnostics
	for _, p := range r.Packages {
		d.Merge(p.Plan.Diagnostics)
	}

	return d
}

// WriteReport lists what Write changed on disk.
type WriteReport struct {
	Written []string
	Removed []string
}

// Write writes every rendered file and removes generated files left in
// packages that no longer produce one.
func (r *Result) Write() (WriteReport, error) {
	var report WriteReport

	files := r.Files()
	if err := gen.WriteFiles(files); err != nil {
		return report, err
	}

	for _, f := range files {
		report.Written = append(report.Written, f.Path())
	}

	for _, p := range r.Packages {
		if p.File != nil || p.Plan.Dir == "" {
			continue
		}

		removed, err := gen.RemoveStale(p.Plan.Dir, r.Filename)
		if err != nil {
			return report, err
		}

		if removed {
			report.Removed = append(report.Removed, (&gen.GeneratedFile{Dir: p.Plan.Dir, Filename: r.Filename}).Path())
		}
	}

	return report, nil
}

// Check compares every package's rendering with the file on disk. Only
// files needing regeneration are returned.
func (r *Result) Check() ([]gen.CheckResult, error) {
	var stale []gen.CheckResult

	for _, p := range r.Packages {
		if p.File == nil {
			if p.Plan.Dir == "" {
				continue
			}

			res, found, err := gen.CheckOrphan(p.Plan.Dir, r.Filename)
			if err != nil {
				return nil, err
			}

			if found {
				stale = append(stale, res)
			}

			continue
		}

		res, err := gen.Check(p.File)
		if err != nil {
			return nil, err
		}

		if !res.OK() {
			stale = append(stale, res)
		}
	}

	return stale, nil
}
