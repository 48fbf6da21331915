package compiler

import (
	"context"
	"errors"
	"fmt"
	"go/token"

	"golang.org/x/sync/errgroup"

	"github.com/CreativeUnicorns/simpleprefs/compiler/gen"
	"github.com/CreativeUnicorns/simpleprefs/compiler/load"
)

// Outcome classifies what happened to one holder.
type Outcome int

const (
	// Skipped means the holder was not processed because the run was cancelled.
	Skipped Outcome = iota
	// Generated means the accessor type was rendered and written.
	Generated
	// Diagnostic means the holder was rejected during extraction.
	Diagnostic
	// RenderFailed means the schema was valid but could not be rendered.
	RenderFailed
	// WriteFailed means the unit was rendered but the writer failed.
	WriteFailed
)

func (o Outcome) String() string {
	switch o {
	case Generated:
		return "generated"
	case Diagnostic:
		return "diagnostic"
	case RenderFailed:
		return "render failed"
	case WriteFailed:
		return "write failed"
	default:
		return "skipped"
	}
}

// Result is the outcome for one holder.
type Result struct {
	// Holder is the qualified name of the holder declaration.
	Holder  string
	Pos     token.Position
	Outcome Outcome
	// Unit is set when Outcome is Generated.
	Unit *gen.SourceUnit
	// Err is the diagnostic, render or writer error. Writer errors are kept unchanged.
	Err error
}

// Report collects the results of one run in declaration order.
type Report struct {
	Results []Result
}

// Err joins every per-holder failure, or returns nil when all succeeded.
func (r *Report) Err() error {
	var errs []error
	for _, res := range r.Results {
		if res.Err != nil {
			errs = append(errs, res.Err)
		}
	}
	return errors.Join(errs...)
}

// Generated returns the units that were written.
func (r *Report) Generated() []*gen.SourceUnit {
	var units []*gen.SourceUnit
	for _, res := range r.Results {
		if res.Outcome == Generated {
			units = append(units, res.Unit)
		}
	}
	return units
}

// Count returns how many results have outcome o.
func (r *Report) Count(o Outcome) int {
	n := 0
	for _, res := range r.Results {
		if res.Outcome == o {
			n++
		}
	}
	return n
}

// Run loads the configured packages and compiles every holder in them.
// Per-holder failures are recorded in the report; the returned error is set
// only when packages cannot be loaded or ctx is cancelled.
func Run(ctx context.Context, cfg *Config) (*Report, error) {
	report, _, err := run(ctx, cfg)
	return report, err
}

func run(ctx context.Context, cfg *Config) (*Report, []load.Package, error) {
	pkgs, err := load.Load(ctx, load.Options{Dir: cfg.Dir, BuildFlags: cfg.BuildFlags}, cfg.Patterns...)
	if err != nil {
		return nil, nil, fmt.Errorf("prefsgen: %w", err)
	}

	var decls []load.Declaration
	for _, p := range pkgs {
		decls = append(decls, p.Declarations...)
	}
	cfg.Logger.Debug("Loaded packages", "packages", len(pkgs), "declarations", len(decls))

	report, err := process(ctx, cfg, decls, writerFor(cfg, pkgs))
	return report, pkgs, err
}

// Process compiles pre-scanned declarations and sends the units to w.
func Process(ctx context.Context, decls []load.Declaration, w gen.Writer, opts ...Option) (*Report, error) {
	cfg, err := NewConfig(opts...)
	if err != nil {
		return nil, err
	}
	return process(ctx, cfg, decls, w)
}

func writerFor(cfg *Config, pkgs []load.Package) gen.Writer {
	switch {
	case cfg.Writer != nil:
		return cfg.Writer
	case cfg.DryRun:
		return gen.NewMemoryWriter()
	case cfg.Output != "":
		return gen.NewFileWriter(cfg.Output)
	}
	w := gen.NewFileWriter(cfg.Dir)
	for _, p := range pkgs {
		w.Dirs[p.Namespace.String()] = p.Dir
	}
	return w
}

func process(ctx context.Context, cfg *Config, decls []load.Declaration, w gen.Writer) (*Report, error) {
	extracted := load.Extract(decls)
	report := &Report{Results: make([]Result, len(extracted))}
	g := cfg.generator()

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(cfg.Workers)
	for i, r := range extracted {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report.Results[i] = compile(cfg, g, w, r)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return report, err
	}

	cfg.Logger.Info("Generation finished",
		"generated", report.Count(Generated),
		"failed", len(report.Results)-report.Count(Generated),
	)
	return report, nil
}

func compile(cfg *Config, g *gen.Generator, w gen.Writer, r load.Result) Result {
	res := Result{Holder: r.Decl.QualifiedName(), Pos: r.Decl.Pos}
	if r.Err != nil {
		cfg.Logger.Warn("Skipping holder", "holder", res.Holder, "error", r.Err)
		res.Outcome, res.Err = Diagnostic, r.Err
		return res
	}

	u, err := g.Generate(r.Schema)
	if err != nil {
		cfg.Logger.Error("Failed to render accessor type", "holder", res.Holder, "error", err)
		res.Outcome, res.Err = RenderFailed, err
		return res
	}

	if err := w.WriteUnit(u.Namespace, u.TypeName, u.Body); err != nil {
		cfg.Logger.Error("Failed to write accessor type", "holder", res.Holder, "file", u.FileName, "error", err)
		res.Outcome, res.Err = WriteFailed, err
		return res
	}

	cfg.Logger.Info("Generated accessor type", "type", u.TypeName, "file", u.FileName, "namespace", u.Namespace.String())
	res.Outcome, res.Unit = Generated, u
	return res
}
