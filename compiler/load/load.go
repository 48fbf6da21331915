package load

import (
	"context"
	"errors"
	"fmt"
	"go/token"
	"path/filepath"

	"golang.org/x/tools/go/packages"

	"github.com/CreativeUnicorns/simpleprefs/schema"
)

// loadMode is the minimum go/packages mode the scanner needs: names, files and syntax.
const loadMode = packages.NeedName | packages.NeedFiles | packages.NeedCompiledGoFiles | packages.NeedSyntax

// Package is a loaded Go package and the declarations scanned from it.
type Package struct {
	Namespace    schema.Namespace
	Dir          string
	Files        []string
	Declarations []Declaration
}

// Options configures Load.
type Options struct {
	// Dir is the working directory patterns are resolved against.
	Dir string
	// BuildFlags are passed to the underlying build tool, e.g. -tags.
	BuildFlags []string
}

// Load loads the packages matching patterns and scans their declarations.
// Packages with load or parse errors fail the whole call.
func Load(ctx context.Context, opts Options, patterns ...string) ([]Package, error) {
	if len(patterns) == 0 {
		patterns = []string{"."}
	}
	fset := token.NewFileSet()
	cfg := &packages.Config{
		Context:    ctx,
		Mode:       loadMode,
		Dir:        opts.Dir,
		BuildFlags: opts.BuildFlags,
		Fset:       fset,
	}
	pkgs, err := packages.Load(cfg, patterns...)
	if err != nil {
		return nil, fmt.Errorf("load %v: %w", patterns, err)
	}

	var (
		out  []Package
		errs []error
	)
	for _, p := range pkgs {
		for _, e := range p.Errors {
			errs = append(errs, fmt.Errorf("package %s: %w", p.PkgPath, e))
		}
		if len(p.GoFiles) == 0 {
			continue
		}
		ns := namespaceOf(p)
		out = append(out, Package{
			Namespace:    ns,
			Dir:          filepath.Dir(p.GoFiles[0]),
			Files:        p.GoFiles,
			Declarations: ScanFiles(fset, ns, p.Syntax...),
		})
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return out, nil
}

func namespaceOf(p *packages.Package) schema.Namespace {
	// Packages named on the command line by file have no real import path.
	if p.PkgPath == "command-line-arguments" {
		return schema.NewNamespace("", p.Name)
	}
	return schema.NewNamespace(p.PkgPath, p.Name)
}
