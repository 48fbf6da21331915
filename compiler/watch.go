package compiler

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watch runs the pipeline once, then again whenever a hand-written Go file in
// one of the loaded package directories changes. Bursts of events within
// cfg.Debounce trigger a single run. Every run is handed to onRun; the report
// is nil when packages could not be loaded.
//
// Watch returns nil when ctx is cancelled, or an error if the watcher cannot
// be started or the first load fails.
func Watch(ctx context.Context, cfg *Config, onRun func(*Report, error)) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("prefsgen: start watcher: %w", err)
	}
	defer w.Close()

	report, pkgs, err := run(ctx, cfg)
	if err != nil && report == nil {
		return err
	}
	onRun(report, err)

	watched := make(map[string]bool)
	watch := func() {
		for _, p := range pkgs {
			if watched[p.Dir] {
				continue
			}
			if err := w.Add(p.Dir); err != nil {
				cfg.Logger.Warn("Failed to watch directory", "dir", p.Dir, "error", err)
				continue
			}
			watched[p.Dir] = true
			cfg.Logger.Debug("Watching directory", "dir", p.Dir)
		}
	}
	watch()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if !relevant(ev) {
				continue
			}
			cfg.Logger.Debug("Source changed", "file", ev.Name, "op", ev.Op.String())
			if timer == nil {
				timer = time.NewTimer(cfg.Debounce)
			} else {
				timer.Reset(cfg.Debounce)
			}
			fire = timer.C

		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			cfg.Logger.Warn("Watcher error", "error", err)

		case <-fire:
			fire = nil
			report, rerun, err := run(ctx, cfg)
			if ctx.Err() != nil {
				return nil
			}
			if err != nil {
				cfg.Logger.Warn("Regeneration failed", "error", err)
			} else {
				pkgs = rerun
				watch()
			}
			onRun(report, err)
		}
	}
}

// relevant reports whether ev touches a hand-written, non-test Go file.
// Generated files are ignored so a run never triggers itself.
func relevant(ev fsnotify.Event) bool {
	if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
		return false
	}
	name := filepath.Base(ev.Name)
	if !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") {
		return false
	}
	return !generated(ev.Name)
}

// generated reports whether the file at path carries a generated-code header.
// Unreadable or removed files count as hand-written.
func generated(path string) bool {
	f, err := parser.ParseFile(token.NewFileSet(), path, nil, parser.PackageClauseOnly|parser.ParseComments)
	if err != nil {
		return false
	}
	return ast.IsGenerated(f)
}
