// Package main is the entry point for the prefsgen code generator.
//
// Usage:
//
//	prefsgen [-config prefsgen.yaml] [-dir .] [-out dir] [-workers n] [-watch] [-dry-run] [-v] [patterns...]
//
// It is typically invoked from a go:generate directive next to the
// preference holders it compiles.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/CreativeUnicorns/simpleprefs"
	"github.com/CreativeUnicorns/simpleprefs/compiler"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", compiler.ConfigFile, "path to the YAML configuration file")
	dir := flag.String("dir", "", "directory package patterns are resolved against")
	out := flag.String("out", "", "write generated files under this directory instead of next to their source")
	workers := flag.Int("workers", 0, "maximum number of holders generated concurrently")
	watch := flag.Bool("watch", false, "regenerate whenever a source file changes")
	dryRun := flag.Bool("dry-run", false, "render without writing files")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	logger := simpleprefs.NewDefaultLogger()
	if *verbose {
		logger.SetLevel(simpleprefs.LogLevelDebug)
	}

	cfg, err := compiler.LoadConfig(*configPath)
	if err != nil {
		logger.Error("Failed to load configuration", "path", *configPath, "error", err)
		return 1
	}

	// Flags override the configuration file.
	opts := []compiler.Option{compiler.WithLogger(logger)}
	if *dir != "" {
		opts = append(opts, compiler.WithDir(*dir))
	}
	if flag.NArg() > 0 {
		opts = append(opts, compiler.WithPatterns(flag.Args()...))
	}
	if *out != "" {
		opts = append(opts, compiler.WithOutput(*out))
	}
	if *workers != 0 {
		opts = append(opts, compiler.WithWorkers(*workers))
	}
	if *dryRun {
		opts = append(opts, compiler.WithDryRun(true))
	}
	if err := cfg.Apply(opts...); err != nil {
		logger.Error("Invalid configuration", "error", err)
		return 1
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if *watch {
		logger.Info("Watching for changes", "dir", cfg.Dir, "patterns", cfg.Patterns)
		err := compiler.Watch(ctx, cfg, func(report *compiler.Report, err error) {
			if err != nil {
				return
			}
			summarize(report)
		})
		if err != nil {
			logger.Error("Watch failed", "error", err)
			return 1
		}
		logger.Info("Watch stopped")
		return 0
	}

	report, err := compiler.Run(ctx, cfg)
	if err != nil {
		logger.Error("Generation failed", "error", err)
		return 1
	}
	if failed := summarize(report); failed > 0 {
		return 1
	}
	return 0
}

// summarize prints one line per failed holder to stderr and returns how many failed.
func summarize(report *compiler.Report) int {
	failed := 0
	for _, r := range report.Results {
		if r.Outcome == compiler.Generated {
			continue
		}
		failed++
		fmt.Fprintf(os.Stderr, "%s: %s: %v\n", r.Holder, r.Outcome, r.Err)
	}
	return failed
}
