// Package pipeline drives the end-to-end per-file flow (spec §5):
// build the formatting token stream, run the lint/format rule pipeline,
// pretty-print, and run the whitespace linter — one independent
// pipeline per file, with a bounded number of files in flight at once.
package pipeline

import (
	"context"
	"fmt"
	"sync"

	"github.com/stylish-lang/stylish/builder"
	"github.com/stylish-lang/stylish/config"
	"github.com/stylish-lang/stylish/printer"
	"github.com/stylish-lang/stylish/report"
	"github.com/stylish-lang/stylish/rules"
	"github.com/stylish-lang/stylish/syntax"
	"github.com/stylish-lang/stylish/token"
	"github.com/stylish-lang/stylish/wslint"
	"golang.org/x/sync/semaphore"
)

// Mode selects what a Run does with a file's result.
type Mode int

const (
	// Lint runs the lint-rule pass and the whitespace linter, reporting
	// diagnostics without writing anything back.
	Lint Mode = iota
	// Format runs the format-rule pass and pretty-prints, returning the
	// rewritten text for the caller to write back (or print, with
	// --in-place off).
	Format
)

// File is one input to the pipeline: its AST, the token allocator it
// was built with (so format rules can mint new tokens), its original
// source text (for whitespace-lint comparison and diagnostic
// positions), its display path, and its top-level import names (for
// the rule-suppression heuristic).
type File struct {
	Path    string
	Source  string
	Root    *syntax.Node
	Tokens  *token.Stream
	Imports []string
}

// Result is one file's pipeline outcome.
type Result struct {
	Path      string
	Formatted string
	Sink      *report.Sink
	Err       error
}

// Run processes every file independently, running at most maxWorkers
// pipelines concurrently (spec §5: "Multiple files may be processed in
// parallel by running independent per-file pipelines on separate
// worker threads... the core exposes no shared mutable state between
// files other than the configuration, which is read-only after
// construction"). A per-file panic is recovered into that file's
// Result.Err rather than aborting the batch (spec §5's "Per-file errors
// do not poison other files in a batch").
func Run(ctx context.Context, files []File, cfg config.Config, registry *rules.Registry, mode Mode, maxWorkers int) []Result {
	if maxWorkers <= 0 {
		maxWorkers = 1
	}
	sem := semaphore.NewWeighted(int64(maxWorkers))
	results := make([]Result, len(files))

	var wg sync.WaitGroup
	for i, f := range files {
		if err := sem.Acquire(ctx, 1); err != nil {
			results[i] = Result{Path: f.Path, Err: err}
			continue
		}
		wg.Add(1)
		go func(i int, f File) {
			defer wg.Done()
			defer sem.Release(1)
			results[i] = runOne(f, cfg, registry, mode)
		}(i, f)
	}
	wg.Wait()
	return results
}

func runOne(f File, cfg config.Config, registry *rules.Registry, mode Mode) (result Result) {
	result.Path = f.Path
	defer func() {
		if rec := recover(); rec != nil {
			result.Err = fmt.Errorf("pipeline: %s: %v", f.Path, rec)
		}
	}()

	sink := report.NewSink()
	rctx := rules.NewContext(f.Path, f.Source, f.Tokens, sink, ruleFlags(cfg), f.Imports)

	root := f.Root
	if mode == Format {
		root = registry.Format(root, rctx)
	}
	registry.Lint(root, rctx)

	stream := builder.Build(root, cfg.BuilderConfig())
	text, err := printer.Print(stream, cfg.PrinterOptions())
	if err != nil {
		result.Err = fmt.Errorf("pipeline: %s: %w", f.Path, err)
		return result
	}

	for _, d := range wslint.ToDiagnostics(f.Path, wslint.Check(f.Source, text, cfg.LineLength)) {
		sink.Report(d)
	}

	result.Formatted = text
	result.Sink = sink
	return result
}

func ruleFlags(cfg config.Config) map[string]bool {
	if cfg.Rules == nil {
		return nil
	}
	return cfg.Rules
}
