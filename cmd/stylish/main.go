// Command stylish is the thin CLI driver around the formatter/linter
// core (spec §1 lists the CLI driver as an external collaborator; this
// is that collaborator, kept deliberately small).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"runtime"

	"github.com/stylish-lang/stylish/config"
	"github.com/stylish-lang/stylish/pipeline"
	"github.com/stylish-lang/stylish/report"
	"github.com/stylish-lang/stylish/rules"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

// Exit codes (spec §6): 0 clean, 1 lint/whitespace diagnostics at Error
// level, 2 a driver-level failure (bad flags, unreadable file, config
// error).
const (
	exitOK         = 0
	exitDiagnostic = 1
	exitFailure    = 2
)

func run(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: stylish <lint|format> [flags] <files...>")
		return exitFailure
	}

	sub, rest := args[0], args[1:]
	switch sub {
	case "lint":
		return runMode(rest, pipeline.Lint)
	case "format":
		return runMode(rest, pipeline.Format)
	default:
		fmt.Fprintf(os.Stderr, "stylish: unknown subcommand %q\n", sub)
		return exitFailure
	}
}

func runMode(args []string, mode pipeline.Mode) int {
	fs := flag.NewFlagSet("stylish", flag.ContinueOnError)
	configPath := fs.String("config", "", "path to a YAML configuration file")
	inPlace := fs.Bool("in-place", false, "write formatted output back to each file (format mode only)")
	dumpTokens := fs.Bool("dump-tokens", false, "print the formatting token stream instead of rendering it")
	dumpTree := fs.Bool("dump-tree", false, "print the parsed AST instead of formatting it")
	workers := fs.Int("workers", runtime.GOMAXPROCS(0), "maximum number of files processed concurrently")
	if err := fs.Parse(args); err != nil {
		return exitFailure
	}
	paths := fs.Args()
	if len(paths) == 0 {
		fmt.Fprintln(os.Stderr, "stylish: no input files")
		return exitFailure
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, warnings, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "stylish: %v\n", err)
			return exitFailure
		}
		for _, w := range warnings {
			fmt.Fprintf(os.Stderr, "stylish: %s\n", w)
		}
		cfg = loaded
	}

	files, err := loadFiles(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "stylish: %v\n", err)
		return exitFailure
	}

	if *dumpTokens || *dumpTree {
		return dump(files, *dumpTree)
	}

	registry := defaultRegistry()
	results := pipeline.Run(context.Background(), files, cfg, registry, mode, *workers)

	sink := report.NewSink()
	hasErr := false
	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(os.Stderr, "stylish: %v\n", res.Err)
			hasErr = true
			continue
		}
		sink.Merge(res.Sink)
		if mode == pipeline.Format {
			if *inPlace {
				if err := os.WriteFile(res.Path, []byte(res.Formatted), 0o644); err != nil {
					fmt.Fprintf(os.Stderr, "stylish: writing %s: %v\n", res.Path, err)
					hasErr = true
				}
			} else {
				fmt.Print(res.Formatted)
			}
		}
	}

	fmt.Fprint(os.Stderr, report.Render(sink))
	if hasErr {
		return exitFailure
	}
	if sink.HasErrors() {
		return exitDiagnostic
	}
	return exitOK
}

// defaultRegistry wires up the representative rule sample (spec §4.3);
// a real deployment's registry would be assembled by the (out-of-scope)
// build-time rule-catalog generator this module's registry replaces.
func defaultRegistry() *rules.Registry {
	r := rules.NewRegistry()
	r.RegisterLint(rules.DocRequired())
	r.RegisterLint(rules.AmbiguousTrailingClosureOverloads())
	r.RegisterLint(rules.LowerCamelCase())
	r.RegisterLint(rules.NoLeadingUnderscores())
	r.RegisterLint(rules.OnlyOneTrailingClosure())
	r.RegisterLint(rules.DocCommentStructureValidation())
	r.RegisterFormat(rules.NoParensAroundConditions())
	r.RegisterFormat(rules.UseWhereInFor())
	r.RegisterFormat(rules.ShorthandTypeNames())
	return r
}
