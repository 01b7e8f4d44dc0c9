package main

import (
	"fmt"
	"os"

	"github.com/stylish-lang/stylish/builder"
	"github.com/stylish-lang/stylish/pipeline"
	"github.com/stylish-lang/stylish/syntax"
	"github.com/stylish-lang/stylish/token"
)

// Parser turns one file's source text into a syntax tree and the token
// allocator it was built with. Source-text parsing into an AST is an
// external collaborator this module does not implement (spec §1); a
// real deployment of this CLI links in a parser package that sets
// Parser at program init. Left unset, loadFiles fails fast with a clear
// error rather than silently producing an empty tree.
var Parser func(path, source string) (*syntax.Node, *token.Stream, []string, error)

func loadFiles(paths []string) ([]pipeline.File, error) {
	if Parser == nil {
		return nil, fmt.Errorf("no parser linked into this build (spec's external collaborator interface, §1)")
	}

	files := make([]pipeline.File, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		source := string(data)
		root, tokens, imports, err := Parser(path, source)
		if err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
		files = append(files, pipeline.File{
			Path:    path,
			Source:  source,
			Root:    root,
			Tokens:  tokens,
			Imports: imports,
		})
	}
	return files, nil
}

// dump prints either the formatting token stream (built with the default
// builder configuration) or the AST for every input file, skipping the
// rule pipeline and printer entirely (the --dump-tokens/--dump-tree
// debug flags).
func dump(files []pipeline.File, tree bool) int {
	for _, f := range files {
		fmt.Printf("==> %s\n", f.Path)
		if tree {
			dumpNode(f.Root, 0)
			continue
		}
		dumpTokens(f.Root)
	}
	return exitOK
}

func dumpNode(n *syntax.Node, depth int) {
	if n == nil {
		return
	}
	for i := 0; i < depth; i++ {
		fmt.Print("  ")
	}
	fmt.Println(n.Kind)
	for _, c := range n.Children {
		if child, ok := syntax.AsNode(c); ok {
			dumpNode(child, depth+1)
			continue
		}
		if tok, ok := syntax.AsToken(c); ok {
			for i := 0; i < depth+1; i++ {
				fmt.Print("  ")
			}
			fmt.Printf("%q\n", tok.Text())
		}
	}
}

func dumpTokens(n *syntax.Node) {
	for _, t := range builder.Build(n, builder.Config{}) {
		fmt.Printf("%+v\n", t)
	}
}
