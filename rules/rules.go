// Package rules implements the rule pipeline (spec §4.3): a dispatch
// table that multiplexes many small lint/format rules over one AST
// traversal, collecting diagnostics and producing a rewritten tree.
package rules

import (
	"fmt"

	"github.com/stylish-lang/stylish/report"
	"github.com/stylish-lang/stylish/syntax"
	"github.com/stylish-lang/stylish/token"
	"github.com/tidwall/btree"
)

// Severity is how seriously a rule treats its own violations; most
// rules report Warning, matching every representative rule in spec
// §4.3.
type Severity = report.Level

// Context is threaded through every rule invocation for one file.
type Context struct {
	File    string
	Sink    *report.Sink
	Locator *report.Locator

	// Tokens is the same ID allocator the file's AST was built with, so
	// a format rule that synthesizes new syntax (a "where" keyword
	// introduced by use-where-in-for, a "[" "]" pair introduced by
	// shorthand-type-names) mints tokens with IDs unique within this
	// tree, as the builder's map-by-token-ID directives require.
	Tokens *token.Stream

	// Enabled reports whether the named rule is turned on for this run
	// (spec §6 config's per-rule "enabled" flags). A nil map means every
	// registered rule runs.
	Enabled map[string]bool

	// testFile is the memoized result of the suppression heuristic (spec
	// §4.3 "Suppression"): computed lazily by IsTestFile and cached here
	// so repeated queries across many rules don't re-scan imports.
	testFile *bool
	imports  []string
}

// NewContext returns a Context carrying the file's own source text (for
// diagnostic-position lookups), token allocator (for format-rule
// rewrites that synthesize new tokens) and top-level import names (used
// by the suppression heuristic).
func NewContext(file, source string, tokens *token.Stream, sink *report.Sink, enabled map[string]bool, imports []string) *Context {
	return &Context{
		File:    file,
		Sink:    sink,
		Locator: report.NewLocator(source),
		Tokens:  tokens,
		Enabled: enabled,
		imports: imports,
	}
}

// testModule is the designated import that marks a file as test code
// (spec §4.3: "the file's top-level imports include a designated test
// module").
const testModule = "XCTest"

// IsTestFile reports whether this file's imports mark it as test code,
// computing and caching the answer on first call.
func (c *Context) IsTestFile() bool {
	if c.testFile != nil {
		return *c.testFile
	}
	v := false
	for _, imp := range c.imports {
		if imp == testModule {
			v = true
			break
		}
	}
	c.testFile = &v
	return v
}

// Warnf reports a Warning-level diagnostic anchored at n, tagged with
// tag.
func (c *Context) Warnf(n *syntax.Node, tag, format string, args ...any) {
	c.report(report.Warning, n, tag, format, args...)
}

func (c *Context) report(level report.Level, n *syntax.Node, tag, format string, args ...any) {
	d := report.Diagnostic{
		Level:   level,
		Rule:    tag,
		Message: fmt.Sprintf(format, args...),
		File:    c.File,
	}
	if n != nil {
		if t := n.FirstToken(); !t.IsZero() {
			d.Start = c.position(t)
		}
		if t := n.LastToken(); !t.IsZero() {
			d.End = c.position(t)
		}
	}
	c.Sink.Report(d)
}

func (c *Context) position(t token.Token) report.Position {
	if c.Locator == nil {
		return report.Position{}
	}
	return c.Locator.Position(t.Offset())
}

// LintRule is a pure analysis that visits every node of one of its
// Kinds and may emit diagnostics. It must not mutate the tree.
type LintRule interface {
	Tag() string
	Kinds() []syntax.Kind
	Check(n *syntax.Node, ctx *Context)
}

// FormatRule is a whole-tree rewrite pass, run once in registration
// order, that may also diagnose.
type FormatRule interface {
	Tag() string
	Rewrite(root *syntax.Node, ctx *Context) *syntax.Node
}

// Registry is the pipeline's dispatch table: for each visited node
// kind, the ordered sequence of lint rules registered for it (spec
// §4.3, "The pipeline is constructed by listing, for each visited node
// kind, the ordered sequence of lint rules registered for it"), plus
// the ordered list of format rules. Keyed with a btree.Map rather than
// a built-in map so Tags() and the per-kind buckets both iterate in a
// fixed, reproducible order regardless of Go's randomized map
// iteration — needed for invariant 7, rule-interleaving determinism.
type Registry struct {
	lint   btree.Map[int, []LintRule]
	format []FormatRule
	byTag  btree.Map[string, struct{}]
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry { return &Registry{} }

// RegisterLint adds rule to the buckets for every kind it declares
// interest in, in call order (registration order is preserved within
// each bucket: spec §5, "for each visited node, lint rules are invoked
// in registration order").
func (r *Registry) RegisterLint(rule LintRule) {
	r.byTag.Set(rule.Tag(), struct{}{})
	for _, k := range rule.Kinds() {
		bucket, _ := r.lint.Get(int(k))
		r.lint.Set(int(k), append(bucket, rule))
	}
}

// RegisterFormat appends rule to the format-rule list.
func (r *Registry) RegisterFormat(rule FormatRule) {
	r.byTag.Set(rule.Tag(), struct{}{})
	r.format = append(r.format, rule)
}

// Tags returns every registered rule's tag, sorted.
func (r *Registry) Tags() []string {
	var out []string
	r.byTag.Scan(func(tag string, _ struct{}) bool {
		out = append(out, tag)
		return true
	})
	return out
}

func (r *Registry) enabled(ctx *Context, tag string) bool {
	if ctx.Enabled == nil {
		return true
	}
	v, ok := ctx.Enabled[tag]
	return !ok || v
}

// Lint walks root once, dispatching each visited node to every
// interested, enabled lint rule in registration order, then continuing
// into its children (spec §4.3). A rule that panics is caught and
// turned into an Error diagnostic instead of aborting the walk (spec's
// "Failure model").
func (r *Registry) Lint(root *syntax.Node, ctx *Context) {
	syntax.Walk(root, func(n *syntax.Node) {
		bucket, ok := r.lint.Get(int(n.Kind))
		if !ok {
			return
		}
		for _, rule := range bucket {
			if !r.enabled(ctx, rule.Tag()) {
				continue
			}
			if rule.Tag() != "" && ctx.IsTestFile() && isSuppressedForTests(rule) {
				continue
			}
			r.runLint(rule, n, ctx)
		}
	}, nil)
}

func (r *Registry) runLint(rule LintRule, n *syntax.Node, ctx *Context) {
	defer func() {
		if rec := recover(); rec != nil {
			ctx.Errorf(rule.Tag(), "internal failure: %v", rec)
		}
	}()
	rule.Check(n, ctx)
}

// Errorf reports an Error-level diagnostic not anchored to any node,
// used by the failure model and by format-rule rewrite errors.
func (c *Context) Errorf(tag, format string, args ...any) {
	c.Sink.Report(report.Diagnostic{
		Level:   report.Error,
		Rule:    tag,
		File:    c.File,
		Message: fmt.Sprintf(format, args...),
	})
}

// suppressible is implemented by rules that opt out of running against
// test files (spec §4.3 "Suppression"). Rules that don't implement it
// always run.
type suppressible interface{ SuppressedInTests() bool }

func isSuppressedForTests(rule LintRule) bool {
	s, ok := rule.(suppressible)
	return ok && s.SuppressedInTests()
}

// Format runs every registered format rule once, in registration
// order, each against the tree the previous one produced (spec §4.3:
// "Format rules are run as whole-tree rewrite passes, one at a time,
// in registration order"). A rule whose Rewrite panics is caught,
// reported, and skipped, leaving the tree unchanged for the next rule.
func (r *Registry) Format(root *syntax.Node, ctx *Context) *syntax.Node {
	for _, rule := range r.format {
		if !r.enabled(ctx, rule.Tag()) {
			continue
		}
		root = r.runFormat(rule, root, ctx)
	}
	return root
}

func (r *Registry) runFormat(rule FormatRule, root *syntax.Node, ctx *Context) (out *syntax.Node) {
	out = root
	defer func() {
		if rec := recover(); rec != nil {
			ctx.Errorf(rule.Tag(), "internal failure: %v", rec)
			out = root
		}
	}()
	return rule.Rewrite(root, ctx)
}
