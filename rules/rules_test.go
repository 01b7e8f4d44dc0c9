package rules

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylish-lang/stylish/report"
	"github.com/stylish-lang/stylish/syntax"
	"github.com/stylish-lang/stylish/token"
)

func TestContextIsTestFileMemoizesImportCheck(t *testing.T) {
	ctx := NewContext("t.swift", "", token.NewStream(), report.NewSink(), nil, []string{"Foundation", "XCTest"})
	assert.True(t, ctx.IsTestFile())
	// Flip the backing slice; the cached bool must not change.
	ctx.imports = nil
	assert.True(t, ctx.IsTestFile())
}

func TestContextIsTestFileFalseWithoutXCTest(t *testing.T) {
	ctx := NewContext("t.swift", "", token.NewStream(), report.NewSink(), nil, []string{"Foundation"})
	assert.False(t, ctx.IsTestFile())
}

// recordingRule counts Check invocations, letting tests assert a
// Registry dispatched to it the expected number of times.
type recordingRule struct {
	tag   string
	kinds []syntax.Kind
	calls *int
}

func (r recordingRule) Tag() string            { return r.tag }
func (r recordingRule) Kinds() []syntax.Kind    { return r.kinds }
func (r recordingRule) Check(*syntax.Node, *Context) {
	*r.calls++
}

func TestRegistryLintDispatchesInRegistrationOrder(t *testing.T) {
	var order []string
	a := recordingOrderRule{tag: "a", kinds: []syntax.Kind{syntax.VarDecl}, order: &order}
	b := recordingOrderRule{tag: "b", kinds: []syntax.Kind{syntax.VarDecl}, order: &order}

	reg := NewRegistry()
	reg.RegisterLint(a)
	reg.RegisterLint(b)

	root := &syntax.Node{Kind: syntax.VarDecl}
	ctx := NewContext("t.swift", "", token.NewStream(), report.NewSink(), nil, nil)
	reg.Lint(root, ctx)

	assert.Equal(t, []string{"a", "b"}, order)
}

type recordingOrderRule struct {
	tag   string
	kinds []syntax.Kind
	order *[]string
}

func (r recordingOrderRule) Tag() string         { return r.tag }
func (r recordingOrderRule) Kinds() []syntax.Kind { return r.kinds }
func (r recordingOrderRule) Check(*syntax.Node, *Context) {
	*r.order = append(*r.order, r.tag)
}

func TestRegistryLintSkipsDisabledRules(t *testing.T) {
	calls := 0
	rule := recordingRule{tag: "x", kinds: []syntax.Kind{syntax.VarDecl}, calls: &calls}
	reg := NewRegistry()
	reg.RegisterLint(rule)

	root := &syntax.Node{Kind: syntax.VarDecl}
	ctx := NewContext("t.swift", "", token.NewStream(), report.NewSink(), map[string]bool{"x": false}, nil)
	reg.Lint(root, ctx)

	assert.Equal(t, 0, calls)
}

func TestRegistryLintVisitsOnlyDeclaredKinds(t *testing.T) {
	calls := 0
	rule := recordingRule{tag: "x", kinds: []syntax.Kind{syntax.VarDecl}, calls: &calls}
	reg := NewRegistry()
	reg.RegisterLint(rule)

	root := &syntax.Node{Kind: syntax.File, Children: []syntax.Element{
		&syntax.Node{Kind: syntax.FuncDecl},
		&syntax.Node{Kind: syntax.VarDecl},
	}}
	ctx := NewContext("t.swift", "", token.NewStream(), report.NewSink(), nil, nil)
	reg.Lint(root, ctx)

	assert.Equal(t, 1, calls)
}

// panickyRule always panics, exercising the failure model: a rule that
// panics must be caught and turned into an Error diagnostic rather than
// aborting the walk.
type panickyRule struct{}

func (panickyRule) Tag() string             { return "panicky" }
func (panickyRule) Kinds() []syntax.Kind    { return []syntax.Kind{syntax.VarDecl} }
func (panickyRule) Check(*syntax.Node, *Context) { panic("boom") }

func TestRegistryLintRecoversFromPanickingRule(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterLint(panickyRule{})

	root := &syntax.Node{Kind: syntax.VarDecl}
	sink := report.NewSink()
	ctx := NewContext("t.swift", "", token.NewStream(), sink, nil, nil)

	require.NotPanics(t, func() { reg.Lint(root, ctx) })

	diags := sink.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, report.Error, diags[0].Level)
	assert.Equal(t, "panicky", diags[0].Rule)
}

// suppressibleRule opts out of running on test files.
type suppressibleRule struct{ calls *int }

func (r suppressibleRule) Tag() string             { return "suppressible" }
func (r suppressibleRule) Kinds() []syntax.Kind    { return []syntax.Kind{syntax.VarDecl} }
func (r suppressibleRule) Check(*syntax.Node, *Context) { *r.calls++ }
func (suppressibleRule) SuppressedInTests() bool  { return true }

func TestRegistryLintSkipsSuppressibleRuleInTestFiles(t *testing.T) {
	calls := 0
	reg := NewRegistry()
	reg.RegisterLint(suppressibleRule{calls: &calls})

	root := &syntax.Node{Kind: syntax.VarDecl}
	ctx := NewContext("t.swift", "", token.NewStream(), report.NewSink(), nil, []string{"XCTest"})
	reg.Lint(root, ctx)

	assert.Equal(t, 0, calls)
}

func TestRegistryLintRunsSuppressibleRuleOutsideTestFiles(t *testing.T) {
	calls := 0
	reg := NewRegistry()
	reg.RegisterLint(suppressibleRule{calls: &calls})

	root := &syntax.Node{Kind: syntax.VarDecl}
	ctx := NewContext("t.swift", "", token.NewStream(), report.NewSink(), nil, nil)
	reg.Lint(root, ctx)

	assert.Equal(t, 1, calls)
}

// renamingFormatRule rewrites the root's Tag, so tests can observe
// chained application across registered format rules.
type renamingFormatRule struct {
	tag    string
	suffix string
}

func (r renamingFormatRule) Tag() string { return r.tag }
func (r renamingFormatRule) Rewrite(root *syntax.Node, ctx *Context) *syntax.Node {
	root.Tag += r.suffix
	return root
}

func TestRegistryFormatAppliesRulesInRegistrationOrder(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterFormat(renamingFormatRule{tag: "first", suffix: "a"})
	reg.RegisterFormat(renamingFormatRule{tag: "second", suffix: "b"})

	root := &syntax.Node{Kind: syntax.File}
	ctx := NewContext("t.swift", "", token.NewStream(), report.NewSink(), nil, nil)
	out := reg.Format(root, ctx)

	assert.Equal(t, "ab", out.Tag)
}

// panickyFormatRule always panics on Rewrite.
type panickyFormatRule struct{}

func (panickyFormatRule) Tag() string { return "panicky-format" }
func (panickyFormatRule) Rewrite(root *syntax.Node, ctx *Context) *syntax.Node {
	panic("boom")
}

func TestRegistryFormatRecoversAndLeavesTreeUnchanged(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterFormat(panickyFormatRule{})
	reg.RegisterFormat(renamingFormatRule{tag: "after", suffix: "x"})

	root := &syntax.Node{Kind: syntax.File, Tag: "orig"}
	sink := report.NewSink()
	ctx := NewContext("t.swift", "", token.NewStream(), sink, nil, nil)

	out := reg.Format(root, ctx)

	assert.Equal(t, "origx", out.Tag)
	require.Len(t, sink.Diagnostics(), 1)
	assert.Equal(t, report.Error, sink.Diagnostics()[0].Level)
}

func TestRegistryTagsSortedAcrossLintAndFormat(t *testing.T) {
	reg := NewRegistry()
	reg.RegisterFormat(renamingFormatRule{tag: "zzz"})
	reg.RegisterLint(recordingRule{tag: "aaa", kinds: []syntax.Kind{syntax.VarDecl}, calls: new(int)})

	assert.Equal(t, []string{"aaa", "zzz"}, reg.Tags())
}
