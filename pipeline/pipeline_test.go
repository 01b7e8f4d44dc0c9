package pipeline

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylish-lang/stylish/config"
	"github.com/stylish-lang/stylish/rules"
	"github.com/stylish-lang/stylish/syntax"
	"github.com/stylish-lang/stylish/token"
)

// letStmt builds a single "let name = value" VarDecl, the same minimal
// shape package builder's own tests use.
func letStmt(s *token.Stream, name, value string) *syntax.Node {
	let := s.New(token.Keyword, "let", nil, nil)
	id := s.New(token.Identifier, name, nil, nil)
	eq := s.New(token.Punctuation, "=", nil, nil)
	lit := s.New(token.IntegerLiteral, value, nil, nil)
	declarator := &syntax.Node{
		Kind:     syntax.Declarator,
		Children: []syntax.Element{syntax.Tok(id), syntax.Tok(eq), syntax.Tok(lit)},
	}
	return &syntax.Node{Kind: syntax.VarDecl, Children: []syntax.Element{syntax.Tok(let), declarator}}
}

func TestRunFormatsAndLintsAFile(t *testing.T) {
	s := token.NewStream()
	root := &syntax.Node{Kind: syntax.File, Children: []syntax.Element{letStmt(s, "Bad", "1")}}

	reg := rules.NewRegistry()
	reg.RegisterLint(rules.LowerCamelCase())

	files := []File{{Path: "a.swift", Source: "let Bad = 1\n", Root: root, Tokens: s}}
	results := Run(context.Background(), files, config.Default(), reg, Lint, 1)

	require.Len(t, results, 1)
	r := results[0]
	require.NoError(t, r.Err)
	assert.Equal(t, "let Bad = 1\n", r.Formatted)
	require.NotNil(t, r.Sink)
	diags := r.Sink.Diagnostics()
	require.Len(t, diags, 1)
	assert.Equal(t, "lower-camel-case", diags[0].Rule)
}

func TestRunFormatModeRunsFormatRulesBeforeLint(t *testing.T) {
	s := token.NewStream()
	arrayArg := &syntax.Node{Kind: syntax.IdentTypeExpr, Children: []syntax.Element{syntax.Tok(s.New(token.Identifier, "Int", nil, nil))}}
	lt := s.New(token.Punctuation, "<", nil, nil)
	gt := s.New(token.Punctuation, ">", nil, nil)
	genArgs := &syntax.Node{Kind: syntax.GenericArgumentClause, Children: []syntax.Element{syntax.Tok(lt), arrayArg, syntax.Tok(gt)}}
	generic := &syntax.Node{
		Kind: syntax.IdentTypeExpr, Tag: "Generic",
		Children: []syntax.Element{syntax.Tok(s.New(token.Identifier, "Array", nil, nil)), genArgs},
	}
	root := &syntax.Node{Kind: syntax.File, Children: []syntax.Element{generic}}

	reg := rules.NewRegistry()
	reg.RegisterFormat(rules.ShorthandTypeNames())

	// Source already matches the post-rewrite shape, so the whitespace
	// linter reports nothing and the only diagnostic is the format
	// rule's own.
	files := []File{{Path: "a.swift", Source: "[Int]", Root: root, Tokens: s}}
	results := Run(context.Background(), files, config.Default(), reg, Format, 1)

	require.Len(t, results, 1)
	r := results[0]
	require.NoError(t, r.Err)
	assert.Equal(t, "[Int]\n", r.Formatted)
	require.Len(t, r.Sink.Diagnostics(), 1)
	assert.Equal(t, "shorthand-type-names", r.Sink.Diagnostics()[0].Rule)
}

func TestRunLintModeDoesNotApplyFormatRules(t *testing.T) {
	s := token.NewStream()
	arrayArg := &syntax.Node{Kind: syntax.IdentTypeExpr, Children: []syntax.Element{syntax.Tok(s.New(token.Identifier, "Int", nil, nil))}}
	lt := s.New(token.Punctuation, "<", nil, nil)
	gt := s.New(token.Punctuation, ">", nil, nil)
	genArgs := &syntax.Node{Kind: syntax.GenericArgumentClause, Children: []syntax.Element{syntax.Tok(lt), arrayArg, syntax.Tok(gt)}}
	generic := &syntax.Node{
		Kind: syntax.IdentTypeExpr, Tag: "Generic",
		Children: []syntax.Element{syntax.Tok(s.New(token.Identifier, "Array", nil, nil)), genArgs},
	}
	root := &syntax.Node{Kind: syntax.File, Children: []syntax.Element{generic}}

	reg := rules.NewRegistry()
	reg.RegisterFormat(rules.ShorthandTypeNames())

	files := []File{{Path: "a.swift", Source: "Array<Int>", Root: root, Tokens: s}}
	results := Run(context.Background(), files, config.Default(), reg, Lint, 1)

	require.Len(t, results, 1)
	assert.Empty(t, results[0].Sink.Diagnostics())
}

func TestRunDisabledRuleIsNotApplied(t *testing.T) {
	s := token.NewStream()
	root := &syntax.Node{Kind: syntax.File, Children: []syntax.Element{letStmt(s, "Bad", "1")}}

	reg := rules.NewRegistry()
	reg.RegisterLint(rules.LowerCamelCase())

	cfg := config.Default()
	cfg.Rules = map[string]bool{"lower-camel-case": false}

	files := []File{{Path: "a.swift", Source: "let Bad = 1\n", Root: root, Tokens: s}}
	results := Run(context.Background(), files, cfg, reg, Lint, 1)

	assert.Empty(t, results[0].Sink.Diagnostics())
}

func TestRunProcessesFilesIndependentlyAndPreservesOrder(t *testing.T) {
	var files []File
	for _, name := range []string{"x", "y", "z"} {
		s := token.NewStream()
		root := &syntax.Node{Kind: syntax.File, Children: []syntax.Element{letStmt(s, name, "1")}}
		files = append(files, File{Path: name + ".swift", Root: root, Tokens: s})
	}

	results := Run(context.Background(), files, config.Default(), rules.NewRegistry(), Lint, 2)

	require.Len(t, results, 3)
	for i, name := range []string{"x", "y", "z"} {
		assert.Equal(t, name+".swift", results[i].Path)
		assert.NoError(t, results[i].Err)
		assert.Equal(t, "let "+name+" = 1\n", results[i].Formatted)
	}
}

func TestRunRecoversPanicPerFileWithoutAffectingOthers(t *testing.T) {
	goodStream := token.NewStream()
	good := letStmt(goodStream, "x", "1")
	goodRoot := &syntax.Node{Kind: syntax.File, Children: []syntax.Element{good}}

	files := []File{
		{Path: "bad.swift", Root: nil, Tokens: token.NewStream()},
		{Path: "good.swift", Root: goodRoot, Tokens: goodStream},
	}

	results := Run(context.Background(), files, config.Default(), rules.NewRegistry(), Lint, 2)

	require.Len(t, results, 2)
	assert.Error(t, results[0].Err)
	assert.Contains(t, results[0].Err.Error(), "bad.swift")

	require.NoError(t, results[1].Err)
	assert.Equal(t, "let x = 1\n", results[1].Formatted)
}
