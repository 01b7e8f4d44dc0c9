package rules

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/exp/slices"

	"github.com/stylish-lang/stylish/syntax"
	"github.com/stylish-lang/stylish/token"
)

// This file is the "representative sample" spec §4.3 calls for: the
// rule catalog itself is data (a build of this module would register
// rules generated from an external list), but these nine pin down the
// ambiguous cases the spec's scenarios (S2, S3, S5, S6) exercise.

// ---- doc-required --------------------------------------------------

// docRequiredRule warns when a public declaration with no override
// modifier carries no leading doc comment.
type docRequiredRule struct{}

func DocRequired() LintRule { return docRequiredRule{} }

func (docRequiredRule) Tag() string { return "doc-required" }

func (docRequiredRule) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.FuncDecl, syntax.InitDecl, syntax.EnumDecl, syntax.StructDecl, syntax.VarDecl}
}

func (docRequiredRule) Check(n *syntax.Node, ctx *Context) {
	if !hasModifier(n, "public") || hasModifier(n, "override") {
		return
	}
	first := n.FirstToken()
	for _, p := range first.Leading() {
		if p.Kind.IsDoc() {
			return
		}
	}
	ctx.Warnf(n, "doc-required", "public declaration requires a doc comment")
}

func hasModifier(n *syntax.Node, text string) bool {
	for _, c := range n.Children {
		tok, ok := syntax.AsToken(c)
		if !ok {
			break // modifiers always precede the first structural node.
		}
		if tok.Text() == text {
			return true
		}
	}
	return false
}

// ---- no-parens-around-conditions -----------------------------------

// noParensAroundConditionsRule strips a redundant parenthesization of an
// if-statement's condition, unless the parenthesized expression is a
// call with a trailing closure (removing the parens there would change
// how the trailing closure parses).
type noParensAroundConditionsRule struct{}

func NoParensAroundConditions() FormatRule { return noParensAroundConditionsRule{} }

func (noParensAroundConditionsRule) Tag() string { return "no-parens-around-conditions" }

func (r noParensAroundConditionsRule) Rewrite(root *syntax.Node, ctx *Context) *syntax.Node {
	syntax.Walk(root, func(n *syntax.Node) {
		if n.Kind != syntax.IfStmt {
			return
		}
		for i, c := range n.Children {
			cond, ok := syntax.AsNode(c)
			if !ok || cond.Kind != syntax.ParenExpr {
				continue
			}
			inner, ok := syntax.AsNode(cond.Children[1])
			if ok && isTrailingClosureCall(inner) {
				continue
			}
			n.Children[i] = cond.Children[1]
			ctx.Warnf(n, "no-parens-around-conditions", "remove parentheses around this expression")
			break
		}
	}, nil)
	return root
}

func isTrailingClosureCall(n *syntax.Node) bool {
	if n.Kind != syntax.CallExpr {
		return false
	}
	for _, c := range n.Children {
		if child, ok := syntax.AsNode(c); ok && child.Kind == syntax.ClosureExpr {
			return true
		}
	}
	return false
}

// ---- use-where-in-for ------------------------------------------------

// useWhereInForRule rewrites `for x in xs { if cond { body } }` and the
// `for x in xs { guard cond else { continue } ... }` shape into
// `for x in xs where cond { body }`.
type useWhereInForRule struct{}

func UseWhereInFor() FormatRule { return useWhereInForRule{} }

func (useWhereInForRule) Tag() string { return "use-where-in-for" }

func (r useWhereInForRule) Rewrite(root *syntax.Node, ctx *Context) *syntax.Node {
	syntax.Walk(root, func(n *syntax.Node) {
		if n.Kind != syntax.ForInStmt {
			return
		}
		if _, ok := findNodeOfKind(n, syntax.WhereClause); ok {
			return
		}
		block, ok := findNodeOfKind(n, syntax.Block)
		if !ok || len(block.Children) < 3 {
			return
		}

		if guard, ok := syntax.AsNode(block.Children[1]); ok && guard.Kind == syntax.GuardStmt {
			r.rewriteGuardShape(n, block, guard, ctx)
			return
		}

		if len(block.Children) != 3 {
			return
		}
		ifStmt, ok := syntax.AsNode(block.Children[1])
		if !ok || ifStmt.Kind != syntax.IfStmt {
			return
		}
		if _, hasElse := findToken(ifStmt, "else"); hasElse {
			return
		}
		cond, ok := findConditionOf(ifStmt)
		if !ok {
			return
		}
		innerBlock, ok := findNodeOfKind(ifStmt, syntax.Block)
		if !ok {
			return
		}

		r.insertWhere(n, block, innerBlock, cond, ctx, "use 'where' instead of a guarding if statement")
	}, nil)
	return root
}

// rewriteGuardShape handles `for x in xs { guard cond else { continue }
// rest... }`: cond becomes the loop's where-clause and rest (the
// statements following the guard) becomes the new block body.
func (r useWhereInForRule) rewriteGuardShape(n, block, guard *syntax.Node, ctx *Context) {
	cond, ok := guardContinueCondition(guard)
	if !ok {
		return
	}

	rest := make([]syntax.Element, 0, len(block.Children)-1)
	rest = append(rest, block.Children[0])
	rest = append(rest, block.Children[2:]...)
	newBlock := &syntax.Node{Kind: syntax.Block, Children: rest}

	r.insertWhere(n, block, newBlock, cond, ctx, "use 'where' instead of a guard statement")
}

// insertWhere splices a WhereClause built from cond right before old
// (the ForInStmt's current Block), replacing old with replacement.
func (r useWhereInForRule) insertWhere(n, old, replacement *syntax.Node, cond syntax.Element, ctx *Context, msg string) {
	whereTok := ctx.Tokens.New(token.Keyword, "where", nil, nil)
	where := &syntax.Node{Kind: syntax.WhereClause, Children: []syntax.Element{syntax.Tok(whereTok), cond}}

	blockIdx := nodeIndex(n, old)
	n.Children = append(n.Children[:blockIdx], append([]syntax.Element{where}, n.Children[blockIdx:]...)...)
	n.Children[blockIdx+1] = replacement

	ctx.Warnf(n, "use-where-in-for", msg)
}

// guardContinueCondition reports the condition of guard if its else
// branch is exactly a bare `continue` statement, the one shape
// use-where-in-for is allowed to fold into a where-clause.
func guardContinueCondition(guard *syntax.Node) (syntax.Element, bool) {
	for i, c := range guard.Children {
		tok, ok := syntax.AsToken(c)
		if !ok || tok.Text() != "guard" || i+1 >= len(guard.Children) {
			continue
		}
		elseBlock, ok := findNodeOfKind(guard, syntax.Block)
		if !ok || len(elseBlock.Children) != 3 {
			return nil, false
		}
		cont, ok := syntax.AsNode(elseBlock.Children[1])
		if !ok || cont.Kind != syntax.ContinueStmt || len(cont.Children) != 1 {
			return nil, false // not a bare "continue" with no label/value.
		}
		return guard.Children[i+1], true
	}
	return nil, false
}

// findConditionOf returns an IfStmt's condition element: the child right
// after its "if" token.
func findConditionOf(n *syntax.Node) (syntax.Element, bool) {
	for i, c := range n.Children {
		if tok, ok := syntax.AsToken(c); ok && tok.Text() == "if" && i+1 < len(n.Children) {
			return n.Children[i+1], true
		}
	}
	return nil, false
}

func nodeIndex(parent *syntax.Node, child *syntax.Node) int {
	for i, c := range parent.Children {
		if n, ok := syntax.AsNode(c); ok && n == child {
			return i
		}
	}
	return -1
}

// findToken and findNodeOfKind are shared with package builder's rule
// table; duplicated here (rather than exported from builder) to avoid a
// rules -> builder import for two ten-line helpers.
func findToken(n *syntax.Node, text string) (tok interface {
	Text() string
}, ok bool) {
	for _, c := range n.Children {
		if t, isTok := syntax.AsToken(c); isTok && t.Text() == text {
			return t, true
		}
	}
	return nil, false
}

func findNodeOfKind(n *syntax.Node, kind syntax.Kind) (*syntax.Node, bool) {
	for _, c := range n.Children {
		if child, ok := syntax.AsNode(c); ok && child.Kind == kind {
			return child, true
		}
	}
	return nil, false
}

// ---- ambiguous-trailing-closure-overloads ---------------------------

// ambiguousTrailingClosureOverloadsRule flags overload groups, in a
// single declaration scope, of two or more functions whose sole
// parameter is a closure type.
type ambiguousTrailingClosureOverloadsRule struct{}

func AmbiguousTrailingClosureOverloads() LintRule { return ambiguousTrailingClosureOverloadsRule{} }

func (ambiguousTrailingClosureOverloadsRule) Tag() string {
	return "ambiguous-trailing-closure-overloads"
}

func (ambiguousTrailingClosureOverloadsRule) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.File, syntax.Block}
}

func (r ambiguousTrailingClosureOverloadsRule) Check(n *syntax.Node, ctx *Context) {
	groups := map[string][]*syntax.Node{}
	for _, c := range n.Children {
		decl, ok := syntax.AsNode(c)
		if !ok || decl.Kind != syntax.FuncDecl {
			continue
		}
		if !soleParameterIsClosure(decl) {
			continue
		}
		name := funcBaseName(decl)
		groups[name] = append(groups[name], decl)
	}

	// Map iteration order is randomized; sort the overload names so
	// diagnostics come out in a stable, file-order-independent sequence.
	names := make([]string, 0, len(groups))
	for name := range groups {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		decls := groups[name]
		if len(decls) < 2 {
			continue
		}
		for _, decl := range decls {
			ctx.Warnf(decl, "ambiguous-trailing-closure-overloads",
				"overload of %q is ambiguous at trailing-closure call sites", name)
		}
	}
}

func funcBaseName(decl *syntax.Node) string {
	for i, c := range decl.Children {
		if tok, ok := syntax.AsToken(c); ok && tok.Text() == "func" && i+1 < len(decl.Children) {
			if name, ok := syntax.AsToken(decl.Children[i+1]); ok {
				return name.Text()
			}
		}
	}
	return ""
}

func soleParameterIsClosure(decl *syntax.Node) bool {
	params, ok := findNodeOfKind(decl, syntax.ParameterClause)
	if !ok {
		return false
	}
	var only *syntax.Node
	for _, c := range params.Children {
		p, ok := syntax.AsNode(c)
		if !ok || p.Kind != syntax.Parameter {
			continue
		}
		if only != nil {
			return false // more than one parameter.
		}
		only = p
	}
	if only == nil {
		return false
	}
	ann, ok := findNodeOfKind(only, syntax.TypeAnnotation)
	if !ok || len(ann.Children) < 2 {
		return false
	}
	typ, ok := syntax.AsNode(ann.Children[1])
	return ok && typ.Tag == "ClosureType"
}

// ---- shorthand-type-names --------------------------------------------

// shorthandTypeNamesRule rewrites Array<T>, Dictionary<K,V> and
// Optional<T> to their bracket/optional shorthand, except when the long
// form is itself the base of a member-type reference.
type shorthandTypeNamesRule struct{}

func ShorthandTypeNames() FormatRule { return shorthandTypeNamesRule{} }

func (shorthandTypeNamesRule) Tag() string { return "shorthand-type-names" }

func (r shorthandTypeNamesRule) Rewrite(root *syntax.Node, ctx *Context) *syntax.Node {
	r.walk(root, ctx, false)
	return root
}

// walk recurses with isMemberBase tracking whether n is itself the base
// expression of an enclosing MemberTypeExpr, the one case the rule must
// not rewrite.
func (r shorthandTypeNamesRule) walk(n *syntax.Node, ctx *Context, isMemberBase bool) {
	if n.Kind == syntax.IdentTypeExpr && n.Tag == "Generic" && !isMemberBase {
		if rewritten, ok := r.rewriteOne(n, ctx); ok {
			*n = *rewritten
			return
		}
	}
	for i, c := range n.Children {
		child, ok := syntax.AsNode(c)
		if !ok {
			continue
		}
		childIsBase := n.Kind == syntax.MemberTypeExpr && i == 0
		r.walk(child, ctx, childIsBase)
	}
}

func (r shorthandTypeNamesRule) rewriteOne(n *syntax.Node, ctx *Context) (*syntax.Node, bool) {
	name, ok := n.TokenAt(0)
	if !ok {
		return nil, false
	}
	args, ok := findNodeOfKind(n, syntax.GenericArgumentClause)
	if !ok {
		return nil, false
	}
	typeArgs := args.Nodes()

	lbrack := ctx.Tokens.New(token.Punctuation, "[", nil, nil)
	rbrack := ctx.Tokens.New(token.Punctuation, "]", nil, nil)

	switch name.Text() {
	case "Array":
		if len(typeArgs) != 1 {
			return nil, false
		}
		ctx.Warnf(n, "shorthand-type-names", "use array type shorthand form")
		return &syntax.Node{Kind: syntax.ArrayType, Children: []syntax.Element{
			syntax.Tok(lbrack), typeArgs[0], syntax.Tok(rbrack),
		}}, true

	case "Dictionary":
		if len(typeArgs) != 2 {
			return nil, false
		}
		colon := ctx.Tokens.New(token.Punctuation, ":", nil, nil)
		ctx.Warnf(n, "shorthand-type-names", "use dictionary type shorthand form")
		return &syntax.Node{Kind: syntax.DictionaryType, Children: []syntax.Element{
			syntax.Tok(lbrack), typeArgs[0], syntax.Tok(colon), typeArgs[1], syntax.Tok(rbrack),
		}}, true

	case "Optional":
		if len(typeArgs) != 1 {
			return nil, false
		}
		q := ctx.Tokens.New(token.Punctuation, "?", nil, nil)
		ctx.Warnf(n, "shorthand-type-names", "use optional type shorthand form")
		return &syntax.Node{Kind: syntax.OptionalType, Children: []syntax.Element{typeArgs[0], syntax.Tok(q)}}, true
	}
	return nil, false
}

// ---- lower-camel-case -------------------------------------------------

type lowerCamelCaseRule struct{}

func LowerCamelCase() LintRule { return lowerCamelCaseRule{} }

func (lowerCamelCaseRule) Tag() string { return "lower-camel-case" }

func (lowerCamelCaseRule) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.Declarator, syntax.Parameter, syntax.EnumCaseElement, syntax.FuncDecl}
}

func (lowerCamelCaseRule) Check(n *syntax.Node, ctx *Context) {
	name, ok := declaredNameTok(n)
	if !ok || name.Text() == "" {
		return
	}
	text := name.Text()
	r := []rune(text)
	if unicode.IsUpper(r[0]) {
		ctx.Warnf(n, "lower-camel-case", "%q should start with a lower-case letter", text)
		return
	}
	if strings.Contains(text[1:], "_") {
		ctx.Warnf(n, "lower-camel-case", "%q should not contain an internal underscore", text)
	}
}

// declaredNameTok returns the identifier token a declaration-like node
// introduces: a Declarator's/Parameter's/EnumCaseElement's first token,
// or a FuncDecl's name (the token right after "func").
func declaredNameTok(n *syntax.Node) (token.Token, bool) {
	if n.Kind == syntax.FuncDecl {
		for i, c := range n.Children {
			if tok, ok := syntax.AsToken(c); ok && tok.Text() == "func" && i+1 < len(n.Children) {
				return syntax.AsToken(n.Children[i+1])
			}
		}
		return token.Token{}, false
	}
	return n.TokenAt(0)
}

// ---- no-leading-underscores -------------------------------------------

type noLeadingUnderscoresRule struct{}

func NoLeadingUnderscores() LintRule { return noLeadingUnderscoresRule{} }

func (noLeadingUnderscoresRule) Tag() string { return "no-leading-underscores" }

func (noLeadingUnderscoresRule) Kinds() []syntax.Kind {
	return []syntax.Kind{syntax.Declarator, syntax.Parameter, syntax.EnumCaseElement, syntax.FuncDecl}
}

func (noLeadingUnderscoresRule) Check(n *syntax.Node, ctx *Context) {
	name, ok := declaredNameTok(n)
	if !ok {
		return
	}
	text := name.Text()
	if len(text) > 1 && text[0] == '_' {
		ctx.Warnf(n, "no-leading-underscores", "%q should not start with an underscore", text)
	}
}

// ---- only-one-trailing-closure -----------------------------------------

type onlyOneTrailingClosureRule struct{}

func OnlyOneTrailingClosure() LintRule { return onlyOneTrailingClosureRule{} }

func (onlyOneTrailingClosureRule) Tag() string { return "only-one-trailing-closure" }

func (onlyOneTrailingClosureRule) Kinds() []syntax.Kind { return []syntax.Kind{syntax.CallExpr} }

func (onlyOneTrailingClosureRule) Check(n *syntax.Node, ctx *Context) {
	var hasTrailing bool
	var args *syntax.Node
	for _, c := range n.Children {
		child, ok := syntax.AsNode(c)
		if !ok {
			continue
		}
		switch child.Kind {
		case syntax.ClosureExpr:
			hasTrailing = true
		case syntax.ArgumentList:
			args = child
		}
	}
	if !hasTrailing || args == nil {
		return
	}
	for _, c := range args.Children {
		arg, ok := syntax.AsNode(c)
		if !ok || arg.Kind != syntax.Argument {
			continue
		}
		for _, ac := range arg.Children {
			if v, ok := syntax.AsNode(ac); ok && v.Kind == syntax.ClosureExpr {
				ctx.Warnf(n, "only-one-trailing-closure", "call has both a trailing closure and a closure argument")
				return
			}
		}
	}
}

// ---- doc-comment-structure-validation -----------------------------------

type docCommentStructureRule struct{}

func DocCommentStructureValidation() LintRule { return docCommentStructureRule{} }

func (docCommentStructureRule) Tag() string { return "doc-comment-structure-validation" }

func (docCommentStructureRule) Kinds() []syntax.Kind { return []syntax.Kind{syntax.FuncDecl} }

var (
	docParamPattern = regexp.MustCompile(`(?m)^\s*-\s*Parameters?:?\s*$`)
	docParamLine    = regexp.MustCompile(`(?m)^\s*-\s*(?:Parameter\s+)?([A-Za-z_][A-Za-z0-9_]*)\s*:`)
	docReturnsLine  = regexp.MustCompile(`(?m)^\s*-\s*Returns\s*:`)
)

// mergedDocText concatenates every doc-comment trivia piece leading tok,
// with its "///" or "/**"..."*/" marker removed, into one block of text
// to run the structure checks against.
func mergedDocText(tok token.Token) string {
	var lines []string
	for _, p := range tok.Leading() {
		if p.Kind.IsDoc() {
			text := p.Text
			switch {
			case strings.HasPrefix(text, "///"):
				text = strings.TrimPrefix(text, "///")
			case strings.HasPrefix(text, "/**"):
				text = strings.TrimSuffix(strings.TrimPrefix(text, "/**"), "*/")
			}
			lines = append(lines, text)
		}
	}
	return strings.Join(lines, "\n")
}

func (docCommentStructureRule) Check(n *syntax.Node, ctx *Context) {
	doc := mergedDocText(n.FirstToken())
	if doc == "" {
		return
	}

	params := parameterNames(n)
	documented := map[string]bool{}
	for _, m := range docParamLine.FindAllStringSubmatch(doc, -1) {
		switch m[1] {
		case "Parameter", "Parameters", "Returns":
			continue // tag lines, not parameter entries.
		}
		documented[m[1]] = true
	}
	for _, p := range params {
		if !documented[p] {
			ctx.Warnf(n, "doc-comment-structure-validation", "parameter %q is not documented", p)
		}
	}
	for d := range documented {
		if !contains(params, d) {
			ctx.Warnf(n, "doc-comment-structure-validation", "documented parameter %q does not exist", d)
		}
	}

	usesPlural := docParamPattern.MatchString(doc) && strings.Contains(strings.ToLower(doc), "parameters")
	if usesPlural && len(params) == 1 {
		ctx.Warnf(n, "doc-comment-structure-validation", "use singular 'Parameter' for a single parameter")
	} else if !usesPlural && len(params) > 1 && docParamPattern.MatchString(doc) {
		ctx.Warnf(n, "doc-comment-structure-validation", "use plural 'Parameters' for multiple parameters")
	}

	hasReturnType := declaresReturnType(n)
	hasReturnsTag := docReturnsLine.MatchString(doc)
	switch {
	case hasReturnType && !hasReturnsTag:
		ctx.Warnf(n, "doc-comment-structure-validation", "missing '- Returns:' tag for declared return type")
	case !hasReturnType && hasReturnsTag:
		ctx.Warnf(n, "doc-comment-structure-validation", "'- Returns:' tag present but function returns nothing")
	}
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}

func parameterNames(decl *syntax.Node) []string {
	params, ok := findNodeOfKind(decl, syntax.ParameterClause)
	if !ok {
		return nil
	}
	var out []string
	for _, p := range params.Nodes() {
		if p.Kind != syntax.Parameter {
			continue
		}
		if tok, ok := p.TokenAt(0); ok {
			out = append(out, tok.Text())
		}
	}
	return out
}

func declaresReturnType(decl *syntax.Node) bool {
	_, ok := findToken(decl, "->")
	return ok
}
