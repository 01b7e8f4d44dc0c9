package builder

import (
	"github.com/stylish-lang/stylish/fmttoken"
	"github.com/stylish-lang/stylish/syntax"
	"github.com/stylish-lang/stylish/token"
)

// register walks n and, for every node kind with a directive rule (spec
// §4.1, "Directive placement rules (illustrative, not exhaustive)"),
// records the pre/post directives its tokens need. It never touches the
// token stream itself; emitNode replays these directives in source
// order on the second pass.
func (b *treeBuilder) register(n *syntax.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case syntax.File:
		b.registerStatementSeq(n.Children, false)

	case syntax.Block:
		b.registerBlock(n)

	case syntax.FuncDecl, syntax.InitDecl:
		b.registerFuncLike(n)

	case syntax.EnumDecl, syntax.StructDecl:
		b.registerTypeDecl(n)

	case syntax.IfStmt:
		b.registerIfStmt(n)

	case syntax.ForInStmt:
		b.registerForInStmt(n)

	case syntax.GuardStmt:
		b.registerGuardStmt(n)

	case syntax.ReturnStmt, syntax.BreakStmt, syntax.ContinueStmt:
		b.registerJumpStmt(n)

	case syntax.VarDecl:
		b.registerVarDecl(n)

	case syntax.Declarator:
		b.registerDeclarator(n)

	case syntax.ArgumentList:
		kind := fmttoken.Inconsistent
		if b.cfg.LineBreakBeforeEachArgument {
			kind = fmttoken.Consistent
		}
		b.delimitedList(n, kind, 2)

	case syntax.Argument:
		b.registerLabeled(n)

	case syntax.ParameterClause:
		b.delimitedList(n, fmttoken.Consistent, 2)

	case syntax.Parameter:
		b.registerParameter(n)

	case syntax.GenericParameterClause, syntax.GenericArgumentClause:
		b.delimitedList(n, fmttoken.Consistent, 2)

	case syntax.TupleExpr:
		b.delimitedList(n, fmttoken.Inconsistent, 2)

	case syntax.TypeAnnotation:
		// TypeAnnotation is ": Type" (the declared name lives on the
		// enclosing Declarator/Parameter), so the colon is the first
		// child.
		b.registerColonSeparated(n, 0)

	case syntax.DictionaryType:
		// DictionaryType is "Key: Value", so the colon sits between its
		// two type children.
		b.registerColonSeparated(n, 1)

	case syntax.WhereClause:
		b.registerWhereClause(n)

	case syntax.EnumCaseDecl:
		b.registerEnumCaseDecl(n)

	case syntax.EnumCaseElement:
		b.registerEnumCaseElement(n)

	case syntax.BinaryExpr:
		b.registerBinaryExpr(n)

	case syntax.Attribute:
		b.dirs.addPost(n.LastToken().ID(), fmttoken.Brk(1))
		b.recurseChildren(n)

	default:
		b.recurseChildren(n)
	}
}

// registerElement dispatches a child Element: recurse if it is a Node,
// otherwise it is a bare token with nothing further to register.
func (b *treeBuilder) registerElement(e syntax.Element) {
	if child, ok := syntax.AsNode(e); ok {
		b.register(child)
	}
}

func (b *treeBuilder) recurseChildren(n *syntax.Node) {
	for _, c := range n.Children {
		b.registerElement(c)
	}
}

// registerStatementSeq wraps each statement-like element of stmts in its
// own Open(Consistent, 0)/Close pair so its internal soft breaks have a
// local fit decision independent of the enclosing construct (spec §4.1,
// "statements at block scope... after each statement's last token emit
// newline"), and separates consecutive statements with a mandatory
// newline. leadBeforeFirst is true when the sequence is the body of a
// Block (the newline after "{" comes from the first statement's own
// leading newline) and false at file scope (no separator before the
// first top-level declaration).
func (b *treeBuilder) registerStatementSeq(stmts []syntax.Element, leadBeforeFirst bool) {
	for i, stmt := range stmts {
		first := syntax.FirstTokenOf(stmt)
		last := syntax.LastTokenOf(stmt)
		if i > 0 || leadBeforeFirst {
			b.dirs.addPre(first.ID(), fmttoken.NL())
		}
		b.dirs.addPre(first.ID(), fmttoken.OpenGroup(fmttoken.Consistent, 0))
		b.dirs.addPost(last.ID(), fmttoken.CloseGroup())
		b.registerElement(stmt)
	}
}

// registerBlock handles a brace-delimited statement sequence shared by
// function bodies, if/else branches, loops and guard bodies.
func (b *treeBuilder) registerBlock(n *syntax.Node) {
	lbrace, _ := n.TokenAt(0)
	rbrace, _ := n.TokenAt(len(n.Children) - 1)

	b.dirs.addPost(lbrace.ID(), fmttoken.OpenGroup(fmttoken.Consistent, 2))
	b.dirs.addPre(rbrace.ID(), fmttoken.CloseGroup(), fmttoken.NL())

	inner := n.Children[1 : len(n.Children)-1]
	b.registerStatementSeq(inner, true)
}

// findToken scans n's direct children for a punctuation/keyword token
// whose verbatim text equals text.
func findToken(n *syntax.Node, text string) (token.Token, bool) {
	for _, c := range n.Children {
		if tok, ok := syntax.AsToken(c); ok && tok.Text() == text {
			return tok, true
		}
	}
	return token.Token{}, false
}

// findNodeOfKind scans n's direct children for the first *Node of the
// given kind.
func findNodeOfKind(n *syntax.Node, kind syntax.Kind) (*syntax.Node, bool) {
	for _, c := range n.Children {
		if child, ok := syntax.AsNode(c); ok && child.Kind == kind {
			return child, true
		}
	}
	return nil, false
}

// registerFuncLike implements "function declarations: open(inconsistent,
// 2) before the signature, break(1) after the parameter list's closing
// delimiter and before the opening brace, close before the opening
// brace" (spec §4.1).
func (b *treeBuilder) registerFuncLike(n *syntax.Node) {
	first := n.FirstToken()
	b.dirs.addPre(first.ID(), fmttoken.OpenGroup(fmttoken.Inconsistent, 2))

	if kw, ok := findToken(n, "func"); ok {
		b.dirs.addPost(kw.ID(), fmttoken.Brk(1))
	}

	block, hasBlock := findNodeOfKind(n, syntax.Block)
	if hasBlock {
		lbrace, _ := block.TokenAt(0)
		b.dirs.addPre(lbrace.ID(), fmttoken.Brk(1), fmttoken.CloseGroup())
	} else {
		b.dirs.addPost(n.LastToken().ID(), fmttoken.CloseGroup())
	}

	b.recurseChildren(n)
}

// registerTypeDecl gives enum/struct declarations the same
// open-signature/body-block shape as a function declaration.
func (b *treeBuilder) registerTypeDecl(n *syntax.Node) {
	b.registerFuncLike(n)
}

// registerIfStmt implements "if/else statements: open(inconsistent, 3)
// around the condition, break(1) before the opening brace of each
// branch" (spec §4.1).
func (b *treeBuilder) registerIfStmt(n *syntax.Node) {
	ifTok, ok := findToken(n, "if")
	if !ok {
		ifTok = n.FirstToken()
	}
	b.dirs.addPre(ifTok.ID(), fmttoken.OpenGroup(fmttoken.Inconsistent, 3))
	b.dirs.addPost(ifTok.ID(), fmttoken.Brk(1))

	// Only the then-branch closes this IfStmt's own condition group; an
	// "else if" continuation is a nested IfStmt that registers (and
	// balances) its own group independently, and a trailing else block
	// needs no group at all since it has no condition to wrap.
	if block, ok := findNodeOfKind(n, syntax.Block); ok {
		lbrace, _ := block.TokenAt(0)
		b.dirs.addPre(lbrace.ID(), fmttoken.Brk(1), fmttoken.CloseGroup())
	}

	if elseTok, ok := findToken(n, "else"); ok {
		b.dirs.addPre(elseTok.ID(), fmttoken.Brk(1))
		b.dirs.addPost(elseTok.ID(), fmttoken.Brk(1))
	}

	b.recurseChildren(n)
}

// registerForInStmt implements the "for ... in ... where ... { }" break
// points: after "for" and after "in", plus the shared where-clause and
// block rules.
func (b *treeBuilder) registerForInStmt(n *syntax.Node) {
	first := n.FirstToken()
	b.dirs.addPre(first.ID(), fmttoken.OpenGroup(fmttoken.Inconsistent, 2))

	if forTok, ok := findToken(n, "for"); ok {
		b.dirs.addPost(forTok.ID(), fmttoken.Brk(1))
	}
	if inTok, ok := findToken(n, "in"); ok {
		b.dirs.addPre(inTok.ID(), fmttoken.Brk(1))
		b.dirs.addPost(inTok.ID(), fmttoken.Brk(1))
	}

	if block, ok := findNodeOfKind(n, syntax.Block); ok {
		lbrace, _ := block.TokenAt(0)
		b.dirs.addPre(lbrace.ID(), fmttoken.Brk(1), fmttoken.CloseGroup())
	}

	b.recurseChildren(n)
}

// registerGuardStmt implements "guard ... else { }".
func (b *treeBuilder) registerGuardStmt(n *syntax.Node) {
	first := n.FirstToken()
	b.dirs.addPre(first.ID(), fmttoken.OpenGroup(fmttoken.Inconsistent, 2))

	if guardTok, ok := findToken(n, "guard"); ok {
		b.dirs.addPost(guardTok.ID(), fmttoken.Brk(1))
	}
	if elseTok, ok := findToken(n, "else"); ok {
		b.dirs.addPre(elseTok.ID(), fmttoken.Brk(1))
		b.dirs.addPost(elseTok.ID(), fmttoken.Brk(1))
	}
	if block, ok := findNodeOfKind(n, syntax.Block); ok {
		lbrace, _ := block.TokenAt(0)
		b.dirs.addPre(lbrace.ID(), fmttoken.Brk(1), fmttoken.CloseGroup())
	}

	b.recurseChildren(n)
}

// registerJumpStmt implements "return-like unary keywords (return,
// break, continue)... each followed by break(1) when carrying a value".
func (b *treeBuilder) registerJumpStmt(n *syntax.Node) {
	if len(n.Children) < 2 {
		return
	}
	kw, ok := n.TokenAt(0)
	if !ok {
		return
	}
	b.dirs.addPost(kw.ID(), fmttoken.Brk(1))
	b.recurseChildren(n)
}

// registerVarDecl implements "trailing commas in declarators... followed
// by break(1)" for multi-declarator let/var statements.
func (b *treeBuilder) registerVarDecl(n *syntax.Node) {
	if kw, ok := n.TokenAt(0); ok {
		b.dirs.addPost(kw.ID(), fmttoken.Brk(1))
	}
	for _, c := range n.Children {
		if tok, ok := syntax.AsToken(c); ok && tok.Text() == "," {
			b.dirs.addPost(tok.ID(), fmttoken.Brk(1))
		}
	}
	b.recurseChildren(n)
}

// registerDeclarator implements "assignments... followed by break(1)"
// for a single name/type/initializer group.
func (b *treeBuilder) registerDeclarator(n *syntax.Node) {
	if eq, ok := findToken(n, "="); ok {
		b.dirs.addPre(eq.ID(), fmttoken.Brk(1))
		b.dirs.addPost(eq.ID(), fmttoken.Brk(1))
	}
	b.recurseChildren(n)
}

// registerParameter handles a function parameter's default-value
// assignment the same way a declarator's initializer is handled; the
// name/type colon is handled by the nested TypeAnnotation node.
func (b *treeBuilder) registerParameter(n *syntax.Node) {
	if eq, ok := findToken(n, "="); ok {
		b.dirs.addPre(eq.ID(), fmttoken.Brk(1))
		b.dirs.addPost(eq.ID(), fmttoken.Brk(1))
	}
	b.recurseChildren(n)
}

// registerLabeled implements an argument's "label: value" spacing.
func (b *treeBuilder) registerLabeled(n *syntax.Node) {
	if colon, ok := findToken(n, ":"); ok {
		b.dirs.addPost(colon.ID(), fmttoken.Brk(1))
	}
	b.recurseChildren(n)
}

// registerColonSeparated implements "type annotations after ':'...
// followed by break(1)" for both a declarator/parameter's type
// annotation and a dictionary type's key:value separator.
func (b *treeBuilder) registerColonSeparated(n *syntax.Node, colonIndex int) {
	if colon, ok := n.TokenAt(colonIndex); ok {
		b.dirs.addPost(colon.ID(), fmttoken.Brk(1))
	}
	b.recurseChildren(n)
}

// registerWhereClause implements "the generic 'where' keyword...
// followed by break(1)".
func (b *treeBuilder) registerWhereClause(n *syntax.Node) {
	if where, ok := n.TokenAt(0); ok {
		b.dirs.addPost(where.ID(), fmttoken.Brk(1))
	}
	b.recurseChildren(n)
}

// registerEnumCaseDecl implements "case a, b, c" spacing: break(1) after
// "case" and after every separating comma.
func (b *treeBuilder) registerEnumCaseDecl(n *syntax.Node) {
	if kw, ok := n.TokenAt(0); ok {
		b.dirs.addPost(kw.ID(), fmttoken.Brk(1))
	}
	for _, c := range n.Children {
		if tok, ok := syntax.AsToken(c); ok && tok.Text() == "," {
			b.dirs.addPost(tok.ID(), fmttoken.Brk(1))
		}
	}
	b.recurseChildren(n)
}

// registerEnumCaseElement implements a raw-value case's "= value".
func (b *treeBuilder) registerEnumCaseElement(n *syntax.Node) {
	if eq, ok := findToken(n, "="); ok {
		b.dirs.addPre(eq.ID(), fmttoken.Brk(1))
		b.dirs.addPost(eq.ID(), fmttoken.Brk(1))
	}
	b.recurseChildren(n)
}

// registerBinaryExpr puts a break(1) on each side of an infix operator,
// so a wrapped binary expression breaks before the operator with the
// operator leading the continuation line.
func (b *treeBuilder) registerBinaryExpr(n *syntax.Node) {
	if op, ok := n.TokenAt(1); ok {
		b.dirs.addPre(op.ID(), fmttoken.Brk(1))
		b.dirs.addPost(op.ID(), fmttoken.Brk(1))
	}
	b.recurseChildren(n)
}

// delimitedList implements the generic comma-separated bracketed list
// rule (spec §4.1): break(0) then open(kind, indent) right after the
// left delimiter, close then break(0) right before the right delimiter,
// and break(1) after every separating comma. Used for argument lists,
// parameter clauses, generic parameter/argument clauses and tuple
// literals/types.
func (b *treeBuilder) delimitedList(n *syntax.Node, kind fmttoken.GroupKind, indent int) {
	open, ok := n.TokenAt(0)
	if !ok {
		b.recurseChildren(n)
		return
	}
	closeTok, ok := n.TokenAt(len(n.Children) - 1)
	if !ok {
		b.recurseChildren(n)
		return
	}

	if b.cfg.RespectsExistingLineBreaks && opensWithNewline(open) {
		// The mandatory newline (rather than a soft break) lands inside
		// the group, so measure() marks the group "forced" and it
		// breaks regardless of whether its content would otherwise fit.
		b.dirs.addPost(open.ID(), fmttoken.OpenGroup(kind, indent), fmttoken.NL())
	} else {
		b.dirs.addPost(open.ID(), fmttoken.Brk(0), fmttoken.OpenGroup(kind, indent))
	}
	b.dirs.addPre(closeTok.ID(), fmttoken.CloseGroup(), fmttoken.Brk(0))

	for _, c := range n.Children {
		if tok, ok := syntax.AsToken(c); ok && tok.Text() == "," {
			b.dirs.addPost(tok.ID(), fmttoken.Brk(1))
		}
	}

	b.recurseChildren(n)
}

// opensWithNewline reports whether tok's trailing trivia begins with a
// newline run, meaning the user's source already placed a line break
// right after tok (builder.Config.RespectsExistingLineBreaks).
func opensWithNewline(tok token.Token) bool {
	trailing := tok.Trailing()
	return len(trailing) > 0 && trailing[0].Kind.IsNewlineRun()
}
