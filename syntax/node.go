// Package syntax is the minimal abstract syntax tree this module builds
// formatting tokens and diagnostics from.
//
// Source-text parsing into this tree is explicitly out of scope for the
// core (spec §1: "assumed to be a library capability"); this package
// only fixes the shape such a parser must hand the token-stream builder
// and rule pipeline. It follows design note §9(c): rather than an open
// class hierarchy with an overridable visit method per node kind, every
// node is the same concrete [Node] type carrying a [Kind] discriminator,
// and rules/printing dispatch off that discriminator through a table
// (see package rules) or an exhaustive switch.
package syntax

import "github.com/stylish-lang/stylish/token"

// Kind discriminates the grammatical production a [Node] represents.
type Kind int

const (
	_ Kind = iota

	File
	FuncDecl
	InitDecl
	Block
	IfStmt
	ElseClause
	ForInStmt
	GuardStmt
	ReturnStmt
	BreakStmt
	ContinueStmt
	ExprStmt
	VarDecl
	Declarator
	CallExpr
	ClosureExpr
	ArgumentList
	Argument
	ParameterClause
	Parameter
	GenericParameterClause
	GenericArgumentClause
	TypeAnnotation
	ArrayType
	DictionaryType
	OptionalType
	MemberTypeExpr
	IdentTypeExpr
	IdentExpr
	MemberExpr
	BinaryExpr
	UnaryExpr
	ParenExpr
	TupleExpr
	EnumDecl
	EnumCaseDecl
	EnumCaseElement
	StructDecl
	Attribute
	WhereClause
)

func (k Kind) String() string {
	names := [...]string{
		"", "File", "FuncDecl", "InitDecl", "Block", "IfStmt", "ElseClause",
		"ForInStmt", "GuardStmt", "ReturnStmt", "BreakStmt", "ContinueStmt",
		"ExprStmt", "VarDecl", "Declarator", "CallExpr", "ClosureExpr",
		"ArgumentList", "Argument", "ParameterClause", "Parameter",
		"GenericParameterClause", "GenericArgumentClause", "TypeAnnotation",
		"ArrayType", "DictionaryType", "OptionalType", "MemberTypeExpr",
		"IdentTypeExpr", "IdentExpr", "MemberExpr", "BinaryExpr", "UnaryExpr",
		"ParenExpr", "TupleExpr", "EnumDecl", "EnumCaseDecl", "EnumCaseElement",
		"StructDecl", "Attribute", "WhereClause",
	}
	if int(k) >= 0 && int(k) < len(names) {
		return names[k]
	}
	return "Unknown"
}

// Element is either a *Node or a token.Token: the two things that can
// appear as an ordered child of a node (spec §3: "Each node carries an
// ordered sequence of children (nodes or tokens)").
type Element interface {
	firstToken() token.Token
	lastToken() token.Token
}

// Node is a single syntax-tree node. Every grammatical production in the
// language is represented by the same Node type; Kind says which one,
// and Children holds its ordered nodes/tokens.
type Node struct {
	Kind     Kind
	Children []Element

	// Tag is a free-form slot rules/printing code can use to stash a
	// role for a child without inventing a new Kind (e.g. "then"/"else"
	// branch of an IfStmt, or the base-name of a declaration for
	// overload-grouping rules). It has no meaning to the builder or
	// printer.
	Tag string
}

func (n *Node) firstToken() token.Token {
	for _, c := range n.Children {
		if t := c.firstToken(); !t.IsZero() {
			return t
		}
	}
	return token.Token{}
}

func (n *Node) lastToken() token.Token {
	for i := len(n.Children) - 1; i >= 0; i-- {
		if t := n.Children[i].lastToken(); !t.IsZero() {
			return t
		}
	}
	return token.Token{}
}

// FirstToken returns the first terminal token reachable in source order.
func (n *Node) FirstToken() token.Token { return n.firstToken() }

// LastToken returns the last terminal token reachable in source order.
func (n *Node) LastToken() token.Token { return n.lastToken() }

// tokenElement adapts token.Token to the Element interface.
type tokenElement struct{ tok token.Token }

func (t tokenElement) firstToken() token.Token { return t.tok }
func (t tokenElement) lastToken() token.Token  { return t.tok }

// Tok wraps a token.Token so it can be placed in a Node's Children.
func Tok(t token.Token) Element { return tokenElement{t} }

// AsToken extracts the wrapped token.Token from an Element produced by
// [Tok], or the zero Token if e does not wrap one.
func AsToken(e Element) (token.Token, bool) {
	if te, ok := e.(tokenElement); ok {
		return te.tok, true
	}
	return token.Token{}, false
}

// AsNode extracts *Node from an Element, if e is one.
func AsNode(e Element) (*Node, bool) {
	n, ok := e.(*Node)
	return n, ok
}

// FirstTokenOf returns the first terminal token reachable from e in
// source order.
func FirstTokenOf(e Element) token.Token { return e.firstToken() }

// LastTokenOf returns the last terminal token reachable from e in
// source order.
func LastTokenOf(e Element) token.Token { return e.lastToken() }

// Tokens wraps each of toks with [Tok] and returns them as a new slice
// of Elements; a small ergonomic helper for hand-built trees.
func Tokens(toks ...token.Token) []Element {
	out := make([]Element, len(toks))
	for i, t := range toks {
		out[i] = Tok(t)
	}
	return out
}
