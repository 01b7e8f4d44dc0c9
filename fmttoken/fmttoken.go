// Package fmttoken defines the formatting-token ADT consumed by the
// pretty printer (spec §3, "Formatting token"). A token stream built by
// package builder is a flat []Token; groups are denoted by balanced
// Open/Close pairs rather than nesting in the Go value itself, mirroring
// how the teacher's experimental/dom package represents a document as a
// flat slice of tags with an implicit (but invariant-checked) bracket
// structure.
package fmttoken

import "github.com/stylish-lang/stylish/trivia"

// Kind tags the variant of a formatting token.
type Kind int

const (
	_ Kind = iota

	// Syntax carries a verbatim token's text. Trivia has already been
	// translated to explicit directives by this point.
	Syntax
	// Break is a soft break: n spaces if the enclosing group fits,
	// otherwise a newline plus current indentation.
	Break
	// Newline is a mandatory, unconditional newline.
	Newline
	// Newlines is k mandatory newlines, k >= 1, used to preserve blank
	// lines from the source.
	Newlines
	// Open begins a group.
	Open
	// Close ends the most recently opened group.
	Close
	// Comment carries a verbatim comment.
	Comment
)

// GroupKind distinguishes the two break disciplines a group can impose.
type GroupKind int

const (
	// Consistent means: if any break in the group fires, every break in
	// the group fires.
	Consistent GroupKind = iota
	// Inconsistent means: each break decides independently, based on
	// remaining room on the current line.
	Inconsistent
)

// Token is one entry in a formatting token stream.
//
// Only the fields relevant to Kind are meaningful; the zero value of the
// others is ignored by the printer.
type Token struct {
	Kind Kind

	// Break, Newlines.
	N int

	// Syntax.
	Text string

	// Open.
	GroupKind GroupKind
	Indent    int

	// Comment.
	CommentKind      trivia.Kind
	CommentText      string
	HasTrailingSpace bool
}

// Syn returns a Syntax token carrying the given verbatim text.
func Syn(text string) Token { return Token{Kind: Syntax, Text: text} }

// Brk returns a soft Break token of width n.
func Brk(n int) Token { return Token{Kind: Break, N: n} }

// NL returns a single mandatory Newline token.
func NL() Token { return Token{Kind: Newline} }

// NLs returns a token representing k mandatory newlines. k must be >= 1.
func NLs(k int) Token {
	if k <= 1 {
		return NL()
	}
	return Token{Kind: Newlines, N: k}
}

// OpenGroup returns an Open token beginning a group of the given kind,
// adding indent to the current indentation while the group is wrapping.
func OpenGroup(kind GroupKind, indent int) Token {
	return Token{Kind: Open, GroupKind: kind, Indent: indent}
}

// CloseGroup returns a Close token ending the innermost open group.
func CloseGroup() Token { return Token{Kind: Close} }

// Cmt returns a Comment token.
func Cmt(kind trivia.Kind, text string, hasTrailingSpace bool) Token {
	return Token{Kind: Comment, CommentKind: kind, CommentText: text, HasTrailingSpace: hasTrailingSpace}
}
