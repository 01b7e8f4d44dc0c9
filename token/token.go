// Package token represents the terminal tokens of a syntax tree: their
// text, their kind, and the leading/trailing trivia attached to them.
//
// Tokens are produced by a parser (out of scope for this module, per
// spec §1 — source-text parsing into an AST is assumed to be a library
// capability); this package only fixes the shape a parser must hand us,
// plus the [ID]-keyed identity that the token-stream builder relies on
// to attach directives to specific tokens (spec §4.1, §9 "token identity
// as map key").
package token

import "github.com/stylish-lang/stylish/trivia"

// ID is a token's stable identity within a single syntax tree. IDs are
// assigned by a [Stream] in construction order and are never reused
// within that stream, so they are safe to use as map keys (spec §3,
// "Tokens have stable identity... they may be used as map keys").
type ID int

// Token is a terminal token: a span of source text together with its
// decorating trivia.
type Token struct {
	id     ID
	kind   Kind
	text   string
	offset int
	leading []trivia.Piece
	// trailing is trivia scanned after this token up to the end of its
	// line or the next token, whichever comes first; a newline run that
	// ends the line may be included, and the token-stream builder reads
	// one at the start of trailing trivia as the user's own line break.
	trailing []trivia.Piece
}

// ID returns the token's stable identity.
func (t Token) ID() ID { return t.id }

// Kind returns the token's syntactic category.
func (t Token) Kind() Kind { return t.kind }

// Text returns the token's literal source text, excluding trivia.
func (t Token) Text() string { return t.text }

// Offset returns the byte offset of this token's first character within
// the file, as given by the parser (spec §6, "source-location converter
// mapping byte offsets to (line, column)"). Zero for hand-built tokens
// that never set it.
func (t Token) Offset() int { return t.offset }

// End returns the byte offset just past this token's last character.
func (t Token) End() int { return t.offset + len(t.text) }

// Leading returns the trivia scanned before this token's first character.
func (t Token) Leading() []trivia.Piece { return t.leading }

// Trailing returns the trivia scanned after this token up to the next
// newline or token.
func (t Token) Trailing() []trivia.Piece { return t.trailing }

// IsZero reports whether t is the zero Token (no token at all, as
// opposed to a token with empty text).
func (t Token) IsZero() bool { return t.id == 0 }
