package token

import "github.com/stylish-lang/stylish/trivia"

// Stream is the ordered sequence of terminal tokens that make up one
// syntax tree, together with the ID allocator that gives every token its
// stable identity.
//
// A Stream is built once per file by the parser (external collaborator).
// Tokens already in it never change, but format rules append new tokens
// to it when they synthesize syntax (see rules.Context.Tokens), so every
// token of a rewritten tree still has an ID unique within the stream.
type Stream struct {
	tokens []Token
	nextID ID
}

// NewStream returns an empty token stream.
func NewStream() *Stream {
	return &Stream{nextID: 1}
}

// New appends a new token to the stream and returns it. The returned
// token's ID is unique within this stream.
func (s *Stream) New(kind Kind, text string, leading, trailing []trivia.Piece) Token {
	return s.NewAt(kind, text, 0, leading, trailing)
}

// NewAt is New plus an explicit byte offset for the token's first
// character, as reported by a real parser.
func (s *Stream) NewAt(kind Kind, text string, offset int, leading, trailing []trivia.Piece) Token {
	tok := Token{
		id:       s.nextID,
		kind:     kind,
		text:     text,
		offset:   offset,
		leading:  leading,
		trailing: trailing,
	}
	s.nextID++
	s.tokens = append(s.tokens, tok)
	return tok
}

// Tokens returns every token in this stream, in source order.
func (s *Stream) Tokens() []Token {
	return s.tokens
}

// Len returns the number of tokens in the stream.
func (s *Stream) Len() int {
	return len(s.tokens)
}
