package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stylish-lang/stylish/trivia"
)

func TestStreamAssignsStableIncreasingIDs(t *testing.T) {
	s := NewStream()
	a := s.New(Identifier, "foo", nil, nil)
	b := s.New(Punctuation, "(", nil, nil)
	require.NotEqual(t, a.ID(), b.ID())
	assert.Less(t, int(a.ID()), int(b.ID()))
	assert.Equal(t, 2, s.Len())
	assert.Equal(t, []Token{a, b}, s.Tokens())
}

func TestNewAtSetsOffsetAndEnd(t *testing.T) {
	s := NewStream()
	tok := s.NewAt(Identifier, "foobar", 10, nil, nil)
	assert.Equal(t, 10, tok.Offset())
	assert.Equal(t, 16, tok.End())
}

func TestNewDefaultsOffsetToZero(t *testing.T) {
	s := NewStream()
	tok := s.New(Identifier, "x", nil, nil)
	assert.Equal(t, 0, tok.Offset())
	assert.Equal(t, 1, tok.End())
}

func TestIsZero(t *testing.T) {
	var zero Token
	assert.True(t, zero.IsZero())

	s := NewStream()
	tok := s.New(Identifier, "", nil, nil)
	assert.False(t, tok.IsZero())
}

func TestLeadingAndTrailingTrivia(t *testing.T) {
	s := NewStream()
	leading := []trivia.Piece{trivia.Run(trivia.Newlines, 1)}
	trailing := []trivia.Piece{trivia.Comment(trivia.LineComment, "// trailer")}
	tok := s.New(Identifier, "x", leading, trailing)
	assert.Equal(t, leading, tok.Leading())
	assert.Equal(t, trailing, tok.Trailing())
}
