package fmttoken

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/stylish-lang/stylish/trivia"
)

func TestConstructors(t *testing.T) {
	assert.Equal(t, Token{Kind: Syntax, Text: "foo"}, Syn("foo"))
	assert.Equal(t, Token{Kind: Break, N: 2}, Brk(2))
	assert.Equal(t, Token{Kind: Newline}, NL())
	assert.Equal(t, Token{Kind: Open, GroupKind: Inconsistent, Indent: 2}, OpenGroup(Inconsistent, 2))
	assert.Equal(t, Token{Kind: Close}, CloseGroup())
}

func TestNLsCollapsesToSingleNewline(t *testing.T) {
	assert.Equal(t, NL(), NLs(0))
	assert.Equal(t, NL(), NLs(1))
	assert.Equal(t, Token{Kind: Newlines, N: 3}, NLs(3))
}

func TestCmt(t *testing.T) {
	got := Cmt(trivia.LineComment, "// hi", true)
	assert.Equal(t, Comment, got.Kind)
	assert.Equal(t, trivia.LineComment, got.CommentKind)
	assert.Equal(t, "// hi", got.CommentText)
	assert.True(t, got.HasTrailingSpace)
}
