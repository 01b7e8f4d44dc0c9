package wslint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckNoMismatchesWhenIdentical(t *testing.T) {
	src := "let x = 1\nlet y = 2\n"
	assert.Empty(t, Check(src, src, 100))
}

func TestCheckDetectsTrailingWhitespace(t *testing.T) {
	original := "let x = 1   \n"
	formatted := "let x = 1\n"
	got := Check(original, formatted, 100)
	assert.Len(t, got, 1)
	assert.Equal(t, TrailingWhitespace, got[0].Kind)
	assert.Equal(t, 1, got[0].Line)
}

func TestCheckDetectsIndentationMismatch(t *testing.T) {
	original := "func f() {\n    return\n}\n"
	formatted := "func f() {\n  return\n}\n"
	got := Check(original, formatted, 100)
	assert.Len(t, got, 1)
	assert.Equal(t, Indentation, got[0].Kind)
	assert.Equal(t, 2, got[0].Line)
}

func TestCheckDetectsBlankLineMismatch(t *testing.T) {
	original := "let x = 1\n\n\nlet y = 2\n"
	formatted := "let x = 1\n\nlet y = 2\n"
	got := Check(original, formatted, 100)
	require := assert.New(t)
	require.NotEmpty(got)
	found := false
	for _, m := range got {
		if m.Kind == BlankLines {
			found = true
		}
	}
	require.True(found)
}

func TestCheckDetectsLineLengthOverflow(t *testing.T) {
	original := "let reallyLongVariableNameThatExceedsTheConfiguredWidth = 1\n"
	got := Check(original, original, 20)
	found := false
	for _, m := range got {
		if m.Kind == LineLength {
			found = true
			assert.Equal(t, 1, m.Line)
		}
	}
	assert.True(t, found)
}

func TestCheckIgnoresLineLengthWhenMaxWidthIsZero(t *testing.T) {
	original := "let reallyLongVariableNameThatExceedsAnyReasonableWidthLimit = 1\n"
	got := Check(original, original, 0)
	assert.Empty(t, got)
}

func TestToDiagnosticsSetsFileAndLevel(t *testing.T) {
	diags := ToDiagnostics("a.swift", []Mismatch{{Kind: TrailingWhitespace, Line: 3}})
	require := assert.New(t)
	require.Len(diags, 1)
	require.Equal("a.swift", diags[0].File)
	require.Equal(3, diags[0].Start.Line)
	require.Contains(diags[0].Message, "trailing whitespace")
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "trailing-whitespace", TrailingWhitespace.String())
	assert.Equal(t, "indentation", Indentation.String())
	assert.Equal(t, "blank-lines", BlankLines.String())
	assert.Equal(t, "line-length", LineLength.String())
}
