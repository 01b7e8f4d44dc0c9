package report

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnosticString(t *testing.T) {
	d := Diagnostic{
		Level:   Error,
		Rule:    "lower-camel-case",
		Message: "name should be lowerCamelCase",
		File:    "a.swift",
		Start:   Position{Line: 12, Column: 5},
		Notes:   []string{"rename to fooBar"},
	}
	want := "a.swift:12:5: error: name should be lowerCamelCase [lower-camel-case]\n  note: rename to fooBar"
	assert.Equal(t, want, d.String())
}

func TestDiagnosticStringWithoutRuleOrNotes(t *testing.T) {
	d := Diagnostic{
		Level:   Warning,
		Message: "trailing whitespace",
		File:    "b.swift",
		Start:   Position{Line: 1, Column: 1},
	}
	assert.Equal(t, "b.swift:1:1: warning: trailing whitespace", d.String())
}

func TestSinkDiagnosticsDeterministicOrder(t *testing.T) {
	s := NewSink()
	s.Report(Diagnostic{File: "b.swift", Start: Position{Line: 1, Column: 1}, Level: Warning})
	s.Report(Diagnostic{File: "a.swift", Start: Position{Line: 5, Column: 1}, Level: Error})
	s.Report(Diagnostic{File: "a.swift", Start: Position{Line: 2, Column: 9}, Level: Error})
	s.Report(Diagnostic{File: "a.swift", Start: Position{Line: 2, Column: 1}, Level: Warning})

	got := s.Diagnostics()
	assert.Len(t, got, 4)
	assert.Equal(t, "a.swift", got[0].File)
	assert.Equal(t, 2, got[0].Start.Line)
	assert.Equal(t, 1, got[0].Start.Column)
	assert.Equal(t, "a.swift", got[1].File)
	assert.Equal(t, 2, got[1].Start.Line)
	assert.Equal(t, 9, got[1].Start.Column)
	assert.Equal(t, "a.swift", got[2].File)
	assert.Equal(t, 5, got[2].Start.Line)
	assert.Equal(t, "b.swift", got[3].File)
}

func TestSinkHasErrors(t *testing.T) {
	s := NewSink()
	assert.False(t, s.HasErrors())
	s.Report(Diagnostic{Level: Warning})
	assert.False(t, s.HasErrors())
	s.Report(Diagnostic{Level: Error})
	assert.True(t, s.HasErrors())
}

func TestSinkErrorfAndMerge(t *testing.T) {
	s1 := NewSink()
	s1.Errorf("a.swift", "bad config: %s", "oops")
	assert.Len(t, s1.Diagnostics(), 1)
	assert.Equal(t, "bad config: oops", s1.Diagnostics()[0].Message)

	s2 := NewSink()
	s2.Report(Diagnostic{File: "a.swift", Level: Warning})
	s1.Merge(s2)
	assert.Len(t, s1.Diagnostics(), 2)

	// Merging a nil sink is a no-op.
	s1.Merge(nil)
	assert.Len(t, s1.Diagnostics(), 2)
}

func TestRender(t *testing.T) {
	s := NewSink()
	s.Report(Diagnostic{File: "a.swift", Level: Error, Message: "boom", Start: Position{Line: 1, Column: 1}})
	got := Render(s)
	assert.Equal(t, "a.swift:1:1: error: boom\n", got)
}
