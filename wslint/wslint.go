// Package wslint implements the whitespace linter (spec §4.4): given
// the user's original source text and the pretty-printed text for the
// same file, it reports every line where they disagree, classified by
// kind.
package wslint

import (
	"strings"

	"github.com/pmezard/go-difflib/difflib"
	"github.com/stylish-lang/stylish/report"
)

// Kind classifies why a line of the user's source disagrees with the
// pretty-printed form.
type Kind int

const (
	TrailingWhitespace Kind = iota
	Indentation
	BlankLines
	LineLength
)

func (k Kind) String() string {
	switch k {
	case TrailingWhitespace:
		return "trailing-whitespace"
	case Indentation:
		return "indentation"
	case BlankLines:
		return "blank-lines"
	case LineLength:
		return "line-length"
	default:
		return "unknown"
	}
}

// Mismatch is a single disagreement between the user's text and the
// pretty-printed text.
type Mismatch struct {
	Kind Kind
	Line int // 1-indexed, in the user's original text
	Want string
	Got  string
}

// Check compares original (U) against formatted (F) and returns every
// mismatch, classified (spec §4.4). maxWidth is the configured line
// length, used for the line-length overflow check against U.
func Check(original, formatted string, maxWidth int) []Mismatch {
	uLines := splitLines(original)
	fLines := splitLines(formatted)

	var out []Mismatch
	out = append(out, lineLengthOverflows(uLines, maxWidth)...)
	out = append(out, diffMismatches(uLines, fLines)...)
	return out
}

func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func lineLengthOverflows(uLines []string, maxWidth int) []Mismatch {
	if maxWidth <= 0 {
		return nil
	}
	var out []Mismatch
	for i, line := range uLines {
		if len([]rune(line)) > maxWidth {
			out = append(out, Mismatch{Kind: LineLength, Line: i + 1, Got: line})
		}
	}
	return out
}

// diffMismatches walks the line-level diff between U and F (via
// difflib's SequenceMatcher, grounded on the teacher's use of
// pmezard/go-difflib for textual comparison) and classifies each
// disagreement: a 1:1 "replace" op where both lines are equal once
// trailing whitespace is stripped is a trailing-whitespace mismatch; a
// 1:1 replace where both lines are equal once leading whitespace is
// normalized is an indentation mismatch; any "insert"/"delete" op
// touching only blank lines is a blank-lines mismatch.
func diffMismatches(uLines, fLines []string) []Mismatch {
	sm := difflib.NewMatcher(uLines, fLines)
	var out []Mismatch
	for _, op := range sm.GetOpCodes() {
		switch op.Tag {
		case 'e':
			continue
		case 'r':
			out = append(out, replaceMismatches(uLines, fLines, op)...)
		case 'd', 'i':
			out = append(out, blankLineMismatches(uLines, fLines, op)...)
		}
	}
	return out
}

func replaceMismatches(uLines, fLines []string, op difflib.OpCode) []Mismatch {
	var out []Mismatch
	n := op.I2 - op.I1
	if n != op.J2-op.J1 {
		// Unequal line counts within a replace block: treat as a
		// blank-line discrepancy (the common case for this shape is a
		// run of blank lines collapsing or expanding).
		return blankLineMismatches(uLines, fLines, op)
	}
	for k := 0; k < n; k++ {
		u, f := uLines[op.I1+k], fLines[op.J1+k]
		if u == f {
			continue
		}
		switch {
		case strings.TrimRight(u, " \t") == strings.TrimRight(f, " \t"):
			out = append(out, Mismatch{Kind: TrailingWhitespace, Line: op.I1 + k + 1, Want: f, Got: u})
		case strings.TrimLeft(u, " \t") == strings.TrimLeft(f, " \t"):
			out = append(out, Mismatch{Kind: Indentation, Line: op.I1 + k + 1, Want: f, Got: u})
		default:
			out = append(out, Mismatch{Kind: Indentation, Line: op.I1 + k + 1, Want: f, Got: u})
		}
	}
	return out
}

func blankLineMismatches(uLines, fLines []string, op difflib.OpCode) []Mismatch {
	if op.I1 < len(uLines) {
		return []Mismatch{{Kind: BlankLines, Line: op.I1 + 1}}
	}
	return []Mismatch{{Kind: BlankLines, Line: len(uLines)}}
}

// ToDiagnostics converts every mismatch into a Warning diagnostic in
// file, positioned at the mismatch's 1-indexed line (the column is
// always 1; whitespace mismatches are whole-line by nature).
func ToDiagnostics(file string, mismatches []Mismatch) []report.Diagnostic {
	out := make([]report.Diagnostic, 0, len(mismatches))
	for _, m := range mismatches {
		out = append(out, report.Diagnostic{
			Level:   report.Warning,
			Rule:    "whitespace-" + m.Kind.String(),
			File:    file,
			Start:   report.Position{Line: m.Line, Column: 1},
			Message: whitespaceMessage(m),
		})
	}
	return out
}

func whitespaceMessage(m Mismatch) string {
	switch m.Kind {
	case TrailingWhitespace:
		return "trailing whitespace"
	case Indentation:
		return "indentation does not match the formatted output"
	case BlankLines:
		return "blank-line count does not match the formatted output"
	case LineLength:
		return "line exceeds the configured line length"
	default:
		return "whitespace mismatch"
	}
}
