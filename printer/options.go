// Package printer implements the Oppen-style two-pass pretty printer
// described in spec §4.2: a measure pass computes each group's flat
// width, then an emit pass walks the stream again, deciding per-group
// and (for inconsistent groups) per-break whether to wrap, and finally
// renders text honoring the decided wrap points.
//
// The algorithm is grounded on the teacher's experimental/dom package,
// which implements the same two-pass (layoutFlat, then layoutBroken)
// discipline as a document-combinator library; this package generalizes
// it to also support Oppen's *inconsistent* (fill) break discipline,
// which the teacher's dom package does not need because protobuf
// source has no construct requiring independent per-break wrapping.
package printer

// IndentKind selects how indentation levels are rendered.
type IndentKind int

const (
	// Spaces renders each indentation column as a literal space.
	Spaces IndentKind = iota
	// Tabs renders indentation as tab characters, one per Width columns
	// of accumulated indent.
	Tabs
)

// Indentation configures how accumulated indent columns become literal
// leading whitespace on a wrapped line.
type Indentation struct {
	Kind IndentKind
	// Width is the column width of one tab character, used only when
	// Kind == Tabs, to convert an accumulated column count into a
	// number of tab characters.
	Width int
}

// LineEnding selects the physical line terminator the printer emits.
type LineEnding int

const (
	LF LineEnding = iota
	CRLF
)

func (e LineEnding) text() string {
	if e == CRLF {
		return "\r\n"
	}
	return "\n"
}

// Options controls rendering.
type Options struct {
	// MaxWidth is the configured line length. Zero selects the default
	// of 100; a negative value means unbounded.
	MaxWidth int

	Indentation Indentation

	LineEnding LineEnding
}

func (o Options) withDefaults() Options {
	if o.MaxWidth == 0 {
		o.MaxWidth = 100
	}
	if o.Indentation.Kind == Tabs && o.Indentation.Width == 0 {
		o.Indentation.Width = 2
	}
	return o
}
