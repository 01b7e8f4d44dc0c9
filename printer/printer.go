package printer

import (
	"strings"

	"github.com/stylish-lang/stylish/fmttoken"
)

// Print runs the Oppen two-pass algorithm over stream and returns the
// rendered text (spec §4.2: "print(stream, maxWidth) -> string").
func Print(stream []fmttoken.Token, opts Options) (string, error) {
	opts = opts.withDefaults()

	root, err := buildTree(stream)
	if err != nil {
		return "", err
	}
	measure(root)

	r := &renderer{opts: opts}
	r.fits = false // top-level group is always broken, per invariant 2.
	r.groupKind = fmttoken.Consistent
	r.emitChildren(root.children)
	return r.finish(), nil
}

// renderer holds the mutable state threaded through the emit pass: the
// current column, the indentation accumulated by enclosing groups, and
// whether the group we are directly inside of currently fits on the
// line (in which case all its direct breaks render as spaces).
type renderer struct {
	opts Options

	out strings.Builder

	column      int
	indentCols  int
	fits        bool
	groupKind   fmttoken.GroupKind

	pendingSpaces   int
	pendingNewlines int
}

func (r *renderer) emitChildren(children []*frame) {
	for i, f := range children {
		r.emitOne(children, i, f)
	}
}

func (r *renderer) emitOne(siblings []*frame, idx int, f *frame) {
	switch f.tok.Kind {
	case fmttoken.Syntax:
		r.write(f.tok.Text)

	case fmttoken.Comment:
		r.writeComment(f.tok)

	case fmttoken.Break:
		switch {
		case r.fits:
			r.addSpaces(f.tok.N)
		case r.groupKind == fmttoken.Inconsistent && r.fitsUntilNextBreak(siblings, idx+1, f.tok.N):
			r.addSpaces(f.tok.N)
		default:
			r.addNewlines(1)
		}

	case fmttoken.Newline:
		r.addNewlines(1)

	case fmttoken.Newlines:
		r.addNewlines(f.tok.N)

	case fmttoken.Open:
		r.emitGroup(f)
	}
}

// fitsUntilNextBreak implements the inconsistent-group fill discipline:
// a break renders as a space, even in a group that does not fit overall,
// so long as the run of content up to the next break would still fit in
// the remaining room on the current line.
func (r *renderer) fitsUntilNextBreak(siblings []*frame, from int, breakWidth int) bool {
	if r.opts.MaxWidth <= 0 {
		return true
	}
	chunk := nextChunkWidth(siblings, from)
	return r.column+breakWidth+chunk <= r.opts.MaxWidth
}

func (r *renderer) emitGroup(f *frame) {
	remaining := r.opts.MaxWidth - r.column
	broken := f.forced
	if r.opts.MaxWidth > 0 && f.width > remaining {
		broken = true
	}

	savedFits, savedKind, savedIndent := r.fits, r.groupKind, r.indentCols
	r.fits = !broken
	r.groupKind = f.tok.GroupKind
	r.indentCols += f.tok.Indent

	r.emitChildren(f.children)

	r.fits, r.groupKind, r.indentCols = savedFits, savedKind, savedIndent
}

// write flushes any pending newlines/spaces and then appends data,
// exactly as a Syntax token's verbatim text.
func (r *renderer) write(data string) {
	r.flushPending()
	r.out.WriteString(data)
	r.column += stringWidth(data)
}

// writeComment appends a comment's verbatim text, re-applying the
// current indentation prefix to every internal line of a block comment
// (spec §4.2: "preserving internal newlines with the current
// indentation prefix re-applied on each line for block comments").
func (r *renderer) writeComment(tok fmttoken.Token) {
	r.flushPending()
	lines := strings.Split(tok.CommentText, "\n")
	for i, line := range lines {
		if i > 0 {
			r.out.WriteString(r.opts.LineEnding.text())
			r.out.WriteString(r.indentText())
		}
		r.out.WriteString(line)
	}
	r.column = stringWidth(lines[len(lines)-1])
	if tok.HasTrailingSpace {
		r.pendingSpaces = 1
	}
}

// addSpaces and addNewlines accumulate additively: each formatting
// directive renders unconditionally and independently (spec §4.2), so
// e.g. an end-of-statement newline directive immediately followed by a
// translated blank-line newlines(k) directive must together produce
// 1+k newlines, not max(1, k).
func (r *renderer) addSpaces(n int) {
	r.pendingSpaces += n
}

func (r *renderer) addNewlines(n int) {
	r.pendingNewlines += n
	r.pendingSpaces = 0
}

// flushPending writes out any buffered newlines (each followed, on the
// last one, by the current indentation) or buffered spaces, clearing
// trailing whitespace at the end of a physical line by construction:
// spaces are simply never written before a newline (spec §4.2 edge
// case).
func (r *renderer) flushPending() {
	if r.pendingNewlines > 0 {
		for range r.pendingNewlines {
			r.out.WriteString(r.opts.LineEnding.text())
		}
		r.out.WriteString(r.indentText())
		r.column = r.indentCols
		r.pendingNewlines = 0
		r.pendingSpaces = 0
		return
	}
	for range r.pendingSpaces {
		r.out.WriteByte(' ')
	}
	r.column += r.pendingSpaces
	r.pendingSpaces = 0
}

func (r *renderer) indentText() string {
	if r.indentCols <= 0 {
		return ""
	}
	if r.opts.Indentation.Kind == Tabs {
		width := r.opts.Indentation.Width
		if width <= 0 {
			width = 1
		}
		return strings.Repeat("\t", r.indentCols/width)
	}
	return strings.Repeat(" ", r.indentCols)
}

// finish returns the accumulated text, ensuring it ends with exactly one
// line ending (spec's emitter "normalises line endings to a single
// configured form" and every printed file ends with a trailing newline).
func (r *renderer) finish() string {
	s := r.out.String()
	ending := r.opts.LineEnding.text()
	if !strings.HasSuffix(s, ending) {
		s += ending
	}
	return s
}
