package printer

import (
	"errors"
	"strings"

	"github.com/stylish-lang/stylish/fmttoken"
)

// ErrUnbalancedGroups is the internal-invariant-violation error returned
// (spec §7) when a formatting-token stream has an Open with no matching
// Close, or vice versa.
var ErrUnbalancedGroups = errors.New("printer: unbalanced open/close groups")

// frame is one node of the tree recovered from a flat formatting-token
// stream: a leaf for every non-group token, and a frame with children
// for every Open...Close span.
//
// This mirrors the shape of the teacher's dom.tag (a flat slice plus a
// children count), but is built out as an actual tree since the fill
// (inconsistent-group) break discipline this package adds needs to look
// ahead to a sibling's precomputed width, which is far more natural to
// express over []*frame than over a flat slice with skip-counts.
type frame struct {
	tok      fmttoken.Token
	children []*frame

	// Set by measure().
	width  int
	forced bool
}

// buildTree recovers the group structure of a flat, balanced formatting
// token stream. The returned root is a synthetic, always-broken
// Consistent group holding the whole stream (spec invariant 2: "The
// printer sees a stream that begins at group depth 0 and ends at depth
// 0").
func buildTree(stream []fmttoken.Token) (*frame, error) {
	root := &frame{tok: fmttoken.OpenGroup(fmttoken.Consistent, 0)}
	stack := []*frame{root}
	for _, t := range stream {
		switch t.Kind {
		case fmttoken.Close:
			if len(stack) == 1 {
				return nil, ErrUnbalancedGroups
			}
			stack = stack[:len(stack)-1]
		case fmttoken.Open:
			f := &frame{tok: t}
			top := stack[len(stack)-1]
			top.children = append(top.children, f)
			stack = append(stack, f)
		default:
			top := stack[len(stack)-1]
			top.children = append(top.children, &frame{tok: t})
		}
	}
	if len(stack) != 1 {
		return nil, ErrUnbalancedGroups
	}
	return root, nil
}

// measure computes, for every frame, its total width as if the entire
// subtree were rendered flat (spec §4.2 step 1), and whether it contains
// a mandatory break, which "counts as infinite width" and forces every
// enclosing group to break (spec's edge case: "A newline inside a group
// forces that group, and all enclosing consistent groups, not to fit").
func measure(f *frame) (width int, forced bool) {
	switch f.tok.Kind {
	case fmttoken.Open:
		for _, c := range f.children {
			w, fc := measure(c)
			width += w
			forced = forced || fc
		}
	case fmttoken.Syntax:
		width = stringWidth(f.tok.Text)
	case fmttoken.Break:
		width = f.tok.N
	case fmttoken.Newline:
		forced = true
	case fmttoken.Newlines:
		forced = true
	case fmttoken.Comment:
		width = stringWidth(f.tok.CommentText)
		if f.tok.HasTrailingSpace {
			width++
		}
		forced = strings.Contains(f.tok.CommentText, "\n")
	}
	f.width, f.forced = width, forced
	return width, forced
}

// nextChunkWidth sums the flat widths of siblings[from:] up to (but not
// including) the next Break/Newline/Newlines entry, or the end of the
// slice. Used by the inconsistent (fill) break discipline to decide
// whether "the next chunk up to the next break would not fit in the
// remaining room" (spec §4.2).
func nextChunkWidth(siblings []*frame, from int) int {
	var total int
	for _, f := range siblings[from:] {
		switch f.tok.Kind {
		case fmttoken.Break, fmttoken.Newline, fmttoken.Newlines:
			return total
		default:
			total += f.width
		}
	}
	return total
}
