package builder

import (
	"github.com/stylish-lang/stylish/fmttoken"
	"github.com/stylish-lang/stylish/trivia"
)

// translateTrivia appends the formatting tokens that correspond to one
// token's leading or trailing trivia sequence (spec §4.1, "Trivia
// translation").
func translateTrivia(pieces []trivia.Piece, maxBlankLines int, out *[]fmttoken.Token) {
	for i := 0; i < len(pieces); i++ {
		p := pieces[i]
		switch {
		case p.Kind == trivia.LineComment || p.Kind == trivia.DocLineComment:
			appendComment(out, p.Kind, p.Text, false)
			if skipMergeableNewline(pieces, i, p.Kind) {
				i++ // swallow the single newline joining two doc lines.
				continue
			}
			*out = append(*out, fmttoken.NL())

		case p.Kind == trivia.BlockComment || p.Kind == trivia.DocBlockComment:
			hasSpace := i+1 < len(pieces) && (pieces[i+1].Kind == trivia.Spaces || pieces[i+1].Kind == trivia.Tabs)
			appendComment(out, p.Kind, p.Text, hasSpace)
			if i+1 < len(pieces) && pieces[i+1].Kind.IsNewlineRun() {
				*out = append(*out, fmttoken.NL())
			}

		case p.Kind.IsNewlineRun():
			n := p.NewlineCount()
			if n <= 1 {
				continue // single newlines are structural, not trivia-derived.
			}
			k := min(n-1, maxBlankLines)
			if k >= 1 {
				*out = append(*out, fmttoken.NLs(k))
			}

		default:
			// Spaces/Tabs in isolation: structural whitespace is
			// regenerated by the printer, so these are dropped.
		}
	}
}

// skipMergeableNewline reports whether pieces[i] is a doc-line comment
// immediately followed by exactly one newline and then another doc-line
// comment, meaning the connecting newline directive should be suppressed
// so the two comments end up adjacent in the output stream and merge
// (spec invariant 3). It always reports false for plain line comments,
// which are not merged and keep their newline.
func skipMergeableNewline(pieces []trivia.Piece, i int, kind trivia.Kind) bool {
	if kind != trivia.DocLineComment {
		return false
	}
	return i+2 < len(pieces) &&
		pieces[i+1].Kind == trivia.Newlines && pieces[i+1].Count == 1 &&
		pieces[i+2].Kind == kind
}

// appendComment pushes a comment token, merging it into the previous
// emitted token if that token is also a doc-line comment (spec's
// "Comment merging": "if the last emitted token is also a comment of
// the same doc-line kind, concatenate the new text into the previous
// comment in place").
func appendComment(out *[]fmttoken.Token, kind trivia.Kind, text string, hasTrailingSpace bool) {
	if n := len(*out); n > 0 {
		last := &(*out)[n-1]
		if kind == trivia.DocLineComment && last.Kind == fmttoken.Comment && last.CommentKind == kind {
			last.CommentText = last.CommentText + "\n" + text
			last.HasTrailingSpace = hasTrailingSpace
			return
		}
	}
	*out = append(*out, fmttoken.Cmt(kind, text, hasTrailingSpace))
}
