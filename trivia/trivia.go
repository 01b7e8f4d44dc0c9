// Package trivia models the whitespace and comments that decorate syntax
// tokens: line comments, block comments, their doc-comment variants, and
// runs of spaces, tabs, and newlines of various flavors.
//
// Trivia is attached to the terminal tokens produced by a parser (out of
// scope for this module, per the formatter/linter's external interfaces);
// this package only defines the shape of that attachment.
package trivia

// Kind distinguishes the flavors of trivia a token can carry.
type Kind int

const (
	_ Kind = iota

	// LineComment is a "// ..." comment terminated by a newline.
	LineComment
	// DocLineComment is a "/// ..." comment terminated by a newline.
	DocLineComment
	// BlockComment is a "/* ... */" comment, which may span lines.
	BlockComment
	// DocBlockComment is a "/** ... */" comment, which may span lines.
	DocBlockComment

	// Spaces is a run of n U+0020 space characters.
	Spaces
	// Tabs is a run of n tab characters.
	Tabs
	// Newlines is a run of n U+000A line-feed characters.
	Newlines
	// CarriageReturns is a run of n U+000D characters, unpaired with a
	// following line feed.
	CarriageReturns
	// CarriageReturnLineFeeds is a run of n CRLF pairs.
	CarriageReturnLineFeeds
)

// IsComment reports whether k is one of the four comment kinds.
func (k Kind) IsComment() bool {
	switch k {
	case LineComment, DocLineComment, BlockComment, DocBlockComment:
		return true
	default:
		return false
	}
}

// IsDoc reports whether k is a doc-comment kind.
func (k Kind) IsDoc() bool {
	return k == DocLineComment || k == DocBlockComment
}

// IsNewlineRun reports whether k counts vertical whitespace.
func (k Kind) IsNewlineRun() bool {
	switch k {
	case Newlines, CarriageReturns, CarriageReturnLineFeeds:
		return true
	default:
		return false
	}
}

func (k Kind) String() string {
	switch k {
	case LineComment:
		return "line-comment"
	case DocLineComment:
		return "doc-line-comment"
	case BlockComment:
		return "block-comment"
	case DocBlockComment:
		return "doc-block-comment"
	case Spaces:
		return "spaces"
	case Tabs:
		return "tabs"
	case Newlines:
		return "newlines"
	case CarriageReturns:
		return "carriage-returns"
	case CarriageReturnLineFeeds:
		return "crlf"
	default:
		return "unknown"
	}
}

// Piece is a single run of trivia: either a comment with its literal text,
// or a run of n repetitions of some whitespace character/pair.
type Piece struct {
	Kind Kind

	// Text is the verbatim comment body, including its leading marker
	// ("//", "///", "/*"..."*/", "/**"..."*/"). Unused for whitespace kinds.
	Text string

	// Count is the number of repetitions for whitespace kinds. Unused
	// (and left at zero) for comment kinds.
	Count int
}

// Comment constructs a comment piece.
func Comment(kind Kind, text string) Piece {
	return Piece{Kind: kind, Text: text}
}

// Run constructs a whitespace-run piece.
func Run(kind Kind, count int) Piece {
	return Piece{Kind: kind, Count: count}
}

// NewlineCount returns how many line terminations this piece represents,
// regardless of which of the three newline-run kinds it is.
func (p Piece) NewlineCount() int {
	if p.Kind.IsNewlineRun() {
		return p.Count
	}
	return 0
}

// MergeDocLines concatenates the text of b onto a, producing a single
// doc-line-comment piece. Both a and b must be DocLineComment pieces.
//
// It joins texts the same way as the comment-merging invariant (spec §3
// invariant 3). The token-stream builder does that merging itself, on
// its formatting tokens, and does not call this function.
func MergeDocLines(a, b Piece) Piece {
	return Piece{Kind: DocLineComment, Text: a.Text + "\n" + b.Text}
}
