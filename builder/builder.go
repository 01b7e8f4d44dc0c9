// Package builder implements the token-stream builder (spec §4.1): a
// tree-walking transform from a syntax.Node to a flat []fmttoken.Token,
// annotating node-kind-specific break points and flushing each
// terminal token's trivia in source order.
package builder

import (
	"github.com/stylish-lang/stylish/fmttoken"
	"github.com/stylish-lang/stylish/syntax"
	"github.com/stylish-lang/stylish/token"
)

// Config controls the node-kind directive rules that are configurable
// per spec §6 (a subset of the full on-disk configuration; see package
// config for the rest).
type Config struct {
	// MaximumBlankLines caps how many of the user's blank lines survive
	// between constructs (spec §3 invariant 4). Default 1.
	MaximumBlankLines int

	// LineBreakBeforeEachArgument forces every call argument onto its
	// own line whenever the argument list's group breaks, rather than
	// filling multiple arguments per line.
	LineBreakBeforeEachArgument bool

	// RespectsExistingLineBreaks, when true, makes a delimited list break
	// even if it would otherwise fit on one line, provided the user's
	// source already placed a newline right after the opening delimiter.
	RespectsExistingLineBreaks bool
}

func (c Config) withDefaults() Config {
	if c.MaximumBlankLines == 0 {
		c.MaximumBlankLines = 1
	}
	return c
}

// directives maps a token's stable ID to the formatting tokens that must
// be emitted immediately before or after it — the map-keyed-by-token-
// identity design spec §9 calls out explicitly, grounded on the
// teacher's triviaIndex (keyed by token.ID) and attached/detached trivia
// maps in experimental/ast/printer/trivia.go.
type directives struct {
	pre  map[token.ID][]fmttoken.Token
	post map[token.ID][]fmttoken.Token
}

func newDirectives() *directives {
	return &directives{
		pre:  make(map[token.ID][]fmttoken.Token),
		post: make(map[token.ID][]fmttoken.Token),
	}
}

func (d *directives) addPre(id token.ID, toks ...fmttoken.Token) {
	d.pre[id] = append(d.pre[id], toks...)
}

func (d *directives) addPost(id token.ID, toks ...fmttoken.Token) {
	d.post[id] = append(d.post[id], toks...)
}

// Build walks root and returns the formatting token stream the printer
// consumes (spec §4.1: "build(root, config) -> sequence<FormattingToken>").
func Build(root *syntax.Node, cfg Config) []fmttoken.Token {
	cfg = cfg.withDefaults()

	b := &treeBuilder{cfg: cfg, dirs: newDirectives()}
	b.register(root)

	var out []fmttoken.Token
	b.emitNode(root, &out)
	if b.openCount != 0 {
		panic("builder: unbalanced open/close groups at end of walk")
	}
	return out
}

// treeBuilder holds the two builder passes: register (node-kind
// directive placement) and emit (source-order token/trivia flattening).
type treeBuilder struct {
	cfg  Config
	dirs *directives

	// openCount tracks unmatched Open tokens emitted so far, asserting
	// the group-balance invariant (spec §4.1's "Group-balance invariant
	// check").
	openCount int
}
