package builder

import (
	"github.com/stylish-lang/stylish/fmttoken"
	"github.com/stylish-lang/stylish/syntax"
	"github.com/stylish-lang/stylish/token"
)

// emitNode walks n in source order, flattening every terminal token
// reachable under it into out, interleaved with the directives
// registered for that token and its translated trivia (spec §4.1:
// "On encountering a terminal token t, the builder emits, in order:
// translated leading trivia, all pre-directives registered for t,
// syntax(t), all post-directives registered for t, translated trailing
// trivia").
func (b *treeBuilder) emitNode(n *syntax.Node, out *[]fmttoken.Token) {
	for _, c := range n.Children {
		if child, ok := syntax.AsNode(c); ok {
			b.emitNode(child, out)
			continue
		}
		tok, _ := syntax.AsToken(c)
		b.emitToken(tok, out)
	}
}

func (b *treeBuilder) emitToken(tok token.Token, out *[]fmttoken.Token) {
	translateTrivia(tok.Leading(), b.cfg.MaximumBlankLines, out)

	for _, d := range b.dirs.pre[tok.ID()] {
		b.appendDirective(out, d)
	}

	*out = append(*out, fmttoken.Syn(tok.Text()))

	for _, d := range b.dirs.post[tok.ID()] {
		b.appendDirective(out, d)
	}

	translateTrivia(tok.Trailing(), b.cfg.MaximumBlankLines, out)
}

// appendDirective appends a single directive token, maintaining the
// open/close balance counter (spec §4.1's "Group-balance invariant
// check"): every Close must see a positive counter, and by the end of
// the walk the counter must be back to zero (checked by [Build] after
// emitNode returns).
func (b *treeBuilder) appendDirective(out *[]fmttoken.Token, d fmttoken.Token) {
	switch d.Kind {
	case fmttoken.Open:
		b.openCount++
	case fmttoken.Close:
		if b.openCount <= 0 {
			panic("builder: close with no matching open")
		}
		b.openCount--
	}
	*out = append(*out, d)
}
