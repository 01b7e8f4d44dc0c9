package syntax

import "github.com/stylish-lang/stylish/token"

// Walk performs a pre-order, source-order traversal of n, calling enter
// on every Node encountered (including n itself) and, if exit is
// non-nil, calling exit after that node's children have been visited.
//
// This generalizes the teacher's enter/exit descriptor walker
// (walk.Descriptors/DescriptorsEnterAndExit) from a fixed protobuf
// descriptor shape to the single generic Node type every production in
// this tree uses.
func Walk(n *Node, enter func(*Node), exit func(*Node)) {
	if n == nil {
		return
	}
	enter(n)
	for _, c := range n.Children {
		if child, ok := AsNode(c); ok {
			Walk(child, enter, exit)
		}
	}
	if exit != nil {
		exit(n)
	}
}

// Nodes returns every *Node child of n, in source order, skipping bare
// tokens. Useful for rules that only care about structural children.
func (n *Node) Nodes() []*Node {
	var out []*Node
	for _, c := range n.Children {
		if child, ok := AsNode(c); ok {
			out = append(out, child)
		}
	}
	return out
}

// TokenAt returns the i-th token child of n directly (not recursing into
// child nodes), or the zero Token if there is no such child or it is not
// a token.
func (n *Node) TokenAt(i int) (token.Token, bool) {
	if i < 0 || i >= len(n.Children) {
		return token.Token{}, false
	}
	return AsToken(n.Children[i])
}
