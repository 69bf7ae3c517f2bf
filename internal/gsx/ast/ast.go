package ast

import gotoken "go/token"

// Node is one of *Element, *Text or *Expr.
type Node interface {
	node()
}

type Text struct {
	Value string
	Pos   gotoken.Pos
	End   gotoken.Pos
}

func (*Text) node() {}

// Expr is an embedded Go expression. Src is the exact source text and always parses
// as a single expression.
type Expr struct {
	Src string
	Pos gotoken.Pos
	End gotoken.Pos
}

func (*Expr) node() {}

type Attribute struct {
	Key   string
	Value Expr
	Pos   gotoken.Pos
}

type Element struct {
	Name     string
	Attrs    []Attribute
	Children []Node

	Pos      gotoken.Pos // "<" of the opening tag
	OpenEnd  gotoken.Pos // ">" of the opening tag
	ClosePos gotoken.Pos // "<" of the closing tag
}

func (*Element) node() {}

// Walk calls fn for every node in pre-order. Children of an element are skipped when
// fn returns false.
func Walk(nodes []Node, fn func(Node) bool) {
	for _, n := range nodes {
		if !fn(n) {
			continue
		}
		if el, ok := n.(*Element); ok {
			Walk(el.Children, fn)
		}
	}
}
