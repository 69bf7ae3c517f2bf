// Package tree assembles markup tokens into the nested node tree, enforcing that every
// closing tag matches the innermost open element.
package tree

import (
	"fmt"
	"strings"

	"github.com/kilianc/render/internal/gsx/ast"
	"github.com/kilianc/render/internal/gsx/diag"
	"github.com/kilianc/render/internal/gsx/markup"
)

type frame struct {
	open     *markup.Open
	children []ast.Node
}

// Builder keeps an explicit stack of open elements. The zero value is ready to use.
type Builder struct {
	stack []*frame
	root  []ast.Node
}

// Build returns the top-level nodes for toks.
func Build(toks []markup.Token) ([]ast.Node, error) {
	var b Builder
	for _, tok := range toks {
		if err := b.Add(tok); err != nil {
			return nil, err
		}
	}
	return b.Finish()
}

// Add consumes one token. Errors are *diag.Error of kind Structural.
func (b *Builder) Add(tok markup.Token) error {
	switch t := tok.(type) {
	case *markup.Open:
		b.stack = append(b.stack, &frame{open: t})
	case *markup.Text:
		b.append(&ast.Text{Value: t.Content, Pos: t.Start, End: t.End})
	case *markup.Interp:
		expr := t.Expr
		b.append(&expr)
	case *markup.Close:
		if len(b.stack) == 0 {
			return diag.Errorf(diag.Structural, t.Pos, t.End, "unexpected closing tag </%s> with no matching opening tag", t.Name)
		}
		top := b.stack[len(b.stack)-1]
		b.stack = b.stack[:len(b.stack)-1]
		if top.open.Name != t.Name {
			e := diag.Errorf(diag.Structural, t.Pos, t.End, "mismatched closing tag: expected </%s>, found </%s>", top.open.Name, t.Name)
			e.Related = top.open.OpenPos
			return e
		}
		b.append(&ast.Element{
			Name:     top.open.Name,
			Attrs:    top.open.Attrs,
			Children: top.children,
			Pos:      top.open.OpenPos,
			OpenEnd:  top.open.ClosePos,
			ClosePos: t.Pos,
		})
	default:
		panic(fmt.Sprintf("tree: unexpected markup token %T", tok))
	}
	return nil
}

// Finish returns the top-level nodes, or an error naming the open elements when the
// input ended early.
func (b *Builder) Finish() ([]ast.Node, error) {
	if n := len(b.stack); n > 0 {
		inner := b.stack[n-1].open
		names := make([]string, n)
		for i, f := range b.stack {
			names[i] = "<" + f.open.Name + ">"
		}
		return nil, diag.Errorf(diag.Structural, inner.OpenPos, inner.ClosePos+1, "unclosed element <%s> (open: %s)", inner.Name, strings.Join(names, " "))
	}
	return b.root, nil
}

func (b *Builder) append(n ast.Node) {
	if len(b.stack) == 0 {
		b.root = append(b.root, n)
		return
	}
	top := b.stack[len(b.stack)-1]
	top.children = append(top.children, n)
}
