package markup

import (
	gotoken "go/token"

	"github.com/kilianc/render/internal/gsx/ast"
)

// Token is one of *Open, *Close, *Text or *Interp.
type Token interface {
	markupToken()
}

// Open is an opening tag such as <div class="x">. OpenPos is the "<" and ClosePos
// the ">".
type Open struct {
	Name     string
	Attrs    []ast.Attribute
	OpenPos  gotoken.Pos
	ClosePos gotoken.Pos
}

// Close is a closing tag such as </div>. Pos is the "<" and End is just past the ">".
type Close struct {
	Name string
	Pos  gotoken.Pos
	End  gotoken.Pos
}

// Text is free text. Start and End are NoPos when Content is empty.
type Text struct {
	Content string
	Start   gotoken.Pos
	End     gotoken.Pos
}

// Interp is a {expr} interpolation. Pos and End span the braces.
type Interp struct {
	Expr ast.Expr
	Pos  gotoken.Pos
	End  gotoken.Pos
}

func (*Open) markupToken()   {}
func (*Close) markupToken()  {}
func (*Text) markupToken()   {}
func (*Interp) markupToken() {}
