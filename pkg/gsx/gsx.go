package gsx

import (
	"github.com/kilianc/render/internal/gsx/ast"
	"github.com/kilianc/render/internal/gsx/compile"
)

// CompileFile compiles a Go-first .gsx source (a Go file with embedded
// `render!{ <tag>...</tag> }` blocks) into a gofmt'd Go source file. Blocks become
// string expressions.
//
// The result is suitable for writing to "<path>.go" (i.e. "*.gsx.go") and checking in.
func CompileFile(path string, src []byte) ([]byte, error) {
	return compile.CompileFile(path, src, compile.Options{})
}

// Node is one of *Element, *Text or *Expr.
type Node = ast.Node

type (
	Element   = ast.Element
	Text      = ast.Text
	Expr      = ast.Expr
	Attribute = ast.Attribute
)

// Parse parses bare markup such as `<p>hello {name}!</p>` into its top-level nodes.
func Parse(src string) ([]Node, error) {
	return compile.Parse(src)
}
