// Package concat lowers nodes to a Go string expression: literal markup concatenated
// with the stringified values of embedded expressions.
package concat

import (
	"fmt"
	goast "go/ast"
	"go/parser"
	gotoken "go/token"
	"strconv"
	"strings"

	"github.com/kilianc/render/internal/gsx/ast"
)

const (
	RuntimeImportPath = "github.com/kilianc/render/pkg/gsxrt"
	RuntimeName       = "gsxrt"
)

// Imports records the packages a lowered expression refers to.
type Imports struct {
	Runtime bool
}

// part is either a literal run or a string-valued expression.
type part struct {
	lit  string
	expr goast.Expr
}

type lowerer struct {
	parts   []part
	imports Imports
}

// LowerNodes lowers nodes to a single expression of type string. Adjacent literal
// markup is merged and string literal attribute values are folded in.
func LowerNodes(nodes []ast.Node) (goast.Expr, Imports, error) {
	l := &lowerer{}
	for _, n := range nodes {
		if err := l.node(n); err != nil {
			return nil, l.imports, err
		}
	}
	return l.expr(), l.imports, nil
}

func (l *lowerer) node(n ast.Node) error {
	switch t := n.(type) {
	case *ast.Text:
		l.lit(t.Value)
	case *ast.Expr:
		ex, err := parseExpr(t.Src)
		if err != nil {
			return err
		}
		l.value(ex)
	case *ast.Element:
		l.lit("<" + t.Name)
		for _, a := range t.Attrs {
			ex, err := parseExpr(a.Value.Src)
			if err != nil {
				return err
			}
			l.lit(" " + a.Key + `="`)
			l.value(ex)
			l.lit(`"`)
		}
		l.lit(">")
		for _, c := range t.Children {
			if err := l.node(c); err != nil {
				return err
			}
		}
		l.lit("</" + t.Name + ">")
	default:
		return fmt.Errorf("unsupported node type %T", n)
	}
	return nil
}

func (l *lowerer) lit(s string) {
	if s == "" {
		return
	}
	if n := len(l.parts); n > 0 && l.parts[n-1].expr == nil {
		l.parts[n-1].lit += s
		return
	}
	l.parts = append(l.parts, part{lit: s})
}

func (l *lowerer) value(ex goast.Expr) {
	if bl, ok := ex.(*goast.BasicLit); ok && bl.Kind == gotoken.STRING {
		if s, err := strconv.Unquote(bl.Value); err == nil {
			l.lit(s)
			return
		}
	}
	l.imports.Runtime = true
	l.parts = append(l.parts, part{expr: &goast.CallExpr{
		Fun:  &goast.SelectorExpr{X: goast.NewIdent(RuntimeName), Sel: goast.NewIdent("String")},
		Args: []goast.Expr{ex},
	}})
}

func (l *lowerer) expr() goast.Expr {
	if len(l.parts) == 0 {
		return strLit("")
	}
	var out goast.Expr
	for _, p := range l.parts {
		x := p.expr
		if x == nil {
			x = strLit(p.lit)
		}
		if out == nil {
			out = x
			continue
		}
		out = &goast.BinaryExpr{X: out, Op: gotoken.ADD, Y: x}
	}
	return out
}

func parseExpr(src string) (goast.Expr, error) {
	ex, err := parser.ParseExpr(src)
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", src, err)
	}
	return ex, nil
}

// strLit prefers a raw string for markup that carries double quotes.
func strLit(s string) goast.Expr {
	v := strconv.Quote(s)
	if strings.Contains(s, `"`) && strconv.CanBackquote(s) {
		v = "`" + s + "`"
	}
	return &goast.BasicLit{Kind: gotoken.STRING, Value: v}
}
