package concat

import (
	"bytes"
	"go/printer"
	gotoken "go/token"
	"testing"

	"github.com/kilianc/render/internal/gsx/ast"
)

func lower(t *testing.T, nodes []ast.Node) (string, Imports) {
	t.Helper()
	ex, imp, err := LowerNodes(nodes)
	if err != nil {
		t.Fatalf("lower failed with: %+v", err)
	}
	var buf bytes.Buffer
	if err := printer.Fprint(&buf, gotoken.NewFileSet(), ex); err != nil {
		t.Fatal(err)
	}
	return buf.String(), imp
}

func TestLowerNodes(t *testing.T) {
	type test struct {
		name    string
		nodes   []ast.Node
		exp     string
		runtime bool
	}
	testCases := []test{
		{
			name:  "empty",
			nodes: nil,
			exp:   `""`,
		},
		{
			name:  "text",
			nodes: []ast.Node{&ast.Text{Value: "plain"}},
			exp:   `"plain"`,
		},
		{
			name: "literal attributes fold into markup",
			nodes: []ast.Node{&ast.Element{
				Name: "div",
				Attrs: []ast.Attribute{
					{Key: "class", Value: ast.Expr{Src: `"foo"`}},
					{Key: "id", Value: ast.Expr{Src: `"app"`}},
				},
				Children: []ast.Node{&ast.Expr{Src: "foo"}},
			}},
			exp:     "`<div class=\"foo\" id=\"app\">` + gsxrt.String(foo) + \"</div>\"",
			runtime: true,
		},
		{
			name: "expression attribute",
			nodes: []ast.Node{&ast.Element{
				Name:  "a",
				Attrs: []ast.Attribute{{Key: "href", Value: ast.Expr{Src: "url"}}},
			}},
			exp:     "`<a href=\"` + gsxrt.String(url) + `\"></a>`",
			runtime: true,
		},
		{
			name: "siblings merge",
			nodes: []ast.Node{
				&ast.Text{Value: "a"},
				&ast.Element{Name: "b", Children: []ast.Node{&ast.Text{Value: "c"}}},
				&ast.Text{Value: "d"},
			},
			exp: `"a<b>c</b>d"`,
		},
	}

	for index, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			got, imp := lower(t, tc.nodes)
			if got != tc.exp {
				t.Errorf("test #%d: got %s, want %s", index, got, tc.exp)
			}
			if imp.Runtime != tc.runtime {
				t.Errorf("test #%d: runtime import = %v, want %v", index, imp.Runtime, tc.runtime)
			}
		})
	}
}

func TestLowerNodesInvalidExpr(t *testing.T) {
	if _, _, err := LowerNodes([]ast.Node{&ast.Expr{Src: "a b"}}); err == nil {
		t.Error("expected error for invalid expression")
	}
}
