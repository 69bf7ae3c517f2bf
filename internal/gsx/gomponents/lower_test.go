package gomponents

import (
	"bytes"
	"go/printer"
	gotoken "go/token"
	"testing"

	"github.com/kilianc/render/internal/gsx/ast"

	"github.com/google/go-cmp/cmp"
)

func TestLowerNodes(t *testing.T) {
	type test struct {
		name    string
		nodes   []ast.Node
		exp     string
		imports Imports
	}
	testCases := []test{
		{
			name: "no nodes",
			exp:  "nil",
		},
		{
			name:    "text",
			nodes:   []ast.Node{&ast.Text{Value: "hi"}},
			exp:     `Text("hi")`,
			imports: Imports{Gomponents: true},
		},
		{
			name: "known element and attribute",
			nodes: []ast.Node{&ast.Element{
				Name:     "div",
				Attrs:    []ast.Attribute{{Key: "class", Value: ast.Expr{Src: `"x"`}}},
				Children: []ast.Node{&ast.Expr{Src: "name"}},
			}},
			exp:     `Div(Class("x"), gsxrt.Node(name))`,
			imports: Imports{HTML: true, Runtime: true},
		},
		{
			name: "unknown element and attribute",
			nodes: []ast.Node{&ast.Element{
				Name:     "widget",
				Attrs:    []ast.Attribute{{Key: "a", Value: ast.Expr{Src: "b"}}},
				Children: []ast.Node{&ast.Text{Value: "hi"}},
			}},
			exp:     `El("widget", Attr("a", gsxrt.String(b)), Text("hi"))`,
			imports: Imports{Gomponents: true, Runtime: true},
		},
		{
			name: "boolean attribute",
			nodes: []ast.Node{&ast.Element{
				Name:  "input",
				Attrs: []ast.Attribute{{Key: "disabled", Value: ast.Expr{Src: "off"}}},
			}},
			exp:     `Input(If(off, Disabled()))`,
			imports: Imports{Gomponents: true, HTML: true},
		},
		{
			name: "siblings are grouped",
			nodes: []ast.Node{
				&ast.Element{Name: "li"},
				&ast.Element{Name: "li"},
			},
			exp:     `Group{Li(), Li()}`,
			imports: Imports{Gomponents: true, HTML: true},
		},
	}

	for index, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			ex, imp, err := LowerNodes(tc.nodes)
			if err != nil {
				t.Fatalf("test #%d: lower failed with: %+v", index, err)
			}
			var buf bytes.Buffer
			if err := printer.Fprint(&buf, gotoken.NewFileSet(), ex); err != nil {
				t.Fatal(err)
			}
			if got := buf.String(); got != tc.exp {
				t.Errorf("test #%d: got %s, want %s", index, got, tc.exp)
			}
			if diff := cmp.Diff(tc.imports, imp); diff != "" {
				t.Errorf("test #%d: imports differ (-exp +got):\n%s", index, diff)
			}
		})
	}
}

func TestLowerNodesInvalidAttribute(t *testing.T) {
	el := &ast.Element{Name: "p", Attrs: []ast.Attribute{{Key: "id", Value: ast.Expr{Src: "x :="}}}}
	if _, _, err := LowerNodes([]ast.Node{el}); err == nil {
		t.Error("expected error for invalid attribute value")
	}
}
