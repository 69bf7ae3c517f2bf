package tree

import (
	gotoken "go/token"
	"strings"
	"testing"

	"github.com/kilianc/render/internal/gsx/ast"
	"github.com/kilianc/render/internal/gsx/diag"
	"github.com/kilianc/render/internal/gsx/markup"

	"github.com/davecgh/go-spew/spew"
	"github.com/google/go-cmp/cmp"
)

func open(name string, pos gotoken.Pos) *markup.Open {
	return &markup.Open{Name: name, OpenPos: pos, ClosePos: pos + gotoken.Pos(len(name)) + 1}
}

func closeTag(name string, pos gotoken.Pos) *markup.Close {
	return &markup.Close{Name: name, Pos: pos, End: pos + gotoken.Pos(len(name)) + 3}
}

func text(s string) *markup.Text {
	return &markup.Text{Content: s}
}

func TestBuild(t *testing.T) {
	attrs := []ast.Attribute{{Key: "class", Value: ast.Expr{Src: `"foo"`}}}
	toks := []markup.Token{
		text("a"),
		&markup.Open{Name: "div", Attrs: attrs, OpenPos: 2, ClosePos: 18},
		open("span", 19),
		text("b"),
		&markup.Interp{Expr: ast.Expr{Src: "x", Pos: 26, End: 27}, Pos: 25, End: 28},
		closeTag("span", 28),
		open("span", 35),
		closeTag("span", 41),
		closeTag("div", 48),
		text("c"),
	}
	exp := []ast.Node{
		&ast.Text{Value: "a"},
		&ast.Element{
			Name:  "div",
			Attrs: attrs,
			Children: []ast.Node{
				&ast.Element{
					Name: "span",
					Children: []ast.Node{
						&ast.Text{Value: "b"},
						&ast.Expr{Src: "x", Pos: 26, End: 27},
					},
					Pos: 19, OpenEnd: 24, ClosePos: 28,
				},
				&ast.Element{Name: "span", Pos: 35, OpenEnd: 40, ClosePos: 41},
			},
			Pos: 2, OpenEnd: 18, ClosePos: 48,
		},
		&ast.Text{Value: "c"},
	}

	nodes, err := Build(toks)
	if err != nil {
		t.Fatalf("build failed with: %+v", err)
	}
	if diff := cmp.Diff(exp, nodes); diff != "" {
		t.Errorf("AST did not match expected (-exp +got):\n%s", diff)
		t.Logf("actual:\n%s", spew.Sdump(nodes))
	}
}

func TestBuildEmpty(t *testing.T) {
	nodes, err := Build(nil)
	if err != nil || len(nodes) != 0 {
		t.Errorf("Build(nil) = %v, %v", nodes, err)
	}
}

func TestBuildErrors(t *testing.T) {
	type test struct {
		name    string
		toks    []markup.Token
		msg     string
		pos     gotoken.Pos
		related gotoken.Pos
	}
	testCases := []test{
		{
			name: "close without open",
			toks: []markup.Token{text("x"), closeTag("p", 10)},
			msg:  "unexpected closing tag </p> with no matching opening tag",
			pos:  10,
		},
		{
			name:    "mismatched close",
			toks:    []markup.Token{open("div", 1), text("text"), closeTag("span", 10)},
			msg:     "mismatched closing tag: expected </div>, found </span>",
			pos:     10,
			related: 1,
		},
		{
			name:    "mismatch is checked against the innermost element",
			toks:    []markup.Token{open("a", 1), open("b", 4), closeTag("a", 7)},
			msg:     "expected </b>, found </a>",
			pos:     7,
			related: 4,
		},
		{
			name: "unclosed",
			toks: []markup.Token{open("div", 1), text("unclosed")},
			msg:  "unclosed element <div>",
			pos:  1,
		},
		{
			name: "unclosed reports the innermost",
			toks: []markup.Token{open("main", 1), open("ul", 7), open("li", 11), closeTag("li", 15)},
			msg:  "unclosed element <ul> (open: <main> <ul>)",
			pos:  7,
		},
	}

	for index, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			nodes, err := Build(tc.toks)
			if err == nil {
				t.Fatalf("test #%d: expected error, got:\n%s", index, spew.Sdump(nodes))
			}
			if nodes != nil {
				t.Errorf("test #%d: partial AST returned", index)
			}
			e, ok := err.(*diag.Error)
			if !ok {
				t.Fatalf("test #%d: expected *diag.Error, got %T", index, err)
			}
			if e.Kind != diag.Structural {
				t.Errorf("test #%d: kind = %s, want structural", index, e.Kind)
			}
			if !strings.Contains(e.Msg, tc.msg) {
				t.Errorf("test #%d: message %q does not contain %q", index, e.Msg, tc.msg)
			}
			if e.Pos != tc.pos || e.Related != tc.related {
				t.Errorf("test #%d: at %d (related %d), want %d (related %d)", index, e.Pos, e.Related, tc.pos, tc.related)
			}
		})
	}
}

// Add and Finish can be driven one token at a time.
func TestBuilderIncremental(t *testing.T) {
	var b Builder
	for _, tok := range []markup.Token{open("p", 1), text("x")} {
		if err := b.Add(tok); err != nil {
			t.Fatal(err)
		}
	}
	if _, err := b.Finish(); err == nil {
		t.Fatal("expected unclosed error before the closing tag")
	}
	if err := b.Add(closeTag("p", 5)); err != nil {
		t.Fatal(err)
	}
	nodes, err := b.Finish()
	if err != nil {
		t.Fatal(err)
	}
	if len(nodes) != 1 {
		t.Fatalf("got %d nodes, want 1", len(nodes))
	}
	if el := nodes[0].(*ast.Element); el.Name != "p" || len(el.Children) != 1 {
		t.Errorf("unexpected element %s", spew.Sdump(el))
	}
}
