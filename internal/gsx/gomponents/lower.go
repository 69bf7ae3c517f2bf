package gomponents

import (
	"fmt"
	goast "go/ast"
	"go/parser"
	gotoken "go/token"

	"github.com/kilianc/render/internal/gsx/ast"
)

const (
	ImportPath        = "maragu.dev/gomponents"
	HTMLImportPath    = "maragu.dev/gomponents/html"
	RuntimeImportPath = "github.com/kilianc/render/pkg/gsxrt"
	RuntimeName       = "gsxrt"
)

// Imports records the packages a lowered expression refers to. Gomponents and HTML
// are dot-imported.
type Imports struct {
	Gomponents bool
	HTML       bool
	Runtime    bool
}

type lowerer struct {
	imports Imports
}

// LowerNodes lowers a list of nodes to a single Go expression that evaluates to Node.
func LowerNodes(nodes []ast.Node) (goast.Expr, Imports, error) {
	l := &lowerer{}
	if len(nodes) == 0 {
		return goast.NewIdent("nil"), l.imports, nil
	}
	if len(nodes) == 1 {
		ex, err := l.lowerNode(nodes[0])
		return ex, l.imports, err
	}
	var elts []goast.Expr
	for _, n := range nodes {
		ex, err := l.lowerNode(n)
		if err != nil {
			return nil, l.imports, err
		}
		elts = append(elts, ex)
	}
	l.imports.Gomponents = true
	return &goast.CompositeLit{
		Type: goast.NewIdent("Group"),
		Elts: elts,
	}, l.imports, nil
}

func (l *lowerer) lowerNode(n ast.Node) (goast.Expr, error) {
	switch t := n.(type) {
	case *ast.Text:
		l.imports.Gomponents = true
		return call(goast.NewIdent("Text"), strLit(t.Value)), nil
	case *ast.Expr:
		ex, err := parseExpr(t.Src)
		if err != nil {
			return nil, err
		}
		// Node values splice in as-is, everything else is stringified into Text.
		return l.runtime("Node", ex), nil
	case *ast.Element:
		return l.lowerElement(t)
	default:
		return nil, fmt.Errorf("unsupported node type %T", n)
	}
}

func (l *lowerer) lowerElement(el *ast.Element) (goast.Expr, error) {
	var args []goast.Expr

	// attrs first
	for _, a := range el.Attrs {
		ax, err := l.lowerAttr(a)
		if err != nil {
			return nil, err
		}
		args = append(args, ax)
	}
	// then children
	for _, c := range el.Children {
		cx, err := l.lowerNode(c)
		if err != nil {
			return nil, err
		}
		args = append(args, cx)
	}

	if fn := htmlElementFunc(el.Name); fn != "" {
		l.imports.HTML = true
		return call(goast.NewIdent(fn), args...), nil
	}
	l.imports.Gomponents = true
	allArgs := append([]goast.Expr{strLit(el.Name)}, args...)
	return call(goast.NewIdent("El"), allArgs...), nil
}

func (l *lowerer) lowerAttr(a ast.Attribute) (goast.Expr, error) {
	ex, err := parseExpr(a.Value.Src)
	if err != nil {
		return nil, err
	}

	// Boolean attributes behave like JSX: `<input disabled=cond>` includes the
	// attribute only when cond is true.
	if fn := htmlBoolAttrFunc(a.Key); fn != "" {
		l.imports.Gomponents = true
		l.imports.HTML = true
		return call(goast.NewIdent("If"), ex, call(goast.NewIdent(fn))), nil
	}

	strExpr := l.stringExpr(ex)
	if fn := htmlStringAttrFunc(a.Key); fn != "" {
		l.imports.HTML = true
		return call(goast.NewIdent(fn), strExpr), nil
	}
	l.imports.Gomponents = true
	return call(goast.NewIdent("Attr"), strLit(a.Key), strExpr), nil
}

// stringExpr passes string literals through and stringifies anything else.
func (l *lowerer) stringExpr(ex goast.Expr) goast.Expr {
	if bl, ok := ex.(*goast.BasicLit); ok && bl.Kind == gotoken.STRING {
		return ex
	}
	return l.runtime("String", ex)
}

func (l *lowerer) runtime(fn string, args ...goast.Expr) goast.Expr {
	l.imports.Runtime = true
	return call(&goast.SelectorExpr{X: goast.NewIdent(RuntimeName), Sel: goast.NewIdent(fn)}, args...)
}

func parseExpr(src string) (goast.Expr, error) {
	ex, err := parser.ParseExpr(src)
	if err != nil {
		return nil, fmt.Errorf("invalid expression %q: %w", src, err)
	}
	return ex, nil
}

func call(fun goast.Expr, args ...goast.Expr) *goast.CallExpr {
	return &goast.CallExpr{Fun: fun, Args: args}
}

func strLit(s string) goast.Expr {
	return &goast.BasicLit{Kind: gotoken.STRING, Value: fmt.Sprintf("%q", s)}
}

// Tags and attributes with a dedicated helper in maragu.dev/gomponents/html. Anything
// else goes through El and Attr.
var (
	htmlElements = map[string]string{
		"a": "A", "article": "Article", "aside": "Aside", "button": "Button",
		"code": "Code", "div": "Div", "em": "Em", "footer": "Footer", "form": "Form",
		"h1": "H1", "h2": "H2", "h3": "H3", "h4": "H4", "h5": "H5", "h6": "H6",
		"header": "Header", "img": "Img", "input": "Input", "label": "Label", "li": "Li",
		"main": "Main", "nav": "Nav", "ol": "Ol", "option": "Option", "p": "P", "pre": "Pre",
		"section": "Section", "select": "Select", "span": "Span", "strong": "Strong",
		"table": "Table", "td": "Td", "textarea": "Textarea", "th": "Th", "tr": "Tr", "ul": "Ul",
	}
	htmlStringAttrs = map[string]string{
		"alt": "Alt", "class": "Class", "for": "For", "href": "Href", "id": "ID",
		"name": "Name", "placeholder": "Placeholder", "rel": "Rel", "src": "Src",
		"style": "Style", "type": "Type", "value": "Value",
	}
	htmlBoolAttrs = map[string]string{
		"checked": "Checked", "disabled": "Disabled", "required": "Required", "selected": "Selected",
	}
)

func htmlElementFunc(tag string) string { return htmlElements[tag] }

func htmlStringAttrFunc(key string) string { return htmlStringAttrs[key] }

func htmlBoolAttrFunc(key string) string { return htmlBoolAttrs[key] }
