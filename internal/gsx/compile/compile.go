// Package compile drives the gsx pipeline over a .gsx file: it finds every macro
// block, tokenizes and builds each one, lowers it with the configured target and
// splices the result back into the Go source.
package compile

import (
	"bytes"
	"fmt"
	goast "go/ast"
	"go/format"
	"go/parser"
	"go/printer"
	gotoken "go/token"
	"path/filepath"

	"github.com/kilianc/render/internal/gsx/ast"
	"github.com/kilianc/render/internal/gsx/concat"
	"github.com/kilianc/render/internal/gsx/config"
	"github.com/kilianc/render/internal/gsx/diag"
	"github.com/kilianc/render/internal/gsx/errwrap"
	"github.com/kilianc/render/internal/gsx/gomponents"
	"github.com/kilianc/render/internal/gsx/markup"
	"github.com/kilianc/render/internal/gsx/source"
	"github.com/kilianc/render/internal/gsx/tree"

	"golang.org/x/tools/go/ast/astutil"
)

// Options control a compilation. The zero value compiles render!{ ... } blocks to
// string expressions.
type Options struct {
	Target config.Target
	Macro  string
	Logf   func(format string, v ...interface{})
}

func (o Options) withDefaults() Options {
	def := config.Default()
	if o.Target == "" {
		o.Target = def.Target
	}
	if o.Macro == "" {
		o.Macro = def.Macro
	}
	if o.Logf == nil {
		o.Logf = func(format string, v ...interface{}) {}
	}
	return o
}

// Block is one compiled macro block.
type Block struct {
	Pos    gotoken.Pos
	End    gotoken.Pos
	Tokens []markup.Token
	Nodes  []ast.Node
}

// Unit is a .gsx file with its blocks tokenized and built.
type Unit struct {
	Fset   *gotoken.FileSet
	Path   string
	Src    []byte
	Blocks []Block
}

// Analyze runs the front end over every block of src. Errors carry file:line:col and
// unwrap to *diag.Error.
func Analyze(path string, src []byte, macro string) (*Unit, error) {
	fset := gotoken.NewFileSet()
	toks, err := source.Scan(fset, path, src)
	if err != nil {
		return nil, diag.Locate(fset, err)
	}
	u := &Unit{Fset: fset, Path: path, Src: src}
	for _, b := range source.FindBlocks(toks, macro) {
		mtoks, err := markup.Tokenize(b.Stream())
		if err != nil {
			return nil, diag.Locate(fset, err)
		}
		nodes, err := tree.Build(mtoks)
		if err != nil {
			return nil, diag.Locate(fset, err)
		}
		u.Blocks = append(u.Blocks, Block{Pos: b.Pos, End: b.End, Tokens: mtoks, Nodes: nodes})
	}
	return u, nil
}

// Parse compiles bare markup, such as `<p>hello {name}</p>`, to its nodes.
func Parse(src string) ([]ast.Node, error) {
	fset := gotoken.NewFileSet()
	toks, err := source.Scan(fset, "", []byte(src))
	if err != nil {
		return nil, err
	}
	mtoks, err := markup.Tokenize(markup.NewStream(toks, gotoken.Pos(fset.Base()-1)))
	if err != nil {
		return nil, err
	}
	return tree.Build(mtoks)
}

// CompileFile compiles a .gsx source into a gofmt'd Go source file.
func CompileFile(path string, src []byte, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	u, err := Analyze(path, src, opts.Macro)
	if err != nil {
		return nil, err
	}

	var out bytes.Buffer
	var imp imports
	prev := 0
	for _, b := range u.Blocks {
		ex, err := imp.lower(opts.Target, b.Nodes)
		if err != nil {
			return nil, errwrap.Wrapf(err, "%s", u.Fset.Position(b.Pos))
		}
		var text bytes.Buffer
		if err := printer.Fprint(&text, gotoken.NewFileSet(), ex); err != nil {
			return nil, err
		}
		start, end := u.Fset.Position(b.Pos).Offset, u.Fset.Position(b.End).Offset
		out.Write(src[prev:start])
		out.WriteString("(")
		out.Write(text.Bytes())
		out.WriteString(")")
		prev = end
	}
	out.Write(src[prev:])
	opts.Logf("%s: %d block(s) compiled to %s", path, len(u.Blocks), opts.Target)

	return finish(path, out.Bytes(), imp)
}

type imports struct {
	runtime    bool
	gomponents bool
	html       bool
}

func (imp *imports) lower(target config.Target, nodes []ast.Node) (goast.Expr, error) {
	switch target {
	case config.TargetGomponents:
		ex, used, err := gomponents.LowerNodes(nodes)
		imp.runtime = imp.runtime || used.Runtime
		imp.gomponents = imp.gomponents || used.Gomponents
		imp.html = imp.html || used.HTML
		return ex, err
	case config.TargetString:
		ex, used, err := concat.LowerNodes(nodes)
		imp.runtime = imp.runtime || used.Runtime
		return ex, err
	default:
		return nil, fmt.Errorf("unknown target %q", target)
	}
}

func finish(path string, code []byte, imp imports) ([]byte, error) {
	fset := gotoken.NewFileSet()
	f, err := parser.ParseFile(fset, path, code, parser.ParseComments)
	if err != nil {
		return nil, errwrap.Wrapf(err, "generated code for %s does not parse", path)
	}
	if imp.runtime {
		astutil.AddNamedImport(fset, f, gomponents.RuntimeName, gomponents.RuntimeImportPath)
	}
	if imp.gomponents {
		astutil.AddNamedImport(fset, f, ".", gomponents.ImportPath)
	}
	if imp.html {
		astutil.AddNamedImport(fset, f, ".", gomponents.HTMLImportPath)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by gsx from %s. DO NOT EDIT.\n\n", filepath.Base(path))
	if err := format.Node(&buf, fset, f); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
