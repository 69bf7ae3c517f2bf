// Package markup scans a host token stream into markup tokens: opening and closing
// tags, free text and {expr} interpolations.
package markup

import (
	"fmt"
	goparser "go/parser"
	goscanner "go/scanner"
	gotoken "go/token"
	"strings"

	"github.com/kilianc/render/internal/gsx/ast"
	"github.com/kilianc/render/internal/gsx/diag"

	"github.com/pkg/errors"
)

// Tokenizer turns a Stream into markup tokens, one token per call to Next.
type Tokenizer struct {
	s       Stream
	started bool
	// gapAt is the token whose Lead was last emitted as a gap Text.
	gapAt gotoken.Pos
}

func NewTokenizer(s Stream) *Tokenizer {
	return &Tokenizer{s: s}
}

// Tokenize scans the whole stream. The first error aborts the scan.
func Tokenize(s Stream) ([]Token, error) {
	t := NewTokenizer(s)
	var out []Token
	for !t.Done() {
		tok, err := t.Next()
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
	return out, nil
}

// Done reports whether the stream is exhausted.
func (t *Tokenizer) Done() bool {
	return t.s.Peek().Kind == EOF
}

// Next scans one markup token. Errors are *diag.Error.
func (t *Tokenizer) Next() (Token, error) {
	tok, err := t.next()
	if err == nil {
		t.started = true
	}
	return tok, err
}

func (t *Tokenizer) next() (Token, error) {
	next := t.s.Peek()
	if gap := t.gap(next); gap != nil {
		return gap, nil
	}
	switch {
	case next.IsPunct("<") && t.s.Peek2().IsPunct("/"):
		return t.close()
	case next.IsPunct("<"):
		return t.open()
	case next.IsGroup('{'):
		return t.interp()
	default:
		return t.text(), nil
	}
}

func (t *Tokenizer) open() (Token, error) {
	lt := t.s.Next()

	name := t.s.Peek()
	if !name.IsIdent() {
		return nil, diag.Errorf(diag.Lexical, name.Pos, name.End, "expected tag name after \"<\", found %s", describe(name))
	}
	t.s.Next()

	attrs, err := t.attributes()
	if err != nil {
		return nil, err
	}

	gt := t.s.Peek()
	if !gt.IsPunct(">") {
		if gt.IsPunct("/") {
			return nil, diag.Errorf(diag.Lexical, gt.Pos, gt.End, "self-closing tags are not supported, write <%s></%s>", name.Src, name.Src)
		}
		return nil, diag.Errorf(diag.Lexical, gt.Pos, gt.End, "expected \">\" to close <%s>, found %s", name.Src, describe(gt))
	}
	t.s.Next()

	return &Open{
		Name:     name.Src,
		Attrs:    attrs,
		OpenPos:  lt.Pos,
		ClosePos: gt.Pos,
	}, nil
}

func (t *Tokenizer) attributes() ([]ast.Attribute, error) {
	var attrs []ast.Attribute
	for t.s.Peek().IsIdent() {
		key := t.s.Next()

		eq := t.s.Peek()
		if !eq.IsPunct("=") {
			return nil, diag.Errorf(diag.Lexical, eq.Pos, eq.End, "expected \"=\" after attribute %q, found %s", key.Src, describe(eq))
		}
		t.s.Next()

		// The value ends before ">", before "/", or before the token that precedes an
		// "=" (the key of the next attribute). A value holding a bare "=", ">" or "/"
		// outside of brackets is cut short by this rule; wrap such values in parens.
		var span []SourceToken
		for {
			if tok := t.s.Peek(); tok.Kind == EOF {
				return nil, diag.Errorf(diag.Lexical, tok.Pos, tok.End, "unexpected end of input in value of attribute %q", key.Src)
			}
			span = append(span, t.s.Next())
			if next := t.s.Peek(); next.IsPunct(">") || next.IsPunct("/") || t.s.Peek2().IsPunct("=") {
				break
			}
		}

		value, err := spanExpr(span)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, ast.Attribute{
			Key:   key.Src,
			Value: value,
			Pos:   key.Pos,
		})
	}
	return attrs, nil
}

func (t *Tokenizer) close() (Token, error) {
	lt := t.s.Next()
	t.s.Next() // "/"

	name := t.s.Peek()
	if !name.IsIdent() {
		return nil, diag.Errorf(diag.Lexical, name.Pos, name.End, "expected tag name after \"</\", found %s", describe(name))
	}
	t.s.Next()

	gt := t.s.Peek()
	if !gt.IsPunct(">") {
		return nil, diag.Errorf(diag.Lexical, gt.Pos, gt.End, "expected \">\" to close </%s>, found %s", name.Src, describe(gt))
	}
	t.s.Next()

	return &Close{Name: name.Src, Pos: lt.Pos, End: gt.End}, nil
}

// gap returns the spaces between two markup tokens as Text, as in "{a} {b}" or
// "</b> <i>". Gaps holding a newline are layout and are dropped, and so is the space
// before the first token of the stream.
func (t *Tokenizer) gap(next SourceToken) *Text {
	if !t.started || next.Lead == "" || next.Pos == t.gapAt {
		return nil
	}
	if !next.IsPunct("<") && !next.IsGroup('{') {
		return nil
	}
	if strings.Trim(next.Lead, " \t") != "" {
		return nil
	}
	t.gapAt = next.Pos
	return &Text{
		Content: next.Lead,
		Start:   next.Pos - gotoken.Pos(len(next.Lead)),
		End:     next.Pos,
	}
}

// text joins tokens up to the end of the stream, a "<" or a brace group. Spacing
// between tokens is kept as written, and so is the spacing before a "<" or "{" stop.
// The spacing before the first token is kept unless the text starts the stream.
func (t *Tokenizer) text() *Text {
	txt := &Text{}
	var b strings.Builder
	n := 0
	for {
		next := t.s.Peek()
		if next.Kind == EOF {
			break
		}
		if next.IsPunct("<") || next.IsGroup('{') {
			if n > 0 {
				b.WriteString(next.Lead)
				t.gapAt = next.Pos
			}
			break
		}
		tok := t.s.Next()
		if n == 0 {
			txt.Start = tok.Pos
			if t.started && tok.Lead != "" {
				txt.Start -= gotoken.Pos(len(tok.Lead))
				b.WriteString(tok.Lead)
			}
		} else {
			b.WriteString(tok.Lead)
		}
		b.WriteString(tok.Src)
		txt.End = tok.End
		n++
	}
	txt.Content = b.String()
	return txt
}

func (t *Tokenizer) interp() (Token, error) {
	g := t.s.Next()
	inner := g.Src[1 : len(g.Src)-1]
	if err := checkExpr(inner); err != nil {
		return nil, diag.Errorf(diag.Expression, g.Pos, g.End, "interpolation %s is not a single expression: %s", g.Src, err)
	}
	return &Interp{
		Expr: trimmedExpr(inner, g.Pos+1),
		Pos:  g.Pos,
		End:  g.End,
	}, nil
}

// spanExpr rebuilds the exact source of span and checks that it is one expression. A
// value that is a single brace group, as in class={cls}, stands for its contents.
func spanExpr(span []SourceToken) (ast.Expr, error) {
	if len(span) == 1 && span[0].IsGroup('{') {
		g := span[0]
		inner := g.Src[1 : len(g.Src)-1]
		if err := checkExpr(inner); err != nil {
			return ast.Expr{}, diag.Errorf(diag.Expression, g.Pos, g.End, "attribute value %s is not a single expression: %s", g.Src, err)
		}
		return trimmedExpr(inner, g.Pos+1), nil
	}
	var b strings.Builder
	for i, tok := range span {
		if i > 0 {
			b.WriteString(tok.Lead)
		}
		b.WriteString(tok.Src)
	}
	first, last := span[0], span[len(span)-1]
	src := b.String()
	if err := checkExpr(src); err != nil {
		return ast.Expr{}, diag.Errorf(diag.Expression, first.Pos, last.End, "attribute value %q is not a single expression: %s", src, err)
	}
	return ast.Expr{Src: src, Pos: first.Pos, End: last.End}, nil
}

func checkExpr(src string) error {
	_, err := goparser.ParseExpr(src)
	if err == nil {
		return nil
	}
	var list goscanner.ErrorList
	if errors.As(err, &list) && len(list) > 0 {
		return errors.New(list[0].Msg)
	}
	return err
}

func trimmedExpr(src string, base gotoken.Pos) ast.Expr {
	lead := len(src) - len(strings.TrimLeft(src, " \t\r\n"))
	s := strings.TrimSpace(src)
	pos := base + gotoken.Pos(lead)
	return ast.Expr{Src: s, Pos: pos, End: pos + gotoken.Pos(len(s))}
}

func describe(t SourceToken) string {
	if t.Kind == EOF {
		return "end of input"
	}
	return fmt.Sprintf("%q", t.Src)
}
