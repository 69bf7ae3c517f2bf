// Package source tokenizes .gsx files with go/scanner and groups brackets into token
// trees, which is the raw stream the markup tokenizer consumes.
package source

import (
	goscanner "go/scanner"
	gotoken "go/token"
	"strings"
	"unicode/utf8"

	"github.com/kilianc/render/internal/gsx/diag"
	"github.com/kilianc/render/internal/gsx/markup"
)

type frame struct {
	open  markup.SourceToken
	close gotoken.Token
	toks  []markup.SourceToken
}

// Scan tokenizes src. Comments are skipped (they stay in the Lead of the next token)
// and automatic semicolons are dropped. Scanner errors are tolerated so that free text
// such as "#" or "@" survives; unbalanced brackets are a diag.Lexical error.
func Scan(fset *gotoken.FileSet, filename string, src []byte) ([]markup.SourceToken, error) {
	file := fset.AddFile(filename, -1, len(src))

	var s goscanner.Scanner
	s.Init(file, src, func(gotoken.Position, string) {}, 0)

	stack := []*frame{{}}
	prev := 0
	for {
		pos, tok, lit := s.Scan()
		if tok == gotoken.EOF {
			break
		}
		if tok == gotoken.SEMICOLON && lit == "\n" {
			continue
		}

		off := file.Offset(pos)
		end := off + tokenLen(src, off, tok, lit)
		if end > len(src) {
			end = len(src)
		}
		st := markup.SourceToken{
			Src:  string(src[off:end]),
			Lead: string(src[prev:off]),
			Pos:  pos,
			End:  file.Pos(end),
		}
		prev = end

		top := stack[len(stack)-1]
		switch tok {
		case gotoken.LPAREN, gotoken.LBRACK, gotoken.LBRACE:
			st.Kind = markup.Group
			st.Delim = st.Src[0]
			stack = append(stack, &frame{open: st, close: closerOf(tok)})
			continue

		case gotoken.RPAREN, gotoken.RBRACK, gotoken.RBRACE:
			if len(stack) == 1 {
				return nil, diag.Errorf(diag.Lexical, st.Pos, st.End, "unexpected %q with no matching opening bracket", st.Src)
			}
			if tok != top.close {
				e := diag.Errorf(diag.Lexical, st.Pos, st.End, "mismatched %q, expected %q", st.Src, top.close.String())
				e.Related = top.open.Pos
				return nil, e
			}
			stack = stack[:len(stack)-1]
			g := top.open
			g.Src = string(src[file.Offset(g.Pos):end])
			g.End = st.End
			g.Inner = top.toks
			parent := stack[len(stack)-1]
			parent.toks = append(parent.toks, g)
			continue
		}

		st.Kind = classify(tok)
		top.toks = append(top.toks, st)
	}

	if len(stack) > 1 {
		open := stack[len(stack)-1].open
		return nil, diag.Errorf(diag.Lexical, open.Pos, open.End, "unclosed %q", open.Src[:1])
	}
	return stack[0].toks, nil
}

func classify(tok gotoken.Token) markup.Kind {
	switch {
	case tok == gotoken.IDENT, tok.IsKeyword():
		// keywords are valid tag and attribute names (<select>, type="text")
		return markup.Ident
	case tok.IsLiteral():
		return markup.Literal
	default:
		return markup.Punct
	}
}

func closerOf(tok gotoken.Token) gotoken.Token {
	switch tok {
	case gotoken.LPAREN:
		return gotoken.RPAREN
	case gotoken.LBRACK:
		return gotoken.RBRACK
	default:
		return gotoken.RBRACE
	}
}

// tokenLen is the length in bytes of the token at off.
func tokenLen(src []byte, off int, tok gotoken.Token, lit string) int {
	switch {
	case tok == gotoken.STRING && src[off] == '`':
		// lit has carriage returns stripped; measure the source instead
		if i := strings.IndexByte(string(src[off+1:]), '`'); i >= 0 {
			return i + 2
		}
		return len(src) - off
	case tok == gotoken.ILLEGAL:
		// lit is U+FFFD for an invalid byte; take the width from the source
		_, w := utf8.DecodeRune(src[off:])
		return w
	case tok.IsLiteral(), tok.IsKeyword():
		if lit != "" {
			return len(lit)
		}
		return 1
	case tok == gotoken.SEMICOLON:
		return 1
	default:
		return len(tok.String())
	}
}
