package markup

import gotoken "go/token"

// Kind classifies a SourceToken.
type Kind int

const (
	EOF Kind = iota
	Ident
	Punct
	Literal
	Group
)

// SourceToken is one lexical unit of the host stream. Groups hold a bracketed token
// tree: Src spans both delimiters and Inner holds the tokens between them.
type SourceToken struct {
	Kind Kind
	Src  string
	// Lead is the raw source (whitespace, comments) between the previous token and
	// this one.
	Lead  string
	Pos   gotoken.Pos
	End   gotoken.Pos
	Delim byte // '(', '[' or '{' for groups
	Inner []SourceToken
}

func (t SourceToken) IsIdent() bool { return t.Kind == Ident }

func (t SourceToken) IsPunct(s string) bool { return t.Kind == Punct && t.Src == s }

func (t SourceToken) IsGroup(delim byte) bool { return t.Kind == Group && t.Delim == delim }

// Stream is what the Tokenizer needs from a host lexer. Past the end, Peek, Peek2 and
// Next return a token of kind EOF.
type Stream interface {
	Peek() SourceToken
	Peek2() SourceToken
	Next() SourceToken
}

type sliceStream struct {
	toks []SourceToken
	i    int
	eof  SourceToken
}

// NewStream returns a Stream over toks. end is the position reported for the EOF
// token, usually the closing delimiter of the enclosing block.
func NewStream(toks []SourceToken, end gotoken.Pos) Stream {
	return &sliceStream{
		toks: toks,
		eof:  SourceToken{Kind: EOF, Pos: end, End: end},
	}
}

func (s *sliceStream) at(k int) SourceToken {
	if s.i+k < len(s.toks) {
		return s.toks[s.i+k]
	}
	return s.eof
}

func (s *sliceStream) Peek() SourceToken { return s.at(0) }

func (s *sliceStream) Peek2() SourceToken { return s.at(1) }

func (s *sliceStream) Next() SourceToken {
	t := s.at(0)
	if s.i < len(s.toks) {
		s.i++
	}
	return t
}
