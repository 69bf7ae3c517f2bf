package source

import (
	gotoken "go/token"

	"github.com/kilianc/render/internal/gsx/markup"
)

// Block is one macro invocation, e.g. render!{ <p>hi</p> }.
type Block struct {
	Pos     gotoken.Pos // start of the macro name
	End     gotoken.Pos // just past the closing brace
	BodyEnd gotoken.Pos // the closing brace
	Body    []markup.SourceToken
}

// Stream returns the markup stream over the block body.
func (b Block) Stream() markup.Stream {
	return markup.NewStream(b.Body, b.BodyEnd)
}

// FindBlocks returns every `macro!{...}` block in toks, in source order, looking
// inside bracket groups too. Blocks are not searched for nested blocks.
func FindBlocks(toks []markup.SourceToken, macro string) []Block {
	var out []Block
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.IsIdent() && t.Src == macro && i+2 < len(toks) && toks[i+1].IsPunct("!") && toks[i+2].IsGroup('{') {
			g := toks[i+2]
			out = append(out, Block{
				Pos:     t.Pos,
				End:     g.End,
				BodyEnd: g.End - 1,
				Body:    g.Inner,
			})
			i += 2
			continue
		}
		if t.Kind == markup.Group {
			out = append(out, FindBlocks(t.Inner, macro)...)
		}
	}
	return out
}
