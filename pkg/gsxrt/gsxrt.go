// Package gsxrt holds the helpers that code generated by gsx calls at runtime.
package gsxrt

import (
	"fmt"
	"strings"

	g "maragu.dev/gomponents"
)

// String stringifies an interpolated value. Nodes are rendered to their markup.
func String(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case []byte:
		return string(t)
	case g.Node:
		var b strings.Builder
		if err := t.Render(&b); err != nil {
			return ""
		}
		return b.String()
	case fmt.Stringer:
		return t.String()
	case error:
		return t.Error()
	default:
		return fmt.Sprint(v)
	}
}

// Node splices an interpolated value into a gomponents tree. Nodes pass through,
// node slices become a Group and anything else becomes escaped Text.
func Node(v any) g.Node {
	switch t := v.(type) {
	case nil:
		return nil
	case g.Node:
		return t
	case []g.Node:
		return g.Group(t)
	default:
		return g.Text(String(v))
	}
}
