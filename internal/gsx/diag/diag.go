// Package diag holds the diagnostics produced while compiling markup blocks.
package diag

import (
	"fmt"
	gotoken "go/token"

	"github.com/pkg/errors"
)

// Kind classifies a compile error.
type Kind int

const (
	// Lexical is a malformed tag, attribute or interpolation.
	Lexical Kind = iota
	// Structural is a tag nesting or matching violation.
	Structural
	// Expression is a token span that does not form a single Go expression.
	Expression
)

func (k Kind) String() string {
	switch k {
	case Lexical:
		return "lexical"
	case Structural:
		return "structural"
	case Expression:
		return "expression"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Error is a located compile error. Pos and End delimit the offending span; End may be
// NoPos when the error points at a single token. Related is a second location, set
// for tag mismatches and bracket mismatches (the opening side).
type Error struct {
	Kind    Kind
	Msg     string
	Pos     gotoken.Pos
	End     gotoken.Pos
	Related gotoken.Pos
}

func (e *Error) Error() string {
	return e.Kind.String() + " error: " + e.Msg
}

// Errorf returns an error of kind k spanning [pos, end).
func Errorf(k Kind, pos, end gotoken.Pos, format string, args ...interface{}) *Error {
	return &Error{
		Kind: k,
		Msg:  fmt.Sprintf(format, args...),
		Pos:  pos,
		End:  end,
	}
}

type located struct {
	err error
	msg string
}

func (l *located) Error() string { return l.msg }

func (l *located) Unwrap() error { return l.err }

// Locate prefixes the message of err with its resolved "file:line:col" when err
// carries an *Error, and appends the related position when set. The result unwraps
// to err. Other errors are returned unchanged.
func Locate(fset *gotoken.FileSet, err error) error {
	var e *Error
	if fset == nil || !errors.As(err, &e) || !e.Pos.IsValid() {
		return err
	}
	msg := fmt.Sprintf("%s: %s", fset.Position(e.Pos), err)
	if e.Related.IsValid() {
		msg += fmt.Sprintf(" (opened at %s)", fset.Position(e.Related))
	}
	return &located{err: err, msg: msg}
}
