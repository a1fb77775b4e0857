package combinator

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// ErrUnbalancedParens is reported for a stray ')' or an unclosed '('.
	ErrUnbalancedParens = errors.New("unbalanced parentheses")
	// ErrEmptyTerm is reported for empty input or an empty group "()".
	ErrEmptyTerm = errors.New("empty term")
)

// ParseError locates a notation error in the input.
type ParseError struct {
	Pos int // byte offset of the offending character
	Msg string
	Err error
}

func (e *ParseError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%v at position %d", e.Err, e.Pos)
	}
	return fmt.Sprintf("%v at position %d: %s", e.Err, e.Pos, e.Msg)
}

func (e *ParseError) Unwrap() error { return e.Err }
