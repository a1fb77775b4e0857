package reducer

import (
	"fmt"

	"github.com/pkg/errors"
	"github.com/vic/goski/pkg/combinator"
)

var (
	ErrInvalidTemplate     = errors.New("invalid combinator template")
	ErrDuplicateCombinator = errors.New("duplicate combinator")
	ErrRegistryFrozen      = errors.New("registry is frozen")
	ErrBudgetExceeded      = errors.New("reduction budget exceeded")
	ErrNoRedex             = errors.New("term has no weak redex")
)

// BudgetError is returned by Normalize when a bound stops reduction before
// a normal form is reached. Term holds the last term computed.
type BudgetError struct {
	Steps  int
	Term   combinator.Term
	Reason string
	Cause  error // context error, if cancellation stopped the run
}

func (e *BudgetError) Error() string {
	msg := fmt.Sprintf("%v after %d steps: %s", ErrBudgetExceeded, e.Steps, e.Reason)
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

// Unwrap makes both ErrBudgetExceeded and the cause visible to errors.Is.
func (e *BudgetError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrBudgetExceeded}
	}
	return []error{ErrBudgetExceeded, e.Cause}
}
