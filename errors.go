package husk

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrUnknownFunction      = errors.New("unknown function")
	ErrNoMatchingClause     = errors.New("no matching clause")
	ErrMalformedDeclaration = errors.New("malformed declaration")
	ErrDuplicateType        = errors.New("type already declared")
	ErrDuplicateBinding     = errors.New("name already bound")
	ErrNonLinearPattern     = errors.New("pattern variable repeated")
	ErrInvalidMainSignature = errors.New("invalid entry signature")
	ErrMalformedHead        = errors.New("application head is not an identifier")
	ErrSentinel             = errors.New("parser marker reached the evaluator")
	ErrStepBudget           = errors.New("step budget exceeded")
	ErrDepthBudget          = errors.New("depth budget exceeded")
	ErrInterrupted          = errors.New("interrupted")
)

// Frame is an active call of the evaluator.
type Frame struct {
	Name string
	Args []string
}

func (f Frame) String() string {
	if len(f.Args) == 0 {
		return f.Name
	}
	return fmt.Sprintf("%s %s", f.Name, strings.Join(f.Args, ", "))
}

// EvalError reports the failure of a reduction together with the calls that
// were active when it happened, innermost last.
type EvalError struct {
	Name  string
	Stack []Frame
	Err   error
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("%s: %s", e.Name, e.Err)
}

func (e *EvalError) Unwrap() error {
	return e.Err
}

// Trace renders the call stack, outermost call first.
func (e *EvalError) Trace() string {
	var str strings.Builder
	for i, f := range e.Stack {
		str.WriteString(strings.Repeat(" ", i+1))
		str.WriteString(f.String())
		str.WriteString("\n")
	}
	return str.String()
}
