package husk

import (
	"fmt"

	"github.com/edwingeng/deque"
	"github.com/gavrilovmiroslav/husk/term"
	"github.com/samber/lo"
)

// Evaluator rewrites applications against the clauses of a Program. An
// Evaluator is not safe for concurrent use; create one per goroutine.
type Evaluator struct {
	prog *Program
	cfg  Config

	steps  int
	frames deque.Deque
}

func New(prog *Program, cfg Config) *Evaluator {
	return &Evaluator{
		prog:   prog,
		cfg:    cfg.withDefaults(),
		frames: deque.NewDeque(),
	}
}

func (e *Evaluator) Program() *Program {
	return e.prog
}

// Steps returns the number of rewrite steps performed so far.
func (e *Evaluator) Steps() int {
	return e.steps
}

// Call performs one rewrite step: it selects the first clause of name whose
// parameters match args and returns its body with the pattern variables
// substituted. Arguments are reduced before they are matched.
func (e *Evaluator) Call(name term.Identifier, args []term.Term) (term.Term, error) {
	if err := e.enter(name, args); err != nil {
		return nil, err
	}
	res, err := e.call(name, args)
	e.leave(name, res, err)
	return res, err
}

func (e *Evaluator) call(name term.Identifier, args []term.Term) (term.Term, error) {
	clauses, err := e.prog.clauses.Resolve(name.Name)
	if err != nil {
		return nil, e.fail(name.Name, ErrUnknownFunction)
	}
	for _, c := range clauses {
		bs, ok, err := e.match(c, args)
		if err != nil {
			return nil, err
		}
		if ok {
			return bs.apply(c.Body), nil
		}
	}
	return nil, e.fail(name.Name, ErrNoMatchingClause)
}

func (e *Evaluator) match(c Clause, args []term.Term) (bindings, bool, error) {
	if len(c.Params) > len(args) {
		return nil, false, nil
	}
	var bs bindings
	for i, p := range c.Params {
		a, err := e.Reduce(args[i])
		if err != nil {
			return nil, false, err
		}
		switch p.Kind {
		case Wildcard:
		case Variable:
			bs = bs.bind(p.Term, a)
		default:
			if !term.Equal(p.Term, term.Strip(a)) {
				return nil, false, nil
			}
		}
	}
	return bs, true, nil
}

func (e *Evaluator) enter(name term.Identifier, args []term.Term) error {
	if e.cfg.Interrupt != nil && e.cfg.Interrupt.IsSet() {
		return e.fail(name.Name, ErrInterrupted)
	}
	if e.cfg.MaxSteps > 0 && e.steps >= e.cfg.MaxSteps {
		return e.fail(name.Name, ErrStepBudget)
	}
	if e.cfg.MaxDepth > 0 && e.frames.Len() >= e.cfg.MaxDepth {
		return e.fail(name.Name, ErrDepthBudget)
	}
	e.steps++
	e.frames.PushBack(Frame{
		Name: name.Name,
		Args: lo.Map(args, func(a term.Term, _ int) string {
			return a.String()
		}),
	})
	e.cfg.Tracer.Enter(e.frames.Len(), name.Name, args)
	return nil
}

func (e *Evaluator) leave(name term.Identifier, res term.Term, err error) {
	e.cfg.Tracer.Leave(e.frames.Len(), name.Name, res, err)
	e.frames.PopBack()
}

func (e *Evaluator) fail(name string, err error) error {
	stack := lo.Map(e.frames.(interface{ Dump() []deque.Elem }).Dump(), func(v deque.Elem, _ int) Frame {
		return v.(Frame)
	})
	return &EvalError{
		Name:  name,
		Stack: stack,
		Err:   err,
	}
}

// Reduce brings t to weak head normal form: groups are unwrapped and
// applications are rewritten until the outermost term is neither.
func (e *Evaluator) Reduce(t term.Term) (term.Term, error) {
	for {
		switch x := t.(type) {
		case term.Group:
			t = x.Inner
		case term.Application:
			if len(x.Seq) == 0 {
				return x, nil
			}
			if len(x.Seq) == 1 {
				t = x.Seq[0]
				continue
			}
			head, err := e.Reduce(x.Seq[0])
			if err != nil {
				return nil, err
			}
			id, ok := head.(term.Identifier)
			if !ok {
				return nil, e.fail(head.String(), ErrMalformedHead)
			}
			if e.prog.isValue(id.Name) {
				return x, nil
			}
			res, err := e.Call(id, x.Seq[1:])
			if err != nil {
				return nil, err
			}
			t = res
		case term.Marker, term.BuiltinMarker:
			return nil, e.fail(t.String(), ErrSentinel)
		case nil:
			return nil, fmt.Errorf("nil term: %w", ErrMalformedHead)
		default:
			return t, nil
		}
	}
}

// Result is the outcome of Interpret. Diagnostic is set, and nothing is
// reduced, when the entry point does not have the expected signature.
type Result struct {
	Value      term.Term
	Steps      int
	Diagnostic error
}

// Interpret applies the entry function to the seed and reduces until a bare
// identifier comes out. There is no bound on the number of rounds besides the
// configured budgets.
func (e *Evaluator) Interpret() (Result, error) {
	var res Result
	if err := e.checkEntry(); err != nil {
		res.Diagnostic = err
		return res, nil
	}
	var curr term.Term = term.Apply(term.Ident(e.cfg.Entry), e.cfg.Seed)
	for {
		next, err := e.Reduce(curr)
		res.Steps = e.steps
		if err != nil {
			return res, err
		}
		if _, ok := next.(term.Identifier); ok || term.Equal(next, curr) {
			res.Value = next
			return res, nil
		}
		curr = next
	}
}

func (e *Evaluator) checkEntry() error {
	sig, err := e.prog.Binding(e.cfg.Entry)
	if err != nil {
		return fmt.Errorf("#0 <%s> is not declared: %w", e.cfg.Entry, ErrInvalidMainSignature)
	}
	arr, ok := sig.(term.Arrow)
	if !ok {
		return fmt.Errorf("#1 <%s> has to have type t -> %s, but %s found: %w", e.cfg.Entry, e.cfg.Unit, sig, ErrInvalidMainSignature)
	}
	if len(arr.Seq) != 2 {
		return fmt.Errorf("#2 <%s> has to have type t -> %s, but %s found: %w", e.cfg.Entry, e.cfg.Unit, sig, ErrInvalidMainSignature)
	}
	if !term.Equal(arr.Seq[1], term.Ident(e.cfg.Unit)) {
		return fmt.Errorf("#3 <%s> has to return %s, but %s found: %w", e.cfg.Entry, e.cfg.Unit, arr.Seq[1], ErrInvalidMainSignature)
	}
	return nil
}
