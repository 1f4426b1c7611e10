package term

import (
	"errors"
	"fmt"
)

var ErrNotCurried = errors.New("not a curried sequence")

func Equal(a, b Term) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equals(b)
}

// Subst replaces every occurrence of key in t by repl. Names bound inside
// repl are not renamed: a variable of t that also appears in repl is
// captured.
func Subst(t, key, repl Term) Term {
	if t == nil {
		return nil
	}
	return t.Subst(key, repl)
}

// Clone returns a deep copy of t sharing no slices with it.
func Clone(t Term) Term {
	switch t := t.(type) {
	case Group:
		return Group{Inner: Clone(t.Inner)}
	case Application:
		return Application{Seq: cloneSeq(t.Seq)}
	case Arrow:
		return Arrow{Seq: cloneSeq(t.Seq)}
	case Entity:
		return Entity{Seq: cloneSeq(t.Seq)}
	case IsA:
		return IsA{Left: Clone(t.Left), Right: Clone(t.Right)}
	case Equation:
		return Equation{Left: Clone(t.Left), Right: Clone(t.Right)}
	case FuncDef:
		return FuncDef{Left: Clone(t.Left), Right: Clone(t.Right)}
	case Builtin:
		return Builtin{Decl: Clone(t.Decl).(IsA)}
	default:
		return t
	}
}

// Strip removes every Group from t. Two terms that differ only in their
// parentheses are equal once stripped.
func Strip(t Term) Term {
	switch t := t.(type) {
	case Group:
		return Strip(t.Inner)
	case Application:
		return Application{Seq: stripSeq(t.Seq)}
	case Arrow:
		return Arrow{Seq: stripSeq(t.Seq)}
	case Entity:
		return Entity{Seq: stripSeq(t.Seq)}
	case IsA:
		return IsA{Left: Strip(t.Left), Right: Strip(t.Right)}
	case Equation:
		return Equation{Left: Strip(t.Left), Right: Strip(t.Right)}
	case FuncDef:
		return FuncDef{Left: Strip(t.Left), Right: Strip(t.Right)}
	case Builtin:
		return Builtin{Decl: Strip(t.Decl).(IsA)}
	default:
		return t
	}
}

func Tail(t Term) (Curried, error) {
	c, ok := t.(Curried)
	if !ok {
		return nil, fmt.Errorf("%s: %w", t, ErrNotCurried)
	}
	return c.Tail()
}

func Head(t Term) (Term, error) {
	c, ok := t.(Curried)
	if !ok {
		return nil, fmt.Errorf("%s: %w", t, ErrNotCurried)
	}
	return c.Head()
}

// Occurs reports whether key appears anywhere in t.
func Occurs(t, key Term) bool {
	if Equal(t, key) {
		return true
	}
	switch t := t.(type) {
	case Group:
		return Occurs(t.Inner, key)
	case Curried:
		for _, e := range t.Elems() {
			if Occurs(e, key) {
				return true
			}
		}
	case IsA:
		return Occurs(t.Left, key) || Occurs(t.Right, key)
	case Equation:
		return Occurs(t.Left, key) || Occurs(t.Right, key)
	case FuncDef:
		return Occurs(t.Left, key) || Occurs(t.Right, key)
	}
	return false
}

func equalSeq(a, b []Term) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !Equal(a[i], b[i]) {
			return false
		}
	}
	return true
}

func substSeq(seq []Term, key, repl Term) []Term {
	list := make([]Term, len(seq))
	for i := range seq {
		list[i] = Subst(seq[i], key, repl)
	}
	return list
}

func stripSeq(seq []Term) []Term {
	list := make([]Term, len(seq))
	for i := range seq {
		list[i] = Strip(seq[i])
	}
	return list
}

func cloneSeq(seq []Term) []Term {
	list := make([]Term, len(seq))
	for i := range seq {
		list[i] = Clone(seq[i])
	}
	return list
}
