package husk

import (
	"bytes"
	"errors"
	"testing"

	"github.com/fatih/color"
	"github.com/gavrilovmiroslav/husk/term"
)

func TestTee(t *testing.T) {
	color.NoColor = true
	var b1, b2 bytes.Buffer
	tr := Tee(Trace(&b1), Discard(), Trace(&b2))
	tr.Enter(1, "f", []term.Term{term.Ident("a"), term.Apply(term.Ident("g"), term.Ident("b"))})
	tr.Leave(1, "f", term.Ident("c"), nil)
	tr.Leave(2, "g", nil, errors.New("boom"))

	want := " call f (a, g b)\n return c\n  fail g: boom\n"
	for _, b := range []*bytes.Buffer{&b1, &b2} {
		if got := b.String(); got != want {
			t.Errorf("\nExpected: %q\nActual: %q", want, got)
		}
	}
}

func TestEvalErrorTrace(t *testing.T) {
	err := &EvalError{
		Name: "g",
		Stack: []Frame{
			{Name: "f", Args: []string{"a", "b"}},
			{Name: "g"},
		},
		Err: ErrNoMatchingClause,
	}
	if !errors.Is(err, ErrNoMatchingClause) {
		t.Errorf("EvalError does not unwrap to its cause")
	}
	if got, want := err.Error(), "g: no matching clause"; got != want {
		t.Errorf("\nExpected: %s\nActual: %s", want, got)
	}
	if got, want := err.Trace(), " f a, b\n  g\n"; got != want {
		t.Errorf("\nExpected: %q\nActual: %q", want, got)
	}
}
