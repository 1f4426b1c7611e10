package husk

import (
	"errors"
	"testing"

	"github.com/gavrilovmiroslav/husk/syntax"
	"github.com/gavrilovmiroslav/husk/term"
)

const booleans = `
decltype boolean = true | false ;
f : boolean -> boolean ;
> f true = false ;
> f false = true ;
`

func TestLoadPartitions(t *testing.T) {
	src := booleans + `
builtin print : boolean -> 'unit ;
> g X = f X ;
`
	prog := load(t, src)

	if _, err := prog.Type("boolean"); err != nil {
		t.Errorf("boolean: %s", err)
	}
	if typ, ok := prog.Constructor("true"); !ok || typ != "boolean" {
		t.Errorf("Expected: true is a constructor of boolean\nActual: %q %t", typ, ok)
	}
	list, err := prog.Clauses("f")
	if err != nil || len(list) != 2 {
		t.Fatalf("Expected: 2 clauses for f\nActual: %d (%v)", len(list), err)
	}
	if !list[0].Def.Equals(term.Define(term.Apply(term.Ident("f"), term.Ident("true")), term.Ident("false"))) {
		t.Errorf("clauses out of declaration order: %s", list[0])
	}
	sig, err := prog.Binding("print")
	if err != nil || !sig.Equals(term.Func(term.Ident("boolean"), term.Ident("'unit"))) {
		t.Errorf("Expected: boolean -> 'unit\nActual: %v (%v)", sig, err)
	}
	if fns := prog.Functions(); len(fns) != 2 || fns[0] != "f" || fns[1] != "g" {
		t.Errorf("Expected: [f g]\nActual: %v", fns)
	}
	if u := prog.Undeclared(); len(u) != 1 || u[0] != "g" {
		t.Errorf("Expected: [g]\nActual: %v", u)
	}
}

func TestLoadPatternKinds(t *testing.T) {
	prog := load(t, "> f _ X true = X ;")
	list, _ := prog.Clauses("f")
	want := []PatternKind{Wildcard, Variable, Literal}
	for i, p := range list[0].Params {
		if p.Kind != want[i] {
			t.Errorf("param %d: Expected: %s\nActual: %s", i, want[i], p.Kind)
		}
	}
	if list[0].Arity() != 3 {
		t.Errorf("Expected: arity 3\nActual: %d", list[0].Arity())
	}

	prog = load(t, "> g (succ (succ zero)) = two ;")
	list, _ = prog.Clauses("g")
	want2 := term.Apply(term.Ident("succ"), term.Apply(term.Ident("succ"), term.Ident("zero")))
	if p := list[0].Params[0]; p.Kind != Literal || !term.Equal(p.Term, want2) {
		t.Errorf("Expected: literal %s without groups\nActual: %s %#v", want2, p.Kind, p.Term)
	}
}

func TestLoadErrors(t *testing.T) {
	testLoadError(t, []term.Term{
		term.Declare(term.Ident("boolean"), term.Apply(term.Ident("true"))),
		term.Declare(term.Ident("boolean"), term.Apply(term.Ident("yes"))),
	}, ErrDuplicateType)
	testLoadError(t, []term.Term{
		term.Define(term.Ident("f"), term.Ident("x")),
	}, ErrMalformedDeclaration)
	testLoadError(t, []term.Term{
		term.Typed(term.Apply(term.Ident("f"), term.Ident("x")), term.Ident("t")),
	}, ErrMalformedDeclaration)
	testLoadError(t, []term.Term{
		term.Apply(term.Ident("f"), term.Ident("x")),
	}, ErrMalformedDeclaration)
	testLoadError(t, []term.Term{
		term.Marker{},
	}, ErrMalformedDeclaration)
	testLoadError(t, []term.Term{
		term.Equation{Left: term.Ident("a"), Right: term.Ident("b")},
	}, ErrMalformedDeclaration)
	testLoadError(t, []term.Term{
		term.Typed(term.Ident("f"), term.Ident("t")),
		term.Builtin{Decl: term.Typed(term.Ident("f"), term.Ident("u"))},
	}, ErrDuplicateBinding)
}

func TestLoadLinear(t *testing.T) {
	decls := parse(t, "> same X X = X ;")
	if _, err := Load(decls); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
	cfg := DefaultConfig()
	cfg.Linear = true
	if _, err := LoadConfig(decls, cfg); !errors.Is(err, ErrNonLinearPattern) {
		t.Errorf("Expected: %s\nActual: %v", ErrNonLinearPattern, err)
	}
}

func TestProgramIsFrozen(t *testing.T) {
	prog := load(t, booleans)
	if err := prog.bindings.Define("x", term.Ident("t")); err == nil {
		t.Errorf("Expected: error when writing to a loaded program")
	}
}

func load(t *testing.T, src string) *Program {
	t.Helper()
	prog, err := Load(parse(t, src))
	if err != nil {
		t.Fatalf("load: %s", err)
	}
	return prog
}

func parse(t *testing.T, src string) []term.Term {
	t.Helper()
	decls, err := syntax.ParseString(src)
	if err != nil {
		t.Fatalf("parse: %s", err)
	}
	return decls
}

func testLoadError(t *testing.T, decls []term.Term, want error) {
	t.Helper()
	_, err := Load(decls)
	if !errors.Is(err, want) {
		t.Errorf("Expected: %s\nActual: %v", want, err)
	}
}
