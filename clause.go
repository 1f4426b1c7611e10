package husk

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/ahrtr/gocontainer/set"
	"github.com/gavrilovmiroslav/husk/term"
)

const wildcard = "_"

type PatternKind int

const (
	Literal PatternKind = iota
	Wildcard
	Variable
)

func (k PatternKind) String() string {
	switch k {
	case Wildcard:
		return "wildcard"
	case Variable:
		return "variable"
	default:
		return "literal"
	}
}

// Pattern is one formal parameter of a clause. Its kind is decided once, when
// the clause is compiled.
type Pattern struct {
	Kind PatternKind
	Term term.Term
}

func classify(t term.Term) Pattern {
	p := Pattern{
		Kind: Literal,
		Term: term.Strip(t),
	}
	id, ok := p.Term.(term.Identifier)
	if !ok {
		return p
	}
	if id.Name == wildcard {
		p.Kind = Wildcard
		return p
	}
	if r, _ := utf8.DecodeRuneInString(id.Name); unicode.IsUpper(r) {
		p.Kind = Variable
	}
	return p
}

// Clause is a compiled rewrite rule.
type Clause struct {
	Name   string
	Params []Pattern
	Body   term.Term
	Def    term.FuncDef
}

func compileClause(def term.FuncDef, linear bool) (Clause, error) {
	app, ok := def.Left.(term.Application)
	if !ok || len(app.Seq) == 0 {
		return Clause{}, fmt.Errorf("%s: left side is not an application: %w", def, ErrMalformedDeclaration)
	}
	c := Clause{
		Name: app.Seq[0].String(),
		Body: def.Right,
		Def:  def,
	}
	seen := set.New()
	for _, t := range app.Seq[1:] {
		p := classify(t)
		if p.Kind == Variable {
			name := p.Term.String()
			if linear && seen.Contains(name) {
				return Clause{}, fmt.Errorf("%s: %s: %w", c.Name, name, ErrNonLinearPattern)
			}
			seen.Add(name)
		}
		c.Params = append(c.Params, p)
	}
	return c, nil
}

func (c Clause) Arity() int {
	return len(c.Params)
}

func (c Clause) String() string {
	return c.Def.String()
}

type binding struct {
	key   term.Term
	value term.Term
}

// bindings keeps the order in which variables were first bound. Binding a
// variable again replaces its value in place.
type bindings []binding

func (bs bindings) bind(key, value term.Term) bindings {
	for i := range bs {
		if bs[i].key.Equals(key) {
			bs[i].value = value
			return bs
		}
	}
	return append(bs, binding{key: key, value: value})
}

func (bs bindings) apply(body term.Term) term.Term {
	for _, b := range bs {
		body = term.Subst(body, b.key, b.value)
	}
	return body
}
