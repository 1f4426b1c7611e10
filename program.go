package husk

import (
	"errors"
	"fmt"

	"github.com/gavrilovmiroslav/husk/environ"
	"github.com/gavrilovmiroslav/husk/term"
	"github.com/samber/lo"
)

// Program holds the declarations of a loaded source. It is built once by Load
// and never written afterwards.
type Program struct {
	types    environ.Environment[term.Entity]
	clauses  environ.Environment[[]Clause]
	bindings environ.Environment[term.Term]
	ctors    map[string]string
}

func Load(decls []term.Term) (*Program, error) {
	return LoadConfig(decls, DefaultConfig())
}

func LoadConfig(decls []term.Term, cfg Config) (*Program, error) {
	p := Program{
		types:    environ.Empty[term.Entity](),
		clauses:  environ.Empty[[]Clause](),
		bindings: environ.Empty[term.Term](),
		ctors:    make(map[string]string),
	}
	for _, d := range decls {
		if err := p.load(d, cfg); err != nil {
			return nil, err
		}
	}
	p.types = environ.Freeze(p.types)
	p.clauses = environ.Freeze(p.clauses)
	p.bindings = environ.Freeze(p.bindings)
	return &p, nil
}

func (p *Program) load(decl term.Term, cfg Config) error {
	switch d := decl.(type) {
	case term.Entity:
		return p.loadEntity(d)
	case term.FuncDef:
		return p.loadClause(d, cfg.Linear)
	case term.IsA:
		return p.loadBinding(d)
	case term.Builtin:
		return p.loadBinding(d.Decl)
	default:
		return fmt.Errorf("%s (%T): %w", decl, decl, ErrMalformedDeclaration)
	}
}

func (p *Program) loadEntity(e term.Entity) error {
	head, err := e.Head()
	if err != nil {
		return fmt.Errorf("decltype: %w", ErrMalformedDeclaration)
	}
	name := head.String()
	if err := p.types.Define(name, e); err != nil {
		return fmt.Errorf("%s: %w", name, ErrDuplicateType)
	}
	for _, c := range e.Constructors() {
		h, err := c.Head()
		if err != nil {
			continue
		}
		p.ctors[h.String()] = name
	}
	return nil
}

func (p *Program) loadClause(def term.FuncDef, linear bool) error {
	c, err := compileClause(def, linear)
	if err != nil {
		return err
	}
	list, err := p.clauses.Resolve(c.Name)
	if err != nil {
		return p.clauses.Define(c.Name, []Clause{c})
	}
	return p.clauses.Assign(c.Name, append(list, c))
}

func (p *Program) loadBinding(isa term.IsA) error {
	id, ok := isa.Left.(term.Identifier)
	if !ok {
		return fmt.Errorf("%s: left side is not an identifier: %w", isa, ErrMalformedDeclaration)
	}
	if err := p.bindings.Define(id.Name, isa.Right); err != nil {
		return fmt.Errorf("%s: %w", id.Name, ErrDuplicateBinding)
	}
	return nil
}

func (p *Program) Type(name string) (term.Entity, error) {
	return p.types.Resolve(name)
}

func (p *Program) Types() []string {
	return p.types.Names()
}

func (p *Program) Clauses(name string) ([]Clause, error) {
	list, err := p.clauses.Resolve(name)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownFunction)
	}
	return list, nil
}

func (p *Program) Functions() []string {
	return p.clauses.Names()
}

func (p *Program) Binding(name string) (term.Term, error) {
	return p.bindings.Resolve(name)
}

func (p *Program) Bindings() []string {
	return p.bindings.Names()
}

// Constructor reports the type declaring name as one of its constructors.
func (p *Program) Constructor(name string) (string, bool) {
	t, ok := p.ctors[name]
	return t, ok
}

// isValue reports whether an application headed by name is already in weak
// head normal form: name is a constructor and no clause rewrites it.
func (p *Program) isValue(name string) bool {
	if _, ok := p.ctors[name]; !ok {
		return false
	}
	_, err := p.clauses.Resolve(name)
	return errors.Is(err, environ.ErrNotDefined)
}

// Undeclared lists the functions that have clauses but no signature.
func (p *Program) Undeclared() []string {
	return lo.Filter(p.Functions(), func(name string, _ int) bool {
		_, err := p.bindings.Resolve(name)
		return err != nil
	})
}
