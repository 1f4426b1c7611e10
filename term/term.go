package term

import (
	"errors"
)

var ErrEmpty = errors.New("empty sequence")

// Term is a node of the immutable syntax tree. Every transformation returns a
// new Term; a Term is never modified once built.
type Term interface {
	Equals(Term) bool
	Subst(key, repl Term) Term
	String() string
}

// Curried is implemented by the sequence variants: Application, Arrow and
// Entity.
type Curried interface {
	Term
	Elems() []Term
	Head() (Term, error)
	Tail() (Curried, error)
}

type Identifier struct {
	Name string
}

func Ident(name string) Identifier {
	return Identifier{
		Name: name,
	}
}

func (i Identifier) Equals(other Term) bool {
	o, ok := other.(Identifier)
	return ok && o.Name == i.Name
}

func (i Identifier) Subst(key, repl Term) Term {
	if i.Equals(key) {
		return repl
	}
	return i
}

// Group is a parenthesized sub-expression. It only records how the source was
// written: reduction and rendering look through it.
type Group struct {
	Inner Term
}

func Paren(t Term) Group {
	return Group{
		Inner: t,
	}
}

func (g Group) Equals(other Term) bool {
	o, ok := other.(Group)
	return ok && Equal(g.Inner, o.Inner)
}

func (g Group) Subst(key, repl Term) Term {
	if g.Equals(key) {
		return repl
	}
	return Group{
		Inner: Subst(g.Inner, key, repl),
	}
}

// Application is the juxtaposition of a head against its arguments.
type Application struct {
	Seq []Term
}

func Apply(head Term, args ...Term) Application {
	return Application{
		Seq: join(head, args),
	}
}

func (a Application) Elems() []Term {
	return a.Seq
}

func (a Application) Head() (Term, error) {
	return head(a.Seq)
}

func (a Application) Tail() (Curried, error) {
	return Application{
		Seq: tail(a.Seq),
	}, nil
}

func (a Application) Equals(other Term) bool {
	o, ok := other.(Application)
	return ok && equalSeq(a.Seq, o.Seq)
}

func (a Application) Subst(key, repl Term) Term {
	if a.Equals(key) {
		return repl
	}
	return Application{
		Seq: substSeq(a.Seq, key, repl),
	}
}

// Arrow is a function signature built by chaining "->".
type Arrow struct {
	Seq []Term
}

func Func(from Term, to ...Term) Arrow {
	return Arrow{
		Seq: join(from, to),
	}
}

func (a Arrow) Elems() []Term {
	return a.Seq
}

func (a Arrow) Head() (Term, error) {
	return head(a.Seq)
}

func (a Arrow) Tail() (Curried, error) {
	return Arrow{
		Seq: tail(a.Seq),
	}, nil
}

func (a Arrow) Equals(other Term) bool {
	o, ok := other.(Arrow)
	return ok && equalSeq(a.Seq, o.Seq)
}

func (a Arrow) Subst(key, repl Term) Term {
	if a.Equals(key) {
		return repl
	}
	return Arrow{
		Seq: substSeq(a.Seq, key, repl),
	}
}

// Entity is a type declaration. The first element names the type, the
// following identifiers are its parameters and every Application after them
// is one constructor with its arguments.
type Entity struct {
	Seq []Term
}

func Declare(name Term, rest ...Term) Entity {
	return Entity{
		Seq: join(name, rest),
	}
}

func (e Entity) Elems() []Term {
	return e.Seq
}

func (e Entity) Head() (Term, error) {
	return head(e.Seq)
}

func (e Entity) Tail() (Curried, error) {
	return Entity{
		Seq: tail(e.Seq),
	}, nil
}

func (e Entity) Params() []Term {
	var list []Term
	for _, t := range tail(e.Seq) {
		if _, ok := t.(Identifier); !ok {
			break
		}
		list = append(list, t)
	}
	return list
}

func (e Entity) Constructors() []Application {
	var list []Application
	for _, t := range tail(e.Seq) {
		if a, ok := t.(Application); ok {
			list = append(list, a)
		}
	}
	return list
}

func (e Entity) Equals(other Term) bool {
	o, ok := other.(Entity)
	return ok && equalSeq(e.Seq, o.Seq)
}

func (e Entity) Subst(key, repl Term) Term {
	if e.Equals(key) {
		return repl
	}
	return Entity{
		Seq: substSeq(e.Seq, key, repl),
	}
}

type IsA struct {
	Left  Term
	Right Term
}

func Typed(left, right Term) IsA {
	return IsA{
		Left:  left,
		Right: right,
	}
}

func (i IsA) Equals(other Term) bool {
	o, ok := other.(IsA)
	return ok && Equal(i.Left, o.Left) && Equal(i.Right, o.Right)
}

func (i IsA) Subst(key, repl Term) Term {
	if i.Equals(key) {
		return repl
	}
	return IsA{
		Left:  i.Left.Subst(key, repl),
		Right: i.Right.Subst(key, repl),
	}
}

type Equation struct {
	Left  Term
	Right Term
}

func (e Equation) Equals(other Term) bool {
	o, ok := other.(Equation)
	return ok && Equal(e.Left, o.Left) && Equal(e.Right, o.Right)
}

func (e Equation) Subst(key, repl Term) Term {
	if e.Equals(key) {
		return repl
	}
	return Equation{
		Left:  e.Left.Subst(key, repl),
		Right: e.Right.Subst(key, repl),
	}
}

// FuncDef is one rewrite clause: Left is the pattern application whose head
// names the function, Right is the body.
type FuncDef struct {
	Left  Term
	Right Term
}

func Define(left, right Term) FuncDef {
	return FuncDef{
		Left:  left,
		Right: right,
	}
}

func (f FuncDef) Equals(other Term) bool {
	o, ok := other.(FuncDef)
	return ok && Equal(f.Left, o.Left) && Equal(f.Right, o.Right)
}

func (f FuncDef) Subst(key, repl Term) Term {
	if f.Equals(key) {
		return repl
	}
	return FuncDef{
		Left:  f.Left.Subst(key, repl),
		Right: f.Right.Subst(key, repl),
	}
}

// Builtin flags a signature as provided by the host.
type Builtin struct {
	Decl IsA
}

func (b Builtin) Equals(other Term) bool {
	o, ok := other.(Builtin)
	return ok && b.Decl.Equals(o.Decl)
}

func (b Builtin) Subst(key, repl Term) Term {
	if b.Equals(key) {
		return repl
	}
	return b
}

// Marker and BuiltinMarker are placeholders used while a declaration is being
// assembled by the parser.
type Marker struct{}

func (Marker) Equals(other Term) bool {
	_, ok := other.(Marker)
	return ok
}

func (m Marker) Subst(key, repl Term) Term {
	if m.Equals(key) {
		return repl
	}
	return m
}

type BuiltinMarker struct{}

func (BuiltinMarker) Equals(other Term) bool {
	_, ok := other.(BuiltinMarker)
	return ok
}

func (m BuiltinMarker) Subst(key, repl Term) Term {
	if m.Equals(key) {
		return repl
	}
	return m
}

func join(first Term, rest []Term) []Term {
	seq := make([]Term, 0, len(rest)+1)
	seq = append(seq, first)
	return append(seq, rest...)
}

func head(seq []Term) (Term, error) {
	if len(seq) == 0 {
		return nil, ErrEmpty
	}
	return seq[0], nil
}

func tail(seq []Term) []Term {
	if len(seq) <= 1 {
		return nil
	}
	list := make([]Term, len(seq)-1)
	copy(list, seq[1:])
	return list
}
