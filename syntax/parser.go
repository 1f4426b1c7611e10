package syntax

import (
	"fmt"
	"io"
	"strings"

	"github.com/edwingeng/deque"
	"github.com/gavrilovmiroslav/husk/term"
)

func ParseString(str string) ([]term.Term, error) {
	return Parse(strings.NewReader(str))
}

// Parse reads a whole source and returns its top-level declarations in order.
func Parse(r io.Reader) ([]term.Term, error) {
	return NewParser(r).Parse()
}

// ParseExpr reads a single expression, optionally terminated by a semicolon.
func ParseExpr(str string) (term.Term, error) {
	return NewParser(strings.NewReader(str)).ParseExpr()
}

type Error struct {
	File string
	Position
	Msg string
}

func (e *Error) Error() string {
	if e.File == "" {
		return fmt.Sprintf("%s: %s", e.Position, e.Msg)
	}
	return fmt.Sprintf("%s:%s: %s", e.File, e.Position, e.Msg)
}

// Parser recognizes the grammar top-down and assembles terms on a stack: the
// recognizing methods push leaves and markers, the on* actions pop them and
// push the term they form.
type Parser struct {
	file string

	scan *Scanner
	curr Token
	peek Token

	stack    deque.Deque
	keywords map[string]func() error
}

func NewParser(r io.Reader) *Parser {
	p := Parser{
		scan:     Scan(r),
		stack:    deque.NewDeque(),
		keywords: make(map[string]func() error),
	}
	if n, ok := r.(interface{ Name() string }); ok {
		p.file = n.Name()
	}
	p.registerKeyword(kwDecltype, p.parseDecltype)
	p.registerKeyword(kwBuiltin, p.parseBuiltin)

	p.next()
	p.next()
	return &p
}

func (p *Parser) Parse() ([]term.Term, error) {
	for !p.done() {
		if p.is(Semicolon) {
			p.next()
			continue
		}
		if err := p.parseStatement(); err != nil {
			return nil, err
		}
		if p.done() {
			break
		}
		if err := p.expect(Semicolon); err != nil {
			return nil, err
		}
	}
	return p.collect()
}

func (p *Parser) ParseExpr() (term.Term, error) {
	if err := p.parseExpression(); err != nil {
		return nil, err
	}
	if p.is(Semicolon) {
		p.next()
	}
	if !p.done() {
		return nil, p.unexpected()
	}
	list, err := p.collect()
	if err != nil {
		return nil, err
	}
	if len(list) != 1 {
		return nil, p.errorf("expected one expression, got %d", len(list))
	}
	return list[0], nil
}

func (p *Parser) parseStatement() error {
	switch {
	case p.is(Keyword):
		fn, ok := p.keywords[p.curr.Literal]
		if !ok {
			return p.unexpected()
		}
		return fn()
	case p.is(Let):
		return p.parseFuncDecl()
	case p.is(Ident) && p.peek.Type == Colon:
		return p.parseAssertion()
	default:
		return p.unexpected()
	}
}

// decltype name param* ( = ctor ( | ctor )* )?
func (p *Parser) parseDecltype() error {
	p.next()
	p.onMarker()
	if err := p.parseIdentifier(); err != nil {
		return err
	}
	for p.is(Ident) {
		p.parseIdentifier()
	}
	if p.is(Assign) {
		p.next()
		for {
			if err := p.parseConstructor(); err != nil {
				return err
			}
			if !p.is(Pipe) {
				break
			}
			p.next()
		}
	}
	return p.onTypeDecl()
}

func (p *Parser) parseConstructor() error {
	if err := p.parseIdentifier(); err != nil {
		return err
	}
	for p.isFactor() {
		if err := p.parseFactor(); err != nil {
			return err
		}
		p.onComposition()
	}
	p.onConstructor()
	return nil
}

// builtin name : type
func (p *Parser) parseBuiltin() error {
	p.next()
	p.onBuiltin()
	if !p.is(Ident) || p.peek.Type != Colon {
		return p.unexpected()
	}
	return p.parseAssertion()
}

// name : type
func (p *Parser) parseAssertion() error {
	if err := p.parseIdentifier(); err != nil {
		return err
	}
	if err := p.expect(Colon); err != nil {
		return err
	}
	if err := p.parseExpression(); err != nil {
		return err
	}
	p.onIsA()
	return nil
}

// > name param+ = body
func (p *Parser) parseFuncDecl() error {
	p.next()
	p.onMarker()
	if err := p.parseIdentifier(); err != nil {
		return err
	}
	var count int
	for !p.done() && !p.is(Assign) {
		if err := p.parseParameter(); err != nil {
			return err
		}
		count++
	}
	if count == 0 {
		return p.errorf("clause without parameters")
	}
	if err := p.expect(Assign); err != nil {
		return err
	}
	if err := p.parseExpression(); err != nil {
		return err
	}
	return p.onFuncDecl()
}

func (p *Parser) parseParameter() error {
	switch {
	case p.is(Wildcard):
		p.onWildcard()
		p.next()
	case p.is(Ident):
		return p.parseIdentifier()
	case p.is(Lparen):
		p.next()
		if err := p.parseExpression(); err != nil {
			return err
		}
		return p.expect(Rparen)
	default:
		return p.unexpected()
	}
	return nil
}

func (p *Parser) parseExpression() error {
	if err := p.parseTerm(); err != nil {
		return err
	}
	for p.is(Arrow) {
		p.next()
		if err := p.parseTerm(); err != nil {
			return err
		}
		p.onArrow()
	}
	return nil
}

func (p *Parser) parseTerm() error {
	if err := p.parseFactor(); err != nil {
		return err
	}
	for p.isFactor() {
		if err := p.parseFactor(); err != nil {
			return err
		}
		p.onComposition()
	}
	return nil
}

func (p *Parser) parseFactor() error {
	switch {
	case p.is(Ident):
		return p.parseIdentifier()
	case p.is(Lparen):
		p.next()
		if err := p.parseExpression(); err != nil {
			return err
		}
		if err := p.expect(Rparen); err != nil {
			return err
		}
		p.onGroup()
		return nil
	default:
		return p.unexpected()
	}
}

func (p *Parser) parseIdentifier() error {
	if !p.is(Ident) {
		return p.unexpected()
	}
	p.push(term.Ident(p.curr.Literal))
	p.next()
	return nil
}

func (p *Parser) onMarker() {
	p.push(term.Marker{})
}

func (p *Parser) onBuiltin() {
	p.push(term.BuiltinMarker{})
}

func (p *Parser) onWildcard() {
	p.push(term.Ident("_"))
}

func (p *Parser) onGroup() {
	p.push(term.Paren(p.pop()))
}

func (p *Parser) onComposition() {
	rhs, lhs := p.pop(), p.pop()
	if a, ok := lhs.(term.Application); ok {
		p.push(term.Application{
			Seq: append(a.Seq[:len(a.Seq):len(a.Seq)], rhs),
		})
		return
	}
	p.push(term.Apply(lhs, rhs))
}

func (p *Parser) onArrow() {
	rhs, lhs := p.pop(), p.pop()
	if a, ok := lhs.(term.Arrow); ok {
		p.push(term.Arrow{
			Seq: append(a.Seq[:len(a.Seq):len(a.Seq)], rhs),
		})
		return
	}
	p.push(term.Func(lhs, rhs))
}

func (p *Parser) onConstructor() {
	t := p.pop()
	if _, ok := t.(term.Application); !ok {
		t = term.Apply(t)
	}
	p.push(t)
}

func (p *Parser) onIsA() {
	rhs, lhs := p.pop(), p.pop()
	isa := term.Typed(lhs, rhs)
	if _, ok := p.top().(term.BuiltinMarker); ok {
		p.pop()
		p.push(term.Builtin{Decl: isa})
		return
	}
	p.push(isa)
}

func (p *Parser) onFuncDecl() error {
	list, err := p.popMarked()
	if err != nil {
		return err
	}
	left := term.Apply(list[0], list[1:len(list)-1]...)
	p.push(term.Define(left, list[len(list)-1]))
	return nil
}

func (p *Parser) onTypeDecl() error {
	list, err := p.popMarked()
	if err != nil {
		return err
	}
	p.push(term.Declare(list[0], list[1:]...))
	return nil
}

// popMarked pops every term pushed since the last marker and returns them in
// the order they were pushed.
func (p *Parser) popMarked() ([]term.Term, error) {
	var list []term.Term
	for p.stack.Len() > 0 {
		t := p.pop()
		if _, ok := t.(term.Marker); ok {
			for i, j := 0, len(list)-1; i < j; i, j = i+1, j-1 {
				list[i], list[j] = list[j], list[i]
			}
			return list, nil
		}
		list = append(list, t)
	}
	return nil, p.errorf("unbalanced declaration")
}

func (p *Parser) collect() ([]term.Term, error) {
	var list []term.Term
	for _, v := range p.stack.(interface{ Dump() []deque.Elem }).Dump() {
		t := v.(term.Term)
		switch t.(type) {
		case term.Marker, term.BuiltinMarker:
			return nil, p.errorf("unbalanced declaration")
		}
		list = append(list, t)
	}
	p.stack = deque.NewDeque()
	return list, nil
}

func (p *Parser) push(t term.Term) {
	p.stack.PushBack(t)
}

func (p *Parser) pop() term.Term {
	return p.stack.PopBack().(term.Term)
}

func (p *Parser) top() term.Term {
	if p.stack.Len() == 0 {
		return nil
	}
	return p.stack.Back().(term.Term)
}

func (p *Parser) registerKeyword(kw string, fn func() error) {
	p.keywords[kw] = fn
}

func (p *Parser) isFactor() bool {
	return p.is(Ident) || p.is(Lparen)
}

func (p *Parser) expect(kind rune) error {
	if !p.is(kind) {
		return p.unexpected()
	}
	p.next()
	return nil
}

func (p *Parser) unexpected() error {
	return p.errorf("unexpected token %s", p.curr)
}

func (p *Parser) errorf(format string, args ...interface{}) error {
	return &Error{
		File:     p.file,
		Position: p.curr.Position,
		Msg:      fmt.Sprintf(format, args...),
	}
}

func (p *Parser) is(kind rune) bool {
	return p.curr.Type == kind
}

func (p *Parser) done() bool {
	return p.is(EOF)
}

func (p *Parser) next() {
	p.curr = p.peek
	p.peek = p.scan.Scan()
	for p.peek.Type == Comment {
		p.peek = p.scan.Scan()
	}
}
