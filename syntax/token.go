package syntax

import "fmt"

const (
	EOF rune = -(iota + 1)
	Comment
	Ident
	Keyword
	Wildcard
	Let
	Colon
	Arrow
	Assign
	Pipe
	Semicolon
	Lparen
	Rparen
	Invalid
)

const (
	kwDecltype = "decltype"
	kwBuiltin  = "builtin"
)

var keywords = map[string]struct{}{
	kwDecltype: {},
	kwBuiltin:  {},
}

func isKeyword(str string) bool {
	_, ok := keywords[str]
	return ok
}

type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

type Token struct {
	Type    rune
	Literal string
	Offset  int
	Position
}

func (t Token) String() string {
	var prefix string
	switch t.Type {
	case EOF:
		return "<eof>"
	case Wildcard:
		return "<wildcard>"
	case Let:
		return "<let>"
	case Colon:
		return "<colon>"
	case Arrow:
		return "<arrow>"
	case Assign:
		return "<assign>"
	case Pipe:
		return "<pipe>"
	case Semicolon:
		return "<semicolon>"
	case Lparen:
		return "<lparen>"
	case Rparen:
		return "<rparen>"
	case Keyword:
		prefix = "keyword"
	case Comment:
		prefix = "comment"
	case Ident:
		prefix = "identifier"
	case Invalid:
		prefix = "invalid"
	default:
		prefix = "unknown"
	}
	return fmt.Sprintf("%s(%s)", prefix, t.Literal)
}
