package syntax

import (
	"bytes"
	"io"
	"unicode"
	"unicode/utf8"
)

type cursor struct {
	char rune
	curr int
	next int
	eof  bool
	Position
}

type Scanner struct {
	input []byte
	cursor

	str bytes.Buffer
}

func Scan(r io.Reader) *Scanner {
	buf, _ := io.ReadAll(r)
	buf, _ = bytes.CutPrefix(buf, []byte{0xef, 0xbb, 0xbf})
	s := Scanner{
		input: buf,
	}
	s.cursor.Line = 1
	s.read()
	s.skip(isBlank)
	return &s
}

func (s *Scanner) Scan() Token {
	defer s.reset()

	s.skip(isBlank)

	var tok Token
	tok.Offset = s.curr
	tok.Position = s.cursor.Position
	if s.done() {
		tok.Type = EOF
		return tok
	}

	switch {
	case isLineComment(s.char, s.peek()):
		s.scanLineComment(&tok)
	case isBlockComment(s.char, s.peek()):
		s.scanBlockComment(&tok)
	case isIdentStart(s.char, s.peek()):
		s.scanIdent(&tok)
	default:
		s.scanPunct(&tok)
	}
	return tok
}

func (s *Scanner) scanLineComment(tok *Token) {
	s.read()
	s.read()
	s.skip(isSpace)
	for !s.done() && !isNL(s.char) {
		s.write()
		s.read()
	}
	tok.Type = Comment
	tok.Literal = s.literal()
}

func (s *Scanner) scanBlockComment(tok *Token) {
	s.read()
	s.read()
	tok.Type = Invalid
	for !s.done() {
		if s.char == rbrace && s.peek() == rbrace {
			s.read()
			s.read()
			tok.Type = Comment
			break
		}
		s.write()
		s.read()
	}
	tok.Literal = string(bytes.TrimSpace(s.str.Bytes()))
}

func (s *Scanner) scanIdent(tok *Token) {
	if s.char == squote {
		s.write()
		s.read()
	}
	for !s.done() && isAlpha(s.char) {
		if s.char == minus && s.peek() == rangle {
			break
		}
		s.write()
		s.read()
	}
	tok.Type = Ident
	tok.Literal = s.literal()
	if isKeyword(tok.Literal) {
		tok.Type = Keyword
	}
}

func (s *Scanner) scanPunct(tok *Token) {
	switch s.char {
	case underscore:
		tok.Type = Wildcard
		tok.Literal = "_"
		if isAlpha(s.peek()) {
			tok.Type = Invalid
		}
	case rangle:
		tok.Type = Let
	case colon:
		tok.Type = Colon
	case minus:
		tok.Type = Invalid
		if s.peek() == rangle {
			s.read()
			tok.Type = Arrow
		}
	case equal:
		tok.Type = Assign
	case pipe:
		tok.Type = Pipe
	case semicolon:
		tok.Type = Semicolon
	case lparen:
		tok.Type = Lparen
	case rparen:
		tok.Type = Rparen
	default:
		tok.Type = Invalid
		tok.Literal = string(s.input[s.curr:s.next])
	}
	s.read()
}

func (s *Scanner) done() bool {
	return s.eof
}

// read moves to the next rune. A byte that is not valid UTF-8 is read as
// utf8.RuneError and scanned as an invalid token.
func (s *Scanner) read() {
	if s.next >= len(s.input) {
		s.char, s.eof = 0, true
		s.curr = len(s.input)
		return
	}
	r, n := utf8.DecodeRune(s.input[s.next:])
	if s.char == nl {
		s.cursor.Line++
		s.cursor.Column = 0
	}
	s.cursor.Column++
	s.char, s.curr, s.next = r, s.next, s.next+n
}

func (s *Scanner) peek() rune {
	r, _ := utf8.DecodeRune(s.input[s.next:])
	return r
}

func (s *Scanner) reset() {
	s.str.Reset()
}

func (s *Scanner) write() {
	s.str.WriteRune(s.char)
}

func (s *Scanner) literal() string {
	return s.str.String()
}

func (s *Scanner) skip(accept func(rune) bool) {
	for !s.done() && accept(s.char) {
		s.read()
	}
}

const (
	lparen     = '('
	rparen     = ')'
	lbrace     = '{'
	rbrace     = '}'
	rangle     = '>'
	space      = ' '
	tab        = '\t'
	nl         = '\n'
	cr         = '\r'
	squote     = '\''
	underscore = '_'
	minus      = '-'
	pipe       = '|'
	equal      = '='
	colon      = ':'
	semicolon  = ';'
)

func isLineComment(r, k rune) bool {
	return r == minus && r == k
}

func isBlockComment(r, k rune) bool {
	return r == lbrace && r == k
}

func isIdentStart(r, k rune) bool {
	if r == squote {
		return isLetter(k)
	}
	return isLetter(r)
}

func isLetter(r rune) bool {
	return unicode.IsLetter(r)
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isAlpha(r rune) bool {
	return isLetter(r) || isDigit(r) || r == underscore || r == minus
}

func isSpace(r rune) bool {
	return r == space || r == tab
}

func isNL(r rune) bool {
	return r == nl || r == cr
}

func isBlank(r rune) bool {
	return isSpace(r) || isNL(r)
}
