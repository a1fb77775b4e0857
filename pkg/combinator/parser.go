package combinator

import (
	"unicode"
	"unicode/utf8"
)

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenAtom
	TokenLParen
	TokenRParen
)

type Token struct {
	Type    TokenType
	Literal string
	Pos     int
}

// Parser reads the bracket-juxtaposition notation. Every character other
// than '(' and ')' is an atom of its own; whitespace is skipped.
type Parser struct {
	input   string
	pos     int
	current Token
}

func NewParser(input string) *Parser {
	p := &Parser{input: input}
	p.next()
	return p
}

func (p *Parser) next() {
	p.skipWhitespace()
	if p.pos >= len(p.input) {
		p.current = Token{Type: TokenEOF, Pos: p.pos}
		return
	}

	start := p.pos
	r, size := utf8.DecodeRuneInString(p.input[p.pos:])
	p.pos += size
	switch r {
	case '(':
		p.current = Token{Type: TokenLParen, Literal: "(", Pos: start}
	case ')':
		p.current = Token{Type: TokenRParen, Literal: ")", Pos: start}
	default:
		p.current = Token{Type: TokenAtom, Literal: p.input[start:p.pos], Pos: start}
	}
}

func (p *Parser) skipWhitespace() {
	for p.pos < len(p.input) {
		r, size := utf8.DecodeRuneInString(p.input[p.pos:])
		if !unicode.IsSpace(r) {
			return
		}
		p.pos += size
	}
}

// Parse reads the whole input as one term.
//
// Groups are tracked on an explicit stack, so nesting depth is not limited
// by the goroutine stack.
func (p *Parser) Parse() (Term, error) {
	type group struct {
		open  int // position of the '(' that opened it, -1 for the top level
		items []Term
	}
	stack := []*group{{open: -1}}

	for ; p.current.Type != TokenEOF; p.next() {
		tok := p.current
		top := stack[len(stack)-1]
		switch tok.Type {
		case TokenAtom:
			top.items = append(top.items, Atom{Name: tok.Literal})
		case TokenLParen:
			stack = append(stack, &group{open: tok.Pos})
		case TokenRParen:
			if len(stack) == 1 {
				return nil, &ParseError{Pos: tok.Pos, Msg: "unexpected ')'", Err: ErrUnbalancedParens}
			}
			stack = stack[:len(stack)-1]
			t, err := NewApp(top.items...)
			if err != nil {
				return nil, &ParseError{Pos: top.open, Msg: "empty group", Err: err}
			}
			parent := stack[len(stack)-1]
			parent.items = append(parent.items, t)
		}
	}

	if len(stack) > 1 {
		open := stack[len(stack)-1].open
		return nil, &ParseError{Pos: open, Msg: "'(' is never closed", Err: ErrUnbalancedParens}
	}
	t, err := NewApp(stack[0].items...)
	if err != nil {
		return nil, &ParseError{Pos: 0, Err: err}
	}
	return t, nil
}

// Parse parses a combinator term from a string.
func Parse(input string) (Term, error) {
	p := NewParser(input)
	return p.Parse()
}

// MustParse is like Parse but panics on error.
func MustParse(input string) Term {
	t, err := Parse(input)
	if err != nil {
		panic(err)
	}
	return t
}
