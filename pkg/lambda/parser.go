package lambda

import (
	"fmt"
	"unicode"

	"github.com/pkg/errors"
)

type TokenType int

const (
	TokenEOF TokenType = iota
	TokenIdent
	TokenColon
	TokenEqual
	TokenSemicolon
	TokenLParen
	TokenRParen
	TokenLet
	TokenIn
)

func (t TokenType) String() string {
	switch t {
	case TokenEOF:
		return "end of input"
	case TokenIdent:
		return "identifier"
	case TokenColon:
		return "':'"
	case TokenEqual:
		return "'='"
	case TokenSemicolon:
		return "';'"
	case TokenLParen:
		return "'('"
	case TokenRParen:
		return "')'"
	case TokenLet:
		return "'let'"
	case TokenIn:
		return "'in'"
	default:
		return "unknown token"
	}
}

type Token struct {
	Type    TokenType
	Literal string
	Pos     int
}

// ErrSyntax is wrapped by every parse failure.
var ErrSyntax = errors.New("lambda syntax error")

// Parser reads Nix-style lambda terms:
//
//	x: body            abstraction
//	f a b              application, left-associative
//	let x = M; in B    sugar for (x: B) M
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
	start := p.pos
	if p.pos >= len(p.input) {
		p.current = Token{Type: TokenEOF, Pos: start}
		return
	}

	ch := p.input[p.pos]
	switch {
	case isLetter(ch):
		for p.pos < len(p.input) && (isLetter(p.input[p.pos]) || isDigit(p.input[p.pos])) {
			p.pos++
		}
		lit := p.input[start:p.pos]
		switch lit {
		case "let":
			p.current = Token{Type: TokenLet, Literal: lit, Pos: start}
		case "in":
			p.current = Token{Type: TokenIn, Literal: lit, Pos: start}
		default:
			p.current = Token{Type: TokenIdent, Literal: lit, Pos: start}
		}
		return
	}

	p.pos++
	typ := TokenIdent
	switch ch {
	case ':':
		typ = TokenColon
	case '=':
		typ = TokenEqual
	case ';':
		typ = TokenSemicolon
	case '(':
		typ = TokenLParen
	case ')':
		typ = TokenRParen
	}
	// Any other character is a one-character identifier.
	p.current = Token{Type: typ, Literal: string(ch), Pos: start}
}

func (p *Parser) skipWhitespace() {
	for p.pos < len(p.input) && unicode.IsSpace(rune(p.input[p.pos])) {
		p.pos++
	}
}

func isLetter(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func (p *Parser) errorf(format string, args ...any) error {
	return errors.Wrapf(ErrSyntax, "position %d: %s", p.current.Pos, fmt.Sprintf(format, args...))
}

func (p *Parser) expect(typ TokenType) (Token, error) {
	tok := p.current
	if tok.Type != typ {
		return tok, p.errorf("expected %v, found %v", typ, tok.Type)
	}
	p.next()
	return tok, nil
}

// peekColon reports whether the token after the current one is ':'.
func (p *Parser) peekColon() bool {
	save, saveTok := p.pos, p.current
	p.next()
	ok := p.current.Type == TokenColon
	p.pos, p.current = save, saveTok
	return ok
}

// Parse reads a whole term; trailing input is an error.
func (p *Parser) Parse() (Term, error) {
	t, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	if p.current.Type != TokenEOF {
		return nil, p.errorf("unexpected %v", p.current.Type)
	}
	return t, nil
}

// Term ::= Let | Ident ':' Term | App
func (p *Parser) parseTerm() (Term, error) {
	switch {
	case p.current.Type == TokenLet:
		return p.parseLet()
	case p.current.Type == TokenIdent && p.peekColon():
		return p.parseAbs()
	}
	return p.parseApp()
}

func (p *Parser) parseAbs() (Term, error) {
	arg := p.current.Literal
	p.next() // ident
	p.next() // ':'
	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}
	return Abs{Arg: arg, Body: body}, nil
}

// App ::= Atom+ [Abs]. An abstraction extends as far right as possible,
// so "x y: z a" is x (y: z a).
func (p *Parser) parseApp() (Term, error) {
	left, err := p.parseAtom()
	if err != nil {
		return nil, err
	}
	for {
		switch p.current.Type {
		case TokenEOF, TokenRParen, TokenSemicolon, TokenIn:
			return left, nil
		case TokenLet:
			right, err := p.parseLet()
			if err != nil {
				return nil, err
			}
			return App{Fun: left, Arg: right}, nil
		case TokenIdent:
			if p.peekColon() {
				right, err := p.parseAbs()
				if err != nil {
					return nil, err
				}
				return App{Fun: left, Arg: right}, nil
			}
		}
		right, err := p.parseAtom()
		if err != nil {
			return nil, err
		}
		left = App{Fun: left, Arg: right}
	}
}

// Atom ::= Ident | '(' Term ')'
func (p *Parser) parseAtom() (Term, error) {
	switch p.current.Type {
	case TokenIdent:
		name := p.current.Literal
		p.next()
		return Var{Name: name}, nil
	case TokenLParen:
		p.next()
		term, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenRParen); err != nil {
			return nil, err
		}
		return term, nil
	default:
		return nil, p.errorf("unexpected %v", p.current.Type)
	}
}

// Let ::= 'let' (Ident '=' Term ';')+ 'in' Term
//
// let x = M; y = N; in B desugars to (x: (y: B) N) M.
func (p *Parser) parseLet() (Term, error) {
	p.next() // 'let'

	type binding struct {
		name string
		val  Term
	}
	var bindings []binding

	for {
		tok, err := p.expect(TokenIdent)
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(TokenEqual); err != nil {
			return nil, err
		}
		val, err := p.parseTerm()
		if err != nil {
			return nil, err
		}
		bindings = append(bindings, binding{tok.Literal, val})

		if p.current.Type == TokenSemicolon {
			p.next()
		} else if p.current.Type != TokenIn {
			return nil, p.errorf("expected ';' or 'in', found %v", p.current.Type)
		}
		if p.current.Type == TokenIn {
			p.next()
			break
		}
	}

	body, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	term := body
	for i := len(bindings) - 1; i >= 0; i-- {
		b := bindings[i]
		term = App{
			Fun: Abs{Arg: b.name, Body: term},
			Arg: b.val,
		}
	}
	return term, nil
}

// Parse parses a lambda term from a string.
func Parse(input string) (Term, error) {
	p := NewParser(input)
	return p.Parse()
}
