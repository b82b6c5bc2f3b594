// Package lexer tokenizes the combinator calculus surface syntax.
package lexer

import (
	"github.com/arnobastenhof/camrepl/internal/diag"
	"github.com/arnobastenhof/camrepl/internal/token"
)

// Lexer is a cursor over an input line. It has no lookahead beyond the
// current byte; the parser drives it one token at a time via Next.
type Lexer struct {
	input string
	pos   int
}

// New returns a Lexer positioned at the start of input.
func New(input string) *Lexer {
	return &Lexer{input: input}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Next scans and returns the next token. It skips leading whitespace. On
// end of input it returns token.END. On a byte that starts no valid token
// it raises diag.UnexpectedChar via panic: the lexer reports the error and
// advances one byte, and the caller never receives a partial token for
// that byte.
func (l *Lexer) Next() token.Token {
	for isSpace(l.peek()) {
		l.pos++
	}

	c := l.peek()
	switch {
	case c == 0:
		return token.Token{Kind: token.END}
	case c == '+':
		l.pos++
		return token.Token{Kind: token.PLUS, Lexeme: "+"}
	case c == '(':
		l.pos++
		return token.Token{Kind: token.LPAREN, Lexeme: "("}
	case c == ')':
		l.pos++
		return token.Token{Kind: token.RPAREN, Lexeme: ")"}
	case isDigit(c):
		return l.scanRun(isDigit, token.NUM)
	case isLetter(c):
		return l.scanIdent()
	default:
		l.pos++
		diag.Raise(diag.UnexpectedChar(c))
		panic("unreachable")
	}
}

// scanRun consumes a maximal run matching class, truncated at
// token.MaxLexeme bytes: the bound is a hard cap, and a longer run is
// truncated with the remainder consumed as the next token.
func (l *Lexer) scanRun(class func(byte) bool, kind token.Kind) token.Token {
	start := l.pos
	for l.pos-start < token.MaxLexeme && class(l.peek()) {
		l.pos++
	}
	return token.Token{Kind: kind, Lexeme: l.input[start:l.pos]}
}

func (l *Lexer) scanIdent() token.Token {
	tok := l.scanRun(isLetter, token.VAR)
	if tok.Lexeme == "lambda" {
		tok.Kind = token.LAMBDA
	}
	return tok
}
