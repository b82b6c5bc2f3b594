// Package parser implements a recursive-descent parser that lowers the
// combinator calculus surface syntax directly into combinator IR — there
// is no separate surface AST.
package parser

import (
	"github.com/arnobastenhof/camrepl/internal/ast"
	"github.com/arnobastenhof/camrepl/internal/diag"
	"github.com/arnobastenhof/camrepl/internal/lexer"
	"github.com/arnobastenhof/camrepl/internal/scope"
	"github.com/arnobastenhof/camrepl/internal/token"
)

// Parser holds one token of lookahead (cur), the scope stack used to
// resolve variables to projection depths, and the IR allocator new nodes
// are drawn from.
//
// Throughout, a parse method that successfully returns an *ast.Ast leaves
// cur positioned at the LAST token of what it parsed, unconsumed — the
// caller advances past it. This mirrors original_source/src/parser.c's
// one-token-lookahead discipline, where Consume is always the caller's
// responsibility once it is done looking at the current token.
type Parser struct {
	lex      *lexer.Lexer
	cur      token.Token
	scope    scope.Stack
	astAlloc *ast.Allocator
}

// Parse lexes and lowers input into combinator IR in one pass, panicking
// a *diag.Diagnostic on any lexical, syntactic or scope error: the parser
// never returns a partially built tree on error.
func Parse(astAlloc *ast.Allocator, input string) *ast.Ast {
	p := &Parser{lex: lexer.New(input), astAlloc: astAlloc}
	p.consume()
	return p.parseExpr()
}

// consume fetches the next token into cur, raising diag.UnexpectedEOF if
// input is exhausted. A lexical error (illegal byte) is raised directly by
// the lexer, so consume need not distinguish the two cases the original
// Consume/Lexer_NextToken pairing did via a sentinel return value.
func (p *Parser) consume() {
	p.cur = p.lex.Next()
	if p.cur.Kind == token.END {
		diag.Raise(diag.UnexpectedEOF())
	}
}

// match raises diag.UnexpectedToken unless cur is of kind k.
func (p *Parser) match(k token.Kind) {
	if p.cur.Kind != k {
		diag.Raise(diag.UnexpectedToken(p.cur.Lexeme))
	}
}

// expect consumes the next token and matches it against k.
func (p *Parser) expect(k token.Kind) {
	p.consume()
	p.match(k)
}

// parseExpr implements the `expr` production. It dispatches on cur without
// consuming it; VAR and NUM branches return a leaf built straight from cur
// with cur still positioned on that token.
func (p *Parser) parseExpr() *ast.Ast {
	switch p.cur.Kind {
	case token.VAR:
		return p.parseVar(p.cur.Lexeme)
	case token.NUM:
		return p.parseNum(p.cur.Lexeme)
	case token.LPAREN:
		p.consume()
		switch p.cur.Kind {
		case token.PLUS:
			return p.parseSum()
		case token.LAMBDA:
			return p.parseAbs()
		}
		return p.parseApp()
	default:
		diag.Raise(diag.UnexpectedToken(p.cur.Lexeme))
		panic("unreachable")
	}
}

// parseVar resolves name against the scope stack and lowers it into a
// projection chain: k FST nodes (k = the 0-based depth of name's innermost
// binding) followed by one SND. Executed against an environment shaped
// Pair(outerBindings, newestBinding), this walks outward k times before
// extracting the bound value — see DESIGN.md's Open Questions for why
// this order (FSTs, then SND) is the one original_source/src/parser.c
// actually produces.
func (p *Parser) parseVar(name string) *ast.Ast {
	depth, ok := p.scope.Depth(name)
	if !ok {
		diag.Raise(diag.UnboundVariable(name))
	}
	children := make([]*ast.Ast, 0, depth+1)
	for i := 0; i < depth; i++ {
		children = append(children, p.astAlloc.Fst())
	}
	children = append(children, p.astAlloc.Snd())
	return p.astAlloc.Comp(children...)
}

func (p *Parser) parseNum(lexeme string) *ast.Ast {
	n := 0
	for i := 0; i < len(lexeme); i++ {
		n = n*10 + int(lexeme[i]-'0')
	}
	return p.astAlloc.Quote(n)
}

// parseSum implements the `'(' '+' expr expr { expr } ')'` production,
// folding left: the accumulator starts at the first operand, and each
// subsequent operand is combined via COMP(PAIR(plusCombinator,
// PAIR(acc, operand)), APP).
//
// cur is PLUS on entry. Sum requires at least two operands; this loop
// always attempts a second parseExpr before checking for the closing
// paren, so `(+ 1)` fails parsing that second operand against a `)` token
// rather than via an explicit arity check — see DESIGN.md's Open
// Questions.
func (p *Parser) parseSum() *ast.Ast {
	p.consume() // past '+'
	root := p.parseExpr()
	p.consume() // past the first operand

	for {
		operand := p.parseExpr()
		pair := p.astAlloc.Pair(root, operand)
		plusPair := p.astAlloc.Pair(p.astAlloc.PlusCombinator(), pair)
		root = p.astAlloc.Comp(plusPair, p.astAlloc.App())

		p.consume()
		if p.cur.Kind == token.RPAREN {
			break
		}
	}
	return root
}

// parseApp implements application: an arbitrary-arity (possibly zero)
// left-associative application of a callee to each trailing expr, folding
// as COMP(PAIR(acc, arg), APP) per expr. The callee is any expr (an abs,
// a variable, or a nested application).
//
// cur is the callee's first token on entry (the application's own '(' has
// already been consumed by parseExpr).
func (p *Parser) parseApp() *ast.Ast {
	root := p.parseExpr()

	for {
		p.consume()
		if p.cur.Kind == token.RPAREN {
			break
		}
		arg := p.parseExpr()
		root = p.astAlloc.Comp(p.astAlloc.Pair(root, arg), p.astAlloc.App())
	}
	return root
}

// parseAbs implements `'(' 'lambda' '(' V { V } ')' expr ')'`: pushes each
// parameter onto scope in written order (so the last-written parameter is
// innermost, depth 0), parses the body, then wraps it in one CUR per
// parameter, popping scope as each wrap closes.
//
// cur is the 'lambda' keyword on entry: parseExpr has already consumed the
// abs's opening '('. An abs is itself an expr, so it may appear as a
// callee, an argument, a body, or a whole program.
func (p *Parser) parseAbs() *ast.Ast {
	p.match(token.LAMBDA)
	p.expect(token.LPAREN)

	p.expect(token.VAR)
	p.scope.Push(p.cur.Lexeme)
	p.consume()

	count := 1
	for p.cur.Kind != token.RPAREN {
		p.match(token.VAR)
		p.scope.Push(p.cur.Lexeme)
		p.consume()
		count++
	}

	p.consume() // past the params list's closing ')'
	body := p.parseExpr()
	p.expect(token.RPAREN) // closing the abs itself

	for i := 0; i < count; i++ {
		body = p.astAlloc.Cur(body)
		p.scope.Pop()
	}
	return body
}
