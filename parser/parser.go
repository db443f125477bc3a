// Package parser turns a Hydrogen token stream into an ast.Prog.
//
// Statements are parsed by straightforward recursive descent, one
// function per statement form, dispatched on the lookahead token.
// Expressions are the one place this parser deliberately does not grow a
// function per precedence level: parseExpr climbs precedence with a
// single recursive function parameterized by a minimum-binding-power
// argument, so adding an operator never means adding a function.
package parser

import (
	"strconv"

	"github.com/informatter/hydro/arena"
	"github.com/informatter/hydro/ast"
	"github.com/informatter/hydro/token"
)

// Parser walks a fixed token slice and allocates every AST node it builds
// out of a caller-supplied arena.
type Parser struct {
	toks []token.Token
	pos  int
	a    *arena.Arena
}

// New returns a Parser over toks, allocating AST nodes out of a.
func New(toks []token.Token, a *arena.Arena) *Parser {
	return &Parser{toks: toks, a: a}
}

func (p *Parser) current() token.Token {
	return p.toks[p.pos]
}

func (p *Parser) line() int {
	return p.current().Line
}

func (p *Parser) isAtEnd() bool {
	return p.current().Kind == token.EOF
}

func (p *Parser) check(kind token.Kind) bool {
	return p.current().Kind == kind
}

func (p *Parser) advance() token.Token {
	t := p.current()
	if !p.isAtEnd() {
		p.pos++
	}
	return t
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

func (p *Parser) consume(kind token.Kind, want string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}
	got := p.current().Kind.String()
	if p.isAtEnd() {
		got = ""
	}
	return token.Token{}, ParseError{Kind: ParseExpected, Line: p.line(), Want: want, Got: got}
}

// binPrec returns the binding power of kind as a binary operator and
// whether kind is a binary operator at all. Higher binds tighter.
func binPrec(kind token.Kind) (int, bool) {
	switch kind {
	case token.PLUS, token.MINUS:
		return 0, true
	case token.STAR, token.FSLASH:
		return 1, true
	default:
		return 0, false
	}
}

func binOpFor(kind token.Kind) ast.BinOp {
	switch kind {
	case token.PLUS:
		return ast.BinAdd
	case token.MINUS:
		return ast.BinSub
	case token.STAR:
		return ast.BinMul
	case token.FSLASH:
		return ast.BinDiv
	default:
		panic("binOpFor: not a binary operator kind")
	}
}

func (p *Parser) wrapTerm(term *ast.Term) (*ast.Expr, error) {
	e, err := ast.NewExpr(p.a)
	if err != nil {
		return nil, err
	}
	e.Kind = ast.ExprTerm
	e.Term = term
	return e, nil
}

// parseTerm parses the tightest-binding piece of an expression: an
// integer literal, an identifier, or a fully parenthesized expression.
func (p *Parser) parseTerm() (*ast.Expr, error) {
	line := p.line()
	switch {
	case p.check(token.INT_LIT):
		tok := p.advance()
		term, err := ast.NewTerm(p.a)
		if err != nil {
			return nil, err
		}
		term.Kind = ast.TermIntLit
		term.Line = line
		term.Tok = tok
		return p.wrapTerm(term)

	case p.check(token.IDENT):
		tok := p.advance()
		term, err := ast.NewTerm(p.a)
		if err != nil {
			return nil, err
		}
		term.Kind = ast.TermIdent
		term.Line = line
		term.Tok = tok
		return p.wrapTerm(term)

	case p.check(token.OPEN_PAREN):
		p.advance()
		inner, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.CLOSE_PAREN, "')'"); err != nil {
			return nil, err
		}
		term, err := ast.NewTerm(p.a)
		if err != nil {
			return nil, err
		}
		term.Kind = ast.TermParen
		term.Line = line
		term.Inner = inner
		return p.wrapTerm(term)

	default:
		got := p.current().Kind.String()
		if p.isAtEnd() {
			got = ""
		}
		return nil, ParseError{Kind: ParseExpected, Line: line, Want: "an expression term", Got: got}
	}
}

// parseExpr climbs precedence starting from minPrec: it parses one term,
// then repeatedly absorbs any following binary operator whose precedence
// is at least minPrec, recursing with one higher minimum precedence for
// the right-hand side so operators of equal precedence associate left.
func (p *Parser) parseExpr(minPrec int) (*ast.Expr, error) {
	left, err := p.parseTerm()
	if err != nil {
		return nil, err
	}

	for {
		prec, ok := binPrec(p.current().Kind)
		if !ok || prec < minPrec {
			return left, nil
		}
		opTok := p.advance()
		right, err := p.parseExpr(prec + 1)
		if err != nil {
			return nil, err
		}

		bin, err := ast.NewBinExpr(p.a)
		if err != nil {
			return nil, err
		}
		bin.Op = binOpFor(opTok.Kind)
		bin.Line = opTok.Line
		bin.Left = left
		bin.Right = right

		combined, err := ast.NewExpr(p.a)
		if err != nil {
			return nil, err
		}
		combined.Kind = ast.ExprBin
		combined.Bin = bin
		left = combined
	}
}

func (p *Parser) parseScope() (*ast.Scope, error) {
	line := p.line()
	if _, err := p.consume(token.OPEN_CURLY, "'{'"); err != nil {
		return nil, err
	}
	scope, err := ast.NewScope(p.a)
	if err != nil {
		return nil, err
	}
	scope.Line = line
	for !p.check(token.CLOSE_CURLY) && !p.isAtEnd() {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		scope.Stmts = append(scope.Stmts, stmt)
	}
	if _, err := p.consume(token.CLOSE_CURLY, "'}'"); err != nil {
		return nil, err
	}
	return scope, nil
}

// parseIfPred parses the elif/else tail of an if statement, or returns
// nil if there is none.
func (p *Parser) parseIfPred() (*ast.IfPred, error) {
	switch {
	case p.check(token.ELIF):
		line := p.line()
		p.advance()
		if _, err := p.consume(token.OPEN_PAREN, "'('"); err != nil {
			return nil, err
		}
		cond, err := p.parseExpr(0)
		if err != nil {
			return nil, err
		}
		if _, err := p.consume(token.CLOSE_PAREN, "')'"); err != nil {
			return nil, err
		}
		scope, err := p.parseScope()
		if err != nil {
			return nil, err
		}
		next, err := p.parseIfPred()
		if err != nil {
			return nil, err
		}
		pred, err := ast.NewIfPred(p.a)
		if err != nil {
			return nil, err
		}
		pred.Kind = ast.IfPredElif
		pred.Line = line
		pred.Cond = cond
		pred.Scope = scope
		pred.Next = next
		return pred, nil

	case p.check(token.ELSE):
		line := p.line()
		p.advance()
		scope, err := p.parseScope()
		if err != nil {
			return nil, err
		}
		pred, err := ast.NewIfPred(p.a)
		if err != nil {
			return nil, err
		}
		pred.Kind = ast.IfPredElse
		pred.Line = line
		pred.Else = scope
		return pred, nil

	default:
		return nil, nil
	}
}

func (p *Parser) parseIfStmt() (*ast.Stmt, error) {
	line := p.line()
	p.advance() // 'if'
	if _, err := p.consume(token.OPEN_PAREN, "'('"); err != nil {
		return nil, err
	}
	cond, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.CLOSE_PAREN, "')'"); err != nil {
		return nil, err
	}
	scope, err := p.parseScope()
	if err != nil {
		return nil, err
	}
	pred, err := p.parseIfPred()
	if err != nil {
		return nil, err
	}

	ifStmt, err := ast.NewIfStmt(p.a)
	if err != nil {
		return nil, err
	}
	ifStmt.Line = line
	ifStmt.Cond = cond
	ifStmt.Scope = scope
	ifStmt.Pred = pred

	stmt, err := ast.NewStmt(p.a)
	if err != nil {
		return nil, err
	}
	stmt.Kind = ast.StmtIf
	stmt.If = ifStmt
	return stmt, nil
}

func (p *Parser) parseExitStmt() (*ast.Stmt, error) {
	line := p.line()
	p.advance() // 'exit'
	if _, err := p.consume(token.OPEN_PAREN, "'('"); err != nil {
		return nil, err
	}
	code, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.CLOSE_PAREN, "')'"); err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMI, "';'"); err != nil {
		return nil, err
	}

	exit, err := ast.NewExitStmt(p.a)
	if err != nil {
		return nil, err
	}
	exit.Line = line
	exit.Code = code

	stmt, err := ast.NewStmt(p.a)
	if err != nil {
		return nil, err
	}
	stmt.Kind = ast.StmtExit
	stmt.Exit = exit
	return stmt, nil
}

func (p *Parser) parseLetStmt() (*ast.Stmt, error) {
	line := p.line()
	p.advance() // 'let'
	ident, err := p.consume(token.IDENT, "an identifier")
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.EQ, "'='"); err != nil {
		return nil, err
	}
	value, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMI, "';'"); err != nil {
		return nil, err
	}

	let, err := ast.NewLetStmt(p.a)
	if err != nil {
		return nil, err
	}
	let.Line = line
	let.Ident = ident
	let.Value = value

	stmt, err := ast.NewStmt(p.a)
	if err != nil {
		return nil, err
	}
	stmt.Kind = ast.StmtLet
	stmt.Let = let
	return stmt, nil
}

// parseAssignStmt parses `ident = expr;`. It is only reached after the
// caller has already confirmed the statement starts with IDENT EQ,
// distinguishing it from a bare expression statement (which Hydrogen
// does not have).
func (p *Parser) parseAssignStmt() (*ast.Stmt, error) {
	line := p.line()
	ident := p.advance()
	p.advance() // '='
	value, err := p.parseExpr(0)
	if err != nil {
		return nil, err
	}
	if _, err := p.consume(token.SEMI, "';'"); err != nil {
		return nil, err
	}

	assign, err := ast.NewAssignStmt(p.a)
	if err != nil {
		return nil, err
	}
	assign.Line = line
	assign.Ident = ident
	assign.Value = value

	stmt, err := ast.NewStmt(p.a)
	if err != nil {
		return nil, err
	}
	stmt.Kind = ast.StmtAssign
	stmt.Assign = assign
	return stmt, nil
}

func (p *Parser) parseScopeStmt() (*ast.Stmt, error) {
	scope, err := p.parseScope()
	if err != nil {
		return nil, err
	}
	stmt, err := ast.NewStmt(p.a)
	if err != nil {
		return nil, err
	}
	stmt.Kind = ast.StmtScope
	stmt.Scope = scope
	return stmt, nil
}

func (p *Parser) parseStmt() (*ast.Stmt, error) {
	switch {
	case p.check(token.EXIT):
		return p.parseExitStmt()
	case p.check(token.LET):
		return p.parseLetStmt()
	case p.check(token.IF):
		return p.parseIfStmt()
	case p.check(token.OPEN_CURLY):
		return p.parseScopeStmt()
	case p.check(token.IDENT) && p.toks[p.pos+1].Kind == token.EQ:
		return p.parseAssignStmt()
	default:
		got := p.current().Kind.String()
		if p.isAtEnd() {
			got = "end of input"
		}
		return nil, ParseError{Kind: ParseNoStmt, Line: p.line(), Got: got}
	}
}

// synchronize discards tokens until it reaches one that plausibly begins
// a fresh statement, so ParseProgramCollectingErrors can keep reporting
// further errors instead of stopping at the first one.
func (p *Parser) synchronize() {
	for !p.isAtEnd() {
		if p.toks[p.pos-1].Kind == token.SEMI || p.toks[p.pos-1].Kind == token.CLOSE_CURLY {
			return
		}
		switch p.current().Kind {
		case token.EXIT, token.LET, token.IF, token.OPEN_CURLY:
			return
		}
		p.advance()
	}
}

// ParseProgram parses the whole token stream into a Prog, stopping at the
// first error encountered. This is the contract used at compile time: a
// Hydrogen program either compiles as a whole or fails on its first
// defect.
func ParseProgram(toks []token.Token, a *arena.Arena) (*ast.Prog, error) {
	p := New(toks, a)
	prog := &ast.Prog{}
	for !p.isAtEnd() {
		stmt, err := p.parseStmt()
		if err != nil {
			return nil, err
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}
	return prog, nil
}

// ParseProgramCollectingErrors parses as much of the token stream as it
// can, recovering after each ParseError by synchronizing to the next
// likely statement boundary, and returns every error it saw along with
// whatever statements it was able to build. It exists for tooling (an
// editor's live diagnostics, `hydro ast` on a broken file) that wants a
// full error report rather than a single fatal one; the compiler itself
// never calls it.
func ParseProgramCollectingErrors(toks []token.Token, a *arena.Arena) (*ast.Prog, []error) {
	p := New(toks, a)
	prog := &ast.Prog{}
	var errs []error
	for !p.isAtEnd() {
		start := p.pos
		stmt, err := p.parseStmt()
		if err != nil {
			errs = append(errs, err)
			if p.pos == start {
				p.advance()
			}
			p.synchronize()
			continue
		}
		prog.Stmts = append(prog.Stmts, stmt)
	}
	return prog, errs
}

// ParseIntLiteral converts an INT_LIT token's lexeme to a uint64, the
// only integer width Hydrogen values have. The lexer guarantees the
// lexeme is all-digit, so the only failure mode is overflow.
func ParseIntLiteral(tok token.Token) (uint64, error) {
	v, err := strconv.ParseUint(tok.Lexeme, 10, 64)
	if err != nil {
		return 0, ParseError{Kind: ParseExpected, Line: tok.Line, Want: "a value that fits in 64 bits", Got: tok.Lexeme}
	}
	return v, nil
}
