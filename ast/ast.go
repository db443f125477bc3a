// Package ast defines the Hydrogen abstract syntax tree.
//
// Every node is a plain struct carrying a Kind tag; consumers switch on
// Kind rather than calling through an Accept/Visit pair. Apart from the
// root Prog, which the parser allocates on the Go heap, nodes are never
// heap-allocated one at a time — they live in the arena.Arena the parser
// was given, and are only ever referenced through stable pointers into it.
package ast

import (
	"github.com/informatter/hydro/arena"
	"github.com/informatter/hydro/token"
)

// TermKind tags the payload carried by a Term.
type TermKind uint8

const (
	TermIntLit TermKind = iota
	TermIdent
	TermParen
)

// Term is the tightest-binding piece of an expression: a literal, a
// variable reference, or a fully parenthesized sub-expression.
type Term struct {
	Kind  TermKind
	Line  int
	Tok   token.Token // for TermIntLit and TermIdent, the literal/ident token
	Inner *Expr       // for TermParen
}

// BinOp identifies the operator of a BinExpr.
type BinOp uint8

const (
	BinAdd BinOp = iota
	BinSub
	BinMul
	BinDiv
)

// BinExpr is a binary arithmetic expression.
type BinExpr struct {
	Op    BinOp
	Line  int
	Left  *Expr
	Right *Expr
}

// ExprKind tags the payload carried by an Expr.
type ExprKind uint8

const (
	ExprTerm ExprKind = iota
	ExprBin
)

// Expr is the tagged union of every expression form Hydrogen has.
type Expr struct {
	Kind ExprKind
	Term *Term
	Bin  *BinExpr
}

// ExitStmt halts the program, exiting with the value of Code.
type ExitStmt struct {
	Line int
	Code *Expr
}

// LetStmt introduces a new binding in the current scope.
type LetStmt struct {
	Line  int
	Ident token.Token
	Value *Expr
}

// AssignStmt rebinds an existing identifier already visible in scope.
type AssignStmt struct {
	Line  int
	Ident token.Token
	Value *Expr
}

// Scope is a `{ ... }` block: a nested sequence of statements that opens
// its own variable scope.
type Scope struct {
	Line  int
	Stmts []*Stmt
}

// IfPredKind tags the payload carried by an IfPred.
type IfPredKind uint8

const (
	IfPredElif IfPredKind = iota
	IfPredElse
)

// IfPred is one link in an if statement's elif/else chain.
type IfPred struct {
	Kind  IfPredKind
	Line  int
	Cond  *Expr  // set when Kind == IfPredElif
	Scope *Scope // set when Kind == IfPredElif
	Else  *Scope // set when Kind == IfPredElse
	Next  *IfPred
}

// IfStmt is a conditional with an optional elif/else chain.
type IfStmt struct {
	Line  int
	Cond  *Expr
	Scope *Scope
	Pred  *IfPred // nil if there is no elif/else
}

// StmtKind tags the payload carried by a Stmt.
type StmtKind uint8

const (
	StmtExit StmtKind = iota
	StmtLet
	StmtAssign
	StmtScope
	StmtIf
)

// Stmt is the tagged union of every statement form Hydrogen has.
type Stmt struct {
	Kind   StmtKind
	Exit   *ExitStmt
	Let    *LetStmt
	Assign *AssignStmt
	Scope  *Scope
	If     *IfStmt
}

// Prog is a whole compilation unit: an ordered sequence of top-level
// statements.
type Prog struct {
	Stmts []*Stmt
}

// NewTerm, NewExpr, and NewStmt allocate their node in a, zero-initialize
// it, and return a stable pointer. They exist so the parser never spells
// out arena.Alloc/Emplace calls inline; every node acquires its storage
// the same way.

func NewTerm(a *arena.Arena) (*Term, error) { return arena.Alloc[Term](a) }
func NewExpr(a *arena.Arena) (*Expr, error) { return arena.Alloc[Expr](a) }
func NewStmt(a *arena.Arena) (*Stmt, error) { return arena.Alloc[Stmt](a) }

func NewBinExpr(a *arena.Arena) (*BinExpr, error)   { return arena.Alloc[BinExpr](a) }
func NewScope(a *arena.Arena) (*Scope, error)       { return arena.Alloc[Scope](a) }
func NewIfPred(a *arena.Arena) (*IfPred, error)     { return arena.Alloc[IfPred](a) }
func NewIfStmt(a *arena.Arena) (*IfStmt, error)     { return arena.Alloc[IfStmt](a) }
func NewExitStmt(a *arena.Arena) (*ExitStmt, error) { return arena.Alloc[ExitStmt](a) }
func NewLetStmt(a *arena.Arena) (*LetStmt, error)   { return arena.Alloc[LetStmt](a) }
func NewAssignStmt(a *arena.Arena) (*AssignStmt, error) {
	return arena.Alloc[AssignStmt](a)
}
