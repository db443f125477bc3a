// Package compiler lowers a Hydrogen ast.Prog to x86-64 NASM assembly
// text targeting the Linux System V ABI, entering at _start and exiting
// through the raw `exit` syscall rather than libc.
//
// Generation is a simple stack machine: every expression, once
// evaluated, leaves its one result value pushed on the runtime stack;
// every consumer of a value pops it back off. Variables are never kept
// in registers across statements — they live at a fixed, tracked offset
// from the current stack pointer, the same way hand-written stack-
// machine assembly would.
package compiler

import (
	"fmt"
	"strings"

	"github.com/informatter/hydro/ast"
)

// Generator walks a Prog and accumulates NASM source text.
type Generator struct {
	out       strings.Builder
	stackSize int
	vars      *varEnv
	labelNum  int
}

// New returns a Generator ready to emit a fresh program.
func New() *Generator {
	return &Generator{vars: newVarEnv()}
}

func (g *Generator) emitf(format string, args ...any) {
	fmt.Fprintf(&g.out, format, args...)
	g.out.WriteByte('\n')
}

func (g *Generator) push(reg string) {
	g.emitf("    push %s", reg)
	g.stackSize++
}

func (g *Generator) pop(reg string) {
	g.emitf("    pop %s", reg)
	g.stackSize--
}

func (g *Generator) newLabel() string {
	label := fmt.Sprintf("label%d", g.labelNum)
	g.labelNum++
	return label
}

func (g *Generator) genTerm(t *ast.Term) error {
	switch t.Kind {
	case ast.TermIntLit:
		g.emitf("    mov rax, %s", t.Tok.Lexeme)
		g.push("rax")
		return nil

	case ast.TermIdent:
		v, ok := g.vars.lookup(t.Tok.Lexeme)
		if !ok {
			return GenError{Kind: GenUndeclared, Line: t.Line, Ident: t.Tok.Lexeme}
		}
		offset := (g.stackSize - v.stackLoc - 1) * 8
		g.emitf("    push QWORD [rsp + %d]", offset)
		g.stackSize++
		return nil

	case ast.TermParen:
		return g.genExpr(t.Inner)

	default:
		return GenError{Kind: GenUndeclared, Line: t.Line, Ident: "<term>"}
	}
}

func (g *Generator) genExpr(e *ast.Expr) error {
	switch e.Kind {
	case ast.ExprTerm:
		return g.genTerm(e.Term)

	case ast.ExprBin:
		bin := e.Bin
		// Lower rhs first, then lhs, so lhs ends on top of the stack.
		if err := g.genExpr(bin.Right); err != nil {
			return err
		}
		if err := g.genExpr(bin.Left); err != nil {
			return err
		}
		g.pop("rax") // lhs
		g.pop("rbx") // rhs
		switch bin.Op {
		case ast.BinAdd:
			g.emitf("    add rax, rbx")
		case ast.BinSub:
			g.emitf("    sub rax, rbx")
		case ast.BinMul:
			g.emitf("    mul rbx")
		case ast.BinDiv:
			g.emitf("    xor rdx, rdx")
			g.emitf("    div rbx")
		default:
			return GenError{Kind: GenUndeclared, Line: bin.Line, Ident: "<binop>"}
		}
		g.push("rax")
		return nil

	default:
		return GenError{Kind: GenUndeclared, Line: 0, Ident: "<expr>"}
	}
}

func (g *Generator) genExit(s *ast.ExitStmt) error {
	g.emitf("    ;; exit")
	if err := g.genExpr(s.Code); err != nil {
		return err
	}
	g.emitf("    mov rax, 60")
	g.pop("rdi")
	g.emitf("    syscall")
	g.emitf("    ;; /exit")
	return nil
}

func (g *Generator) genLet(s *ast.LetStmt) error {
	if _, ok := g.vars.lookup(s.Ident.Lexeme); ok {
		return GenError{Kind: GenRedeclared, Line: s.Line, Ident: s.Ident.Lexeme}
	}
	if err := g.genExpr(s.Value); err != nil {
		return err
	}
	g.vars.push(s.Ident.Lexeme, g.stackSize-1)
	return nil
}

func (g *Generator) genAssign(s *ast.AssignStmt) error {
	v, ok := g.vars.lookup(s.Ident.Lexeme)
	if !ok {
		return GenError{Kind: GenUndeclared, Line: s.Line, Ident: s.Ident.Lexeme}
	}
	if err := g.genExpr(s.Value); err != nil {
		return err
	}
	g.pop("rax")
	offset := (g.stackSize - v.stackLoc - 1) * 8
	g.emitf("    mov [rsp + %d], rax", offset)
	return nil
}

func (g *Generator) genScope(s *ast.Scope) error {
	g.vars.beginScope()
	for _, stmt := range s.Stmts {
		if err := g.genStmt(stmt); err != nil {
			return err
		}
	}
	popped := g.vars.endScope()
	if popped > 0 {
		g.emitf("    add rsp, %d", popped*8)
		g.stackSize -= popped
	}
	return nil
}

func (g *Generator) genIfPred(pred *ast.IfPred, endLabel string) error {
	switch pred.Kind {
	case ast.IfPredElif:
		nextLabel := g.newLabel()
		if err := g.genExpr(pred.Cond); err != nil {
			return err
		}
		g.pop("rax")
		g.emitf("    test rax, rax")
		g.emitf("    jz %s", nextLabel)
		if err := g.genScope(pred.Scope); err != nil {
			return err
		}
		g.emitf("    jmp %s", endLabel)
		g.emitf("%s:", nextLabel)
		if pred.Next != nil {
			return g.genIfPred(pred.Next, endLabel)
		}
		return nil

	case ast.IfPredElse:
		return g.genScope(pred.Else)

	default:
		return GenError{Kind: GenUndeclared, Line: pred.Line, Ident: "<if-pred>"}
	}
}

func (g *Generator) genIf(s *ast.IfStmt) error {
	g.emitf("    ;; if")
	if err := g.genExpr(s.Cond); err != nil {
		return err
	}
	g.pop("rax")
	g.emitf("    test rax, rax")

	if s.Pred == nil {
		falseLabel := g.newLabel()
		g.emitf("    jz %s", falseLabel)
		if err := g.genScope(s.Scope); err != nil {
			return err
		}
		g.emitf("%s:", falseLabel)
		g.emitf("    ;; /if")
		return nil
	}

	falseLabel := g.newLabel()
	endLabel := g.newLabel()
	g.emitf("    jz %s", falseLabel)
	if err := g.genScope(s.Scope); err != nil {
		return err
	}
	g.emitf("    jmp %s", endLabel)
	g.emitf("%s:", falseLabel)
	if err := g.genIfPred(s.Pred, endLabel); err != nil {
		return err
	}
	g.emitf("%s:", endLabel)
	g.emitf("    ;; /if")
	return nil
}

func (g *Generator) genStmt(s *ast.Stmt) error {
	switch s.Kind {
	case ast.StmtExit:
		return g.genExit(s.Exit)
	case ast.StmtLet:
		return g.genLet(s.Let)
	case ast.StmtAssign:
		return g.genAssign(s.Assign)
	case ast.StmtScope:
		return g.genScope(s.Scope)
	case ast.StmtIf:
		return g.genIf(s.If)
	default:
		return GenError{Kind: GenUndeclared, Line: 0, Ident: "<stmt>"}
	}
}

// Generate lowers prog to complete NASM source text, including a
// fallback `exit(0)` appended unconditionally at the end: a Hydrogen
// program that falls off the end of main without an explicit exit still
// needs to make the syscall rather than run into whatever bytes follow
// in the text section.
func Generate(prog *ast.Prog) (string, error) {
	g := New()
	g.emitf("global _start")
	g.emitf("_start:")
	for _, stmt := range prog.Stmts {
		if err := g.genStmt(stmt); err != nil {
			return "", err
		}
	}
	g.emitf("    mov rax, 60")
	g.emitf("    mov rdi, 0")
	g.emitf("    syscall")
	return g.out.String(), nil
}
