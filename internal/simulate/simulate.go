// Package simulate is a tree-walking evaluator over the same ast.Prog
// the compiler consumes. It exists only to verify the compiler's
// semantics in tests: since the generated NASM text cannot be assembled
// and run without nasm and ld on the test machine, this package gives
// the test suite an independent, pure-Go oracle for "what exit code
// should this program produce", adapted from the teacher's tree-walking
// interpreter and re-themed to Hydrogen's arithmetic (unsigned 64-bit,
// wrapping on overflow, exactly as `add`/`sub`/`mul`/`div` behave on
// x86-64 general-purpose registers) and its exit-halts-everything
// control flow. Nothing in hydro.Compile or cmd/hydro ever calls it.
package simulate

import "github.com/informatter/hydro/ast"

func evalTerm(t *ast.Term, env *Environment) (uint64, error) {
	switch t.Kind {
	case ast.TermIntLit:
		return parseUint(t.Tok.Lexeme), nil
	case ast.TermIdent:
		v, ok := env.get(t.Tok.Lexeme)
		if !ok {
			return 0, RuntimeError{Line: t.Line, Ident: t.Tok.Lexeme}
		}
		return v, nil
	case ast.TermParen:
		return evalExpr(t.Inner, env)
	default:
		return 0, RuntimeError{Line: t.Line, Ident: "<term>"}
	}
}

func evalExpr(e *ast.Expr, env *Environment) (uint64, error) {
	switch e.Kind {
	case ast.ExprTerm:
		return evalTerm(e.Term, env)
	case ast.ExprBin:
		left, err := evalExpr(e.Bin.Left, env)
		if err != nil {
			return 0, err
		}
		right, err := evalExpr(e.Bin.Right, env)
		if err != nil {
			return 0, err
		}
		switch e.Bin.Op {
		case ast.BinAdd:
			return left + right, nil
		case ast.BinSub:
			return left - right, nil
		case ast.BinMul:
			return left * right, nil
		case ast.BinDiv:
			return left / right, nil
		default:
			return 0, RuntimeError{Line: e.Bin.Line, Ident: "<binop>"}
		}
	default:
		return 0, RuntimeError{Ident: "<expr>"}
	}
}

func execScope(s *ast.Scope, env *Environment) error {
	env.push()
	defer env.pop()
	for _, stmt := range s.Stmts {
		if err := execStmt(stmt, env); err != nil {
			return err
		}
	}
	return nil
}

func execIfPred(pred *ast.IfPred, env *Environment) error {
	switch pred.Kind {
	case ast.IfPredElif:
		cond, err := evalExpr(pred.Cond, env)
		if err != nil {
			return err
		}
		if cond != 0 {
			return execScope(pred.Scope, env)
		}
		if pred.Next != nil {
			return execIfPred(pred.Next, env)
		}
		return nil
	case ast.IfPredElse:
		return execScope(pred.Else, env)
	default:
		return RuntimeError{Line: pred.Line, Ident: "<if-pred>"}
	}
}

func execStmt(s *ast.Stmt, env *Environment) error {
	switch s.Kind {
	case ast.StmtExit:
		code, err := evalExpr(s.Exit.Code, env)
		if err != nil {
			return err
		}
		return exitSignal{code: code}

	case ast.StmtLet:
		v, err := evalExpr(s.Let.Value, env)
		if err != nil {
			return err
		}
		if !env.declare(s.Let.Ident.Lexeme, v) {
			return RuntimeError{Line: s.Let.Line, Ident: s.Let.Ident.Lexeme}
		}
		return nil

	case ast.StmtAssign:
		v, err := evalExpr(s.Assign.Value, env)
		if err != nil {
			return err
		}
		if !env.assign(s.Assign.Ident.Lexeme, v) {
			return RuntimeError{Line: s.Assign.Line, Ident: s.Assign.Ident.Lexeme}
		}
		return nil

	case ast.StmtScope:
		return execScope(s.Scope, env)

	case ast.StmtIf:
		cond, err := evalExpr(s.If.Cond, env)
		if err != nil {
			return err
		}
		if cond != 0 {
			return execScope(s.If.Scope, env)
		}
		if s.If.Pred != nil {
			return execIfPred(s.If.Pred, env)
		}
		return nil

	default:
		return RuntimeError{Ident: "<stmt>"}
	}
}

// Run walks prog to completion and returns the exit code it produces.
// Every Hydrogen program the compiler accepts either reaches an exit
// statement or falls off the end, in which case Run reports 0 — the
// same fallback the generator's unconditional footer emits.
func Run(prog *ast.Prog) (uint64, error) {
	env := NewEnvironment()
	for _, stmt := range prog.Stmts {
		err := execStmt(stmt, env)
		if err == nil {
			continue
		}
		if sig, ok := err.(exitSignal); ok {
			return sig.code, nil
		}
		return 0, err
	}
	return 0, nil
}

func parseUint(lexeme string) uint64 {
	var v uint64
	for _, c := range lexeme {
		v = v*10 + uint64(c-'0')
	}
	return v
}
