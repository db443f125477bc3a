package simulate

import (
	"testing"

	"github.com/informatter/hydro/arena"
	"github.com/informatter/hydro/lexer"
	"github.com/informatter/hydro/parser"
)

func mustRun(t *testing.T, src string) uint64 {
	t.Helper()
	toks, err := lexer.New(src).Scan()
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	prog, err := parser.ParseProgram(toks, arena.New(0))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	code, err := Run(prog)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}
	return code
}

func TestRunExitLiteral(t *testing.T) {
	if got := mustRun(t, "exit(42);"); got != 42 {
		t.Errorf("got %d, want 42", got)
	}
}

func TestRunOperatorPrecedence(t *testing.T) {
	if got := mustRun(t, "exit(2 + 3 * 4);"); got != 14 {
		t.Errorf("got %d, want 14", got)
	}
}

func TestRunParenOverridesPrecedence(t *testing.T) {
	if got := mustRun(t, "exit((2 + 3) * 4);"); got != 20 {
		t.Errorf("got %d, want 20", got)
	}
}

func TestRunVariablesAndReassignment(t *testing.T) {
	if got := mustRun(t, "let x = 5; x = x + 1; exit(x);"); got != 6 {
		t.Errorf("got %d, want 6", got)
	}
}

func TestRunIfTakesTrueBranch(t *testing.T) {
	if got := mustRun(t, "let x = 1; if (x) { exit(10); } else { exit(20); }"); got != 10 {
		t.Errorf("got %d, want 10", got)
	}
}

func TestRunIfFallsThroughToElif(t *testing.T) {
	src := "let x = 0; if (x) { exit(1); } elif (1) { exit(2); } else { exit(3); }"
	if got := mustRun(t, src); got != 2 {
		t.Errorf("got %d, want 2", got)
	}
}

func TestRunIfFallsThroughToElse(t *testing.T) {
	src := "let x = 0; if (x) { exit(1); } elif (0) { exit(2); } else { exit(3); }"
	if got := mustRun(t, src); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
}

func TestRunNestedScopeDistinctNames(t *testing.T) {
	src := "let x = 1; { let y = 2; exit(x + y); }"
	if got := mustRun(t, src); got != 3 {
		t.Errorf("got %d, want 3", got)
	}
}

func TestRunOuterBindingSurvivesInnerScope(t *testing.T) {
	src := "let x = 1; { let y = 2; } exit(x);"
	if got := mustRun(t, src); got != 1 {
		t.Errorf("got %d, want 1", got)
	}
}

func TestRunShadowingInNestedScopeFails(t *testing.T) {
	toks, err := lexer.New("let x = 1; { let x = 2; exit(x); }").Scan()
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	prog, err := parser.ParseProgram(toks, arena.New(0))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Run(prog)
	if _, ok := err.(RuntimeError); !ok {
		t.Fatalf("expected RuntimeError for shadowed redeclaration, got %#v", err)
	}
}

func TestRunFallsOffEndWithoutExit(t *testing.T) {
	if got := mustRun(t, "let x = 1;"); got != 0 {
		t.Errorf("got %d, want 0", got)
	}
}

func TestRunUndeclaredIdentifierFails(t *testing.T) {
	toks, err := lexer.New("exit(x);").Scan()
	if err != nil {
		t.Fatalf("lex failed: %v", err)
	}
	prog, err := parser.ParseProgram(toks, arena.New(0))
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	_, err = Run(prog)
	if _, ok := err.(RuntimeError); !ok {
		t.Fatalf("expected RuntimeError, got %#v", err)
	}
}
