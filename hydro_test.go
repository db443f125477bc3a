package hydro

import (
	"strings"
	"testing"

	"github.com/informatter/hydro/lexer"
)

func TestCompileMinimalProgram(t *testing.T) {
	asm, err := Compile("exit(0);")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !strings.Contains(asm, "global _start") {
		t.Errorf("expected entry point directive, got:\n%s", asm)
	}
}

func TestCompileArithmeticPrecedence(t *testing.T) {
	asm, err := Compile("exit(2 + 3 * 4);")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !strings.Contains(asm, "mul rbx") || !strings.Contains(asm, "add rax, rbx") {
		t.Errorf("expected both a mul and an add instruction, got:\n%s", asm)
	}
}

func TestCompileVariablesAndScopes(t *testing.T) {
	asm, err := Compile(`
		let x = 1;
		{
			let y = x + 1;
			exit(y);
		}
	`)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	if !strings.Contains(asm, "add rsp") {
		t.Errorf("expected the inner scope to pop its binding, got:\n%s", asm)
	}
}

func TestCompileIfElifElse(t *testing.T) {
	_, err := Compile(`
		let x = 1;
		if (x) {
			exit(1);
		} elif (x) {
			exit(2);
		} else {
			exit(3);
		}
	`)
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
}

func TestCompileRejectsShadowingWithinSameScope(t *testing.T) {
	_, err := Compile("let x = 1; let x = 2; exit(x);")
	if err == nil {
		t.Fatalf("expected a redeclaration error, got nil")
	}
}

func TestCompileRejectsUndeclaredIdentifier(t *testing.T) {
	_, err := Compile("exit(x);")
	if err == nil {
		t.Fatalf("expected an undeclared-identifier error, got nil")
	}
}

func TestCompileRejectsMissingToken(t *testing.T) {
	_, err := Compile("exit(0)")
	if err == nil {
		t.Fatalf("expected a missing-semicolon parse error, got nil")
	}
}

func TestCompileRejectsLexError(t *testing.T) {
	_, err := Compile("let x = 1 @ 2;")
	if err == nil {
		t.Fatalf("expected a lex error, got nil")
	}
}

func TestCompileRejectsUnterminatedBlockComment(t *testing.T) {
	_, err := Compile("let x = 1; /* never closed")
	if err == nil {
		t.Fatalf("expected a lex error for the unterminated comment, got nil")
	}
}

func TestCompileDivisionAlwaysZeroesRdxFirst(t *testing.T) {
	asm, err := Compile("exit(10 / 5);")
	if err != nil {
		t.Fatalf("Compile failed: %v", err)
	}
	idx := strings.Index(asm, "div rbx")
	if idx == -1 || !strings.Contains(asm[:idx], "xor rdx, rdx") {
		t.Errorf("expected rdx to be zeroed before every div, got:\n%s", asm)
	}
}

// sanity check that empty source lexes to a lone EOF token and compiles
// to nothing but the fallback exit(0) footer.
func TestCompileEmptyProgramExitsZero(t *testing.T) {
	toks, err := lexer.New("").Scan()
	if err != nil {
		t.Fatalf("unexpected lex error on empty input: %v", err)
	}
	if len(toks) != 1 {
		t.Fatalf("expected only an EOF token, got %d", len(toks))
	}
	asm, err := Compile("")
	if err != nil {
		t.Fatalf("Compile failed on empty program: %v", err)
	}
	if !strings.Contains(asm, "mov rdi, 0") {
		t.Errorf("expected fallback exit(0) footer, got:\n%s", asm)
	}
}
