package token

import (
	"strings"
	"testing"
)

func TestKeywordsClassifyCorrectly(t *testing.T) {
	tests := []struct {
		lexeme string
		want   Kind
	}{
		{"exit", EXIT},
		{"let", LET},
		{"if", IF},
		{"elif", ELIF},
		{"else", ELSE},
	}

	for _, tt := range tests {
		t.Run(tt.lexeme, func(t *testing.T) {
			got, ok := Keywords[tt.lexeme]
			if !ok {
				t.Fatalf("expected %q to be a reserved word", tt.lexeme)
			}
			if got != tt.want {
				t.Errorf("Keywords[%q] = %v, want %v", tt.lexeme, got, tt.want)
			}
		})
	}
}

func TestNonKeywordIsNotReserved(t *testing.T) {
	if _, ok := Keywords["x"]; ok {
		t.Errorf("expected %q to not be a reserved word", "x")
	}
}

func TestNewLexemeRoundTrip(t *testing.T) {
	tok := NewLexeme(IDENT, 3, "total")
	if tok.Kind != IDENT || tok.Line != 3 || tok.Lexeme != "total" {
		t.Errorf("unexpected token: %+v", tok)
	}
}

func TestStringIncludesLexemeWhenPresent(t *testing.T) {
	tok := NewLexeme(INT_LIT, 1, "42")
	if got := tok.String(); !strings.Contains(got, "42") {
		t.Fatalf("String() = %q, want it to include the lexeme %q", got, "42")
	}
	plain := New(SEMI, 1)
	if got := plain.String(); got == "" {
		t.Fatalf("String() returned empty string")
	}
}
