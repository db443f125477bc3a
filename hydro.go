// Package hydro compiles Hydrogen source text to x86-64 NASM assembly.
package hydro

import (
	"github.com/informatter/hydro/arena"
	"github.com/informatter/hydro/compiler"
	"github.com/informatter/hydro/lexer"
	"github.com/informatter/hydro/parser"
)

// Compile lexes, parses, and generates NASM source text for source. It
// stops at the first error any stage raises: a Hydrogen program either
// compiles whole or not at all.
func Compile(source string) (string, error) {
	toks, err := lexer.New(source).Scan()
	if err != nil {
		return "", err
	}

	a := arena.New(arena.DefaultCapacity)
	prog, err := parser.ParseProgram(toks, a)
	if err != nil {
		return "", err
	}

	return compiler.Generate(prog)
}
