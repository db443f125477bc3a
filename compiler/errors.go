package compiler

import "fmt"

// ErrorKind distinguishes the shapes of failure code generation can hit.
// Both are programmer errors in the source, not bugs in the generator.
type ErrorKind uint8

const (
	// GenUndeclared means an identifier was read or assigned before any
	// `let` introduced it in an enclosing scope.
	GenUndeclared ErrorKind = iota
	// GenRedeclared means a `let` named an identifier that is already
	// live, whether bound in the same scope or an enclosing one.
	// Hydrogen has no shadowing: every binding must have a name that is
	// not already in use anywhere it can be seen.
	GenRedeclared
)

// GenError is raised by the code generator.
type GenError struct {
	Kind  ErrorKind
	Line  int
	Ident string
}

func (e GenError) Error() string {
	switch e.Kind {
	case GenUndeclared:
		return fmt.Sprintf("💥 GenError: line %d: undeclared identifier '%s'", e.Line, e.Ident)
	case GenRedeclared:
		return fmt.Sprintf("💥 GenError: line %d: identifier '%s' already declared", e.Line, e.Ident)
	default:
		return fmt.Sprintf("💥 GenError: line %d: cannot generate code for '%s'", e.Line, e.Ident)
	}
}
