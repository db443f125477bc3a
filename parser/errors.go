package parser

import "fmt"

// ErrorKind distinguishes the shapes of failure the parser can report.
type ErrorKind uint8

const (
	// ParseExpected means the parser was looking for one specific token
	// kind and found something else (or ran out of tokens).
	ParseExpected ErrorKind = iota
	// ParseNoStmt means the current token cannot begin any statement.
	ParseNoStmt
)

// ParseError is raised by the parser. Got is empty when the failure was
// running off the end of the token stream rather than seeing a concrete,
// wrong token.
type ParseError struct {
	Kind ErrorKind
	Line int
	Want string
	Got  string
}

func (e ParseError) Error() string {
	switch e.Kind {
	case ParseExpected:
		if e.Got == "" {
			return fmt.Sprintf("💥 ParseError: line %d: expected %s, reached end of input", e.Line, e.Want)
		}
		return fmt.Sprintf("💥 ParseError: line %d: expected %s, got %s", e.Line, e.Want, e.Got)
	case ParseNoStmt:
		return fmt.Sprintf("💥 ParseError: line %d: expected a statement, got %s", e.Line, e.Got)
	default:
		return fmt.Sprintf("💥 ParseError: line %d: malformed input", e.Line)
	}
}
