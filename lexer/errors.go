package lexer

import "fmt"

// LexError is raised when the scanner meets a character it cannot classify
// into any token, or an unterminated block comment.
type LexError struct {
	Line    int
	Message string
}

func (e LexError) Error() string {
	return fmt.Sprintf("💥 LexError: line %d: %s", e.Line, e.Message)
}
