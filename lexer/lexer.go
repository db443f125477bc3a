// Package lexer turns Hydrogen source text into a linear token stream.
//
// Scanning is single-pass, left-to-right, greedy-longest-match, with at
// most two characters of lookahead (needed only to recognize the start of
// a `//` or `/* */` comment). Every emitted token is stamped with the
// 1-based line its first character appeared on.
package lexer

import (
	"github.com/informatter/hydro/token"
)

func isLetter(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlphaNumeric(c rune) bool {
	return isLetter(c) || isDigit(c)
}

// Lexer scans a fixed source string into tokens. It holds no references to
// the caller's string beyond the initial rune conversion; the source is
// borrowed for the duration of Scan only.
type Lexer struct {
	src          []rune
	position     int // index of currentChar
	readPosition int // index of the next unread rune
	currentChar  rune
	line         int
	tokens       []token.Token
}

// New returns a Lexer positioned at the start of src.
func New(src string) *Lexer {
	l := &Lexer{src: []rune(src), line: 1}
	l.readChar()
	return l
}

func (l *Lexer) isAtEnd() bool {
	return l.readPosition > len(l.src)
}

// readChar advances the cursor by one rune. currentChar becomes rune(0)
// once the source is exhausted.
func (l *Lexer) readChar() {
	if l.readPosition >= len(l.src) {
		l.currentChar = rune(0)
	} else {
		l.currentChar = l.src[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
}

// peek returns the next unread rune without consuming it.
func (l *Lexer) peek() rune {
	if l.readPosition >= len(l.src) {
		return rune(0)
	}
	return l.src[l.readPosition]
}

func (l *Lexer) emit(kind token.Kind) {
	l.tokens = append(l.tokens, token.New(kind, l.line))
}

func (l *Lexer) emitLexeme(kind token.Kind, lexeme string) {
	l.tokens = append(l.tokens, token.NewLexeme(kind, l.line, lexeme))
}

// scanIdentifier reads a maximal run of [A-Za-z0-9] starting at an
// alphabetic head and classifies it against the reserved-word table.
func (l *Lexer) scanIdentifier() {
	start := l.position
	for isAlphaNumeric(l.peek()) {
		l.readChar()
	}
	lexeme := string(l.src[start : l.position+1])
	if kind, ok := token.Keywords[lexeme]; ok {
		l.emit(kind)
		return
	}
	l.emitLexeme(token.IDENT, lexeme)
}

// scanNumber reads a maximal run of decimal digits. No sign, no
// underscores, no floating point.
func (l *Lexer) scanNumber() {
	start := l.position
	for isDigit(l.peek()) {
		l.readChar()
	}
	lexeme := string(l.src[start : l.position+1])
	l.emitLexeme(token.INT_LIT, lexeme)
}

// skipLineComment discards characters up to (but not including) the next
// newline, or end of input.
func (l *Lexer) skipLineComment() {
	for l.currentChar != '\n' && l.currentChar != rune(0) {
		l.readChar()
	}
}

// skipBlockComment discards characters up to and including the next `*/`.
// An unterminated block comment is a LexError: the scanner does not
// silently treat running off the end of input as a closed comment.
func (l *Lexer) skipBlockComment() error {
	startLine := l.line
	// consume the opening "/*"
	l.readChar()
	l.readChar()
	for {
		if l.currentChar == rune(0) {
			return LexError{Line: startLine, Message: "unterminated block comment"}
		}
		if l.currentChar == '*' && l.peek() == '/' {
			l.readChar()
			l.readChar()
			return nil
		}
		if l.currentChar == '\n' {
			l.line++
		}
		l.readChar()
	}
}

// Scan performs lexical analysis on the Lexer's source and returns its
// token stream, including a trailing EOF token. Scanning stops at the
// first LexError.
func (l *Lexer) Scan() ([]token.Token, error) {
	for !l.isAtEnd() {
		switch {
		case l.currentChar == '\n':
			l.line++
			l.readChar()
		case l.currentChar == ' ' || l.currentChar == '\t' || l.currentChar == '\r':
			l.readChar()
		case l.currentChar == '/' && l.peek() == '/':
			l.skipLineComment()
		case l.currentChar == '/' && l.peek() == '*':
			if err := l.skipBlockComment(); err != nil {
				return l.tokens, err
			}
		case isLetter(l.currentChar):
			l.scanIdentifier()
			l.readChar()
		case isDigit(l.currentChar):
			l.scanNumber()
			l.readChar()
		default:
			if kind, ok := singleCharTokens[l.currentChar]; ok {
				l.emit(kind)
				l.readChar()
			} else {
				return l.tokens, LexError{
					Line:    l.line,
					Message: "unrecognized character '" + string(l.currentChar) + "'",
				}
			}
		}
	}
	l.tokens = append(l.tokens, token.New(token.EOF, l.line))
	return l.tokens, nil
}

var singleCharTokens = map[rune]token.Kind{
	';': token.SEMI,
	'=': token.EQ,
	'(': token.OPEN_PAREN,
	')': token.CLOSE_PAREN,
	'{': token.OPEN_CURLY,
	'}': token.CLOSE_CURLY,
	'+': token.PLUS,
	'-': token.MINUS,
	'*': token.STAR,
	'/': token.FSLASH,
}
