package lexer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is returned when a declaration line is missing the '(' or
// one of the two ',' delimiters around the type and name fields.
var ErrMalformed = errors.New("malformed declaration")

// Lexer walks a single declaration line such as
//
//	__LOCATED_VAR(BOOL,__IX0_0,I,X,1,0,0)
//
// Every read is bounds checked against the line; running off the end is
// reported instead of reading past it.
type Lexer struct {
	input        string
	position     int  // current char index
	readPosition int  // next char index
	ch           byte // current char, 0 once past the end

	column int // current column (1-indexed)
}

func NewLexer(input string) *Lexer {
	l := &Lexer{input: input}
	l.readChar()
	return l
}

func (l *Lexer) readChar() {
	if l.readPosition >= len(l.input) {
		l.ch = 0
	} else {
		l.ch = l.input[l.readPosition]
	}
	l.position = l.readPosition
	l.readPosition++
	l.column = l.position + 1
}

func (l *Lexer) atEnd() bool {
	return l.position >= len(l.input)
}

// skipPast advances until delim has been consumed.
func (l *Lexer) skipPast(delim byte) bool {
	for !l.atEnd() {
		if l.ch == delim {
			l.readChar()
			return true
		}
		l.readChar()
	}
	return false
}

// readUntil returns the text up to delim and consumes delim.
func (l *Lexer) readUntil(delim byte) (string, bool) {
	start := l.position
	for !l.atEnd() {
		if l.ch == delim {
			field := l.input[start:l.position]
			l.readChar()
			return field, true
		}
		l.readChar()
	}
	return "", false
}

// Column is the 1-indexed column the lexer stopped at.
func (l *Lexer) Column() int {
	return l.column
}

// ScanDeclaration returns the first two comma separated fields after the
// first '(' of the line. Surrounding blanks are trimmed; trailing content and
// parenthesis balance are ignored.
func ScanDeclaration(line string) (typ, name string, err error) {
	l := NewLexer(line)

	if !l.skipPast('(') {
		return "", "", fmt.Errorf("%w: no '(' in line", ErrMalformed)
	}

	typ, ok := l.readUntil(',')
	if !ok {
		return "", "", fmt.Errorf("%w: no ',' after the type at column %d", ErrMalformed, l.Column())
	}
	typ = strings.TrimSpace(typ)

	nameCol := l.Column()
	name, ok = l.readUntil(',')
	if !ok {
		return "", "", fmt.Errorf("%w: no ',' after the name starting at column %d", ErrMalformed, nameCol)
	}
	name = strings.TrimSpace(name)

	if typ == "" {
		return "", "", fmt.Errorf("%w: empty type field", ErrMalformed)
	}
	if name == "" {
		return "", "", fmt.Errorf("%w: empty name field at column %d", ErrMalformed, nameCol)
	}
	return typ, name, nil
}
