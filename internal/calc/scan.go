package calc

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

const eof = -1

// stateFn represents the state of the scanner as a function that returns the next state.
type stateFn func(*scanner) stateFn

// scanner holds the state of the scanner.
type scanner struct {
	input  string
	start  int // start position of this item
	pos    int // current position in the input
	width  int // width of last rune read
	tokens []Token
	err    error
}

// Scan splits an expression into tokens. The final token is always EOF.
func Scan(input string) ([]Token, error) {
	l := &scanner{input: input}
	for state := lexAny; state != nil; {
		state = state(l)
	}
	if l.err != nil {
		return nil, l.err
	}
	return l.tokens, nil
}

// next returns the next rune in the input.
func (l *scanner) next() rune {
	if l.pos >= len(l.input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.input[l.pos:])
	l.width = w
	l.pos += w
	return r
}

// peek returns but does not consume the next rune in the input.
func (l *scanner) peek() rune {
	r := l.next()
	l.backup()
	return r
}

// backup steps back one rune. Can only be called once per call of next.
func (l *scanner) backup() {
	l.pos -= l.width
}

// emit appends a token with the pending text.
func (l *scanner) emit(t Type) {
	l.tokens = append(l.tokens, Token{Type: t, Pos: l.start, Text: l.input[l.start:l.pos]})
	l.start = l.pos
}

// accept consumes the next rune if it's from the valid set.
func (l *scanner) accept(valid string) bool {
	if strings.ContainsRune(valid, l.next()) {
		return true
	}
	l.backup()
	return false
}

// acceptRun consumes a run of runes from the valid set.
func (l *scanner) acceptRun(valid string) {
	for strings.ContainsRune(valid, l.next()) {
	}
	l.backup()
}

// errorf records a syntax error and stops the scan.
func (l *scanner) errorf(format string, args ...interface{}) stateFn {
	l.err = syntaxErrorf(l.start, format, args...)
	return nil
}

// lexAny scans non-space items.
func lexAny(l *scanner) stateFn {
	switch r := l.next(); {
	case r == eof:
		l.tokens = append(l.tokens, Token{Type: EOF, Pos: l.pos})
		return nil
	case unicode.IsSpace(r):
		l.start = l.pos
		return lexAny
	case r == '.' || isDigit(r):
		l.backup()
		return lexNumber
	case r == '*':
		l.accept("*")
		l.emit(Operator)
	case strings.ContainsRune("+-/^×÷−", r):
		l.emit(Operator)
	case r == '(':
		l.emit(LeftParen)
	case r == ')':
		l.emit(RightParen)
	case r == '√':
		l.emit(Root)
	case r == '!':
		l.emit(Bang)
	case unicode.IsLetter(r):
		l.backup()
		return lexIdentifier
	default:
		return l.errorf("unrecognized character %#U", r)
	}
	return lexAny
}

// lexNumber scans a decimal number with optional fraction and exponent.
func lexNumber(l *scanner) stateFn {
	const digits = "0123456789"
	l.acceptRun(digits)
	if l.accept(".") {
		l.acceptRun(digits)
	}
	if l.pos-l.start == 1 && l.input[l.start] == '.' {
		return l.errorf("bad number %q", ".")
	}
	// An exponent needs at least one digit; otherwise the e is left for the
	// next token.
	if r := l.peek(); r == 'e' || r == 'E' {
		mark := l.pos
		l.next()
		l.accept("+-")
		if isDigit(l.peek()) {
			l.acceptRun(digits)
		} else {
			l.pos = mark
		}
	}
	l.emit(Number)
	return lexAny
}

// lexIdentifier scans a function or constant name.
func lexIdentifier(l *scanner) stateFn {
	for r := l.next(); unicode.IsLetter(r) || isDigit(r); r = l.next() {
	}
	l.backup()
	word := l.input[l.start:l.pos]
	switch {
	case word == "π" || word == "pi" || word == "e":
		l.emit(Const)
	case functions[word]:
		l.emit(Func)
	default:
		return l.errorf("unknown name %q", word)
	}
	return lexAny
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}
