package calc

import (
	"errors"
	"fmt"
)

// ErrDomain is returned for results outside the real numbers: factorial of a
// negative or fractional number, NaN, or an infinite result.
var ErrDomain = errors.New("domain error")

// Display markers for failed evaluations.
const (
	MarkerError  = "Error"
	MarkerSyntax = "Syntax Error"
	MarkerMath   = "Math Error"
)

// SyntaxError reports malformed expression text.
type SyntaxError struct {
	Pos int // byte offset in the expression
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d: %s", e.Pos, e.Msg)
}

func syntaxErrorf(pos int, format string, args ...interface{}) error {
	return &SyntaxError{Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func domainErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrDomain, fmt.Sprintf(format, args...))
}

// Marker returns the text shown in place of a result when evaluation fails.
func Marker(err error) string {
	var syn *SyntaxError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &syn):
		return MarkerSyntax
	case errors.Is(err, ErrDomain):
		return MarkerMath
	default:
		return MarkerError
	}
}
