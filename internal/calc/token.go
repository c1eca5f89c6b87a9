package calc

import "fmt"

// Type identifies the type of a token.
type Type int

const (
	EOF        Type = iota
	Number          // numeric literal, possibly with fraction and exponent
	Operator        // + - * / **
	Func            // known function name
	Const           // π, pi, e
	Root            // √
	Bang            // !
	LeftParen       // (
	RightParen      // )
)

func (t Type) String() string {
	switch t {
	case EOF:
		return "EOF"
	case Number:
		return "Number"
	case Operator:
		return "Operator"
	case Func:
		return "Func"
	case Const:
		return "Const"
	case Root:
		return "Root"
	case Bang:
		return "Bang"
	case LeftParen:
		return "LeftParen"
	case RightParen:
		return "RightParen"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// Token is a lexical item of an expression.
type Token struct {
	Type Type
	Pos  int    // byte offset in the source text
	Text string // canonical text
}

func (t Token) String() string {
	if t.Type == EOF {
		return "EOF"
	}
	return fmt.Sprintf("%s: %q", t.Type, t.Text)
}

// functions lists the unary functions understood by the evaluator.
var functions = map[string]bool{
	"sin":   true,
	"cos":   true,
	"tan":   true,
	"asin":  true,
	"acos":  true,
	"atan":  true,
	"log":   true,
	"log10": true,
	"exp":   true,
	"sqrt":  true,
}

// IsFunction reports whether name is a function the evaluator knows.
func IsFunction(name string) bool {
	return functions[name]
}
