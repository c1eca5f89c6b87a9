package calc

import (
	"math"
	"strconv"
	"strings"
)

// AngleUnit selects how trigonometric functions read and produce angles.
type AngleUnit int

const (
	Degrees AngleUnit = iota
	Radians
)

func (u AngleUnit) String() string {
	if u == Radians {
		return "RAD"
	}
	return "DEG"
}

// ParseAngleUnit accepts "deg" or "rad" in any case.
func ParseAngleUnit(s string) (AngleUnit, bool) {
	switch strings.ToLower(s) {
	case "deg", "degrees":
		return Degrees, true
	case "rad", "radians":
		return Radians, true
	}
	return Degrees, false
}

// piLiteral is the value substituted for π.
const piLiteral = "3.1415926536"

var (
	degToRad = strconv.FormatFloat(math.Pi/180, 'g', -1, 64)
	radToDeg = strconv.FormatFloat(180/math.Pi, 'g', -1, 64)
	eLiteral = strconv.FormatFloat(math.E, 'g', -1, 64)
)

// maxFactorial is the largest n whose factorial is a finite float64.
const maxFactorial = 170

// Normalize rewrites a token stream into the plain arithmetic form the parser
// accepts. The passes run in a fixed order: operator translation, root
// expansion, constant substitution, factorial folding, closing of unbalanced
// parentheses and, in degree mode, angle conversion around trig calls.
func Normalize(tokens []Token, unit AngleUnit) ([]Token, error) {
	end := Token{Type: EOF}
	if n := len(tokens); n > 0 && tokens[n-1].Type == EOF {
		end = tokens[n-1]
		tokens = tokens[:n-1]
	}
	toks := translateOperators(tokens)
	toks = expandRoots(toks)
	toks = substituteConstants(toks)
	toks, err := foldFactorials(toks)
	if err != nil {
		return nil, err
	}
	toks = closeParens(toks, end.Pos)
	if unit == Degrees {
		toks = wrapDegrees(toks)
	}
	return append(toks, end), nil
}

// translateOperators maps ^ to ** and the typographic operators to ASCII.
func translateOperators(toks []Token) []Token {
	out := make([]Token, len(toks))
	for i, t := range toks {
		if t.Type == Operator {
			switch t.Text {
			case "^":
				t.Text = "**"
			case "×":
				t.Text = "*"
			case "÷":
				t.Text = "/"
			case "−":
				t.Text = "-"
			}
		}
		out[i] = t
	}
	return out
}

// expandRoots turns √n into sqrt(n) and a bare √ into an unclosed sqrt(.
func expandRoots(toks []Token) []Token {
	out := make([]Token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.Type != Root {
			out = append(out, t)
			continue
		}
		out = append(out, Token{Func, t.Pos, "sqrt"}, Token{LeftParen, t.Pos, "("})
		if i+1 < len(toks) && toks[i+1].Type == Number {
			num := toks[i+1]
			out = append(out, num, Token{RightParen, num.Pos, ")"})
			i++
		}
	}
	return out
}

// substituteConstants replaces π and e with numeric literals.
func substituteConstants(toks []Token) []Token {
	out := make([]Token, len(toks))
	for i, t := range toks {
		if t.Type == Const {
			if t.Text == "e" {
				t = Token{Number, t.Pos, eLiteral}
			} else {
				t = Token{Number, t.Pos, piLiteral}
			}
		}
		out[i] = t
	}
	return out
}

// foldFactorials replaces n! on a literal with its value.
// Factorials of anything other than a literal are left to the parser.
func foldFactorials(toks []Token) ([]Token, error) {
	out := make([]Token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		for t.Type == Number && i+1 < len(toks) && toks[i+1].Type == Bang {
			n, err := parseNumber(t)
			if err != nil {
				return nil, err
			}
			f, err := factorial(n)
			if err != nil {
				return nil, err
			}
			t = Token{Number, t.Pos, strconv.FormatFloat(f, 'g', -1, 64)}
			i++
		}
		out = append(out, t)
	}
	return out, nil
}

// factorial computes n! for non-negative integers.
func factorial(n float64) (float64, error) {
	if n < 0 || n != math.Trunc(n) {
		return 0, domainErrorf("factorial of %v", n)
	}
	if n > maxFactorial {
		return 0, domainErrorf("factorial of %v overflows", n)
	}
	return fact(n), nil
}

func fact(n float64) float64 {
	if n <= 1 {
		return 1
	}
	return n * fact(n-1)
}

// closeParens appends the closing parentheses needed to balance the stream.
func closeParens(toks []Token, pos int) []Token {
	depth := 0
	for _, t := range toks {
		switch t.Type {
		case LeftParen:
			depth++
		case RightParen:
			depth--
		}
	}
	for ; depth > 0; depth-- {
		toks = append(toks, Token{RightParen, pos, ")"})
	}
	return toks
}

// wrapDegrees converts trig arguments from degrees and inverse trig results
// to degrees: sin(x) becomes sin((x)*π/180), asin(x) becomes (asin(x)*180/π).
func wrapDegrees(toks []Token) []Token {
	out := make([]Token, 0, len(toks))
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.Type != Func || !isTrig(t.Text) || i+1 >= len(toks) || toks[i+1].Type != LeftParen {
			out = append(out, t)
			continue
		}
		end := matchParen(toks, i+1)
		if end < 0 {
			out = append(out, t)
			continue
		}
		var (
			lp    = toks[i+1]
			rp    = toks[end]
			inner = wrapDegrees(toks[i+2 : end])
			mul   = Token{Operator, rp.Pos, "*"}
		)
		if strings.HasPrefix(t.Text, "a") {
			out = append(out, Token{LeftParen, t.Pos, "("}, t, lp)
			out = append(out, inner...)
			out = append(out, rp, mul, Token{Number, rp.Pos, radToDeg}, Token{RightParen, rp.Pos, ")"})
		} else {
			out = append(out, t, lp, Token{LeftParen, lp.Pos, "("})
			out = append(out, inner...)
			out = append(out, Token{RightParen, rp.Pos, ")"}, mul, Token{Number, rp.Pos, degToRad}, rp)
		}
		i = end
	}
	return out
}

func isTrig(name string) bool {
	switch name {
	case "sin", "cos", "tan", "asin", "acos", "atan":
		return true
	}
	return false
}

// matchParen returns the index of the parenthesis closing toks[open], or -1.
func matchParen(toks []Token, open int) int {
	depth := 0
	for i := open; i < len(toks); i++ {
		switch toks[i].Type {
		case LeftParen:
			depth++
		case RightParen:
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// FormatTokens renders a token stream back into expression text.
func FormatTokens(toks []Token) string {
	var b strings.Builder
	for _, t := range toks {
		if t.Type != EOF {
			b.WriteString(t.Text)
		}
	}
	return b.String()
}
