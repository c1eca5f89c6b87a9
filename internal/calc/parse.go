package calc

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Expr is a node of a parsed expression.
type Expr interface {
	// Eval computes the value of the expression.
	Eval() (float64, error)
	// String formats the expression in an unambiguous, fully parenthesized form.
	String() string
}

type number float64

func (n number) Eval() (float64, error) { return float64(n), nil }
func (n number) String() string         { return strconv.FormatFloat(float64(n), 'g', -1, 64) }

type unaryExpr struct {
	op    string
	right Expr
}

func (e *unaryExpr) Eval() (float64, error) {
	v, err := e.right.Eval()
	if err != nil {
		return 0, err
	}
	if e.op == "-" {
		return -v, nil
	}
	return v, nil
}

func (e *unaryExpr) String() string {
	return fmt.Sprintf("(%s %s)", e.op, e.right)
}

type binaryExpr struct {
	left  Expr
	op    string
	right Expr
}

func (e *binaryExpr) Eval() (float64, error) {
	x, err := e.left.Eval()
	if err != nil {
		return 0, err
	}
	y, err := e.right.Eval()
	if err != nil {
		return 0, err
	}
	switch e.op {
	case "+":
		return x + y, nil
	case "-":
		return x - y, nil
	case "*":
		return x * y, nil
	case "/":
		return x / y, nil
	case "**":
		return math.Pow(x, y), nil
	}
	return 0, fmt.Errorf("unknown operator %q", e.op)
}

func (e *binaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.left, e.op, e.right)
}

type callExpr struct {
	fn  string
	arg Expr
}

func (e *callExpr) Eval() (float64, error) {
	v, err := e.arg.Eval()
	if err != nil {
		return 0, err
	}
	fn, ok := builtins[e.fn]
	if !ok {
		return 0, fmt.Errorf("unknown function %q", e.fn)
	}
	return fn(v), nil
}

func (e *callExpr) String() string {
	return fmt.Sprintf("%s(%s)", e.fn, e.arg)
}

type factorialExpr struct {
	arg Expr
}

func (e *factorialExpr) Eval() (float64, error) {
	v, err := e.arg.Eval()
	if err != nil {
		return 0, err
	}
	return factorial(v)
}

func (e *factorialExpr) String() string {
	return fmt.Sprintf("(%s !)", e.arg)
}

// parser is a recursive-descent parser over a normalized token stream.
//
//	expr    = term { ("+" | "-") term }
//	term    = unary { ("*" | "/") unary }
//	unary   = ("+" | "-") unary | power
//	power   = postfix [ "**" unary ]
//	postfix = primary { "!" }
//	primary = number | func "(" expr ")" | "(" expr ")"
type parser struct {
	toks []Token
	pos  int
}

// Parse builds an expression tree from a normalized token stream.
func Parse(toks []Token) (Expr, error) {
	if len(toks) == 0 || toks[len(toks)-1].Type != EOF {
		toks = append(toks, Token{Type: EOF})
	}
	p := &parser{toks: toks}
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.Type != EOF {
		return nil, unexpected(t)
	}
	return e, nil
}

func (p *parser) peek() Token {
	return p.toks[p.pos]
}

func (p *parser) next() Token {
	t := p.toks[p.pos]
	if t.Type != EOF {
		p.pos++
	}
	return t
}

func (p *parser) isOp(ops ...string) bool {
	t := p.peek()
	if t.Type != Operator {
		return false
	}
	for _, op := range ops {
		if t.Text == op {
			return true
		}
	}
	return false
}

func (p *parser) expr() (Expr, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.isOp("+", "-") {
		op := p.next().Text
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &binaryExpr{left, op, right}
	}
	return left, nil
}

func (p *parser) term() (Expr, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for p.isOp("*", "/") {
		op := p.next().Text
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &binaryExpr{left, op, right}
	}
	return left, nil
}

func (p *parser) unary() (Expr, error) {
	if p.isOp("+", "-") {
		op := p.next().Text
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		return &unaryExpr{op, right}, nil
	}
	return p.power()
}

// power is right-associative: 2**3**2 is 2**(3**2).
func (p *parser) power() (Expr, error) {
	base, err := p.postfix()
	if err != nil {
		return nil, err
	}
	if !p.isOp("**") {
		return base, nil
	}
	p.next()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &binaryExpr{base, "**", exp}, nil
}

func (p *parser) postfix() (Expr, error) {
	e, err := p.primary()
	if err != nil {
		return nil, err
	}
	for p.peek().Type == Bang {
		p.next()
		e = &factorialExpr{e}
	}
	return e, nil
}

func (p *parser) primary() (Expr, error) {
	t := p.next()
	switch t.Type {
	case Number:
		v, err := parseNumber(t)
		if err != nil {
			return nil, err
		}
		return number(v), nil
	case Func:
		if p.peek().Type != LeftParen {
			return nil, syntaxErrorf(t.Pos, "%s needs an argument in parentheses", t.Text)
		}
		arg, err := p.group()
		if err != nil {
			return nil, err
		}
		return &callExpr{t.Text, arg}, nil
	case LeftParen:
		p.pos--
		return p.group()
	}
	return nil, unexpected(t)
}

// group parses a parenthesized expression.
func (p *parser) group() (Expr, error) {
	p.next() // (
	e, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.next(); t.Type != RightParen {
		return nil, syntaxErrorf(t.Pos, "missing )")
	}
	return e, nil
}

// parseNumber converts a number token. Literals too large for float64 are
// domain errors, like any other infinite value.
func parseNumber(t Token) (float64, error) {
	v, err := strconv.ParseFloat(t.Text, 64)
	if errors.Is(err, strconv.ErrRange) {
		if math.IsInf(v, 0) {
			return 0, domainErrorf("number %q out of range", t.Text)
		}
		return v, nil // underflow to zero
	}
	if err != nil {
		return 0, syntaxErrorf(t.Pos, "bad number %q", t.Text)
	}
	return v, nil
}

func unexpected(t Token) error {
	if t.Type == EOF {
		return syntaxErrorf(t.Pos, "unexpected end of expression")
	}
	return syntaxErrorf(t.Pos, "unexpected %q", t.Text)
}
