package calc

import (
	"strings"
	"unicode/utf8"
)

// Result is the outcome of the last evaluation: empty, a value, or a failure.
type Result struct {
	value float64
	err   error
	set   bool
}

// ValueResult returns a result holding v.
func ValueResult(v float64) Result {
	return Result{value: v, set: true}
}

// ErrorResult returns a failed result.
func ErrorResult(err error) Result {
	return Result{err: err, set: true}
}

// Empty reports whether there is no result.
func (r Result) Empty() bool { return !r.set }

// Value returns the numeric result. ok is false for empty and failed results.
func (r Result) Value() (v float64, ok bool) {
	return r.value, r.set && r.err == nil
}

// Err returns the evaluation error of a failed result.
func (r Result) Err() error { return r.err }

// String gives the display text of the result: "" when empty, a marker on
// failure, the value otherwise.
func (r Result) String() string {
	switch {
	case !r.set:
		return ""
	case r.err != nil:
		return Marker(r.err)
	default:
		return FormatValue(r.value)
	}
}

// Buffer is the expression under construction together with the last result
// and the mode flags. The zero value is an empty buffer in degree mode.
type Buffer struct {
	expr    string
	result  Result
	open    int
	unit    AngleUnit
	inverse bool
}

// Expression returns the expression text.
func (b *Buffer) Expression() string { return b.expr }

// Result returns the last result.
func (b *Buffer) Result() Result { return b.result }

// OpenParentheses returns the number of unmatched ( in the expression.
func (b *Buffer) OpenParentheses() int { return b.open }

// Unit returns the angle unit used for evaluation.
func (b *Buffer) Unit() AngleUnit { return b.unit }

// IsDegree reports whether trig functions work in degrees.
func (b *Buffer) IsDegree() bool { return b.unit == Degrees }

// IsInverse reports whether function keys map to their inverses.
func (b *Buffer) IsInverse() bool { return b.inverse }

// SetExpression replaces the expression text.
func (b *Buffer) SetExpression(s string) {
	b.expr = s
	b.open = strings.Count(s, "(") - strings.Count(s, ")")
	if b.open < 0 {
		b.open = 0
	}
}

// SetUnit sets the angle unit.
func (b *Buffer) SetUnit(u AngleUnit) { b.unit = u }

// Append adds token to the expression. An expression of "0" is replaced.
func (b *Buffer) Append(token string) {
	if b.expr == "0" {
		b.SetExpression(token)
		return
	}
	b.SetExpression(b.expr + token)
}

// AppendOperator adds a binary operator. With an empty expression and a
// numeric result, the new expression continues from the result.
func (b *Buffer) AppendOperator(op string) {
	if b.expr == "" {
		if v, ok := b.result.Value(); ok {
			b.SetExpression(FormatValue(v) + op)
			return
		}
	}
	b.Append(op)
}

// AppendPower adds the power operator unless the expression is empty or
// already ends in an operator.
func (b *Buffer) AppendPower() {
	if b.expr == "" {
		if _, ok := b.result.Value(); ok {
			b.AppendOperator("^")
		}
		return
	}
	if !isOperatorRune(b.last()) {
		b.Append("^")
	}
}

// AppendDecimal adds a decimal point after a digit, at most once per number.
func (b *Buffer) AppendDecimal() {
	if !isDigit(b.last()) || strings.Contains(b.trailingNumber(), ".") {
		return
	}
	b.Append(".")
}

// AppendFunctionCall adds name and an opening parenthesis, multiplying by a
// preceding number.
func (b *Buffer) AppendFunctionCall(name string) {
	b.implicitMul()
	b.SetExpression(b.expr + name + "(")
}

// AppendConstant adds a constant symbol such as π or e.
func (b *Buffer) AppendConstant(sym string) {
	b.implicitMul()
	b.Append(sym)
}

// AppendRoot adds the square root sign. With an empty expression and a
// numeric result, the root of the result is computed right away.
func (b *Buffer) AppendRoot() {
	if b.expr == "" {
		if v, ok := b.result.Value(); ok {
			r, err := Evaluate("√"+FormatValue(v), b.unit)
			if err != nil {
				b.result = ErrorResult(err)
			} else {
				b.result = ValueResult(r)
			}
			return
		}
	}
	b.implicitMul()
	b.Append("√")
}

// AppendParenthesis closes an open parenthesis if there is one, otherwise
// opens a new one.
func (b *Buffer) AppendParenthesis() {
	if b.open > 0 {
		b.SetExpression(b.expr + ")")
		return
	}
	b.implicitMul()
	b.SetExpression(b.expr + "(")
}

// AutoClose appends the parentheses needed to balance the expression.
func (b *Buffer) AutoClose() {
	if b.open > 0 {
		b.SetExpression(b.expr + strings.Repeat(")", b.open))
	}
}

// Backspace removes the last character of the expression.
func (b *Buffer) Backspace() {
	if b.expr == "" {
		return
	}
	_, size := utf8.DecodeLastRuneInString(b.expr)
	b.SetExpression(b.expr[:len(b.expr)-size])
}

// Clear empties expression and result.
func (b *Buffer) Clear() {
	b.SetExpression("")
	b.result = Result{}
}

// ClearExpression empties the expression but keeps the result.
func (b *Buffer) ClearExpression() {
	b.SetExpression("")
}

// Negate flips the sign of the result when there is no expression, otherwise
// toggles a single leading minus on the expression.
func (b *Buffer) Negate() {
	switch {
	case b.expr == "":
		if v, ok := b.result.Value(); ok {
			b.result = ValueResult(-v)
		}
	case strings.HasPrefix(b.expr, "-"):
		b.SetExpression(b.expr[1:])
	default:
		b.SetExpression("-" + b.expr)
	}
}

// Percentage divides the value of the expression, or the result when the
// expression is empty, by 100. A failed evaluation leaves an empty result.
func (b *Buffer) Percentage() {
	if b.expr != "" {
		v, err := Evaluate(b.expr, b.unit)
		b.SetExpression("")
		if err != nil {
			b.result = Result{}
			return
		}
		b.result = ValueResult(v / 100)
		return
	}
	if b.result.Empty() {
		return
	}
	if v, ok := b.result.Value(); ok {
		b.result = ValueResult(v / 100)
	} else {
		b.result = Result{}
	}
}

// Evaluate computes the expression and stores the result. The expression
// is kept.
func (b *Buffer) Evaluate() Result {
	v, err := Evaluate(b.expr, b.unit)
	if err != nil {
		b.result = ErrorResult(err)
	} else {
		b.result = ValueResult(v)
	}
	return b.result
}

// ToggleDegreeMode switches between degrees and radians.
func (b *Buffer) ToggleDegreeMode() {
	if b.unit == Degrees {
		b.unit = Radians
	} else {
		b.unit = Degrees
	}
}

// ToggleInverseMode flips inverse function mode.
func (b *Buffer) ToggleInverseMode() {
	b.inverse = !b.inverse
}

func (b *Buffer) last() rune {
	if b.expr == "" {
		return eof
	}
	r, _ := utf8.DecodeLastRuneInString(b.expr)
	return r
}

// trailingNumber returns the numeric literal at the end of the expression.
func (b *Buffer) trailingNumber() string {
	i := len(b.expr)
	for i > 0 && (isDigit(rune(b.expr[i-1])) || b.expr[i-1] == '.') {
		i--
	}
	return b.expr[i:]
}

func (b *Buffer) implicitMul() {
	if isDigit(b.last()) {
		b.SetExpression(b.expr + "*")
	}
}

func isOperatorRune(r rune) bool {
	return strings.ContainsRune("+-*/^×÷−", r)
}
