package calc

import (
	"math"

	"github.com/shopspring/decimal"
)

// builtins are the unary functions callable from expressions.
// Angles are in radians; degree conversion happens during normalization.
var builtins = map[string]func(float64) float64{
	"sin":   math.Sin,
	"cos":   math.Cos,
	"tan":   math.Tan,
	"asin":  math.Asin,
	"acos":  math.Acos,
	"atan":  math.Atan,
	"log":   math.Log,
	"log10": math.Log10,
	"exp":   math.Exp,
	"sqrt":  math.Sqrt,
}

// Evaluate computes the value of an expression.
// The result is rounded to 10 fractional digits when its magnitude is below 1
// and to 2 otherwise.
func Evaluate(text string, unit AngleUnit) (float64, error) {
	e, _, err := compile(text, unit)
	if err != nil {
		return 0, err
	}
	v, err := e.Eval()
	if err != nil {
		return 0, err
	}
	return Round(v)
}

// Explain returns the normalized form and the parse tree of an expression.
func Explain(text string, unit AngleUnit) (normalized, tree string, err error) {
	e, toks, err := compile(text, unit)
	if toks != nil {
		normalized = FormatTokens(toks)
	}
	if err != nil {
		return normalized, "", err
	}
	return normalized, e.String(), nil
}

func compile(text string, unit AngleUnit) (Expr, []Token, error) {
	toks, err := Scan(text)
	if err != nil {
		return nil, nil, err
	}
	toks, err = Normalize(toks, unit)
	if err != nil {
		return nil, nil, err
	}
	e, err := Parse(toks)
	return e, toks, err
}

// Round applies the display rounding to a computed value.
// NaN and infinite values are domain errors.
func Round(v float64) (float64, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, domainErrorf("result is %v", v)
	}
	places := int32(2)
	if math.Abs(v) < 1 {
		places = 10
	}
	r, _ := decimal.NewFromFloat(v).Round(places).Float64()
	return r, nil
}

// FormatValue renders a value as plain decimal text without exponent, so that
// the text evaluates back to the same value.
func FormatValue(v float64) string {
	return decimal.NewFromFloat(v).String()
}
