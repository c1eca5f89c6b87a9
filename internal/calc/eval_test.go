package calc

import (
	"errors"
	"math"
	"testing"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"2+3", 5},
		{"2^10", 1024},
		{"2**10", 1024},
		{"5!", 120},
		{"3!!", 720},
		{"√9", 3},
		{"√9+1", 4},
		{"√(9+7", 4},
		{"√2.25", 1.5},
		{"(1+2", 3},
		{"((2+3)*(4", 20},
		{"2**3**2", 512},
		{"-2^2", -4},
		{"2^-1", 0.5},
		{"2*-3", -6},
		{"1+2*3", 7},
		{"(1+2)*3", 9},
		{"10/4", 2.5},
		{"1/3", 0.3333333333},
		{"2/3", 0.6666666667},
		{"10/3", 3.33},
		{"π", 3.14},
		{"2*π", 6.28},
		{"e", 2.72},
		{"2×3÷4", 1.5},
		{"5−2", 3},
		{"1e3+1", 1001},
		{"0.999999999999", 1},
		{"1", 1},
		{"-0.5", -0.5},
		{" 2 + 3 ", 5},
		{"log(e)", 1},
		{"log10(1000)", 3},
		{"exp(0)", 1},
		{"sqrt(16)", 4},
		{"(2+3)!", 120},
	}
	for _, test := range tests {
		got, err := Evaluate(test.expr, Degrees)
		if err != nil {
			t.Errorf("Evaluate(%q): unexpected error: %v", test.expr, err)
			continue
		}
		if got != test.want {
			t.Errorf("Evaluate(%q) = %v, want %v", test.expr, got, test.want)
		}
	}
}

func TestEvaluateDegrees(t *testing.T) {
	tests := []struct {
		expr string
		want float64
	}{
		{"sin(90)", 1},
		{"sin(30)", 0.5},
		{"cos(0)", 1},
		{"cos(180)", -1},
		{"tan(45)", 1},
		{"asin(1)", 90},
		{"acos(0)", 90},
		{"atan(1)", 45},
		{"asin(sin(30))", 30},
	}
	for _, test := range tests {
		got, err := Evaluate(test.expr, Degrees)
		if err != nil {
			t.Errorf("Evaluate(%q): unexpected error: %v", test.expr, err)
			continue
		}
		if got != test.want {
			t.Errorf("Evaluate(%q, DEG) = %v, want %v", test.expr, got, test.want)
		}
	}
}

func TestEvaluateRadians(t *testing.T) {
	got, err := Evaluate("sin(3.14159265358979)", Radians)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got) > 1e-9 {
		t.Fatalf("sin(π) in radians = %v, want ≈0", got)
	}
	got, err = Evaluate("sin(π)", Radians)
	if err != nil {
		t.Fatal(err)
	}
	if math.Abs(got) > 1e-9 {
		t.Fatalf("sin(π) in radians = %v, want ≈0", got)
	}
	got, err = Evaluate("cos(π)", Radians)
	if err != nil {
		t.Fatal(err)
	}
	if got != -1 {
		t.Fatalf("cos(π) in radians = %v, want -1", got)
	}
	// Degree wrapping must not apply in radian mode.
	got, err = Evaluate("sin(90)", Radians)
	if err != nil {
		t.Fatal(err)
	}
	if want, _ := Round(math.Sin(90)); got != want {
		t.Fatalf("sin(90) in radians = %v, want %v", got, want)
	}
}

func TestEvaluateErrors(t *testing.T) {
	tests := []struct {
		expr   string
		domain bool
	}{
		{"5/0", true},
		{"0/0", true},
		{"(-3)!", true},
		{"3.5!", true},
		{"171!", true},
		{"√-4", true},
		{"log(0)", true},
		{"asin(2)", true},
		{"1e400", true},
		{"2*1e400!", true},
		{"2+", false},
		{"2)", false},
		{"*2", false},
		{"sin", false},
		{"sin 30", false},
		{"abc", false},
		{"2$3", false},
		{"", false},
		{"2π", false},
		{"()", false},
		{".", false},
	}
	for _, test := range tests {
		_, err := Evaluate(test.expr, Degrees)
		if err == nil {
			t.Errorf("Evaluate(%q): expected error", test.expr)
			continue
		}
		var syn *SyntaxError
		switch {
		case test.domain && !errors.Is(err, ErrDomain):
			t.Errorf("Evaluate(%q): got %v, want domain error", test.expr, err)
		case !test.domain && !errors.As(err, &syn):
			t.Errorf("Evaluate(%q): got %v, want syntax error", test.expr, err)
		}
	}
}

func TestMarker(t *testing.T) {
	_, err := Evaluate("2+", Degrees)
	if m := Marker(err); m != MarkerSyntax {
		t.Errorf("syntax error marker = %q", m)
	}
	_, err = Evaluate("1/0", Degrees)
	if m := Marker(err); m != MarkerMath {
		t.Errorf("domain error marker = %q", m)
	}
	_, err = Evaluate("1e400", Degrees)
	if m := Marker(err); m != MarkerMath {
		t.Errorf("overflowing literal marker = %q", m)
	}
	if m := Marker(errors.New("boom")); m != MarkerError {
		t.Errorf("other error marker = %q", m)
	}
	if m := Marker(nil); m != "" {
		t.Errorf("nil error marker = %q", m)
	}
}

// Evaluating the text of a result gives the result again.
func TestEvaluateIdempotent(t *testing.T) {
	for _, expr := range []string{"2+3", "1/3", "10/3", "-7/8", "2^40", "π", "sin(30)", "123456789*1000"} {
		v, err := Evaluate(expr, Degrees)
		if err != nil {
			t.Fatalf("Evaluate(%q): %v", expr, err)
		}
		text := FormatValue(v)
		again, err := Evaluate(text, Degrees)
		if err != nil {
			t.Fatalf("Evaluate(%q) (from %q): %v", text, expr, err)
		}
		if again != v {
			t.Errorf("%q: %v re-evaluates to %v", expr, v, again)
		}
	}
}

func TestRound(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{1, 1},
		{0.999999999999, 1},
		{0.12345678901234, 0.123456789},
		{1.005, 1.01},
		{2.675, 2.68},
		{-1.005, -1.01},
		{-0.00000000004, 0},
		{123.456, 123.46},
	}
	for _, test := range tests {
		got, err := Round(test.in)
		if err != nil {
			t.Fatal(err)
		}
		if got != test.want {
			t.Errorf("Round(%v) = %v, want %v", test.in, got, test.want)
		}
	}
	for _, v := range []float64{math.NaN(), math.Inf(1), math.Inf(-1)} {
		if _, err := Round(v); !errors.Is(err, ErrDomain) {
			t.Errorf("Round(%v): got %v, want domain error", v, err)
		}
	}
}

func TestExplain(t *testing.T) {
	norm, tree, err := Explain("2^3+√9", Degrees)
	if err != nil {
		t.Fatal(err)
	}
	if norm != "2**3+sqrt(9)" {
		t.Errorf("normalized = %q", norm)
	}
	if tree != "((2 ** 3) + sqrt(9))" {
		t.Errorf("tree = %q", tree)
	}
}
