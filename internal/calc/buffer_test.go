package calc

import (
	"testing"

	"github.com/davecgh/go-spew/spew"
)

func TestBufferAppend(t *testing.T) {
	var b Buffer
	b.Append("1")
	b.Append("2")
	b.Append("3")
	check(t, &b, "123", "")
	b.Backspace()
	b.Append("+")
	b.Append("4")
	check(t, &b, "12+4", "")

	// A lone zero is replaced.
	b.Clear()
	b.Append("0")
	b.Append("7")
	check(t, &b, "7", "")
}

func TestBufferAppendDigits(t *testing.T) {
	for _, d := range []string{"0", "7", "42", "31415", "000"} {
		var b Buffer
		b.Append(d)
		check(t, &b, d, "")
	}
}

func TestBufferDecimal(t *testing.T) {
	var b Buffer
	b.AppendDecimal()
	check(t, &b, "", "")
	b.Append("1")
	b.AppendDecimal()
	check(t, &b, "1.", "")
	b.AppendDecimal()
	check(t, &b, "1.", "")
	b.Append("5")
	b.AppendDecimal()
	check(t, &b, "1.5", "")
	b.Append("+")
	b.AppendDecimal()
	check(t, &b, "1.5+", "")
	b.Append("2")
	b.AppendDecimal()
	check(t, &b, "1.5+2.", "")
}

func TestBufferFunctionCall(t *testing.T) {
	var b Buffer
	b.Append("2")
	b.AppendFunctionCall("sin")
	check(t, &b, "2*sin(", "")
	if b.OpenParentheses() != 1 {
		t.Fatalf("open parentheses = %d, want 1", b.OpenParentheses())
	}
	b.Append("90")
	b.AppendParenthesis()
	check(t, &b, "2*sin(90)", "")
	if b.OpenParentheses() != 0 {
		t.Fatalf("open parentheses = %d, want 0", b.OpenParentheses())
	}
	b.Evaluate()
	check(t, &b, "2*sin(90)", "2")
}

func TestBufferParenthesis(t *testing.T) {
	var b Buffer
	b.Append("3")
	b.AppendParenthesis()
	check(t, &b, "3*(", "")
	b.Append("1+2")
	b.AppendParenthesis()
	check(t, &b, "3*(1+2)", "")
	b.Append("+")
	b.AppendParenthesis()
	check(t, &b, "3*(1+2)+(", "")
	b.Append("4")
	b.AutoClose()
	check(t, &b, "3*(1+2)+(4)", "")
}

// Deleting a parenthesis updates the count.
func TestBufferBackspaceParenthesis(t *testing.T) {
	var b Buffer
	b.AppendParenthesis()
	b.Append("1")
	b.AppendParenthesis()
	if b.OpenParentheses() != 0 {
		t.Fatalf("open parentheses = %d, want 0", b.OpenParentheses())
	}
	b.Backspace()
	if b.OpenParentheses() != 1 {
		t.Fatalf("after deleting ): open parentheses = %d, want 1", b.OpenParentheses())
	}
	b.Backspace()
	b.Backspace()
	if b.OpenParentheses() != 0 {
		t.Fatalf("after deleting (: open parentheses = %d, want 0", b.OpenParentheses())
	}
	check(t, &b, "", "")
}

func TestBufferBackspaceMultibyte(t *testing.T) {
	var b Buffer
	b.Append("2")
	b.AppendConstant("π")
	check(t, &b, "2*π", "")
	b.Backspace()
	check(t, &b, "2*", "")
	b.AppendRoot()
	b.Backspace()
	check(t, &b, "2*", "")
	b.Backspace()
	b.Backspace()
	b.Backspace()
	check(t, &b, "", "")
}

func TestBufferClear(t *testing.T) {
	var b Buffer
	b.AppendParenthesis()
	b.Append("1+2")
	b.Evaluate()
	check(t, &b, "(1+2", "3")
	b.Clear()
	check(t, &b, "", "")
	if b.OpenParentheses() != 0 {
		t.Fatalf("open parentheses = %d, want 0", b.OpenParentheses())
	}
}

func TestBufferNegate(t *testing.T) {
	var b Buffer
	b.Append("5+3")
	b.Negate()
	check(t, &b, "-5+3", "")
	b.Negate()
	check(t, &b, "5+3", "")

	b.Evaluate()
	b.ClearExpression()
	b.Negate()
	check(t, &b, "", "-8")
	b.Negate()
	check(t, &b, "", "8")

	// Nothing to negate.
	var empty Buffer
	empty.Negate()
	check(t, &empty, "", "")
}

func TestBufferPercentage(t *testing.T) {
	var b Buffer
	b.Append("50")
	b.Percentage()
	check(t, &b, "", "0.5")

	b.Clear()
	b.Append("25*2")
	b.Evaluate()
	b.ClearExpression()
	b.Percentage()
	check(t, &b, "", "0.5")

	// Failed evaluation leaves no result.
	b.Clear()
	b.Append("1/0")
	b.Percentage()
	check(t, &b, "", "")
}

func TestBufferEvaluateError(t *testing.T) {
	var b Buffer
	b.Append("3.5!")
	r := b.Evaluate()
	if r.Err() == nil {
		t.Fatal("expected error")
	}
	check(t, &b, "3.5!", MarkerMath)

	b.Clear()
	b.Append("2+")
	b.Evaluate()
	check(t, &b, "2+", MarkerSyntax)
}

func TestBufferOperatorFromResult(t *testing.T) {
	var b Buffer
	b.Append("6*7")
	b.Evaluate()
	b.ClearExpression()
	b.AppendOperator("+")
	check(t, &b, "42+", "42")
	b.Append("1")
	b.Evaluate()
	check(t, &b, "42+1", "43")

	b.ClearExpression()
	b.AppendPower()
	check(t, &b, "43^", "43")
}

func TestBufferRootOfResult(t *testing.T) {
	var b Buffer
	b.Append("4*4")
	b.Evaluate()
	b.ClearExpression()
	b.AppendRoot()
	check(t, &b, "", "4")

	b.Append("-")
	b.Append("9")
	b.Evaluate()
	b.ClearExpression()
	b.AppendRoot()
	check(t, &b, "", MarkerMath)

	// A failed result is not used; the sign is appended instead.
	b.AppendRoot()
	check(t, &b, "√", MarkerMath)
}

func TestBufferPower(t *testing.T) {
	var b Buffer
	b.AppendPower()
	check(t, &b, "", "")
	b.Append("2")
	b.AppendPower()
	check(t, &b, "2^", "")
	b.AppendPower()
	check(t, &b, "2^", "")
	b.Append("8")
	b.Evaluate()
	check(t, &b, "2^8", "256")
}

func TestBufferModes(t *testing.T) {
	var b Buffer
	if !b.IsDegree() || b.IsInverse() {
		t.Fatalf("wrong default modes\nstate: %s", spew.Sdump(b))
	}
	b.Append("5")
	b.ToggleDegreeMode()
	b.ToggleInverseMode()
	if b.IsDegree() || !b.IsInverse() {
		t.Fatalf("modes not toggled\nstate: %s", spew.Sdump(b))
	}
	check(t, &b, "5", "")
	b.Clear()
	b.AppendFunctionCall("cos")
	b.Append("π")
	b.Evaluate()
	check(t, &b, "cos(π", "-1")
	b.ToggleDegreeMode()
	b.Evaluate()
	check(t, &b, "cos(π", "0.9984971499")
}

func check(t *testing.T, b *Buffer, expr, result string) {
	t.Helper()
	if b.Expression() != expr || b.Result().String() != result {
		t.Fatalf("wrong buffer\n  got: %q = %q\n want: %q = %q\nstate: %s",
			b.Expression(), b.Result().String(), expr, result, spew.Sdump(b))
	}
}
