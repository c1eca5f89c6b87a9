package session

// Key names shared by the front ends for non-printing keys.
const (
	KeyEnter     = "Enter"
	KeyEscape    = "Escape"
	KeyBackspace = "Backspace"
)

// mnemonics maps letter keys to scientific functions.
var mnemonics = map[string]Action{
	"p": ActionPi,
	"s": ActionSin,
	"c": ActionCos,
	"t": ActionTan,
	"l": ActionLog,
	"e": ActionEuler,
	"n": ActionNegate,
	"r": ActionSqrt,
	"d": ActionDegree,
	"i": ActionInverse,
	"!": ActionFactorial,
}

// KeyAction translates a keyboard key into an action and its value.
func KeyAction(key string) (Action, string) {
	switch key {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9":
		return ActionNumber, key
	case ".", ",":
		return ActionDecimal, "."
	case "+", "-", "*", "/":
		return ActionOperator, key
	case "^":
		return ActionPower, ""
	case "%":
		return ActionPercent, ""
	case "(":
		return ActionParenthesis, ""
	case ")":
		return ActionCloseParenthesis, ""
	case "=", KeyEnter:
		return ActionSubmit, ""
	case KeyEscape:
		return ActionClear, ""
	case KeyBackspace:
		return ActionBackspace, ""
	}
	if a, ok := mnemonics[key]; ok {
		return a, ""
	}
	return ActionNone, ""
}

// Key handles a keyboard key. It reports whether the key was recognized.
func (c *Controller) Key(key string) bool {
	a, value := KeyAction(key)
	if a == ActionNone {
		return false
	}
	c.Press(a, value)
	return true
}
