package session

// Action is a keypad function.
type Action int

const (
	ActionNone Action = iota
	ActionNumber
	ActionDecimal
	ActionOperator
	ActionPower
	ActionClear
	ActionBackspace
	ActionSubmit
	ActionNegate
	ActionPercent
	ActionPi
	ActionEuler
	ActionSqrt
	ActionFactorial
	ActionParenthesis
	ActionCloseParenthesis
	ActionSin
	ActionCos
	ActionTan
	ActionLn
	ActionLog
	ActionDegree
	ActionInverse
	ActionScientific
)

var actionNames = [...]string{
	ActionNone:             "none",
	ActionNumber:           "number",
	ActionDecimal:          "decimal",
	ActionOperator:         "operator",
	ActionPower:            "power",
	ActionClear:            "clear",
	ActionBackspace:        "backspace",
	ActionSubmit:           "submit",
	ActionNegate:           "negate",
	ActionPercent:          "mod",
	ActionPi:               "pi",
	ActionEuler:            "euler",
	ActionSqrt:             "sqrt",
	ActionFactorial:        "factorial",
	ActionParenthesis:      "parenthesis",
	ActionCloseParenthesis: "close-parenthesis",
	ActionSin:              "sin",
	ActionCos:              "cos",
	ActionTan:              "tan",
	ActionLn:               "ln",
	ActionLog:              "log",
	ActionDegree:           "degree",
	ActionInverse:          "inverse",
	ActionScientific:       "scientific",
}

func (a Action) String() string {
	if a < 0 || int(a) >= len(actionNames) {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction looks up an action by name.
func ParseAction(name string) (Action, bool) {
	for i, n := range actionNames {
		if n == name {
			return Action(i), true
		}
	}
	return ActionNone, false
}

// function returns the name of the function appended by a function key.
func function(a Action, inverse bool) string {
	switch a {
	case ActionSin:
		return pick(inverse, "asin", "sin")
	case ActionCos:
		return pick(inverse, "acos", "cos")
	case ActionTan:
		return pick(inverse, "atan", "tan")
	case ActionLn:
		return pick(inverse, "exp", "log")
	case ActionLog:
		return pick(inverse, "10^", "log10")
	}
	return ""
}

// Label returns the key caption for a function key in the given mode.
func Label(a Action, inverse bool) string {
	switch a {
	case ActionSin, ActionCos, ActionTan:
		if inverse {
			return a.String() + "⁻¹"
		}
		return a.String()
	case ActionLn:
		return pick(inverse, "eˣ", "ln")
	case ActionLog:
		return pick(inverse, "10ˣ", "log")
	}
	return a.String()
}

func pick(cond bool, yes, no string) string {
	if cond {
		return yes
	}
	return no
}
