package main

import (
	"strings"

	"gioui.org/io/key"

	"github.com/fjl/scicalc/internal/session"
)

type keyKind int

const (
	kindDigit keyKind = iota
	kindOp
	kindSpecial
	kindScientific
	kindTheme
)

// keyDef describes a keypad button.
type keyDef struct {
	action session.Action
	value  string
	label  string
	kind   keyKind
}

func digitKey(d string) keyDef {
	return keyDef{action: session.ActionNumber, value: d, label: d, kind: kindDigit}
}

func opKey(op, label string) keyDef {
	return keyDef{action: session.ActionOperator, value: op, label: label, kind: kindOp}
}

func specialKey(a session.Action, label string) keyDef {
	return keyDef{action: a, label: label, kind: kindSpecial}
}

func sciKey(a session.Action, label string) keyDef {
	return keyDef{action: a, label: label, kind: kindScientific}
}

var basicKeys = [][]keyDef{
	{
		specialKey(session.ActionScientific, "fx"),
		specialKey(session.ActionParenthesis, "("),
		specialKey(session.ActionCloseParenthesis, ")"),
		{label: "◐", kind: kindTheme},
	},
	{
		specialKey(session.ActionClear, "AC"),
		specialKey(session.ActionBackspace, "⌫"),
		specialKey(session.ActionPercent, "%"),
		opKey("/", "÷"),
	},
	{digitKey("7"), digitKey("8"), digitKey("9"), opKey("*", "×")},
	{digitKey("4"), digitKey("5"), digitKey("6"), opKey("-", "−")},
	{digitKey("1"), digitKey("2"), digitKey("3"), opKey("+", "+")},
	{
		specialKey(session.ActionNegate, "±"),
		digitKey("0"),
		specialKey(session.ActionDecimal, "."),
		{action: session.ActionSubmit, label: "=", kind: kindOp},
	},
}

var scientificKeys = [][]keyDef{
	{sciKey(session.ActionSin, ""), sciKey(session.ActionCos, ""), sciKey(session.ActionTan, ""), sciKey(session.ActionDegree, "")},
	{sciKey(session.ActionLn, ""), sciKey(session.ActionLog, ""), sciKey(session.ActionSqrt, "√"), sciKey(session.ActionInverse, "INV")},
	{sciKey(session.ActionPi, "π"), sciKey(session.ActionEuler, "e"), sciKey(session.ActionPower, "xʸ"), sciKey(session.ActionFactorial, "x!")},
}

// keypadRows returns the visible button rows.
func keypadRows(scientific bool) [][]keyDef {
	if !scientific {
		return basicKeys
	}
	rows := make([][]keyDef, 0, len(scientificKeys)+len(basicKeys))
	rows = append(rows, scientificKeys...)
	return append(rows, basicKeys...)
}

// caption returns the button text for the current state.
func (k keyDef) caption(st session.State) string {
	switch k.action {
	case session.ActionSin, session.ActionCos, session.ActionTan, session.ActionLn, session.ActionLog:
		return session.Label(k.action, st.Inverse)
	case session.ActionDegree:
		return st.Unit.String()
	}
	return k.label
}

// active reports whether a toggle button is switched on.
func (k keyDef) active(st session.State) bool {
	switch k.action {
	case session.ActionInverse:
		return st.Inverse
	case session.ActionScientific:
		return st.Scientific
	}
	return false
}

// keyName translates a key event into the key names understood by the session.
func keyName(e key.Event) (string, bool) {
	switch e.Name {
	case key.NameEnter, key.NameReturn:
		return session.KeyEnter, true
	case key.NameDeleteBackward, key.NameDeleteForward:
		return session.KeyBackspace, true
	case key.NameEscape:
		return session.KeyEscape, true
	case "-":
		if e.Modifiers.Contain(key.ModAlt) {
			return "n", true
		}
		return "-", true
	}
	name := strings.ToLower(e.Name)
	if a, _ := session.KeyAction(name); a == session.ActionNone {
		return "", false
	}
	return name, true
}
