//go:build tools

// Package tools pins the gogio packaging tool used by go:generate in giocalc.
package tools

import (
	_ "gioui.org/cmd/gogio"
)
