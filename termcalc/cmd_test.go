package main

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/fjl/scicalc/internal/calc"
	"github.com/fjl/scicalc/internal/histstore"
	"github.com/fjl/scicalc/internal/prefs"
)

func runCmd(t *testing.T, e *env, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd(e)
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestEval(t *testing.T) {
	tests := []struct {
		args []string
		want string
	}{
		{[]string{"eval", "2^3+√9"}, "17\n"},
		{[]string{"eval", "2", "*", "(3+4"}, "14\n"},
		{[]string{"eval", "sin(30)"}, "0.5\n"},
		{[]string{"--rad", "eval", "cos(π)"}, "-1\n"},
		{[]string{"eval", "5!"}, "120\n"},
		{[]string{"eval", "--", "-2^2"}, "-4\n"},
		{[]string{"--unit", "RAD", "eval", "sin(π/2)"}, "1\n"},
	}
	for _, test := range tests {
		out, err := runCmd(t, &env{fs: afero.NewMemMapFs()}, test.args...)
		if err != nil {
			t.Errorf("%q: error %v", test.args, err)
			continue
		}
		if out != test.want {
			t.Errorf("%q: got %q, want %q", test.args, out, test.want)
		}
	}
}

func TestEvalErrors(t *testing.T) {
	out, err := runCmd(t, &env{fs: afero.NewMemMapFs()}, "eval", "1/0")
	if !errors.Is(err, calc.ErrDomain) {
		t.Fatalf("wrong error %v", err)
	}
	if out != "Math Error\n" {
		t.Fatalf("wrong output %q", out)
	}

	out, err = runCmd(t, &env{fs: afero.NewMemMapFs()}, "eval", "2+*3")
	var serr *calc.SyntaxError
	if !errors.As(err, &serr) {
		t.Fatalf("wrong error %v", err)
	}
	if out != "Syntax Error\n" {
		t.Fatalf("wrong output %q", out)
	}
}

func TestInvalidUnit(t *testing.T) {
	_, err := runCmd(t, &env{fs: afero.NewMemMapFs()}, "--unit", "grad", "eval", "1")
	if err == nil || !strings.Contains(err.Error(), "invalid angle unit") {
		t.Fatalf("wrong error %v", err)
	}
}

func TestEvalDebug(t *testing.T) {
	out, err := runCmd(t, &env{fs: afero.NewMemMapFs()}, "eval", "--debug", "2^3+√9")
	if err != nil {
		t.Fatal(err)
	}
	want := "tokens: 2**3+sqrt(9)\ntree:   ((2 ** 3) + sqrt(9))\n17\n"
	if out != want {
		t.Fatalf("wrong output\n  got: %q\n want: %q", out, want)
	}
}

func TestHistoryCommands(t *testing.T) {
	fs := afero.NewMemMapFs()
	store := histstore.NewStore("data", histstore.WithFs(fs))
	store.Record("1+1", "2")
	store.Record("2*3", "6")
	store.Record("5/0", "Math Error")
	store.Close()

	e := &env{fs: fs}
	out, err := runCmd(t, e, "--data-dir", "data", "history", "list", "-n", "2")
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 || !strings.HasSuffix(lines[0], "  2*3 = 6") || !strings.HasSuffix(lines[1], "  5/0 = Math Error") {
		t.Fatalf("wrong history output %q", out)
	}

	if _, err := runCmd(t, &env{fs: fs}, "--data-dir", "data", "history", "clear"); err != nil {
		t.Fatal(err)
	}
	out, err = runCmd(t, &env{fs: fs}, "--data-dir", "data", "history", "list")
	if err != nil || out != "" {
		t.Fatalf("history after clear: %q, %v", out, err)
	}
}

func TestThemeCommand(t *testing.T) {
	dir := t.TempDir()
	newEnv := func(system string) *env {
		return &env{fs: afero.NewOsFs(), systemTheme: func() string { return system }}
	}
	out, err := runCmd(t, newEnv(prefs.ThemeLight), "--data-dir", dir, "theme")
	if err != nil || out != "light\n" {
		t.Fatalf("default theme: %q, %v", out, err)
	}
	out, _ = runCmd(t, newEnv(prefs.ThemeDark), "--data-dir", dir, "theme")
	if out != "dark\n" {
		t.Fatalf("system theme not used: %q", out)
	}
	if _, err := runCmd(t, newEnv(prefs.ThemeDark), "--data-dir", dir, "theme", "light"); err != nil {
		t.Fatal(err)
	}
	out, _ = runCmd(t, newEnv(prefs.ThemeDark), "--data-dir", dir, "theme")
	if out != "light\n" {
		t.Fatalf("theme not stored: %q", out)
	}
	_, err = runCmd(t, newEnv(prefs.ThemeLight), "--data-dir", dir, "theme", "blue")
	if !errors.Is(err, prefs.ErrInvalidTheme) {
		t.Fatalf("wrong error for invalid theme: %v", err)
	}
}
