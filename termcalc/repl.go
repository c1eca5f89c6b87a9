package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"github.com/fjl/scicalc/internal/calc"
	"github.com/fjl/scicalc/internal/session"
)

const replHelp = `Enter an expression to evaluate it. Commands:
  :deg      use degrees
  :rad      use radians
  :history  show recent calculations
  :clear    erase the history
  :quit     exit`

// lineReader is the part of readline used by the REPL.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(string)
	Close() error
}

func newREPLCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Evaluate expressions interactively (default command)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, e)
		},
	}
}

func runREPL(cmd *cobra.Command, e *env) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          prompt(e.cfg.Unit()),
		HistoryFile:     filepath.Join(e.cfg.DataDir(), "repl_history"),
		InterruptPrompt: "^C",
		EOFPrompt:       ":quit",
		Stdout:          cmd.OutOrStdout(),
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	r := &repl{in: rl, out: cmd.OutOrStdout()}
	options := []session.Option{session.WithSubmitDelay(0)}
	store, history, err := e.openHistory()
	if err != nil {
		ReplLogger.Logf("history unavailable: %v", err)
	} else {
		defer store.Close()
		go drainEvents(store)
		options = append(options, session.WithRecorder(store.Record))
		r.clearHistory = store.Clear
	}
	r.ctrl = e.newController(options...)
	r.ctrl.RestoreHistory(history...)
	return r.run()
}

func prompt(u calc.AngleUnit) string {
	return strings.ToLower(u.String()) + "> "
}

type repl struct {
	in           lineReader
	out          io.Writer
	ctrl         *session.Controller
	clearHistory func()
}

func (r *repl) run() error {
	for {
		line, err := r.in.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return nil
			}
			continue
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		if quit := r.handle(strings.TrimSpace(line)); quit {
			return nil
		}
	}
}

// handle processes one input line. It returns true when the REPL should exit.
func (r *repl) handle(line string) bool {
	switch line {
	case "":
		return false
	case ":quit", ":q", ":exit":
		return true
	case ":help", ":h":
		fmt.Fprintln(r.out, replHelp)
	case ":deg":
		r.setUnit(calc.Degrees)
	case ":rad":
		r.setUnit(calc.Radians)
	case ":history":
		for _, h := range r.ctrl.State().History {
			fmt.Fprintln(r.out, h)
		}
	case ":clear":
		r.ctrl.ClearHistory()
		if r.clearHistory != nil {
			r.clearHistory()
		}
	default:
		if strings.HasPrefix(line, ":") {
			fmt.Fprintf(r.out, "unknown command %s, try :help\n", line)
			return false
		}
		r.ctrl.Paste(line)
		r.ctrl.Submit()
		st := r.ctrl.State()
		fmt.Fprintln(r.out, st.Result)
	}
	return false
}

func (r *repl) setUnit(u calc.AngleUnit) {
	r.ctrl.SetUnit(u)
	r.in.SetPrompt(prompt(u))
}
