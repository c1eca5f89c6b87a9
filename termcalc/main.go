// Command termcalc is the terminal front end of the scientific calculator.
package main

import (
	"fmt"
	"os"

	"github.com/neuroliptica/logger"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/fjl/scicalc/internal/calc"
	"github.com/fjl/scicalc/internal/config"
	"github.com/fjl/scicalc/internal/histstore"
	"github.com/fjl/scicalc/internal/prefs"
	"github.com/fjl/scicalc/internal/session"
)

var ReplLogger = logger.MakeLogger("repl").BindToDefault()

// env is shared by all commands.
type env struct {
	cfg     config.Config
	fs      afero.Fs
	radians bool
	unit    string
	dataDir string

	// systemTheme reports the theme used while none is stored.
	// The default follows the terminal background.
	systemTheme func() string
}

func main() {
	if err := newRootCmd(&env{fs: afero.NewOsFs()}).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd(e *env) *cobra.Command {
	root := &cobra.Command{
		Use:           "termcalc",
		Short:         "Scientific calculator for the terminal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if e.unit != "" {
				u, ok := calc.ParseAngleUnit(e.unit)
				if !ok {
					return fmt.Errorf("invalid angle unit %q", e.unit)
				}
				e.cfg.SetUnit(u)
			}
			if e.radians {
				e.cfg.SetUnit(calc.Radians)
			}
			if e.dataDir != "" {
				e.cfg.SetDataDir(e.dataDir)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runREPL(cmd, e)
		},
	}
	root.PersistentFlags().StringVar(&e.unit, "unit", "", "angle unit, deg or rad (default deg)")
	root.PersistentFlags().BoolVar(&e.radians, "rad", false, "shorthand for --unit=rad")
	root.PersistentFlags().StringVar(&e.dataDir, "data-dir", "", "directory for history and preferences (default $"+config.DataDirEnv+")")
	root.AddCommand(
		newEvalCmd(e),
		newREPLCmd(e),
		newTUICmd(e),
		newHistoryCmd(e),
		newThemeCmd(e),
	)
	return root
}

// newController creates a calculator session for e's configuration.
func (e *env) newController(options ...session.Option) *session.Controller {
	base := []session.Option{
		session.WithUnit(e.cfg.Unit()),
		session.WithHistorySize(e.cfg.HistorySize()),
	}
	return session.New(append(base, options...)...)
}

// openPrefs opens the preferences database in the data directory.
func (e *env) openPrefs() (*prefs.Store, error) {
	system := e.systemTheme
	if system == nil {
		system = terminalTheme
	}
	return prefs.Open(e.cfg.DataDir(), prefs.WithSystemTheme(system))
}

// openHistory starts the history store and returns the stored history.
// Replayed entries also arrive on the store's event channel; the terminal
// front ends read the log directly instead.
func (e *env) openHistory() (*histstore.Store, []string, error) {
	entries, err := histstore.ReadAll(e.fs, e.cfg.DataDir())
	if err != nil {
		return nil, nil, err
	}
	lines := make([]string, len(entries))
	for i, entry := range entries {
		lines[i] = entry.String()
	}
	return histstore.NewStore(e.cfg.DataDir(), histstore.WithFs(e.fs)), lines, nil
}

// drainEvents consumes store events that the terminal front ends don't show.
func drainEvents(s *histstore.Store) {
	for ev := range s.Events() {
		if ioerr, ok := ev.(*histstore.IOError); ok {
			ReplLogger.Logf("history store error: %v", ioerr.Err)
		}
	}
}
