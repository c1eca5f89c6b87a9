package main

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/fjl/scicalc/internal/histstore"
	"github.com/fjl/scicalc/internal/prefs"
	"github.com/fjl/scicalc/internal/session"
)

const (
	basicHelp      = "0-9 . + - * / ^ % ( ) !   enter =   esc clear   ⌫ delete"
	scientificHelp = "s sin  c cos  t tan  l log  e e  p π  r √  n ±  d DEG/RAD  i INV"
	controlHelp    = "tab scientific   ctrl+t theme   ctrl+c quit"
	displayWidth   = 40
)

type styles struct {
	display lipgloss.Style
	status  lipgloss.Style
	history lipgloss.Style
	expr    lipgloss.Style
	result  lipgloss.Style
	err     lipgloss.Style
	help    lipgloss.Style
}

func newStyles(theme string) styles {
	fg, dim, accent, bad := "#4D4D4D", "#AAAAAA", "#2E9C87", "#AF2F2F"
	if theme == prefs.ThemeDark {
		fg, dim, accent, bad = "#FFFFFF", "#828282", "#5DC2AF", "#FF7777"
	}
	line := lipgloss.NewStyle().Width(displayWidth).Align(lipgloss.Right)
	return styles{
		display: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(accent)).
			Padding(0, 1),
		status:  lipgloss.NewStyle().Width(displayWidth).Foreground(lipgloss.Color(accent)),
		history: line.Copy().Foreground(lipgloss.Color(dim)),
		expr:    line.Copy().Foreground(lipgloss.Color(fg)),
		result:  line.Copy().Foreground(lipgloss.Color(fg)).Bold(true),
		err:     line.Copy().Foreground(lipgloss.Color(bad)).Bold(true),
		help:    lipgloss.NewStyle().Foreground(lipgloss.Color(dim)).Italic(true),
	}
}

// terminalTheme picks the theme that matches the terminal background.
func terminalTheme() string {
	if lipgloss.HasDarkBackground() {
		return prefs.ThemeDark
	}
	return prefs.ThemeLight
}

type tickMsg time.Time

type storeMsg struct{ ev histstore.Event }

// tuiModel is the bubbletea model of the keypad calculator.
type tuiModel struct {
	ctrl     *session.Controller
	store    *histstore.Store
	prefs    *prefs.Store
	theme    string
	styles   styles
	storeErr error
}

func newTUIModel(ctrl *session.Controller, store *histstore.Store, p *prefs.Store, theme string) tuiModel {
	return tuiModel{ctrl: ctrl, store: store, prefs: p, theme: theme, styles: newStyles(theme)}
}

func newTUICmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Run the full-screen keypad calculator",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			theme := terminalTheme()
			p, err := e.openPrefs()
			if err != nil {
				ReplLogger.Logf("preferences unavailable: %v", err)
				p = nil
			} else {
				defer p.Close()
				if t, err := p.Theme(); err == nil {
					theme = t
				}
			}
			store := histstore.NewStore(e.cfg.DataDir(), histstore.WithFs(e.fs))
			defer store.Close()

			ctrl := e.newController(
				session.WithSubmitDelay(e.cfg.SubmitDelay()),
				session.WithRecorder(store.Record),
			)
			m := newTUIModel(ctrl, store, p, theme)
			_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
			return err
		},
	}
}

func (m tuiModel) Init() tea.Cmd {
	return m.waitForStore()
}

// waitForStore delivers the next history store event.
func (m tuiModel) waitForStore() tea.Cmd {
	if m.store == nil {
		return nil
	}
	events := m.store.Events()
	return func() tea.Msg {
		ev, ok := <-events
		if !ok {
			return nil
		}
		return storeMsg{ev}
	}
}

// scheduleTick arranges for the pending submit to complete on time.
func (m tuiModel) scheduleTick() tea.Cmd {
	at, ok := m.ctrl.Deadline()
	if !ok {
		return nil
	}
	return tea.Tick(time.Until(at), func(t time.Time) tea.Msg { return tickMsg(t) })
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.ctrl.Tick(time.Time(msg))
		return m, m.scheduleTick()

	case storeMsg:
		switch ev := msg.ev.(type) {
		case *histstore.EntryAdded:
			if ev.Replay {
				m.ctrl.RestoreHistory(ev.Entry.String())
			}
		case *histstore.HistoryCleared:
			m.ctrl.ClearHistory()
		case *histstore.IOError:
			m.storeErr = ev.Err
		}
		return m, m.waitForStore()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			return m, tea.Quit
		case "tab":
			m.ctrl.ToggleScientific()
		case "ctrl+t":
			m = m.toggleTheme()
		case "enter":
			m.ctrl.Key(session.KeyEnter)
		case "backspace":
			m.ctrl.Key(session.KeyBackspace)
		case "esc":
			m.ctrl.Key(session.KeyEscape)
		default:
			m.ctrl.Key(msg.String())
		}
		return m, m.scheduleTick()
	}
	return m, nil
}

func (m tuiModel) toggleTheme() tuiModel {
	if m.theme == prefs.ThemeDark {
		m.theme = prefs.ThemeLight
	} else {
		m.theme = prefs.ThemeDark
	}
	m.styles = newStyles(m.theme)
	if m.prefs != nil {
		if err := m.prefs.SetTheme(m.theme); err != nil {
			ReplLogger.Logf("can't save theme: %v", err)
		}
	}
	return m
}

func (m tuiModel) View() string {
	st := m.ctrl.State()
	s := m.styles

	status := st.Unit.String()
	if st.Inverse {
		status += "  INV"
	}
	if m.storeErr != nil {
		status = m.storeErr.Error()
	}
	lines := []string{s.status.Render(status)}
	for _, h := range st.History {
		lines = append(lines, s.history.Render(h))
	}
	lines = append(lines, s.expr.Render(st.Expression))
	if st.Failed {
		lines = append(lines, s.err.Render(st.Result))
	} else {
		lines = append(lines, s.result.Render(st.Result))
	}

	var b strings.Builder
	b.WriteString(s.display.Render(lipgloss.JoinVertical(lipgloss.Right, lines...)))
	b.WriteString("\n")
	b.WriteString(s.help.Render(basicHelp))
	b.WriteString("\n")
	if st.Scientific {
		b.WriteString(s.help.Render(scientificHelp))
		b.WriteString("\n")
	}
	b.WriteString(s.help.Render(controlHelp))
	b.WriteString("\n")
	return b.String()
}
