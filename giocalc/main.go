// Command giocalc is the Gio front end of the scientific calculator.
//
// Run "go generate" to build the WebAssembly version into build/web. Mobile
// packages are built the same way with gogio's android and ios targets.
package main

//go:generate go run gioui.org/cmd/gogio -target js -o ../build/web .

import (
	"fmt"
	"image"
	"image/color"
	"os"
	"path/filepath"

	"gioui.org/app"
	"gioui.org/io/clipboard"
	"gioui.org/io/key"
	"gioui.org/io/system"
	"gioui.org/layout"
	"gioui.org/op"
	"gioui.org/op/clip"
	"gioui.org/op/paint"
	"gioui.org/text"
	"gioui.org/unit"
	"gioui.org/widget"
	"gioui.org/widget/material"
	"github.com/neuroliptica/logger"

	"github.com/fjl/scicalc/internal/config"
	"github.com/fjl/scicalc/internal/histstore"
	"github.com/fjl/scicalc/internal/prefs"
	"github.com/fjl/scicalc/internal/session"
)

var AppLogger = logger.MakeLogger("app").BindToDefault()

// calcUI is the user interface of the calculator.
type calcUI struct {
	ctrl     *session.Controller
	theme    *calcTheme
	prefs    *prefs.Store
	clicks   map[*keyDef]*widget.Clickable
	storeErr error

	cornerRadius int
	gridSpacing  int
}

func newUI(ctrl *session.Controller, theme *calcTheme, p *prefs.Store) *calcUI {
	return &calcUI{
		ctrl:   ctrl,
		theme:  theme,
		prefs:  p,
		clicks: make(map[*keyDef]*widget.Clickable),
	}
}

// Layout draws the UI.
func (ui *calcUI) Layout(gtx layout.Context) layout.Dimensions {
	// Adapt design for screen size.
	scaleFactor := float32(gtx.Constraints.Max.X) / float32(gtx.Dp(ui.theme.Size.Width))
	ui.cornerRadius = gtx.Dp(ui.theme.Size.CornerRadius * unit.Dp(scaleFactor))
	ui.gridSpacing = gtx.Dp(ui.theme.Size.Inset * unit.Dp(scaleFactor))

	// Handle key events.
	ui.layoutInput(gtx)

	st := ui.ctrl.State()
	rows := keypadRows(st.Scientific)
	inset := layout.UniformInset(ui.theme.Size.Inset)
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		flex := layout.Flex{Axis: layout.Vertical, Spacing: layout.SpaceStart}
		return flex.Layout(gtx,
			layout.Flexed(30, func(gtx layout.Context) layout.Dimensions {
				return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return ui.layoutDisplay(gtx, st)
				})
			}),
			layout.Flexed(float32(12*len(rows)), func(gtx layout.Context) layout.Dimensions {
				return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
					return ui.layoutKeypad(gtx, rows, st)
				})
			}),
		)
	})
}

func (ui *calcUI) layoutDisplay(gtx layout.Context, st session.State) layout.Dimensions {
	rect := image.Rectangle{Max: gtx.Constraints.Max}
	rr := clip.UniformRRect(rect, ui.cornerRadius)
	paint.FillShape(gtx.Ops, ui.theme.Color.Display, rr.Op(gtx.Ops))

	inset := layout.UniformInset(ui.theme.Size.Inset)
	return inset.Layout(gtx, func(gtx layout.Context) layout.Dimensions {
		height := gtx.Constraints.Max.Y
		children := []layout.FlexChild{
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return ui.layoutStatus(gtx, st)
			}),
		}
		for _, entry := range st.History {
			entry := entry
			children = append(children, layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				l := material.Label(ui.theme.Material, ui.theme.Size.History, entry)
				l.Color = ui.theme.Color.History
				l.MaxLines = 1
				return shrinkToFit(gtx, l.Layout)
			}))
		}
		children = append(children,
			layout.Flexed(1, func(gtx layout.Context) layout.Dimensions {
				return layout.Dimensions{Size: gtx.Constraints.Min}
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				return ui.layoutText(gtx, st.Expression, height/6, ui.theme.Color.Expression)
			}),
			layout.Rigid(func(gtx layout.Context) layout.Dimensions {
				c := ui.theme.Color.Result
				if st.Failed {
					c = ui.theme.Color.Error
				}
				return ui.layoutText(gtx, st.Result, height/4, c)
			}),
		)
		return layout.Flex{Axis: layout.Vertical}.Layout(gtx, children...)
	})
}

// layoutText draws a right-aligned display line with a font scaled to heightPx.
func (ui *calcUI) layoutText(gtx layout.Context, txt string, heightPx int, c color.NRGBA) layout.Dimensions {
	fontSizeSp := unit.Sp(float32(heightPx) / 1.1 / gtx.Metric.PxPerSp)
	l := material.Label(ui.theme.Material, fontSizeSp, txt)
	l.Color = c
	l.Alignment = text.End
	l.MaxLines = 1
	return shrinkToFit(gtx, l.Layout)
}

// layoutStatus draws the mode indicators and store errors.
func (ui *calcUI) layoutStatus(gtx layout.Context, st session.State) layout.Dimensions {
	status := st.Unit.String()
	if st.Inverse {
		status += "  INV"
	}
	if st.OpenParens > 0 {
		status += fmt.Sprintf("  (%d", st.OpenParens)
	}
	l := material.Label(ui.theme.Material, ui.theme.Size.Status, status)
	l.Color = ui.theme.Color.Status
	if ui.storeErr != nil {
		l.Text = ui.storeErr.Error()
		l.Color = ui.theme.Color.Error
	}
	l.MaxLines = 1
	return l.Layout(gtx)
}

func (ui *calcUI) layoutKeypad(gtx layout.Context, rows [][]keyDef, st session.State) layout.Dimensions {
	g := grid{
		rows:    len(rows),
		cols:    len(rows[0]),
		spacing: ui.gridSpacing,
	}
	return g.layout(gtx, func(row, col int, gtx layout.Context) layout.Dimensions {
		return ui.layoutButton(gtx, &rows[row][col], st)
	})
}

func (ui *calcUI) layoutButton(gtx layout.Context, k *keyDef, st session.State) layout.Dimensions {
	clk := ui.clicks[k]
	if clk == nil {
		clk = new(widget.Clickable)
		ui.clicks[k] = clk
	}
	if clk.Clicked() {
		ui.press(k)
		st = ui.ctrl.State()
	}

	textSizePx := float32(gtx.Constraints.Max.Y) / 2.2
	style := material.Button(ui.theme.Material, clk, k.caption(st))
	style.Background = ui.theme.buttonColor(k.kind, k.active(st))
	style.Color = ui.theme.Color.ButtonLabel
	style.Inset = layout.Inset{}
	style.TextSize = unit.Sp(textSizePx / gtx.Metric.PxPerSp)
	style.CornerRadius = unit.Dp(float32(ui.cornerRadius) / gtx.Metric.PxPerDp)
	return style.Layout(gtx)
}

// press runs the function of a keypad button.
func (ui *calcUI) press(k *keyDef) {
	if k.kind == kindTheme {
		ui.toggleTheme()
		return
	}
	ui.ctrl.Press(k.action, k.value)
}

func (ui *calcUI) toggleTheme() {
	ui.theme = ui.theme.toggled()
	if ui.prefs == nil {
		return
	}
	if err := ui.prefs.SetTheme(ui.theme.Name); err != nil {
		AppLogger.Logf("can't save theme: %v", err)
	}
}

// layoutInput registers the global key handler.
func (ui *calcUI) layoutInput(gtx layout.Context) {
	// Register handler for key events.
	input := key.InputOp{
		Tag:  ui,
		Hint: key.HintNumeric,
		Keys: "Short-[C,V]|(Shift)-[0,1,2,3,4,5,6,7,8,9,.,+,*,/,%,^,!,(,),=,⌤,⏎,⌫,⌦,⎋]|[C,D,E,I,L,N,P,R,S,T]|(Alt)-(Shift)-[-]",
	}
	input.Add(gtx.Ops)

	// Request keyboard focus. This is required to make the Return key work.
	key.FocusOp{Tag: ui}.Add(gtx.Ops)

	for _, ev := range gtx.Queue.Events(ui) {
		switch ev := ev.(type) {
		case key.Event:
			switch {
			case isCopy(ev):
				op := clipboard.WriteOp{Text: ui.copyText()}
				op.Add(gtx.Ops)
			case isPaste(ev):
				op := clipboard.ReadOp{Tag: ui}
				op.Add(gtx.Ops)
			case ev.State == key.Press:
				if name, ok := keyName(ev); ok {
					ui.ctrl.Key(name)
				}
			}

		case clipboard.Event:
			ui.ctrl.Paste(ev.Text)
		}
	}
}

// copyText returns the result, or the expression when there is none.
func (ui *calcUI) copyText() string {
	st := ui.ctrl.State()
	if st.Result != "" {
		return st.Result
	}
	return st.Expression
}

func isCopy(e key.Event) bool {
	return e.Name == "C" && e.Modifiers.Contain(key.ModShortcut)
}

func isPaste(e key.Event) bool {
	return e.Name == "V" && e.Modifiers.Contain(key.ModShortcut)
}

// handleStoreEvent applies a history store event.
func (ui *calcUI) handleStoreEvent(ev histstore.Event) {
	switch ev := ev.(type) {
	case *histstore.EntryAdded:
		// Live entries are already in the visible history.
		if ev.Replay {
			ui.ctrl.RestoreHistory(ev.Entry.String())
		}
	case *histstore.HistoryCleared:
		ui.ctrl.ClearHistory()
	case *histstore.IOError:
		AppLogger.Logf("history store error: %v", ev.Err)
		ui.storeErr = ev.Err
	}
}

func main() {
	go func() {
		if err := run(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	}()
	app.Main()
}

func run() error {
	var cfg config.Config
	if os.Getenv(config.DataDirEnv) == "" {
		dir, err := app.DataDir()
		if err != nil {
			return err
		}
		cfg.SetDataDir(filepath.Join(dir, "scicalc"))
	}

	// Preferences are optional, the app works without them.
	themeName := prefs.DesktopTheme()
	p, err := prefs.Open(cfg.DataDir())
	if err != nil {
		AppLogger.Logf("preferences unavailable: %v", err)
		p = nil
	} else {
		defer p.Close()
		if name, err := p.Theme(); err == nil {
			themeName = name
		}
	}
	theme := newCalcTheme(themeName)

	var (
		size     = app.Size(theme.Size.Width, theme.Size.Height)
		statusBg = app.StatusColor(theme.Color.Background)
		navBg    = app.NavigationColor(theme.Color.Background)
		title    = app.Title("SciCalc")
		portrait = app.PortraitOrientation.Option()
	)
	w := app.NewWindow(statusBg, navBg, size, title, portrait)
	w.Option(app.MinSize(theme.Size.Width, theme.Size.Height))
	return loop(w, &cfg, theme, p)
}

// loop is the main loop of the app.
func loop(w *app.Window, cfg *config.Config, theme *calcTheme, p *prefs.Store) error {
	store := histstore.NewStore(cfg.DataDir())
	defer store.Close()

	ctrl := session.New(
		session.WithUnit(cfg.Unit()),
		session.WithHistorySize(cfg.HistorySize()),
		session.WithSubmitDelay(cfg.SubmitDelay()),
		session.WithRecorder(store.Record),
	)
	// Keypad clicks change the state while the frame is drawn.
	ctrl.Subscribe(func(session.State) { w.Invalidate() })

	var (
		ui          = newUI(ctrl, theme, p)
		ops         op.Ops
		storeEvents = store.Events()
	)
	for {
		select {
		case e, ok := <-storeEvents:
			if !ok {
				storeEvents = nil
				continue
			}
			ui.handleStoreEvent(e)
			w.Invalidate()
		case e := <-w.Events():
			switch e := e.(type) {
			case system.StageEvent:
				if e.Stage == system.StagePaused {
					store.Persist()
				}
			case system.DestroyEvent:
				return e.Err
			case system.FrameEvent:
				ctrl.Tick(e.Now)
				gtx := layout.NewContext(&ops, e)
				paint.Fill(gtx.Ops, ui.theme.Color.Background)
				ui.Layout(gtx)
				if at, ok := ctrl.Deadline(); ok {
					op.InvalidateOp{At: at}.Add(gtx.Ops)
				}
				e.Frame(gtx.Ops)
			}
		}
	}
}
