// Package session owns the calculator state of one window or terminal and
// turns keypad actions into buffer operations.
package session

import (
	"time"

	"github.com/fjl/scicalc/internal/calc"
)

const (
	// DefaultHistorySize is the number of visible history entries.
	DefaultHistorySize = 5
	// DefaultSubmitDelay is the time between showing a result and moving the
	// calculation into history.
	DefaultSubmitDelay = time.Second
)

// State is a snapshot of the session for rendering.
type State struct {
	Expression string
	Result     string
	Failed     bool
	OpenParens int
	Unit       calc.AngleUnit
	Inverse    bool
	Scientific bool
	History    []string
	Pending    bool // a submitted expression is waiting to move into history
}

// Option configures a Controller.
type Option func(*Controller)

// WithSubmitDelay sets the time a submitted expression stays visible.
// A zero delay moves it into history immediately.
func WithSubmitDelay(d time.Duration) Option {
	return func(c *Controller) { c.delay = d }
}

// WithHistorySize sets the number of visible history entries.
func WithHistorySize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.historySize = n
		}
	}
}

// WithClock sets the time source. Tests use this for deterministic timing.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithRecorder sets a function that is called for every calculation moved
// into history, e.g. to persist it.
func WithRecorder(fn func(expression, result string)) Option {
	return func(c *Controller) { c.record = fn }
}

// WithUnit sets the initial angle unit.
func WithUnit(u calc.AngleUnit) Option {
	return func(c *Controller) { c.buf.SetUnit(u) }
}

type pendingSubmit struct {
	at         time.Time
	expression string
	result     string
	clear      bool
}

// Controller holds the expression buffer, visible history and UI mode of a
// calculator. It is not safe for concurrent use; front ends call it from their
// event loop and use Deadline/Tick to drive the deferred history update.
type Controller struct {
	buf         calc.Buffer
	history     []string
	historySize int
	restored    int // leading history entries loaded by RestoreHistory
	scientific  bool
	pending     *pendingSubmit

	delay  time.Duration
	now    func() time.Time
	record func(expression, result string)
	subs   []func(State)
}

// New creates a controller.
func New(options ...Option) *Controller {
	c := &Controller{
		historySize: DefaultHistorySize,
		delay:       DefaultSubmitDelay,
		now:         time.Now,
	}
	for _, option := range options {
		option(c)
	}
	return c
}

// Subscribe registers fn to be called after every state change.
func (c *Controller) Subscribe(fn func(State)) {
	c.subs = append(c.subs, fn)
}

// State returns a snapshot of the session.
func (c *Controller) State() State {
	res := c.buf.Result()
	return State{
		Expression: c.buf.Expression(),
		Result:     res.String(),
		Failed:     res.Err() != nil,
		OpenParens: c.buf.OpenParentheses(),
		Unit:       c.buf.Unit(),
		Inverse:    c.buf.IsInverse(),
		Scientific: c.scientific,
		History:    append([]string(nil), c.history...),
		Pending:    c.pending != nil,
	}
}

// Press performs a keypad action. value carries the digit or operator for
// ActionNumber and ActionOperator.
func (c *Controller) Press(a Action, value string) {
	if a == ActionSubmit {
		c.Submit()
		return
	}
	c.settle()
	b := &c.buf
	switch a {
	case ActionNumber:
		b.Append(value)
	case ActionDecimal:
		b.AppendDecimal()
	case ActionOperator:
		b.AppendOperator(value)
	case ActionPower:
		b.AppendPower()
	case ActionClear:
		b.Clear()
	case ActionBackspace:
		b.Backspace()
	case ActionNegate:
		b.Negate()
	case ActionPercent:
		b.Percentage()
	case ActionPi:
		b.AppendConstant("π")
	case ActionEuler:
		b.AppendConstant("e")
	case ActionSqrt:
		b.AppendRoot()
	case ActionFactorial:
		b.Append("!")
	case ActionParenthesis:
		b.AppendParenthesis()
	case ActionCloseParenthesis:
		if b.OpenParentheses() > 0 {
			b.AppendParenthesis()
		}
	case ActionSin, ActionCos, ActionTan, ActionLn, ActionLog:
		b.AppendFunctionCall(function(a, b.IsInverse()))
	case ActionDegree:
		b.ToggleDegreeMode()
	case ActionInverse:
		b.ToggleInverseMode()
	case ActionScientific:
		c.scientific = !c.scientific
	default:
		return
	}
	c.changed()
}

// Submit evaluates the expression. The result is shown at once; the
// calculation moves into history when the submit delay has passed or when the
// next input arrives, whichever is first. A successful calculation also clears
// the expression at that point.
func (c *Controller) Submit() {
	c.settle()
	if c.buf.Expression() == "" {
		c.changed()
		return
	}
	c.buf.AutoClose()
	res := c.buf.Evaluate()
	c.pending = &pendingSubmit{
		at:         c.now().Add(c.delay),
		expression: c.buf.Expression(),
		result:     res.String(),
		clear:      res.Err() == nil,
	}
	if c.delay <= 0 {
		c.settle()
	}
	c.changed()
}

// Deadline returns the time at which Tick should be called next.
func (c *Controller) Deadline() (time.Time, bool) {
	if c.pending == nil {
		return time.Time{}, false
	}
	return c.pending.at, true
}

// Tick completes a pending submit whose delay has passed. It reports whether
// the state changed.
func (c *Controller) Tick(now time.Time) bool {
	if c.pending == nil || now.Before(c.pending.at) {
		return false
	}
	c.settle()
	c.changed()
	return true
}

// ToggleScientific shows or hides the scientific keys.
func (c *Controller) ToggleScientific() {
	c.Press(ActionScientific, "")
}

// SetUnit sets the angle unit.
func (c *Controller) SetUnit(u calc.AngleUnit) {
	c.buf.SetUnit(u)
	c.changed()
}

// Paste replaces the expression with text.
func (c *Controller) Paste(text string) {
	c.settle()
	c.buf.SetExpression(text)
	c.changed()
}

// RestoreHistory loads previously recorded entries, e.g. from disk, oldest
// first. Restored entries go before entries submitted in this session. Only
// the newest entries that fit the visible history are kept.
func (c *Controller) RestoreHistory(entries ...string) {
	for _, e := range entries {
		c.history = append(c.history, "")
		copy(c.history[c.restored+1:], c.history[c.restored:])
		c.history[c.restored] = e
		c.restored++
		c.trimHistory()
	}
	c.changed()
}

// ClearHistory empties the visible history.
func (c *Controller) ClearHistory() {
	c.history = nil
	c.restored = 0
	c.changed()
}

// settle completes a pending submit immediately.
func (c *Controller) settle() {
	p := c.pending
	if p == nil {
		return
	}
	c.pending = nil
	c.pushHistory(p.expression + " = " + p.result)
	if c.record != nil {
		c.record(p.expression, p.result)
	}
	if p.clear {
		c.buf.ClearExpression()
	}
}

func (c *Controller) pushHistory(entry string) {
	c.history = append(c.history, entry)
	c.trimHistory()
}

// trimHistory drops the oldest entries beyond the history size.
func (c *Controller) trimHistory() {
	over := len(c.history) - c.historySize
	if over <= 0 {
		return
	}
	c.history = append(c.history[:0], c.history[over:]...)
	c.restored -= over
	if c.restored < 0 {
		c.restored = 0
	}
}

func (c *Controller) changed() {
	if len(c.subs) == 0 {
		return
	}
	st := c.State()
	for _, fn := range c.subs {
		fn(st)
	}
}
