// Package interact is the drag/resize state machine. It consumes
// pointer-style gesture input, continuously re-derives snapped preview
// times for the grabbed event, and commits a single store update when
// the pointer is released. Leaving the surface cancels with no
// mutation.
package interact

import (
	"errors"
	"time"

	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/timeutil"
)

// State is the controller's current mode.
type State int

const (
	StateIdle State = iota
	StateDragging
	StateResizingStart
	StateResizingEnd
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateResizingStart:
		return "resizing-start"
	case StateResizingEnd:
		return "resizing-end"
	}
	return "unknown"
}

// Edge names the grabbed end of an event for a resize gesture.
type Edge int

const (
	EdgeStart Edge = iota
	EdgeEnd
)

// DefaultQuantum is the snapping granularity in minutes.
const DefaultQuantum = 15

// Snap rounds minutes to the nearest multiple of quantum. It is
// idempotent: Snap(Snap(m)) == Snap(m).
func Snap(minutes, quantum int) int {
	if quantum <= 0 {
		quantum = DefaultQuantum
	}
	return ((minutes + quantum/2) / quantum) * quantum
}

// CommitFunc applies the final preview to the store, via update.
type CommitFunc func(*item.Event) error

// Config tunes the controller.
type Config struct {
	// QuantumMinutes is the snap granularity; zero means 15.
	QuantumMinutes int

	// PixelsPerMinute converts pointer positions to minutes. Zero
	// means one pixel per minute.
	PixelsPerMinute float64
}

func (c Config) quantum() int {
	if c.QuantumMinutes <= 0 {
		return DefaultQuantum
	}
	return c.QuantumMinutes
}

func (c Config) scale() float64 {
	if c.PixelsPerMinute <= 0 {
		return 1
	}
	return c.PixelsPerMinute
}

var errNoCommit = errors.New("interact: no commit function configured")

// Controller is the gesture state machine. It is single-threaded by
// contract: every transition happens inside one input handler.
type Controller struct {
	cfg    Config
	commit CommitFunc

	state      State
	preview    *item.Event
	original   *item.Event
	grabOffset float64
}

// New builds an idle controller. commit is invoked exactly once per
// completed gesture, on pointer release.
func New(cfg Config, commit CommitFunc) *Controller {
	return &Controller{cfg: cfg, commit: commit, state: StateIdle}
}

// State reports the current mode.
func (c *Controller) State() State {
	return c.state
}

// ActiveID is the id of the grabbed event, or "" when idle. Layout
// callers exclude this id so the rest of the day renders stably.
func (c *Controller) ActiveID() string {
	if c.state == StateIdle || c.preview == nil {
		return ""
	}
	return c.preview.ID
}

// Preview returns a copy of the event with the live, uncommitted times
// applied, or nil when idle.
func (c *Controller) Preview() *item.Event {
	if c.state == StateIdle {
		return nil
	}
	return c.preview.Clone()
}

// GrabBody begins a drag. grabOffset is the pointer's distance in
// pixels from the top of the event's box, so the event does not jump
// under the pointer.
func (c *Controller) GrabBody(ev *item.Event, grabOffset float64) {
	if ev == nil || c.state != StateIdle {
		return
	}
	c.original = ev.Clone()
	c.preview = ev.Clone()
	c.grabOffset = grabOffset
	c.state = StateDragging
}

// GrabEdge begins a resize of the given edge.
func (c *Controller) GrabEdge(ev *item.Event, edge Edge) {
	if ev == nil || c.state != StateIdle {
		return
	}
	c.original = ev.Clone()
	c.preview = ev.Clone()
	if edge == EdgeStart {
		c.state = StateResizingStart
	} else {
		c.state = StateResizingEnd
	}
}

// PointerMove re-derives the preview from the pointer's vertical
// position (pixels from the top of the day lane). Idle moves are
// ignored.
func (c *Controller) PointerMove(y float64) {
	switch c.state {
	case StateDragging:
		c.moveBody(y)
	case StateResizingStart:
		c.resizeStart(y)
	case StateResizingEnd:
		c.resizeEnd(y)
	}
}

func (c *Controller) moveBody(y float64) {
	minutes := Snap(c.clampToDay((y-c.grabOffset)/c.cfg.scale()), c.cfg.quantum())

	origStart, _ := c.original.Interval()
	duration := c.original.Duration()
	dayStart := timeutil.StartOfDay(origStart)

	start := dayStart.Add(minuteDuration(minutes))
	c.preview.StartTime = item.At(start)
	c.preview.EndTime = item.At(start.Add(duration))
}

func (c *Controller) resizeStart(y float64) {
	minutes := Snap(c.clampToDay(y/c.cfg.scale()), c.cfg.quantum())

	_, end := c.original.Interval()
	dayStart := timeutil.StartOfDay(end)
	endMin := int(end.Sub(dayStart).Minutes())

	// Keep at least one quantum of duration; never invert.
	if minutes > endMin-c.cfg.quantum() {
		minutes = endMin - c.cfg.quantum()
	}
	if minutes < 0 {
		minutes = 0
	}
	c.preview.StartTime = item.At(dayStart.Add(minuteDuration(minutes)))
	c.preview.EndTime = item.At(end)
}

func (c *Controller) resizeEnd(y float64) {
	minutes := Snap(c.clampToDay(y/c.cfg.scale()), c.cfg.quantum())

	start, _ := c.original.Interval()
	dayStart := timeutil.StartOfDay(start)
	startMin := int(start.Sub(dayStart).Minutes())

	if minutes < startMin+c.cfg.quantum() {
		minutes = startMin + c.cfg.quantum()
	}
	if minutes > timeutil.MinutesPerDay {
		minutes = timeutil.MinutesPerDay
	}
	c.preview.StartTime = item.At(start)
	c.preview.EndTime = item.At(dayStart.Add(minuteDuration(minutes)))
}

func (c *Controller) clampToDay(minutes float64) int {
	m := int(minutes)
	if m < 0 {
		return 0
	}
	if m > timeutil.MinutesPerDay {
		return timeutil.MinutesPerDay
	}
	return m
}

// PointerRelease commits the last preview through the configured
// commit function and returns to idle. Releasing while idle is a
// no-op.
func (c *Controller) PointerRelease() error {
	if c.state == StateIdle {
		return nil
	}
	preview := c.preview
	c.reset()
	if c.commit == nil {
		return errNoCommit
	}
	return c.commit(preview)
}

// PointerLeave cancels the gesture, discarding the preview with no
// mutation.
func (c *Controller) PointerLeave() {
	c.reset()
}

func (c *Controller) reset() {
	c.state = StateIdle
	c.preview = nil
	c.original = nil
	c.grabOffset = 0
}

func minuteDuration(m int) time.Duration {
	return time.Duration(m) * time.Minute
}
