// Package tui renders the interactive calendar: month, week, day, and
// year views over the shared store, with mouse drag and resize on the
// day grid.
package tui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/clock"
	"tableflip.dev/agenda/pkg/interact"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/layout"
	"tableflip.dev/agenda/pkg/store"
	"tableflip.dev/agenda/pkg/timeutil"
)

type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeConfirm
	modeHelp
)

// Grid geometry: one terminal row is thirty minutes, so a day is 48
// rows tall.
const (
	rowsPerHour  = 2.0
	gutterWidth  = 7
	sidebarWidth = 24
	headerRows   = 2
	footerRows   = 2
)

type tickMsg time.Time

// storeChangedMsg arrives from the disk watcher when another process
// wrote a collection.
type storeChangedMsg struct{ key string }

type errMsg struct{ err error }

// Model contains the UI state.
type Model struct {
	svc   *app.Service
	theme Theme

	mode mode
	view app.ViewMode

	now time.Time
	day time.Time

	width  int
	height int
	scroll int

	selected int

	drag   *interact.Controller
	engine layout.Engine

	form    *form
	help    *helpOverlay
	confirm *item.Event

	status string
}

// New creates a calendar model backed by the service.
func New(svc *app.Service) *Model {
	now := svc.Clock.Now()
	m := &Model{
		svc:    svc,
		theme:  Default(),
		view:   app.ViewWeek,
		now:    now,
		day:    timeutil.StartOfDay(now),
		engine: layout.New(layout.Config{PixelsPerHour: rowsPerHour, MinEventPixels: 1, TaskPixels: 1}),
		status: "Ready",
	}
	m.drag = interact.New(interact.Config{
		QuantumMinutes:  interact.DefaultQuantum,
		PixelsPerMinute: rowsPerHour / 60.0,
	}, func(ev *item.Event) error {
		_, err := svc.UpdateEvent(ev)
		return err
	})
	m.scrollToHour(8)
	return m
}

// Run launches the Bubble Tea program. When the store sits on a disk
// adapter, a watcher feeds external writes back into the UI.
func Run(ctx context.Context, svc *app.Service, adapter *store.DiskAdapter) error {
	p := tea.NewProgram(New(svc), tea.WithAltScreen(), tea.WithMouseAllMotion())

	if adapter != nil {
		watchCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		events, err := adapter.Watch(watchCtx)
		if err == nil {
			go func() {
				for ev := range events {
					p.Send(storeChangedMsg{key: ev.Key})
				}
			}()
		}
	}

	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tickCmd()
}

func tickCmd() tea.Cmd {
	return tea.Tick(clock.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update routes Bubble Tea messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	prev := m.mode

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.help != nil {
			m.help.SetSize(m.overlayWidth(), m.overlayHeight())
		}
	case tickMsg:
		m.now = time.Time(msg)
		cmds = append(cmds, tickCmd())
	case storeChangedMsg:
		m.reload(msg.key)
	case errMsg:
		m.status = "ERR: " + msg.err.Error()
	case tea.KeyPressMsg:
		cmds = append(cmds, m.handleKey(msg))
	case tea.MouseClickMsg:
		m.handleMouseClick(msg.X, msg.Y)
	case tea.MouseMotionMsg:
		m.handleMouseMotion(msg.X, msg.Y)
	case tea.MouseReleaseMsg:
		m.handleMouseRelease()
	}

	// Forward input to the overlay only when it was already open, so
	// the keystroke that opened it is not typed into it.
	if prev == modeInsert && m.mode == modeInsert && m.form != nil {
		if cmd := m.form.Update(msg); cmd != nil {
			cmds = append(cmds, cmd)
		}
	}
	if prev == modeHelp && m.mode == modeHelp && m.help != nil {
		cmds = append(cmds, m.help.Update(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) reload(key string) {
	switch key {
	case store.EventsKey:
		m.svc.Store.Reload(item.KindEvent)
	case store.TasksKey:
		m.svc.Store.Reload(item.KindTask)
	default:
		m.svc.Store.Reload(item.KindEvent)
		m.svc.Store.Reload(item.KindTask)
	}
	m.clampSelection()
	m.status = "Reloaded from disk"
}

func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch m.mode {
	case modeHelp:
		if key := msg.String(); key == "q" || key == "esc" || key == "?" {
			m.mode = modeNormal
			m.help = nil
		}
		return nil
	case modeConfirm:
		return m.handleConfirmKey(msg)
	case modeInsert:
		return m.handleInsertKey(msg)
	}
	return m.handleNormalKey(msg)
}

func (m *Model) handleConfirmKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "y", "enter":
		ev := m.confirm
		m.confirm = nil
		m.mode = modeNormal
		if ev == nil {
			return nil
		}
		if err := m.svc.DeleteEvent(ev.ID); err != nil {
			return func() tea.Msg { return errMsg{err} }
		}
		m.status = "Deleted " + ev.Title
		m.clampSelection()
	case "n", "esc", "q":
		m.confirm = nil
		m.mode = modeNormal
		m.status = "Delete cancelled"
	}
	return nil
}

func (m *Model) handleInsertKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "esc":
		m.mode = modeNormal
		m.form = nil
		m.status = "Cancelled"
		return nil
	case "enter":
		if m.form == nil {
			m.mode = modeNormal
			return nil
		}
		if err := m.form.submit(m.svc); err != nil {
			m.form.errorMsg = err.Error()
			return nil
		}
		if m.form.editID == "" {
			m.status = "Added"
		} else {
			m.status = "Updated"
		}
		m.mode = modeNormal
		m.form = nil
		m.clampSelection()
		return nil
	}
	return nil
}

func (m *Model) handleNormalKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c", "q":
		return tea.Quit
	case "m":
		m.view = app.ViewMonth
	case "w":
		m.view = app.ViewWeek
	case "d":
		m.view = app.ViewDay
	case "y":
		m.view = app.ViewYear
	case "tab":
		m.view = app.ViewMode((int(m.view) + 1) % 4)
	case "t":
		m.day = timeutil.StartOfDay(m.now)
		m.selected = 0
	case "h", "left":
		m.step(-1)
	case "l", "right":
		m.step(1)
	case "j", "down":
		m.moveSelection(1)
	case "k", "up":
		m.moveSelection(-1)
	case "ctrl+d":
		m.scroll = min(m.scroll+4, m.maxScroll())
	case "ctrl+u":
		m.scroll = max(m.scroll-4, 0)
	case "a":
		m.form = newEventForm(m.day, nil)
		m.mode = modeInsert
		return m.form.Focus()
	case "T":
		m.form = newTaskForm(m.day)
		m.mode = modeInsert
		return m.form.Focus()
	case "e", "enter":
		if ev := m.selectedEvent(); ev != nil {
			m.form = newEventForm(m.day, ev)
			m.mode = modeInsert
			return m.form.Focus()
		}
	case "x":
		if ev := m.selectedEvent(); ev != nil {
			m.confirm = ev
			m.mode = modeConfirm
		}
	case "?":
		m.help = newHelpOverlay(m.overlayWidth(), m.overlayHeight())
		m.mode = modeHelp
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		m.toggleLabel(int(msg.String()[0] - '1'))
	}
	return nil
}

// step moves the focused period by the unit of the current view.
func (m *Model) step(direction int) {
	switch m.view {
	case app.ViewDay:
		m.day = m.day.AddDate(0, 0, direction)
	case app.ViewWeek:
		m.day = m.day.AddDate(0, 0, 7*direction)
	case app.ViewMonth:
		m.day = m.day.AddDate(0, direction, 0)
	case app.ViewYear:
		m.day = m.day.AddDate(direction, 0, 0)
	}
	m.selected = 0
}

func (m *Model) moveSelection(direction int) {
	switch m.view {
	case app.ViewMonth:
		m.day = m.day.AddDate(0, 0, 7*direction)
		m.selected = 0
		return
	case app.ViewYear:
		m.day = m.day.AddDate(0, 3*direction, 0)
		return
	}

	events := m.dayEvents()
	if len(events) == 0 {
		m.scroll = clamp(m.scroll+2*direction, 0, m.maxScroll())
		return
	}
	m.selected = clamp(m.selected+direction, 0, len(events)-1)
	m.scrollToSelection()
}

func (m *Model) toggleLabel(index int) {
	entries := m.svc.Store.EventLabels()
	if index < 0 || index >= len(entries) {
		return
	}
	e := entries[index]
	m.svc.Store.ToggleEventLabel(e.Name, !e.Checked)
	m.svc.Store.ToggleTaskLabel(e.Name, !e.Checked)
	m.clampSelection()
	if e.Checked {
		m.status = "Hid " + e.Name
	} else {
		m.status = "Showing " + e.Name
	}
}

// dayEvents is the filtered selection list for the focused day, in
// grid order.
func (m *Model) dayEvents() []*item.Event {
	events := m.svc.EventsForDay(m.day)
	boxes := m.dayBoxes()
	sortEventsByBox(events, boxes)
	return events
}

func (m *Model) dayBoxes() map[string]layout.Box {
	return m.engine.Day(m.day, m.svc.EventsForDay(m.day))
}

func (m *Model) selectedEvent() *item.Event {
	events := m.dayEvents()
	if len(events) == 0 {
		return nil
	}
	if m.selected >= len(events) {
		m.selected = len(events) - 1
	}
	return events[m.selected]
}

func (m *Model) clampSelection() {
	if n := len(m.dayEvents()); m.selected >= n {
		m.selected = max(n-1, 0)
	}
}

// Mouse interaction only applies to the day grid.

func (m *Model) gridRow(y int) (int, bool) {
	row := y - headerRows + m.scroll
	if y < headerRows || y >= m.height-footerRows {
		return 0, false
	}
	if row < 0 || row >= m.gridRows() {
		return 0, false
	}
	return row, true
}

func (m *Model) handleMouseClick(x, y int) {
	if m.view != app.ViewDay || m.mode != modeNormal {
		return
	}
	row, ok := m.gridRow(y)
	if !ok || x < gutterWidth || x >= gutterWidth+m.laneWidth() {
		return
	}

	boxes := m.dayBoxes()
	events := m.svc.EventsForDay(m.day)
	lane := m.laneWidth()
	for _, ev := range events {
		b, ok := boxes[ev.ID]
		if !ok {
			continue
		}
		top := int(b.Top)
		h := max(int(b.Height), 1)
		left := gutterWidth + int(layout.LeftPercent(b.Column, b.TotalColumns)*float64(lane)/100)
		w := max(int(layout.WidthPercent(b.TotalColumns)*float64(lane)/100), 1)
		if row < top || row >= top+h || x < left || x >= left+w {
			continue
		}
		switch {
		case h > 1 && row == top:
			m.drag.GrabEdge(ev, interact.EdgeStart)
			m.status = "Resizing start of " + ev.Title
		case h > 1 && row == top+h-1:
			m.drag.GrabEdge(ev, interact.EdgeEnd)
			m.status = "Resizing end of " + ev.Title
		default:
			m.drag.GrabBody(ev, float64(row-top))
			m.status = "Dragging " + ev.Title
		}
		return
	}
}

func (m *Model) handleMouseMotion(x, y int) {
	if m.drag.State() == interact.StateIdle {
		return
	}
	row, ok := m.gridRow(y)
	if !ok || x < gutterWidth || x >= gutterWidth+m.laneWidth() {
		m.drag.PointerLeave()
		m.status = "Gesture discarded"
		return
	}
	m.drag.PointerMove(float64(row))
}

func (m *Model) handleMouseRelease() {
	if m.drag.State() == interact.StateIdle {
		return
	}
	if err := m.drag.PointerRelease(); err != nil {
		m.status = "ERR: " + err.Error()
		return
	}
	m.status = "Saved"
}

func (m *Model) gridRows() int {
	return int(rowsPerHour * 24)
}

func (m *Model) gridViewRows() int {
	rows := m.height - headerRows - footerRows
	if rows < 1 {
		rows = 1
	}
	return rows
}

func (m *Model) maxScroll() int {
	return max(m.gridRows()-m.gridViewRows(), 0)
}

func (m *Model) laneWidth() int {
	lane := m.width - gutterWidth - sidebarWidth - 1
	if lane < 10 {
		lane = 10
	}
	return lane
}

func (m *Model) scrollToHour(hour int) {
	m.scroll = clamp(int(float64(hour)*rowsPerHour), 0, m.maxScroll())
}

func (m *Model) scrollToSelection() {
	ev := m.selectedEvent()
	if ev == nil {
		return
	}
	b, ok := m.dayBoxes()[ev.ID]
	if !ok {
		return
	}
	top := int(b.Top)
	if top < m.scroll {
		m.scroll = top
	}
	if bottom := top + max(int(b.Height), 1); bottom > m.scroll+m.gridViewRows() {
		m.scroll = clamp(bottom-m.gridViewRows(), 0, m.maxScroll())
	}
}

func (m *Model) overlayWidth() int {
	return clamp(m.width-8, 32, 100)
}

func (m *Model) overlayHeight() int {
	return clamp(m.height-6, 8, 40)
}

func (m *Model) periodLabel() string {
	switch m.view {
	case app.ViewDay:
		return m.day.Format("Monday, January 2 2006")
	case app.ViewWeek:
		start := timeutil.StartOfWeek(m.day)
		end := start.AddDate(0, 0, 6)
		return fmt.Sprintf("%s - %s", start.Format("Jan 2"), end.Format("Jan 2 2006"))
	case app.ViewYear:
		return m.day.Format("2006")
	}
	return m.day.Format("January 2006")
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
