package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/clock"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/layout"
	"tableflip.dev/agenda/pkg/store"
)

type memAdapter struct {
	data map[string][]byte
}

func (m *memAdapter) Load(key string) ([]byte, error) { return m.data[key], nil }
func (m *memAdapter) Save(key string, data []byte) error {
	m.data[key] = data
	return nil
}

var day = time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)

func newTestModel(t *testing.T) *Model {
	t.Helper()
	s := store.Open(&memAdapter{data: map[string][]byte{}})
	svc := app.New(s, layout.New(layout.DefaultConfig()), nil, clock.Fix(day.Add(10*time.Hour)))
	m := New(svc)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return m
}

func addEvent(t *testing.T, m *Model, title string, start, end time.Time) *item.Event {
	t.Helper()
	ev, err := m.svc.AddEvent(&item.Event{
		Title:     title,
		Label:     "blue",
		Day:       item.At(day),
		StartTime: item.At(start),
		EndTime:   item.At(end),
	})
	if err != nil {
		t.Fatalf("add %s: %v", title, err)
	}
	return ev
}

func press(m *Model, key string) {
	var msg tea.KeyPressMsg
	switch key {
	case "enter":
		msg = tea.KeyPressMsg{Code: tea.KeyEnter}
	case "esc":
		msg = tea.KeyPressMsg{Code: tea.KeyEscape}
	case "tab":
		msg = tea.KeyPressMsg{Code: tea.KeyTab}
	default:
		msg = tea.KeyPressMsg{Text: key, Code: rune(key[0])}
	}
	m.Update(msg)
}

func TestViewSwitching(t *testing.T) {
	m := newTestModel(t)
	if m.view != app.ViewWeek {
		t.Fatalf("initial view = %s", m.view)
	}
	press(m, "d")
	if m.view != app.ViewDay {
		t.Fatalf("view after d = %s", m.view)
	}
	press(m, "m")
	if m.view != app.ViewMonth {
		t.Fatalf("view after m = %s", m.view)
	}
	press(m, "tab")
	if m.view != app.ViewWeek {
		t.Fatalf("view after tab = %s", m.view)
	}
}

func TestStepByView(t *testing.T) {
	m := newTestModel(t)
	m.view = app.ViewDay
	before := m.day
	press(m, "l")
	if !m.day.Equal(before.AddDate(0, 0, 1)) {
		t.Fatalf("day after l = %s", m.day)
	}
	m.view = app.ViewMonth
	press(m, "h")
	if m.day.Month() != before.Month()-1 {
		t.Fatalf("month after h = %s", m.day)
	}
	press(m, "t")
	if !m.day.Equal(day) {
		t.Fatalf("day after t = %s", m.day)
	}
}

func TestTickAdvancesClock(t *testing.T) {
	m := newTestModel(t)
	later := day.Add(11 * time.Hour)
	m.Update(tickMsg(later))
	if !m.now.Equal(later) {
		t.Fatalf("now after tick = %s", m.now)
	}
}

func TestLabelToggleKey(t *testing.T) {
	m := newTestModel(t)
	addEvent(t, m, "standup", day.Add(9*time.Hour), day.Add(10*time.Hour))
	m.view = app.ViewDay

	press(m, "1")
	if got := len(m.dayEvents()); got != 0 {
		t.Fatalf("events visible after hiding label = %d", got)
	}
	press(m, "1")
	if got := len(m.dayEvents()); got != 1 {
		t.Fatalf("events visible after re-showing label = %d", got)
	}
}

func TestAddFormFlow(t *testing.T) {
	m := newTestModel(t)
	m.view = app.ViewDay

	press(m, "a")
	if m.mode != modeInsert || m.form == nil {
		t.Fatal("a should open the insert form")
	}

	m.form.fields[0].input.SetValue("standup")
	m.form.fields[2].input.SetValue("09:00")
	m.form.fields[3].input.SetValue("09:30")
	press(m, "enter")

	if m.mode != modeNormal {
		t.Fatalf("mode after submit = %v (err %q)", m.mode, m.status)
	}
	events := m.svc.EventsForDay(m.day)
	if len(events) != 1 || events[0].Title != "standup" {
		t.Fatalf("events after submit = %+v", events)
	}
	if events[0].StartTime.Hour() != 9 {
		t.Fatalf("start = %s", events[0].StartTime)
	}
}

func TestAddFormRejectsBadDate(t *testing.T) {
	m := newTestModel(t)
	press(m, "a")
	m.form.fields[0].input.SetValue("standup")
	m.form.fields[1].input.SetValue("not-a-date")
	press(m, "enter")
	if m.mode != modeInsert {
		t.Fatal("bad date should keep the form open")
	}
	if m.form.errorMsg == "" {
		t.Fatal("expected a field error")
	}
}

func TestDeleteConfirmFlow(t *testing.T) {
	m := newTestModel(t)
	addEvent(t, m, "standup", day.Add(9*time.Hour), day.Add(10*time.Hour))
	m.view = app.ViewDay

	press(m, "x")
	if m.mode != modeConfirm {
		t.Fatal("x should ask for confirmation")
	}
	press(m, "n")
	if got := len(m.svc.Store.Events()); got != 1 {
		t.Fatalf("events after cancelled delete = %d", got)
	}

	press(m, "x")
	press(m, "y")
	if got := len(m.svc.Store.Events()); got != 0 {
		t.Fatalf("events after confirmed delete = %d", got)
	}
}

func TestMouseDragMovesEvent(t *testing.T) {
	m := newTestModel(t)
	ev := addEvent(t, m, "standup", day.Add(9*time.Hour), day.Add(11*time.Hour))
	m.view = app.ViewDay
	m.scroll = 14

	// Row 20 is one row into the event body (top row 18 resizes).
	rowToY := func(row int) int { return row - m.scroll + headerRows }
	m.Update(tea.MouseClickMsg{X: 10, Y: rowToY(20)})
	if m.drag.ActiveID() != ev.ID {
		t.Fatalf("drag did not grab: state=%v active=%q", m.drag.State(), m.drag.ActiveID())
	}

	m.Update(tea.MouseMotionMsg{X: 10, Y: rowToY(18)})
	m.Update(tea.MouseReleaseMsg{X: 10, Y: rowToY(18)})

	got, ok := m.svc.EventByID(ev.ID)
	if !ok {
		t.Fatal("event disappeared")
	}
	if got.StartTime.Hour() != 8 || got.EndTime.Hour() != 10 {
		t.Fatalf("event after drag = %s .. %s", got.StartTime, got.EndTime)
	}
}

func TestMouseLeaveDiscards(t *testing.T) {
	m := newTestModel(t)
	ev := addEvent(t, m, "standup", day.Add(9*time.Hour), day.Add(11*time.Hour))
	m.view = app.ViewDay
	m.scroll = 14

	rowToY := func(row int) int { return row - m.scroll + headerRows }
	m.Update(tea.MouseClickMsg{X: 10, Y: rowToY(20)})
	m.Update(tea.MouseMotionMsg{X: 10, Y: 0})

	got, _ := m.svc.EventByID(ev.ID)
	if got.StartTime.Hour() != 9 {
		t.Fatalf("leave should discard, start = %s", got.StartTime)
	}
	if m.drag.ActiveID() != "" {
		t.Fatal("gesture still active after leave")
	}
}

func TestReloadOnStoreChange(t *testing.T) {
	adapter := &memAdapter{data: map[string][]byte{}}
	s := store.Open(adapter)
	svc := app.New(s, layout.New(layout.DefaultConfig()), nil, clock.Fix(day))
	m := New(svc)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})

	adapter.data[store.EventsKey] = []byte(`[{"id":"e1","title":"standup","label":"blue","day":"2024-03-12T00:00:00Z"}]`)
	m.Update(storeChangedMsg{key: store.EventsKey})

	if got := len(m.svc.Store.Events()); got != 1 {
		t.Fatalf("events after external change = %d", got)
	}
}
