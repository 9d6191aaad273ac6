package app

import (
	"errors"
	"testing"
	"time"

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

func newService(t *testing.T, now time.Time) *Service {
	t.Helper()
	s := store.Open(&memAdapter{data: map[string][]byte{}})
	return New(s, layout.New(layout.DefaultConfig()), nil, clock.Fix(now))
}

var day = time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)

func addEvent(t *testing.T, svc *Service, title, lbl string, start, end time.Time) *item.Event {
	t.Helper()
	ev, err := svc.AddEvent(&item.Event{
		Title:     title,
		Label:     lbl,
		Day:       item.At(day),
		StartTime: item.At(start),
		EndTime:   item.At(end),
	})
	if err != nil {
		t.Fatalf("add %s: %v", title, err)
	}
	return ev
}

func TestAddAssignsID(t *testing.T) {
	svc := newService(t, day)
	ev := addEvent(t, svc, "standup", "blue", day.Add(9*time.Hour), day.Add(10*time.Hour))
	if ev.ID == "" {
		t.Fatal("add left id empty")
	}
	if got := len(svc.Store.Events()); got != 1 {
		t.Fatalf("events = %d", got)
	}
}

func TestAddRejectsInvalid(t *testing.T) {
	svc := newService(t, day)
	_, err := svc.AddEvent(&item.Event{Label: "blue", Day: item.At(day)})
	if !errors.Is(err, item.ErrMissingTitle) {
		t.Fatalf("err = %v, want ErrMissingTitle", err)
	}
}

func TestFilteredEventsRespectLabels(t *testing.T) {
	svc := newService(t, day)
	addEvent(t, svc, "standup", "blue", day.Add(9*time.Hour), day.Add(10*time.Hour))
	addEvent(t, svc, "retro", "green", day.Add(11*time.Hour), day.Add(12*time.Hour))

	if got := len(svc.FilteredEvents()); got != 2 {
		t.Fatalf("filtered = %d, want 2", got)
	}
	svc.Store.ToggleEventLabel("green", false)
	filtered := svc.FilteredEvents()
	if len(filtered) != 1 || filtered[0].Title != "standup" {
		t.Fatalf("filtered after toggle = %+v", filtered)
	}
}

func TestEventsForDay(t *testing.T) {
	svc := newService(t, day)
	addEvent(t, svc, "standup", "blue", day.Add(9*time.Hour), day.Add(10*time.Hour))
	other := day.AddDate(0, 0, 3)
	if _, err := svc.AddEvent(&item.Event{Title: "offsite", Label: "red", Day: item.At(other)}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if got := len(svc.EventsForDay(day)); got != 1 {
		t.Fatalf("events for day = %d", got)
	}
	if got := len(svc.EventsForMonth(day)); got != 2 {
		t.Fatalf("events for month = %d", got)
	}
	week := svc.EventsForWeek(day)
	if len(week) != 7 {
		t.Fatalf("week days = %d", len(week))
	}
}

func TestMoveEventPreservesClockTimes(t *testing.T) {
	svc := newService(t, day)
	ev := addEvent(t, svc, "standup", "blue", day.Add(9*time.Hour), day.Add(10*time.Hour))

	target := day.AddDate(0, 0, 2)
	moved, err := svc.MoveEvent(ev.ID, target.Add(13*time.Hour))
	if err != nil {
		t.Fatalf("move: %v", err)
	}
	if !moved.Day.Equal(target) {
		t.Fatalf("moved day = %s", moved.Day)
	}
	if moved.StartTime.Hour() != 9 || moved.EndTime.Hour() != 10 {
		t.Fatalf("moved times = %s .. %s", moved.StartTime, moved.EndTime)
	}
	if got := len(svc.EventsForDay(day)); got != 0 {
		t.Fatalf("source day still has %d events", got)
	}
}

func TestDeleteMissing(t *testing.T) {
	svc := newService(t, day)
	if err := svc.DeleteEvent("ghost"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestLayoutCacheInvalidatedOnMutation(t *testing.T) {
	svc := newService(t, day)
	ev := addEvent(t, svc, "standup", "blue", day.Add(9*time.Hour), day.Add(10*time.Hour))

	boxes := svc.LayoutForDay(day)
	if len(boxes) != 1 {
		t.Fatalf("boxes = %d", len(boxes))
	}

	moved := ev.Clone()
	moved.StartTime = item.At(day.Add(14 * time.Hour))
	moved.EndTime = item.At(day.Add(15 * time.Hour))
	if _, err := svc.UpdateEvent(moved); err != nil {
		t.Fatalf("update: %v", err)
	}

	boxes = svc.LayoutForDay(day)
	want := 14 * 60 * svc.Layout.Engine().PixelsPerMinute()
	if boxes[ev.ID].Top != want {
		t.Fatalf("top after move = %v, want %v", boxes[ev.ID].Top, want)
	}
}

func TestLayoutForDayTracksLabelToggle(t *testing.T) {
	svc := newService(t, day)
	addEvent(t, svc, "standup", "blue", day.Add(9*time.Hour), day.Add(10*time.Hour))

	if got := len(svc.LayoutForDay(day)); got != 1 {
		t.Fatalf("boxes before toggle = %d", got)
	}

	svc.Store.ToggleEventLabel("blue", false)
	if got := len(svc.LayoutForDay(day)); got != 0 {
		t.Fatalf("boxes for hidden label = %d, want 0", got)
	}

	svc.Store.ToggleEventLabel("blue", true)
	if got := len(svc.LayoutForDay(day)); got != 1 {
		t.Fatalf("boxes after re-showing label = %d, want 1", got)
	}
}

func TestDropTask(t *testing.T) {
	svc := newService(t, day)
	task, err := svc.AddTask(&item.Task{Title: "pay rent", Label: "red", DueDate: item.At(day)})
	if err != nil {
		t.Fatalf("add task: %v", err)
	}

	payload, err := item.PayloadFor(task)
	if err != nil {
		t.Fatalf("payload: %v", err)
	}
	target := day.AddDate(0, 0, 5)
	if err := svc.Drop(payload, target); err != nil {
		t.Fatalf("drop: %v", err)
	}
	got, ok := svc.TaskByID(task.ID)
	if !ok || !got.DueDate.Equal(target) {
		t.Fatalf("task after drop = %+v", got)
	}
}

func TestVenueBookings(t *testing.T) {
	now := day.Add(9*time.Hour + 30*time.Minute)
	svc := newService(t, now)
	ev := &item.Event{
		Title:     "all hands",
		Label:     "purple",
		Day:       item.At(day),
		StartTime: item.At(day.Add(9 * time.Hour)),
		EndTime:   item.At(day.Add(10 * time.Hour)),
		VenueID:   "5",
	}
	if _, err := svc.AddEvent(ev); err != nil {
		t.Fatalf("add: %v", err)
	}

	statuses := svc.VenueBookings(day)
	if len(statuses) != 5 {
		t.Fatalf("statuses = %d", len(statuses))
	}
	for _, st := range statuses {
		if st.Venue.ID == "5" {
			if len(st.Bookings) != 1 || st.Available {
				t.Fatalf("auditorium status = %+v", st)
			}
		} else if !st.Available {
			t.Fatalf("%s should be available", st.Venue.Name)
		}
	}
}

func TestParseViewMode(t *testing.T) {
	for _, name := range []string{"month", "week", "day", "year"} {
		m, err := ParseViewMode(name)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		if m.String() != name {
			t.Fatalf("round trip %s = %s", name, m)
		}
	}
	if _, err := ParseViewMode("fortnight"); err == nil {
		t.Fatal("expected error for unknown mode")
	}
}
