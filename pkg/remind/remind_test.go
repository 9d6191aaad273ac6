package remind

import (
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/clock"
	"tableflip.dev/agenda/pkg/item"
)

var day = time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)

func eventAt(id string, start time.Time, reminder int) *item.Event {
	return &item.Event{
		ID:              id,
		Title:           id,
		Day:             item.At(day),
		StartTime:       item.At(start),
		ReminderMinutes: reminder,
	}
}

func TestDueWindow(t *testing.T) {
	events := []*item.Event{
		eventAt("in-window", day.Add(9*time.Hour), 30),              // fires 08:30
		eventAt("too-early", day.Add(9*time.Hour), 60),              // fires 08:00
		eventAt("too-late", day.Add(10*time.Hour), 30),              // fires 09:30
		eventAt("no-reminder", day.Add(8*time.Hour+45*time.Minute), 0),
	}

	got := Due(events, day.Add(8*time.Hour+30*time.Minute), day.Add(8*time.Hour+31*time.Minute))
	if len(got) != 1 || got[0].Event.ID != "in-window" {
		t.Fatalf("due = %+v", got)
	}
	if !got[0].At.Equal(day.Add(8*time.Hour + 30*time.Minute)) {
		t.Fatalf("fire instant = %s", got[0].At)
	}
}

func TestDueHalfOpen(t *testing.T) {
	ev := eventAt("edge", day.Add(9*time.Hour), 30)
	from := day.Add(8*time.Hour + 29*time.Minute)
	to := day.Add(8*time.Hour + 30*time.Minute)

	if got := Due([]*item.Event{ev}, from, to); len(got) != 0 {
		t.Fatalf("fire instant at window end should not fire: %+v", got)
	}
	if got := Due([]*item.Event{ev}, to, to.Add(time.Minute)); len(got) != 1 {
		t.Fatalf("fire instant at window start should fire: %+v", got)
	}
}

func TestScanFiresOnce(t *testing.T) {
	events := []*item.Event{eventAt("standup", day.Add(9*time.Hour), 15)}
	var fired []Notification

	now := day.Add(8*time.Hour + 44*time.Minute + 30*time.Second)
	clk := &steppingClock{t: now}
	s := NewScheduler(
		func() []*item.Event { return events },
		func(n Notification) { fired = append(fired, n) },
		clk,
	)
	s.last = now

	clk.t = now.Add(time.Minute)
	s.Scan()
	if len(fired) != 1 || fired[0].Event.ID != "standup" {
		t.Fatalf("fired = %+v", fired)
	}

	clk.t = now.Add(2 * time.Minute)
	s.Scan()
	if len(fired) != 1 {
		t.Fatalf("reminder fired twice: %+v", fired)
	}
}

type steppingClock struct {
	t time.Time
}

func (c *steppingClock) Now() time.Time { return c.t }

var _ clock.Clock = (*steppingClock)(nil)
