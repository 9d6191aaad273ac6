package interact

import (
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/item"
)

var testDay = time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

func eventAt(startH, startM, endH, endM int) *item.Event {
	at := func(h, m int) item.Timestamp {
		return item.At(testDay.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute))
	}
	return &item.Event{
		ID:        "E1",
		Title:     "meeting",
		Label:     "blue",
		Day:       item.At(testDay),
		StartTime: at(startH, startM),
		EndTime:   at(endH, endM),
	}
}

func TestSnapIdempotent(t *testing.T) {
	for m := -10; m <= 1500; m += 7 {
		once := Snap(m, 15)
		if twice := Snap(once, 15); twice != once {
			t.Fatalf("snap not idempotent at %d: %d != %d", m, once, twice)
		}
		if once%15 != 0 {
			t.Fatalf("snap(%d) = %d is not a quantum multiple", m, once)
		}
	}
}

func TestSnapRoundsToNearest(t *testing.T) {
	cases := map[int]int{0: 0, 7: 0, 8: 15, 607: 600, 614: 615, 622: 615, 623: 630}
	for in, want := range cases {
		if got := Snap(in, 15); got != want {
			t.Fatalf("snap(%d): expected %d, got %d", in, want, got)
		}
	}
}

func TestDragPreservesDurationAndSnaps(t *testing.T) {
	var committed *item.Event
	c := New(Config{QuantumMinutes: 15, PixelsPerMinute: 1}, func(ev *item.Event) error {
		committed = ev
		return nil
	})

	// Originally 10:00-11:00, grabbed at its top edge.
	c.GrabBody(eventAt(10, 0, 11, 0), 0)
	if c.State() != StateDragging {
		t.Fatalf("expected dragging, got %v", c.State())
	}

	// Pointer at 10:07 snaps back to 10:00.
	c.PointerMove(10*60 + 7)
	p := c.Preview()
	if p == nil {
		t.Fatal("expected a live preview")
	}
	start, end := p.Interval()
	if start.Hour() != 10 || start.Minute() != 0 {
		t.Fatalf("expected snapped start 10:00, got %v", start)
	}
	if end.Sub(start) != time.Hour {
		t.Fatalf("expected duration preserved, got %v", end.Sub(start))
	}

	if err := c.PointerRelease(); err != nil {
		t.Fatalf("release: %v", err)
	}
	if committed == nil {
		t.Fatal("expected commit on release")
	}
	if c.State() != StateIdle || c.ActiveID() != "" {
		t.Fatalf("expected idle after release, got %v", c.State())
	}
}

func TestDragWithGrabOffset(t *testing.T) {
	c := New(Config{QuantumMinutes: 15, PixelsPerMinute: 1}, func(*item.Event) error { return nil })
	// Grabbed 10 pixels below the top of the box.
	c.GrabBody(eventAt(10, 0, 11, 0), 10)
	c.PointerMove(10*60 + 40) // pointer at 10:40, box top at 10:30
	start, _ := c.Preview().Interval()
	if start.Hour() != 10 || start.Minute() != 30 {
		t.Fatalf("expected 10:30 start, got %v", start)
	}
}

func TestResizeEndClampsToMinimumDuration(t *testing.T) {
	c := New(Config{QuantumMinutes: 15, PixelsPerMinute: 1}, func(*item.Event) error { return nil })
	c.GrabEdge(eventAt(10, 0, 11, 0), EdgeEnd)
	if c.State() != StateResizingEnd {
		t.Fatalf("expected resizing-end, got %v", c.State())
	}

	// Try to drag the end before the start.
	c.PointerMove(9 * 60)
	start, end := c.Preview().Interval()
	if !end.Equal(start.Add(15 * time.Minute)) {
		t.Fatalf("expected end clamped to start+15m, got %v..%v", start, end)
	}
}

func TestResizeStartClampsAndNeverInverts(t *testing.T) {
	c := New(Config{QuantumMinutes: 15, PixelsPerMinute: 1}, func(*item.Event) error { return nil })
	c.GrabEdge(eventAt(10, 0, 11, 0), EdgeStart)

	c.PointerMove(12 * 60) // past the end
	start, end := c.Preview().Interval()
	if !start.Equal(end.Add(-15 * time.Minute)) {
		t.Fatalf("expected start clamped to end-15m, got %v..%v", start, end)
	}

	c.PointerMove(9*60 + 37) // 9:37 snaps to 9:30
	start, end = c.Preview().Interval()
	if start.Hour() != 9 || start.Minute() != 30 {
		t.Fatalf("expected 9:30, got %v", start)
	}
	if end.Hour() != 11 || end.Minute() != 0 {
		t.Fatalf("resize-start must not move the end, got %v", end)
	}
}

func TestPointerLeaveDiscardsPreview(t *testing.T) {
	commits := 0
	c := New(Config{QuantumMinutes: 15, PixelsPerMinute: 1}, func(*item.Event) error {
		commits++
		return nil
	})
	c.GrabBody(eventAt(10, 0, 11, 0), 0)
	c.PointerMove(14 * 60)
	c.PointerLeave()

	if commits != 0 {
		t.Fatalf("leave must not commit, got %d commits", commits)
	}
	if c.State() != StateIdle || c.Preview() != nil {
		t.Fatal("expected idle with no preview after leave")
	}

	// A release after cancellation is a no-op.
	if err := c.PointerRelease(); err != nil {
		t.Fatalf("idle release: %v", err)
	}
	if commits != 0 {
		t.Fatal("idle release must not commit")
	}
}

func TestDragClampsToDayBounds(t *testing.T) {
	c := New(Config{QuantumMinutes: 15, PixelsPerMinute: 1}, func(*item.Event) error { return nil })
	c.GrabBody(eventAt(10, 0, 11, 0), 0)
	c.PointerMove(-250)
	start, _ := c.Preview().Interval()
	if start.Hour() != 0 || start.Minute() != 0 {
		t.Fatalf("expected clamp to midnight, got %v", start)
	}
}

func TestGrabWhileActiveIgnored(t *testing.T) {
	c := New(Config{QuantumMinutes: 15, PixelsPerMinute: 1}, func(*item.Event) error { return nil })
	c.GrabBody(eventAt(10, 0, 11, 0), 0)
	other := eventAt(12, 0, 13, 0)
	other.ID = "E2"
	c.GrabBody(other, 0)
	if c.ActiveID() != "E1" {
		t.Fatalf("second grab must be ignored, active is %s", c.ActiveID())
	}
}
