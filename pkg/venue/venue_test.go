package venue

import (
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/item"
)

func ts(t time.Time) item.Timestamp { return item.At(t) }

func TestBuiltinLookup(t *testing.T) {
	dir := Builtin()
	if got := len(dir.Venues()); got != 5 {
		t.Fatalf("venues = %d, want 5", got)
	}
	v, ok := dir.Lookup("5")
	if !ok || v.Name != "Auditorium" || v.Capacity != 100 {
		t.Fatalf("lookup 5 = %+v, %v", v, ok)
	}
	if _, ok := dir.Lookup("99"); ok {
		t.Fatal("lookup of unknown id succeeded")
	}
}

func TestBookingsFilterByVenueAndDay(t *testing.T) {
	day := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	events := []*item.Event{
		{ID: "a", VenueID: "1", Day: ts(day), StartTime: ts(day.Add(9 * time.Hour))},
		{ID: "b", VenueID: "2", Day: ts(day), StartTime: ts(day.Add(9 * time.Hour))},
		{ID: "c", VenueID: "1", Day: ts(day.AddDate(0, 0, 1)), StartTime: ts(day.AddDate(0, 0, 1).Add(9 * time.Hour))},
		{ID: "d", VenueID: "", Day: ts(day)},
	}
	got := Bookings(events, "1", day)
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("bookings = %+v", got)
	}
}

func TestAvailable(t *testing.T) {
	day := time.Date(2024, 3, 12, 0, 0, 0, 0, time.UTC)
	booking := &item.Event{
		ID:        "a",
		StartTime: ts(day.Add(9 * time.Hour)),
		EndTime:   ts(day.Add(10 * time.Hour)),
	}

	if !Available(nil, day.Add(9*time.Hour+30*time.Minute)) {
		t.Fatal("empty booking list should be available")
	}
	if Available([]*item.Event{booking}, day.Add(9*time.Hour+30*time.Minute)) {
		t.Fatal("venue available in the middle of a booking")
	}
	if !Available([]*item.Event{booking}, day.Add(11*time.Hour)) {
		t.Fatal("venue unavailable after the booking ended")
	}
}
