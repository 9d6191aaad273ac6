// Package venue exposes the bookable-room directory and availability
// checks against the event collection.
package venue

import (
	"time"

	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/timeutil"
)

// Venue is a bookable room.
type Venue struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Capacity int    `json:"capacity"`
	Floor    string `json:"floor"`
}

// Directory resolves venues. The built-in directory is static; an
// implementation backed by a real room system satisfies the same
// contract.
type Directory interface {
	Venues() []Venue
	Lookup(id string) (Venue, bool)
}

type static struct {
	venues []Venue
	byID   map[string]Venue
}

// Builtin returns the static office directory.
func Builtin() Directory {
	venues := []Venue{
		{ID: "1", Name: "Conference Room A", Capacity: 20, Floor: "1st Floor"},
		{ID: "2", Name: "Meeting Room 1", Capacity: 10, Floor: "2nd Floor"},
		{ID: "3", Name: "Board Room", Capacity: 15, Floor: "3rd Floor"},
		{ID: "4", Name: "Training Room", Capacity: 30, Floor: "2nd Floor"},
		{ID: "5", Name: "Auditorium", Capacity: 100, Floor: "Ground Floor"},
	}
	byID := make(map[string]Venue, len(venues))
	for _, v := range venues {
		byID[v.ID] = v
	}
	return &static{venues: venues, byID: byID}
}

func (s *static) Venues() []Venue {
	out := make([]Venue, len(s.venues))
	copy(out, s.venues)
	return out
}

func (s *static) Lookup(id string) (Venue, bool) {
	v, ok := s.byID[id]
	return v, ok
}

// Bookings returns the events booked into the venue on the given day.
func Bookings(events []*item.Event, venueID string, day time.Time) []*item.Event {
	var out []*item.Event
	for _, ev := range events {
		if ev.VenueID != venueID {
			continue
		}
		start, _ := ev.Interval()
		if timeutil.SameDay(start, day) {
			out = append(out, ev)
		}
	}
	return out
}

// Available reports whether none of the bookings cover the instant now.
// An empty booking list is always available.
func Available(bookings []*item.Event, now time.Time) bool {
	for _, ev := range bookings {
		start, end := ev.Interval()
		if now.After(start) && now.Before(end) {
			return false
		}
	}
	return true
}
