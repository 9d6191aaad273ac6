// Package app provides high-level calendar operations over the store,
// layout engine, and venue directory so the CLI, TUI, and MCP surfaces
// can share logic.
package app

import (
	"errors"
	"fmt"
	"time"

	"tableflip.dev/agenda/pkg/clock"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/label"
	"tableflip.dev/agenda/pkg/layout"
	"tableflip.dev/agenda/pkg/store"
	"tableflip.dev/agenda/pkg/timeutil"
	"tableflip.dev/agenda/pkg/venue"
)

var ErrNotFound = errors.New("app: item not found")

// ViewMode picks the span a surface renders.
type ViewMode int

const (
	ViewMonth ViewMode = iota
	ViewWeek
	ViewDay
	ViewYear
)

func (m ViewMode) String() string {
	switch m {
	case ViewMonth:
		return "month"
	case ViewWeek:
		return "week"
	case ViewDay:
		return "day"
	case ViewYear:
		return "year"
	}
	return "unknown"
}

// ParseViewMode maps a user-facing mode name.
func ParseViewMode(s string) (ViewMode, error) {
	switch s {
	case "month":
		return ViewMonth, nil
	case "week":
		return ViewWeek, nil
	case "day":
		return ViewDay, nil
	case "year":
		return ViewYear, nil
	}
	return ViewMonth, fmt.Errorf("app: unknown view mode %q", s)
}

// Service is the shared facade. Construct it with New so the layout
// cache is invalidated on every store mutation.
type Service struct {
	Store  *store.Store
	Layout *layout.Cache
	Venues venue.Directory
	Clock  clock.Clock
}

// New wires a service over an opened store. A nil directory falls back
// to the built-in one and a nil clock to the system clock.
func New(s *store.Store, engine layout.Engine, dir venue.Directory, clk clock.Clock) *Service {
	if dir == nil {
		dir = venue.Builtin()
	}
	if clk == nil {
		clk = clock.System{}
	}
	svc := &Service{
		Store:  s,
		Layout: layout.NewCache(engine),
		Venues: dir,
		Clock:  clk,
	}
	s.OnChange(func(store.Change) {
		svc.Layout.Invalidate()
	})
	return svc
}

// FilteredEvents returns the events whose label is currently checked.
func (s *Service) FilteredEvents() []*item.Event {
	return label.FilterEvents(s.Store.Events(), s.Store.EventLabels())
}

// FilteredTasks returns the tasks whose label is currently checked.
func (s *Service) FilteredTasks() []*item.Task {
	return label.FilterTasks(s.Store.Tasks(), s.Store.TaskLabels())
}

// EventsForDay returns the filtered events bucketed on the given day.
func (s *Service) EventsForDay(day time.Time) []*item.Event {
	var out []*item.Event
	for _, ev := range s.FilteredEvents() {
		if timeutil.SameDay(ev.Day.Time, day) {
			out = append(out, ev)
		}
	}
	return out
}

// TasksForDay returns the filtered tasks due on the given day.
func (s *Service) TasksForDay(day time.Time) []*item.Task {
	var out []*item.Task
	for _, t := range s.FilteredTasks() {
		if timeutil.SameDay(t.DueDate.Time, day) {
			out = append(out, t)
		}
	}
	return out
}

// EventsForWeek returns the filtered events per day of the week
// containing t, keyed by day in Sunday-first order.
func (s *Service) EventsForWeek(t time.Time) map[time.Time][]*item.Event {
	out := make(map[time.Time][]*item.Event, 7)
	for _, day := range timeutil.DaysOfWeek(timeutil.StartOfWeek(t)) {
		out[day] = s.EventsForDay(day)
	}
	return out
}

// EventsForMonth returns the filtered events bucketed in t's month.
func (s *Service) EventsForMonth(t time.Time) []*item.Event {
	var out []*item.Event
	for _, ev := range s.FilteredEvents() {
		if item.At(t).SameMonth(ev.Day.Time) {
			out = append(out, ev)
		}
	}
	return out
}

// LayoutForDay computes (or reuses) the pixel geometry for the
// filtered events on the given day.
func (s *Service) LayoutForDay(day time.Time, opts ...layout.Option) map[string]layout.Box {
	if len(opts) > 0 {
		return s.Layout.Engine().Day(day, s.EventsForDay(day), opts...)
	}
	return s.Layout.Day(day, s.Store.Version(), s.EventsForDay(day))
}

// AddEvent validates and pushes a new event, assigning an id when the
// caller left it empty.
func (s *Service) AddEvent(ev *item.Event) (*item.Event, error) {
	if ev == nil {
		return nil, errors.New("app: nil event")
	}
	ev = ev.Clone()
	if ev.ID == "" {
		ev.ID = item.NewID()
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	if err := s.Store.DispatchEvent(store.Push, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// UpdateEvent validates and replaces an existing event.
func (s *Service) UpdateEvent(ev *item.Event) (*item.Event, error) {
	if ev == nil {
		return nil, errors.New("app: nil event")
	}
	if err := ev.Validate(); err != nil {
		return nil, err
	}
	if _, ok := s.EventByID(ev.ID); !ok {
		return nil, ErrNotFound
	}
	ev = ev.Clone()
	if err := s.Store.DispatchEvent(store.Update, ev); err != nil {
		return nil, err
	}
	return ev, nil
}

// DeleteEvent removes the event with the given id.
func (s *Service) DeleteEvent(id string) error {
	ev, ok := s.EventByID(id)
	if !ok {
		return ErrNotFound
	}
	return s.Store.DispatchEvent(store.Delete, ev)
}

// EventByID finds an event in the unfiltered collection.
func (s *Service) EventByID(id string) (*item.Event, bool) {
	for _, ev := range s.Store.Events() {
		if ev.ID == id {
			return ev, true
		}
	}
	return nil, false
}

// MoveEvent rebuckets an event onto a new day, carrying its clock
// times across. This is the drop handler for a day-to-day drag.
func (s *Service) MoveEvent(id string, day time.Time) (*item.Event, error) {
	ev, ok := s.EventByID(id)
	if !ok {
		return nil, ErrNotFound
	}
	moved := ev.Clone()
	target := timeutil.StartOfDay(day)
	moved.Day = item.At(target)
	if !moved.StartTime.IsZero() {
		moved.StartTime = item.At(target.Add(time.Duration(timeutil.MinutesIntoDay(ev.StartTime.Time)) * time.Minute))
	}
	if !moved.EndTime.IsZero() {
		moved.EndTime = item.At(target.Add(time.Duration(timeutil.MinutesIntoDay(ev.EndTime.Time)) * time.Minute))
	}
	if err := s.Store.DispatchEvent(store.Update, moved); err != nil {
		return nil, err
	}
	return moved, nil
}

// AddTask validates and pushes a new task.
func (s *Service) AddTask(t *item.Task) (*item.Task, error) {
	if t == nil {
		return nil, errors.New("app: nil task")
	}
	t = t.Clone()
	if t.ID == "" {
		t.ID = item.NewID()
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if err := s.Store.DispatchTask(store.Push, t); err != nil {
		return nil, err
	}
	return t, nil
}

// UpdateTask validates and replaces an existing task.
func (s *Service) UpdateTask(t *item.Task) (*item.Task, error) {
	if t == nil {
		return nil, errors.New("app: nil task")
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	if _, ok := s.TaskByID(t.ID); !ok {
		return nil, ErrNotFound
	}
	t = t.Clone()
	if err := s.Store.DispatchTask(store.Update, t); err != nil {
		return nil, err
	}
	return t, nil
}

// DeleteTask removes the task with the given id.
func (s *Service) DeleteTask(id string) error {
	t, ok := s.TaskByID(id)
	if !ok {
		return ErrNotFound
	}
	return s.Store.DispatchTask(store.Delete, t)
}

// TaskByID finds a task in the unfiltered collection.
func (s *Service) TaskByID(id string) (*item.Task, bool) {
	for _, t := range s.Store.Tasks() {
		if t.ID == id {
			return t, true
		}
	}
	return nil, false
}

// Drop routes a decoded drag payload onto the given day.
func (s *Service) Drop(p item.DragPayload, day time.Time) error {
	switch p.Kind {
	case item.KindEvent:
		_, err := s.MoveEvent(p.Event.ID, day)
		return err
	case item.KindTask:
		t, ok := s.TaskByID(p.Task.ID)
		if !ok {
			return ErrNotFound
		}
		moved := t.Clone()
		moved.DueDate = item.At(timeutil.StartOfDay(day))
		return s.Store.DispatchTask(store.Update, moved)
	}
	return fmt.Errorf("app: unknown payload kind %q", p.Kind)
}

// VenueBookings returns the bookings and availability for every venue
// on the given day, in directory order.
func (s *Service) VenueBookings(day time.Time) []VenueStatus {
	events := s.Store.Events()
	now := s.Clock.Now()
	venues := s.Venues.Venues()
	out := make([]VenueStatus, 0, len(venues))
	for _, v := range venues {
		bookings := venue.Bookings(events, v.ID, day)
		out = append(out, VenueStatus{
			Venue:     v,
			Bookings:  bookings,
			Available: venue.Available(bookings, now),
		})
	}
	return out
}

// VenueStatus pairs a venue with its bookings for one day.
type VenueStatus struct {
	Venue     venue.Venue
	Bookings  []*item.Event
	Available bool
}
