// Package mcp provides the Model Context Protocol server integration
// for agenda.
package mcp

import (
	"context"
	"errors"
	"sort"
	"time"

	"tableflip.dev/agenda/pkg/app"
	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/timeutil"
)

// Service coordinates calendar operations shared by the MCP server.
type Service struct {
	App *app.Service
}

// NewService builds a service wrapper over the calendar facade.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

// EventDTO is a transport-friendly projection of an event.
type EventDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`
	Label       string `json:"label"`
	Day         string `json:"day"`
	Start       string `json:"start"`
	End         string `json:"end"`
	StartUnix   int64  `json:"startUnix"`
	EndUnix     int64  `json:"endUnix"`
	Venue       string `json:"venue,omitempty"`
	Reminder    int    `json:"reminderMinutes,omitempty"`
}

// TaskDTO is a transport-friendly projection of a task.
type TaskDTO struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Label   string `json:"label"`
	DueDate string `json:"dueDate"`
	DueUnix int64  `json:"dueUnix"`
}

// LabelDTO carries one label's filter state.
type LabelDTO struct {
	Name    string `json:"name"`
	Checked bool   `json:"checked"`
}

func toEventDTO(ev *item.Event) EventDTO {
	start, end := ev.Interval()
	return EventDTO{
		ID:          ev.ID,
		Title:       ev.Title,
		Description: ev.Description,
		Location:    ev.Location,
		Label:       ev.Label,
		Day:         ev.Day.Format(time.RFC3339),
		Start:       start.Format(time.RFC3339),
		End:         end.Format(time.RFC3339),
		StartUnix:   start.Unix(),
		EndUnix:     end.Unix(),
		Venue:       ev.VenueID,
		Reminder:    ev.ReminderMinutes,
	}
}

func toEventDTOs(events []*item.Event) []EventDTO {
	sorted := make([]*item.Event, len(events))
	copy(sorted, events)
	sort.Slice(sorted, func(i, j int) bool {
		si, _ := sorted[i].Interval()
		sj, _ := sorted[j].Interval()
		if si.Equal(sj) {
			return sorted[i].ID < sorted[j].ID
		}
		return si.Before(sj)
	})
	out := make([]EventDTO, 0, len(sorted))
	for _, ev := range sorted {
		out = append(out, toEventDTO(ev))
	}
	return out
}

func toTaskDTO(t *item.Task) TaskDTO {
	return TaskDTO{
		ID:      t.ID,
		Title:   t.Title,
		Label:   t.Label,
		DueDate: t.DueDate.Format(time.RFC3339),
		DueUnix: t.DueDate.Unix(),
	}
}

// ListEvents returns events, optionally restricted to one day.
func (s *Service) ListEvents(_ context.Context, on *time.Time) ([]EventDTO, error) {
	if s.App == nil {
		return nil, errors.New("calendar service is not configured")
	}
	if on != nil {
		return toEventDTOs(s.App.EventsForDay(*on)), nil
	}
	return toEventDTOs(s.App.FilteredEvents()), nil
}

// ListTasks returns tasks, optionally restricted to one due day.
func (s *Service) ListTasks(_ context.Context, on *time.Time) ([]TaskDTO, error) {
	if s.App == nil {
		return nil, errors.New("calendar service is not configured")
	}
	tasks := s.App.FilteredTasks()
	if on != nil {
		tasks = s.App.TasksForDay(*on)
	}
	out := make([]TaskDTO, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, toTaskDTO(t))
	}
	return out, nil
}

// AddEventOptions captures the parameters used to create an event.
type AddEventOptions struct {
	Title       string
	Description string
	Location    string
	Label       string
	Day         time.Time
	Start       *time.Time
	End         *time.Time
	Venue       string
	Reminder    int
}

// AddEvent creates and stores a new event.
func (s *Service) AddEvent(_ context.Context, opts AddEventOptions) (*EventDTO, error) {
	if s.App == nil {
		return nil, errors.New("calendar service is not configured")
	}
	ev := &item.Event{
		Title:           opts.Title,
		Description:     opts.Description,
		Location:        opts.Location,
		Label:           opts.Label,
		Day:             item.At(timeutil.StartOfDay(opts.Day)),
		VenueID:         opts.Venue,
		ReminderMinutes: opts.Reminder,
	}
	if opts.Start != nil {
		ev.StartTime = item.At(*opts.Start)
	}
	if opts.End != nil {
		ev.EndTime = item.At(*opts.End)
	}
	stored, err := s.App.AddEvent(ev)
	if err != nil {
		return nil, err
	}
	dto := toEventDTO(stored)
	return &dto, nil
}

// AddTask creates and stores a new task.
func (s *Service) AddTask(_ context.Context, title, lbl string, due time.Time) (*TaskDTO, error) {
	if s.App == nil {
		return nil, errors.New("calendar service is not configured")
	}
	stored, err := s.App.AddTask(&item.Task{
		Title:   title,
		Label:   lbl,
		DueDate: item.At(timeutil.StartOfDay(due)),
	})
	if err != nil {
		return nil, err
	}
	dto := toTaskDTO(stored)
	return &dto, nil
}

// MoveEvent rebuckets an event onto a different day.
func (s *Service) MoveEvent(_ context.Context, id string, day time.Time) (*EventDTO, error) {
	if s.App == nil {
		return nil, errors.New("calendar service is not configured")
	}
	moved, err := s.App.MoveEvent(id, day)
	if err != nil {
		return nil, err
	}
	dto := toEventDTO(moved)
	return &dto, nil
}

// DeleteEvent removes an event by id.
func (s *Service) DeleteEvent(_ context.Context, id string) error {
	if s.App == nil {
		return errors.New("calendar service is not configured")
	}
	return s.App.DeleteEvent(id)
}

// DeleteTask removes a task by id.
func (s *Service) DeleteTask(_ context.Context, id string) error {
	if s.App == nil {
		return errors.New("calendar service is not configured")
	}
	return s.App.DeleteTask(id)
}

// EventByID fetches one event from the unfiltered collection.
func (s *Service) EventByID(_ context.Context, id string) (*EventDTO, error) {
	if s.App == nil {
		return nil, errors.New("calendar service is not configured")
	}
	ev, ok := s.App.EventByID(id)
	if !ok {
		return nil, app.ErrNotFound
	}
	dto := toEventDTO(ev)
	return &dto, nil
}

// Labels returns the filter state for one collection kind.
func (s *Service) Labels(_ context.Context, kind item.Kind) ([]LabelDTO, error) {
	if s.App == nil {
		return nil, errors.New("calendar service is not configured")
	}
	entries := s.App.Store.EventLabels()
	if kind == item.KindTask {
		entries = s.App.Store.TaskLabels()
	}
	out := make([]LabelDTO, 0, len(entries))
	for _, e := range entries {
		out = append(out, LabelDTO{Name: e.Name, Checked: e.Checked})
	}
	return out, nil
}

// ToggleLabel flips a label's checked state for one collection kind.
func (s *Service) ToggleLabel(_ context.Context, kind item.Kind, name string, checked bool) error {
	if s.App == nil {
		return errors.New("calendar service is not configured")
	}
	if kind == item.KindTask {
		s.App.Store.ToggleTaskLabel(name, checked)
		return nil
	}
	s.App.Store.ToggleEventLabel(name, checked)
	return nil
}

// Venues returns the directory with availability for one day.
func (s *Service) Venues(_ context.Context, day time.Time) ([]app.VenueStatus, error) {
	if s.App == nil {
		return nil, errors.New("calendar service is not configured")
	}
	return s.App.VenueBookings(day), nil
}
