// Package item defines the two schedulable record kinds, events and
// tasks, and the ephemeral drag payload used to hand one of them to a
// drop target.
package item

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Kind discriminates the two item kinds on the drag payload wire format.
type Kind string

const (
	KindEvent Kind = "event"
	KindTask  Kind = "task"
)

// DefaultDuration is the assumed length of an event with no end time.
const DefaultDuration = time.Hour

var (
	ErrMissingID    = errors.New("item: id required")
	ErrMissingTitle = errors.New("item: title required")
	ErrInverted     = errors.New("item: start time after end time")
)

// Event is a calendar event filed under a bucket day. StartTime and
// EndTime are optional; when absent the event occupies one hour starting
// at the bucket day instant.
type Event struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Location     string    `json:"location,omitempty"`
	ContactEmail string    `json:"email,omitempty"`
	Label        string    `json:"label"`
	Day          Timestamp `json:"day"`
	StartTime    Timestamp `json:"startTime,omitempty"`
	EndTime      Timestamp `json:"endTime,omitempty"`

	// ReminderMinutes is how long before the start a reminder fires.
	// Zero means no reminder.
	ReminderMinutes int `json:"reminder,omitempty"`

	// VenueID references the external venue directory.
	VenueID string `json:"venue,omitempty"`
}

// Interval resolves the effective start and end instants, applying the
// bucket-day and one-hour defaults for absent times.
func (e *Event) Interval() (time.Time, time.Time) {
	start := e.StartTime.Time
	if e.StartTime.IsZero() {
		start = e.Day.Time
	}
	end := e.EndTime.Time
	if e.EndTime.IsZero() {
		end = start.Add(DefaultDuration)
	}
	return start, end
}

// Duration is the effective interval length.
func (e *Event) Duration() time.Duration {
	start, end := e.Interval()
	return end.Sub(start)
}

// Validate reports contract violations that a store must reject.
func (e *Event) Validate() error {
	if e.ID == "" {
		return ErrMissingID
	}
	if e.Title == "" {
		return ErrMissingTitle
	}
	if !e.StartTime.IsZero() && !e.EndTime.IsZero() && e.StartTime.After(e.EndTime.Time) {
		return fmt.Errorf("%w: %s > %s", ErrInverted, e.StartTime, e.EndTime)
	}
	return nil
}

// Clone returns a deep copy. Stores hand out clones so callers can edit
// freely and commit through an update action.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	cp := *e
	return &cp
}

// Task is a due-dated item rendered as a fixed-height marker.
type Task struct {
	ID      string    `json:"id"`
	Title   string    `json:"title"`
	DueDate Timestamp `json:"dueDate"`
	Label   string    `json:"label"`
}

func (t *Task) Validate() error {
	if t.ID == "" {
		return ErrMissingID
	}
	if t.Title == "" {
		return ErrMissingTitle
	}
	return nil
}

func (t *Task) Clone() *Task {
	if t == nil {
		return nil
	}
	cp := *t
	return &cp
}

// NewID returns a fresh opaque identifier for callers that do not
// assign their own.
func NewID() string {
	return uuid.NewString()
}

// DragPayload is the in-memory transfer record for an in-progress
// gesture. Exactly one of Event or Task is set, matching Kind, so a
// drop target can route the payload to the correct store.
type DragPayload struct {
	Kind  Kind   `json:"kind"`
	Event *Event `json:"event,omitempty"`
	Task  *Task  `json:"task,omitempty"`
}

// PayloadFor wraps an item in a DragPayload.
func PayloadFor(v any) (DragPayload, error) {
	switch it := v.(type) {
	case *Event:
		return DragPayload{Kind: KindEvent, Event: it.Clone()}, nil
	case *Task:
		return DragPayload{Kind: KindTask, Task: it.Clone()}, nil
	default:
		return DragPayload{}, fmt.Errorf("item: cannot build drag payload for %T", v)
	}
}

// Encode serializes the payload for transfer.
func (p DragPayload) Encode() ([]byte, error) {
	return json.Marshal(p)
}

// DecodeDragPayload parses a payload and checks the kind/record pairing.
func DecodeDragPayload(data []byte) (DragPayload, error) {
	var p DragPayload
	if err := json.Unmarshal(data, &p); err != nil {
		return DragPayload{}, err
	}
	switch p.Kind {
	case KindEvent:
		if p.Event == nil {
			return DragPayload{}, errors.New("item: event payload missing record")
		}
	case KindTask:
		if p.Task == nil {
			return DragPayload{}, errors.New("item: task payload missing record")
		}
	default:
		return DragPayload{}, fmt.Errorf("item: unknown payload kind %q", p.Kind)
	}
	return p, nil
}
