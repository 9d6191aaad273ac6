// Package store is the source of truth for events and tasks. Mutations
// go through reducer-style dispatch calls that never modify the
// previous collection slice, re-derive the label entries, notify
// observers, and then persist the full collection.
package store

import (
	"encoding/json"
	"fmt"
	"os"

	"tableflip.dev/agenda/pkg/item"
	"tableflip.dev/agenda/pkg/label"
)

// Persisted collection keys.
const (
	EventsKey = "savedEvents"
	TasksKey  = "savedTasks"
)

// Adapter is the durable key-value contract the store loads from at
// startup and saves to after every mutation. Load returns (nil, nil)
// for an absent key.
type Adapter interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
}

// Change describes a committed mutation for observers.
type Change struct {
	Kind item.Kind
	Type ActionType
}

// Store holds the two independent collections. It is driven from a
// single goroutine: every dispatch runs to completion inside one
// handler invocation, so mutations never interleave. Persistence
// writes are handed to a background goroutine and never block the next
// interaction.
type Store struct {
	adapter Adapter

	events []*item.Event
	tasks  []*item.Task

	eventLabels []label.Entry
	taskLabels  []label.Entry

	version   uint64
	observers []func(Change)
}

// Open hydrates a store from the adapter. Absent or unparsable data
// yields empty collections; a malformed payload is reported to stderr
// but never fatal.
func Open(adapter Adapter) *Store {
	s := &Store{adapter: adapter}
	if data := loadRaw(adapter, EventsKey); len(data) > 0 {
		if err := json.Unmarshal(data, &s.events); err != nil {
			fmt.Fprintf(os.Stderr, "store: decode %s: %v\n", EventsKey, err)
			s.events = nil
		}
	}
	if data := loadRaw(adapter, TasksKey); len(data) > 0 {
		if err := json.Unmarshal(data, &s.tasks); err != nil {
			fmt.Fprintf(os.Stderr, "store: decode %s: %v\n", TasksKey, err)
			s.tasks = nil
		}
	}
	s.eventLabels = label.Derive(label.EventLabels(s.events), nil)
	s.taskLabels = label.Derive(label.TaskLabels(s.tasks), nil)
	return s
}

func loadRaw(adapter Adapter, key string) []byte {
	if adapter == nil {
		return nil
	}
	data, err := adapter.Load(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: load %s: %v\n", key, err)
		return nil
	}
	return data
}

// Events returns the current event collection. The slice is replaced,
// never mutated, by dispatches; callers may hold it across mutations.
func (s *Store) Events() []*item.Event {
	return s.events
}

// Tasks returns the current task collection.
func (s *Store) Tasks() []*item.Task {
	return s.tasks
}

// EventLabels returns the derived label entries for events.
func (s *Store) EventLabels() []label.Entry {
	return s.eventLabels
}

// TaskLabels returns the derived label entries for tasks.
func (s *Store) TaskLabels() []label.Entry {
	return s.taskLabels
}

// Version counts committed mutations; layout caches key on it.
func (s *Store) Version() uint64 {
	return s.version
}

// OnChange registers an observer run synchronously after each
// mutation, after labels have been re-derived from the new collection
// and before the persistence write is queued.
func (s *Store) OnChange(fn func(Change)) {
	if fn != nil {
		s.observers = append(s.observers, fn)
	}
}

// Reload re-hydrates a collection from the adapter after an external
// write, re-derives its labels keeping the checked states, bumps the
// version, and notifies observers. It never writes back.
func (s *Store) Reload(kind item.Kind) {
	switch kind {
	case item.KindEvent:
		s.events = nil
		if data := loadRaw(s.adapter, EventsKey); len(data) > 0 {
			if err := json.Unmarshal(data, &s.events); err != nil {
				fmt.Fprintf(os.Stderr, "store: decode %s: %v\n", EventsKey, err)
				s.events = nil
			}
		}
		s.eventLabels = label.Derive(label.EventLabels(s.events), s.eventLabels)
	case item.KindTask:
		s.tasks = nil
		if data := loadRaw(s.adapter, TasksKey); len(data) > 0 {
			if err := json.Unmarshal(data, &s.tasks); err != nil {
				fmt.Fprintf(os.Stderr, "store: decode %s: %v\n", TasksKey, err)
				s.tasks = nil
			}
		}
		s.taskLabels = label.Derive(label.TaskLabels(s.tasks), s.taskLabels)
	default:
		return
	}
	s.version++
	for _, fn := range s.observers {
		fn(Change{Kind: kind, Type: Update})
	}
}

// ToggleEventLabel sets the checked state of an event label entry.
func (s *Store) ToggleEventLabel(name string, checked bool) {
	s.eventLabels = label.Toggle(s.eventLabels, name, checked)
	s.toggled(item.KindEvent)
}

// ToggleTaskLabel sets the checked state of a task label entry.
func (s *Store) ToggleTaskLabel(name string, checked bool) {
	s.taskLabels = label.Toggle(s.taskLabels, name, checked)
	s.toggled(item.KindTask)
}

// toggled bumps the version and notifies observers so memoized views
// of the filtered collections drop out. Checked state is in-memory
// view state, so no persistence write is queued.
func (s *Store) toggled(kind item.Kind) {
	s.version++
	for _, fn := range s.observers {
		fn(Change{Kind: kind, Type: Update})
	}
}

// DispatchEvent applies one action to the event collection.
//
// push guarantees len(new) == len(old)+1 or an error; update leaves
// the length unchanged and is a no-op for unknown ids; delete removes
// at most one entry. Any other action type panics with
// ErrInvalidAction.
func (s *Store) DispatchEvent(t ActionType, ev *item.Event) error {
	next, err := reduceEvents(s.events, t, ev)
	if err != nil {
		return err
	}
	s.events = next
	s.committed(item.KindEvent, t)
	return nil
}

// DispatchTask applies one action to the task collection.
func (s *Store) DispatchTask(t ActionType, task *item.Task) error {
	next, err := reduceTasks(s.tasks, t, task)
	if err != nil {
		return err
	}
	s.tasks = next
	s.committed(item.KindTask, t)
	return nil
}

// committed runs the post-mutation pipeline in its required order:
// labels first (derived from the new collection), then observers, then
// the fire-and-forget save.
func (s *Store) committed(kind item.Kind, t ActionType) {
	s.version++
	switch kind {
	case item.KindEvent:
		s.eventLabels = label.Derive(label.EventLabels(s.events), s.eventLabels)
	case item.KindTask:
		s.taskLabels = label.Derive(label.TaskLabels(s.tasks), s.taskLabels)
	}
	for _, fn := range s.observers {
		fn(Change{Kind: kind, Type: t})
	}
	s.persist(kind)
}

func (s *Store) persist(kind item.Kind) {
	if s.adapter == nil {
		return
	}
	var (
		key  string
		data []byte
		err  error
	)
	switch kind {
	case item.KindEvent:
		key = EventsKey
		data, err = json.Marshal(s.events)
	case item.KindTask:
		key = TasksKey
		data, err = json.Marshal(s.tasks)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "store: encode %s: %v\n", key, err)
		return
	}
	// Best effort. The disk adapter queues the write off the
	// interaction path; no read-after-write guarantee is offered.
	if err := s.adapter.Save(key, data); err != nil {
		fmt.Fprintf(os.Stderr, "store: save %s: %v\n", key, err)
	}
}

func reduceEvents(old []*item.Event, t ActionType, ev *item.Event) ([]*item.Event, error) {
	if ev == nil {
		return nil, fmt.Errorf("%s: nil event", t)
	}
	switch t {
	case Push:
		for _, e := range old {
			if e.ID == ev.ID {
				return nil, fmt.Errorf("%w: event %s", ErrDuplicateID, ev.ID)
			}
		}
		next := make([]*item.Event, len(old), len(old)+1)
		copy(next, old)
		return append(next, ev.Clone()), nil
	case Update:
		next := make([]*item.Event, len(old))
		for i, e := range old {
			if e.ID == ev.ID {
				next[i] = ev.Clone()
			} else {
				next[i] = e
			}
		}
		return next, nil
	case Delete:
		next := make([]*item.Event, 0, len(old))
		for _, e := range old {
			if e.ID != ev.ID {
				next = append(next, e)
			}
		}
		return next, nil
	default:
		panic(fmt.Errorf("%w: %d", ErrInvalidAction, t))
	}
}

func reduceTasks(old []*item.Task, t ActionType, task *item.Task) ([]*item.Task, error) {
	if task == nil {
		return nil, fmt.Errorf("%s: nil task", t)
	}
	switch t {
	case Push:
		for _, e := range old {
			if e.ID == task.ID {
				return nil, fmt.Errorf("%w: task %s", ErrDuplicateID, task.ID)
			}
		}
		next := make([]*item.Task, len(old), len(old)+1)
		copy(next, old)
		return append(next, task.Clone()), nil
	case Update:
		next := make([]*item.Task, len(old))
		for i, e := range old {
			if e.ID == task.ID {
				next[i] = task.Clone()
			} else {
				next[i] = e
			}
		}
		return next, nil
	case Delete:
		next := make([]*item.Task, 0, len(old))
		for _, e := range old {
			if e.ID != task.ID {
				next = append(next, e)
			}
		}
		return next, nil
	default:
		panic(fmt.Errorf("%w: %d", ErrInvalidAction, t))
	}
}
